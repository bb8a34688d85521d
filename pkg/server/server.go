package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/richard-senior/smoothcurve/internal/logger"
	"github.com/richard-senior/smoothcurve/pkg/protocol"
	"github.com/richard-senior/smoothcurve/pkg/resources"
	"github.com/richard-senior/smoothcurve/pkg/tools"
	"github.com/richard-senior/smoothcurve/pkg/transport"
)

const (
	ServerName    = "smoothcurve"
	ServerVersion = "1.0.0"

	defaultProtocolVersion = "2024-11-05"
)

// Server represents an MCP server
type Server struct {
	transport transport.Transport
	toolbox   *tools.Toolbox
	handlers  map[string]HandlerFunc
	tools     []protocol.Tool
	resources []protocol.Resource
	mu        sync.Mutex
}

// HandlerFunc is a function that handles an MCP request
type HandlerFunc func(params any) (any, error)

// New creates a server reading requests from t, with every tool and
// resource registered
func New(t transport.Transport, tb *tools.Toolbox) *Server {
	s := &Server{
		transport: t,
		toolbox:   tb,
		handlers:  make(map[string]HandlerFunc),
		tools:     []protocol.Tool{},
		resources: []protocol.Resource{},
	}
	s.RegisterDefaultTools()
	s.RegisterDefaultResources()

	s.handlers[string(protocol.MethodInitialize)] = s.handleInitialize
	s.handlers[string(protocol.MethodInitialized)] = s.handleInitialized
	s.handlers[string(protocol.MethodToolsList)] = s.handleToolsList
	s.handlers[string(protocol.MethodToolsCall)] = s.handleToolsCall
	s.handlers[string(protocol.MethodResourcesList)] = s.handleResourcesList
	s.handlers[string(protocol.MethodResourcesRead)] = s.handleResourcesRead
	return s
}

// RegisterTool registers a tool with the server under the tool prefix
func (s *Server) RegisterTool(tool protocol.Tool, handler HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tool.Name = protocol.ToolPrefix + tool.Name
	s.tools = append(s.tools, tool)
	s.handlers[tool.Name] = handler
	logger.Info("Registered tool:", tool.Name)
}

// RegisterResource registers a resource with the server
func (s *Server) RegisterResource(resource protocol.Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resources = append(s.resources, resource)
	logger.Info("Registered resource:", resource.Name)
}

// GetTools returns the list of registered tools
func (s *Server) GetTools() []protocol.Tool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]protocol.Tool(nil), s.tools...)
}

// RegisterDefaultTools registers all the default tools with the server
func (s *Server) RegisterDefaultTools() {
	logger.Info("Registering default tools...")

	s.RegisterTool(tools.SmoothPathTool(), s.toolbox.HandleSmoothPath)
	s.RegisterTool(tools.NormalizeArrayTool(), tools.HandleNormalizeArray)
	s.RegisterTool(tools.ClimateChartTool(), s.toolbox.HandleClimateChart)
	s.RegisterTool(tools.ClimateReportTool(), s.toolbox.HandleClimateReport)
	s.RegisterTool(tools.CelsiusToFahrenheitTool(), tools.HandleCelsiusToFahrenheit)
	s.RegisterTool(tools.CalendarNamesTool(), tools.HandleCalendarNames)
}

// RegisterDefaultResources registers all the default resources with the server
func (s *Server) RegisterDefaultResources() {
	logger.Info("Registering default resources...")
	for _, r := range resources.GetResources() {
		s.RegisterResource(r)
	}
}

// Start processes requests until the input ends or the process is signalled
func (s *Server) Start() error {
	logger.Info("Starting MCP server")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.ProcessRequests()
	}()

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		logger.Info("Received signal:", sig)
		return nil
	}
}

// ProcessRequests reads and answers requests until the transport reaches EOF
func (s *Server) ProcessRequests() error {
	for {
		req, err := s.transport.ReadRequest()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			var malformed *transport.MalformedRequestError
			if errors.As(err, &malformed) {
				resp := protocol.NewJsonRpcErrorResponse(protocol.ErrParse, malformed.Error(), nil, nil)
				if err := s.transport.WriteResponse(resp); err != nil {
					return err
				}
				continue
			}
			return err
		}

		// a nil response means none is required
		resp := s.handleRequest(req)
		if resp == nil {
			continue
		}
		if err := s.transport.WriteResponse(resp); err != nil {
			return err
		}
	}
}

// handleRequest processes a request and returns a response
func (s *Server) handleRequest(req *protocol.JsonRpcRequest) *protocol.JsonRpcResponse {
	logger.Info(">> ", req.Method)
	logger.Debug("Full request:", string(req.Params))

	if strings.HasPrefix(req.Method, protocol.NotificationPrefix) {
		logger.Info("Received notification:", req.Method)
		return nil
	}

	resp := &protocol.JsonRpcResponse{
		JsonRPC: protocol.JsonRpcVersion,
		ID:      req.ID,
	}

	var handler HandlerFunc
	var params any

	if req.Method == string(protocol.MethodInvokeTool) {
		var invokeParams struct {
			Name       string `json:"name"`
			Parameters any    `json:"parameters"`
		}
		if err := json.Unmarshal(req.Params, &invokeParams); err != nil {
			resp.Error = &protocol.JsonRpcError{
				Code:    protocol.ErrInvalidParams,
				Message: "Invalid parameters for invoke_tool: " + err.Error(),
			}
			return resp
		}
		if invokeParams.Name == "" {
			resp.Error = &protocol.JsonRpcError{
				Code:    protocol.ErrInvalidParams,
				Message: "Missing tool name in invoke_tool parameters",
			}
			return resp
		}
		logger.Info("Tool invocation requested for:", invokeParams.Name)
		handler = s.toolHandler(invokeParams.Name)
		params = invokeParams.Parameters
	} else {
		handler = s.handlers[req.Method]
		params = req.Params
	}

	if handler == nil {
		resp.Error = &protocol.JsonRpcError{
			Code:    protocol.ErrMethodNotFound,
			Message: fmt.Sprintf("Method not found: %s", req.Method),
		}
		return resp
	}

	result, err := handler(params)
	if err == nil && result == nil {
		return nil
	}
	if err != nil {
		logger.Warn("Request failed:", req.Method, err)
		var rpcErr *protocol.JsonRpcError
		if errors.As(err, &rpcErr) {
			resp.Error = rpcErr
		} else {
			resp.Error = &protocol.JsonRpcError{
				Code:    protocol.ErrToolExecutionFailed,
				Message: err.Error(),
			}
		}
		return resp
	}

	resultBytes, err := json.Marshal(result)
	if err != nil {
		resp.Error = &protocol.JsonRpcError{
			Code:    protocol.ErrInternal,
			Message: "Failed to marshal result: " + err.Error(),
		}
		return resp
	}
	resp.Result = resultBytes
	logger.Debug("Full response:", string(resultBytes))
	return resp
}

// toolHandler finds a tool by name, with or without the tool prefix
func (s *Server) toolHandler(name string) HandlerFunc {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h, ok := s.handlers[name]; ok && strings.HasPrefix(name, protocol.ToolPrefix) {
		return h
	}
	return s.handlers[protocol.ToolPrefix+name]
}

// decodeParams re-decodes raw or already decoded params into v
func decodeParams(params any, v any) error {
	var data []byte
	switch p := params.(type) {
	case nil:
		return nil
	case json.RawMessage:
		data = p
	default:
		var err error
		if data, err = json.Marshal(params); err != nil {
			return err
		}
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

func invalidParams(format string, a ...any) error {
	return &protocol.JsonRpcError{Code: protocol.ErrInvalidParams, Message: fmt.Sprintf(format, a...)}
}

// handleToolsList handles the tools/list method
func (s *Server) handleToolsList(params any) (any, error) {
	logger.Info("Handling tools/list request")
	return protocol.ToolsResponse{Tools: s.GetTools()}, nil
}

// handleResourcesList handles the resources/list method
func (s *Server) handleResourcesList(params any) (any, error) {
	logger.Info("Handling resources/list request")
	s.mu.Lock()
	defer s.mu.Unlock()
	return protocol.ResourceResponse{Resources: append([]protocol.Resource(nil), s.resources...)}, nil
}

// handleResourcesRead handles the resources/read method
func (s *Server) handleResourcesRead(params any) (any, error) {
	var readParams struct {
		URI string `json:"uri"`
	}
	if err := decodeParams(params, &readParams); err != nil {
		return nil, invalidParams("invalid resources/read parameters: %v", err)
	}
	if readParams.URI == "" {
		return nil, invalidParams("missing uri in resources/read parameters")
	}
	resp, err := resources.ReadResource(readParams.URI)
	if err != nil {
		return nil, invalidParams("%v", err)
	}
	return resp, nil
}

// handleInitialize handles the initialize method
func (s *Server) handleInitialize(params any) (any, error) {
	logger.Info("Handling initialize request with", len(s.tools), "tools registered")

	var initParams struct {
		ProtocolVersion string `json:"protocolVersion"`
	}
	if err := decodeParams(params, &initParams); err != nil {
		logger.Warn("Failed to read initialize params:", err)
	}
	version := defaultProtocolVersion
	if initParams.ProtocolVersion != "" {
		version = initParams.ProtocolVersion
	}
	logger.Info("Final protocol version to use:", version)

	capabilities := map[string]any{}
	if len(s.tools) > 0 {
		capabilities["tools"] = map[string]any{"listChanged": true}
	}
	if len(s.resources) > 0 {
		capabilities["resources"] = map[string]any{}
	}

	type serverInfo struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	}
	return struct {
		ProtocolVersion string         `json:"protocolVersion"`
		Capabilities    map[string]any `json:"capabilities"`
		ServerInfo      serverInfo     `json:"serverInfo"`
	}{
		ProtocolVersion: version,
		Capabilities:    capabilities,
		ServerInfo:      serverInfo{Name: ServerName, Version: ServerVersion},
	}, nil
}

// handleInitialized handles the initialized notification, which gets no response
func (s *Server) handleInitialized(params any) (any, error) {
	logger.Info("Handling initialized notification")
	return nil, nil
}

func (s *Server) handleToolsCall(params any) (any, error) {
	logger.Info("Handling tools/call request")

	var callParams struct {
		Arguments map[string]any `json:"arguments"`
		Name      string         `json:"name"`
	}
	if err := decodeParams(params, &callParams); err != nil {
		return nil, invalidParams("invalid tools/call parameters: %v", err)
	}

	logger.Info("Tool call requested for:", callParams.Name)
	handler := s.toolHandler(callParams.Name)
	if handler == nil {
		return nil, &protocol.JsonRpcError{
			Code:    protocol.ErrMethodNotFound,
			Message: fmt.Sprintf("tool not found: %s", callParams.Name),
		}
	}

	result, err := handler(callParams.Arguments)
	if err != nil {
		return nil, fmt.Errorf("tool execution failed: %w", err)
	}
	return result, nil
}
