package transport

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"sync"
	"unicode"

	"github.com/richard-senior/smoothcurve/internal/logger"
	"github.com/richard-senior/smoothcurve/pkg/protocol"
)

// StdioTransport exchanges JSON-RPC messages over a byte stream,
// stdin and stdout unless built with NewStreamTransport
type StdioTransport struct {
	reader *bufio.Reader
	writer *bufio.Writer
	mu     sync.Mutex
}

// NewStdioTransport creates a new transport that uses stdin/stdout
func NewStdioTransport() *StdioTransport {
	return NewStreamTransport(os.Stdin, os.Stdout)
}

// NewStreamTransport creates a transport over any reader/writer pair
func NewStreamTransport(r io.Reader, w io.Writer) *StdioTransport {
	return &StdioTransport{
		reader: bufio.NewReader(r),
		writer: bufio.NewWriter(w),
	}
}

// ReadRequest reads one JSON object from the stream. Messages may span lines
// or share one; the object ends when its outermost brace closes.
func (t *StdioTransport) ReadRequest() (*protocol.JsonRpcRequest, error) {
	logger.Debug("Waiting for request...")

	var requestData []byte
	var depth int
	var inString, escapeNext bool

	for {
		b, err := t.reader.ReadByte()
		if err != nil {
			if err == io.EOF {
				if len(requestData) > 0 {
					logger.Warn("Stream closed mid message")
					return nil, io.ErrUnexpectedEOF
				}
				logger.Info("Received EOF, client disconnected")
				return nil, err
			}
			logger.Error("Error reading request:", err)
			return nil, err
		}

		// skip whitespace between messages
		if depth == 0 && len(requestData) == 0 && unicode.IsSpace(rune(b)) {
			continue
		}
		requestData = append(requestData, b)

		if inString {
			switch {
			case escapeNext:
				escapeNext = false
			case b == '\\':
				escapeNext = true
			case b == '"':
				inString = false
			}
			continue
		}

		switch b {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
		}
		if depth <= 0 {
			break
		}
	}

	logger.Debug("Received raw request:", string(requestData))

	request, err := protocol.ParseJsonRpcRequest(requestData)
	if err != nil {
		logger.Error("Failed to parse JSON-RPC request:", err)
		return nil, &MalformedRequestError{Raw: string(requestData), Err: err}
	}
	return request, nil
}

// WriteResponse writes a JSON-RPC response followed by a newline
func (t *StdioTransport) WriteResponse(response *protocol.JsonRpcResponse) error {
	responseBytes, err := json.Marshal(response)
	if err != nil {
		logger.Error("Failed to marshal response:", err)
		return err
	}
	responseBytes = append(responseBytes, '\n')

	logger.Debug("Sending response:", string(responseBytes))

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := t.writer.Write(responseBytes); err != nil {
		logger.Error("Failed to write response:", err)
		return err
	}
	if err := t.writer.Flush(); err != nil {
		logger.Error("Failed to flush response:", err)
		return err
	}
	return nil
}
