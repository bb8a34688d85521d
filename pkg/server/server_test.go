package server

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/richard-senior/smoothcurve/internal/config"
	"github.com/richard-senior/smoothcurve/pkg/protocol"
	"github.com/richard-senior/smoothcurve/pkg/tools"
	"github.com/richard-senior/smoothcurve/pkg/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run feeds the requests through a server and returns the responses keyed by id
func run(t *testing.T, requests ...string) map[string]*protocol.JsonRpcResponse {
	t.Helper()
	tb, err := tools.NewToolbox(config.Default(), nil)
	require.NoError(t, err)

	var out bytes.Buffer
	s := New(transport.NewStreamTransport(strings.NewReader(strings.Join(requests, "\n")), &out), tb)
	require.NoError(t, s.ProcessRequests())

	ret := map[string]*protocol.JsonRpcResponse{}
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if line == "" {
			continue
		}
		resp, err := protocol.ParseJsonRpcResponse([]byte(line))
		require.NoError(t, err, line)
		id, _ := json.Marshal(resp.ID)
		ret[string(id)] = resp
	}
	return ret
}

func result(t *testing.T, resp *protocol.JsonRpcResponse) map[string]any {
	t.Helper()
	require.NotNil(t, resp)
	require.Nil(t, resp.Error, "unexpected error %v", resp.Error)
	var m map[string]any
	require.NoError(t, json.Unmarshal(resp.Result, &m))
	return m
}

func TestLifecycle(t *testing.T) {
	got := run(t,
		`{"jsonrpc":"2.0","method":"initialize","params":{"protocolVersion":"2025-03-26"},"id":0}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","method":"tools/list","id":1}`,
		`{"jsonrpc":"2.0","method":"resources/list","id":2}`,
	)
	// the notification gets no response
	require.Len(t, got, 3)

	initResult := result(t, got["0"])
	assert.Equal(t, "2025-03-26", initResult["protocolVersion"])
	assert.Equal(t, ServerName, initResult["serverInfo"].(map[string]any)["name"])
	assert.Contains(t, initResult["capabilities"], "tools")

	var list protocol.ToolsResponse
	require.NoError(t, json.Unmarshal(got["1"].Result, &list))
	var names []string
	for _, tool := range list.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"mcp___smooth_path",
		"mcp___normalize_array",
		"mcp___climate_chart",
		"mcp___climate_report",
		"mcp___celsius_to_fahrenheit",
		"mcp___calendar_names",
	}, names)

	var resources protocol.ResourceResponse
	require.NoError(t, json.Unmarshal(got["2"].Result, &resources))
	assert.Len(t, resources.Resources, 3)
}

func TestToolsCall(t *testing.T) {
	got := run(t,
		`{"jsonrpc":"2.0","method":"tools/call","params":{"name":"mcp___smooth_path","arguments":{"points":[[0,0],[10,5],[20,0]],"smoothing":0}},"id":1}`,
		`{"jsonrpc":"2.0","method":"tools/call","params":{"name":"celsius_to_fahrenheit","arguments":{"celsius":-40}},"id":2}`,
		`{"jsonrpc":"2.0","method":"invoke_tool","params":{"name":"normalize_array","parameters":{"values":[0,5,10],"min":0,"max":1}},"id":3}`,
		`{"jsonrpc":"2.0","method":"tools/call","params":{"name":"mcp___nope","arguments":{}},"id":4}`,
		`{"jsonrpc":"2.0","method":"tools/call","params":{"name":"mcp___smooth_path","arguments":{}},"id":5}`,
	)

	assert.Equal(t, "M 0,0 C 0,0 10,5 10,5 C 10,5 20,0 20,0", result(t, got["1"])["d"])
	assert.Equal(t, -40.0, result(t, got["2"])["fahrenheit"])
	assert.Equal(t, []any{0.0, 0.5, 1.0}, result(t, got["3"])["values"])

	require.NotNil(t, got["4"].Error)
	assert.Equal(t, protocol.ErrMethodNotFound, got["4"].Error.Code)
	require.NotNil(t, got["5"].Error)
	assert.Equal(t, protocol.ErrToolExecutionFailed, got["5"].Error.Code)
	assert.Contains(t, got["5"].Error.Message, "points parameter is required")
}

func TestResourcesRead(t *testing.T) {
	got := run(t,
		`{"jsonrpc":"2.0","method":"resources/read","params":{"uri":"calendar://names"},"id":1}`,
		`{"jsonrpc":"2.0","method":"resources/read","params":{"uri":"x://y"},"id":2}`,
	)
	contents := result(t, got["1"])["contents"].([]any)
	require.Len(t, contents, 1)
	assert.Contains(t, contents[0].(map[string]any)["text"], "January")

	require.NotNil(t, got["2"].Error)
	assert.Equal(t, protocol.ErrInvalidParams, got["2"].Error.Code)
}

func TestErrors(t *testing.T) {
	got := run(t,
		`{"jsonrpc":"2.0","method":"prompts/list","id":1}`,
		`{"jsonrpc":"1.0","method":"tools/list","id":2}`,
		`{"jsonrpc":"2.0","method":"invoke_tool","params":{"parameters":{}},"id":3}`,
	)
	assert.Equal(t, protocol.ErrMethodNotFound, got["1"].Error.Code)
	// unreadable requests are answered with a null id
	assert.Equal(t, protocol.ErrParse, got["null"].Error.Code)
	assert.Equal(t, protocol.ErrInvalidParams, got["3"].Error.Code)
}
