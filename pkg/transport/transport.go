package transport

import (
	"fmt"

	"github.com/richard-senior/smoothcurve/pkg/protocol"
)

// Transport defines the interface for communication methods
type Transport interface {
	ReadRequest() (*protocol.JsonRpcRequest, error)
	WriteResponse(*protocol.JsonRpcResponse) error
}

// MalformedRequestError is returned when a complete message was read but it
// is not a valid JSON-RPC request. The stream itself is still usable.
type MalformedRequestError struct {
	Raw string
	Err error
}

func (e *MalformedRequestError) Error() string {
	return fmt.Sprintf("malformed request: %v", e.Err)
}

func (e *MalformedRequestError) Unwrap() error {
	return e.Err
}
