package operation

import (
	"github.com/go-training/maths-mcp/pkg/operation/calculator"

	"github.com/mark3labs/mcp-go/server"
)

/*
RegisterMathsTool registers the maths tools to the specified MCPServer instance.

Parameters:
  - s: Pointer to the MCPServer instance where the tools will be registered.

This function registers add, subtract, multiply, divide and power. All of them are
pure computations and are registered as read operations.
*/
func RegisterMathsTool(s *server.MCPServer) {
	tool := &Tool{}

	for _, t := range calculator.Tools() {
		tool.RegisterRead(t)
	}

	s.AddTools(tool.Tools()...)
}

/*
Tool manages collections of tools to be registered with an MCPServer.

Fields:
  - read: Stores all ServerTools registered as read operations.
*/
type Tool struct {
	read []server.ServerTool
}

/*
RegisterRead registers a ServerTool as a read operation.

Tools registered here get the read-only and idempotent hints set on their
annotations, whatever the tool definition said.
*/
func (t *Tool) RegisterRead(s server.ServerTool) {
	readOnly, idempotent := true, true
	s.Tool.Annotations.ReadOnlyHint = &readOnly
	s.Tool.Annotations.IdempotentHint = &idempotent
	t.read = append(t.read, s)
}

/*
Tools returns all registered ServerTools.

Returns:
  - []server.ServerTool: A slice containing all read tools in registration order.
*/
func (t *Tool) Tools() []server.ServerTool {
	tools := make([]server.ServerTool, 0, len(t.read))
	tools = append(tools, t.read...)
	return tools
}
