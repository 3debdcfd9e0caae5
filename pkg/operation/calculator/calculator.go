// Package calculator provides the MCP tools for the integer maths operations.
package calculator

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-training/maths-mcp/pkg/core"
	"github.com/go-training/maths-mcp/pkg/maths"
	"github.com/go-training/maths-mcp/pkg/observability"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.opentelemetry.io/otel/attribute"
)

// integer narrows a number property to the JSON Schema integer type.
func integer(schema map[string]any) {
	schema["type"] = "integer"
}

// operandLimits is appended to every tool description.
var operandLimits = fmt.Sprintf(`

Operand Range:
  - a and b must be whole numbers between -%[1]d and %[1]d (2^53 - 1).
    Larger JSON numbers cannot be told apart from their neighbours and are rejected.`, maths.MaxSafeInteger)

func newTool(op maths.Operation, description string) mcp.Tool {
	return mcp.NewTool(op.String(),
		mcp.WithDescription(description+operandLimits),
		mcp.WithNumber("a",
			mcp.Description("The first integer operand"),
			mcp.Required(),
			integer,
		),
		mcp.WithNumber("b",
			mcp.Description("The second integer operand"),
			mcp.Required(),
			integer,
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(false),
	)
}

var AddTool = newTool(maths.Add, `Add two integers and return the result.

Input Parameters:
  - a (integer, required): The first addend
  - b (integer, required): The second addend

Output:
  - The sum a + b as a decimal integer, for example "5".

Error Conditions:
  - "a must be an integer" or "b must be an integer" for non-integer input.
  - "Result exceeds character limit" if the result is greater than 1000.`)

var SubtractTool = newTool(maths.Subtract, `Subtract two integers and return the result.

Input Parameters:
  - a (integer, required): The minuend
  - b (integer, required): The subtrahend

Output:
  - The difference a - b as a decimal integer.

Error Conditions:
  - "a must be an integer" or "b must be an integer" for non-integer input.
  - "Result exceeds character limit" if the result is greater than 1000.`)

var MultiplyTool = newTool(maths.Multiply, `Multiply two integers and return the result.

Input Parameters:
  - a (integer, required): The first factor
  - b (integer, required): The second factor

Output:
  - The product a * b as a decimal integer.

Error Conditions:
  - "a must be an integer" or "b must be an integer" for non-integer input.
  - "Result exceeds character limit" if the result is greater than 1000.`)

var DivideTool = newTool(maths.Divide, `Divide two integers and return the integer result.

The quotient is rounded toward negative infinity: 7 / 2 = 3 and -7 / 2 = -4.

Input Parameters:
  - a (integer, required): The dividend
  - b (integer, required): The divisor, must not be zero

Output:
  - The floored quotient as a decimal integer.

Error Conditions:
  - "Division by zero is not allowed" if b is 0.
  - "a must be an integer" or "b must be an integer" for non-integer input.
  - "Result exceeds character limit" if the result is greater than 1000.`)

var PowerTool = newTool(maths.Power, `Raise a to the power of b and return the result.

Input Parameters:
  - a (integer, required): The base
  - b (integer, required): The exponent, must not be negative

Output:
  - a ** b as a decimal integer. 0 ** 0 is 1.

Error Conditions:
  - "b must be a non-negative integer" for a negative exponent.
  - "a must be an integer" or "b must be an integer" for non-integer input.
  - "Result exceeds character limit" if the result is greater than 1000.`)

var (
	HandleAddTool      = Handler(maths.Add)
	HandleSubtractTool = Handler(maths.Subtract)
	HandleMultiplyTool = Handler(maths.Multiply)
	HandleDivideTool   = Handler(maths.Divide)
	HandlePowerTool    = Handler(maths.Power)
)

// Tools returns the five maths tools paired with their handlers.
func Tools() []server.ServerTool {
	return []server.ServerTool{
		{Tool: AddTool, Handler: HandleAddTool},
		{Tool: SubtractTool, Handler: HandleSubtractTool},
		{Tool: MultiplyTool, Handler: HandleMultiplyTool},
		{Tool: DivideTool, Handler: HandleDivideTool},
		{Tool: PowerTool, Handler: HandlePowerTool},
	}
}

// Handler returns the tool handler for op. Computation failures never come
// back as a Go error: they are returned as an error tool result whose text is
// the JSON encoded maths.Payload.
func Handler(op maths.Operation) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logger := core.LoggerFromCtx(ctx).With("operation", op.String())

		args := req.GetArguments()
		result, err := evaluate(ctx, op, args["a"], args["b"])
		if err != nil {
			kind := maths.KindOf(err).String()
			observability.AddRequestAttributes(ctx,
				attribute.String("maths.operation", op.String()),
				attribute.String("maths.kind", kind),
			)
			logger.Warn("Computation failed", "kind", kind, "error", err)
			return ErrorResult(err), nil
		}

		logger.Debug("Computation succeeded", "result", result)
		return mcp.NewToolResultText(strconv.FormatInt(result, 10)), nil
	}
}

// compute performs the evaluation for a handler.
var compute = func(ctx context.Context, op maths.Operation, a, b any) (int64, error) {
	return core.EvaluatorFromContext(ctx).Evaluate(op.String(), a, b)
}

// evaluate runs compute and turns a panic into an error so that the caller
// always gets a payload.
func evaluate(ctx context.Context, op maths.Operation, a, b any) (result int64, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = 0, fmt.Errorf("%v", r)
		}
	}()
	return compute(ctx, op, a, b)
}

// ErrorResult builds the error tool result for err.
func ErrorResult(err error) *mcp.CallToolResult {
	data, mErr := json.Marshal(maths.Normalize(err))
	if mErr != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultError(string(data))
}
