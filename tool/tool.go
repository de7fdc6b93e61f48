// Package tool exposes the engine as JSON tool calls for agent frameworks.
package tool

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/njchilds90/polyrat"
	"github.com/njchilds90/polyrat/parser"
	"github.com/pkg/errors"
)

type ToolRequest struct {
	Tool   string                 `json:"tool" msgpack:"tool"`
	Params map[string]interface{} `json:"params" msgpack:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty" msgpack:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty" msgpack:"latex,omitempty"`
	String string      `json:"string,omitempty" msgpack:"string,omitempty"`
	Pretty string      `json:"pretty,omitempty" msgpack:"pretty,omitempty"`
	Error  string      `json:"error,omitempty" msgpack:"error,omitempty"`
	Code   string      `json:"code,omitempty" msgpack:"code,omitempty"`
}

// Dispatcher runs tool calls against one engine.
type Dispatcher struct {
	engine *polyrat.Engine
	parser *parser.Parser
}

func NewDispatcher(engine *polyrat.Engine) *Dispatcher {
	if engine == nil {
		engine = polyrat.NewEngine(polyrat.DefaultOptions())
	}
	return &Dispatcher{engine: engine, parser: parser.New(engine)}
}

// ErrorCode names the error kind of err, or "error" for anything else.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, polyrat.ErrTypeMismatch):
		return "type_mismatch"
	case errors.Is(err, polyrat.ErrDivisionByZero):
		return "division_by_zero"
	case errors.Is(err, polyrat.ErrInvalidExponent):
		return "invalid_exponent"
	case errors.Is(err, polyrat.ErrConversion):
		return "conversion"
	case errors.Is(err, polyrat.ErrPole):
		return "pole"
	case errors.Is(err, polyrat.ErrNumericAccuracy):
		return "numeric_accuracy"
	case errors.Is(err, parser.ErrSyntax):
		return "syntax"
	case errors.Is(err, errParam):
		return "invalid_params"
	}
	return "error"
}

var errParam = errors.New("tool: invalid params")

func failure(err error) ToolResponse {
	return ToolResponse{Error: err.Error(), Code: ErrorCode(err)}
}

func respond(v polyrat.Value) ToolResponse {
	return ToolResponse{Result: v, LaTeX: v.LaTeX(), String: v.String(), Pretty: v.Pretty()}
}

// operand reads a parameter given as an expression string, a number, or a
// value object in the ToJSON layout. Integer widths cover msgpack bodies.
func (d *Dispatcher) operand(params map[string]interface{}, key string) (polyrat.Operand, error) {
	raw, ok := params[key]
	if !ok {
		return nil, errors.Wrapf(errParam, "missing param: %s", key)
	}
	switch v := raw.(type) {
	case string:
		val, err := d.parser.Parse(v)
		if err != nil {
			return nil, err
		}
		return val, nil
	case float64:
		return polyrat.Float(v), nil
	case float32:
		return polyrat.Float(v), nil
	case int:
		return polyrat.Int(v), nil
	case int8:
		return polyrat.Int(v), nil
	case int16:
		return polyrat.Int(v), nil
	case int32:
		return polyrat.Int(v), nil
	case int64:
		return polyrat.Int(v), nil
	case uint8:
		return polyrat.Int(v), nil
	case uint16:
		return polyrat.Int(v), nil
	case uint32:
		return polyrat.Int(v), nil
	case uint:
		return uintOperand(key, uint64(v))
	case uint64:
		return uintOperand(key, v)
	case map[string]interface{}:
		val, err := polyrat.FromJSON(v)
		if err != nil {
			return nil, err
		}
		return val, nil
	}
	return nil, errors.Wrapf(errParam, "param %s must be an expression string, number or value object", key)
}

func uintOperand(key string, n uint64) (polyrat.Operand, error) {
	if n > math.MaxInt64 {
		return nil, errors.Wrapf(errParam, "param %s: %d overflows int64", key, n)
	}
	return polyrat.Int(n), nil
}

func (d *Dispatcher) binary(req ToolRequest, a, b string, op func(x, y polyrat.Operand) (polyrat.Value, error)) ToolResponse {
	x, err := d.operand(req.Params, a)
	if err != nil {
		return failure(err)
	}
	y, err := d.operand(req.Params, b)
	if err != nil {
		return failure(err)
	}
	v, err := op(x, y)
	if err != nil {
		return failure(err)
	}
	return respond(v)
}

func (d *Dispatcher) HandleToolCall(req ToolRequest) ToolResponse {
	e := d.engine
	switch req.Tool {
	case "parse", "simplify":
		x, err := d.operand(req.Params, "expr")
		if err != nil {
			return failure(err)
		}
		v, err := e.Lift(x)
		if err != nil {
			return failure(err)
		}
		return respond(v)
	case "add":
		return d.binary(req, "a", "b", e.Add)
	case "sub":
		return d.binary(req, "a", "b", e.Sub)
	case "mul":
		return d.binary(req, "a", "b", e.Mul)
	case "div":
		return d.binary(req, "a", "b", e.Quo)
	case "mod":
		return d.binary(req, "a", "b", e.Rem)
	case "pow":
		return d.binary(req, "base", "exp", e.Pow)
	case "gcd":
		return d.binary(req, "a", "b", e.GCD)

	case "divmod":
		x, err := d.operand(req.Params, "a")
		if err != nil {
			return failure(err)
		}
		y, err := d.operand(req.Params, "b")
		if err != nil {
			return failure(err)
		}
		quo, err := e.Quo(x, y)
		if err != nil {
			return failure(err)
		}
		rem, err := e.Rem(x, y)
		if err != nil {
			return failure(err)
		}
		q, err := e.Lift(quo.Poly())
		if err != nil {
			return failure(err)
		}
		return ToolResponse{
			Result: map[string]interface{}{"quotient": q, "remainder": rem},
			String: fmt.Sprintf("quotient %s, remainder %s", q, rem),
		}

	case "evaluate":
		x, err := d.operand(req.Params, "expr")
		if err != nil {
			return failure(err)
		}
		at, err := d.operand(req.Params, "at")
		if err != nil {
			return failure(err)
		}
		r, err := e.Evaluate(x, at)
		if err != nil {
			return failure(err)
		}
		return ToolResponse{
			Result: map[string]interface{}{"value": r.String(), "decimal": r.DecimalString(20)},
			String: r.String(),
		}

	case "tool_spec":
		return ToolResponse{Result: Spec(), String: "tool specification"}
	}
	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool), Code: "unknown_tool"}
}

// HandleToolCall runs req on the default exact engine.
func HandleToolCall(req ToolRequest) ToolResponse {
	return NewDispatcher(nil).HandleToolCall(req)
}

func Spec() string {
	operand := []string{"string", "number", "object"}
	pair := map[string]interface{}{"a": operand, "b": operand}
	tools := []map[string]interface{}{
		ts("parse", "Parse an expression into normal form: polynomial part plus proper reduced fraction", []string{"expr"}, map[string]interface{}{"expr": operand}),
		ts("add", "a + b", []string{"a", "b"}, pair),
		ts("sub", "a - b", []string{"a", "b"}, pair),
		ts("mul", "a * b", []string{"a", "b"}, pair),
		ts("div", "a / b as quotient plus remainder/b", []string{"a", "b"}, pair),
		ts("mod", "Remainder of polynomial division a % b", []string{"a", "b"}, pair),
		ts("divmod", "Quotient and remainder of polynomial division", []string{"a", "b"}, pair),
		ts("pow", "base^exp for a non-negative integer exp", []string{"base", "exp"}, map[string]interface{}{"base": operand, "exp": operand}),
		ts("gcd", "Greatest common divisor of two polynomials", []string{"a", "b"}, pair),
		ts("evaluate", "Substitute a rational point for the variable", []string{"expr", "at"}, map[string]interface{}{"expr": operand, "at": operand}),
		ts("tool_spec", "Return this tool schema", []string{}, map[string]interface{}{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]interface{}) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
