package tool

import (
	"encoding/json"
	"testing"

	"github.com/njchilds90/polyrat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleToolCall(t *testing.T) {
	assert := assert.New(t)

	resp := HandleToolCall(ToolRequest{Tool: "mul", Params: map[string]interface{}{"a": "x + 1", "b": "x - 1"}})
	assert.Empty(resp.Error)
	assert.Equal("x^2 - 1", resp.String)
	assert.Equal("x^{2} - 1", resp.LaTeX)

	resp = HandleToolCall(ToolRequest{Tool: "div", Params: map[string]interface{}{"a": "x^2 + 1", "b": "x + 1"}})
	assert.Equal("x - 1 + 2/(x + 1)", resp.String)
	v, ok := resp.Result.(polyrat.Value)
	assert.True(ok)
	assert.Equal(polyrat.KindMixed, v.Kind())

	resp = HandleToolCall(ToolRequest{Tool: "gcd", Params: map[string]interface{}{"a": float64(12), "b": 18}})
	assert.Equal("6", resp.String)

	resp = HandleToolCall(ToolRequest{Tool: "pow", Params: map[string]interface{}{"base": "x + 1", "exp": 2}})
	assert.Equal("x^2 + 2x + 1", resp.String)

	resp = HandleToolCall(ToolRequest{Tool: "evaluate", Params: map[string]interface{}{"expr": "x^2 - 1", "at": "1/2"}})
	assert.Equal("-3/4", resp.String)
	assert.Equal("-0.75000000000000000000", resp.Result.(map[string]interface{})["decimal"])

	resp = HandleToolCall(ToolRequest{Tool: "divmod", Params: map[string]interface{}{"a": "x^2 + 1", "b": "x + 1"}})
	assert.Equal("quotient x - 1, remainder 2", resp.String)
}

func TestHandleToolCallValueObject(t *testing.T) {
	require := require.New(t)

	first := HandleToolCall(ToolRequest{Tool: "parse", Params: map[string]interface{}{"expr": "1/x"}})
	require.Empty(first.Error)

	// Feed the JSON result back in as an operand.
	b, err := json.Marshal(first.Result)
	require.NoError(err)
	var obj map[string]interface{}
	require.NoError(json.Unmarshal(b, &obj))

	resp := HandleToolCall(ToolRequest{Tool: "add", Params: map[string]interface{}{"a": obj, "b": "x"}})
	require.Empty(resp.Error)
	require.Equal("x + 1/x", resp.String)
}

func TestHandleToolCallErrors(t *testing.T) {
	assert := assert.New(t)

	for code, req := range map[string]ToolRequest{
		"pole":             {Tool: "evaluate", Params: map[string]interface{}{"expr": "1/x", "at": 0}},
		"division_by_zero": {Tool: "div", Params: map[string]interface{}{"a": "x", "b": "0"}},
		"type_mismatch":    {Tool: "mod", Params: map[string]interface{}{"a": "1/x", "b": "x"}},
		"invalid_exponent": {Tool: "pow", Params: map[string]interface{}{"base": "x", "exp": -1}},
		"syntax":           {Tool: "parse", Params: map[string]interface{}{"expr": "(x"}},
		"invalid_params":   {Tool: "add", Params: map[string]interface{}{"a": "x"}},
		"conversion":       {Tool: "parse", Params: map[string]interface{}{"expr": 3.14159}},
		"unknown_tool":     {Tool: "integrate"},
	} {
		resp := HandleToolCall(req)
		assert.NotEmpty(resp.Error, code)
		assert.Equal(code, resp.Code, req.Tool)
	}
}

func TestHandleToolCallUnsignedParams(t *testing.T) {
	assert := assert.New(t)

	resp := HandleToolCall(ToolRequest{Tool: "add", Params: map[string]interface{}{"a": uint64(1 << 40), "b": uint(1)}})
	assert.Empty(resp.Error)
	assert.Equal("1099511627777", resp.String)

	resp = HandleToolCall(ToolRequest{Tool: "add", Params: map[string]interface{}{"a": uint64(1 << 63), "b": "x"}})
	assert.Equal("invalid_params", resp.Code)
}

func TestSpec(t *testing.T) {
	require := require.New(t)

	var spec struct {
		Tools []struct {
			Name string `json:"name"`
		} `json:"tools"`
	}
	require.NoError(json.Unmarshal([]byte(Spec()), &spec))
	names := map[string]bool{}
	for _, tool := range spec.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{"parse", "add", "sub", "mul", "div", "mod", "divmod", "pow", "gcd", "evaluate", "tool_spec"} {
		require.True(names[want], want)
	}

	resp := HandleToolCall(ToolRequest{Tool: "tool_spec"})
	require.Equal(Spec(), resp.Result)
}
