package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/njchilds90/polyrat"
	"github.com/njchilds90/polyrat/parser"
	"github.com/stretchr/testify/assert"
)

func TestSessionPipe(t *testing.T) {
	assert := assert.New(t)

	var out bytes.Buffer
	engine := polyrat.NewEngine(polyrat.DefaultOptions())
	s := &session{engine: engine, parser: parser.New(engine), format: "string", out: &out}

	input := strings.Join([]string{
		"(x + 1)(x - 1)",
		":at 3",
		"1/x",
		":at 0",
		":latex",
		"x/2",
		":bogus",
		":quit",
		"x + 1",
	}, "\n")
	assert.Nil(s.pipe(strings.NewReader(input)))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal("x^2 - 1", lines[0])
	assert.Equal("8", lines[1])
	assert.Equal("1/x", lines[2])
	assert.Contains(lines[3], "pole")
	assert.Equal(`\frac{1}{2}x`, lines[4])
	assert.Contains(lines[5], "unknown command")
	assert.Len(lines, 6)
}

func TestRender(t *testing.T) {
	assert := assert.New(t)

	v, err := parser.Parse("(x^2 + 1)/(x + 1)")
	assert.Nil(err)
	for format, want := range map[string]string{
		"string": "x - 1 + 2/(x + 1)",
		"latex":  `x - 1 + \frac{2}{x + 1}`,
	} {
		out, err := render(v, format)
		assert.Nil(err)
		assert.Equal(want, out)
	}
	out, err := render(v, "json")
	assert.Nil(err)
	assert.Contains(out, `"kind":"mixed"`)
	_, err = render(v, "yaml")
	assert.NotNil(err)
}
