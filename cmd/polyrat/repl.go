package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/njchilds90/polyrat"
	"github.com/njchilds90/polyrat/config"
	"github.com/njchilds90/polyrat/parser"
	"github.com/peterh/liner"
	"github.com/urfave/cli/v2"
)

const replHelp = `enter an expression such as (x^2 + 1)/(x + 1), or a command:
  :string :pretty :latex :json   switch the output format
  :at EXPR                        evaluate the last result at EXPR
  :help                           show this help
  :quit                           leave`

type session struct {
	engine *polyrat.Engine
	parser *parser.Parser
	format string
	last   polyrat.Value
	out    io.Writer
}

// handle runs one input line and reports whether the session should end.
func (s *session) handle(line string) bool {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return false
	case line == ":quit" || line == ":q":
		return true
	case line == ":help":
		fmt.Fprintln(s.out, replHelp)
	case line == ":string" || line == ":pretty" || line == ":latex" || line == ":json":
		s.format = line[1:]
	case strings.HasPrefix(line, ":at "):
		point, err := s.parser.Parse(line[len(":at "):])
		if err != nil {
			fmt.Fprintln(s.out, "error:", err)
			return false
		}
		r, err := s.engine.Evaluate(s.last, point)
		if err != nil {
			fmt.Fprintln(s.out, "error:", err)
			return false
		}
		fmt.Fprintln(s.out, r.String())
	case strings.HasPrefix(line, ":"):
		fmt.Fprintf(s.out, "unknown command %s, try :help\n", line)
	default:
		v, err := s.parser.Parse(line)
		if err != nil {
			fmt.Fprintln(s.out, "error:", err)
			return false
		}
		s.last = v
		out, err := render(v, s.format)
		if err != nil {
			fmt.Fprintln(s.out, "error:", err)
			return false
		}
		fmt.Fprintln(s.out, out)
	}
	return false
}

func replCmd(c *cli.Context) error {
	custom, err := loadConfig(c)
	if err != nil {
		return err
	}
	if _, err := render(polyrat.Value{}, c.String("format")); err != nil {
		return err
	}
	engine := polyrat.NewEngine(custom.Options())
	s := &session{engine: engine, parser: parser.New(engine), format: c.String("format"), out: os.Stdout}

	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return s.pipe(os.Stdin)
	}
	return s.interactive()
}

func (s *session) pipe(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if s.handle(scanner.Text()) {
			return nil
		}
	}
	return scanner.Err()
}

func (s *session) interactive() error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	fmt.Fprintln(s.out, "polyrat", config.BuildVersion, "- :help for commands")
	for {
		input, err := line.Prompt("> ")
		switch err {
		case nil:
			line.AppendHistory(input)
			if s.handle(input) {
				return nil
			}
		case liner.ErrPromptAborted:
			continue
		case io.EOF:
			fmt.Fprintln(s.out)
			return nil
		default:
			return err
		}
	}
}
