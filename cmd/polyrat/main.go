package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/njchilds90/polyrat"
	"github.com/njchilds90/polyrat/config"
	"github.com/njchilds90/polyrat/logger"
	"github.com/njchilds90/polyrat/parser"
	"github.com/njchilds90/polyrat/server"
	"github.com/njchilds90/polyrat/tool"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.NewApp()
	app.Name = "polyrat"
	app.Usage = "Exact arithmetic on polynomials and rational functions over the rationals."
	app.Version = config.BuildVersion
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "the TOML configuration file",
		},
		&cli.StringFlag{
			Name:    "mode",
			Aliases: []string{"m"},
			Usage:   "the multiplication mode: exact, auto or fft",
		},
		&cli.StringFlag{
			Name:    "log",
			Aliases: []string{"l"},
			Usage:   "the log level: error, info, verbose or debug",
		},
		&cli.StringFlag{
			Name:  "filter",
			Usage: "the RE2 regex pattern to filter log",
		},
	}
	app.EnableBashCompletion = true
	app.Commands = []*cli.Command{
		{
			Name:      "eval",
			Aliases:   []string{"e"},
			Usage:     "Normalize each expression argument",
			ArgsUsage: "EXPR...",
			Action:    evalCmd,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "string",
					Usage:   "the output format: string, pretty, latex or json",
				},
				&cli.StringFlag{
					Name:  "at",
					Usage: "evaluate the result at this rational point",
				},
			},
		},
		{
			Name:    "repl",
			Aliases: []string{"r"},
			Usage:   "Read expressions interactively, or line by line from a pipe",
			Action:  replCmd,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "string",
					Usage:   "the initial output format",
				},
			},
		},
		{
			Name:    "serve",
			Aliases: []string{"s"},
			Usage:   "Serve tool calls over HTTP",
			Action:  serveCmd,
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "port",
					Aliases: []string{"p"},
					Usage:   "the port to listen, overriding the configuration",
				},
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(c *cli.Context) (*config.Custom, error) {
	custom, err := config.Initialize(c.String("config"))
	if err != nil {
		return nil, err
	}
	if c.IsSet("mode") {
		if _, err := polyrat.ParseMulMode(c.String("mode")); err != nil {
			return nil, err
		}
		custom.Engine.MultiplyMode = c.String("mode")
	}
	if c.IsSet("log") {
		if _, err := logger.ParseLevel(c.String("log")); err != nil {
			return nil, err
		}
		custom.Log.Level = c.String("log")
	}
	if c.IsSet("filter") {
		custom.Log.Filter = c.String("filter")
	}
	return custom, custom.ApplyLog()
}

func render(v polyrat.Value, format string) (string, error) {
	switch strings.ToLower(format) {
	case "", "string":
		return v.String(), nil
	case "pretty":
		return v.Pretty(), nil
	case "latex":
		return v.LaTeX(), nil
	case "json":
		return polyrat.ToJSON(v)
	}
	return "", errors.Errorf("unknown format %q", format)
}

func evalCmd(c *cli.Context) error {
	custom, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.NArg() == 0 {
		return errors.New("eval needs at least one expression")
	}
	engine := polyrat.NewEngine(custom.Options())
	p := parser.New(engine)
	for _, arg := range c.Args().Slice() {
		v, err := p.Parse(arg)
		if err != nil {
			return errors.Wrapf(err, "%q", arg)
		}
		if at := c.String("at"); at != "" {
			point, err := p.Parse(at)
			if err != nil {
				return errors.Wrapf(err, "--at %q", at)
			}
			r, err := engine.Evaluate(v, point)
			if err != nil {
				return err
			}
			fmt.Println(r.String())
			continue
		}
		out, err := render(v, c.String("format"))
		if err != nil {
			return err
		}
		fmt.Println(out)
	}
	return nil
}

func serveCmd(c *cli.Context) error {
	custom, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.IsSet("port") {
		custom.Server.Port = c.Int("port")
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	d := tool.NewDispatcher(polyrat.NewEngine(custom.Options()))
	return server.StartHTTP(ctx, d, custom)
}
