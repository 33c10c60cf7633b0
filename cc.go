package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Joana-Martins/C-Compiler/emit"
	"github.com/Joana-Martins/C-Compiler/lexer"
	"github.com/Joana-Martins/C-Compiler/parse"
	"github.com/Joana-Martins/C-Compiler/setting"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

const version = "0.02"

type driver struct {
	stdin          io.Reader
	stdout, stderr io.Writer
	cfg            *setting.Config
	log            *logrus.Logger
	roundtrip      bool
	tokens         bool
	color          bool
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "cc",
		Usage:     "check the syntax of a reduced C translation unit",
		Version:   version,
		ArgsUsage: "FILE.c (- for stdin)",
		Description: "Environment variables:\n" +
			"   CCDEBUG=true enables extended error messages for debugging the parser.",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load settings from `FILE`"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "print the syntax tree as none, c, json or yaml"},
			&cli.StringSliceFlag{Name: "typedef", Aliases: []string{"t"}, Usage: "predeclare `NAME` as a typedef name"},
			&cli.BoolFlag{Name: "roundtrip", Usage: "check that the printed tree parses back to the same tree"},
			&cli.BoolFlag{Name: "tokens", Aliases: []string{"T"}, Usage: "print tokens after lexing (for debugging)"},
			&cli.StringFlag{Name: "color", Usage: "color diagnostics: auto, always or never"},
			&cli.BoolFlag{Name: "debug", EnvVars: []string{"CCDEBUG"}, Usage: "extended error messages for debugging the parser"},
			&cli.StringFlag{Name: "log-level", Usage: "log `LEVEL` (trace, debug, info, warn, error)"},
		},
	}
}

// realMain runs the driver and returns the process exit status.
func realMain(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	status := 0
	app := newApp()
	app.Writer = stdout
	app.ErrWriter = stderr
	app.Action = func(c *cli.Context) error {
		if c.NArg() != 1 {
			_ = cli.ShowAppHelp(c)
			return errors.New("bad number of args, please specify a single source file")
		}
		d, err := newDriver(c, stdin, stdout, stderr)
		if err != nil {
			return err
		}
		status = d.run(c.Args().First())
		return nil
	}
	if err := app.Run(args); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return status
}

func newDriver(c *cli.Context, stdin io.Reader, stdout, stderr io.Writer) (*driver, error) {
	cfg, err := setting.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if c.IsSet("format") {
		cfg.Output.Format = c.String("format")
	}
	if c.IsSet("color") {
		cfg.Output.Color = c.String("color")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	cfg.Parser.Typedefs = append(cfg.Parser.Typedefs, c.StringSlice("typedef")...)
	if c.Bool("debug") {
		cfg.Parser.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logrus.New()
	log.Out = stderr
	log.Level, _ = logrus.ParseLevel(cfg.Log.Level)
	if cfg.Parser.Debug && log.Level < logrus.DebugLevel {
		log.Level = logrus.DebugLevel
	}

	return &driver{
		stdin:     stdin,
		stdout:    stdout,
		stderr:    stderr,
		cfg:       cfg,
		log:       log,
		roundtrip: c.Bool("roundtrip"),
		tokens:    c.Bool("tokens"),
		color:     useColor(cfg.Output.Color, stderr),
	}, nil
}

func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (d *driver) paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if d.color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func (d *driver) readSource(path string) (string, []byte, error) {
	if path == "-" {
		src, err := io.ReadAll(d.stdin)
		return "<stdin>", src, errors.Wrap(err, "reading stdin")
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return path, nil, errors.Wrapf(err, "failed to open source file %s for parsing", path)
	}
	return path, src, nil
}

func (d *driver) run(path string) int {
	name, src, err := d.readSource(path)
	if err != nil {
		fmt.Fprintln(d.stderr, err)
		return 1
	}
	if d.tokens {
		if err := tokenizeFile(name, src, d.stdout); err != nil {
			d.paint(color.FgRed, color.Bold).Fprintln(d.stderr, err)
			reportError(d.stderr, err, src, d.color)
			return 1
		}
		return 0
	}

	start := time.Now()
	tu, err := parse.Parse(lexer.Lex(name, bytes.NewReader(src)), parse.Options{
		TypeNames: parse.NewScopeStack(d.cfg.Parser.Typedefs...),
		Diagnostic: func(msg string) {
			d.paint(color.FgRed, color.Bold).Fprintln(d.stderr, msg)
		},
		Log:   d.log,
		Debug: d.cfg.Parser.Debug,
	})
	log := d.log.WithFields(logrus.Fields{
		"file":    name,
		"elapsed": time.Since(start).String(),
	})
	if err != nil {
		log.WithError(err).Debug("parse failed")
		reportError(d.stderr, err, src, d.color)
		d.paint(color.FgRed).Fprintln(d.stdout, "PARSE FAILED!")
		return 1
	}
	log.WithField("decls", len(tu.Decls)).Debug("parsed")

	if err := d.output(tu); err != nil {
		fmt.Fprintln(d.stderr, err)
		return 1
	}
	if d.roundtrip {
		if err := emit.Roundtrip(tu, d.cfg.Parser.Typedefs); err != nil {
			fmt.Fprintln(d.stderr, err)
			d.paint(color.FgRed).Fprintln(d.stdout, "ROUNDTRIP FAILED!")
			return 1
		}
		log.Debug("roundtrip ok")
	}
	d.paint(color.FgGreen).Fprintln(d.stdout, "PARSE SUCCESSFUL!")
	return 0
}

func (d *driver) output(tu *parse.TranslationUnit) error {
	var err error
	switch d.cfg.Output.Format {
	case "c":
		err = emit.Emit(tu, d.stdout)
	case "json":
		err = emit.JSON(tu, d.stdout)
	case "yaml":
		err = emit.YAML(tu, d.stdout)
	}
	return errors.Wrapf(err, "writing %s output", d.cfg.Output.Format)
}

func tokenizeFile(name string, src []byte, out io.Writer) error {
	lx := lexer.Lex(name, bytes.NewReader(src))
	for {
		tok, err := lx.Next()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s:%s:%d:%d\n", tok.Kind, tok.Val, tok.Pos.Line, tok.Pos.Col)
		if tok.Kind == lexer.EOF {
			return nil
		}
	}
}

func main() {
	os.Exit(realMain(os.Args, os.Stdin, os.Stdout, os.Stderr))
}
