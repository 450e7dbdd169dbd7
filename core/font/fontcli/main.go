/*
Command fontcli renders, converts and inspects retro fonts.

Usage:

	fontcli render  --font <path|name> --text <text> [--num n] [--edit] [--outline 0-18]
	                [--fg 0-15] [--bg 0-15] [--strict] [--html] [--lenient]
	fontcli convert --input <path> --output <path> [--type block|color|outline] [--drop]
	fontcli inspect --font <path|name>
	fontcli preview --font <path|name> [--num n] [--outline 0-18]

Fonts are TheDraw bundles (.tdf) or FIGlet fonts (.flf), possibly gzipped or
in a ZIP archive. Fonts may be given as a file path, an http(s) URL, or the
name of a font found in the directories of --fontpath. Fonts "blocky" and
"term" are always available.

All commands accept --trace (Debug|Info|Error), --tracer (go|logrus) and
--tracefile. The exit code is non-zero for every error.
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/retrofont/core"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/logrusadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'retrofont.fonts'
func tracer() tracing.Trace {
	return tracing.Select("retrofont.fonts")
}

var traceKeys = []string{"retrofont.fonts", "retrofont.render", "retrofont.resources"}

func main() {
	initDisplay()
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	tracing.RegisterTraceAdapter("logrus", logrusadapter.GetAdapter(), false)
	a := &app{out: os.Stdout, in: os.Stdin, configureTracing: true}
	if err := a.run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		core.UserError(err)
		os.Exit(core.Code(err))
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// app holds the state of one invocation.
type app struct {
	out              io.Writer
	in               io.ReadCloser // input of the preview REPL
	conf             testconfig.Conf
	configureTracing bool // false for tests, which configure tracing themselves
}

// common are the flags every command accepts.
type common struct {
	trace, tracer, tracefile *string
	fontpath                 *string
	lenient                  *bool
}

func (a *app) flags(name string) (*flag.FlagSet, *common) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	c := &common{
		trace:     fs.String("trace", "Error", "Trace level [Debug|Info|Error]"),
		tracer:    fs.String("tracer", "go", "Tracing adapter [go|logrus]"),
		tracefile: fs.String("tracefile", "", "Trace destination (Stdout, Stderr or file://path)"),
		fontpath:  fs.String("fontpath", os.Getenv("RETROFONT_PATH"), "Directories to search for fonts"),
		lenient:   fs.Bool("lenient", false, "Accept TheDraw glyphs without terminator"),
	}
	return fs, c
}

// parse parses the command's flags and sets up the configuration.
func (a *app) parse(fs *flag.FlagSet, c *common, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return core.WrapError(err, core.EINVALID, "%s: %v", fs.Name(), err)
	}
	a.conf = testconfig.Conf{
		"tracing.adapter": *c.tracer,
		"fonts.path":      *c.fontpath,
		"tdf.lenient":     fmt.Sprintf("%v", *c.lenient),
	}
	if *c.tracefile != "" {
		a.conf["tracing.destination"] = *c.tracefile
	}
	for _, key := range traceKeys {
		a.conf["trace."+key] = *c.trace
	}
	if !a.configureTracing {
		return nil
	}
	if err := trace2go.ConfigureRoot(a.conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return core.WrapError(err, core.EINVALID, "error configuring tracing")
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracer().Debugf("trace level is %s", *c.trace)
	return nil
}

func (a *app) run(args []string) error {
	if len(args) == 0 {
		a.usage()
		return core.Error(core.EINVALID, "no command given")
	}
	switch strings.ToLower(args[0]) {
	case "render":
		return a.render(args[1:])
	case "convert":
		return a.convert(args[1:])
	case "inspect":
		return a.inspect(args[1:])
	case "preview":
		return a.preview(args[1:])
	case "help", "-h", "--help", "-help":
		a.usage()
		return nil
	}
	a.usage()
	return core.Error(core.EINVALID, "unknown command %q", args[0])
}

func (a *app) usage() {
	fmt.Fprintln(a.out, `Usage: fontcli <command> [flags]

Commands:
  render   render text with a font
  convert  convert a FIGlet font to a TheDraw font
  inspect  list the fonts of a font file
  preview  render lines typed interactively

Use "fontcli <command> -h" for the flags of a command.`)
}
