package main

import (
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/retrofont/backend/ansi"
	"github.com/npillmayer/retrofont/core"
	"github.com/npillmayer/retrofont/core/font"
	"github.com/npillmayer/retrofont/engine/render"
	"github.com/pterm/pterm"
)

// Intp is our interpreter object for interactive previews.
type Intp struct {
	app    *app
	repl   *readline.Instance
	font   font.Font
	opts   render.Options
	fg, bg font.Color
}

func (a *app) preview(args []string) error {
	fs, c := a.flags("preview")
	rf := addRenderFlags(fs)
	if err := a.parse(fs, c, args); err != nil {
		return err
	}
	rf.configure(a.conf)
	intp, err := a.newIntp(rf)
	if err != nil {
		return err
	}
	intp.repl, err = readline.NewEx(&readline.Config{
		Prompt: "retrofont > ",
		Stdin:  a.in,
		Stdout: a.out,
	})
	if err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot start interactive mode")
	}
	defer intp.repl.Close()
	pterm.Fprintln(a.out, pterm.Sprintf("Previewing %s. Quit with <ctrl>D, help with :help", intp.font.Description()))
	intp.REPL()
	return nil
}

func (a *app) newIntp(rf *renderFlags) (*Intp, error) {
	opts, err := render.OptionsFromConfig(a.conf)
	if err != nil {
		return nil, err
	}
	fg, bg, err := colors(rf)
	if err != nil {
		return nil, err
	}
	f, err := a.selectFont(*rf.font, *rf.num)
	if err != nil {
		return nil, err
	}
	return &Intp{app: a, font: f, opts: opts, fg: fg, bg: bg}, nil
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		quit, err := intp.execute(line, intp.app.out)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Fprintln(intp.app.out, "Good bye!")
}

// execute renders a line of text or executes a command. Commands start
// with a colon.
func (intp *Intp) execute(line string, out io.Writer) (quit bool, err error) {
	if !strings.HasPrefix(line, ":") {
		if strings.TrimSpace(line) == "" {
			return false, nil
		}
		screen, err := ansi.NewScreen(intp.fg, intp.bg)
		if err != nil {
			return false, err
		}
		if err = render.Text(screen, intp.font, line, intp.opts); err != nil {
			return false, err
		}
		_, err = screen.WriteTo(out)
		return false, err
	}
	fields := strings.Fields(line[1:])
	if len(fields) == 0 {
		return false, nil
	}
	arg := ""
	if len(fields) > 1 {
		arg = strings.Join(fields[1:], " ")
	}
	tracer().Debugf("command %s %q", fields[0], arg)
	switch strings.ToLower(fields[0]) {
	case "quit", "q", "exit":
		return true, nil
	case "edit":
		intp.opts.Mode = render.Edit
	case "display":
		intp.opts.Mode = render.Display
	case "strict":
		intp.opts.Strict = !intp.opts.Strict
		pterm.Fprintln(out, "strict mode:", intp.opts.Strict)
	case "outline":
		style, err := strconv.Atoi(arg)
		if err != nil {
			return false, core.Error(core.EINVALID, "outline style must be a number: %q", arg)
		}
		opts := intp.opts
		opts.OutlineStyle = style
		if err = opts.Validate(); err != nil {
			return false, err
		}
		intp.opts = opts
	case "font":
		f, err := intp.app.selectFont(arg, 1)
		if err != nil {
			return false, err
		}
		intp.font = f
		pterm.Fprintln(out, f.Description())
	case "chars":
		var sb strings.Builder
		for _, ch := range intp.font.Chars() {
			sb.WriteRune(ch)
		}
		pterm.Fprintln(out, sb.String())
	default:
		help(out)
	}
	return false, nil
}

func help(out io.Writer) {
	pterm.Fprintln(out, `Type text to render it. Commands:
  :font <name>    switch to another font
  :outline <n>    select outline style 0…18
  :edit           reveal markers of TheDraw fonts
  :display        hide markers again
  :strict         toggle failing for missing characters
  :chars          list the characters of the font
  :quit           leave`)
}
