// Package main is the entry point for remux, a modal keyboard-driven text
// editor in the Emacs tradition.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/dshills/remux/internal/app"
	"github.com/dshills/remux/internal/backend"
	"github.com/dshills/remux/internal/backend/style"
	"github.com/dshills/remux/internal/buffer"
	"github.com/dshills/remux/internal/editor"
	"github.com/dshills/remux/internal/layout"
	"github.com/dshills/remux/internal/minibuffer"
	"github.com/dshills/remux/internal/script/lua"
)

// paneBG approximates the editor's background for blending tints against;
// selectionTint/isearchTint are the accents selection and isearch-match
// highlighting blend toward, and messageFresh/messageFaded are the
// endpoints a status message's color blends between as it ages.
// Defined as hex literals through style.ColorFromHex rather than raw R/G/B
// fields, and blended at render time via style.Color.Blend, which
// interpolates linearly between the two RGB colors.
var (
	paneBG        = mustColor("#141414")
	selectionTint = mustColor("#264f78")
	isearchTint   = mustColor("#8a6c14")
	messageFresh  = mustColor("#dcdcdc")
	messageFaded  = mustColor("#5a5a5a")
)

func mustColor(hex string) style.Color {
	c, err := style.ColorFromHex(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// Version information, set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	configPath string
	logLevel   string
	path       string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts, showVersion := parseFlags()
	if showVersion {
		fmt.Printf("remux %s (%s)\n", version, commit)
		return 0
	}

	logger := newLogger(opts.logLevel)
	app.SetLogger(logger)

	buf := buffer.New()
	if opts.path != "" {
		if err := buf.OpenFile(opts.path); err != nil {
			fmt.Fprintf(os.Stderr, "remux: %v\n", err)
			return 1
		}
	}

	ed := editor.New(buf, logger)

	if opts.configPath != "" {
		lua.LoadInitFileFrom(ed, logger, opts.configPath)
	} else {
		lua.LoadInitFile(ed, logger)
	}
	if opts.path != "" {
		ed.Hooks().Run("buffer-loaded", opts.path)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "remux: stdin is not a terminal")
		return 1
	}

	tt, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "remux: failed to create terminal: %v\n", err)
		return 1
	}
	if err := tt.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "remux: failed to initialize terminal: %v\n", err)
		return 1
	}
	defer tt.Shutdown()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		ed.RequestQuit()
	}()

	if err := mainLoop(ed, tt); err != nil && !errors.Is(err, app.ErrQuit) {
		fmt.Fprintf(os.Stderr, "remux: %v\n", err)
		return 1
	}
	return 0
}

// pollTimeout bounds how long one tick waits for input, so minibuffer
// message TTLs keep counting down while the keyboard is idle.
const pollTimeout = 250 * time.Millisecond

// mainLoop drives the single-threaded tick loop: wait up to pollTimeout
// for one input event, hand it (or nil on timeout) to the editor, redraw,
// repeat until the editor requests quit.
func mainLoop(ed *editor.Editor, term *backend.Terminal) error {
	w, h := term.Size()
	ed.SetViewport(w, h)

	eventCh := make(chan editor.InputEvent)
	go func() {
		for {
			eventCh <- term.PollEvent()
		}
	}()

	ticker := time.NewTicker(pollTimeout)
	defer ticker.Stop()

	for !ed.ShouldQuit() {
		select {
		case ev := <-eventCh:
			ed.Tick(ev)
		case <-ticker.C:
			ed.Tick(nil)
		}
		render(ed, term)
	}
	ed.Hooks().Run("before-exit", "")
	return app.ErrQuit
}

// render repaints the whole screen every tick; remux's renderer is
// intentionally minimal and tracks no dirty rectangles. The bottom row is
// always reserved for the minibuffer's prompt or status message, with an
// optional border row above it when buffer borders are enabled; the
// editor's viewport already excludes both rows (see Editor.SetViewport).
func render(ed *editor.Editor, term *backend.Terminal) {
	screenW, screenH := term.Size()
	term.Fill(backend.ScreenRect{Top: 0, Left: 0, Bottom: screenH, Right: screenW}, backend.EmptyCell())

	buf := ed.Buffer()
	wrap := ed.WrapMode()
	w, textHeight := ed.Viewport()
	buf.EnsureVisuals(w, wrap)

	scrollX, scrollY := ed.ScrollOffsets()
	sel, hasSel := buf.Selection()
	var matchPos *buffer.Position
	var matchLen int
	if ed.Config().ISearchHighlight {
		matchPos, matchLen = isearchMatch(ed)
	}

	for row, vl := range layout.IterVisibleVisualLines(buf, scrollX, scrollY, w, textHeight, wrap) {
		text := []rune(buf.LineText(vl.BufferY))
		limit := vl.Len
		if limit > w {
			limit = w
		}
		for col := 0; col < limit; col++ {
			x := vl.StartX + col
			if x >= len(text) {
				break
			}
			pos := buffer.Position{X: x, Y: vl.BufferY}
			cellStyle := style.Default()
			switch {
			case hasSel && inSelection(pos, sel):
				cellStyle = selectionStyle()
			case matchPos != nil && pos.Y == matchPos.Y && x >= matchPos.X && x < matchPos.X+matchLen:
				cellStyle = isearchStyle()
			}
			term.SetCell(col, row, backend.NewStyledCell(text[x], cellStyle))
		}
	}

	if ed.Config().BufferBorders && screenH >= 2 {
		for col := 0; col < screenW; col++ {
			term.SetCell(col, screenH-2, backend.NewStyledCell('─', borderStyle()))
		}
	}

	renderMinibuffer(ed, term, screenW, screenH-1)

	cx, cy := cursorScreenPos(ed, screenW, screenH)
	term.ShowCursor(cx, cy)
	term.Show()
}

// inSelection reports whether pos falls within the half-open region
// [sel.Start, sel.End), the same convention buffer.TextBuffer.CopyRegion
// uses to materialize selected text.
func inSelection(pos buffer.Position, sel buffer.Selection) bool {
	if pos.Y < sel.Start.Y || (pos.Y == sel.Start.Y && pos.X < sel.Start.X) {
		return false
	}
	if pos.Y > sel.End.Y || (pos.Y == sel.End.Y && pos.X >= sel.End.X) {
		return false
	}
	return true
}

// isearchMatch returns the position and rune length of the active
// isearch session's current match, or (nil, 0) if no session or match is
// active.
func isearchMatch(ed *editor.Editor) (*buffer.Position, int) {
	is := ed.Isearch()
	if is == nil || is.LastMatch == nil || is.Query == "" {
		return nil, 0
	}
	return is.LastMatch, len([]rune(is.Query))
}

func selectionStyle() style.Style {
	return style.Style{Foreground: style.ColorDefault, Background: paneBG.Blend(selectionTint, 0.65)}
}

func borderStyle() style.Style {
	return style.Style{Foreground: messageFaded, Background: style.ColorDefault}
}

func isearchStyle() style.Style {
	return style.Style{Foreground: style.ColorDefault, Background: paneBG.Blend(isearchTint, 0.65)}
}

// renderMinibuffer paints the minibuffer's prompt/input or status message on
// the bottom row. A status message fades toward messageFaded as its TTL
// runs out, via go-colorful's Blend rather than a hard cutoff.
func renderMinibuffer(ed *editor.Editor, term *backend.Terminal, w, row int) {
	mb := ed.Minibuffer()
	if !mb.Active() {
		return
	}
	cellStyle := style.Default()
	if mb.Mode() == minibuffer.Message {
		fg := messageFresh.Blend(messageFaded, 1-mb.TTLFraction())
		cellStyle = style.Style{Foreground: fg, Background: style.ColorDefault}
	}

	text := []rune(mb.Text())
	for col := 0; col < w; col++ {
		if col < len(text) {
			term.SetCell(col, row, backend.NewStyledCell(text[col], cellStyle))
		} else {
			term.SetCell(col, row, backend.EmptyCell())
		}
	}
}

// cursorScreenPos returns the cursor's screen position: at the end of the
// minibuffer's text while it holds focus, otherwise the buffer cursor's
// visual position, using the same visual-row mapping the scroll commands
// use rather than re-deriving it from raw buffer coordinates.
func cursorScreenPos(ed *editor.Editor, screenW, screenH int) (x, y int) {
	w, _ := ed.Viewport()
	if ed.Minibuffer().Active() && ed.Mode() == editor.Minibuffer {
		x := len([]rune(ed.Minibuffer().Text()))
		if x > screenW-1 {
			x = screenW - 1
		}
		return x, screenH - 1
	}
	buf := ed.Buffer()
	scrollX, scrollY := ed.ScrollOffsets()
	return layout.CursorVisualPos(buf, scrollX, scrollY, w, ed.WrapMode())
}

func parseFlags() (options, bool) {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to init.lua (overrides the default config dir)")
	flag.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "remux - a modal, keyboard-driven text editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: remux [options] [path]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() > 0 {
		opts.path = flag.Arg(0)
	}
	return opts, showVersion
}

// newLogger builds the ambient logger, writing to $XDG_STATE_HOME/remux/
// remux.log when that directory can be resolved and created, falling back to
// stderr otherwise.
func newLogger(levelName string) *app.Logger {
	cfg := app.DefaultLoggerConfig()
	cfg.Level = app.ParseLogLevel(levelName)
	cfg.Prefix = "remux"

	if dir := stateDir(); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err == nil {
			if f, err := os.OpenFile(filepath.Join(dir, "remux.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644); err == nil {
				cfg.Output = f
			}
		}
	}
	return app.NewLogger(cfg)
}

func stateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "remux")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "remux")
}
