package tui

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/smileynet/addressbook/internal/book"
	"github.com/smileynet/addressbook/internal/render"
)

// Browser presents the contents of an AddressBook.
type Browser interface {
	Run(ctx context.Context, b *book.AddressBook) error
}

// BrowserOptions configures browser creation.
type BrowserOptions struct {
	Writer     io.Writer       // Output destination (default: os.Stdout).
	Input      io.Reader       // Key input for the TUI (default: os.Stdin).
	ForcePlain bool            // Force plain text even if TTY.
	Renderer   render.Renderer // Used by the plain browser (default: render.Plain).
}

// NewBrowser returns a TUI browser when the writer is a TTY, or a plain
// text browser otherwise. ForcePlain overrides TTY detection.
func NewBrowser(opts BrowserOptions) Browser {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	if opts.Renderer == nil {
		opts.Renderer = render.Plain{}
	}

	plain := &PlainBrowser{w: opts.Writer, r: opts.Renderer}
	if opts.ForcePlain || !isTTY(opts.Writer) {
		return plain
	}
	return &TUIBrowser{w: opts.Writer, in: opts.Input, fallback: plain}
}

// isTTY reports whether w is connected to a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PlainBrowser writes every contact once with a Renderer.
type PlainBrowser struct {
	w io.Writer
	r render.Renderer
}

// Run renders the book's records, or a notice when the book is empty.
func (p *PlainBrowser) Run(ctx context.Context, b *book.AddressBook) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.Len() == 0 {
		_, err := fmt.Fprintln(p.w, "No contacts saved")
		return err
	}
	return p.r.Render(p.w, b.Records())
}

// TUIBrowser runs the interactive Bubble Tea browser.
// Falls back to plain output if the TUI program fails to start.
type TUIBrowser struct {
	w        io.Writer
	in       io.Reader
	fallback Browser
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx is done.
func (t *TUIBrowser) Run(ctx context.Context, b *book.AddressBook) error {
	opts := []tea.ProgramOption{
		tea.WithOutput(t.w),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	}
	if t.in != nil {
		opts = append(opts, tea.WithInput(t.in))
	}

	p := tea.NewProgram(NewModel(b), opts...)
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return t.fallback.Run(ctx, b)
	}
	return nil
}
