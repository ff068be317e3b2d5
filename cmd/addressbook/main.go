package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/chzyer/readline"

	"github.com/smileynet/addressbook"
	"github.com/smileynet/addressbook/internal/assistant"
	"github.com/smileynet/addressbook/internal/book"
	"github.com/smileynet/addressbook/internal/config"
	"github.com/smileynet/addressbook/internal/contact"
	"github.com/smileynet/addressbook/internal/demo"
	"github.com/smileynet/addressbook/internal/render"
	"github.com/smileynet/addressbook/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for addressbook.
type CLI struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	Demo    DemoCmd          `cmd:"" help:"Run the scripted address book walkthrough."`
	Shell   ShellCmd         `cmd:"" help:"Start the interactive contact assistant."`
	Browse  BrowseCmd        `cmd:"" help:"Browse the walkthrough contacts."`
}

// loadConfig loads layered config from user and project paths with env overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/addressbook/config.yaml"),
		".addressbook/config.yaml",
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveConfig loads config, applies a non-empty format flag, and validates.
func resolveConfig(format string) (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if format != "" {
		cfg.Display.Format = format
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DemoCmd runs the scripted walkthrough.
type DemoCmd struct {
	Format string `help:"Output format: plain or table (default from config)."`
}

// Run executes the demo command.
func (d *DemoCmd) Run() error {
	cfg, err := resolveConfig(d.Format)
	if err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	return d.run(os.Stdout, cfg)
}

// run executes the walkthrough with the configured renderer, enabling testable wiring.
func (d *DemoCmd) run(w io.Writer, cfg *config.Config) error {
	r, err := render.New(cfg.Display.Format)
	if err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	return demo.Run(w, r)
}

// ShellCmd starts the interactive assistant over an in-memory book.
type ShellCmd struct {
	Format string `help:"Output format for the all command: plain or table (default from config)."`
	Demo   bool   `help:"Start with the walkthrough contacts loaded." default:"false"`
}

// Run executes the shell command with a readline prompt on the terminal.
func (s *ShellCmd) Run() error {
	cfg, err := resolveConfig(s.Format)
	if err != nil {
		return fmt.Errorf("shell: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cfg.Shell.Prompt,
		HistoryFile:     cfg.Shell.HistoryFile,
		AutoComplete:    newCommandCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("shell: initializing prompt: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintln(rl.Stdout(), "Welcome to the assistant bot! Type help for commands.")
	return s.run(rl.Stdout(), rl.Stderr(), lineSource{rl: rl}, cfg)
}

// run executes the session loop over lines, enabling testable wiring.
func (s *ShellCmd) run(w, errW io.Writer, lines assistant.LineReader, cfg *config.Config) error {
	r, err := render.New(cfg.Display.Format)
	if err != nil {
		return fmt.Errorf("shell: %w", err)
	}

	b := book.New()
	if s.Demo {
		if err := demo.Seed(b); err != nil {
			return fmt.Errorf("shell: %w", err)
		}
	}

	session := assistant.NewSession(b,
		assistant.WithRenderer(r),
		assistant.WithHelp(addressbook.ShellHelp),
	)
	if err := session.Run(lines, w, errW); err != nil {
		return fmt.Errorf("shell: %w", err)
	}
	return nil
}

// readlineReader is the subset of *readline.Instance used by lineSource.
type readlineReader interface {
	Readline() (string, error)
}

// lineSource adapts readline to assistant.LineReader.
// Ctrl+C on an empty line ends the session; on a partial line it discards the line.
type lineSource struct {
	rl readlineReader
}

func (l lineSource) Readline() (string, error) {
	line, err := l.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		if line == "" {
			return "", io.EOF
		}
		return "", nil
	}
	return line, err
}

// newCommandCompleter creates a readline completer for the shell commands.
func newCommandCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("hello"),
		readline.PcItem("add"),
		readline.PcItem("change"),
		readline.PcItem("remove"),
		readline.PcItem("phone"),
		readline.PcItem("find"),
		readline.PcItem("delete"),
		readline.PcItem("all"),
		readline.PcItem("help"),
		readline.PcItem("exit"),
	)
}

// BrowseCmd opens the contact browser on the walkthrough contacts.
type BrowseCmd struct {
	Format string `help:"Output format when not interactive: plain or table (default from config)."`
	NoTUI  bool   `help:"Force plain text output even if stdout is a TTY." default:"false"`
}

// Run executes the browse command.
func (c *BrowseCmd) Run() error {
	cfg, err := resolveConfig(c.Format)
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return c.run(ctx, os.Stdout, cfg)
}

// run seeds a book and hands it to the browser, enabling testable wiring.
func (c *BrowseCmd) run(ctx context.Context, w io.Writer, cfg *config.Config) error {
	r, err := render.New(cfg.Display.Format)
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}

	b := book.New()
	if err := demo.Seed(b); err != nil {
		return fmt.Errorf("browse: %w", err)
	}

	browser := tui.NewBrowser(tui.BrowserOptions{
		Writer:     w,
		ForcePlain: c.NoTUI || cfg.Display.NoTUI,
		Renderer:   r,
	})
	if err := browser.Run(ctx, b); err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	return nil
}

// Exit codes.
const (
	exitSuccess = 0
	exitDomain  = 1
	exitSetup   = 2
)

// exitCode maps contact and lookup failures to exitDomain and everything
// else (config, terminal, format) to exitSetup.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	if errors.Is(err, contact.ErrValidation) ||
		errors.Is(err, contact.ErrNotFound) ||
		errors.Is(err, book.ErrNotFound) {
		return exitDomain
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Description("In-memory contact address book."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
