// Package assistant interprets one-line commands against an address book.
package assistant

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/smileynet/addressbook/internal/book"
	"github.com/smileynet/addressbook/internal/contact"
	"github.com/smileynet/addressbook/internal/render"
)

// Sentinel errors for caller-checkable conditions.
var (
	ErrExit           = errors.New("assistant: exit requested")
	ErrUsage          = errors.New("assistant: wrong arguments")
	ErrUnknownCommand = errors.New("assistant: unknown command")
)

// LineReader supplies input lines. It returns io.EOF when input is exhausted.
// *readline.Instance satisfies it.
type LineReader interface {
	Readline() (string, error)
}

// command describes one shell command and its accepted argument count.
type command struct {
	usage   string
	minArgs int
	maxArgs int
	run     func(s *Session, args []string) (string, error)
}

var commands = map[string]command{
	"hello":  {usage: "hello", run: (*Session).hello},
	"add":    {usage: "add <name> [phone]", minArgs: 1, maxArgs: 2, run: (*Session).add},
	"change": {usage: "change <name> <old> <new>", minArgs: 3, maxArgs: 3, run: (*Session).change},
	"remove": {usage: "remove <name> <phone>", minArgs: 2, maxArgs: 2, run: (*Session).remove},
	"phone":  {usage: "phone <name>", minArgs: 1, maxArgs: 1, run: (*Session).phone},
	"find":   {usage: "find <name> <phone>", minArgs: 2, maxArgs: 2, run: (*Session).find},
	"delete": {usage: "delete <name>", minArgs: 1, maxArgs: 1, run: (*Session).delete},
	"all":    {usage: "all", run: (*Session).all},
	"help":   {usage: "help", run: (*Session).showHelp},
	"exit":   {usage: "exit", run: (*Session).exit},
	"close":  {usage: "close", run: (*Session).exit},
	"quit":   {usage: "quit", run: (*Session).exit},
}

// Session runs commands against a single AddressBook.
type Session struct {
	book     *book.AddressBook
	renderer render.Renderer
	help     string
}

// Option configures a Session.
type Option func(*Session)

// WithRenderer sets the renderer used by the all command.
func WithRenderer(r render.Renderer) Option {
	return func(s *Session) {
		s.renderer = r
	}
}

// WithHelp sets the text printed by the help command.
func WithHelp(text string) Option {
	return func(s *Session) {
		s.help = text
	}
}

// NewSession creates a Session over b using plain rendering.
func NewSession(b *book.AddressBook, opts ...Option) *Session {
	s := &Session{
		book:     b,
		renderer: render.Plain{},
		help:     "Type a command. Known commands: " + strings.Join(commandNames(), ", "),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handle executes a single command line and returns its output.
// Blank lines produce no output. A command that fails leaves the book unchanged.
// The exit commands return their farewell together with ErrExit.
func (s *Session) Handle(line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}

	name := strings.ToLower(fields[0])
	cmd, ok := commands[name]
	if !ok {
		return "", fmt.Errorf("%w: %q (type help for commands)", ErrUnknownCommand, fields[0])
	}

	args := fields[1:]
	if len(args) < cmd.minArgs || len(args) > cmd.maxArgs {
		return "", fmt.Errorf("%w: usage: %s", ErrUsage, cmd.usage)
	}
	return cmd.run(s, args)
}

// Run reads lines until EOF or an exit command, writing results to out and
// failed commands to errOut as "error: ..." lines. Command failures do not
// stop the loop; only read errors other than io.EOF are returned.
func (s *Session) Run(lines LineReader, out, errOut io.Writer) error {
	for {
		line, err := lines.Readline()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("assistant: reading input: %w", err)
		}

		msg, err := s.Handle(line)
		if msg != "" {
			_, _ = fmt.Fprintln(out, msg)
		}
		if errors.Is(err, ErrExit) {
			return nil
		}
		if err != nil {
			_, _ = fmt.Fprintf(errOut, "error: %v\n", err)
		}
	}
}

func (s *Session) hello([]string) (string, error) {
	return "How can I help you?", nil
}

// add creates the contact when absent and then adds the optional phone.
// A new contact is stored only after its phone validates.
func (s *Session) add(args []string) (string, error) {
	name := args[0]
	rec, err := s.book.Find(name)
	isNew := errors.Is(err, book.ErrNotFound)
	if isNew {
		rec, err = contact.NewRecord(name)
	}
	if err != nil {
		return "", err
	}

	var lines []string
	if len(args) == 2 {
		msg, err := rec.AddPhone(args[1])
		if err != nil {
			return "", err
		}
		lines = append(lines, msg)
	}

	if isNew {
		lines = append([]string{s.book.AddRecord(rec)}, lines...)
	} else if len(lines) == 0 {
		lines = append(lines, fmt.Sprintf("Contact %s already exists", name))
	}
	return strings.Join(lines, "\n"), nil
}

func (s *Session) change(args []string) (string, error) {
	rec, err := s.book.Find(args[0])
	if err != nil {
		return "", err
	}
	return rec.EditPhone(args[1], args[2])
}

func (s *Session) remove(args []string) (string, error) {
	rec, err := s.book.Find(args[0])
	if err != nil {
		return "", err
	}
	return rec.RemovePhone(args[1])
}

func (s *Session) phone(args []string) (string, error) {
	rec, err := s.book.Find(args[0])
	if err != nil {
		return "", err
	}
	phones := rec.Phones()
	if len(phones) == 0 {
		return fmt.Sprintf("%s: no phones", rec.Name()), nil
	}
	return fmt.Sprintf("%s: %s", rec.Name(), render.JoinPhones(phones)), nil
}

// find reports a missing phone as a message; only a missing contact is an error.
func (s *Session) find(args []string) (string, error) {
	rec, err := s.book.Find(args[0])
	if err != nil {
		return "", err
	}
	p, ok := rec.FindPhone(args[1])
	if !ok {
		return fmt.Sprintf("Phone %s not found for contact %s", args[1], rec.Name()), nil
	}
	return fmt.Sprintf("%s: %s", rec.Name(), p), nil
}

func (s *Session) delete(args []string) (string, error) {
	return s.book.Delete(args[0])
}

func (s *Session) all([]string) (string, error) {
	if s.book.Len() == 0 {
		return "No contacts saved", nil
	}
	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, s.book.Records()); err != nil {
		return "", fmt.Errorf("assistant: rendering contacts: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

func (s *Session) showHelp([]string) (string, error) {
	return strings.TrimRight(s.help, "\n"), nil
}

func (s *Session) exit([]string) (string, error) {
	return "Good bye!", ErrExit
}

// commandNames returns the known command words in display order.
func commandNames() []string {
	return []string{"hello", "add", "change", "remove", "phone", "find", "delete", "all", "help", "exit"}
}
