package assistant

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/smileynet/addressbook/internal/book"
	"github.com/smileynet/addressbook/internal/contact"
	"github.com/smileynet/addressbook/internal/render"
)

// scriptReader replays fixed lines, then returns err (io.EOF when nil).
type scriptReader struct {
	lines []string
	err   error
}

func (r *scriptReader) Readline() (string, error) {
	if len(r.lines) == 0 {
		if r.err != nil {
			return "", r.err
		}
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

// handle runs a command and fails the test on error.
func handle(t *testing.T, s *Session, line string) string {
	t.Helper()
	out, err := s.Handle(line)
	if err != nil {
		t.Fatalf("Handle(%q) error = %v", line, err)
	}
	return out
}

func TestHandle_Commands(t *testing.T) {
	tests := []struct {
		name  string
		setup []string
		line  string
		want  string
	}{
		{name: "hello", line: "hello", want: "How can I help you?"},
		{name: "command word is case-insensitive", line: "HeLLo", want: "How can I help you?"},
		{name: "blank line", line: "   ", want: ""},
		{
			name: "add new contact with phone",
			line: "add John 1234567890",
			want: "Contact John added to address book\nPhone 1234567890 added to contact John",
		},
		{
			name: "add new contact without phone",
			line: "add John",
			want: "Contact John added to address book",
		},
		{
			name:  "add phone to existing contact",
			setup: []string{"add John 1234567890"},
			line:  "add John 5555555555",
			want:  "Phone 5555555555 added to contact John",
		},
		{
			name:  "add existing contact without phone",
			setup: []string{"add John"},
			line:  "add John",
			want:  "Contact John already exists",
		},
		{
			name:  "change",
			setup: []string{"add John 1234567890"},
			line:  "change John 1234567890 1112223333",
			want:  "Phone 1234567890 changed to 1112223333 for contact John",
		},
		{
			name:  "remove",
			setup: []string{"add John 1234567890"},
			line:  "remove John 1234567890",
			want:  "Phone 1234567890 removed from contact John",
		},
		{
			name:  "phone lists in order",
			setup: []string{"add John 1234567890", "add John 5555555555"},
			line:  "phone John",
			want:  "John: 1234567890; 5555555555",
		},
		{
			name:  "phone with none",
			setup: []string{"add John"},
			line:  "phone John",
			want:  "John: no phones",
		},
		{
			name:  "find present phone",
			setup: []string{"add John 5555555555"},
			line:  "find John 5555555555",
			want:  "John: 5555555555",
		},
		{
			name:  "find absent phone is not an error",
			setup: []string{"add John 5555555555"},
			line:  "find John 0000000000",
			want:  "Phone 0000000000 not found for contact John",
		},
		{
			name:  "delete",
			setup: []string{"add Jane 9876543210"},
			line:  "delete Jane",
			want:  "Contact Jane deleted from address book",
		},
		{name: "all on empty book", line: "all", want: "No contacts saved"},
		{
			name:  "all lists in insertion order",
			setup: []string{"add John 1234567890", "add Jane 9876543210"},
			line:  "all",
			want:  "Contact name: John, phones: 1234567890\nContact name: Jane, phones: 9876543210",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(book.New())
			for _, line := range tt.setup {
				handle(t, s, line)
			}
			if got := handle(t, s, tt.line); got != tt.want {
				t.Errorf("Handle(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   []string
		line    string
		wantErr error
	}{
		{name: "unknown command", line: "dance", wantErr: ErrUnknownCommand},
		{name: "add without name", line: "add", wantErr: ErrUsage},
		{name: "add with extra args", line: "add John 1234567890 5555555555", wantErr: ErrUsage},
		{name: "change with too few args", line: "change John 1234567890", wantErr: ErrUsage},
		{name: "hello with args", line: "hello there", wantErr: ErrUsage},
		{name: "add invalid phone", line: "add John 123", wantErr: contact.ErrValidation},
		{name: "phone of unknown contact", line: "phone Unknown", wantErr: book.ErrNotFound},
		{name: "delete unknown contact", line: "delete Unknown", wantErr: book.ErrNotFound},
		{name: "find on unknown contact", line: "find Unknown 1234567890", wantErr: book.ErrNotFound},
		{
			name:    "remove absent phone",
			setup:   []string{"add John 1234567890"},
			line:    "remove John 9999999999",
			wantErr: contact.ErrNotFound,
		},
		{
			name:    "change to invalid phone",
			setup:   []string{"add John 1234567890"},
			line:    "change John 1234567890 12345abcde",
			wantErr: contact.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(book.New())
			for _, line := range tt.setup {
				handle(t, s, line)
			}
			out, err := s.Handle(tt.line)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Handle(%q) error = %v, want %v", tt.line, err, tt.wantErr)
			}
			if out != "" {
				t.Errorf("Handle(%q) output = %q, want empty on error", tt.line, out)
			}
		})
	}
}

func TestHandle_FailedAddLeavesBookUnchanged(t *testing.T) {
	// Given: an empty book
	b := book.New()
	s := NewSession(b)

	// When: a new contact is added with an invalid phone
	if _, err := s.Handle("add Bob 123"); !errors.Is(err, contact.ErrValidation) {
		t.Fatalf("Handle() error = %v, want ErrValidation", err)
	}

	// Then: no record was stored
	if b.Len() != 0 {
		t.Errorf("Len() = %d, want 0", b.Len())
	}
}

func TestHandle_Exit(t *testing.T) {
	for _, word := range []string{"exit", "close", "quit", "EXIT"} {
		t.Run(word, func(t *testing.T) {
			out, err := NewSession(book.New()).Handle(word)
			if !errors.Is(err, ErrExit) {
				t.Fatalf("Handle(%q) error = %v, want ErrExit", word, err)
			}
			if out != "Good bye!" {
				t.Errorf("Handle(%q) = %q, want %q", word, out, "Good bye!")
			}
		})
	}
}

func TestHandle_HelpOption(t *testing.T) {
	s := NewSession(book.New(), WithHelp("Commands:\n  hello\n"))

	if got := handle(t, s, "help"); got != "Commands:\n  hello" {
		t.Errorf("help = %q, want custom help text", got)
	}
}

func TestHandle_DefaultHelpNamesCommands(t *testing.T) {
	got := handle(t, NewSession(book.New()), "help")

	for name := range commands {
		if name == "close" || name == "quit" {
			continue
		}
		if !strings.Contains(got, name) {
			t.Errorf("default help %q missing %q", got, name)
		}
	}
}

func TestHandle_TableRenderer(t *testing.T) {
	s := NewSession(book.New(), WithRenderer(render.Table{}))
	handle(t, s, "add John 1234567890")

	got := handle(t, s, "all")
	if !strings.Contains(got, "(1 contacts)") || !strings.Contains(got, "John") {
		t.Errorf("all with table renderer = %q", got)
	}
}

func TestRun_Transcript(t *testing.T) {
	// Given: a scripted session that hits an error midway and then exits
	lines := &scriptReader{lines: []string{
		"hello",
		"add John 1234567890",
		"add John 123",
		"",
		"phone John",
		"exit",
		"add Jane 9876543210",
	}}
	b := book.New()
	var out, errOut bytes.Buffer

	// When: the session runs
	if err := NewSession(b).Run(lines, &out, &errOut); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Then: results go to out, the error goes to errOut, and input after exit is ignored
	wantOut := "How can I help you?\n" +
		"Contact John added to address book\n" +
		"Phone 1234567890 added to contact John\n" +
		"John: 1234567890\n" +
		"Good bye!\n"
	if out.String() != wantOut {
		t.Errorf("out = %q, want %q", out.String(), wantOut)
	}
	if !strings.HasPrefix(errOut.String(), "error: ") || !strings.Contains(errOut.String(), "10 digits") {
		t.Errorf("errOut = %q, want a single validation error line", errOut.String())
	}
	if _, err := b.Find("Jane"); !errors.Is(err, book.ErrNotFound) {
		t.Errorf("Find(Jane) error = %v, want ErrNotFound (input after exit)", err)
	}
}

func TestRun_EOFEndsSession(t *testing.T) {
	lines := &scriptReader{lines: []string{"add John"}}
	var out, errOut bytes.Buffer

	if err := NewSession(book.New()).Run(lines, &out, &errOut); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if errOut.Len() != 0 {
		t.Errorf("errOut = %q, want empty", errOut.String())
	}
}

func TestRun_ReadError(t *testing.T) {
	readErr := errors.New("terminal gone")
	lines := &scriptReader{err: readErr}
	var out, errOut bytes.Buffer

	err := NewSession(book.New()).Run(lines, &out, &errOut)
	if !errors.Is(err, readErr) {
		t.Errorf("Run() error = %v, want wrapped read error", err)
	}
}
