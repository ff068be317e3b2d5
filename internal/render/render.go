// Package render writes address book records for humans.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/smileynet/addressbook/internal/contact"
)

// Supported output formats.
const (
	FormatPlain = "plain"
	FormatTable = "table"
)

// ErrUnknownFormat indicates a format name with no renderer.
var ErrUnknownFormat = errors.New("render: unknown format")

// Renderer writes a list of records to w.
type Renderer interface {
	Render(w io.Writer, recs []*contact.Record) error
}

// New returns the renderer for format.
func New(format string) (Renderer, error) {
	switch format {
	case FormatPlain, "":
		return Plain{}, nil
	case FormatTable:
		return Table{}, nil
	default:
		return nil, fmt.Errorf("%w: %q (want %q or %q)", ErrUnknownFormat, format, FormatPlain, FormatTable)
	}
}

// Plain writes one "Contact name: ..., phones: ..." line per record.
type Plain struct{}

// Render implements Renderer.
func (Plain) Render(w io.Writer, recs []*contact.Record) error {
	for _, r := range recs {
		if _, err := fmt.Fprintln(w, r); err != nil {
			return err
		}
	}
	return nil
}

// Table writes records as a light box-drawn table with a count footer.
type Table struct{}

// Render implements Renderer.
func (Table) Render(w io.Writer, recs []*contact.Record) error {
	if len(recs) == 0 {
		_, err := fmt.Fprintln(w, "(0 contacts)")
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Phones"})
	for _, r := range recs {
		t.AppendRow(table.Row{r.Name().String(), JoinPhones(r.Phones())})
	}
	t.Render()

	_, err := fmt.Fprintf(w, "(%d contacts)\n", len(recs))
	return err
}

// JoinPhones joins phones with "; " in their given order.
func JoinPhones(phones []contact.Phone) string {
	vals := make([]string, len(phones))
	for i, p := range phones {
		vals[i] = p.String()
	}
	return strings.Join(vals, "; ")
}
