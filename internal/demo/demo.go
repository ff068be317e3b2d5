// Package demo runs a scripted walkthrough of the address book.
package demo

import (
	"fmt"
	"io"

	"github.com/smileynet/addressbook/internal/book"
	"github.com/smileynet/addressbook/internal/contact"
	"github.com/smileynet/addressbook/internal/render"
)

// seedContacts lists the walkthrough contacts in insertion order.
var seedContacts = []struct {
	name   string
	phones []string
}{
	{name: "John", phones: []string{"1234567890", "5555555555"}},
	{name: "Jane", phones: []string{"9876543210"}},
}

// Seed adds the walkthrough contacts to b.
func Seed(b *book.AddressBook) error {
	for _, c := range seedContacts {
		rec, err := contact.NewRecord(c.name)
		if err != nil {
			return fmt.Errorf("demo: %w", err)
		}
		for _, p := range c.phones {
			if _, err := rec.AddPhone(p); err != nil {
				return fmt.Errorf("demo: %w", err)
			}
		}
		b.AddRecord(rec)
	}
	return nil
}

// Run seeds a fresh book, lists it, edits one of John's phones, looks a
// phone up, and deletes Jane. Listings are written through r.
func Run(w io.Writer, r render.Renderer) error {
	b := book.New()
	if err := Seed(b); err != nil {
		return err
	}

	if err := r.Render(w, b.Records()); err != nil {
		return fmt.Errorf("demo: rendering contacts: %w", err)
	}

	john, err := b.Find("John")
	if err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	if _, err := john.EditPhone("1234567890", "1112223333"); err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	if err := r.Render(w, []*contact.Record{john}); err != nil {
		return fmt.Errorf("demo: rendering contacts: %w", err)
	}

	// A miss prints an empty phone.
	found, _ := john.FindPhone("5555555555")
	_, _ = fmt.Fprintf(w, "%s: %s\n", john.Name(), found)

	if _, err := b.Delete("Jane"); err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	return nil
}
