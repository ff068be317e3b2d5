// Package book implements the in-memory address book keyed by contact name.
package book

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/smileynet/addressbook/internal/contact"
)

// ErrNotFound indicates no contact is stored under the requested name.
var ErrNotFound = errors.New("book: contact not found")

// AddressBook maps contact names to Records. Keys always equal the stored
// record's name because records are only inserted through AddRecord.
// Enumeration follows first-insertion order.
//
// An AddressBook is not safe for concurrent use.
type AddressBook struct {
	records map[string]*contact.Record
	order   []string
}

// New returns an empty AddressBook.
func New() *AddressBook {
	return &AddressBook{records: make(map[string]*contact.Record)}
}

// AddRecord stores rec under its name. An existing record with the same name
// is replaced without merging and keeps its enumeration position.
// rec must be non-nil.
func (b *AddressBook) AddRecord(rec *contact.Record) string {
	key := rec.Name().String()
	if _, ok := b.records[key]; !ok {
		b.order = append(b.order, key)
	}
	b.records[key] = rec
	return fmt.Sprintf("Contact %s added to address book", key)
}

// Find returns the record stored under name.
func (b *AddressBook) Find(name string) (*contact.Record, error) {
	rec, ok := b.records[name]
	if !ok {
		return nil, notFound(name)
	}
	return rec, nil
}

// Delete removes the record stored under name.
func (b *AddressBook) Delete(name string) (string, error) {
	if _, ok := b.records[name]; !ok {
		return "", notFound(name)
	}
	delete(b.records, name)
	b.order = slices.DeleteFunc(b.order, func(k string) bool { return k == name })
	return fmt.Sprintf("Contact %s deleted from address book", name), nil
}

// Len returns the number of stored records.
func (b *AddressBook) Len() int {
	return len(b.records)
}

// Names returns the contact names in enumeration order.
func (b *AddressBook) Names() []string {
	return slices.Clone(b.order)
}

// Records returns the stored records in enumeration order.
func (b *AddressBook) Records() []*contact.Record {
	out := make([]*contact.Record, 0, len(b.order))
	for _, k := range b.order {
		out = append(out, b.records[k])
	}
	return out
}

// All yields every name and record in enumeration order.
// The book must not be modified during iteration.
func (b *AddressBook) All() iter.Seq2[string, *contact.Record] {
	return func(yield func(string, *contact.Record) bool) {
		for _, k := range b.order {
			if !yield(k, b.records[k]) {
				return
			}
		}
	}
}

func notFound(name string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, name)
}
