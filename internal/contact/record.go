package contact

import (
	"fmt"
	"strings"
)

// Record is a contact entry: one Name and an ordered list of Phones.
// Duplicate phones are allowed; operations addressing a phone act on the first match.
type Record struct {
	name   Name
	phones []Phone
}

// NewRecord creates a Record with no phones. It fails if name is empty.
func NewRecord(name string) (*Record, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	return &Record{name: n}, nil
}

// Name returns the contact name.
func (r *Record) Name() Name {
	return r.name
}

// Phones returns a copy of the phones in insertion order.
func (r *Record) Phones() []Phone {
	return append([]Phone(nil), r.phones...)
}

// AddPhone validates phone and appends it.
func (r *Record) AddPhone(phone string) (string, error) {
	p, err := NewPhone(phone)
	if err != nil {
		return "", err
	}
	r.phones = append(r.phones, p)
	return fmt.Sprintf("Phone %s added to contact %s", phone, r.name), nil
}

// RemovePhone removes the first phone equal to phone.
func (r *Record) RemovePhone(phone string) (string, error) {
	i := r.index(phone)
	if i < 0 {
		return "", r.notFound(phone)
	}
	r.phones = append(r.phones[:i], r.phones[i+1:]...)
	return fmt.Sprintf("Phone %s removed from contact %s", phone, r.name), nil
}

// EditPhone replaces the first phone equal to oldPhone with newPhone, keeping its position.
// The record is unchanged if oldPhone is absent or newPhone is invalid.
func (r *Record) EditPhone(oldPhone, newPhone string) (string, error) {
	i := r.index(oldPhone)
	if i < 0 {
		return "", r.notFound(oldPhone)
	}
	p, err := NewPhone(newPhone)
	if err != nil {
		return "", err
	}
	r.phones[i] = p
	return fmt.Sprintf("Phone %s changed to %s for contact %s", oldPhone, newPhone, r.name), nil
}

// FindPhone returns the first phone equal to phone.
// The boolean is false if no phone matches.
func (r *Record) FindPhone(phone string) (Phone, bool) {
	i := r.index(phone)
	if i < 0 {
		return Phone{}, false
	}
	return r.phones[i], true
}

// String renders the record as "Contact name: <name>, phones: <p1>; <p2>".
func (r *Record) String() string {
	vals := make([]string, len(r.phones))
	for i, p := range r.phones {
		vals[i] = p.value
	}
	return fmt.Sprintf("Contact name: %s, phones: %s", r.name, strings.Join(vals, "; "))
}

func (r *Record) index(phone string) int {
	for i, p := range r.phones {
		if p.value == phone {
			return i
		}
	}
	return -1
}

func (r *Record) notFound(phone string) error {
	return fmt.Errorf("%w: %s for contact %s", ErrNotFound, phone, r.name)
}
