// Package contact defines validated contact values and the Record that groups them.
package contact

import (
	"errors"
	"fmt"
)

// Sentinel errors for caller-checkable conditions.
var (
	ErrValidation = errors.New("contact: invalid value")
	ErrNotFound   = errors.New("contact: phone not found")
)

// phoneLen is the exact number of digits a Phone holds.
const phoneLen = 10

// Name is a non-empty contact name. The zero value is not valid; use NewName.
type Name struct {
	value string
}

// NewName validates value and returns it as a Name.
func NewName(value string) (Name, error) {
	if value == "" {
		return Name{}, fmt.Errorf("%w: name cannot be empty", ErrValidation)
	}
	return Name{value: value}, nil
}

// String returns the name as given.
func (n Name) String() string {
	return n.value
}

// Phone is a phone number of exactly ten ASCII digits, stored as given.
type Phone struct {
	value string
}

// NewPhone validates value and returns it as a Phone.
// No formatting characters are stripped before the check.
func NewPhone(value string) (Phone, error) {
	if !isPhone(value) {
		return Phone{}, fmt.Errorf("%w: phone number must contain %d digits, got %q", ErrValidation, phoneLen, value)
	}
	return Phone{value: value}, nil
}

// String returns the phone number as given.
func (p Phone) String() string {
	return p.value
}

func isPhone(s string) bool {
	if len(s) != phoneLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
