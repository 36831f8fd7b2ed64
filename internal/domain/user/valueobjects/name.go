package valueobjects

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	NameMinLength = 2
	NameMaxLength = 100
)

// Name is a person's first and last name.
type Name struct {
	first string
	last  string
}

func NewName(first, last string) (*Name, error) {
	first = strings.TrimSpace(first)
	last = strings.TrimSpace(last)
	if err := validateNamePart("first name", first); err != nil {
		return nil, err
	}
	if err := validateNamePart("last name", last); err != nil {
		return nil, err
	}
	return &Name{first: first, last: last}, nil
}

func validateNamePart(label, value string) error {
	n := utf8.RuneCountInString(value)
	if n < NameMinLength {
		return fmt.Errorf("%s must be at least %d characters long", label, NameMinLength)
	}
	if n > NameMaxLength {
		return fmt.Errorf("%s cannot exceed %d characters", label, NameMaxLength)
	}
	if strings.Contains(value, "  ") {
		return fmt.Errorf("%s cannot contain consecutive spaces", label)
	}
	return nil
}

func (n *Name) First() string { return n.first }
func (n *Name) Last() string  { return n.last }

// Full is "First Last" as entered.
func (n *Name) Full() string {
	return n.first + " " + n.last
}

// DisplayName title-cases each word of the full name.
func (n *Name) DisplayName() string {
	caser := cases.Title(language.Und)
	return caser.String(strings.ToLower(n.Full()))
}

func (n *Name) Initials() string {
	f, _ := utf8.DecodeRuneInString(n.first)
	l, _ := utf8.DecodeRuneInString(n.last)
	return strings.ToUpper(string([]rune{f, l}))
}

func (n *Name) Equals(other *Name) bool {
	if n == nil || other == nil {
		return n == other
	}
	return strings.EqualFold(n.first, other.first) && strings.EqualFold(n.last, other.last)
}
