package booking

import (
	"fmt"
	"strings"
)

// Field identifies one input of the ticket form.
type Field string

const (
	FieldName     Field = "name"
	FieldEmail    Field = "email"
	FieldMovie    Field = "movie"
	FieldShowtime Field = "showtime"
	FieldQty      Field = "qty"
)

// Fields lists the form's inputs in document order.
var Fields = []Field{FieldName, FieldEmail, FieldMovie, FieldShowtime, FieldQty}

// ParseField maps a field name to a Field.
func ParseField(s string) (Field, bool) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	_, ok := validators[f]
	return f, ok
}

// committedOnBlur reports whether the field validates on loss of focus
// rather than on selection change.
func (f Field) committedOnBlur() bool {
	return f == FieldName || f == FieldEmail
}

// Status is a field's position in its validation state machine.
type Status int

const (
	Pristine Status = iota
	Valid
	Invalid
)

func (s Status) String() string {
	switch s {
	case Pristine:
		return "pristine"
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// FieldState is a field's status plus the message shown when invalid.
type FieldState struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

func stateFor(msg string) FieldState {
	if msg != "" {
		return FieldState{Status: Invalid, Message: msg}
	}
	return FieldState{Status: Valid}
}
