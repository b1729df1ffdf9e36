package booking

import (
	"regexp"
	"strings"
)

// Messages shown next to each field.
const (
	MsgNameRequired     = "Please enter your full name."
	MsgNameCharacters   = "Name can only contain letters, spaces, hyphens, and apostrophes."
	MsgEmailRequired    = "Please enter your email address."
	MsgEmailMissingAt   = "Please enter a valid email address (must contain @)."
	MsgEmailInvalid     = "Please enter a valid email address."
	MsgEmailMissingDot  = "Please enter a valid email address (e.g., name@example.com)."
	MsgMovieRequired    = "Please select a movie."
	MsgShowtimeRequired = "Please choose a showtime."
	MsgQtyRequired      = "Please choose how many seats you need."
)

var namePattern = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)

// ValidateName returns the error message for a name, or "" when it is valid.
func ValidateName(name string) string {
	if strings.TrimSpace(name) == "" {
		return MsgNameRequired
	}
	if !namePattern.MatchString(name) {
		return MsgNameCharacters
	}
	return ""
}

// ValidateEmail applies the form's shallow address check.  It is not an
// RFC 5322 parser: one "@" with text on both sides and a dot in the domain.
func ValidateEmail(email string) string {
	if strings.TrimSpace(email) == "" {
		return MsgEmailRequired
	}
	if !strings.Contains(email, "@") {
		return MsgEmailMissingAt
	}
	parts := strings.Split(email, "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return MsgEmailInvalid
	}
	if !strings.Contains(parts[1], ".") {
		return MsgEmailMissingDot
	}
	return ""
}

func required(msg string) func(string) string {
	return func(v string) string {
		if v == "" {
			return msg
		}
		return ""
	}
}

// ValidateMovie, ValidateShowtime and ValidateQty only require a selection.
var (
	ValidateMovie    = required(MsgMovieRequired)
	ValidateShowtime = required(MsgShowtimeRequired)
	ValidateQty      = required(MsgQtyRequired)
)

var validators = map[Field]func(string) string{
	FieldName:     ValidateName,
	FieldEmail:    ValidateEmail,
	FieldMovie:    ValidateMovie,
	FieldShowtime: ValidateShowtime,
	FieldQty:      ValidateQty,
}
