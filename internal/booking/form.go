// Package booking validates the ticket form.  Each field moves from
// Pristine to Valid or Invalid when it is committed; the form as a whole is
// accepted only when a submit finds every field valid.
package booking

import (
	"fmt"

	"github.com/iliyamo/cinema-showtimes/internal/catalog"
	"github.com/iliyamo/cinema-showtimes/internal/model"
)

// Showtime option placeholders.
const (
	PlaceholderSelectShowtime = "Select a showtime..."
	PlaceholderNoShowtimes    = "No showtimes available"
)

// MovieIndex resolves a selected movie title.  *catalog.Catalog satisfies it.
type MovieIndex interface {
	FindByTitle(title string) (model.Movie, bool)
}

// Values are the raw form inputs.
type Values struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Movie    string `json:"movie"`
	Showtime string `json:"showtime"`
	Qty      string `json:"qty"`
}

func (v Values) get(f Field) string {
	switch f {
	case FieldName:
		return v.Name
	case FieldEmail:
		return v.Email
	case FieldMovie:
		return v.Movie
	case FieldShowtime:
		return v.Showtime
	case FieldQty:
		return v.Qty
	}
	return ""
}

func (v *Values) set(f Field, s string) {
	switch f {
	case FieldName:
		v.Name = s
	case FieldEmail:
		v.Email = s
	case FieldMovie:
		v.Movie = s
	case FieldShowtime:
		v.Showtime = s
	case FieldQty:
		v.Qty = s
	}
}

// Result is the outcome of Submit.  Accepted results carry the
// confirmation text and the values that were booked; rejected results
// carry one message per invalid field.
type Result struct {
	Accepted     bool             `json:"accepted"`
	Confirmation string           `json:"confirmation,omitempty"`
	Errors       map[Field]string `json:"errors,omitempty"`
	Booking      Values           `json:"-"`
}

// Form is the ticket form's state.  It belongs to a single controller and
// is not safe for concurrent use.
type Form struct {
	movies    MovieIndex
	values    Values
	states    map[Field]FieldState
	showtimes []string
	movieSeen bool
}

// NewForm returns an empty form with every field pristine.  A nil index
// behaves as an empty catalog.
func NewForm(movies MovieIndex) *Form {
	if movies == nil {
		movies = (*catalog.Catalog)(nil)
	}
	f := &Form{movies: movies}
	f.reset()
	return f
}

func (f *Form) reset() {
	f.values = Values{}
	f.showtimes = nil
	f.movieSeen = false
	f.states = make(map[Field]FieldState, len(Fields))
	for _, field := range Fields {
		f.states[field] = FieldState{Status: Pristine}
	}
}

// Values returns the current inputs.
func (f *Form) Values() Values { return f.values }

// State returns the current state of one field.
func (f *Form) State(field Field) FieldState { return f.states[field] }

// States returns a copy of every field's state.
func (f *Form) States() map[Field]FieldState {
	out := make(map[Field]FieldState, len(f.states))
	for k, v := range f.states {
		out[k] = v
	}
	return out
}

// ShowtimeOptions are the times offered for the selected movie.
func (f *Form) ShowtimeOptions() []string {
	return append([]string(nil), f.showtimes...)
}

// ShowtimePlaceholder is the label of the empty showtime option.
func (f *Form) ShowtimePlaceholder() string {
	if f.values.Movie != "" && f.movieSeen && len(f.showtimes) == 0 {
		return PlaceholderNoShowtimes
	}
	return PlaceholderSelectShowtime
}

// Input records a value without changing the field's state, as typing
// into a text box does.
func (f *Form) Input(field Field, value string) {
	f.values.set(field, value)
}

// Blur commits a text field with its current value.  Selection fields
// ignore blur and keep their state.
func (f *Form) Blur(field Field) FieldState {
	if !field.committedOnBlur() {
		return f.states[field]
	}
	return f.commit(field)
}

// Select handles a change event.  Selection fields validate immediately;
// choosing a movie also rebuilds the showtime options and returns the
// showtime field to pristine.  Text fields take the value and commit, the
// same as typing followed by blur.
func (f *Form) Select(field Field, value string) FieldState {
	f.values.set(field, value)
	if field == FieldMovie {
		f.refreshShowtimes()
	}
	return f.commit(field)
}

// Prefill preselects a movie from the page URL.  The title must match a
// catalog entry exactly; otherwise nothing changes.  The movie field stays
// pristine because no change event happened.
func (f *Form) Prefill(title string) bool {
	if title == "" {
		return false
	}
	if _, ok := f.movies.FindByTitle(title); !ok {
		return false
	}
	f.values.Movie = title
	f.refreshShowtimes()
	return true
}

func (f *Form) refreshShowtimes() {
	f.values.Showtime = ""
	f.states[FieldShowtime] = FieldState{Status: Pristine}
	f.showtimes = nil
	f.movieSeen = false
	if f.values.Movie == "" {
		return
	}
	f.movieSeen = true
	if m, ok := f.movies.FindByTitle(f.values.Movie); ok {
		f.showtimes = catalog.AllShowtimes(m)
	}
}

func (f *Form) commit(field Field) FieldState {
	validate, ok := validators[field]
	if !ok {
		return FieldState{}
	}
	st := stateFor(validate(f.values.get(field)))
	f.states[field] = st
	return st
}

// Submit commits every field.  Any invalid field rejects the submission and
// leaves all states in place; otherwise the booking is accepted and the form
// returns to its initial state.
func (f *Form) Submit() Result {
	errs := map[Field]string{}
	for _, field := range Fields {
		if st := f.commit(field); st.Status == Invalid {
			errs[field] = st.Message
		}
	}
	if len(errs) > 0 {
		return Result{Errors: errs}
	}
	booked := f.values
	f.reset()
	return Result{
		Accepted:     true,
		Confirmation: Confirmation(booked),
		Booking:      booked,
	}
}

// Confirmation formats the success message for an accepted booking.
func Confirmation(v Values) string {
	return fmt.Sprintf("Thank you, %s! Your booking for \"%s\" at %s for %s ticket(s) has been submitted. A confirmation email will be sent to %s.",
		v.Name, v.Movie, v.Showtime, v.Qty, v.Email)
}
