// Package queue defines the booking event exchanged over RabbitMQ and the
// consumer that turns it into confirmation notices.
package queue

import "time"

// BookingAcceptedEvent is published after a ticket form submission is
// accepted.  It carries everything a notifier needs to send the
// confirmation email the success message promises.
type BookingAcceptedEvent struct {
    Reference    string    `json:"reference"`
    Name         string    `json:"name"`
    Email        string    `json:"email"`
    MovieTitle   string    `json:"movie_title"`
    Showtime     string    `json:"showtime"`
    Quantity     string    `json:"quantity"`
    Confirmation string    `json:"confirmation"`
    AcceptedAt   time.Time `json:"accepted_at"`
}
