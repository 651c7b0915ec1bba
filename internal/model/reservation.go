package model

import "time"

// Status is the lifecycle state of a reservation request.
type Status string

const (
	// StatusPending is the state every ingested reservation starts in.
	// The pipeline only ever creates pending rows; confirmation and
	// rejection are owned by a separate workflow.
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusRejected  Status = "rejected"
)

// Reservation is a single booking request extracted from a
// reservation-form email. ExternalID is the mailbox UID of the message
// it was parsed from; it doubles as the primary key and the resumption
// cursor, so a reservation is never stored twice.
type Reservation struct {
	// ExternalID is the mailbox's own sequence number for the message.
	// Immutable and unique per mailbox.
	ExternalID int64 `db:"id" json:"id"`

	// FirstName is the guest's given name, capitalized.
	FirstName string `db:"first_name" json:"first_name"`

	// LastName is the guest's family name, capitalized.
	LastName string `db:"last_name" json:"last_name"`

	// Phone is normalized to +<country><number> form.
	Phone string `db:"phone" json:"phone"`

	// Email is the contact address as submitted, trimmed only.
	Email string `db:"email" json:"email"`

	// Date is the requested reservation date (time-of-day is zero).
	Date time.Time `db:"reservation_date" json:"reservation_date"`

	// Time is the requested time of day (date part is the zero date).
	Time time.Time `db:"reservation_time" json:"reservation_time"`

	// Guests is the party size, at least 1.
	Guests int `db:"guests" json:"guests"`

	// SpecialRequests is optional free text from the form's notes field.
	SpecialRequests string `db:"special_requests" json:"special_requests"`

	// ReceivedAt is the message's transport Date header, or the
	// ingestion time when the header was absent or unparsable.
	ReceivedAt time.Time `db:"received_at" json:"received_at"`

	// Status is always StatusPending for rows created by the pipeline.
	Status Status `db:"status" json:"status"`
}

// DateString renders the reservation date in the form's DD.MM.YYYY format.
func (r Reservation) DateString() string {
	return r.Date.Format("02.01.2006")
}

// TimeString renders the reservation time in HH:MM form.
func (r Reservation) TimeString() string {
	return r.Time.Format("15:04")
}
