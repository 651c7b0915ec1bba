package parse

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aljonuschka/reservation-ingest/internal/model"
)

// Layouts the form emits for its date and time fields. Both are strict:
// a value that does not match exactly fails validation.
const (
	DateLayout = "02.01.2006"
	TimeLayout = "15:04"
)

// Schema maps logical reservation fields to the literal labels the
// upstream form emits. The label set is versioned: rewording the form
// is a schema change, not a code change, so call sites never hold
// label literals themselves.
type Schema struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
	Date      string
	Time      string
	Guests    string
	Notes     string
}

// SchemaV1 is the label vocabulary of the currently deployed form.
var SchemaV1 = Schema{
	FirstName: "Vorname",
	LastName:  "Nachname",
	Phone:     "Telefon",
	Email:     "E-Mail-Adresse",
	Date:      "Datum wählen",
	Time:      "Choose a time",
	Guests:    "Anzahl Personen",
	Notes:     "Anmerkungen",
}

// ValidationError reports a required field that could not be parsed
// from a message body, carrying the offending raw substring.
type ValidationError struct {
	Field string
	Raw   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid or missing %s: %q", e.Field, e.Raw)
}

// IsValidationError reports whether err (or any error in its chain) is
// a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Builder assembles reservation records from raw message bodies using
// a fixed label schema. It is a pure function of its inputs; nothing is
// read from ambient state.
type Builder struct {
	schema      Schema
	countryCode string
}

// NewBuilder creates a Builder for the given label schema. countryCode
// is prepended to phone numbers lacking an international prefix; empty
// means DefaultCountryCode.
func NewBuilder(schema Schema, countryCode string) *Builder {
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}
	return &Builder{schema: schema, countryCode: countryCode}
}

// Build extracts, normalizes, and validates all reservation fields from
// body. Date and time are required and fail with a ValidationError;
// every other field degrades to a default. On success the returned
// record is fully populated except for ExternalID and ReceivedAt, which
// belong to the message rather than its body.
func (b *Builder) Build(body string) (model.Reservation, error) {
	firstName := FormatName(ExtractClean(b.schema.FirstName, body, "", false))
	lastName := FormatName(ExtractClean(b.schema.LastName, body, "", false))
	phone := FormatPhone(ExtractClean(b.schema.Phone, body, "", false), b.countryCode)
	email := strings.TrimSpace(ExtractClean(b.schema.Email, body, "", false))

	// Date, time, guests, and notes arrive wrapped in markup when the
	// form mails an HTML part.
	dateRaw := ExtractClean(b.schema.Date, body, "", true)
	timeRaw := ExtractClean(b.schema.Time, body, "", true)
	guestsRaw := ExtractClean(b.schema.Guests, body, "", true)
	notes := ExtractClean(b.schema.Notes, body, "", true)

	date, err := time.Parse(DateLayout, dateRaw)
	if err != nil {
		return model.Reservation{}, &ValidationError{Field: "reservation date", Raw: dateRaw}
	}

	timeOfDay, err := time.Parse(TimeLayout, timeRaw)
	if err != nil {
		return model.Reservation{}, &ValidationError{Field: "reservation time", Raw: timeRaw}
	}

	return model.Reservation{
		FirstName:       firstName,
		LastName:        lastName,
		Phone:           phone,
		Email:           email,
		Date:            date,
		Time:            timeOfDay,
		Guests:          ParseGuests(guestsRaw),
		SpecialRequests: notes,
		Status:          model.StatusPending,
	}, nil
}
