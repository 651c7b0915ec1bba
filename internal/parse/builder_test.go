package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aljonuschka/reservation-ingest/internal/model"
)

const fullBody = "Vorname: Maria\nNachname: Gonzalez\nTelefon: 01725551234\n" +
	"Datum wählen: <b>24.12.2025</b>\nChoose a time: 19:30\nAnzahl Personen: 4 Personen\n"

func TestBuildFullBody(t *testing.T) {
	b := NewBuilder(SchemaV1, DefaultCountryCode)

	r, err := b.Build(fullBody)
	require.NoError(t, err)

	assert.Equal(t, "Maria", r.FirstName)
	assert.Equal(t, "Gonzalez", r.LastName)
	assert.Equal(t, "+491725551234", r.Phone)
	assert.Equal(t, time.Date(2025, time.December, 24, 0, 0, 0, 0, time.UTC), r.Date)
	assert.Equal(t, "24.12.2025", r.DateString())
	assert.Equal(t, "19:30", r.TimeString())
	assert.Equal(t, 4, r.Guests)
	assert.Equal(t, "", r.SpecialRequests)
	assert.Equal(t, model.StatusPending, r.Status)
}

func TestBuildMissingDateFails(t *testing.T) {
	b := NewBuilder(SchemaV1, DefaultCountryCode)

	body := "Vorname: Maria\nChoose a time: 19:30\n"
	_, err := b.Build(body)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "reservation date", ve.Field)
	assert.Equal(t, "", ve.Raw)
}

func TestBuildMalformedTimeFails(t *testing.T) {
	b := NewBuilder(SchemaV1, DefaultCountryCode)

	body := "Datum wählen: 24.12.2025\nChoose a time: viertel nach sieben\n"
	_, err := b.Build(body)
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "reservation time", ve.Field)
	assert.Equal(t, "viertel nach sieben", ve.Raw)
}

func TestBuildOptionalFieldsDefault(t *testing.T) {
	b := NewBuilder(SchemaV1, DefaultCountryCode)

	// Only the required fields are present.
	body := "Datum wählen: 24.12.2025\nChoose a time: 19:30\n"
	r, err := b.Build(body)
	require.NoError(t, err)

	assert.Equal(t, "", r.FirstName)
	assert.Equal(t, "", r.LastName)
	assert.Equal(t, "", r.Email)
	assert.Equal(t, 1, r.Guests, "missing guest count defaults to 1")
	assert.Equal(t, "", r.SpecialRequests)
}

func TestBuildNotesAndEmail(t *testing.T) {
	b := NewBuilder(SchemaV1, DefaultCountryCode)

	body := fullBody +
		"E-Mail-Adresse: maria@example.com\n" +
		"Anmerkungen: <p>Tisch am Fenster &amp; Kinderstuhl</p>\n"
	r, err := b.Build(body)
	require.NoError(t, err)

	assert.Equal(t, "maria@example.com", r.Email)
	assert.Equal(t, "Tisch am Fenster & Kinderstuhl", r.SpecialRequests)
}

func TestBuildForeignPhonePassesThrough(t *testing.T) {
	b := NewBuilder(SchemaV1, DefaultCountryCode)

	body := "Telefon: +1 555 0100\nDatum wählen: 01.01.2026\nChoose a time: 12:00\n"
	r, err := b.Build(body)
	require.NoError(t, err)
	assert.Equal(t, "+1 555 0100", r.Phone)
}
