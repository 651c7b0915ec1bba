package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleBody = "Vorname: Maria\nNachname: Gonzalez\nTelefon*: 01725551234\n" +
	"Datum wählen: <b>24.12.2025</b>\nAnmerkungen:\n"

func TestExtract(t *testing.T) {
	tests := []struct {
		name      string
		label     string
		body      string
		want      string
		wantFound bool
	}{
		{
			name:      "plain field",
			label:     "Vorname",
			body:      sampleBody,
			want:      "Maria",
			wantFound: true,
		},
		{
			name:      "required marker after label",
			label:     "Telefon",
			body:      sampleBody,
			want:      "01725551234",
			wantFound: true,
		},
		{
			name:      "capture stops at end of line",
			label:     "Nachname",
			body:      sampleBody,
			want:      "Gonzalez",
			wantFound: true,
		},
		{
			name:      "missing label",
			label:     "Anzahl Personen",
			body:      sampleBody,
			want:      "",
			wantFound: false,
		},
		{
			name:      "empty trailing content is found, not defaulted",
			label:     "Anmerkungen",
			body:      sampleBody,
			want:      "",
			wantFound: true,
		},
		{
			name:      "crlf line endings",
			label:     "Vorname",
			body:      "Vorname: Hans\r\nNachname: Weber\r\n",
			want:      "Hans",
			wantFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := Extract(tt.label, tt.body)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantFound, found)
		})
	}
}

func TestExtractClean(t *testing.T) {
	t.Run("strips markup from matched value", func(t *testing.T) {
		got := ExtractClean("Datum wählen", sampleBody, "", true)
		assert.Equal(t, "24.12.2025", got)
	})

	t.Run("fallback passes through unstripped", func(t *testing.T) {
		got := ExtractClean("Nope", sampleBody, "<i>default</i>", true)
		assert.Equal(t, "<i>default</i>", got)
	})

	t.Run("no stripping when disabled", func(t *testing.T) {
		got := ExtractClean("Datum wählen", sampleBody, "", false)
		assert.Equal(t, "<b>24.12.2025</b>", got)
	})
}
