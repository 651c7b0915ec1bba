package mailbox

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"

	"github.com/aljonuschka/reservation-ingest/internal/parse"
)

// Message is one fetched mailbox message, reduced to what ingestion
// needs: its UID, the transport Date header (zero when absent or
// unparsable), and the body text.
type Message struct {
	UID     int64
	Subject string
	Date    time.Time
	Body    string
}

// ExtractBody parses a raw RFC 822 message and returns the text the
// form parser should see. A text/plain part wins; otherwise the first
// text/html part is returned with markup stripped. A non-multipart
// message passes through as-is unless its declared content type is
// HTML. Attachment parts never hold the form and are ignored, and a
// part that cannot be decoded contributes nothing.
func ExtractBody(raw []byte) string {
	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil && !message.IsUnknownCharset(err) {
		// Not parsable as MIME at all; best effort, treat the bytes
		// as plain text.
		return strings.TrimSpace(string(raw))
	}
	if mr == nil {
		return strings.TrimSpace(string(raw))
	}
	defer mr.Close()

	var htmlBody string
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil && !message.IsUnknownCharset(err) {
			break
		}
		if part == nil {
			break
		}

		header, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}

		contentType, _, _ := header.ContentType()
		body, readErr := io.ReadAll(part.Body)
		if readErr != nil {
			continue
		}

		switch {
		case strings.HasPrefix(contentType, "text/plain"):
			return strings.TrimSpace(string(body))
		case strings.HasPrefix(contentType, "text/html") && htmlBody == "":
			htmlBody = parse.StripHTML(string(body))
		}
	}

	return htmlBody
}
