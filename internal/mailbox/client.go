package mailbox

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
)

// AuthError indicates that the IMAP server rejected the configured
// credentials. It is distinguished from transport failures so callers
// can log it as a configuration problem rather than an outage.
type AuthError struct {
	Username string
	Message  string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error (%s): %s", e.Username, e.Message)
}

// IsAuthError reports whether err (or any error in its chain) is an
// AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// Client holds the endpoint and credentials for the reservation
// mailbox. Dial opens one session per ingestion run.
type Client struct {
	host     string
	port     string
	username string
	password string
}

// NewClient creates a new IMAP client configuration.
func NewClient(host, port, username, password string) *Client {
	return &Client{
		host:     host,
		port:     port,
		username: username,
		password: password,
	}
}

// Dial connects to the IMAP server over TLS, authenticates, and selects
// INBOX. The caller is responsible for closing the returned session.
func (c *Client) Dial(_ context.Context) (*Session, error) {
	addr := c.host + ":" + c.port

	client, err := imapclient.DialTLS(addr, nil)
	if err != nil {
		return nil, fmt.Errorf("connecting to IMAP %s: %w", addr, err)
	}

	if err := client.Login(c.username, c.password).Wait(); err != nil {
		_ = client.Logout().Wait()
		return nil, &AuthError{
			Username: c.username,
			Message:  fmt.Sprintf("authentication failed: %v", err),
		}
	}

	if _, err := client.Select("INBOX", nil).Wait(); err != nil {
		_ = client.Logout().Wait()
		return nil, fmt.Errorf("selecting INBOX: %w", err)
	}

	return &Session{client: client}, nil
}

// Session is one authenticated IMAP connection with INBOX selected.
type Session struct {
	client *imapclient.Client
}

// Close logs out and drops the connection. Safe to defer on every path.
func (s *Session) Close() error {
	return s.client.Logout().Wait()
}

// SearchSubject returns the UIDs of all messages whose Subject header
// contains subject, sorted newest first.
func (s *Session) SearchSubject(_ context.Context, subject string) ([]int64, error) {
	criteria := &imap.SearchCriteria{
		Header: []imap.SearchCriteriaHeaderField{
			{Key: "Subject", Value: subject},
		},
	}

	searchData, err := s.client.UIDSearch(criteria, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("searching subject %q: %w", subject, err)
	}

	uids := searchData.AllUIDs()
	ids := make([]int64, 0, len(uids))
	for _, uid := range uids {
		ids = append(ids, int64(uid))
	}

	slices.SortFunc(ids, func(a, b int64) int { return cmp.Compare(b, a) })
	return ids, nil
}

// Fetch retrieves the full message for uid without marking it seen and
// extracts the body text the form parser should see.
func (s *Session) Fetch(_ context.Context, uid int64) (*Message, error) {
	uidSet := imap.UIDSetNum(imap.UID(uid))

	bodySection := &imap.FetchItemBodySection{
		Peek: true,
	}

	fetchOpts := &imap.FetchOptions{
		Envelope:    true,
		UID:         true,
		BodySection: []*imap.FetchItemBodySection{bodySection},
	}

	fetchCmd := s.client.Fetch(uidSet, fetchOpts)
	defer fetchCmd.Close()

	msg := fetchCmd.Next()
	if msg == nil {
		return nil, fmt.Errorf("message UID %d not found", uid)
	}

	buf, err := msg.Collect()
	if err != nil {
		return nil, fmt.Errorf("collecting message data: %w", err)
	}

	m := &Message{UID: uid}
	if buf.Envelope != nil {
		m.Subject = buf.Envelope.Subject
		m.Date = buf.Envelope.Date
	}

	if raw := buf.FindBodySection(bodySection); raw != nil {
		m.Body = ExtractBody(raw)
	}

	if err := fetchCmd.Close(); err != nil {
		return m, fmt.Errorf("closing fetch: %w", err)
	}

	return m, nil
}
