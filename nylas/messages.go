package nylas

import (
	"context"
	"net/url"
	"strconv"
)

// View selects how much of a message the API returns.
type View string

const (
	// ViewStandard is the provider default.
	ViewStandard View = ""

	// ViewIds returns message IDs only.
	ViewIds View = "ids"

	// ViewCount returns a count instead of message objects.
	ViewCount View = "count"

	// ViewExpanded includes full headers and expanded fields.
	ViewExpanded View = "expanded"
)

// MessageFilter narrows message listings. The supported filter keys
// are fixed, so they are enumerated as struct fields rather than a
// free-form map. Zero-valued fields are omitted from the request.
type MessageFilter struct {
	To       string
	From     string
	Cc       string
	Bcc      string
	Subject  string
	ThreadID string

	// Unread and Starred are tri-state: nil means unfiltered.
	Unread  *bool
	Starred *bool

	Limit  int
	Offset int
}

// values encodes the filter as query parameters.
func (f MessageFilter) values() url.Values {
	q := url.Values{}
	if f.To != "" {
		q.Set("to", f.To)
	}
	if f.From != "" {
		q.Set("from", f.From)
	}
	if f.Cc != "" {
		q.Set("cc", f.Cc)
	}
	if f.Bcc != "" {
		q.Set("bcc", f.Bcc)
	}
	if f.Subject != "" {
		q.Set("subject", f.Subject)
	}
	if f.ThreadID != "" {
		q.Set("thread_id", f.ThreadID)
	}
	if f.Unread != nil {
		q.Set("unread", strconv.FormatBool(*f.Unread))
	}
	if f.Starred != nil {
		q.Set("starred", strconv.FormatBool(*f.Starred))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		q.Set("offset", strconv.Itoa(f.Offset))
	}
	return q
}

// MessagesService provides access to message operations. All
// operations require an authenticated client.
type MessagesService struct {
	client *Client
}

// All retrieves all messages for the account.
func (s *MessagesService) All(ctx context.Context) ([]Message, error) {
	var messages []Message
	if err := s.client.get(ctx, "messages.all", "/messages", nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// First retrieves the most recent message, or nil when the account has
// no messages.
func (s *MessagesService) First(ctx context.Context) (*Message, error) {
	q := url.Values{"limit": {"1"}}
	var messages []Message
	if err := s.client.get(ctx, "messages.first", "/messages", q, &messages); err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, nil
	}
	return &messages[0], nil
}

// Get retrieves a single message by ID.
func (s *MessagesService) Get(ctx context.Context, id string, view View) (*Message, error) {
	const op = "messages.get"
	if id == "" {
		return nil, &Error{
			Kind:    KindValidation,
			Op:      op,
			Message: "message ID must not be empty",
		}
	}
	q := url.Values{}
	if view != ViewStandard {
		q.Set("view", string(view))
	}
	var message Message
	if err := s.client.get(ctx, op, "/messages/"+url.PathEscape(id), q, &message); err != nil {
		return nil, err
	}
	return &message, nil
}

// Search performs a full-text search over messages. Limit and offset
// are passed through to the provider; values <= 0 are omitted.
func (s *MessagesService) Search(ctx context.Context, query string, limit, offset int) ([]Message, error) {
	const op = "messages.search"
	if query == "" {
		return nil, &Error{
			Kind:    KindValidation,
			Op:      op,
			Message: "search query must not be empty",
		}
	}
	q := url.Values{"q": {query}}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	var messages []Message
	if err := s.client.get(ctx, op, "/messages/search", q, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// Where retrieves the messages matching the filter.
func (s *MessagesService) Where(ctx context.Context, filter MessageFilter, view View) ([]Message, error) {
	q := filter.values()
	if view != ViewStandard {
		q.Set("view", string(view))
	}
	var messages []Message
	if err := s.client.get(ctx, "messages.where", "/messages", q, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
