package nylas

import (
	"context"
	"net/url"
)

// CalendarsService provides access to calendar operations. All
// operations require an authenticated client.
type CalendarsService struct {
	client *Client
}

// All retrieves all calendars for the account.
func (s *CalendarsService) All(ctx context.Context) ([]Calendar, error) {
	var calendars []Calendar
	if err := s.client.get(ctx, "calendars.all", "/calendars", nil, &calendars); err != nil {
		return nil, err
	}
	return calendars, nil
}

// Get retrieves a single calendar by ID.
func (s *CalendarsService) Get(ctx context.Context, id string) (*Calendar, error) {
	const op = "calendars.get"
	if id == "" {
		return nil, &Error{
			Kind:    KindValidation,
			Op:      op,
			Message: "calendar ID must not be empty",
		}
	}
	var calendar Calendar
	if err := s.client.get(ctx, op, "/calendars/"+url.PathEscape(id), nil, &calendar); err != nil {
		return nil, err
	}
	return &calendar, nil
}
