package nylas

import (
	"context"
	"net/url"
)

// ThreadsService provides access to thread operations. All operations
// require an authenticated client.
type ThreadsService struct {
	client *Client
}

// All retrieves all threads for the account.
func (s *ThreadsService) All(ctx context.Context) ([]Thread, error) {
	var threads []Thread
	if err := s.client.get(ctx, "threads.all", "/threads", nil, &threads); err != nil {
		return nil, err
	}
	return threads, nil
}

// First retrieves the most recent thread, or nil when the account has
// no threads.
func (s *ThreadsService) First(ctx context.Context) (*Thread, error) {
	q := url.Values{"limit": {"1"}}
	var threads []Thread
	if err := s.client.get(ctx, "threads.first", "/threads", q, &threads); err != nil {
		return nil, err
	}
	if len(threads) == 0 {
		return nil, nil
	}
	return &threads[0], nil
}

// Get retrieves a single thread by ID.
func (s *ThreadsService) Get(ctx context.Context, id string) (*Thread, error) {
	const op = "threads.get"
	if id == "" {
		return nil, &Error{
			Kind:    KindValidation,
			Op:      op,
			Message: "thread ID must not be empty",
		}
	}
	var thread Thread
	if err := s.client.get(ctx, op, "/threads/"+url.PathEscape(id), nil, &thread); err != nil {
		return nil, err
	}
	return &thread, nil
}
