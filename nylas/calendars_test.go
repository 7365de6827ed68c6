package nylas

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarsAll(t *testing.T) {
	client := newAuthedClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/calendars", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"id": "c1", "name": "Work", "read_only": false},
			{"id": "c2", "name": "Holidays", "read_only": true}
		]`))
	})

	calendars, err := client.Calendars().All(context.Background())
	require.NoError(t, err)
	require.Len(t, calendars, 2)
	assert.Equal(t, "Work", calendars[0].Name)
	assert.True(t, calendars[1].ReadOnly)
}

func TestCalendarsGet(t *testing.T) {
	client := newAuthedClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/calendars/c1", r.URL.Path)
		_, _ = w.Write([]byte(`{"id": "c1", "name": "Work"}`))
	})

	calendar, err := client.Calendars().Get(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", calendar.ID)
	assert.Equal(t, "Work", calendar.Name)
}

func TestCalendarsGet_EmptyID(t *testing.T) {
	client := newAuthedClient(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := client.Calendars().Get(context.Background(), "")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindValidation))
}
