package rooms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignRoomReturnsAssignment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/assignments/e1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"room":"dev_east","floor":1}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	room, err := c.AssignRoom(context.Background(), "e1")
	require.NoError(t, err)
	assert.Equal(t, "dev_east", room)
}

func TestAssignRoomErrorsOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	_, err := c.AssignRoom(context.Background(), "e1")
	assert.Error(t, err)
}

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	for i := 0; i < 15; i++ {
		_, err := c.AssignRoom(context.Background(), "e1")
		assert.Error(t, err)
	}

	// The breaker trips at 10 observed failures; later calls fail fast
	// without reaching the server.
	assert.Less(t, hits, 15)
}
