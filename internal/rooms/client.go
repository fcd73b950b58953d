package rooms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// HTTPClient talks to the room/floor capacity assigner service. The assigner
// is consulted only for a target room string at morning arrival; it sits
// behind a circuit breaker so a struggling assigner cannot slow down the
// whole arrival window.
type HTTPClient struct {
	client  *http.Client
	baseURL string
	cb      *gobreaker.CircuitBreaker
}

// NewHTTPClient new HTTPClient
func NewHTTPClient(baseURL string) *HTTPClient {
	settings := gobreaker.Settings{
		Name:        "Room-Assigner",
		MaxRequests: 5,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// Trip if failure rate is bigger then 50% after at least 10 requests
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 10 && failureRatio >= 0.5
		},
	}

	return &HTTPClient{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
		cb:      gobreaker.NewCircuitBreaker(settings),
	}
}

type assignResponse struct {
	Room  string `json:"room"`
	Floor int    `json:"floor"`
}

// AssignRoom asks the assigner for a target room for the employee. An open
// breaker surfaces as an error; callers fall back to the employee's home room.
func (c *HTTPClient) AssignRoom(ctx context.Context, employeeID string) (string, error) {
	result, err := c.cb.Execute(func() (interface{}, error) {
		return c.fetchAssignment(ctx, employeeID)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (c *HTTPClient) fetchAssignment(ctx context.Context, employeeID string) (string, error) {
	url := fmt.Sprintf("%s/assignments/%s", c.baseURL, employeeID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create room assigner request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call room assigner: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("room assigner returned non-successful status code: %d", resp.StatusCode)
	}

	var body assignResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode room assignment: %w", err)
	}
	return body.Room, nil
}
