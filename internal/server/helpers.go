package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// WaitForHealthy polls the /health endpoint until it returns 200 OK or the context is cancelled.
// baseURL should be the server's base URL (e.g., "http://localhost:8080").
func WaitForHealthy(ctx context.Context, baseURL string) error {
	healthURL := baseURL + "/health"
	client := &http.Client{Timeout: 1 * time.Second}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			resp, err := client.Get(healthURL)
			if err == nil && resp.StatusCode == http.StatusOK {
				resp.Body.Close()
				return nil
			}
			if resp != nil {
				resp.Body.Close()
			}
		}
	}
}

// FetchRooms reads the /rooms index from a running server
func FetchRooms(ctx context.Context, baseURL string) ([]RoomSummary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/rooms", nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching rooms: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching rooms: unexpected status %s", resp.Status)
	}

	var rooms []RoomSummary
	if err := json.NewDecoder(resp.Body).Decode(&rooms); err != nil {
		return nil, fmt.Errorf("decoding rooms: %w", err)
	}
	return rooms, nil
}
