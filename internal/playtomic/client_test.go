package playtomic

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rafa-garcia/go-playtomic-api/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSpecificMatch(t *testing.T) {
	// Sample JSON response from the Playtomic API
	mockJSONResponse := `{
		"owner_id": "user-123",
		"start_date": "2025-07-09T18:00:00",
		"end_date": "2025-07-09T19:30:00",
		"status": "CONFIRMED",
		"game_status": "PENDING",
		"resource_name": "Court 1",
		"tenant": { "tenant_id": "tenant-abc", "tenant_name": "Padel Club" },
		"teams": [{
			"team_id": "0",
			"players": [
				{ "user_id": "user-123", "name": "Player A", "level_value": 3.5 },
				{ "user_id": "user-456", "name": "Player B" }
			]
		}, {
			"team_id": "1",
			"players": [
				{ "user_id": "user-789", "name": "Player C" }
			]
		}]
	}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/matches/match-abc", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, mockJSONResponse)
	}))
	defer server.Close()

	client := APIClient{
		httpClient: server.Client(),
		apiClient:  client.NewClient(), // Dummy client, not used in this specific test
		BaseURL:    server.URL,
	}

	match, err := client.GetSpecificMatch("match-abc")

	require.NoError(t, err)
	assert.Equal(t, "match-abc", match.MatchID)
	assert.Equal(t, "user-123", match.OwnerID)
	assert.Equal(t, "Court 1", match.ResourceName)
	assert.Equal(t, GameStatusPending, match.GameStatus)
	assert.Equal(t, "Padel Club", match.Tenant.Name)
	want := time.Date(2025, 7, 9, 18, 0, 0, 0, time.Local).Unix()
	assert.Equal(t, want, match.Start)
	require.Len(t, match.Teams, 2)
	assert.Equal(t, 3.5, match.Teams[0].Players[0].Level)
	assert.Equal(t, []string{"Player A", "Player B", "Player C"}, names(match.Players()))
}

func TestGetSpecificMatch_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "not found", status: http.StatusNotFound, body: `{}`, wantErr: "non-OK HTTP status: 404"},
		{name: "bad json", status: http.StatusOK, body: `{`, wantErr: "failed to decode response"},
		{name: "bad start date", status: http.StatusOK, body: `{"start_date": "tomorrow", "end_date": "2025-07-09T19:30:00"}`, wantErr: "failed to parse start time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			c := APIClient{httpClient: server.Client(), apiClient: client.NewClient(), BaseURL: server.URL}
			_, err := c.GetSpecificMatch("match-abc")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func names(players []Player) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.Name
	}
	return out
}
