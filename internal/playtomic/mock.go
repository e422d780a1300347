package playtomic

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

var _ PlaytomicClient = (*MockClient)(nil)

// MockClient is an in-memory club: searches list its bookings in start order
// and lookups return them by ID. It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	Bookings map[string]PadelMatch
	// SearchErr fails every search.
	SearchErr error
	// Unavailable bookings are listed by searches but fail to load.
	Unavailable map[string]error

	Searches []*SearchMatchesParams
	Lookups  []string
}

// NewMockClient creates a club holding the given bookings.
func NewMockClient(bookings ...PadelMatch) *MockClient {
	m := &MockClient{Bookings: make(map[string]PadelMatch), Unavailable: make(map[string]error)}
	for _, b := range bookings {
		m.Bookings[b.MatchID] = b
	}
	return m
}

// GetMatches lists the bookings starting at or after params.FromStartDate.
func (m *MockClient) GetMatches(params *SearchMatchesParams) ([]MatchSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Searches = append(m.Searches, params)
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}

	var from int64
	if params != nil && params.FromStartDate != "" {
		t, err := time.ParseInLocation(timeLayout, params.FromStartDate, time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid from_start_date %q: %w", params.FromStartDate, err)
		}
		from = t.Unix()
	}

	listed := make([]PadelMatch, 0, len(m.Bookings))
	for _, b := range m.Bookings {
		if b.Start >= from {
			listed = append(listed, b)
		}
	}
	sort.Slice(listed, func(i, j int) bool {
		if listed[i].Start != listed[j].Start {
			return listed[i].Start < listed[j].Start
		}
		return listed[i].MatchID < listed[j].MatchID
	})

	summaries := make([]MatchSummary, len(listed))
	for i, b := range listed {
		summaries[i] = MatchSummary{MatchID: b.MatchID}
	}
	return summaries, nil
}

func (m *MockClient) GetSpecificMatch(matchID string) (PadelMatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Lookups = append(m.Lookups, matchID)
	if err, ok := m.Unavailable[matchID]; ok {
		return PadelMatch{}, err
	}
	b, ok := m.Bookings[matchID]
	if !ok {
		return PadelMatch{}, fmt.Errorf("booking %s not found", matchID)
	}
	return b, nil
}
