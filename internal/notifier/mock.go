package notifier

import (
	"sync"

	"github.com/mauv0809/mexicano/internal/tournament"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	SendRoundAnnouncementFunc     func(round int, matches []tournament.Match, settings tournament.Settings, dryRun bool) error
	SendRoundResultsFunc          func(round int, results []tournament.Result, leaderboard []tournament.Player, dryRun bool) error
	SendLeaderboardFunc           func(leaderboard []tournament.Player, round int, dryRun bool) error
	FormatLeaderboardResponseFunc func(leaderboard []tournament.Player, round int) (any, error)
	FormatRoundResponseFunc       func(round int, matches []tournament.Match) (any, error)

	// Call records
	SendRoundAnnouncementCalls []SendRoundAnnouncementCall
	SendRoundResultsCalls      []SendRoundResultsCall
	SendLeaderboardCalls       []SendLeaderboardCall
}

// SendRoundAnnouncementCall holds the arguments for a call to SendRoundAnnouncement.
type SendRoundAnnouncementCall struct {
	Round    int
	Matches  []tournament.Match
	Settings tournament.Settings
	DryRun   bool
}

// SendRoundResultsCall holds the arguments for a call to SendRoundResults.
type SendRoundResultsCall struct {
	Round       int
	Results     []tournament.Result
	Leaderboard []tournament.Player
	DryRun      bool
}

// SendLeaderboardCall holds the arguments for a call to SendLeaderboard.
type SendLeaderboardCall struct {
	Leaderboard []tournament.Player
	Round       int
	DryRun      bool
}

// NewMock creates a new mock notifier.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendRoundAnnouncementCalls = nil
	m.SendRoundResultsCalls = nil
	m.SendLeaderboardCalls = nil
}

func (m *Mock) SendRoundAnnouncement(round int, matches []tournament.Match, settings tournament.Settings, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendRoundAnnouncementCalls = append(m.SendRoundAnnouncementCalls, SendRoundAnnouncementCall{Round: round, Matches: matches, Settings: settings, DryRun: dryRun})
	if m.SendRoundAnnouncementFunc != nil {
		return m.SendRoundAnnouncementFunc(round, matches, settings, dryRun)
	}
	return nil
}

func (m *Mock) SendRoundResults(round int, results []tournament.Result, leaderboard []tournament.Player, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendRoundResultsCalls = append(m.SendRoundResultsCalls, SendRoundResultsCall{Round: round, Results: results, Leaderboard: leaderboard, DryRun: dryRun})
	if m.SendRoundResultsFunc != nil {
		return m.SendRoundResultsFunc(round, results, leaderboard, dryRun)
	}
	return nil
}

func (m *Mock) SendLeaderboard(leaderboard []tournament.Player, round int, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLeaderboardCalls = append(m.SendLeaderboardCalls, SendLeaderboardCall{Leaderboard: leaderboard, Round: round, DryRun: dryRun})
	if m.SendLeaderboardFunc != nil {
		return m.SendLeaderboardFunc(leaderboard, round, dryRun)
	}
	return nil
}

func (m *Mock) FormatLeaderboardResponse(leaderboard []tournament.Player, round int) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatLeaderboardResponseFunc != nil {
		return m.FormatLeaderboardResponseFunc(leaderboard, round)
	}
	return nil, nil
}

func (m *Mock) FormatRoundResponse(round int, matches []tournament.Match) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatRoundResponseFunc != nil {
		return m.FormatRoundResponseFunc(round, matches)
	}
	return nil, nil
}
