package notifier

import (
	"github.com/mauv0809/mexicano/internal/tournament"
)

// Notifier defines a high-level interface for sending notifications about tournament events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For a freshly generated round
	SendRoundAnnouncement(round int, matches []tournament.Match, settings tournament.Settings, dryRun bool) error
	// For a submitted round
	SendRoundResults(round int, results []tournament.Result, leaderboard []tournament.Player, dryRun bool) error
	SendLeaderboard(leaderboard []tournament.Player, round int, dryRun bool) error

	// For formatting responses for slash commands
	FormatLeaderboardResponse(leaderboard []tournament.Player, round int) (any, error)
	FormatRoundResponse(round int, matches []tournament.Match) (any, error)
}
