package notifier

import (
	"github.com/charmbracelet/log"
	"github.com/mauv0809/mexicano/internal/tournament"
)

var _ tournament.Subscriber = (*Announcer)(nil)

// Announcer turns tournament snapshots into notifications.
type Announcer struct {
	notifier Notifier
	dryRun   bool
}

// NewAnnouncer creates an Announcer that posts through n.
func NewAnnouncer(n Notifier, dryRun bool) *Announcer {
	return &Announcer{notifier: n, dryRun: dryRun}
}

// OnSnapshot implements tournament.Subscriber. Rounds without matches and
// registrations are not announced.
func (a *Announcer) OnSnapshot(snapshot tournament.Snapshot) {
	switch snapshot.Event {
	case tournament.EventRoundGenerated:
		if len(snapshot.Matches) == 0 {
			log.Debug("Round has no matches, skipping announcement", "round", snapshot.Round)
			return
		}
		if err := a.notifier.SendRoundAnnouncement(snapshot.Round, snapshot.Matches, snapshot.Settings, a.dryRun); err != nil {
			log.Error("Failed to announce round", "error", err, "round", snapshot.Round)
		}
	case tournament.EventScoresSubmitted:
		round := snapshot.Round - 1
		if err := a.notifier.SendRoundResults(round, snapshot.Results, snapshot.Leaderboard, a.dryRun); err != nil {
			log.Error("Failed to send round results", "error", err, "round", round)
		}
	}
}
