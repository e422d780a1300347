package history

import (
	"github.com/charmbracelet/log"
	"github.com/mauv0809/mexicano/internal/tournament"
)

var _ tournament.Subscriber = (*Recorder)(nil)

// Recorder keeps the journal in step with the tournament: it appends the
// results of every submission and clears the journal on reset.
type Recorder struct {
	journal Journal
}

// NewRecorder creates a Recorder writing to journal.
func NewRecorder(journal Journal) *Recorder {
	return &Recorder{journal: journal}
}

// OnSnapshot implements tournament.Subscriber.
func (r *Recorder) OnSnapshot(snapshot tournament.Snapshot) {
	switch snapshot.Event {
	case tournament.EventScoresSubmitted:
		if err := r.journal.RecordResults(snapshot.Results); err != nil {
			log.Error("Failed to record round results", "error", err, "round", snapshot.Round-1)
		}
	case tournament.EventReset:
		if err := r.journal.Clear(); err != nil {
			log.Error("Failed to clear round journal", "error", err)
		}
	}
}
