package history

import "github.com/mauv0809/mexicano/internal/tournament"

// Journal is an append-only record of the results applied in each round.
type Journal interface {
	RecordResults(results []tournament.Result) error
	GetResults() ([]tournament.Result, error)
	GetRoundResults(round int) ([]tournament.Result, error)
	Clear() error
}
