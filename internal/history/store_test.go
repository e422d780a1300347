package history_test

import (
	"testing"

	"github.com/mauv0809/mexicano/internal/database"
	"github.com/mauv0809/mexicano/internal/history"
	"github.com/mauv0809/mexicano/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (history.Journal, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	return history.New(db), teardown
}

func TestRecordAndGetResults(t *testing.T) {
	journal, teardown := setupTestDB(t)
	defer teardown()

	results, err := journal.GetResults()
	require.NoError(t, err)
	assert.Empty(t, results)

	round1 := []tournament.Result{
		{Round: 1, Court: 1, TeamA: tournament.Team{"a", "d"}, TeamB: tournament.Team{"b", "c"}, ScoreA: 21, ScoreB: 15, Outcome: tournament.OutcomeTeamA},
		{Round: 1, Court: 2, TeamA: tournament.Team{"e", "h"}, TeamB: tournament.Team{"f", "g"}, ScoreA: 10, ScoreB: 10, Outcome: tournament.OutcomeDraw},
	}
	round2 := []tournament.Result{
		{Round: 2, Court: 1, TeamA: tournament.Team{"a", "c"}, TeamB: tournament.Team{"b", "d"}, ScoreA: 3, ScoreB: 21, Outcome: tournament.OutcomeTeamB},
	}
	require.NoError(t, journal.RecordResults(round1))
	require.NoError(t, journal.RecordResults(round2))
	require.NoError(t, journal.RecordResults(nil))

	results, err = journal.GetResults()
	require.NoError(t, err)
	assert.Equal(t, append(append([]tournament.Result{}, round1...), round2...), results)

	results, err = journal.GetRoundResults(2)
	require.NoError(t, err)
	assert.Equal(t, round2, results)

	results, err = journal.GetRoundResults(3)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestClear(t *testing.T) {
	journal, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, journal.RecordResults([]tournament.Result{
		{Round: 1, Court: 1, TeamA: tournament.Team{"a", "d"}, TeamB: tournament.Team{"b", "c"}, ScoreA: 21, ScoreB: 15, Outcome: tournament.OutcomeTeamA},
	}))
	require.NoError(t, journal.Clear())

	results, err := journal.GetResults()
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRecorder_KeepsJournalInStepWithTournament(t *testing.T) {
	journal, teardown := setupTestDB(t)
	defer teardown()

	tr, err := tournament.New(tournament.DefaultSettings, nil, history.NewRecorder(journal))
	require.NoError(t, err)
	for _, name := range []string{"P1", "P2", "P3", "P4"} {
		_, err := tr.AddPlayer(name)
		require.NoError(t, err)
	}

	for _, scores := range [][2]tournament.Score{{"21", "17"}, {"", "4"}, {"9", "21"}} {
		matches := tr.GenerateMatches(1)
		_, err := tr.SubmitRound([]tournament.ScoreEntry{{MatchID: matches[0].ID, ScoreA: scores[0], ScoreB: scores[1]}})
		require.NoError(t, err)
	}

	results, err := journal.GetResults()
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 1, results[0].Round)
	assert.Equal(t, 3, results[1].Round)

	report := tr.Audit(results)
	assert.True(t, report.Consistent)

	tr.ResetAll()
	results, err = journal.GetResults()
	require.NoError(t, err)
	assert.Empty(t, results)
}
