package tournament_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/mauv0809/mexicano/internal/metrics"
	"github.com/mauv0809/mexicano/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTournament creates a tournament with the given players registered in order.
func setupTournament(t *testing.T, names ...string) (*tournament.Tournament, *metrics.Mock) {
	t.Helper()

	m := metrics.NewMock()
	tr, err := tournament.New(tournament.DefaultSettings, m)
	require.NoError(t, err)
	for _, name := range names {
		_, err := tr.AddPlayer(name)
		require.NoError(t, err)
	}
	return tr, m
}

func playerByName(t *testing.T, players []tournament.Player, name string) tournament.Player {
	t.Helper()
	for _, p := range players {
		if p.Name == name {
			return p
		}
	}
	require.Failf(t, "player not found", "no player named %q", name)
	return tournament.Player{}
}

func TestAddPlayer(t *testing.T) {
	tr, m := setupTournament(t)

	p, err := tr.AddPlayer("  Alice ")
	require.NoError(t, err)
	assert.Equal(t, tournament.Player{Name: "Alice"}, p)

	_, err = tr.AddPlayer("Alice")
	assert.ErrorIs(t, err, tournament.ErrDuplicateName)

	_, err = tr.AddPlayer("   ")
	assert.ErrorIs(t, err, tournament.ErrInvalidName)

	_, err = tr.AddPlayer("")
	assert.ErrorIs(t, err, tournament.ErrInvalidName)

	_, err = tr.AddPlayer("alice")
	require.NoError(t, err, "names are case sensitive")

	assert.Len(t, tr.Players(), 2)
	assert.Equal(t, 2, m.PlayersRegistered())
	assert.Equal(t, 2, m.RosterSize())
}

func TestAddPlayer_RosterSizeMatchesSuccessfulCalls(t *testing.T) {
	tr, _ := setupTournament(t)

	inputs := []string{"a", "b", " a", "", "c", "b ", "\t", "d"}
	successes := 0
	for _, name := range inputs {
		if _, err := tr.AddPlayer(name); err == nil {
			successes++
		}
	}
	assert.Equal(t, 4, successes)
	assert.Len(t, tr.Players(), successes)
	assert.Len(t, tr.Leaderboard(), successes)
}

func TestPlayers_KeepRegistrationOrder(t *testing.T) {
	tr, _ := setupTournament(t, "Zoe", "Adam", "Mia")

	var names []string
	for _, p := range tr.Players() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Zoe", "Adam", "Mia"}, names)
}

func TestGenerateMatches(t *testing.T) {
	tests := []struct {
		name       string
		players    int
		courts     int
		wantCourts []int
	}{
		{name: "fewer than four players", players: 3, courts: 1, wantCourts: []int{}},
		{name: "exactly four players", players: 4, courts: 1, wantCourts: []int{1}},
		{name: "two courts but only seven players", players: 7, courts: 2, wantCourts: []int{1}},
		{name: "two courts with eight players", players: 8, courts: 2, wantCourts: []int{1, 2}},
		{name: "one court with eight players", players: 8, courts: 1, wantCourts: []int{1}},
		{name: "courts beyond the table add nothing", players: 12, courts: 3, wantCourts: []int{1, 2}},
		{name: "zero courts", players: 8, courts: 0, wantCourts: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			names := make([]string, tt.players)
			for i := range names {
				names[i] = fmt.Sprintf("P%d", i+1)
			}
			tr, _ := setupTournament(t, names...)

			matches := tr.GenerateMatches(tt.courts)
			courts := []int{}
			for _, m := range matches {
				courts = append(courts, m.Court)
				assert.NotEmpty(t, m.ID)
				assert.False(t, m.ScoreA.IsSet())
				assert.False(t, m.ScoreB.IsSet())
			}
			assert.Equal(t, tt.wantCourts, courts)
			assert.Equal(t, matches, tr.CurrentMatches())
		})
	}
}

func TestGenerateMatches_SeedsByRanking(t *testing.T) {
	tr, _ := setupTournament(t, "P4", "P2", "P1", "P3")

	// Give everyone distinct points: P1 > P2 > P3 > P4.
	_, err := tr.SubmitScores([]tournament.Match{{
		Court:  1,
		TeamA:  tournament.Team{"P1", "P4"},
		TeamB:  tournament.Team{"P2", "P3"},
		ScoreA: "10",
		ScoreB: "5",
	}})
	require.NoError(t, err)
	_, err = tr.SubmitScores([]tournament.Match{{
		Court:  1,
		TeamA:  tournament.Team{"P1", "P2"},
		TeamB:  tournament.Team{"P3", "P4"},
		ScoreA: "20",
		ScoreB: "1",
	}})
	require.NoError(t, err)

	// P1: 30, P2: 25, P3: 6, P4: 11 -> ranking P1, P2, P4, P3.
	matches := tr.GenerateMatches(1)
	require.Len(t, matches, 1)
	assert.Equal(t, tournament.Team{"P1", "P3"}, matches[0].TeamA)
	assert.Equal(t, tournament.Team{"P2", "P4"}, matches[0].TeamB)
}

func TestGenerateMatches_FourPlayersWithEqualPointsUseRegistrationOrder(t *testing.T) {
	tr, _ := setupTournament(t, "P1", "P2", "P3", "P4")

	matches := tr.GenerateMatches(1)
	require.Len(t, matches, 1)
	assert.Equal(t, tournament.Team{"P1", "P4"}, matches[0].TeamA)
	assert.Equal(t, tournament.Team{"P2", "P3"}, matches[0].TeamB)
}

func TestGenerateMatches_SecondCourtTakesRanksFourToSeven(t *testing.T) {
	tr, _ := setupTournament(t, "P1", "P2", "P3", "P4", "P5", "P6", "P7", "P8")

	matches := tr.GenerateMatches(2)
	require.Len(t, matches, 2)
	assert.Equal(t, 2, matches[1].Court)
	assert.Equal(t, tournament.Team{"P5", "P8"}, matches[1].TeamA)
	assert.Equal(t, tournament.Team{"P6", "P7"}, matches[1].TeamB)
}

func TestGenerateMatches_ReplacesUnsubmittedMatches(t *testing.T) {
	tr, _ := setupTournament(t, "P1", "P2", "P3", "P4")

	first := tr.GenerateMatches(1)
	require.NoError(t, tr.RecordScore(first[0].ID, "21", "10"))

	second := tr.GenerateMatches(1)
	require.Len(t, second, 1)
	assert.NotEqual(t, first[0].ID, second[0].ID)
	assert.False(t, tr.CurrentMatches()[0].ScoreA.IsSet(), "recorded scores are discarded")
	assert.Equal(t, 1, tr.Round())

	err := tr.RecordScore(first[0].ID, "1", "2")
	assert.ErrorIs(t, err, tournament.ErrMatchNotFound)

	for _, p := range tr.Players() {
		assert.Zero(t, p.Played)
	}
}

func TestSubmitScores_AppliesWinAndLoss(t *testing.T) {
	tr, m := setupTournament(t, "A1", "A2", "B1", "B2")

	sub, err := tr.SubmitScores([]tournament.Match{{
		Court:  1,
		TeamA:  tournament.Team{"A1", "A2"},
		TeamB:  tournament.Team{"B1", "B2"},
		ScoreA: "21",
		ScoreB: "15",
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, sub.Round)
	assert.Equal(t, 0, sub.Skipped)
	require.Len(t, sub.Applied, 1)
	assert.Equal(t, tournament.OutcomeTeamA, sub.Applied[0].Outcome)

	players := tr.Players()
	for _, name := range []string{"A1", "A2"} {
		assert.Equal(t, tournament.Player{Name: name, Points: 21, Wins: 1, Played: 1}, playerByName(t, players, name))
	}
	for _, name := range []string{"B1", "B2"} {
		assert.Equal(t, tournament.Player{Name: name, Points: 15, Losses: 1, Played: 1}, playerByName(t, players, name))
	}
	assert.Equal(t, 2, tr.Round())
	assert.Equal(t, 1, m.RoundsSubmitted())
	assert.Equal(t, 1, m.MatchesApplied())
}

func TestSubmitScores_Draw(t *testing.T) {
	tr, _ := setupTournament(t, "A1", "A2", "B1", "B2")

	_, err := tr.SubmitScores([]tournament.Match{{
		Court: 1, TeamA: tournament.Team{"A1", "A2"}, TeamB: tournament.Team{"B1", "B2"},
		ScoreA: "12", ScoreB: "12",
	}})
	require.NoError(t, err)

	for _, p := range tr.Players() {
		assert.Equal(t, 12, p.Points)
		assert.Equal(t, 1, p.Draws)
		assert.Zero(t, p.Wins)
		assert.Zero(t, p.Losses)
	}
}

func TestSubmitScores_SkipsInvalidScores(t *testing.T) {
	tests := []struct {
		name   string
		scoreA tournament.Score
		scoreB tournament.Score
	}{
		{name: "non-numeric", scoreA: "abc", scoreB: "15"},
		{name: "missing team B", scoreA: "21", scoreB: ""},
		{name: "both missing", scoreA: "", scoreB: ""},
		{name: "whitespace", scoreA: "  ", scoreB: "3"},
		{name: "negative", scoreA: "-4", scoreB: "21"},
		{name: "decimal", scoreA: "21.5", scoreB: "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, m := setupTournament(t, "A1", "A2", "B1", "B2")
			before := tr.Players()

			sub, err := tr.SubmitScores([]tournament.Match{{
				Court: 1, TeamA: tournament.Team{"A1", "A2"}, TeamB: tournament.Team{"B1", "B2"},
				ScoreA: tt.scoreA, ScoreB: tt.scoreB,
			}})
			require.NoError(t, err)
			assert.Equal(t, 1, sub.Skipped)
			assert.Empty(t, sub.Applied)
			assert.Equal(t, before, tr.Players())
			assert.Equal(t, 2, tr.Round())
			assert.Equal(t, 1, m.MatchesSkipped())
		})
	}
}

func TestSubmitScores_PartialBatchCommitsValidSubset(t *testing.T) {
	tr, _ := setupTournament(t, "P1", "P2", "P3", "P4", "P5", "P6", "P7", "P8")

	matches := tr.GenerateMatches(2)
	require.Len(t, matches, 2)
	matches[0].ScoreA, matches[0].ScoreB = "21", "18"
	matches[1].ScoreA, matches[1].ScoreB = "x", "18"

	sub, err := tr.SubmitScores(matches)
	require.NoError(t, err)
	assert.Len(t, sub.Applied, 1)
	assert.Equal(t, 1, sub.Skipped)
	assert.Empty(t, tr.CurrentMatches(), "skipped matches are not retried")

	players := tr.Players()
	assert.Equal(t, 21, playerByName(t, players, "P1").Points)
	assert.Equal(t, 18, playerByName(t, players, "P2").Points)
	for _, name := range []string{"P5", "P6", "P7", "P8"} {
		assert.Zero(t, playerByName(t, players, name).Played)
	}
}

func TestSubmitScores_RejectsUnregisteredPlayer(t *testing.T) {
	tr, _ := setupTournament(t, "A1", "A2", "B1")
	before := tr.Players()

	_, err := tr.SubmitScores([]tournament.Match{{
		Court: 1, TeamA: tournament.Team{"A1", "A2"}, TeamB: tournament.Team{"B1", "Ghost"},
		ScoreA: "21", ScoreB: "10",
	}})
	assert.ErrorIs(t, err, tournament.ErrUnknownPlayer)
	assert.Equal(t, before, tr.Players())
	assert.Equal(t, 1, tr.Round(), "rejected calls do not advance the round")
}

func TestSubmitScores_RejectsRepeatedPlayer(t *testing.T) {
	tr, _ := setupTournament(t, "A1", "B1", "B2")

	_, err := tr.SubmitScores([]tournament.Match{{
		Court: 1, TeamA: tournament.Team{"A1", "A1"}, TeamB: tournament.Team{"B1", "B2"},
		ScoreA: "21", ScoreB: "10",
	}})
	assert.ErrorIs(t, err, tournament.ErrInvalidMatch)
	assert.Equal(t, 1, tr.Round())
}

func TestSubmitScores_RejectsPlayerInTwoMatches(t *testing.T) {
	tr, m := setupTournament(t, "a", "b", "c", "d")
	matches := tr.GenerateMatches(1)
	require.Len(t, matches, 1)
	matches[0].ScoreA, matches[0].ScoreB = "21", "15"

	_, err := tr.SubmitScores([]tournament.Match{matches[0], matches[0]})
	assert.ErrorIs(t, err, tournament.ErrInvalidMatch)
	assert.Equal(t, 1, tr.Round())
	assert.Equal(t, 0, m.RoundsSubmitted())
	for _, p := range tr.Players() {
		assert.Zero(t, p.Points, p.Name)
		assert.Zero(t, p.Played, p.Name)
	}

	other := tournament.Match{Court: 2, TeamA: tournament.Team{"a", "b"}, TeamB: tournament.Team{"c", "x"}}
	_, err = tr.AddPlayer("x")
	require.NoError(t, err)
	_, err = tr.SubmitScores([]tournament.Match{matches[0], other})
	assert.ErrorIs(t, err, tournament.ErrInvalidMatch)
	assert.Equal(t, 1, tr.Round())
}

func TestRound_CountsSubmissions(t *testing.T) {
	tr, _ := setupTournament(t, "P1", "P2", "P3", "P4")
	assert.Equal(t, 1, tr.Round())

	for n := 1; n <= 5; n++ {
		matches := tr.GenerateMatches(1)
		if n%2 == 0 {
			matches[0].ScoreA, matches[0].ScoreB = "21", "19"
		}
		_, err := tr.SubmitScores(matches)
		require.NoError(t, err)
		assert.Equal(t, 1+n, tr.Round())
	}

	_, err := tr.SubmitScores(nil)
	require.NoError(t, err)
	assert.Equal(t, 7, tr.Round(), "an empty batch still advances the round")
}

func TestPlayedEqualsOutcomeTotal(t *testing.T) {
	tr, _ := setupTournament(t, "P1", "P2", "P3", "P4", "P5", "P6", "P7", "P8")

	scores := [][2]tournament.Score{{"21", "3"}, {"10", "10"}, {"0", "21"}, {"bad", "1"}, {"24", "22"}}
	for _, s := range scores {
		matches := tr.GenerateMatches(2)
		for i := range matches {
			matches[i].ScoreA, matches[i].ScoreB = s[0], s[1]
		}
		_, err := tr.SubmitScores(matches)
		require.NoError(t, err)
	}

	for _, p := range tr.Players() {
		assert.Equal(t, p.Wins+p.Draws+p.Losses, p.Played, p.Name)
		assert.GreaterOrEqual(t, p.Points, 0)
	}
}

func TestSubmitRound(t *testing.T) {
	tr, _ := setupTournament(t, "P1", "P2", "P3", "P4")

	_, err := tr.SubmitRound(nil)
	assert.ErrorIs(t, err, tournament.ErrNoRoundInProgress)

	matches := tr.GenerateMatches(1)
	_, err = tr.SubmitRound([]tournament.ScoreEntry{{MatchID: "unknown", ScoreA: "1", ScoreB: "2"}})
	assert.ErrorIs(t, err, tournament.ErrMatchNotFound)
	assert.Len(t, tr.CurrentMatches(), 1, "a rejected round stays pending")

	sub, err := tr.SubmitRound([]tournament.ScoreEntry{{MatchID: matches[0].ID, ScoreA: "21", ScoreB: "24"}})
	require.NoError(t, err)
	require.Len(t, sub.Applied, 1)
	assert.Equal(t, tournament.OutcomeTeamB, sub.Applied[0].Outcome)
	assert.Equal(t, 2, tr.Round())
	assert.Empty(t, tr.CurrentMatches())
}

func TestSubmitRound_UsesRecordedScores(t *testing.T) {
	tr, _ := setupTournament(t, "P1", "P2", "P3", "P4")

	matches := tr.GenerateMatches(1)
	require.NoError(t, tr.RecordScore(matches[0].ID, "21", "9"))

	sub, err := tr.SubmitRound(nil)
	require.NoError(t, err)
	require.Len(t, sub.Applied, 1)
	assert.Equal(t, 21, sub.Applied[0].ScoreA)
	assert.Equal(t, 9, sub.Applied[0].ScoreB)
}

func TestLeaderboard(t *testing.T) {
	tr, _ := setupTournament(t, "P1", "P2", "P3", "P4")

	_, err := tr.SubmitScores([]tournament.Match{{
		Court: 1, TeamA: tournament.Team{"P3", "P4"}, TeamB: tournament.Team{"P1", "P2"},
		ScoreA: "21", ScoreB: "7",
	}})
	require.NoError(t, err)

	board := tr.Leaderboard()
	require.Len(t, board, 4)
	assert.Equal(t, []string{"P3", "P4", "P1", "P2"}, []string{board[0].Name, board[1].Name, board[2].Name, board[3].Name})
	assert.Equal(t, board, tr.Leaderboard(), "reading twice yields identical output")

	board[0].Points = 1000
	assert.Equal(t, 21, tr.Leaderboard()[0].Points, "the leaderboard is a copy")
}

func TestResetAll(t *testing.T) {
	tr, m := setupTournament(t, "P1", "P2", "P3", "P4")
	require.NoError(t, tr.UpdateSettings(tournament.Settings{Courts: 2, TargetPoints: 24}))
	tr.GenerateMatches(1)
	_, err := tr.SubmitRound(nil)
	require.NoError(t, err)
	tr.GenerateMatches(1)

	tr.ResetAll()

	assert.Empty(t, tr.Leaderboard())
	assert.Empty(t, tr.Players())
	assert.Empty(t, tr.CurrentMatches())
	assert.Equal(t, 1, tr.Round())
	assert.Equal(t, tournament.Settings{Courts: 2, TargetPoints: 24}, tr.Settings())
	assert.Equal(t, 0, m.RosterSize())
	assert.Equal(t, 1, m.CurrentRound())

	_, err = tr.AddPlayer("P1")
	assert.NoError(t, err, "names are free again after a reset")
}

func TestUpdateSettings(t *testing.T) {
	tr, _ := setupTournament(t)

	require.NoError(t, tr.UpdateSettings(tournament.Settings{Courts: 2, TargetPoints: 24}))
	assert.Equal(t, tournament.Settings{Courts: 2, TargetPoints: 24}, tr.Settings())

	for _, s := range []tournament.Settings{{Courts: 3, TargetPoints: 21}, {Courts: 0, TargetPoints: 21}, {Courts: 1, TargetPoints: 32}} {
		assert.ErrorIs(t, tr.UpdateSettings(s), tournament.ErrInvalidSettings)
	}
	assert.Equal(t, tournament.Settings{Courts: 2, TargetPoints: 24}, tr.Settings())

	_, err := tournament.New(tournament.Settings{Courts: 5, TargetPoints: 21}, nil)
	assert.ErrorIs(t, err, tournament.ErrInvalidSettings)
}

func TestSubscribers_ReceiveSnapshotsInOrder(t *testing.T) {
	var events []tournament.Snapshot
	tr, err := tournament.New(tournament.DefaultSettings, nil, tournament.SubscriberFunc(func(s tournament.Snapshot) {
		events = append(events, s)
	}))
	require.NoError(t, err)

	for _, name := range []string{"P1", "P2", "P3", "P4"} {
		_, err := tr.AddPlayer(name)
		require.NoError(t, err)
	}
	matches := tr.GenerateMatches(1)
	_, err = tr.SubmitRound([]tournament.ScoreEntry{{MatchID: matches[0].ID, ScoreA: "21", ScoreB: "11"}})
	require.NoError(t, err)
	tr.ResetAll()

	var kinds []tournament.Event
	for _, e := range events {
		kinds = append(kinds, e.Event)
	}
	assert.Equal(t, []tournament.Event{
		tournament.EventPlayerAdded,
		tournament.EventPlayerAdded,
		tournament.EventPlayerAdded,
		tournament.EventPlayerAdded,
		tournament.EventRoundGenerated,
		tournament.EventScoresSubmitted,
		tournament.EventReset,
	}, kinds)

	generated := events[4]
	assert.Equal(t, 1, generated.Round)
	assert.Len(t, generated.Matches, 1)

	submitted := events[5]
	assert.Equal(t, 2, submitted.Round)
	assert.Empty(t, submitted.Matches)
	require.Len(t, submitted.Results, 1)
	assert.Equal(t, 21, submitted.Leaderboard[0].Points)

	reset := events[6]
	assert.Empty(t, reset.Players)
	assert.Equal(t, 1, reset.Round)
}

func TestSubscriber_CanReadDuringDelivery(t *testing.T) {
	tr, _ := setupTournament(t)
	var rounds []int
	tr.Subscribe(tournament.SubscriberFunc(func(s tournament.Snapshot) {
		rounds = append(rounds, tr.Round())
	}))

	_, err := tr.SubmitScores(nil)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, rounds)
}

func TestSubscriber_ReadsWhileOperationsRunConcurrently(t *testing.T) {
	tr, _ := setupTournament(t)

	var (
		mu    sync.Mutex
		sizes []int
	)
	tr.Subscribe(tournament.SubscriberFunc(func(s tournament.Snapshot) {
		tr.Round()
		tr.Players()
		tr.Snapshot()
		mu.Lock()
		sizes = append(sizes, len(s.Players))
		mu.Unlock()
	}))

	const players = 20
	done := make(chan struct{})
	go func() {
		var wg sync.WaitGroup
		for i := 0; i < players; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, _ = tr.AddPlayer(fmt.Sprintf("P%d", i))
			}(i)
		}
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("concurrent AddPlayer calls with a reading subscriber did not finish")
	}

	assert.Len(t, tr.Players(), players)
	mu.Lock()
	defer mu.Unlock()
	expected := make([]int, players)
	for i := range expected {
		expected[i] = i + 1
	}
	assert.Equal(t, expected, sizes, "snapshots are delivered in operation order")
}

func TestConcurrentOperationsAreSerialized(t *testing.T) {
	tr, _ := setupTournament(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = tr.AddPlayer(fmt.Sprintf("P%d", i%25))
			tr.Leaderboard()
		}(i)
	}
	wg.Wait()

	assert.Len(t, tr.Players(), 25)
}

func TestAudit(t *testing.T) {
	var journal []tournament.Result
	tr, err := tournament.New(tournament.DefaultSettings, nil, tournament.SubscriberFunc(func(s tournament.Snapshot) {
		journal = append(journal, s.Results...)
	}))
	require.NoError(t, err)
	for _, name := range []string{"P1", "P2", "P3", "P4"} {
		_, err := tr.AddPlayer(name)
		require.NoError(t, err)
	}
	for _, s := range [][2]tournament.Score{{"21", "3"}, {"x", "4"}, {"10", "21"}} {
		matches := tr.GenerateMatches(1)
		matches[0].ScoreA, matches[0].ScoreB = s[0], s[1]
		_, err := tr.SubmitScores(matches)
		require.NoError(t, err)
	}

	report := tr.Audit(journal)
	assert.True(t, report.Consistent)
	assert.Equal(t, 2, report.Results)
	assert.Empty(t, report.Mismatches)

	report = tr.Audit(journal[:1])
	assert.False(t, report.Consistent)
	assert.NotEmpty(t, report.Mismatches)

	report = tr.Audit(append(journal, tournament.Result{
		TeamA: tournament.Team{"P1", "Ghost"}, TeamB: tournament.Team{"P2", "P3"}, ScoreA: 1, ScoreB: 2, Outcome: tournament.OutcomeTeamB,
	}))
	assert.False(t, report.Consistent)
	var ghost *tournament.Mismatch
	for i := range report.Mismatches {
		if report.Mismatches[i].Name == "Ghost" {
			ghost = &report.Mismatches[i]
		}
	}
	require.NotNil(t, ghost)
	assert.Nil(t, ghost.Live)
}
