package tournament

import (
	"sync"
)

// Player is a registered player and their cumulative stats.
// Played always equals Wins+Draws+Losses.
type Player struct {
	Name   string `json:"name" msgpack:"name"`
	Points int    `json:"points" msgpack:"points"`
	Wins   int    `json:"wins" msgpack:"wins"`
	Draws  int    `json:"draws" msgpack:"draws"`
	Losses int    `json:"losses" msgpack:"losses"`
	Played int    `json:"played" msgpack:"played"`
}

// Team is a pair of player names.
type Team [2]string

// Match is a single court's pairing for the current round.
type Match struct {
	ID     string `json:"id" msgpack:"id"`
	Court  int    `json:"court" msgpack:"court"`
	TeamA  Team   `json:"team_a" msgpack:"team_a"`
	TeamB  Team   `json:"team_b" msgpack:"team_b"`
	ScoreA Score  `json:"score_a" msgpack:"score_a"`
	ScoreB Score  `json:"score_b" msgpack:"score_b"`
}

// Outcome is the result of an applied match from team A's point of view.
type Outcome string

const (
	OutcomeTeamA Outcome = "TEAM_A"
	OutcomeTeamB Outcome = "TEAM_B"
	OutcomeDraw  Outcome = "DRAW"
)

// Result is a match whose scores were applied to the roster.
type Result struct {
	Round   int     `json:"round" msgpack:"round"`
	Court   int     `json:"court" msgpack:"court"`
	TeamA   Team    `json:"team_a" msgpack:"team_a"`
	TeamB   Team    `json:"team_b" msgpack:"team_b"`
	ScoreA  int     `json:"score_a" msgpack:"score_a"`
	ScoreB  int     `json:"score_b" msgpack:"score_b"`
	Outcome Outcome `json:"outcome" msgpack:"outcome"`
}

// Submission summarises one SubmitScores call.
type Submission struct {
	Round   int      `json:"round"`
	Applied []Result `json:"applied"`
	Skipped int      `json:"skipped"`
}

// ScoreEntry is a score entered for a current match, addressed by match ID.
type ScoreEntry struct {
	MatchID string `json:"match_id"`
	ScoreA  Score  `json:"score_a"`
	ScoreB  Score  `json:"score_b"`
}

// Settings holds the view-layer configuration of the tournament.
// TargetPoints is advisory: no match is capped or ended by it.
type Settings struct {
	Courts       int `json:"courts" msgpack:"courts"`
	TargetPoints int `json:"target_points" msgpack:"target_points"`
}

// Event names the operation that produced a snapshot.
type Event string

const (
	EventPlayerAdded     Event = "player-added"
	EventRoundGenerated  Event = "round-generated"
	EventScoresSubmitted Event = "scores-submitted"
	EventReset           Event = "tournament-reset"
	EventSettingsUpdated Event = "settings-updated"
)

// Snapshot is a consistent copy of the tournament state taken right after an operation.
// Round is the round number after the operation; for EventScoresSubmitted the
// submitted round is Round-1 and Results holds what was applied.
type Snapshot struct {
	Event       Event    `json:"event" msgpack:"event"`
	Round       int      `json:"round" msgpack:"round"`
	Players     []Player `json:"players" msgpack:"players"`
	Leaderboard []Player `json:"leaderboard" msgpack:"leaderboard"`
	Matches     []Match  `json:"matches" msgpack:"matches"`
	Results     []Result `json:"results,omitempty" msgpack:"results,omitempty"`
	Settings    Settings `json:"settings" msgpack:"settings"`
}

// Mismatch is a player whose live stats differ from a replay of the journal.
type Mismatch struct {
	Name     string  `json:"name"`
	Live     *Player `json:"live,omitempty"`
	Replayed *Player `json:"replayed,omitempty"`
}

// AuditReport compares live stats against a replay of submitted results.
type AuditReport struct {
	Consistent bool       `json:"consistent"`
	Results    int        `json:"results"`
	Mismatches []Mismatch `json:"mismatches"`
}

// Tournament owns the tournament state. All operations are serialized.
type Tournament struct {
	mu sync.Mutex

	// Snapshots are numbered under mu and delivered strictly in that order.
	// The delivery lock is never held while waiting for mu.
	published uint64
	deliverMu sync.Mutex
	delivered uint64
	turn      *sync.Cond

	players  []*Player
	index    map[string]*Player
	matches  []Match
	round    int
	settings Settings

	metrics     Metrics
	subscribers []Subscriber
}
