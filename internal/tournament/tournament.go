package tournament

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultSettings is one court played to 21.
var DefaultSettings = Settings{Courts: 1, TargetPoints: 21}

// ValidateSettings checks the court count and target points against the supported values.
func ValidateSettings(s Settings) error {
	if s.Courts < 1 || s.Courts > MaxCourts {
		return fmt.Errorf("%w: courts must be 1 or 2, got %d", ErrInvalidSettings, s.Courts)
	}
	if s.TargetPoints != 21 && s.TargetPoints != 24 {
		return fmt.Errorf("%w: target points must be 21 or 24, got %d", ErrInvalidSettings, s.TargetPoints)
	}
	return nil
}

// New creates a Tournament in its initial state: no players, no matches, round 1.
// A nil metrics disables metric reporting.
func New(settings Settings, metrics Metrics, subscribers ...Subscriber) (*Tournament, error) {
	if err := ValidateSettings(settings); err != nil {
		return nil, err
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	t := &Tournament{
		index:       make(map[string]*Player),
		round:       1,
		settings:    settings,
		metrics:     metrics,
		subscribers: subscribers,
	}
	t.turn = sync.NewCond(&t.deliverMu)
	metrics.SetCurrentRound(t.round)
	metrics.SetRosterSize(0)
	return t, nil
}

// Subscribe registers a subscriber for snapshots of subsequent operations.
// Subscribers may read state from OnSnapshot but must not call mutating
// operations: those wait for the delivery in progress to finish.
func (t *Tournament) Subscribe(s Subscriber) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.subscribers = append(t.subscribers, s)
}

// AddPlayer registers a player under the trimmed name with all counters at zero.
func (t *Tournament) AddPlayer(name string) (Player, error) {
	defer t.observe("add_player", time.Now())

	name = strings.TrimSpace(name)
	if name == "" {
		return Player{}, ErrInvalidName
	}

	t.mu.Lock()
	if _, exists := t.index[name]; exists {
		t.mu.Unlock()
		return Player{}, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	p := &Player{Name: name}
	t.players = append(t.players, p)
	t.index[name] = p
	size := len(t.players)

	t.metrics.IncPlayersRegistered()
	t.metrics.SetRosterSize(size)
	log.Info("Registered player", "name", name, "roster_size", size)

	t.commit(t.snapshotLocked(EventPlayerAdded))
	return *p, nil
}

// Players returns the roster in registration order.
func (t *Tournament) Players() []Player {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.playersLocked()
}

// ResetAll clears every player, the current matches and the round counter.
// Settings are kept.
func (t *Tournament) ResetAll() {
	t.mu.Lock()
	cleared := len(t.players)
	t.players = nil
	t.index = make(map[string]*Player)
	t.matches = nil
	t.round = 1

	t.metrics.SetRosterSize(0)
	t.metrics.SetCurrentRound(t.round)
	log.Info("Tournament reset", "players_cleared", cleared)

	t.commit(t.snapshotLocked(EventReset))
}

// Settings returns the current settings.
func (t *Tournament) Settings() Settings {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.settings
}

// UpdateSettings replaces the settings. They take effect from the next generated round.
func (t *Tournament) UpdateSettings(s Settings) error {
	if err := ValidateSettings(s); err != nil {
		return err
	}
	t.mu.Lock()
	t.settings = s
	log.Info("Updated settings", "courts", s.Courts, "target_points", s.TargetPoints)
	t.commit(t.snapshotLocked(EventSettingsUpdated))
	return nil
}

// GenerateMatches pairs the current ranking onto courtCount courts and makes the
// result the current round. Unsubmitted matches of the previous call are discarded.
func (t *Tournament) GenerateMatches(courtCount int) []Match {
	defer t.observe("generate_matches", time.Now())

	t.mu.Lock()
	if len(t.matches) > 0 {
		log.Debug("Discarding unsubmitted matches", "round", t.round, "matches", len(t.matches))
	}
	t.matches = Pair(Rank(t.playersLocked()), courtCount)
	matches := cloneMatches(t.matches)

	t.metrics.IncRoundsGenerated()
	log.Info("Generated round", "round", t.round, "courts", courtCount, "matches", len(matches), "players", len(t.players))

	t.commit(t.snapshotLocked(EventRoundGenerated))
	return matches
}

// CurrentMatches returns the pending matches of the current round.
func (t *Tournament) CurrentMatches() []Match {
	t.mu.Lock()
	defer t.mu.Unlock()
	return cloneMatches(t.matches)
}

// RecordScore stores raw scores on a pending match without applying them.
func (t *Tournament) RecordScore(matchID string, scoreA, scoreB Score) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.matches {
		if t.matches[i].ID == matchID {
			t.matches[i].ScoreA = scoreA
			t.matches[i].ScoreB = scoreB
			log.Debug("Recorded score", "round", t.round, "court", t.matches[i].Court, "score_a", scoreA, "score_b", scoreB)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
}

// SubmitScores applies every match with two valid scores, skips the rest,
// then advances the round and clears the current matches. Skipped matches are
// not retried. The call is only rejected, without any change, when a match
// names an unregistered player or a player appears more than once in the batch.
func (t *Tournament) SubmitScores(matches []Match) (Submission, error) {
	defer t.observe("submit_scores", time.Now())

	t.mu.Lock()
	return t.submitLocked(matches)
}

// SubmitRound overlays the entries on the pending matches and submits them.
// Pending matches without an entry keep their recorded scores.
func (t *Tournament) SubmitRound(entries []ScoreEntry) (Submission, error) {
	defer t.observe("submit_round", time.Now())

	t.mu.Lock()
	if len(t.matches) == 0 {
		t.mu.Unlock()
		return Submission{}, ErrNoRoundInProgress
	}
	matches := cloneMatches(t.matches)
	for _, e := range entries {
		found := false
		for i := range matches {
			if matches[i].ID == e.MatchID {
				matches[i].ScoreA = e.ScoreA
				matches[i].ScoreB = e.ScoreB
				found = true
				break
			}
		}
		if !found {
			t.mu.Unlock()
			return Submission{}, fmt.Errorf("%w: %s", ErrMatchNotFound, e.MatchID)
		}
	}
	return t.submitLocked(matches)
}

// submitLocked must be called with t.mu held; it releases it.
func (t *Tournament) submitLocked(matches []Match) (Submission, error) {
	if err := t.checkMatchesLocked(matches); err != nil {
		t.mu.Unlock()
		log.Error("Rejected score submission", "error", err, "round", t.round)
		return Submission{}, err
	}

	sub := Submission{Round: t.round, Applied: make([]Result, 0, len(matches))}
	for _, m := range matches {
		res, ok := resultOf(t.round, m)
		if !ok {
			sub.Skipped++
			log.Debug("Skipping match without valid scores", "round", t.round, "court", m.Court, "score_a", m.ScoreA, "score_b", m.ScoreB)
			continue
		}
		apply(t.index, res)
		sub.Applied = append(sub.Applied, res)
	}
	t.round++
	t.matches = nil

	t.metrics.IncRoundsSubmitted()
	t.metrics.AddMatchesApplied(len(sub.Applied))
	t.metrics.AddMatchesSkipped(sub.Skipped)
	t.metrics.SetCurrentRound(t.round)
	log.Info("Submitted round", "round", sub.Round, "applied", len(sub.Applied), "skipped", sub.Skipped)

	snap := t.snapshotLocked(EventScoresSubmitted)
	snap.Results = append([]Result(nil), sub.Applied...)
	t.commit(snap)
	return sub, nil
}

// checkMatchesLocked requires registered players, each appearing at most once
// across the whole batch.
func (t *Tournament) checkMatchesLocked(matches []Match) error {
	seen := make(map[string]int, 4*len(matches))
	for _, m := range matches {
		for _, name := range [...]string{m.TeamA[0], m.TeamA[1], m.TeamB[0], m.TeamB[1]} {
			if _, ok := t.index[name]; !ok {
				return fmt.Errorf("%w: %q on court %d", ErrUnknownPlayer, name, m.Court)
			}
			if court, dup := seen[name]; dup {
				if court == m.Court {
					return fmt.Errorf("%w: %q twice on court %d", ErrInvalidMatch, name, m.Court)
				}
				return fmt.Errorf("%w: %q on courts %d and %d", ErrInvalidMatch, name, court, m.Court)
			}
			seen[name] = m.Court
		}
	}
	return nil
}

// Leaderboard returns all players sorted by descending points, computed fresh on every call.
func (t *Tournament) Leaderboard() []Player {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Rank(t.playersLocked())
}

// Round returns the current round number, starting at 1.
func (t *Tournament) Round() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.round
}

// Snapshot returns a copy of the current state.
func (t *Tournament) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked("")
}

// Audit replays results from an empty roster and compares them with the live stats.
func (t *Tournament) Audit(results []Result) AuditReport {
	live := t.Players()
	names := make([]string, len(live))
	for i, p := range live {
		names[i] = p.Name
	}

	replayed := make(map[string]Player)
	var order []string
	for _, p := range Replay(names, results) {
		replayed[p.Name] = p
		order = append(order, p.Name)
	}
	current := make(map[string]Player, len(live))
	for _, p := range live {
		current[p.Name] = p
	}

	report := AuditReport{Results: len(results), Mismatches: []Mismatch{}}
	for _, name := range order {
		r := replayed[name]
		l, ok := current[name]
		if ok && l == r {
			continue
		}
		m := Mismatch{Name: name, Replayed: &r}
		if ok {
			m.Live = &l
		}
		report.Mismatches = append(report.Mismatches, m)
	}
	report.Consistent = len(report.Mismatches) == 0
	if !report.Consistent {
		log.Warn("Audit found stats that do not match the journal", "mismatches", len(report.Mismatches), "results", len(results))
	}
	return report
}

// commit must be called with t.mu held. It takes a delivery ticket, releases
// t.mu and hands the snapshot to subscribers once every earlier ticket is done.
func (t *Tournament) commit(snap Snapshot) {
	ticket := t.published
	t.published++
	subscribers := append([]Subscriber(nil), t.subscribers...)
	t.mu.Unlock()

	t.deliverMu.Lock()
	for t.delivered != ticket {
		t.turn.Wait()
	}
	t.deliverMu.Unlock()
	defer func() {
		t.deliverMu.Lock()
		t.delivered++
		t.turn.Broadcast()
		t.deliverMu.Unlock()
	}()

	for _, s := range subscribers {
		s.OnSnapshot(snap)
	}
}

func (t *Tournament) snapshotLocked(event Event) Snapshot {
	players := t.playersLocked()
	return Snapshot{
		Event:       event,
		Round:       t.round,
		Players:     players,
		Leaderboard: Rank(players),
		Matches:     cloneMatches(t.matches),
		Settings:    t.settings,
	}
}

func (t *Tournament) playersLocked() []Player {
	players := make([]Player, len(t.players))
	for i, p := range t.players {
		players[i] = *p
	}
	return players
}

func (t *Tournament) observe(operation string, start time.Time) {
	t.metrics.ObserveOperationDuration(operation, time.Since(start).Seconds())
}

func cloneMatches(matches []Match) []Match {
	out := make([]Match, len(matches))
	copy(out, matches)
	return out
}
