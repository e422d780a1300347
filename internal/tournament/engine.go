package tournament

import (
	"sort"

	"github.com/google/uuid"
)

// MaxCourts is the number of courts covered by the seeding table.
const MaxCourts = 2

// bracket holds the rank positions (0-indexed) that meet on one court.
type bracket struct {
	teamA [2]int
	teamB [2]int
}

// courtBrackets is the Mexicano seeding table. On every court the 1st and 4th
// of the bracket play against the 2nd and 3rd.
//
// TODO: generalize to N courts as court i = ranks {4i, 4i+3} vs {4i+1, 4i+2}
// once more than two courts are offered in the settings.
var courtBrackets = [MaxCourts]bracket{
	{teamA: [2]int{0, 3}, teamB: [2]int{1, 2}},
	{teamA: [2]int{4, 7}, teamB: [2]int{5, 6}},
}

// required returns how many ranked players the bracket needs.
func (b bracket) required() int {
	highest := 0
	for _, i := range [...]int{b.teamA[0], b.teamA[1], b.teamB[0], b.teamB[1]} {
		if i > highest {
			highest = i
		}
	}
	return highest + 1
}

// Rank returns a copy of players ordered by descending points.
// Equal points keep their input order; no further tie-break is applied.
func Rank(players []Player) []Player {
	ranked := make([]Player, len(players))
	copy(ranked, players)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Points > ranked[j].Points
	})
	return ranked
}

// Pair builds the matches for a round from a ranking. Courts whose bracket
// cannot be filled are omitted, as are courts beyond MaxCourts.
func Pair(ranked []Player, courtCount int) []Match {
	matches := make([]Match, 0, MaxCourts)
	for i := 0; i < courtCount && i < len(courtBrackets); i++ {
		b := courtBrackets[i]
		if len(ranked) < b.required() {
			continue
		}
		matches = append(matches, Match{
			ID:    uuid.NewString(),
			Court: i + 1,
			TeamA: Team{ranked[b.teamA[0]].Name, ranked[b.teamA[1]].Name},
			TeamB: Team{ranked[b.teamB[0]].Name, ranked[b.teamB[1]].Name},
		})
	}
	return matches
}

func outcomeOf(scoreA, scoreB int) Outcome {
	switch {
	case scoreA == scoreB:
		return OutcomeDraw
	case scoreA > scoreB:
		return OutcomeTeamA
	default:
		return OutcomeTeamB
	}
}

// resultOf returns the result of a match if both scores are valid.
func resultOf(round int, m Match) (Result, bool) {
	scoreA, okA := m.ScoreA.Int()
	scoreB, okB := m.ScoreB.Int()
	if !okA || !okB {
		return Result{}, false
	}
	return Result{
		Round:   round,
		Court:   m.Court,
		TeamA:   m.TeamA,
		TeamB:   m.TeamB,
		ScoreA:  scoreA,
		ScoreB:  scoreB,
		Outcome: outcomeOf(scoreA, scoreB),
	}, true
}

// apply credits a result to every player on both teams.
// Points are raw score totals; the outcome only drives the W/D/L counters.
func apply(index map[string]*Player, res Result) {
	for _, name := range res.TeamA {
		credit(index[name], res.ScoreA, res.Outcome, OutcomeTeamA)
	}
	for _, name := range res.TeamB {
		credit(index[name], res.ScoreB, res.Outcome, OutcomeTeamB)
	}
}

func credit(p *Player, score int, outcome, side Outcome) {
	p.Points += score
	p.Played++
	switch outcome {
	case OutcomeDraw:
		p.Draws++
	case side:
		p.Wins++
	default:
		p.Losses++
	}
}

// Replay rebuilds stats from zero by applying results in order. Players are
// returned in the order of names; names only found in results are appended.
func Replay(names []string, results []Result) []Player {
	players := make([]*Player, 0, len(names))
	index := make(map[string]*Player, len(names))
	add := func(name string) {
		if _, ok := index[name]; ok {
			return
		}
		p := &Player{Name: name}
		players = append(players, p)
		index[name] = p
	}
	for _, name := range names {
		add(name)
	}
	for _, res := range results {
		for _, name := range res.TeamA {
			add(name)
		}
		for _, name := range res.TeamB {
			add(name)
		}
		apply(index, res)
	}

	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = *p
	}
	return out
}
