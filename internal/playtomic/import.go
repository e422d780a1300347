package playtomic

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// Players returns the match's players in team order.
func (m PadelMatch) Players() []Player {
	var players []Player
	for _, team := range m.Teams {
		players = append(players, team.Players...)
	}
	return players
}

// CollectPlayers returns every player booked on a padel match at the club on
// the given day, in booking order and without duplicates. Canceled matches are ignored.
func CollectPlayers(c PlaytomicClient, tenantID string, day time.Time) ([]Player, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.Local)
	until := from.AddDate(0, 0, 1)

	summaries, err := c.GetMatches(&SearchMatchesParams{
		SportID:       "PADEL",
		HasPlayers:    true,
		Sort:          "start_date,ASC",
		TenantIDs:     []string{tenantID},
		FromStartDate: from.Format(timeLayout),
	})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var players []Player
	for _, s := range summaries {
		match, err := c.GetSpecificMatch(s.MatchID)
		if err != nil {
			return nil, fmt.Errorf("match %s: %w", s.MatchID, err)
		}
		if match.Start >= until.Unix() {
			// Results are sorted by start date.
			break
		}
		if match.GameStatus == GameStatusCanceled {
			log.Debug("Skipping canceled match", "matchID", match.MatchID)
			continue
		}
		for _, p := range match.Players() {
			key := p.UserID
			if key == "" {
				key = p.Name
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			players = append(players, p)
		}
	}
	log.Info("Collected players from Playtomic", "tenantID", tenantID, "day", from.Format("2006-01-02"), "matches", len(summaries), "players", len(players))
	return players, nil
}
