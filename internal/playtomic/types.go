package playtomic

// SearchMatchesParams defines the parameters for searching for matches.
type SearchMatchesParams struct {
	SportID       string
	HasPlayers    bool
	Sort          string
	TenantIDs     []string
	FromStartDate string
}

// MatchSummary contains the essential details of a match from a search result.
type MatchSummary struct {
	MatchID string
	OwnerID *string
}

// PadelMatch is a booked match with the players registered on it.
type PadelMatch struct {
	MatchID      string
	OwnerID      string
	Start        int64
	End          int64
	Status       string
	GameStatus   GameStatus
	Teams        []Team
	ResourceName string
	Tenant       Tenant
}

// GameStatus defines the status of a game.
type GameStatus string

const (
	GameStatusPending    GameStatus = "PENDING"
	GameStatusPlayed     GameStatus = "PLAYED"
	GameStatusUnknown    GameStatus = "UNKNOWN"
	GameStatusCanceled   GameStatus = "CANCELED"
	GameStatusWaitingFor GameStatus = "WAITING_FOR"
	GameStatusExpired    GameStatus = "EXPIRED"
	GameStatusInProgress GameStatus = "IN_PROGRESS"
)

// Team represents a team in a match.
type Team struct {
	ID      string
	Players []Player
}

// Player represents a player in a match.
type Player struct {
	UserID string  `json:"user_id"`
	Name   string  `json:"name"`
	Level  float64 `json:"level"`
}

// Tenant represents a Playtomic tenant (club).
type Tenant struct {
	ID   string
	Name string
}

// playtomicMatchResponse defines the structure for the JSON response from the Playtomic API for a single match.
type playtomicMatchResponse struct {
	OwnerID      string                  `json:"owner_id"`
	StartDate    string                  `json:"start_date"`
	EndDate      string                  `json:"end_date"`
	Status       string                  `json:"status"`
	GameStatus   string                  `json:"game_status"`
	Teams        []playtomicTeamResponse `json:"teams"`
	ResourceName string                  `json:"resource_name"`
	Tenant       playtomicTenant         `json:"tenant"`
}

// playtomicTenant defines the structure for the tenant information in the response.
type playtomicTenant struct {
	ID   string `json:"tenant_id"`
	Name string `json:"tenant_name"`
}

// playtomicTeamResponse defines the structure for a team within the match response.
type playtomicTeamResponse struct {
	TeamID  string                    `json:"team_id"`
	Players []playtomicPlayerResponse `json:"players"`
}

// playtomicPlayerResponse defines the structure for a player within a team.
type playtomicPlayerResponse struct {
	UserID     string   `json:"user_id"`
	Name       string   `json:"name"`
	LevelValue *float64 `json:"level_value"`
}
