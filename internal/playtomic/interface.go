package playtomic

// PlaytomicClient is the part of the Playtomic API used to import a roster:
// searching a club's bookings and loading one booking with its players.
type PlaytomicClient interface {
	GetMatches(params *SearchMatchesParams) ([]MatchSummary, error)
	GetSpecificMatch(matchID string) (PadelMatch, error)
}
