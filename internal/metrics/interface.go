package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncPlayersRegistered()
	IncRoundsGenerated()
	IncRoundsSubmitted()
	AddMatchesApplied(n int)
	AddMatchesSkipped(n int)
	SetCurrentRound(round int)
	SetRosterSize(size int)
	ObserveOperationDuration(operation string, seconds float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	IncEventsPublished()
	IncEventsPublishFailed()
	SetStartupTime(duration float64)
}
