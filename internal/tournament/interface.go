package tournament

// Subscriber receives a snapshot after every mutating operation.
// Snapshots are delivered synchronously and in operation order.
type Subscriber interface {
	OnSnapshot(snapshot Snapshot)
}

// SubscriberFunc adapts a function to the Subscriber interface.
type SubscriberFunc func(snapshot Snapshot)

func (f SubscriberFunc) OnSnapshot(snapshot Snapshot) {
	f(snapshot)
}

// Metrics defines the metrics the tournament reports.
// This keeps the tournament package decoupled from the metrics implementation.
type Metrics interface {
	IncPlayersRegistered()
	IncRoundsGenerated()
	IncRoundsSubmitted()
	AddMatchesApplied(n int)
	AddMatchesSkipped(n int)
	SetCurrentRound(round int)
	SetRosterSize(size int)
	ObserveOperationDuration(operation string, seconds float64)
}

type nopMetrics struct{}

func (nopMetrics) IncPlayersRegistered() {}
func (nopMetrics) IncRoundsGenerated() {}
func (nopMetrics) IncRoundsSubmitted() {}
func (nopMetrics) AddMatchesApplied(int) {}
func (nopMetrics) AddMatchesSkipped(int) {}
func (nopMetrics) SetCurrentRound(int) {}
func (nopMetrics) SetRosterSize(int) {}
func (nopMetrics) ObserveOperationDuration(string, float64) {}
