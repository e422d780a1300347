package metrics

import "sync"

var _ Metrics = (*Mock)(nil)

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	playersRegistered   int
	roundsGenerated     int
	roundsSubmitted     int
	matchesApplied      int
	matchesSkipped      int
	currentRound        int
	rosterSize          int
	operationDurations  map[string][]float64
	slackNotifSent      int
	slackNotifFailed    int
	eventsPublished     int
	eventsPublishFailed int
	startupTime         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		operationDurations: make(map[string][]float64),
	}
}

func (m *Mock) IncPlayersRegistered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playersRegistered++
}

func (m *Mock) IncRoundsGenerated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roundsGenerated++
}

func (m *Mock) IncRoundsSubmitted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roundsSubmitted++
}

func (m *Mock) AddMatchesApplied(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesApplied += n
}

func (m *Mock) AddMatchesSkipped(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesSkipped += n
}

func (m *Mock) SetCurrentRound(round int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentRound = round
}

func (m *Mock) SetRosterSize(size int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rosterSize = size
}

func (m *Mock) ObserveOperationDuration(operation string, seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.operationDurations[operation] = append(m.operationDurations[operation], seconds)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) IncEventsPublished() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventsPublished++
}

func (m *Mock) IncEventsPublishFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventsPublishFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// PlayersRegistered returns the number of times IncPlayersRegistered was called.
func (m *Mock) PlayersRegistered() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playersRegistered
}

// RoundsGenerated returns the number of times IncRoundsGenerated was called.
func (m *Mock) RoundsGenerated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.roundsGenerated
}

// RoundsSubmitted returns the number of times IncRoundsSubmitted was called.
func (m *Mock) RoundsSubmitted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.roundsSubmitted
}

// MatchesApplied returns the sum passed to AddMatchesApplied.
func (m *Mock) MatchesApplied() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesApplied
}

// MatchesSkipped returns the sum passed to AddMatchesSkipped.
func (m *Mock) MatchesSkipped() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesSkipped
}

// CurrentRound returns the last value passed to SetCurrentRound.
func (m *Mock) CurrentRound() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentRound
}

// RosterSize returns the last value passed to SetRosterSize.
func (m *Mock) RosterSize() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rosterSize
}

// OperationObservations returns how many durations were observed for operation.
func (m *Mock) OperationObservations(operation string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.operationDurations[operation])
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

// EventsPublished returns the number of times IncEventsPublished was called.
func (m *Mock) EventsPublished() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventsPublished
}

// EventsPublishFailed returns the number of times IncEventsPublishFailed was called.
func (m *Mock) EventsPublishFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventsPublishFailed
}

// StartupTime returns the last value passed to SetStartupTime.
func (m *Mock) StartupTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startupTime
}
