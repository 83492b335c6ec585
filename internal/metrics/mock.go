package metrics

import "sync"

var _ Metrics = (*Mock)(nil)

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	playersRegistered   int
	playersRemoved      int
	matchesRecorded     int
	rejected            map[string]int
	players             int
	checkpointDurations []float64
	slackNotifSent      int
	slackNotifFailed    int
	eventsPublished     int
	eventsFailed        int
	startupTime         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		rejected:            make(map[string]int),
		checkpointDurations: make([]float64, 0),
	}
}

func (m *Mock) IncPlayersRegistered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playersRegistered++
}

func (m *Mock) IncPlayersRemoved() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playersRemoved++
}

func (m *Mock) IncMatchesRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesRecorded++
}

func (m *Mock) IncRejected(operation, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejected[operation+"/"+reason]++
}

func (m *Mock) SetPlayers(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players = count
}

func (m *Mock) ObserveCheckpointDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkpointDurations = append(m.checkpointDurations, duration)
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

func (m *Mock) IncEventsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventsFailed++
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

// PlayersRemoved returns the number of times IncPlayersRemoved was called.
func (m *Mock) PlayersRemoved() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playersRemoved
}

// MatchesRecorded returns the number of times IncMatchesRecorded was called.
func (m *Mock) MatchesRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesRecorded
}

// Rejected returns how often an operation was rejected for a reason.
func (m *Mock) Rejected(operation, reason string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rejected[operation+"/"+reason]
}

// Players returns the last value passed to SetPlayers.
func (m *Mock) Players() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.players
}

// Checkpoints returns the number of recorded checkpoint durations.
func (m *Mock) Checkpoints() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.checkpointDurations)
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

// EventsFailed returns the number of times IncEventsFailed was called.
func (m *Mock) EventsFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventsFailed
}
