package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/XavierPelle/sprintly/internal/application/common"
	"github.com/XavierPelle/sprintly/internal/domain/ticket"
	"github.com/XavierPelle/sprintly/internal/shared/logger"
)

// MockTxManager runs the callback directly. Failed callbacks are counted as
// rollbacks; the in-memory repositories do not undo their writes.
type MockTxManager struct {
	mu        sync.Mutex
	Calls     int
	Rollbacks int
}

func NewMockTxManager() *MockTxManager {
	return &MockTxManager{}
}

func (m *MockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()

	if err := fn(ctx); err != nil {
		m.mu.Lock()
		m.Rollbacks++
		m.mu.Unlock()
		return err
	}
	return nil
}

// MockNotifier records every notice it receives.
type MockNotifier struct {
	mu        sync.Mutex
	Assigned  []common.AssignmentNotice
	Rejected  []common.TestRejectedNotice
	SendError error
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) TicketAssigned(ctx context.Context, n common.AssignmentNotice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Assigned = append(m.Assigned, n)
	return m.SendError
}

func (m *MockNotifier) TestRejected(ctx context.Context, n common.TestRejectedNotice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Rejected = append(m.Rejected, n)
	return m.SendError
}

// MockKeyGenerator proposes keys from a sequence unless GenerateFunc is set.
type MockKeyGenerator struct {
	mu           sync.Mutex
	next         int
	Calls        int
	GenerateFunc func(ctx context.Context, prefix string) (string, error)
}

func NewMockKeyGenerator() *MockKeyGenerator {
	return &MockKeyGenerator{}
}

func (m *MockKeyGenerator) Generate(ctx context.Context, prefix string) (string, error) {
	m.mu.Lock()
	m.Calls++
	fn := m.GenerateFunc
	m.next++
	n := m.next
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, prefix)
	}
	return ticket.FormatKey(prefix, n), nil
}

// MockLogger is a mock implementation of logger.Interface for testing.
type MockLogger struct {
	mu      sync.RWMutex
	entries []LogEntry
}

// LogEntry records a log call.
type LogEntry struct {
	Level   string
	Message string
	Fields  map[string]interface{}
}

func NewMockLogger() *MockLogger {
	return &MockLogger{entries: make([]LogEntry, 0)}
}

func (m *MockLogger) Debug(msg string, args ...any) { m.log("DEBUG", msg, args...) }
func (m *MockLogger) Info(msg string, args ...any)  { m.log("INFO", msg, args...) }
func (m *MockLogger) Warn(msg string, args ...any)  { m.log("WARN", msg, args...) }
func (m *MockLogger) Error(msg string, args ...any) { m.log("ERROR", msg, args...) }
func (m *MockLogger) Fatal(msg string, args ...any) { m.log("FATAL", msg, args...) }

func (m *MockLogger) With(args ...any) logger.Interface  { return m }
func (m *MockLogger) Named(name string) logger.Interface { return m }

func (m *MockLogger) Debugw(msg string, keysAndValues ...interface{}) {
	m.log("DEBUG", msg, keysAndValues...)
}

func (m *MockLogger) Infow(msg string, keysAndValues ...interface{}) {
	m.log("INFO", msg, keysAndValues...)
}

func (m *MockLogger) Warnw(msg string, keysAndValues ...interface{}) {
	m.log("WARN", msg, keysAndValues...)
}

func (m *MockLogger) Errorw(msg string, keysAndValues ...interface{}) {
	m.log("ERROR", msg, keysAndValues...)
}

func (m *MockLogger) Fatalw(msg string, keysAndValues ...interface{}) {
	m.log("FATAL", msg, keysAndValues...)
}

func (m *MockLogger) log(level, msg string, fields ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := LogEntry{
		Level:   level,
		Message: msg,
		Fields:  make(map[string]interface{}),
	}
	for i := 0; i < len(fields)-1; i += 2 {
		if key, ok := fields[i].(string); ok {
			entry.Fields[key] = fields[i+1]
		}
	}
	m.entries = append(m.entries, entry)
}

// GetEntries returns all logged entries.
func (m *MockLogger) GetEntries() []LogEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]LogEntry(nil), m.entries...)
}

// HasEntry reports whether a message was logged at level.
func (m *MockLogger) HasEntry(level, msg string) bool {
	for _, e := range m.GetEntries() {
		if e.Level == level && e.Message == msg {
			return true
		}
	}
	return false
}

// MockPasswordHasher stores passwords with a fixed prefix.
type MockPasswordHasher struct {
	HashError error
}

func NewMockPasswordHasher() *MockPasswordHasher {
	return &MockPasswordHasher{}
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashError != nil {
		return "", m.HashError
	}
	return "hashed:" + password, nil
}

func (m *MockPasswordHasher) Verify(password, hash string) error {
	if hash != "hashed:"+password {
		return fmt.Errorf("password mismatch")
	}
	return nil
}

// MockDashboardCache keeps JSON-encoded entries in memory.
type MockDashboardCache struct {
	mu       sync.Mutex
	entries  map[string][]byte
	Gets     int
	Sets     int
	GetError error
	SetError error
}

func NewMockDashboardCache() *MockDashboardCache {
	return &MockDashboardCache{entries: make(map[string][]byte)}
}

func (m *MockDashboardCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Gets++
	if m.GetError != nil {
		return false, m.GetError
	}
	data, ok := m.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (m *MockDashboardCache) Set(ctx context.Context, key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sets++
	if m.SetError != nil {
		return m.SetError
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = data
	return nil
}

func (m *MockDashboardCache) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[key]
	return ok
}

// MockCacheRecorder counts cache lookups.
type MockCacheRecorder struct {
	Hits   int
	Misses int
}

func (m *MockCacheRecorder) ObserveCacheLookup(hit bool) {
	if hit {
		m.Hits++
		return
	}
	m.Misses++
}
