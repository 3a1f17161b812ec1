package testutil

import (
	"context"
	"odh/internal/models"
	"odh/internal/outreach"
	"odh/internal/providers"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// MockCache implements providers.CacheProviderInterface and records the TTL
// of every Set.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
	TTLs map[string]time.Duration
}

func NewMockCache() *MockCache {
	return &MockCache{
		Data: make(map[string][]byte),
		TTLs: make(map[string]time.Duration),
	}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
	m.TTLs[key] = ttl
}

func (m *MockCache) Count() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.Data))
}

// MockCompressor implements providers.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

// MockOutreachClient implements outreach.ClientInterface with injectable
// responses and call counting.
type MockOutreachClient struct {
	mu sync.Mutex

	UserStatsFn     func(username string) (*models.UserStats, error)
	CourseDetailsFn func(school, slug string) (*models.CourseInfo, error)
	CourseRosterFn  func(school, slug string) ([]models.EnrollmentRecord, error)

	UserStatsCalls     int
	CourseDetailsCalls int
	CourseRosterCalls  int
}

func (m *MockOutreachClient) FetchUserStats(_ context.Context, username string) (*models.UserStats, error) {
	m.mu.Lock()
	m.UserStatsCalls++
	m.mu.Unlock()
	if m.UserStatsFn != nil {
		return m.UserStatsFn(username)
	}
	return nil, &outreach.Error{Kind: outreach.KindNotFound, Resource: outreach.ResourceUserStats, Ref: username}
}

func (m *MockOutreachClient) FetchCourseDetails(_ context.Context, school, slug string) (*models.CourseInfo, error) {
	m.mu.Lock()
	m.CourseDetailsCalls++
	m.mu.Unlock()
	if m.CourseDetailsFn != nil {
		return m.CourseDetailsFn(school, slug)
	}
	return nil, &outreach.Error{Kind: outreach.KindNotFound, Resource: outreach.ResourceCourse, Ref: school + "/" + slug}
}

func (m *MockOutreachClient) FetchCourseRoster(_ context.Context, school, slug string) ([]models.EnrollmentRecord, error) {
	m.mu.Lock()
	m.CourseRosterCalls++
	m.mu.Unlock()
	if m.CourseRosterFn != nil {
		return m.CourseRosterFn(school, slug)
	}
	return nil, &outreach.Error{Kind: outreach.KindNotFound, Resource: outreach.ResourceCourseUsers, Ref: school + "/" + slug}
}
