package intake

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/refindhq/refind/core"
)

// Step is an intake session's position in the question sequence.
type Step int

const (
	StepName Step = iota + 1
	StepLocation
	StepPhoto
	StepContact
	StepConfirm
)

// String returns the step name for logging.
func (s Step) String() string {
	switch s {
	case StepName:
		return "name"
	case StepLocation:
		return "location"
	case StepPhoto:
		return "photo"
	case StepContact:
		return "contact"
	case StepConfirm:
		return "confirm"
	default:
		return "unknown"
	}
}

// Session is one user's in-progress report intake. Answers are collected
// step by step; the photo step may be skipped. A confirmed session yields a
// Report ready for the submission pipeline.
type Session struct {
	Id        core.ID
	Kind      core.ReportKind
	Step      Step
	Name      string
	Location  string
	Photo     []byte
	Contact   string
	StartedAt time.Time
	UpdatedAt time.Time
}

// Manager tracks intake sessions in memory, keyed by the content hash of a
// caller-supplied token (a chat or connection identifier).
type Manager struct {
	mu       sync.RWMutex
	sessions map[core.ID]*Session
	logger   *slog.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
	}
}

// NewManager creates a new intake session manager.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		sessions: make(map[core.ID]*Session),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// sessionID derives the session key from a token.
func sessionID(token string) core.ID {
	return core.IDFromContent([]byte(token))
}

// Begin starts a session for a token, or resumes the one already open.
func (m *Manager) Begin(token string, kind core.ReportKind) *Session {
	id := sessionID(token)

	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.sessions[id]; ok {
		return session
	}

	now := time.Now().UTC()
	session := &Session{
		Id:        id,
		Kind:      kind,
		Step:      StepName,
		StartedAt: now,
		UpdatedAt: now,
	}
	m.sessions[id] = session
	m.logger.Debug("intake session started", "sessionID", id, "kind", kind)
	return session
}

// Get returns the session for a token.
func (m *Manager) Get(token string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[sessionID(token)]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Abandon drops a session without producing a report.
func (m *Manager) Abandon(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID(token))
}

// ProvideName records the item's name and advances to the location step.
func (m *Manager) ProvideName(token, name string) (*Session, error) {
	return m.answer(token, StepName, name, func(s *Session, answer string) {
		s.Name = answer
		s.Step = StepLocation
	})
}

// ProvideLocation records the location and advances to the photo step.
func (m *Manager) ProvideLocation(token, location string) (*Session, error) {
	return m.answer(token, StepLocation, location, func(s *Session, answer string) {
		s.Location = answer
		s.Step = StepPhoto
	})
}

// ProvidePhoto records the photo and advances to the contact step.
func (m *Manager) ProvidePhoto(token string, photo []byte) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[sessionID(token)]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.Step != StepPhoto {
		return nil, ErrWrongStep
	}

	session.Photo = photo
	session.Step = StepContact
	session.UpdatedAt = time.Now().UTC()
	return session, nil
}

// SkipPhoto advances past the photo step without one.
func (m *Manager) SkipPhoto(token string) (*Session, error) {
	return m.ProvidePhoto(token, nil)
}

// ProvideContact records contact details and advances to confirmation.
func (m *Manager) ProvideContact(token, contact string) (*Session, error) {
	return m.answer(token, StepContact, contact, func(s *Session, answer string) {
		s.Contact = answer
		s.Step = StepConfirm
	})
}

// Confirm closes the session and returns the collected report plus the photo
// bytes for the submission pipeline. The report's date defaults to today.
func (m *Manager) Confirm(token string, reporterID core.ID) (core.Report, []byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := sessionID(token)
	session, ok := m.sessions[id]
	if !ok {
		return core.Report{}, nil, ErrSessionNotFound
	}
	if session.Step != StepConfirm {
		return core.Report{}, nil, ErrNotComplete
	}

	report := core.Report{
		Name:       session.Name,
		Location:   session.Location,
		Contact:    session.Contact,
		Date:       time.Now().UTC(),
		ReporterId: reporterID,
	}

	delete(m.sessions, id)
	m.logger.Info("intake session confirmed", "sessionID", id, "kind", session.Kind)
	return report, session.Photo, nil
}

// answer applies a text answer for an expected step.
func (m *Manager) answer(token string, step Step, raw string, apply func(*Session, string)) (*Session, error) {
	answer := strings.TrimSpace(raw)
	if answer == "" {
		return nil, ErrEmptyAnswer
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[sessionID(token)]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.Step != step {
		return nil, ErrWrongStep
	}

	apply(session, answer)
	session.UpdatedAt = time.Now().UTC()
	return session, nil
}
