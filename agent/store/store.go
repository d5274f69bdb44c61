package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var (
	ErrProfileNotFound = errors.New("user profile not found")
	ErrNilEvent        = errors.New("calendar event is nil")
)

const (
	defaultProfileFile  = "user_profile.json"
	defaultCalendarFile = "calendar_db.json"
)

// Profile is the singleton user record. Read-only from the agent's side.
type Profile struct {
	Name        string      `json:"name"`
	Preferences Preferences `json:"preferences"`
	Goals       []string    `json:"goals,omitempty"`
}

type Preferences struct {
	FocusTime          string `json:"focus_time,omitempty"`
	CommunicationStyle string `json:"communication_style,omitempty"`
}

// CalendarEvent is one appended record: a scheduled event or a reminder.
type CalendarEvent struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Due       string    `json:"due"`
	Priority  string    `json:"priority,omitempty"`
	Type      string    `json:"type,omitempty"`
	Status    string    `json:"status,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is the persistence contract used by the tool gateway.
type Store interface {
	LoadProfile(ctx context.Context) (*Profile, error)
	Events(ctx context.Context) ([]CalendarEvent, error)
	AppendEvent(ctx context.Context, ev *CalendarEvent) error
}

// StoreOption customizes FileStore.
type StoreOption func(*FileStore)

func WithProfilePath(path string) StoreOption {
	return func(s *FileStore) {
		trimmed := strings.TrimSpace(path)
		if trimmed != "" {
			s.profilePath = trimmed
		}
	}
}

func WithCalendarPath(path string) StoreOption {
	return func(s *FileStore) {
		trimmed := strings.TrimSpace(path)
		if trimmed != "" {
			s.calendarPath = trimmed
		}
	}
}

// FileStore persists the profile and calendar as flat JSON files. The
// calendar is read then immediately rewritten on each append; no isolation
// between concurrent processes is provided.
type FileStore struct {
	profilePath  string
	calendarPath string

	mu sync.Mutex
}

type FileStoreConfig struct {
	Dir string `envconfig:"DIR" split_words:"true" default:"."`
}

func NewFileStore(cfg FileStoreConfig, opts ...StoreOption) (*FileStore, error) {
	dir := strings.TrimSpace(cfg.Dir)
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	s := &FileStore{
		profilePath:  filepath.Join(dir, defaultProfileFile),
		calendarPath: filepath.Join(dir, defaultCalendarFile),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

func (s *FileStore) LoadProfile(ctx context.Context) (*Profile, error) {
	raw, err := os.ReadFile(s.profilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("read profile: %w", err)
	}

	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		// A corrupt profile reads as absent, so the turn can proceed with
		// default preferences instead of failing.
		return nil, fmt.Errorf("%w: decode profile: %v", ErrProfileNotFound, err)
	}
	return &p, nil
}

func (s *FileStore) Events(ctx context.Context) ([]CalendarEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readEvents()
}

func (s *FileStore) AppendEvent(ctx context.Context, ev *CalendarEvent) error {
	if ev == nil {
		return ErrNilEvent
	}
	if strings.TrimSpace(ev.ID) == "" {
		return fmt.Errorf("%w: event id is empty", ErrNilEvent)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.readEvents()
	if err != nil {
		return err
	}
	events = append(events, *ev)

	payload, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal calendar: %w", err)
	}
	if err := os.WriteFile(s.calendarPath, payload, 0o644); err != nil {
		return fmt.Errorf("write calendar: %w", err)
	}
	return nil
}

// readEvents treats a missing or unreadable calendar file as empty, matching
// the forgiving load-or-default behavior of the profile side.
func (s *FileStore) readEvents() ([]CalendarEvent, error) {
	raw, err := os.ReadFile(s.calendarPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read calendar: %w", err)
	}

	var events []CalendarEvent
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, nil
	}
	return events, nil
}
