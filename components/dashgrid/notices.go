package dashgrid

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// NoticeStore records dismissed dashboard notices per device, keyed by the
// clientId:userId:noticeKey namespace shared with other per-user device
// state. Backed by a single JSON file so dismissals survive restarts.
type NoticeStore struct {
	path string

	mu        sync.Mutex
	dismissed map[string]time.Time
	loaded    bool
}

// NewNoticeStore creates a store persisting to the given file path.
func NewNoticeStore(path string) *NoticeStore {
	return &NoticeStore{
		path:      path,
		dismissed: make(map[string]time.Time),
	}
}

// Dismiss records that the user dismissed a notice.
func (s *NoticeStore) Dismiss(user UserContext, noticeKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return err
	}
	s.dismissed[s.key(user, noticeKey)] = time.Now().UTC()
	return s.flush()
}

// Dismissed reports whether the notice was previously dismissed.
func (s *NoticeStore) Dismissed(user UserContext, noticeKey string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return false
	}
	_, ok := s.dismissed[s.key(user, noticeKey)]
	return ok
}

// Reset clears a dismissal so the notice shows again.
func (s *NoticeStore) Reset(user UserContext, noticeKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return err
	}
	delete(s.dismissed, s.key(user, noticeKey))
	return s.flush()
}

func (s *NoticeStore) key(user UserContext, noticeKey string) string {
	return user.StorageKey() + ":" + noticeKey
}

// load requires s.mu to be held.
func (s *NoticeStore) load() error {
	if s.loaded {
		return nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.loaded = true
			return nil
		}
		return fmt.Errorf("dashgrid: read notice store %s: %w", s.path, err)
	}
	if err := json.Unmarshal(data, &s.dismissed); err != nil {
		return fmt.Errorf("dashgrid: parse notice store %s: %w", s.path, err)
	}
	s.loaded = true
	return nil
}

// flush requires s.mu to be held.
func (s *NoticeStore) flush() error {
	data, err := json.MarshalIndent(s.dismissed, "", "  ")
	if err != nil {
		return fmt.Errorf("dashgrid: encode notice store: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("dashgrid: create notice store dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("dashgrid: write notice store %s: %w", s.path, err)
	}
	return nil
}
