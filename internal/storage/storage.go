package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/idfusion/infinite-grid/internal/config"
	"github.com/idfusion/infinite-grid/internal/grid"
	"github.com/idfusion/infinite-grid/internal/validate"
)

// MaxSessions bounds the history kept on disk.
const MaxSessions = 50

// SessionRecord summarises one exploration session. Tiles themselves are never stored.
type SessionRecord struct {
	ID        string           `json:"id" validate:"required,uuid4"`
	Mode      string           `json:"mode" validate:"required,oneof=explore simulate"`
	StartedAt time.Time        `json:"started_at"`
	EndedAt   time.Time        `json:"ended_at"`
	TileSize  float64          `json:"tile_size" validate:"gt=0"`
	Tiles     int              `json:"tiles" validate:"gte=0"`
	Centre    grid.Coordinates `json:"centre"`
	Explored  grid.Span        `json:"explored"`
}

// NewSessionRecord stamps a record for a finished session.
func NewSessionRecord(mode string, startedAt time.Time, tileSize float64, stats grid.Stats) SessionRecord {
	return SessionRecord{
		ID:        uuid.NewString(),
		Mode:      mode,
		StartedAt: startedAt,
		EndedAt:   time.Now(),
		TileSize:  tileSize,
		Tiles:     stats.Tiles,
		Centre:    stats.Centre,
		Explored:  stats.Explored,
	}
}

// Data represents the structure of the storage file.
type Data struct {
	Sessions []SessionRecord `json:"sessions"`
}

// Storage handles the loading and saving of the storage file.
type Storage struct {
	Path string `validate:"required,filepath"`
	Data Data
}

// NewStorage creates a new Storage instance, loading the file if it exists.
func NewStorage(path string) (*Storage, error) {
	expandedPath, err := config.ExpandTilde(path)
	if err != nil {
		return nil, err
	}

	s := &Storage{
		Path: expandedPath,
		Data: Data{Sessions: []SessionRecord{}},
	}
	if err := validate.Struct(s); err != nil {
		return nil, fmt.Errorf("invalid storage path %q: %w", path, err)
	}

	if err := s.Load(); err != nil {
		// If the file doesn't exist, we can ignore the error.
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	return s, nil
}

// NewOrExistingStorage returns existing storage if the file exists, or creates a new one otherwise.
// When creating a new storage, it writes the initial structure to disk immediately.
func NewOrExistingStorage(path string) (*Storage, error) {
	s, err := NewStorage(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(s.Path); os.IsNotExist(err) {
		if err := s.Save(); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Storage) Load() error {
	logrus.Debug("Loading storage file from: ", s.Path)
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, &s.Data); err != nil {
		return err
	}

	// Drop records that fail validation rather than refusing the whole file.
	kept := s.Data.Sessions[:0]
	for _, rec := range s.Data.Sessions {
		if err := validate.Struct(rec); err != nil {
			logrus.Warnf("Dropping invalid session record %q: %v", rec.ID, err)
			continue
		}
		kept = append(kept, rec)
	}
	if len(kept) != len(s.Data.Sessions) {
		s.Data.Sessions = kept
		return s.Save()
	}
	return nil
}

// Save writes the storage data to the file.
func (s *Storage) Save() error {
	logrus.Debug("Saving storage file to: ", s.Path)
	// Ensure parent directory exists.
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.Data, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.Path, data, 0o600)
}

// Record appends a session, trims history to MaxSessions and saves.
func (s *Storage) Record(rec SessionRecord) error {
	if err := validate.Struct(rec); err != nil {
		return err
	}
	s.Data.Sessions = append(s.Data.Sessions, rec)
	if n := len(s.Data.Sessions); n > MaxSessions {
		s.Data.Sessions = s.Data.Sessions[n-MaxSessions:]
	}
	return s.Save()
}

// Reset clears the session history.
func (s *Storage) Reset() error {
	logrus.Debug("Resetting session history")
	s.Data.Sessions = []SessionRecord{}
	return s.Save()
}
