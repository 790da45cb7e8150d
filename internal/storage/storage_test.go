//nolint:testpackage // White-box tests require access to unexported identifiers in this package.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idfusion/infinite-grid/internal/grid"
)

func sampleRecord() SessionRecord {
	return NewSessionRecord("simulate", time.Now().Add(-time.Minute), 100, grid.Stats{
		Tiles:    119,
		Centre:   grid.Coordinates{X: 1, Y: -1},
		Explored: grid.Span{LowerX: -3, UpperX: 3, LowerY: -8, UpperY: 8},
	})
}

func TestStorage_RecordPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")

	s, err := NewOrExistingStorage(path)
	require.NoError(t, err)
	require.FileExists(t, path)
	require.Empty(t, s.Data.Sessions)

	rec := sampleRecord()
	require.NoError(t, s.Record(rec))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	require.Len(t, raw["sessions"], 1)

	s2, err := NewStorage(path)
	require.NoError(t, err)
	require.Len(t, s2.Data.Sessions, 1)
	assert.Equal(t, rec.ID, s2.Data.Sessions[0].ID)
	assert.Equal(t, 119, s2.Data.Sessions[0].Tiles)
	assert.Equal(t, grid.Span{LowerX: -3, UpperX: 3, LowerY: -8, UpperY: 8}, s2.Data.Sessions[0].Explored)
}

func TestStorage_RecordRejectsInvalid(t *testing.T) {
	s, err := NewStorage(filepath.Join(t.TempDir(), "sessions.json"))
	require.NoError(t, err)

	rec := sampleRecord()
	rec.Mode = "teleport"
	assert.Error(t, s.Record(rec))
	assert.Empty(t, s.Data.Sessions)
}

func TestStorage_HistoryIsBounded(t *testing.T) {
	s, err := NewStorage(filepath.Join(t.TempDir(), "sessions.json"))
	require.NoError(t, err)

	var last SessionRecord
	for range MaxSessions + 5 {
		last = sampleRecord()
		require.NoError(t, s.Record(last))
	}

	require.Len(t, s.Data.Sessions, MaxSessions)
	assert.Equal(t, last.ID, s.Data.Sessions[MaxSessions-1].ID)
}

func TestStorage_LoadDropsInvalidRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")
	s, err := NewStorage(path)
	require.NoError(t, err)

	good := sampleRecord()
	bad := sampleRecord()
	bad.ID = "not-a-uuid"
	s.Data.Sessions = []SessionRecord{good, bad}
	require.NoError(t, s.Save())

	s2, err := NewStorage(path)
	require.NoError(t, err)
	require.Len(t, s2.Data.Sessions, 1)
	assert.Equal(t, good.ID, s2.Data.Sessions[0].ID)

	// The cleaned history was written back.
	s3, err := NewStorage(path)
	require.NoError(t, err)
	assert.Len(t, s3.Data.Sessions, 1)
}

func TestStorage_Reset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")
	s, err := NewStorage(path)
	require.NoError(t, err)
	require.NoError(t, s.Record(sampleRecord()))

	require.NoError(t, s.Reset())

	s2, err := NewStorage(path)
	require.NoError(t, err)
	assert.Empty(t, s2.Data.Sessions)
}

func TestStorage_RejectsInvalidPath(t *testing.T) {
	_, err := NewStorage(t.TempDir())
	assert.ErrorContains(t, err, "invalid storage path")

	_, err = NewStorage("")
	assert.ErrorContains(t, err, "invalid storage path")
}

func TestStorage_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewStorage(path)
	assert.Error(t, err)
}
