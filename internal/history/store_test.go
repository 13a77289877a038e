package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowaak/f3-workout/f3-workout-app/internal/workout"
)

var sampleEntries = []Entry{
	{ID: "b", Timestamp: 2000, Types: []workout.FocusType{workout.FocusHIIT, workout.FocusCardio}, Workout: "**Warm-Up**\n- SSH"},
	{ID: "a", Timestamp: 1000, Types: []workout.FocusType{workout.FocusMixed}, Workout: "older"},
}

func stores(t *testing.T) map[string]func() Store {
	return map[string]func() Store{
		"memory": func() Store { return NewMemoryStore() },
		"file": func() Store {
			return NewFileStore(filepath.Join(t.TempDir(), "nested", "history.json"))
		},
		"sqlite": func() Store {
			s, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })
			return s
		},
	}
}

func TestStores_RoundTripAndClear(t *testing.T) {
	for name, newStore := range stores(t) {
		t.Run(name, func(t *testing.T) {
			s := newStore()

			empty, err := s.ReadAll()
			require.NoError(t, err)
			assert.Empty(t, empty)

			require.NoError(t, s.WriteAll(sampleEntries))
			got, err := s.ReadAll()
			require.NoError(t, err)
			assert.Equal(t, sampleEntries, got)

			require.NoError(t, s.WriteAll(sampleEntries[1:]))
			got, err = s.ReadAll()
			require.NoError(t, err)
			assert.Equal(t, sampleEntries[1:], got)

			require.NoError(t, s.Clear())
			got, err = s.ReadAll()
			require.NoError(t, err)
			assert.Empty(t, got)
			require.NoError(t, s.Clear(), "clearing twice is fine")
		})
	}
}

func TestFileStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewFileStore(path).ReadAll()
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestSQLiteStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := OpenSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.WriteAll(sampleEntries))
	require.NoError(t, s.Close())

	s, err = OpenSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, sampleEntries, got)
}

func TestSQLiteStore_CorruptTypes(t *testing.T) {
	s, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer s.Close()

	_, err = s.db.Exec(`INSERT INTO workouts (position, id, created_at, types, workout) VALUES (0, 'x', 1, 'nope', 'w');`)
	require.NoError(t, err)

	_, err = s.ReadAll()
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	s, closer, err := Open(BackendFile, "", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "history.json"), s.(*FileStore).Path())
	assert.NoError(t, closer.Close())

	s, closer, err = Open(BackendSQLite, "", dir)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	assert.NoError(t, closer.Close())
	assert.FileExists(t, filepath.Join(dir, "history.db"))

	s, _, err = Open(BackendMemory, "", dir)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	_, _, err = Open("postgres", "", dir)
	assert.Error(t, err)
}
