package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/atomsim/internal/atoms"
	"github.com/san-kum/atomsim/internal/config"
	"github.com/san-kum/atomsim/internal/linalg"
	"github.com/san-kum/atomsim/internal/sim"
)

func testFrames(n int) ([]sim.Frame, *atoms.State) {
	s := atoms.New(2)
	for i := range s.M {
		s.Type[i] = 18
		s.M[i] = 39.948
	}
	s.X[1] = linalg.Vec3{X: 3.8}

	frames := make([]sim.Frame, n)
	for i := range frames {
		frames[i] = sim.Frame{
			Step: i * 10,
			X:    []linalg.Vec3{{}, {X: 3.8 + 0.01*float64(i)}},
			KE:   0.5 + 0.1*float64(i),
			Temp: 100 + float64(i),
		}
		frames[i].E.VdW = -0.2
	}
	return frames, s
}

func testMeta(system string, ts time.Time) Meta {
	cfg := config.DefaultConfig()
	cfg.System.Preset = system
	return Meta{
		System:    system,
		Timestamp: ts,
		Seed:      7,
		Config:    cfg,
		Final:     map[string]float64{"temperature": 118.2},
	}
}

func TestSaveLoad(t *testing.T) {
	store := New(t.TempDir())
	require.NoError(t, store.Init())

	frames, final := testFrames(5)
	ts := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	id, err := store.Save(testMeta("argon-pair", ts), frames, final)
	require.NoError(t, err)
	assert.Equal(t, "20260314-092653-argon-pair", id)

	meta, err := store.Load(id)
	require.NoError(t, err)
	assert.Equal(t, id, meta.ID)
	assert.Equal(t, int64(7), meta.Seed)
	assert.Equal(t, "argon-pair", meta.Config.System.Preset)
	assert.InDelta(t, 118.2, meta.Final["temperature"], 1e-9)

	_, err = store.Load("no-such-run")
	assert.Error(t, err)
}

func TestEnergiesRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	require.NoError(t, store.Init())

	frames, final := testFrames(4)
	id, err := store.Save(testMeta("argon-pair", time.Now()), frames, final)
	require.NoError(t, err)

	rows, err := store.LoadEnergies(id)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, 30, rows[3].Step)
	assert.InDelta(t, 0.8, rows[3].KE, 1e-6)
	assert.InDelta(t, -0.2, rows[3].PE, 1e-6)
	assert.InDelta(t, 0.6, rows[3].E, 1e-6)
	assert.InDelta(t, 103, rows[3].Temp, 1e-6)
}

func TestTrajectoryPlain(t *testing.T) {
	store := New(t.TempDir())
	require.NoError(t, store.Init())

	frames, final := testFrames(3)
	id, err := store.Save(testMeta("argon-pair", time.Now()), frames, final)
	require.NoError(t, err)

	states, err := store.LoadTrajectory(id)
	require.NoError(t, err)
	require.Len(t, states, 3)
	assert.Equal(t, 18, states[0].Type[0])
	assert.InDelta(t, 3.82, states[2].X[1].X, 1e-6)
}

func TestTrajectoryCompressed(t *testing.T) {
	store := New(t.TempDir())
	require.NoError(t, store.Init())

	meta := testMeta("argon-gas", time.Now())
	meta.Config.Output.Format = "xyz.zst"
	frames, final := testFrames(3)
	id, err := store.Save(meta, frames, final)
	require.NoError(t, err)

	// Compressed file on disk, plain absent.
	dir := filepath.Join(store.baseDir, id)
	_, err = os.Stat(filepath.Join(dir, trajFileZst))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, trajFile))
	assert.True(t, os.IsNotExist(err))

	states, err := store.LoadTrajectory(id)
	require.NoError(t, err)
	require.Len(t, states, 3)
	assert.InDelta(t, 3.81, states[1].X[1].X, 1e-6)
}

func TestCSVOnlyFormat(t *testing.T) {
	store := New(t.TempDir())
	require.NoError(t, store.Init())

	meta := testMeta("argon-pair", time.Now())
	meta.Config.Output.Format = "csv"
	frames, final := testFrames(2)
	id, err := store.Save(meta, frames, final)
	require.NoError(t, err)

	_, err = store.LoadTrajectory(id)
	assert.Error(t, err)
	rows, err := store.LoadEnergies(id)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestList(t *testing.T) {
	store := New(t.TempDir())
	require.NoError(t, store.Init())

	frames, final := testFrames(1)
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for i, system := range []string{"butane", "argon-pair", "argon-gas"} {
		_, err := store.Save(testMeta(system, base.Add(time.Duration(i)*time.Minute)), frames, final)
		require.NoError(t, err)
	}

	runs, err := store.List()
	require.NoError(t, err)
	require.Len(t, runs, 3)
	// Sorted by ID, which is timestamp-prefixed.
	assert.Equal(t, "butane", runs[0].System)
	assert.Equal(t, "argon-gas", runs[2].System)
}

func TestListEmpty(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "never-created"))
	runs, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}
