// Package storage persists finished runs: one directory per run with a
// JSON metadata file, a per-frame energy table, and the trajectory in
// plain or zstd-compressed XYZ.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/san-kum/atomsim/internal/atoms"
	"github.com/san-kum/atomsim/internal/config"
	"github.com/san-kum/atomsim/internal/sim"
	"github.com/san-kum/atomsim/internal/xyz"
)

const (
	metaFile     = "metadata.json"
	energiesFile = "energies.csv"
	trajFile     = "traj.xyz"
	trajFileZst  = "traj.xyz.zst"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Meta is the metadata.json payload: the configuration echo plus the
// stage telemetry and closing observables of the run.
type Meta struct {
	ID        string             `json:"id"`
	System    string             `json:"system"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Config    *config.Config     `json:"config,omitempty"`
	Result    *sim.RunResult     `json:"result,omitempty"`
	Final     map[string]float64 `json:"final,omitempty"`
}

// Save writes one run directory named <timestamp>-<system> and returns
// its ID. The trajectory format follows the output configuration;
// "csv" keeps only the energy table.
func (s *Store) Save(meta Meta, frames []sim.Frame, final *atoms.State) (string, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	id := fmt.Sprintf("%s-%s", meta.Timestamp.Format("20060102-150405"), meta.System)
	meta.ID = id

	runDir := filepath.Join(s.baseDir, id)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, metaFile), meta); err != nil {
		return "", err
	}
	if err := writeEnergies(filepath.Join(runDir, energiesFile), frames); err != nil {
		return "", err
	}

	format := "xyz"
	if meta.Config != nil && meta.Config.Output.Format != "" {
		format = meta.Config.Output.Format
	}
	if format == "csv" || len(frames) == 0 || final == nil {
		return id, nil
	}

	name := trajFile
	if format == "xyz.zst" {
		name = trajFileZst
	}
	if err := writeTrajectory(filepath.Join(runDir, name), frames, final); err != nil {
		return "", err
	}
	return id, nil
}

func writeJSON(path string, meta Meta) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeEnergies(path string, frames []sim.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"step", "ke", "pe", "e", "temp"}); err != nil {
		return err
	}
	for _, fr := range frames {
		pe := fr.E.Total()
		row := []string{
			strconv.Itoa(fr.Step),
			strconv.FormatFloat(fr.KE, 'f', 6, 64),
			strconv.FormatFloat(pe, 'f', 6, 64),
			strconv.FormatFloat(fr.KE+pe, 'f', 6, 64),
			strconv.FormatFloat(fr.Temp, 'f', 2, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// writeTrajectory replays the recorded frames onto a clone of the
// final state, so element types and charges come along.
func writeTrajectory(path string, frames []sim.Frame, final *atoms.State) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var w io.Writer = f
	var zw *zstd.Encoder
	if filepath.Ext(path) == ".zst" {
		zw, err = zstd.NewWriter(f)
		if err != nil {
			return err
		}
		w = zw
	}

	snap := final.Clone()
	for _, fr := range frames {
		copy(snap.X, fr.X)
		if fr.V != nil {
			copy(snap.V, fr.V)
		}
		snap.E = fr.E
		opt := xyz.Options{
			Comment:  fmt.Sprintf("step=%d", fr.Step),
			Velocity: fr.V != nil,
			Energies: true,
		}
		if err := xyz.Write(w, snap, opt); err != nil {
			return err
		}
	}

	if zw != nil {
		return zw.Close()
	}
	return nil
}

// List returns the metadata of every run under the store, newest last.
func (s *Store) List() ([]Meta, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Meta{}, nil
		}
		return nil, err
	}

	runs := make([]Meta, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.Load(e.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].ID < runs[j].ID })
	return runs, nil
}

func (s *Store) Load(id string) (*Meta, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metaFile))
	if err != nil {
		return nil, err
	}
	var meta Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: %s: %w", id, err)
	}
	return &meta, nil
}

// EnergyRow is one record of energies.csv.
type EnergyRow struct {
	Step int
	KE   float64
	PE   float64
	E    float64
	Temp float64
}

func (s *Store) LoadEnergies(id string) ([]EnergyRow, error) {
	f, err := os.Open(filepath.Join(s.baseDir, id, energiesFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("storage: %s: %w", id, err)
	}
	rows := make([]EnergyRow, 0, len(records))
	for i, rec := range records {
		if i == 0 || len(rec) < 5 {
			continue
		}
		var row EnergyRow
		row.Step, err = strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("storage: %s row %d: %w", id, i, err)
		}
		vals := make([]float64, 4)
		for k := 0; k < 4; k++ {
			vals[k], err = strconv.ParseFloat(rec[k+1], 64)
			if err != nil {
				return nil, fmt.Errorf("storage: %s row %d: %w", id, i, err)
			}
		}
		row.KE, row.PE, row.E, row.Temp = vals[0], vals[1], vals[2], vals[3]
		rows = append(rows, row)
	}
	return rows, nil
}

// LoadTrajectory reads back the stored frames, transparently handling
// the compressed variant.
func (s *Store) LoadTrajectory(id string) ([]*atoms.State, error) {
	runDir := filepath.Join(s.baseDir, id)

	if f, err := os.Open(filepath.Join(runDir, trajFileZst)); err == nil {
		defer f.Close()
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return xyz.ReadFrames(dec)
	}

	f, err := os.Open(filepath.Join(runDir, trajFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return xyz.ReadFrames(f)
}
