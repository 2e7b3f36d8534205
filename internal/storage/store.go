package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/tripend/internal/dynamo"
	"github.com/san-kum/tripend/internal/sim"
)

const (
	metadataFile = "metadata.json"
	statesFile   = "states.csv"
)

var header = []string{
	"time",
	"theta0", "theta1", "theta2",
	"omega0", "omega1", "omega2",
	"x1", "y1", "x2", "y2", "x3", "y3",
	"kinetic", "potential", "total",
}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Method    string             `json:"method"`
	Solver    string             `json:"solver"`
	Preset    string             `json:"preset,omitempty"`
	Dt        float64            `json:"dt"`
	Steps     int                `json:"steps"`
	Samples   int                `json:"samples"`
	Metrics   map[string]float64 `json:"metrics"`
}

// RunInfo describes how a run was configured.
type RunInfo struct {
	Solver string
	Preset string
	Dt     float64
}

// Save writes the metadata and sampled trajectory of result under a new
// run directory and returns its id.
func (s *Store) Save(info RunInfo, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", result.Method.Key(), now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: now,
		Method:    result.Method.Key(),
		Solver:    info.Solver,
		Preset:    info.Preset,
		Dt:        info.Dt,
		Steps:     result.StepsTaken,
		Samples:   len(result.Samples),
		Metrics:   result.Metrics,
	}

	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSamples(filepath.Join(runDir, statesFile), result.Samples); err != nil {
		return "", err
	}
	return runID, nil
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return err
	}
	return f.Close()
}

func writeSamples(path string, samples []sim.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}

	for _, smp := range samples {
		row := make([]string, 0, len(header))
		row = append(row, formatFloat(smp.Time))
		for _, v := range smp.State.Slice() {
			row = append(row, formatFloat(v))
		}
		for _, p := range smp.Vertices[1:] {
			row = append(row, formatFloat(p.X), formatFloat(p.Y))
		}
		row = append(row, formatFloat(smp.Kinetic), formatFloat(smp.Potential), formatFloat(smp.Total))

		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadSamples reads back the trajectory written by Save.
func (s *Store) LoadSamples(runID string) ([]sim.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(header)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	if len(records) < 2 {
		return []sim.Sample{}, nil
	}

	samples := make([]sim.Sample, 0, len(records)-1)
	for i, record := range records[1:] {
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("run %s: row %d column %s: %w", runID, i+1, header[j], err)
			}
			vals[j] = v
		}
		samples = append(samples, decodeSample(vals))
	}
	return samples, nil
}

func decodeSample(v []float64) sim.Sample {
	var smp sim.Sample
	smp.Time = v[0]
	copy(smp.State.Theta[:], v[1:4])
	copy(smp.State.Omega[:], v[4:7])
	for i := 0; i < dynamo.Links; i++ {
		smp.Vertices[i+1] = dynamo.Point{X: v[7+2*i], Y: v[8+2*i]}
	}
	smp.Kinetic, smp.Potential, smp.Total = v[13], v[14], v[15]
	return smp
}
