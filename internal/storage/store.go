package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/dancesim/internal/dance"
	"github.com/san-kum/dancesim/internal/sim"
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

type RunMetadata struct {
	ID             string             `json:"id"`
	MovesFile      string             `json:"moves_file"`
	Moves          int                `json:"moves"`
	Timestamp      time.Time          `json:"timestamp"`
	Alphabet       string             `json:"alphabet"`
	Rounds         int                `json:"rounds"`
	RoundsExecuted int                `json:"rounds_executed"`
	CycleStart     int                `json:"cycle_start"`
	CycleLength    int                `json:"cycle_length"`
	Final          string             `json:"final"`
	Metrics        map[string]float64 `json:"metrics"`
}

// RoundRecord is one row of rounds.csv: the line-up before a round.
type RoundRecord struct {
	Round        int
	Lineup       string
	Displacement int
}

// Save writes metadata.json and rounds.csv under a fresh run directory.
// A failed write removes the run directory.
func (s *Store) Save(movesFile string, moves int, x0 dance.State[string], rounds int, result *sim.Result[string]) (_ string, err error) {
	now := time.Now()
	runID := fmt.Sprintf("dance_%d_%s", now.Unix(), uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			os.RemoveAll(runDir)
		}
	}()

	meta := RunMetadata{
		ID:             runID,
		MovesFile:      movesFile,
		Moves:          moves,
		Timestamp:      now,
		Alphabet:       x0.String(),
		Rounds:         rounds,
		RoundsExecuted: result.RoundsExecuted,
		CycleStart:     result.CycleStart,
		CycleLength:    result.CycleLength,
		Final:          result.Final.String(),
		Metrics:        result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "rounds.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"round", "lineup", "displacement"}); err != nil {
		return "", err
	}
	for i, x := range result.History {
		row := []string{
			strconv.Itoa(i),
			x.String(),
			strconv.Itoa(x.Displacement(x0)),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

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

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadRounds(runID string) ([]RoundRecord, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "rounds.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 3

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []RoundRecord{}, nil
	}

	rounds := make([]RoundRecord, 0, len(records)-1)
	for _, record := range records[1:] {
		round, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("rounds.csv: bad round %q: %w", record[0], err)
		}
		disp, err := strconv.Atoi(record[2])
		if err != nil {
			return nil, fmt.Errorf("rounds.csv: bad displacement %q: %w", record[2], err)
		}
		rounds = append(rounds, RoundRecord{Round: round, Lineup: record[1], Displacement: disp})
	}

	return rounds, nil
}
