package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/fluidballs/internal/dynamo"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "series.csv"
	statesFile   = "states.csv"
)

// Store keeps run artifacts, one directory per run.
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
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Numeric     string             `json:"numeric"`
	Driver      string             `json:"driver"`
	Width       float64            `json:"width"`
	Height      float64            `json:"height"`
	Count       int                `json:"count"`
	Restitution float64            `json:"restitution"`
	Ticks       int                `json:"ticks"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes metadata, the per-tick series and the sampled frames of result
// and returns the new run ID.
func (s *Store) Save(meta RunMetadata, result *dynamo.Result) (string, error) {
	if meta.Name == "" {
		meta.Name = "run"
	}
	meta.Timestamp = time.Now()
	meta.Ticks = result.StepsTaken
	meta.Metrics = result.Metrics

	runID, runDir, err := s.newRunDir(meta.Name, meta.Timestamp)
	if err != nil {
		return "", err
	}
	meta.ID = runID

	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSeries(filepath.Join(runDir, seriesFile), result); err != nil {
		return "", err
	}
	if err := writeStates(filepath.Join(runDir, statesFile), result.Frames); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) newRunDir(name string, now time.Time) (string, string, error) {
	base := fmt.Sprintf("%s_%d", name, now.Unix())
	runID := base
	for i := 2; ; i++ {
		runDir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			return runID, runDir, nil
		}
		if os.IsNotExist(err) {
			if err := s.Init(); err != nil {
				return "", "", err
			}
			continue
		}
		if !os.IsExist(err) {
			return "", "", err
		}
		runID = fmt.Sprintf("%s_%d", base, i)
	}
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeSeries(path string, result *dynamo.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"tick", "kinetic_energy", "collisions"}); err != nil {
		return err
	}
	for i, e := range result.Energy {
		c := 0
		if i < len(result.Collisions) {
			c = result.Collisions[i]
		}
		row := []string{strconv.Itoa(i), formatFloat(e), strconv.Itoa(c)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

var statesHeader = []string{"tick", "ax", "ay", "collisions", "ball", "x", "y", "vx", "vy", "radius", "mass"}

func writeStates(path string, frames []dynamo.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(statesHeader); err != nil {
		return err
	}
	for _, fr := range frames {
		for i, b := range fr.Bodies {
			row := []string{
				strconv.Itoa(fr.Tick),
				formatFloat(fr.Acceleration.X),
				formatFloat(fr.Acceleration.Y),
				strconv.Itoa(fr.Collisions),
				strconv.Itoa(i),
				formatFloat(b.X), formatFloat(b.Y),
				formatFloat(b.VX), formatFloat(b.VY),
				formatFloat(b.Radius), formatFloat(b.Mass),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
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

// LoadSeries returns the per-tick kinetic energy and collision counts.
func (s *Store) LoadSeries(runID string) ([]float64, []int, error) {
	records, err := s.readCSV(runID, seriesFile)
	if err != nil {
		return nil, nil, err
	}

	energy := make([]float64, 0, len(records))
	collisions := make([]int, 0, len(records))
	for _, record := range records {
		if len(record) < 3 {
			continue
		}
		e, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		c, err := strconv.Atoi(record[2])
		if err != nil {
			continue
		}
		energy = append(energy, e)
		collisions = append(collisions, c)
	}
	return energy, collisions, nil
}

// LoadFrames rebuilds the sampled frames of a run.
func (s *Store) LoadFrames(runID string) ([]dynamo.Frame, error) {
	records, err := s.readCSV(runID, statesFile)
	if err != nil {
		return nil, err
	}

	frames := make([]dynamo.Frame, 0)
	for _, record := range records {
		if len(record) != len(statesHeader) {
			continue
		}
		vals := make([]float64, len(record))
		ok := true
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}

		tick := int(vals[0])
		if len(frames) == 0 || frames[len(frames)-1].Tick != tick {
			frames = append(frames, dynamo.Frame{
				Tick:         tick,
				Acceleration: dynamo.Vec2{X: vals[1], Y: vals[2]},
				Collisions:   int(vals[3]),
			})
		}
		fr := &frames[len(frames)-1]
		fr.Bodies = append(fr.Bodies, dynamo.Body{
			X: vals[5], Y: vals[6],
			VX: vals[7], VY: vals[8],
			Radius: vals[9], Mass: vals[10],
		})
	}
	return frames, nil
}

func (s *Store) readCSV(runID, name string) ([][]string, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, name))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	if len(records) < 2 {
		return [][]string{}, nil
	}
	return records[1:], nil
}
