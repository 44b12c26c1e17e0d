package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/fluidballs/internal/dynamo"
)

func sampleResult() *dynamo.Result {
	return &dynamo.Result{
		Frames: []dynamo.Frame{
			{
				Tick:         0,
				Acceleration: dynamo.Vec2{Y: 0.2},
				Collisions:   1,
				Bodies: []dynamo.Body{
					{X: 10, Y: 50, VX: 1, Radius: 5, Mass: 523.5987755982989},
					{X: 18, Y: 50, VX: -1, Radius: 5, Mass: 523.5987755982989},
				},
			},
			{
				Tick:         2,
				Acceleration: dynamo.Vec2{X: -0.2},
				Bodies: []dynamo.Body{
					{X: 8.5, Y: 50.4, VX: -1, Radius: 5, Mass: 523.5987755982989},
					{X: 20.5, Y: 50.4, VX: 1, Radius: 5, Mass: 523.5987755982989},
				},
			},
		},
		Energy:     []float64{523.5987755982989, 523.5987755982989, 530.1},
		Collisions: []int{1, 0, 0},
		Metrics: map[string]float64{
			"kinetic_energy": 530.1,
		},
		StepsTaken: 3,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(RunMetadata{Name: "pebble", Seed: 42, Numeric: "float", Count: 2}, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.ID != runID || meta.Name != "pebble" || meta.Seed != 42 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Ticks != 3 {
		t.Errorf("expected 3 ticks, got %d", meta.Ticks)
	}
	if meta.Metrics["kinetic_energy"] != 530.1 {
		t.Errorf("expected kinetic energy 530.1, got %f", meta.Metrics["kinetic_energy"])
	}

	energy, collisions, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}
	if len(energy) != 3 || energy[2] != 530.1 {
		t.Errorf("unexpected energy series %v", energy)
	}
	if len(collisions) != 3 || collisions[0] != 1 {
		t.Errorf("unexpected collision series %v", collisions)
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}
	want := sampleResult().Frames
	if len(frames) != len(want) {
		t.Fatalf("expected %d frames, got %d", len(want), len(frames))
	}
	for i := range want {
		if frames[i].Tick != want[i].Tick || frames[i].Acceleration != want[i].Acceleration {
			t.Errorf("frame %d header mismatch: %+v", i, frames[i])
		}
		if len(frames[i].Bodies) != len(want[i].Bodies) {
			t.Fatalf("frame %d: expected %d bodies, got %d", i, len(want[i].Bodies), len(frames[i].Bodies))
		}
		for j := range want[i].Bodies {
			if frames[i].Bodies[j] != want[i].Bodies[j] {
				t.Errorf("frame %d body %d: got %+v, want %+v", i, j, frames[i].Bodies[j], want[i].Bodies[j])
			}
		}
	}
}

func TestStoreList(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "runs"))

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list on missing dir failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	first, err := st.Save(RunMetadata{Name: "dense"}, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	second, err := st.Save(RunMetadata{Name: "dense"}, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if first == second {
		t.Errorf("run ids must be unique, got %s twice", first)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreLoadMissing(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
	if _, _, err := st.LoadSeries("nope"); err == nil {
		t.Error("expected error for missing series")
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save(RunMetadata{Name: "windy", Numeric: "q20"}, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	var buf bytes.Buffer
	if err := st.ExportJSON(&buf, runID); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("exported JSON does not parse: %v", err)
	}
	if data.Run.Numeric != "q20" {
		t.Errorf("expected numeric q20, got %q", data.Run.Numeric)
	}
	if len(data.Energy) != 3 || len(data.Frames) != 2 {
		t.Errorf("expected 3 energy samples and 2 frames, got %d and %d", len(data.Energy), len(data.Frames))
	}
}
