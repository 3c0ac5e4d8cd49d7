package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStoreSaveAndList(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"run_b", "run_a"} {
		meta := RunMetadata{
			ID:        id,
			Preset:    "cylinder",
			Timestamp: base.Add(time.Duration(-i) * time.Hour),
			Seed:      1,
			Dt:        0.01,
			Steps:     200,
			GridNx:    32, GridNy: 32,
			Metrics: map[string]float64{"particle_drift": 1e-6},
		}
		obs := Observables{
			Header: []string{"time", "finger_speed"},
			Rows:   [][]float64{{0, 0}, {0.04, 0.02}},
		}
		if _, err := s.Save(meta, obs); err != nil {
			t.Fatalf("Save %s failed: %v", id, err)
		}
	}

	runs, err := s.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	// Sorted oldest first: run_a was stamped an hour before run_b.
	if runs[0].ID != "run_a" || runs[1].ID != "run_b" {
		t.Errorf("order: %s, %s", runs[0].ID, runs[1].ID)
	}
	if runs[0].Metrics["particle_drift"] != 1e-6 {
		t.Errorf("metrics not preserved: %v", runs[0].Metrics)
	}
}

func TestStoreObservablesCSV(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	obs := Observables{
		Header: []string{"time", "norm"},
		Rows:   [][]float64{{0.5, 1.25}},
	}
	id, err := s.Save(RunMetadata{ID: "run_csv", Timestamp: time.Now()}, obs)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, id, "observables.csv"))
	if err != nil {
		t.Fatalf("open csv: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0][0] != "time" || records[0][1] != "norm" {
		t.Errorf("header: %v", records[0])
	}
	if records[1][0] != "0.5" || records[1][1] != "1.25" {
		t.Errorf("row: %v", records[1])
	}
}

func TestStoreGeneratesID(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	id, err := s.Save(RunMetadata{Timestamp: time.Now()}, Observables{})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if id == "" {
		t.Error("expected generated run ID")
	}
}
