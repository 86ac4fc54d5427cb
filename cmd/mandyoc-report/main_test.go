package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/tectonic-data/mandyoc.report/internal/mandyoc"
)

func TestPickSwarm(t *testing.T) {
	swarms := []*mandyoc.Swarm{
		{Step: 0},
		{Step: 10},
		{Step: 20},
	}

	s, err := pickSwarm(swarms, -1)
	if err != nil {
		t.Fatal(err)
	}
	if s.Step != 20 {
		t.Errorf("pickSwarm(-1) = step %d, want the last step 20", s.Step)
	}

	s, err = pickSwarm(swarms, 10)
	if err != nil {
		t.Fatal(err)
	}
	if s.Step != 10 {
		t.Errorf("pickSwarm(10) = step %d", s.Step)
	}

	if _, err := pickSwarm(swarms, 5); err == nil {
		t.Error("pickSwarm(5) did not fail for an unsaved step")
	}
}

func TestExportSwarmCSV(t *testing.T) {
	swarm := &mandyoc.Swarm{
		Step: 10,
		X:    []float64{10, 20},
		Y:    []float64{-1, -2},
		Z:    []float64{-100, -200},
		Flag: []float64{0, 1},
	}
	path := filepath.Join(t.TempDir(), "swarm.csv")
	if err := exportSwarmCSV(swarm, path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d CSV rows, want header plus 2 particles", len(records))
	}
	if records[0][3] != "flag" {
		t.Errorf("header = %v", records[0])
	}
	if records[2][0] != "20" || records[2][3] != "1" {
		t.Errorf("second particle row = %v", records[2])
	}
}

func TestDedupe(t *testing.T) {
	got := dedupe([]string{"velocity", "temperature", "velocity"})
	if len(got) != 2 || got[0] != "velocity" || got[1] != "temperature" {
		t.Errorf("dedupe = %v", got)
	}
}
