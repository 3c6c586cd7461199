package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/liftr/internal/catalog"
	"github.com/sadopc/liftr/internal/store"
	"github.com/sadopc/liftr/internal/workout"
)

func sampleData() []store.WorkoutRecord {
	now := time.Now().UTC()
	bench, _ := catalog.Lookup("1")
	pushups, _ := catalog.Lookup("3")

	return []store.WorkoutRecord{
		{
			ID: 1,
			CompletedWorkout: workout.CompletedWorkout{
				Exercises: []workout.SessionExercise{
					{Exercise: bench, Sets: []workout.PlannedSet{
						{ID: "a", Reps: workout.IntPtr(10), Weight: workout.FloatPtr(60), Completed: true},
						{ID: "b", Reps: workout.IntPtr(8), Weight: workout.FloatPtr(62.5), Completed: true},
					}},
					{Exercise: pushups, Sets: []workout.PlannedSet{
						{ID: "c", Reps: workout.IntPtr(20), Completed: true},
					}},
				},
				ElapsedSeconds: 3600,
				StartedAt:      now.Add(-time.Hour),
				FinishedAt:     now,
			},
			CreatedAt: now,
		},
		{
			ID: 2,
			CompletedWorkout: workout.CompletedWorkout{
				Exercises: []workout.SessionExercise{
					{Exercise: pushups, Sets: []workout.PlannedSet{
						{ID: "d", Completed: true}, // reps never entered
					}},
				},
				ElapsedSeconds: 90,
				StartedAt:      now.Add(-2 * time.Minute),
				FinishedAt:     now,
				Partial:        true,
			},
			CreatedAt: now,
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	return records
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.csv")

	if err := ToCSV(sampleData(), "kg", path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}
	records := readCSV(t, path)

	// header + one row per set
	if len(records) != 5 {
		t.Fatalf("expected 5 rows (1 header + 4 sets), got %d", len(records))
	}

	for i, h := range csvHeader {
		if records[0][i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, records[0][i], h)
		}
	}

	row := records[2]
	want := map[int]string{0: "1", 2: "Bench Press", 3: "Chest, Triceps", 4: "2", 5: "8", 6: "62.5", 7: "kg", 8: "500", 9: "01:00:00", 10: "false"}
	for col, v := range want {
		if row[col] != v {
			t.Fatalf("col %s = %q, want %q", csvHeader[col], row[col], v)
		}
	}

	// Bodyweight set has no weight or unit
	push := records[3]
	if push[6] != "" || push[7] != "" {
		t.Fatalf("bodyweight set should have empty weight/unit, got %q %q", push[6], push[7])
	}
	if push[8] != "0" {
		t.Fatalf("bodyweight volume = %q, want 0", push[8])
	}

	// Unset reps stay empty
	partial := records[4]
	if partial[5] != "" {
		t.Fatalf("unset reps should be empty, got %q", partial[5])
	}
	if partial[10] != "true" {
		t.Fatalf("partial = %q, want true", partial[10])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	if err := ToCSV(nil, "kg", path); err != nil {
		t.Fatal(err)
	}
	if records := readCSV(t, path); len(records) != 1 {
		t.Fatalf("expected 1 row (header only), got %d", len(records))
	}
}

func TestToCSVBadPath(t *testing.T) {
	err := ToCSV(nil, "kg", "/nonexistent/dir/file.csv")
	if err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToCSVSpecialCharacters(t *testing.T) {
	recs := []store.WorkoutRecord{{
		ID: 7,
		CompletedWorkout: workout.CompletedWorkout{
			Exercises: []workout.SessionExercise{{
				Exercise: catalog.Exercise{ID: "x", Name: `Press "Heavy", slow`, Equipment: []catalog.Equipment{catalog.Barbell}},
				Sets:     []workout.PlannedSet{{Reps: workout.IntPtr(1), Weight: workout.FloatPtr(1), Completed: true}},
			}},
			FinishedAt: time.Now(),
		},
	}}
	path := filepath.Join(t.TempDir(), "special.csv")

	if err := ToCSV(recs, "lbs", path); err != nil {
		t.Fatal(err)
	}
	records := readCSV(t, path)
	if records[1][2] != `Press "Heavy", slow` {
		t.Fatalf("exercise name mangled: %q", records[1][2])
	}
	if records[1][7] != "lbs" {
		t.Fatalf("unit = %q, want lbs", records[1][7])
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.json")

	if err := ToJSON(sampleData(), "kg", path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var result jsonExport
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if result.Count != 2 || len(result.Workouts) != 2 {
		t.Fatalf("count = %d, workouts = %d, want 2", result.Count, len(result.Workouts))
	}
	if result.Unit != "kg" {
		t.Fatalf("unit = %q", result.Unit)
	}

	w := result.Workouts[0]
	if w.ID != 1 || w.DurationSec != 3600 || w.Duration != "01:00:00" {
		t.Fatalf("unexpected workout header: %+v", w)
	}
	if w.TotalSets != 3 || w.TotalVolume != 1100 {
		t.Fatalf("sets = %d, volume = %v", w.TotalSets, w.TotalVolume)
	}
	if len(w.Exercises) != 2 || w.Exercises[0].Name != "Bench Press" {
		t.Fatalf("unexpected exercises: %+v", w.Exercises)
	}
	if w.Exercises[0].Sets[1].Number != 2 || *w.Exercises[0].Sets[1].Weight != 62.5 {
		t.Fatalf("unexpected set: %+v", w.Exercises[0].Sets[1])
	}
	if w.Exercises[1].Sets[0].Weight != nil {
		t.Fatal("bodyweight set should omit weight")
	}
	if !result.Workouts[1].Partial {
		t.Fatal("second workout should be partial")
	}
	if result.Workouts[1].Exercises[0].Sets[0].Reps != nil {
		t.Fatal("unset reps should be null")
	}
}

func TestToJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")

	if err := ToJSON(nil, "kg", path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	var result jsonExport
	json.Unmarshal(data, &result)

	if result.Count != 0 {
		t.Fatalf("count = %d, want 0", result.Count)
	}
	if result.Workouts != nil {
		t.Fatal("workouts should be nil/null for empty export")
	}
}

func TestToJSONBadPath(t *testing.T) {
	err := ToJSON(nil, "kg", "/nonexistent/dir/file.json")
	if err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToJSONPrettyPrinted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pretty.json")
	ToJSON(nil, "kg", path)

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "\n") {
		t.Fatal("JSON should be pretty-printed with newlines")
	}
	if !strings.Contains(string(data), "  ") {
		t.Fatal("JSON should be indented with spaces")
	}
}

func TestToJSONValidTimestamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ts.json")
	ToJSON(sampleData(), "kg", path)

	data, _ := os.ReadFile(path)
	var result jsonExport
	json.Unmarshal(data, &result)

	if _, err := time.Parse(time.RFC3339, result.ExportedAt); err != nil {
		t.Fatalf("exported_at is not valid RFC3339: %q", result.ExportedAt)
	}
	for _, w := range result.Workouts {
		if _, err := time.Parse(time.RFC3339, w.StartedAt); err != nil {
			t.Fatalf("started_at is not valid RFC3339: %q", w.StartedAt)
		}
		if _, err := time.Parse(time.RFC3339, w.FinishedAt); err != nil {
			t.Fatalf("finished_at is not valid RFC3339: %q", w.FinishedAt)
		}
	}
}

// ============================================================
// Format dispatch
// ============================================================

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"csv", CSV, false},
		{" JSON ", JSON, false},
		{"xml", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestWriteDispatch(t *testing.T) {
	dir := t.TempDir()
	for _, f := range Formats {
		path := filepath.Join(dir, "out."+string(f))
		if err := Write(f, sampleData(), "kg", path); err != nil {
			t.Fatalf("Write(%s): %v", f, err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("missing %s output: %v", f, err)
		}
	}
	if err := Write("xml", nil, "kg", filepath.Join(dir, "out.xml")); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestDefaultPath(t *testing.T) {
	day := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	got := DefaultPath(JSON, day)
	if filepath.Base(got) != "liftr-export-2026-10-16.json" {
		t.Fatalf("unexpected default path %q", got)
	}
}
