package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadopc/liftr/internal/catalog"
	"github.com/sadopc/liftr/internal/store"
	"github.com/sadopc/liftr/internal/workout"
)

// run parses args against a fresh CLI rooted in a temp dir and executes the
// selected command. The returned CLI is closed.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cli := CLI{out: &buf}
	parser, err := kong.New(&cli,
		kong.Name("liftr"),
		kong.Vars{"version": "test"},
		kong.Bind(&cli),
	)
	require.NoError(t, err)

	base := []string{
		"--config", filepath.Join(dir, "config.yaml"),
		"--db", filepath.Join(dir, "liftr.db"),
	}
	ctx, err := parser.Parse(append(base, args...))
	if err != nil {
		return "", err
	}
	defer cli.Close()
	err = ctx.Run()
	return buf.String(), err
}

// seed stores one finished workout: bench press 10 × 60 and push-ups 15.
func seed(t *testing.T, dir string) {
	t.Helper()
	s, err := store.New(filepath.Join(dir, "liftr.db"))
	require.NoError(t, err)
	defer s.Close()

	bench, _ := catalog.Lookup("1")
	pushups, _ := catalog.Lookup("3")
	plan := workout.NewPlan(bench, pushups)
	require.NoError(t, plan.UpdateSet(0, 0, workout.SetInput{Reps: "10", Weight: "60"}))
	require.NoError(t, plan.UpdateSet(1, 0, workout.SetInput{Reps: "15"}))

	tpl, err := workout.NewTemplate("Push day", plan)
	require.NoError(t, err)
	require.NoError(t, s.SaveTemplate(tpl))

	session, err := plan.Start()
	require.NoError(t, err)
	_, err = session.CompleteSet(0)
	require.NoError(t, err)
	require.NoError(t, session.JumpToExercise(1))
	_, err = session.CompleteSet(0)
	require.NoError(t, err)
	cw, err := session.Finish(false)
	require.NoError(t, err)
	_, err = s.SaveWorkout(cw)
	require.NoError(t, err)
}

func TestCatalogCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "Bench Press")
	assert.Contains(t, out, "Plank")

	out, err = run(t, dir, "catalog", "--equipment", "bodyweight", "--muscle", "core")
	require.NoError(t, err)
	assert.Contains(t, out, "Plank")
	assert.NotContains(t, out, "Bench Press")

	out, err = run(t, dir, "catalog", "squat")
	require.NoError(t, err)
	assert.Contains(t, out, "Squat")
	assert.NotContains(t, out, "Deadlift")

	out, err = run(t, dir, "catalog", "nothing-matches-this")
	require.NoError(t, err)
	assert.Contains(t, out, "No exercises found")
}

func TestCatalogCommandUnknownFilter(t *testing.T) {
	_, err := run(t, t.TempDir(), "catalog", "--muscle", "elbows")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown muscle group")

	_, err = run(t, t.TempDir(), "catalog", "--equipment", "rocks")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown equipment")
}

func TestHistoryCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No workouts yet")

	seed(t, dir)
	out, err = run(t, dir, "history", "-n", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "600 kg")
	assert.NotContains(t, out, "partial")

	_, err = run(t, dir, "history", "--limit=-1")
	assert.Error(t, err)
}

func TestHistoryUsesConfiguredUnit(t *testing.T) {
	dir := t.TempDir()
	seed(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("default_unit: lbs\n"), 0o644))

	out, err := run(t, dir, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "600 lbs")
}

func TestTemplatesCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "templates")
	require.NoError(t, err)
	assert.Contains(t, out, "No templates saved yet")

	seed(t, dir)
	out, err = run(t, dir, "templates")
	require.NoError(t, err)
	assert.Contains(t, out, "Push day  (2 exercises, 2 sets)")
	assert.Contains(t, out, "Bench Press, Push-ups")
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	seed(t, dir)
	path := filepath.Join(dir, "out.json")

	out, err := run(t, dir, "export", "--format", "json", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 workouts")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc struct {
		Count    int `json:"count"`
		Workouts []struct {
			TotalSets int `json:"total_sets"`
		} `json:"workouts"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, 1, doc.Count)
	require.Len(t, doc.Workouts, 1)
	assert.Equal(t, 2, doc.Workouts[0].TotalSets)
}

func TestExportCommandDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	seed(t, dir)

	out, err := run(t, dir, "export")
	require.NoError(t, err)
	assert.Contains(t, out, dir)
	assert.Contains(t, out, ".csv")
}

func TestExportCommandRejectsFormat(t *testing.T) {
	_, err := run(t, t.TempDir(), "export", "--format", "xml")
	assert.Error(t, err)
}

func TestInvalidConfigFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("default_unit: stone\n"), 0o644))

	_, err := run(t, dir, "history")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default_unit")
}

func TestFlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	other := filepath.Join(dir, "other.db")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"),
		[]byte("database_path: "+other+"\n"), 0o644))

	// --db from run() wins over database_path.
	_, err := run(t, dir, "history")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "liftr.db"))
	assert.NoFileExists(t, other)
}

func TestRunRejectsOutOfRangeAutoAdvance(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "run", "--auto-advance=99999999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--auto-advance")
	assert.NoFileExists(t, filepath.Join(dir, "liftr.db"), "database is not opened for a bad flag")
}
