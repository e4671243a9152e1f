package planner

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/Aur71/Workout-Tracker-sub000/internal/models"
	"github.com/Aur71/Workout-Tracker-sub000/internal/overload"
	"github.com/google/go-cmp/cmp"
)

// memStore is an in-memory Store. Inserts are all-or-nothing.
type memStore struct {
	mu        sync.Mutex
	sessions  map[int64][]models.Session
	names     map[int64]string
	namesErr  error
	insertErr error
	inserts   int
}

func (m *memStore) ProgramSessions(ctx context.Context, programID int64) ([]models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Session(nil), m.sessions[programID]...), nil
}

func (m *memStore) ExerciseNames(ctx context.Context) (map[int64]string, error) {
	if m.namesErr != nil {
		return nil, m.namesErr
	}
	return m.names, nil
}

func (m *memStore) InsertGeneratedSessions(ctx context.Context, programID int64, sessions []models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserts++
	m.sessions[programID] = append(m.sessions[programID], sessions...)
	return nil
}

func (m *memStore) count(programID int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions[programID])
}

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func working(n, lo, hi int, w, rpe float64) models.Set {
	return models.Set{SetNumber: n, RepMin: intp(lo), RepMax: intp(hi), Weight: floatp(w), RPE: floatp(rpe)}
}

func warmup(n int, w float64) models.Set {
	return models.Set{SetNumber: n, IsWarmup: true, RepMin: intp(10), Weight: floatp(w)}
}

// pushPull is a two-session weekly template: Monday push, Thursday pull,
// with one exercise that has only warmup sets.
func pushPull() []models.Session {
	return []models.Session{
		{
			ID: 2, ProgramID: 1, Date: day("2026-01-08"), Completed: true,
			Exercises: []models.SessionExercise{
				{ID: 21, ExerciseID: 30, Position: 1, Sets: []models.Set{
					working(1, 6, 10, 80, 7), working(2, 6, 10, 80, 7), working(3, 6, 10, 80, 8),
				}},
			},
		},
		{
			ID: 1, ProgramID: 1, Date: day("2026-01-05"), Completed: true,
			Exercises: []models.SessionExercise{
				{ID: 12, ExerciseID: 20, Position: 2, Sets: []models.Set{
					warmup(1, 10), working(2, 12, 15, 20, 8),
				}},
				{ID: 11, ExerciseID: 10, Position: 1, Sets: []models.Set{
					working(3, 8, 8, 100, 8), warmup(1, 40), working(2, 5, 5, 100, 7), warmup(0, 20),
				}},
				{ID: 13, ExerciseID: 40, Position: 3, Sets: []models.Set{warmup(1, 5)}},
			},
		},
	}
}

func newTestPlanner(store Store) *Planner {
	return New(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newMemStore() *memStore {
	return &memStore{
		sessions: map[int64][]models.Session{1: pushPull()},
		names:    map[int64]string{10: "Bench Press", 20: "Lateral Raise", 30: "Barbell Row", 40: "Face Pull"},
	}
}

// TestLoadExtractsBaselines verifies date ordering, warmup skipping and the
// first-working-set rule.
func TestLoadExtractsBaselines(t *testing.T) {
	p := newTestPlanner(newMemStore())
	plan, err := p.Load(context.Background(), 1)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(plan.Sessions) != 2 {
		t.Fatalf("sessions = %d, want 2", len(plan.Sessions))
	}
	if plan.Sessions[0].ID != 1 || plan.Sessions[1].ID != 2 {
		t.Errorf("session order = %d,%d, want 1,2", plan.Sessions[0].ID, plan.Sessions[1].ID)
	}

	bench := plan.Sessions[0].Exercises[0]
	if bench.Name != "Bench Press" || bench.Position != 1 {
		t.Fatalf("first exercise = %+v, want Bench Press at 1", bench)
	}
	if !bench.HasBaseline {
		t.Fatal("bench press should have a baseline")
	}
	if bench.Baseline.SetCount != 2 {
		t.Errorf("working sets = %d, want 2", bench.Baseline.SetCount)
	}
	if *bench.Baseline.RepMin != 5 || *bench.Baseline.RPE != 7 {
		t.Errorf("baseline = %d reps RPE %v, want set 2 (5 reps RPE 7)", *bench.Baseline.RepMin, *bench.Baseline.RPE)
	}

	facePull := plan.Sessions[0].Exercises[2]
	if facePull.HasBaseline {
		t.Error("warmup-only exercise should have no baseline")
	}
}

// TestLoadEmptyProgram verifies a program without sessions is not an error.
func TestLoadEmptyProgram(t *testing.T) {
	plan, err := newTestPlanner(newMemStore()).Load(context.Background(), 99)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !plan.Empty() {
		t.Errorf("plan has %d sessions, want 0", len(plan.Sessions))
	}
	if got := plan.Simulate(plan.DefaultConfig(StandardDefaults()), 4); len(got) != 0 {
		t.Errorf("simulate on empty plan = %d cycles, want 0", len(got))
	}
}

// TestLoadWithoutNames verifies missing exercise names only degrade labels.
func TestLoadWithoutNames(t *testing.T) {
	store := newMemStore()
	store.namesErr = errors.New("catalog offline")
	plan, err := newTestPlanner(store).Load(context.Background(), 1)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := plan.Sessions[0].Exercises[0].Name; got != "Exercise #10" {
		t.Errorf("name = %q, want fallback label", got)
	}
}

// TestDefaultConfig verifies one session config per base session and one
// exercise config per exercise with a baseline.
func TestDefaultConfig(t *testing.T) {
	plan := Extract(1, pushPull(), nil)
	cfg := plan.DefaultConfig(StandardDefaults())
	if len(cfg.Sessions) != 2 {
		t.Fatalf("session configs = %d, want 2", len(cfg.Sessions))
	}
	first := cfg.Sessions[0]
	if len(first.Exercises) != 2 {
		t.Errorf("exercise configs = %d, want 2 (warmup-only exercise excluded)", len(first.Exercises))
	}
	if first.Method != overload.Linear || first.Exercises[0].WeightIncrement != "2.5" {
		t.Errorf("defaults not applied: %+v", first)
	}
	if first.RPEIncrement != "0.5" || first.StepCycleLength != "2" || first.DoubleProgressionCycleLength != "3" {
		t.Errorf("cadence defaults not applied: %+v", first)
	}
}

// TestSimulateDeterministic verifies identical inputs give identical previews.
func TestSimulateDeterministic(t *testing.T) {
	plan := Extract(1, pushPull(), map[int64]string{10: "Bench Press"})
	cfg := plan.DefaultConfig(StandardDefaults())
	cfg.SetMethod(2, overload.DoubleProgression)

	a := plan.Simulate(cfg, 6)
	b := plan.Simulate(cfg, 6)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("previews differ (-first +second):\n%s", diff)
	}
	if len(a) != 6 || a[0].Label != "Cycle 1" || a[5].Label != "Cycle 6" {
		t.Errorf("cycle labels wrong: %d cycles, first %q", len(a), a[0].Label)
	}
}

// TestSimulateIsolatedFromLaterEdits verifies a returned preview does not
// change when the configuration is edited afterwards.
func TestSimulateIsolatedFromLaterEdits(t *testing.T) {
	plan := Extract(1, pushPull(), nil)
	cfg := plan.DefaultConfig(StandardDefaults())
	before := plan.Simulate(cfg, 2)
	snapshot := plan.Simulate(cfg, 2)

	cfg.Sessions[0].Exercises[0].WeightIncrement = "50"
	cfg.SetMethodAll(overload.Volume)

	if diff := cmp.Diff(snapshot, before); diff != "" {
		t.Errorf("preview changed after config edit:\n%s", diff)
	}
}

// TestSimulateValues spot-checks a projected exercise.
func TestSimulateValues(t *testing.T) {
	plan := Extract(1, pushPull(), map[int64]string{10: "Bench Press"})
	cfg := plan.DefaultConfig(StandardDefaults())
	got := plan.Simulate(cfg, 3)

	bench := got[2].Sessions[0].Exercises[0]
	if bench.Name != "Bench Press" {
		t.Fatalf("exercise = %q", bench.Name)
	}
	if bench.Weight != "107.5kg" || bench.SetsReps != "2x5" || bench.RPE != "RPE 7" || bench.Note != "+7.5kg" {
		t.Errorf("cycle 3 bench = %q %q %q %q", bench.SetsReps, bench.Weight, bench.RPE, bench.Note)
	}
}

// TestSimulateSkipsStaleConfig verifies exercises or sessions without a
// configuration are skipped instead of failing.
func TestSimulateSkipsStaleConfig(t *testing.T) {
	plan := Extract(1, pushPull(), nil)
	cfg := plan.DefaultConfig(StandardDefaults())
	cfg.Sessions[0].Exercises = cfg.Sessions[0].Exercises[:1]
	cfg.Sessions = cfg.Sessions[:1]

	got := plan.Simulate(cfg, 1)
	if len(got[0].Sessions) != 2 {
		t.Fatalf("sessions = %d, want 2", len(got[0].Sessions))
	}
	if n := len(got[0].Sessions[0].Exercises); n != 1 {
		t.Errorf("first session exercises = %d, want 1", n)
	}
	if n := len(got[0].Sessions[1].Exercises); n != 0 {
		t.Errorf("unconfigured session exercises = %d, want 0", n)
	}
}

// TestSimulateMalformedInput verifies garbage text resolves to zero.
func TestSimulateMalformedInput(t *testing.T) {
	plan := Extract(1, pushPull(), nil)
	cfg := plan.DefaultConfig(StandardDefaults())
	cfg.Sessions[0].Exercises[0].WeightIncrement = "lots"

	bench := plan.Simulate(cfg, 4)[3].Sessions[0].Exercises[0]
	if bench.Weight != "100kg" || bench.Note != "hold" {
		t.Errorf("bench = %q %q, want 100kg hold", bench.Weight, bench.Note)
	}
}

// TestSimulateDates verifies generated dates continue the weekly cadence,
// strictly increase across cycles and never overlap the base cycle.
func TestSimulateDates(t *testing.T) {
	plan := Extract(1, pushPull(), nil)
	got := plan.Simulate(plan.DefaultConfig(StandardDefaults()), 3)

	want := []string{"2026-01-12", "2026-01-15", "2026-01-19", "2026-01-22", "2026-01-26", "2026-01-29"}
	var dates []string
	last := day("2026-01-08")
	for _, c := range got {
		for _, s := range c.Sessions {
			if !s.Date.After(last) {
				t.Errorf("%s session %d date %s not after %s", c.Label, s.BaseSessionID, s.Date.Format("2006-01-02"), last.Format("2006-01-02"))
			}
			last = s.Date
			dates = append(dates, s.Date.Format("2006-01-02"))
		}
	}
	if diff := cmp.Diff(want, dates); diff != "" {
		t.Errorf("dates (-want +got):\n%s", diff)
	}
}

// TestCommitCreatesCycles verifies cycles × base sessions rows are written
// and that they match the preview.
func TestCommitCreatesCycles(t *testing.T) {
	store := newMemStore()
	p := newTestPlanner(store)
	plan, err := p.Load(context.Background(), 1)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg := plan.DefaultConfig(StandardDefaults())

	res, err := p.Commit(context.Background(), 1, 4, cfg)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if res.Status != StatusGenerated || res.SessionsCreated != 8 {
		t.Fatalf("result = %+v, want 8 generated sessions", res)
	}
	if got := store.count(1); got != 10 {
		t.Errorf("stored sessions = %d, want 10", got)
	}

	preview := plan.Simulate(cfg, 4)
	generated := store.sessions[1][2:]
	for i, s := range generated {
		if s.Completed || s.StartTime != nil || s.EndTime != nil {
			t.Errorf("generated session %d marked as logged: %+v", i, s)
		}
		if s.GenerationID == nil || *s.GenerationID != res.GenerationID {
			t.Errorf("generated session %d generation id = %v, want %v", i, s.GenerationID, res.GenerationID)
		}
		ps := preview[i/2].Sessions[i%2]
		if !s.Date.Equal(ps.Date) {
			t.Errorf("session %d date = %v, want %v", i, s.Date, ps.Date)
		}
		if len(s.Exercises) != len(ps.Exercises) {
			t.Fatalf("session %d exercises = %d, want %d", i, len(s.Exercises), len(ps.Exercises))
		}
		for j, ex := range s.Exercises {
			pe := ps.Exercises[j]
			if len(ex.Sets) != pe.Projection.SetCount {
				t.Errorf("session %d exercise %d sets = %d, want %d", i, j, len(ex.Sets), pe.Projection.SetCount)
			}
			for _, set := range ex.Sets {
				if set.IsWarmup {
					t.Errorf("generated warmup set in session %d", i)
				}
				if overload.FormatWeight(set.Weight) != pe.Weight || overload.FormatRPE(set.RPE) != pe.RPE {
					t.Errorf("session %d exercise %d set = %v/%v, want %s/%s", i, j,
						overload.FormatWeight(set.Weight), overload.FormatRPE(set.RPE), pe.Weight, pe.RPE)
				}
			}
		}
	}
}

// TestCommitEmptyProgram verifies an empty base cycle is a reported no-op.
func TestCommitEmptyProgram(t *testing.T) {
	store := newMemStore()
	res, err := newTestPlanner(store).Commit(context.Background(), 99, 4, Config{})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if !res.NothingToGenerate() || res.SessionsCreated != 0 {
		t.Errorf("result = %+v, want nothing to generate", res)
	}
	if store.inserts != 0 {
		t.Errorf("store saw %d inserts, want 0", store.inserts)
	}
}

// TestCommitZeroCycles verifies a non-positive cycle count writes nothing.
func TestCommitZeroCycles(t *testing.T) {
	store := newMemStore()
	res, err := newTestPlanner(store).Commit(context.Background(), 1, 0, Config{})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if !res.NothingToGenerate() || store.count(1) != 2 {
		t.Errorf("result = %+v, stored = %d", res, store.count(1))
	}
}

// TestCommitStorageFailure verifies a failed write surfaces ErrCommitFailed
// and leaves the store untouched.
func TestCommitStorageFailure(t *testing.T) {
	store := newMemStore()
	store.insertErr = errors.New("disk full")
	p := newTestPlanner(store)

	res, err := p.Commit(context.Background(), 1, 3, Extract(1, pushPull(), nil).DefaultConfig(StandardDefaults()))
	if err == nil {
		t.Fatalf("expected error, got %+v", res)
	}
	if !errors.Is(err, ErrCommitFailed) {
		t.Errorf("error %v does not wrap ErrCommitFailed", err)
	}
	if got := store.count(1); got != 2 {
		t.Errorf("stored sessions = %d, want 2 (unchanged)", got)
	}
}

type recordingSignal struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingSignal) SetBusy(op string, busy bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	state := "idle"
	if busy {
		state = "busy"
	}
	r.events = append(r.events, op+":"+state)
}

// TestWorkflow verifies an editing session: defaults, method selection,
// repeatable previews and a commit using the edited configuration.
func TestWorkflow(t *testing.T) {
	store := newMemStore()
	signal := &recordingSignal{}
	p := New(store, slog.New(slog.NewTextHandler(io.Discard, nil)), WithBusySignal(signal))

	w, err := p.Open(context.Background(), 1)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !w.SetMethod(1, overload.Volume) {
		t.Fatal("SetMethod on known session returned false")
	}
	if w.SetMethod(999, overload.Volume) {
		t.Error("SetMethod on unknown session returned true")
	}

	cfg := w.Config()
	cfg.Sessions[0].Method = overload.RPE
	if w.Config().Sessions[0].Method != overload.Volume {
		t.Error("editing a returned config leaked into the workflow")
	}

	first := w.Simulate(2)
	if first[0].Sessions[0].Method != overload.Volume {
		t.Errorf("method = %v, want volume", first[0].Sessions[0].Method)
	}
	if note := first[0].Sessions[0].Exercises[0].Note; note != "+1 sets" {
		t.Errorf("volume note = %q, want +1 sets", note)
	}

	res, err := w.Commit(context.Background(), 2)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if res.SessionsCreated != 4 {
		t.Errorf("sessions created = %d, want 4", res.SessionsCreated)
	}
	if len(w.Plan().Sessions) != 2 {
		t.Errorf("workflow snapshot changed after commit: %d sessions", len(w.Plan().Sessions))
	}
	if diff := cmp.Diff(first, w.Simulate(2)); diff != "" {
		t.Errorf("preview changed after commit:\n%s", diff)
	}

	want := []string{"load:busy", "load:idle", "load:busy", "load:idle", "commit:busy", "commit:idle"}
	if diff := cmp.Diff(want, signal.events); diff != "" {
		t.Errorf("busy signal (-want +got):\n%s", diff)
	}
}
