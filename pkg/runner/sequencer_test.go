package runner_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/kosuke/internal/testutils"
	"github.com/aretw0/kosuke/pkg/adapters/memory"
	"github.com/aretw0/kosuke/pkg/domain"
	"github.com/aretw0/kosuke/pkg/ports"
	"github.com/aretw0/kosuke/pkg/registry"
	"github.com/aretw0/kosuke/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStep struct {
	id       domain.StepID
	requires []domain.StepID
	run      func(ctx context.Context, p *domain.SetupProgress) (domain.StepOutcome, error)
	calls    int
}

func (f *fakeStep) ID() domain.StepID { return f.id }
func (f *fakeStep) Title() string     { return "Step " + string(f.id) }

func (f *fakeStep) Execute(ctx context.Context, p *domain.SetupProgress) (domain.StepOutcome, error) {
	f.calls++
	if f.run != nil {
		return f.run(ctx, p)
	}
	p.APIKeys[string(f.id)+"_key"] = "value-" + string(f.id)
	return domain.Completed(), nil
}

type requiringStep struct {
	*fakeStep
}

func (r requiringStep) Requires() []domain.StepID { return r.requires }

type recordingOutput struct {
	written []domain.Document
	fail    error
}

func (o *recordingOutput) Render(p *domain.SetupProgress) ([]domain.Document, error) {
	return []domain.Document{{Name: ".env", Content: "KEYS=" + p.APIKeys["a_key"]}}, nil
}

func (o *recordingOutput) Write(ctx context.Context, docs ...domain.Document) error {
	if o.fail != nil {
		return o.fail
	}
	o.written = append(o.written, docs...)
	return nil
}

func newRegistry(t *testing.T, steps ...ports.StepHandler) *registry.Registry {
	t.Helper()
	reg, err := registry.NewRegistry(steps...)
	require.NoError(t, err)
	return reg
}

func seed(t *testing.T, store ports.ProgressStore, p *domain.SetupProgress) {
	t.Helper()
	require.NoError(t, store.Save(context.Background(), p))
}

func TestSequencer_FreshRunAsksProjectNameFirst(t *testing.T) {
	store := memory.NewStore()
	pr := testutils.NewScriptedPrompter("---", "My Cool App!")
	seq := runner.NewSequencer(newRegistry(t, &fakeStep{id: "a"}), store, pr)

	p, err := seq.Prepare(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "my-cool-app", p.ProjectName)
	assert.Equal(t, 1, p.CurrentStep)
	require.Len(t, pr.Prompts, 2)
	assert.Contains(t, pr.Prompts[0], "project name")
	assert.Len(t, pr.Errors(), 1, "rejected slug should be reported once")
	assert.False(t, pr.AskedContaining("Resume"))

	saved, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "my-cool-app", saved.ProjectName)
}

func TestSequencer_ReservedWordAsProjectName(t *testing.T) {
	tp := runner.NewTextPrompter(strings.NewReader("\"exit\"\n"), io.Discard)
	seq := runner.NewSequencer(newRegistry(t, &fakeStep{id: "a"}), memory.NewStore(), tp)

	p, err := seq.Prepare(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "exit", p.ProjectName)
}

func TestSequencer_RunCompletesAndClears(t *testing.T) {
	store := memory.NewStore()
	out := &recordingOutput{}
	a, b, c := &fakeStep{id: "a"}, &fakeStep{id: "b"}, &fakeStep{id: "c"}
	pr := testutils.NewScriptedPrompter("demo")
	seq := runner.NewSequencer(newRegistry(t, a, b, c), store, pr, runner.WithOutput(out, out))

	p, err := seq.Prepare(context.Background())
	require.NoError(t, err)
	require.NoError(t, seq.Run(context.Background(), p))

	assert.Equal(t, 4, p.CurrentStep)
	assert.Equal(t, []domain.StepID{"a", "b", "c"}, p.CompletedServices)
	assert.Equal(t, "value-b", p.APIKeys["b_key"])
	require.Len(t, out.written, 1)
	assert.Equal(t, "KEYS=value-a", out.written[0].Content)

	_, err = store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrProgressNotFound)
	assert.Contains(t, pr.Shown, "## Step 2/3: Step b")
}

func TestSequencer_AbortThenResume(t *testing.T) {
	store := memory.NewStore()
	aborts := 1
	a, c := &fakeStep{id: "a"}, &fakeStep{id: "c"}
	b := &fakeStep{id: "b"}
	b.run = func(ctx context.Context, p *domain.SetupProgress) (domain.StepOutcome, error) {
		p.APIKeys["b_key"] = "partial"
		if aborts > 0 {
			aborts--
			return domain.Aborted("operator aborted"), nil
		}
		p.APIKeys["b_key"] = "final"
		return domain.Completed(), nil
	}
	reg := newRegistry(t, a, b, c)

	// First run aborts at step 2.
	seq := runner.NewSequencer(reg, store, testutils.NewScriptedPrompter("demo"))
	p, err := seq.Prepare(context.Background())
	require.NoError(t, err)

	err = seq.Run(context.Background(), p)
	var abortErr *domain.AbortError
	require.ErrorAs(t, err, &abortErr)
	assert.Equal(t, domain.StepID("b"), abortErr.Step)
	assert.ErrorIs(t, err, domain.ErrAborted)

	saved, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, saved.CurrentStep)
	assert.Equal(t, []domain.StepID{"a"}, saved.CompletedServices)
	assert.NotContains(t, saved.APIKeys, "b_key", "aborted step must not commit")

	// Second run resumes at step 2.
	pr := testutils.NewScriptedPrompter("y")
	seq = runner.NewSequencer(reg, store, pr)
	p, err = seq.Prepare(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, p.CurrentStep)
	assert.Equal(t, "demo", p.ProjectName)
	require.NoError(t, seq.Run(context.Background(), p))

	assert.Equal(t, 1, a.calls, "completed step must not run again")
	assert.Equal(t, 2, b.calls)
	assert.Equal(t, []domain.StepID{"a", "b", "c"}, p.CompletedServices)
	assert.Equal(t, "final", p.APIKeys["b_key"])
}

func TestSequencer_ResumeIsIdempotent(t *testing.T) {
	store := memory.NewStore()
	saved := domain.NewProgress()
	saved.CurrentStep = 2
	saved.ProjectName = "demo"
	saved.CompletedServices = []domain.StepID{"a"}
	saved.APIKeys["a_key"] = "value-a"
	seed(t, store, saved)

	reg := newRegistry(t, &fakeStep{id: "a"}, &fakeStep{id: "b"})

	p1, err := runner.NewSequencer(reg, store, testutils.NewScriptedPrompter("y")).Prepare(context.Background())
	require.NoError(t, err)
	p2, err := runner.NewSequencer(reg, store, testutils.NewScriptedPrompter("yes")).Prepare(context.Background())
	require.NoError(t, err)

	assert.Equal(t, saved, p1)
	assert.Equal(t, p1, p2)
}

func TestSequencer_DeclineResumeStartsFresh(t *testing.T) {
	store := memory.NewStore()
	saved := domain.NewProgress()
	saved.CurrentStep = 2
	saved.ProjectName = "old"
	saved.CompletedServices = []domain.StepID{"a"}
	seed(t, store, saved)

	pr := testutils.NewScriptedPrompter("maybe", "n", "new-app")
	seq := runner.NewSequencer(newRegistry(t, &fakeStep{id: "a"}), store, pr)

	p, err := seq.Prepare(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, p.CurrentStep)
	assert.Equal(t, "new-app", p.ProjectName)
	assert.Empty(t, p.CompletedServices)
	assert.Equal(t, []string{"Please enter 'y' or 'n'"}, pr.Errors())
}

func TestSequencer_RecordAtFirstStepIsNotOffered(t *testing.T) {
	store := memory.NewStore()
	saved := domain.NewProgress()
	saved.ProjectName = "half-named"
	seed(t, store, saved)

	pr := testutils.NewScriptedPrompter("fresh")
	p, err := runner.NewSequencer(newRegistry(t, &fakeStep{id: "a"}), store, pr).Prepare(context.Background())
	require.NoError(t, err)

	assert.False(t, pr.AskedContaining("Resume"))
	assert.Equal(t, "fresh", p.ProjectName)
}

func TestSequencer_InvalidRecordIsTreatedAsAbsent(t *testing.T) {
	store := memory.NewStore()
	bad := domain.NewProgress()
	bad.CurrentStep = 42
	bad.ProjectName = "demo"
	seed(t, store, bad)

	pr := testutils.NewScriptedPrompter("demo")
	p, err := runner.NewSequencer(newRegistry(t, &fakeStep{id: "a"}), store, pr).Prepare(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, p.CurrentStep)
	assert.False(t, pr.AskedContaining("Resume"))
}

func TestSequencer_StepCannotAlterOwnedFields(t *testing.T) {
	rogue := &fakeStep{id: "a", run: func(ctx context.Context, p *domain.SetupProgress) (domain.StepOutcome, error) {
		p.CurrentStep = 99
		p.ProjectName = "hijacked"
		p.CompletedServices = append(p.CompletedServices, "z")
		p.APIKeys["a_key"] = "ok"
		return domain.Completed(), nil
	}}
	seq := runner.NewSequencer(newRegistry(t, rogue), memory.NewStore(), testutils.NewScriptedPrompter("demo"))

	p, err := seq.Prepare(context.Background())
	require.NoError(t, err)
	require.NoError(t, seq.Run(context.Background(), p))

	assert.Equal(t, 2, p.CurrentStep)
	assert.Equal(t, "demo", p.ProjectName)
	assert.Equal(t, []domain.StepID{"a"}, p.CompletedServices)
	assert.Equal(t, "ok", p.APIKeys["a_key"])
}

func TestSequencer_PrerequisiteFailure(t *testing.T) {
	early := requiringStep{&fakeStep{id: "early", requires: []domain.StepID{"late"}}}
	late := &fakeStep{id: "late"}
	seq := runner.NewSequencer(newRegistry(t, early, late), memory.NewStore(), testutils.NewScriptedPrompter("demo"))

	p, err := seq.Prepare(context.Background())
	require.NoError(t, err)

	err = seq.Run(context.Background(), p)
	var preErr *domain.PrerequisiteError
	require.ErrorAs(t, err, &preErr)
	assert.Equal(t, domain.StepID("late"), preErr.Missing)
	assert.ErrorIs(t, err, domain.ErrPrerequisite)
	assert.Equal(t, 0, early.calls)
}

func TestSequencer_InterruptionSavesProgress(t *testing.T) {
	store := memory.NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	a := &fakeStep{id: "a"}
	b := &fakeStep{id: "b", run: func(ctx context.Context, p *domain.SetupProgress) (domain.StepOutcome, error) {
		cancel()
		return domain.StepOutcome{}, ctx.Err()
	}}
	seq := runner.NewSequencer(newRegistry(t, a, b), store, testutils.NewScriptedPrompter("demo"))

	p, err := seq.Prepare(ctx)
	require.NoError(t, err)

	err = seq.Run(ctx, p)
	assert.ErrorIs(t, err, domain.ErrInterrupted)
	assert.ErrorIs(t, err, context.Canceled)

	saved, loadErr := store.Load(context.Background())
	require.NoError(t, loadErr)
	assert.Equal(t, 2, saved.CurrentStep)
}

func TestSequencer_ClosedInputDuringPrepare(t *testing.T) {
	seq := runner.NewSequencer(newRegistry(t, &fakeStep{id: "a"}), memory.NewStore(), testutils.NewScriptedPrompter())

	_, err := seq.Prepare(context.Background())
	assert.ErrorIs(t, err, domain.ErrInterrupted)
	assert.ErrorIs(t, err, ports.ErrInputClosed)
}

func TestSequencer_UnexpectedStepError(t *testing.T) {
	boom := errors.New("boom")
	a := &fakeStep{id: "a", run: func(ctx context.Context, p *domain.SetupProgress) (domain.StepOutcome, error) {
		return domain.StepOutcome{}, boom
	}}
	seq := runner.NewSequencer(newRegistry(t, a), memory.NewStore(), testutils.NewScriptedPrompter("demo"))

	p, err := seq.Prepare(context.Background())
	require.NoError(t, err)

	err = seq.Run(context.Background(), p)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrInterrupted)
}

func TestSequencer_WriteFailureKeepsRecord(t *testing.T) {
	store := memory.NewStore()
	out := &recordingOutput{fail: errors.New("disk full")}
	reg := newRegistry(t, &fakeStep{id: "a"})

	seq := runner.NewSequencer(reg, store, testutils.NewScriptedPrompter("demo"), runner.WithOutput(out, out))
	p, err := seq.Prepare(context.Background())
	require.NoError(t, err)
	require.Error(t, seq.Run(context.Background(), p))

	saved, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, saved.CurrentStep)

	// A rerun resumes at the end and retries the write.
	out.fail = nil
	seq = runner.NewSequencer(reg, store, testutils.NewScriptedPrompter("y"), runner.WithOutput(out, out))
	p, err = seq.Prepare(context.Background())
	require.NoError(t, err)
	require.NoError(t, seq.Run(context.Background(), p))

	assert.Len(t, out.written, 1)
	_, err = store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrProgressNotFound)
}

func TestSequencer_Hooks(t *testing.T) {
	var entered, completed, aborted []domain.StepID
	hooks := domain.LifecycleHooks{
		OnStepEnter:    func(_ context.Context, e *domain.StepEvent) { entered = append(entered, e.StepID) },
		OnStepComplete: func(_ context.Context, e *domain.StepEvent) { completed = append(completed, e.StepID) },
		OnStepAbort: func(_ context.Context, e *domain.StepEvent) {
			aborted = append(aborted, e.StepID)
			assert.Equal(t, "nope", e.Reason)
			assert.Equal(t, "run-1", e.RunID)
		},
	}
	b := &fakeStep{id: "b", run: func(ctx context.Context, p *domain.SetupProgress) (domain.StepOutcome, error) {
		return domain.Aborted("nope"), nil
	}}
	seq := runner.NewSequencer(newRegistry(t, &fakeStep{id: "a"}, b), memory.NewStore(),
		testutils.NewScriptedPrompter("demo"), runner.WithHooks(hooks), runner.WithRunID("run-1"))

	p, err := seq.Prepare(context.Background())
	require.NoError(t, err)
	_ = seq.Run(context.Background(), p)

	assert.Equal(t, []domain.StepID{"a", "b"}, entered)
	assert.Equal(t, []domain.StepID{"a"}, completed)
	assert.Equal(t, []domain.StepID{"b"}, aborted)
}

type brokenStore struct{}

func (brokenStore) Save(context.Context, *domain.SetupProgress) error { return errors.New("read-only") }
func (brokenStore) Load(context.Context) (*domain.SetupProgress, error) {
	return nil, errors.New("unreachable")
}
func (brokenStore) Delete(context.Context) error { return errors.New("read-only") }

func TestSequencer_PersistenceFailuresAreNotFatal(t *testing.T) {
	var ops []string
	hooks := domain.LifecycleHooks{
		OnPersistError: func(_ context.Context, e *domain.PersistEvent) { ops = append(ops, e.Op) },
	}
	seq := runner.NewSequencer(newRegistry(t, &fakeStep{id: "a"}), brokenStore{},
		testutils.NewScriptedPrompter("demo"), runner.WithHooks(hooks))

	p, err := seq.Prepare(context.Background())
	require.NoError(t, err)
	require.NoError(t, seq.Run(context.Background(), p))

	assert.Equal(t, []string{"load", "clear", "save", "save", "clear"}, ops)
	assert.Equal(t, []domain.StepID{"a"}, p.CompletedServices)
}
