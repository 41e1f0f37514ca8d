package batch

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"fitvision/internal/fault"
	"fitvision/internal/prompt"
	"fitvision/internal/style"
)

type fakeResolver struct {
	mu      sync.Mutex
	calls   []string
	active  int
	overlap bool
	resolve func(courseName string) (string, error)
}

func (f *fakeResolver) Resolve(ctx context.Context, courseName string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, courseName)
	f.active++
	if f.active > 1 {
		f.overlap = true
	}
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.active--
		f.mu.Unlock()
	}()

	if f.resolve != nil {
		return f.resolve(courseName)
	}
	return "做高位平板支撑", nil
}

func (f *fakeResolver) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type fakeRenderer struct {
	mu     sync.Mutex
	calls  []string
	render func(prompt string) (string, error)
}

func (f *fakeRenderer) Render(ctx context.Context, p string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, p)
	f.mu.Unlock()
	if f.render != nil {
		return f.render(p)
	}
	return "data:image/png;base64,QUJD", nil
}

func newTestOrchestrator(t *testing.T, resolver *fakeResolver, renderer *fakeRenderer) *Orchestrator {
	t.Helper()
	o, err := New(Options{
		Resolver:     resolver,
		Renderer:     renderer,
		ItemInterval: time.Millisecond,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return o
}

// waitIdle drains snapshots until the batch flag clears.
func waitIdle(t *testing.T, ch chan Snapshot) Snapshot {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case snap := <-ch:
			if !snap.Generating {
				return snap
			}
		case <-deadline:
			t.Fatal("timed out waiting for batch to finish")
		}
	}
}

func TestSubmitResolvesSequentiallyInOrder(t *testing.T) {
	resolver := &fakeResolver{}
	o := newTestOrchestrator(t, resolver, &fakeRenderer{})
	ch := o.Subscribe()
	defer o.Unsubscribe(ch)

	if !o.Submit("A\nB\nC\n") {
		t.Fatal("Submit returned false for valid input")
	}
	waitIdle(t, ch)

	calls := resolver.recorded()
	if strings.Join(calls, ",") != "A,B,C" {
		t.Fatalf("resolution order = %v, want [A B C]", calls)
	}
	if resolver.overlap {
		t.Fatal("resolver invocations overlapped; batch must be strictly sequential")
	}

	snap := o.Snapshot()
	for i, name := range []string{"A", "B", "C"} {
		if snap.Items[i].Name != name {
			t.Fatalf("item %d name = %q, want %q", i, snap.Items[i].Name, name)
		}
		if snap.Items[i].Status != StatusSuccess {
			t.Fatalf("item %q status = %q, want success", name, snap.Items[i].Status)
		}
	}
}

func TestProgressSnapshotsPublishInProcessingOrder(t *testing.T) {
	resolver := &fakeResolver{}
	o := newTestOrchestrator(t, resolver, &fakeRenderer{})
	ch := o.Subscribe()
	defer o.Unsubscribe(ch)

	o.Submit("A\nB\nC")

	resolved := -1
	deadline := time.After(5 * time.Second)
	for {
		var snap Snapshot
		select {
		case snap = <-ch:
		case <-deadline:
			t.Fatal("timed out waiting for snapshots")
		}
		n := 0
		for _, it := range snap.Items {
			if it.Status == StatusSuccess || it.Status == StatusError {
				n++
			}
		}
		if n < resolved {
			t.Fatalf("resolved count regressed: %d -> %d", resolved, n)
		}
		resolved = n
		if !snap.Generating {
			break
		}
	}
	if resolved != 3 {
		t.Fatalf("final resolved count = %d, want 3", resolved)
	}
}

func TestSubmitEmptyInputIsSilentNoOp(t *testing.T) {
	o := newTestOrchestrator(t, &fakeResolver{}, &fakeRenderer{})
	if o.Submit("\n   \n\t\n") {
		t.Fatal("Submit accepted blank input")
	}
	if items := o.Snapshot().Items; len(items) != 0 {
		t.Fatalf("items = %d, want 0", len(items))
	}
}

func TestSubmitBlockedWhileGenerating(t *testing.T) {
	gate := make(chan struct{})
	resolver := &fakeResolver{resolve: func(string) (string, error) {
		<-gate
		return "双手举哑铃", nil
	}}
	o := newTestOrchestrator(t, resolver, &fakeRenderer{})
	ch := o.Subscribe()
	defer o.Unsubscribe(ch)

	if !o.Submit("A") {
		t.Fatal("first Submit returned false")
	}
	if o.Submit("B") {
		t.Fatal("second Submit accepted while a batch is generating")
	}
	close(gate)
	waitIdle(t, ch)

	snap := o.Snapshot()
	if len(snap.Items) != 1 || snap.Items[0].Name != "A" {
		t.Fatalf("items = %+v, want the first batch only", snap.Items)
	}
}

func TestPartialFailureIsolation(t *testing.T) {
	resolver := &fakeResolver{resolve: func(courseName string) (string, error) {
		if courseName == "B" {
			return "", fault.New(fault.CodeResolutionFailed, "backend exploded")
		}
		return "做高位平板支撑", nil
	}}
	o := newTestOrchestrator(t, resolver, &fakeRenderer{})
	ch := o.Subscribe()
	defer o.Unsubscribe(ch)

	o.Submit("A\nB\nC")
	waitIdle(t, ch)

	snap := o.Snapshot()
	wantStatus := []Status{StatusSuccess, StatusError, StatusSuccess}
	errored := 0
	for i, it := range snap.Items {
		if it.Status != wantStatus[i] {
			t.Fatalf("item %q status = %q, want %q", it.Name, it.Status, wantStatus[i])
		}
		if it.Status == StatusError {
			errored++
			if it.ErrorMsg != "backend exploded" {
				t.Fatalf("errorMsg = %q, want upstream message", it.ErrorMsg)
			}
			if it.Prompt != "" {
				t.Fatalf("errored item has prompt %q", it.Prompt)
			}
		}
	}
	if errored != 1 {
		t.Fatalf("errored items = %d, want exactly 1", errored)
	}
}

func TestUpdateConfigRecomputesOnlySuccessfulItems(t *testing.T) {
	resolver := &fakeResolver{resolve: func(courseName string) (string, error) {
		if courseName == "Y" {
			return "", fault.New(fault.CodeResolutionFailed, "nope")
		}
		return "做高位平板支撑", nil
	}}
	o := newTestOrchestrator(t, resolver, &fakeRenderer{})
	ch := o.Subscribe()
	defer o.Unsubscribe(ch)

	o.Submit("X\nY")
	waitIdle(t, ch)

	cfg := style.DefaultConfig()
	cfg.Scene = style.SceneUrbanRooftop
	if err := o.UpdateConfig(cfg); err != nil {
		t.Fatalf("UpdateConfig returned error: %v", err)
	}

	snap := o.Snapshot()
	if want := prompt.Compose("做高位平板支撑", cfg); snap.Items[0].Prompt != want {
		t.Fatalf("item X prompt = %q, want recomputed %q", snap.Items[0].Prompt, want)
	}
	if snap.Items[1].Prompt != "" {
		t.Fatalf("item Y prompt = %q, want untouched empty", snap.Items[1].Prompt)
	}
}

func TestUpdateConfigOverwritesManualEdit(t *testing.T) {
	o := newTestOrchestrator(t, &fakeResolver{}, &fakeRenderer{})
	ch := o.Subscribe()
	defer o.Unsubscribe(ch)

	o.Submit("A")
	waitIdle(t, ch)
	id := o.Snapshot().Items[0].ID

	if err := o.EditPrompt(id, "my hand-tuned prompt"); err != nil {
		t.Fatalf("EditPrompt returned error: %v", err)
	}
	if got, _ := o.Item(id); got.Prompt != "my hand-tuned prompt" {
		t.Fatalf("prompt after edit = %q", got.Prompt)
	}

	cfg := style.DefaultConfig()
	cfg.Gender = style.GenderMale
	if err := o.UpdateConfig(cfg); err != nil {
		t.Fatalf("UpdateConfig returned error: %v", err)
	}

	got, _ := o.Item(id)
	if want := prompt.Compose("做高位平板支撑", cfg); got.Prompt != want {
		t.Fatalf("prompt after config change = %q, want recomputed %q (manual edits are overwritten)", got.Prompt, want)
	}
}

func TestUpdateConfigRejectsUnknownValue(t *testing.T) {
	o := newTestOrchestrator(t, &fakeResolver{}, &fakeRenderer{})
	cfg := style.DefaultConfig()
	cfg.Camera = "Pinhole"
	if err := o.UpdateConfig(cfg); err == nil {
		t.Fatal("expected validation error for unknown camera")
	}
}

func TestRenderImageLeavesOtherItemsUntouched(t *testing.T) {
	o := newTestOrchestrator(t, &fakeResolver{}, &fakeRenderer{})
	ch := o.Subscribe()
	defer o.Unsubscribe(ch)

	o.Submit("X\nY")
	waitIdle(t, ch)
	snap := o.Snapshot()

	if err := o.RenderImage(context.Background(), snap.Items[0].ID); err != nil {
		t.Fatalf("RenderImage returned error: %v", err)
	}

	x, _ := o.Item(snap.Items[0].ID)
	y, _ := o.Item(snap.Items[1].ID)
	if x.ImageStatus != ImageSuccess || x.ImageURL == "" {
		t.Fatalf("item X image = %q/%q, want success with url", x.ImageStatus, x.ImageURL)
	}
	if y.ImageStatus != ImageIdle || y.ImageURL != "" {
		t.Fatalf("item Y image = %q/%q, want untouched idle", y.ImageStatus, y.ImageURL)
	}
}

func TestRenderImageWithoutPromptIsNoOp(t *testing.T) {
	resolver := &fakeResolver{resolve: func(string) (string, error) {
		return "", fault.New(fault.CodeResolutionFailed, "nope")
	}}
	renderer := &fakeRenderer{}
	o := newTestOrchestrator(t, resolver, renderer)
	ch := o.Subscribe()
	defer o.Unsubscribe(ch)

	o.Submit("A")
	waitIdle(t, ch)
	id := o.Snapshot().Items[0].ID

	if err := o.RenderImage(context.Background(), id); !errors.Is(err, ErrNoPrompt) {
		t.Fatalf("RenderImage = %v, want ErrNoPrompt", err)
	}
	if len(renderer.calls) != 0 {
		t.Fatalf("renderer invoked %d times for promptless item", len(renderer.calls))
	}
}

func TestRenderImageFailureIsReentrant(t *testing.T) {
	fail := true
	renderer := &fakeRenderer{render: func(string) (string, error) {
		if fail {
			return "", fault.New(fault.CodeContentBlocked, "Image blocked by the safety filter")
		}
		return "data:image/png;base64,QUJD", nil
	}}
	o := newTestOrchestrator(t, &fakeResolver{}, renderer)
	ch := o.Subscribe()
	defer o.Unsubscribe(ch)

	o.Submit("A")
	waitIdle(t, ch)
	id := o.Snapshot().Items[0].ID

	if err := o.RenderImage(context.Background(), id); fault.CodeOf(err) != fault.CodeContentBlocked {
		t.Fatalf("first render err = %v, want CONTENT_BLOCKED", err)
	}
	got, _ := o.Item(id)
	if got.ImageStatus != ImageError || got.ErrorMsg == "" {
		t.Fatalf("after failed render: status=%q errorMsg=%q", got.ImageStatus, got.ErrorMsg)
	}

	fail = false
	if err := o.RenderImage(context.Background(), id); err != nil {
		t.Fatalf("second render returned error: %v", err)
	}
	got, _ = o.Item(id)
	if got.ImageStatus != ImageSuccess || got.ErrorMsg != "" {
		t.Fatalf("after retried render: status=%q errorMsg=%q", got.ImageStatus, got.ErrorMsg)
	}
}

func TestRenderImageUnknownID(t *testing.T) {
	o := newTestOrchestrator(t, &fakeResolver{}, &fakeRenderer{})
	if err := o.RenderImage(context.Background(), "missing"); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("RenderImage = %v, want ErrItemNotFound", err)
	}
}

func TestBatchCapturesConfigAtSubmissionTime(t *testing.T) {
	release := make(chan struct{})
	resolver := &fakeResolver{resolve: func(courseName string) (string, error) {
		if courseName == "B" {
			<-release
		}
		return "做高位平板支撑", nil
	}}
	o := newTestOrchestrator(t, resolver, &fakeRenderer{})
	ch := o.Subscribe()
	defer o.Unsubscribe(ch)

	submitted := o.Snapshot().Config
	o.Submit("A\nB")

	// Config changes mid-batch must not leak into items still resolving;
	// they compose with the config captured at submission.
	cfg := style.DefaultConfig()
	cfg.Shot = style.ShotCloseUp
	if err := o.UpdateConfig(cfg); err != nil {
		t.Fatalf("UpdateConfig returned error: %v", err)
	}
	close(release)
	waitIdle(t, ch)

	b := o.Snapshot().Items[1]
	if want := prompt.Compose("做高位平板支撑", submitted); b.Prompt != want {
		t.Fatalf("item B prompt = %q, want composed with submission config %q", b.Prompt, want)
	}
}
