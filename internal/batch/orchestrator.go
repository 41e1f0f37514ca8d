// Package batch owns the course-item list and its two per-item lifecycles:
// sequential text resolution across a submitted batch and on-demand image
// rendering per row. It is the single writer of that state; every observable
// update is a fresh copy-on-write snapshot, so readers never see a
// partially-updated item.
package batch

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"fitvision/internal/fault"
	"fitvision/internal/prompt"
	"fitvision/internal/providers/action"
	"fitvision/internal/providers/image"
	"fitvision/internal/style"
)

// Status is the text-resolution lifecycle stage of an item.
type Status string

const (
	StatusPending Status = "pending"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// ImageStatus is the image-rendering lifecycle stage of an item, independent
// of its text status and re-entrant via explicit user action.
type ImageStatus string

const (
	ImageIdle    ImageStatus = "idle"
	ImageLoading ImageStatus = "loading"
	ImageSuccess ImageStatus = "success"
	ImageError   ImageStatus = "error"
)

// Item is one row of work for a single course name.
type Item struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Action      string      `json:"action,omitempty"`
	Prompt      string      `json:"prompt,omitempty"`
	Status      Status      `json:"status"`
	ImageStatus ImageStatus `json:"imageStatus"`
	ImageURL    string      `json:"imageUrl,omitempty"`
	ErrorMsg    string      `json:"errorMsg,omitempty"`
}

// Snapshot is a consistent view of the whole orchestrator state.
type Snapshot struct {
	Generating bool         `json:"generating"`
	Config     style.Config `json:"config"`
	Items      []Item       `json:"items"`
}

// DefaultItemInterval is the pause between consecutive action resolutions,
// sized for the external service's low requests-per-minute ceiling.
const DefaultItemInterval = 2 * time.Second

var (
	// ErrItemNotFound reports an id that no current item carries.
	ErrItemNotFound = errors.New("batch: item not found")
	// ErrNoPrompt reports an image render for an item without a prompt.
	ErrNoPrompt = errors.New("batch: item has no prompt yet")
)

// Options configures an Orchestrator.
type Options struct {
	Resolver     action.Resolver
	Renderer     image.Renderer
	Config       style.Config  // zero value falls back to style.DefaultConfig
	ItemInterval time.Duration // zero falls back to DefaultItemInterval
	Logger       zerolog.Logger
	NewID        func() string // zero falls back to uuid.NewString
}

// Orchestrator coordinates batches against the rate-limited AI boundaries.
type Orchestrator struct {
	resolver action.Resolver
	renderer image.Renderer
	logger   zerolog.Logger
	newID    func() string
	interval time.Duration

	mu         sync.Mutex
	cfg        style.Config
	items      []Item
	generating bool

	subMu sync.Mutex
	subs  map[chan Snapshot]struct{}
}

// New constructs an orchestrator.
func New(opts Options) (*Orchestrator, error) {
	if opts.Resolver == nil {
		return nil, errors.New("batch: resolver is required")
	}
	if opts.Renderer == nil {
		return nil, errors.New("batch: renderer is required")
	}
	cfg := opts.Config
	if cfg == (style.Config{}) {
		cfg = style.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	interval := opts.ItemInterval
	if interval <= 0 {
		interval = DefaultItemInterval
	}
	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	return &Orchestrator{
		resolver: opts.Resolver,
		renderer: opts.Renderer,
		logger:   opts.Logger,
		newID:    newID,
		interval: interval,
		cfg:      cfg,
		subs:     make(map[chan Snapshot]struct{}),
	}, nil
}

// SplitCourseNames turns raw multi-line input into trimmed non-empty course
// names, preserving order.
func SplitCourseNames(raw string) []string {
	var names []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			names = append(names, line)
		}
	}
	return names
}

// Submit replaces the item list with a fresh batch and starts resolving it in
// the background, strictly in input order. Empty input and submissions while
// a batch is generating are silent no-ops; the return value reports whether a
// batch started.
func (o *Orchestrator) Submit(raw string) bool {
	names := SplitCourseNames(raw)
	if len(names) == 0 {
		return false
	}

	o.mu.Lock()
	if o.generating {
		o.mu.Unlock()
		return false
	}
	items := make([]Item, len(names))
	for i, name := range names {
		items[i] = Item{
			ID:          o.newID(),
			Name:        name,
			Status:      StatusLoading,
			ImageStatus: ImageIdle,
		}
	}
	o.items = items
	o.generating = true
	cfg := o.cfg
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)

	go o.run(ids, names, cfg)
	return true
}

// run is the sequential batch loop. It deliberately processes one item at a
// time, pacing calls at the configured interval, so a batch never exceeds the
// external throughput ceiling. Per-item failures are recorded and the loop
// continues (best-effort batch semantics).
func (o *Orchestrator) run(ids, names []string, cfg style.Config) {
	// Detached from any request context: an in-flight batch runs to
	// completion, there is no cancellation primitive.
	ctx := context.Background()
	limiter := rate.NewLimiter(rate.Every(o.interval), 1)

	for i, id := range ids {
		if err := limiter.Wait(ctx); err != nil {
			break
		}

		act, err := o.resolver.Resolve(ctx, names[i])

		o.mu.Lock()
		idx := o.indexLocked(id)
		if idx < 0 {
			// Batch was replaced; nothing left to record.
			o.mu.Unlock()
			return
		}
		if err != nil {
			o.items[idx].Status = StatusError
			o.items[idx].ErrorMsg = fault.MessageOf(err)
			o.logger.Warn().Err(err).Str("course", names[i]).Msg("batch: action resolution failed")
		} else {
			o.items[idx].Action = act
			o.items[idx].Prompt = prompt.Compose(act, cfg)
			o.items[idx].Status = StatusSuccess
		}
		snap := o.snapshotLocked()
		o.mu.Unlock()
		o.publish(snap)
	}

	o.mu.Lock()
	o.generating = false
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)
	o.logger.Info().Int("items", len(ids)).Msg("batch: resolution finished")
}

// UpdateConfig swaps the active style selection and recomputes the prompt of
// every successfully resolved item with it. Items still pending or in error
// are left untouched. Manual prompt edits are overwritten: the active config
// always describes all successful rows.
func (o *Orchestrator) UpdateConfig(cfg style.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.mu.Lock()
	o.cfg = cfg
	for i := range o.items {
		if o.items[i].Status == StatusSuccess && o.items[i].Action != "" {
			o.items[i].Prompt = prompt.Compose(o.items[i].Action, cfg)
		}
	}
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)
	return nil
}

// EditPrompt overwrites one item's prompt verbatim, bypassing the composer.
func (o *Orchestrator) EditPrompt(id, text string) error {
	o.mu.Lock()
	idx := o.indexLocked(id)
	if idx < 0 {
		o.mu.Unlock()
		return ErrItemNotFound
	}
	o.items[idx].Prompt = text
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)
	return nil
}

// RenderImage drives one item's image lifecycle to completion. It is
// independent of the batch flag, re-entrant after success or error, and a
// no-op for items without a prompt. Concurrent renders of different items are
// allowed; each item's state is independent.
func (o *Orchestrator) RenderImage(ctx context.Context, id string) error {
	o.mu.Lock()
	idx := o.indexLocked(id)
	if idx < 0 {
		o.mu.Unlock()
		return ErrItemNotFound
	}
	p := o.items[idx].Prompt
	if p == "" {
		o.mu.Unlock()
		return ErrNoPrompt
	}
	o.items[idx].ImageStatus = ImageLoading
	o.items[idx].ImageURL = ""
	o.items[idx].ErrorMsg = ""
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)

	// A started render runs to completion even if the caller goes away.
	url, err := o.renderer.Render(context.WithoutCancel(ctx), p)

	o.mu.Lock()
	idx = o.indexLocked(id)
	if idx < 0 {
		o.mu.Unlock()
		return err
	}
	if err != nil {
		o.items[idx].ImageStatus = ImageError
		o.items[idx].ErrorMsg = fault.MessageOf(err)
	} else {
		o.items[idx].ImageStatus = ImageSuccess
		o.items[idx].ImageURL = url
	}
	snap = o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)
	return err
}

// Snapshot returns a consistent copy of the current state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshotLocked()
}

// Item returns a copy of one item by id.
func (o *Orchestrator) Item(id string) (Item, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	idx := o.indexLocked(id)
	if idx < 0 {
		return Item{}, ErrItemNotFound
	}
	return o.items[idx], nil
}

// Subscribe registers a snapshot observer. Updates for a slow observer are
// dropped rather than blocking the orchestrator; the latest snapshot always
// remains available via Snapshot.
func (o *Orchestrator) Subscribe() chan Snapshot {
	ch := make(chan Snapshot, 64)
	o.subMu.Lock()
	o.subs[ch] = struct{}{}
	o.subMu.Unlock()
	return ch
}

// Unsubscribe removes a snapshot observer and closes its channel.
func (o *Orchestrator) Unsubscribe(ch chan Snapshot) {
	o.subMu.Lock()
	if _, ok := o.subs[ch]; ok {
		delete(o.subs, ch)
		close(ch)
	}
	o.subMu.Unlock()
}

func (o *Orchestrator) publish(snap Snapshot) {
	o.subMu.Lock()
	for ch := range o.subs {
		select {
		case ch <- snap:
		default:
			o.logger.Debug().Msg("batch: dropped snapshot for slow subscriber")
		}
	}
	o.subMu.Unlock()
}

func (o *Orchestrator) snapshotLocked() Snapshot {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return Snapshot{Generating: o.generating, Config: o.cfg, Items: items}
}

func (o *Orchestrator) indexLocked(id string) int {
	for i := range o.items {
		if o.items[i].ID == id {
			return i
		}
	}
	return -1
}
