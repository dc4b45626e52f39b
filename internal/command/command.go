// Package command implements the vcs_gutter command: it waits for an
// active view, clears its gutter markers, diffs it against the committed
// revision and binds the resulting marker categories.
package command

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/tliron/commonlog"

	"github.com/kateleext/vcsgutter/internal/buffer"
	"github.com/kateleext/vcsgutter/internal/config"
	"github.com/kateleext/vcsgutter/internal/gutter"
	"github.com/kateleext/vcsgutter/internal/view"
)

// Name is the name the command is registered under.
const Name = "vcs_gutter"

var log = commonlog.GetLogger("vcsgutter.command")

// DiffProvider computes line changes between a buffer and the committed
// revision of its file.
type DiffProvider interface {
	Diff(ctx context.Context, fileName string, buf *buffer.Buffer) (gutter.Changes, error)
}

// State is where an invocation currently is.
type State int32

const (
	Idle State = iota
	AwaitingActiveView
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingActiveView:
		return "awaiting-active-view"
	default:
		return "unknown"
	}
}

// Result describes what a run bound.
type Result struct {
	FileName string
	Changes  gutter.Changes
	Deleted  gutter.Deleted
	// Attempts counts how many times the window was asked for a view.
	Attempts int
}

// Lines returns the lines bound for category c.
func (r Result) Lines(c gutter.Category) []int {
	switch c {
	case gutter.Inserted:
		return r.Changes.Inserted
	case gutter.Changed:
		return r.Changes.Changed
	case gutter.DeletedTop:
		return r.Deleted.Top
	case gutter.DeletedBottom:
		return r.Deleted.Bottom
	case gutter.DeletedDual:
		return r.Deleted.Dual
	}
	return nil
}

// VcsGutter is the gutter command.
type VcsGutter struct {
	window        view.Window
	differ        DiffProvider
	binder        *gutter.Binder
	retryInterval time.Duration

	state atomic.Int32
}

// New creates the command. Settings and capabilities are fixed for the
// command's lifetime.
func New(window view.Window, differ DiffProvider, settings config.Settings, caps config.Capabilities) *VcsGutter {
	interval := settings.RetryInterval
	if interval <= 0 {
		interval = config.DefaultRetryInterval
	}
	return &VcsGutter{
		window:        window,
		differ:        differ,
		binder:        gutter.NewBinder(settings, caps),
		retryInterval: interval,
	}
}

// State returns the current state.
func (c *VcsGutter) State() State {
	return State(c.state.Load())
}

// Run executes the command once. While no view is active it waits
// retryInterval between attempts, without limit; only ctx ends the wait.
// Diff errors are returned after the markers have been cleared.
func (c *VcsGutter) Run(ctx context.Context) (Result, error) {
	v, attempts, err := c.awaitView(ctx)
	if err != nil {
		return Result{Attempts: attempts}, err
	}

	res := Result{FileName: v.FileName(), Attempts: attempts}
	gutter.Clear(v)

	buf := v.Buffer()
	changes, err := c.differ.Diff(ctx, v.FileName(), buf)
	if err != nil {
		return res, fmt.Errorf("%s: %w", Name, err)
	}
	res.Changes = changes
	res.Deleted = gutter.ClassifyDeleted(changes.Deleted)

	c.binder.BindDeleted(v, buf, res.Deleted)
	c.binder.Bind(v, buf, gutter.Inserted, changes.Inserted)
	c.binder.Bind(v, buf, gutter.Changed, changes.Changed)

	log.Debugf("%s: bound %d inserted, %d changed, %d/%d/%d deleted top/bottom/dual",
		res.FileName, len(changes.Inserted), len(changes.Changed),
		len(res.Deleted.Top), len(res.Deleted.Bottom), len(res.Deleted.Dual))
	return res, nil
}

func (c *VcsGutter) awaitView(ctx context.Context) (view.View, int, error) {
	defer c.state.Store(int32(Idle))

	attempts := 0
	var timer *time.Timer
	for {
		attempts++
		if v, ok := c.window.ActiveView(); ok {
			if timer != nil {
				timer.Stop()
			}
			return v, attempts, nil
		}

		if attempts == 1 {
			log.Debugf("view not ready, retrying every %s", c.retryInterval)
			c.state.Store(int32(AwaitingActiveView))
			timer = time.NewTimer(c.retryInterval)
		} else {
			timer.Reset(c.retryInterval)
		}

		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, attempts, ctx.Err()
		case <-timer.C:
		}
	}
}
