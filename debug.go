package tableau

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// nopHandler discards every record. It is the default so the library is
// silent unless the application opts in.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (h nopHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h nopHandler) WithGroup(string) slog.Handler           { return h }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger sets the logger used for warnings and debug output. Passing nil
// restores the silent default. Safe for concurrent use.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// globalDebug mirrors the most recently set Stage debug flag so that actor
// operations, which may run before an actor joins a stage, can check it
// cheaply. Only valid with a single Stage; multiple Stages with differing
// debug modes will reflect whichever was configured last.
var globalDebug bool

// warnActor logs a recoverable misuse of a.
func warnActor(a *Actor, msg string, args ...any) {
	Logger().Warn("tableau: "+msg, append([]any{"actor", a.debugName()}, args...)...)
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(a *Actor) {
	depth := 0
	for p := a; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		warnActor(a, "tree depth exceeds threshold", "depth", depth, "threshold", debugMaxTreeDepth)
	}
}

// debugCheckChildCount warns if an actor has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(a *Actor) {
	if len(a.children) > debugMaxChildCount {
		warnActor(a, "child count exceeds threshold", "children", len(a.children), "threshold", debugMaxChildCount)
	}
}

// mapStateErrors returns the map state invariants a violates.
func (a *Actor) mapStateErrors() []error {
	var errs []error
	name := a.debugName()

	if a.realized && !a.inReparent {
		switch {
		case a.parent == nil:
			if !a.toplevel {
				errs = append(errs, fmt.Errorf("realized actor %s has no parent", name))
			}
		case !a.parent.realized:
			errs = append(errs, fmt.Errorf("realized actor %s has an unrealized parent %s", name, a.parent.debugName()))
		}
	}

	if !a.mapped {
		return errs
	}
	if !a.realized {
		errs = append(errs, fmt.Errorf("actor %s is mapped but not realized", name))
	}
	if a.inReparent {
		return errs
	}
	if a.parent == nil {
		if !a.toplevel {
			errs = append(errs, fmt.Errorf("mapped actor %s has no parent", name))
		} else if !a.visible && !a.inDestruction {
			errs = append(errs, fmt.Errorf("toplevel %s is mapped but not visible", name))
		}
		return errs
	}
	// paint-unmapped anywhere up the branch suspends the remaining checks
	for p := a; p != nil; p = p.parent {
		if p.paintUnmapped > 0 {
			return errs
		}
	}
	parent := a.parent
	if !parent.visible {
		errs = append(errs, fmt.Errorf("actor %s is mapped but its parent %s is not visible", name, parent.debugName()))
	}
	if !parent.realized {
		errs = append(errs, fmt.Errorf("actor %s is mapped but its parent %s is not realized", name, parent.debugName()))
	}
	if !parent.toplevel && !parent.mapped {
		errs = append(errs, fmt.Errorf("actor %s is mapped but its parent %s is not mapped", name, parent.debugName()))
	}
	return errs
}

func (a *Actor) verifyMapState() {
	for _, err := range a.mapStateErrors() {
		Logger().Warn("tableau: map state invariant violated", "error", err)
	}
}

// CheckInvariants walks the subtree rooted at a and returns every map state
// invariant violation found.
func CheckInvariants(a *Actor) []error {
	var errs []error
	DepthFirst(a, func(n *Actor, _ int) TraverseResult {
		errs = append(errs, n.mapStateErrors()...)
		return TraverseContinue
	}, nil)
	return errs
}

// frameStats holds per-frame timing and counters.
type frameStats struct {
	layoutTime time.Duration
	flushTime  time.Duration
	paintTime  time.Duration
	entries    int
	culled     int
}

func (f *frameStats) begin() {
	f.layoutTime = 0
	f.flushTime = 0
}

// debugLog logs the stats of the frame that was just painted.
func (s *Stage) debugLog(clip Box, full bool) {
	if !s.debug {
		return
	}
	st := s.stats
	Logger().Debug("tableau: frame",
		"layout", st.layoutTime,
		"flush", st.flushTime,
		"paint", st.paintTime,
		"full", full,
		"clip", fmt.Sprintf("%gx%g+%g+%g", clip.Width(), clip.Height(), clip.X1, clip.Y1),
		"culled", st.culled,
		"mapped", s.mappedActors,
	)
}
