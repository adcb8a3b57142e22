package tableau

import (
	"context"
	"log/slog"
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertBox(t *testing.T, name string, got, want Box) {
	t.Helper()
	if math.Abs(got.X1-want.X1) > epsilon || math.Abs(got.Y1-want.Y1) > epsilon ||
		math.Abs(got.X2-want.X2) > epsilon || math.Abs(got.Y2-want.Y2) > epsilon {
		t.Errorf("%s = %+v, want %+v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want Matrix) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

// newShownStage returns a mapped stage with an allocated root.
func newShownStage(t *testing.T, w, h float64) *Stage {
	t.Helper()
	s := NewStage(w, h)
	s.Show()
	s.Update()
	return s
}

// frame flushes s and paints it into a fresh recording renderer.
func frame(s *Stage) *recordingRenderer {
	r := &recordingRenderer{}
	s.Paint(r)
	return r
}

type fillCall struct {
	box     Box // device space
	color   Color
	opacity uint8
	pickID  int32
	clip    Box
	clipped bool
}

// recordingRenderer records fills in device space.
type recordingRenderer struct {
	MatrixStack
	clips     ClipStack
	fills     []fillCall
	offscreen bool
}

func (r *recordingRenderer) PushClip(b Box) { r.clips.Push(b, r.Modelview()) }
func (r *recordingRenderer) PopClip()       { r.clips.Pop() }
func (r *recordingRenderer) Offscreen() bool {
	return r.offscreen
}

func (r *recordingRenderer) FillRect(b Box, c Color, opacity uint8) {
	r.record(fillCall{box: r.device(b), color: c, opacity: opacity, pickID: -1})
}

func (r *recordingRenderer) FillPick(b Box, pickID int32) {
	r.record(fillCall{box: r.device(b), pickID: pickID})
}

func (r *recordingRenderer) record(f fillCall) {
	f.clip, f.clipped = r.clips.Top()
	r.fills = append(r.fills, f)
}

func (r *recordingRenderer) device(b Box) Box {
	m := r.Modelview()
	verts := []Vertex{
		m.TransformVertex(Vertex{X: b.X1, Y: b.Y1}),
		m.TransformVertex(Vertex{X: b.X2, Y: b.Y1}),
		m.TransformVertex(Vertex{X: b.X1, Y: b.Y2}),
		m.TransformVertex(Vertex{X: b.X2, Y: b.Y2}),
	}
	return BoxFromVertices(verts)
}

// paintedColors returns the colors of the FillRect calls in order.
func (r *recordingRenderer) paintedColors() []Color {
	var out []Color
	for _, f := range r.fills {
		out = append(out, f.color)
	}
	return out
}

func (r *recordingRenderer) painted(c Color) bool {
	for _, f := range r.fills {
		if f.pickID < 0 && f.color == c {
			return true
		}
	}
	return false
}

// logRecorder is a slog.Handler keeping every record.
type logRecorder struct {
	records []slog.Record
}

func (l *logRecorder) Enabled(context.Context, slog.Level) bool { return true }
func (l *logRecorder) Handle(_ context.Context, r slog.Record) error {
	l.records = append(l.records, r)
	return nil
}
func (l *logRecorder) WithAttrs([]slog.Attr) slog.Handler { return l }
func (l *logRecorder) WithGroup(string) slog.Handler      { return l }

func (l *logRecorder) warnings() []string {
	var out []string
	for _, r := range l.records {
		if r.Level == slog.LevelWarn {
			out = append(out, r.Message)
		}
	}
	return out
}

// captureLogs routes the package logger into a recorder for the duration
// of the test.
func captureLogs(t *testing.T) *logRecorder {
	t.Helper()
	rec := &logRecorder{}
	SetLogger(slog.New(rec))
	t.Cleanup(func() { SetLogger(nil) })
	return rec
}

// withDebug enables invariant checks for the duration of the test.
func withDebug(t *testing.T) {
	t.Helper()
	old := globalDebug
	globalDebug = true
	t.Cleanup(func() { globalDebug = old })
}

var (
	red   = Color{R: 1, A: 1}
	green = Color{G: 1, A: 1}
	blue  = Color{B: 1, A: 1}
)

func assertPanics(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

func childNames(a *Actor) []string {
	var out []string
	for _, c := range a.Children() {
		out = append(out, c.Name())
	}
	return out
}
