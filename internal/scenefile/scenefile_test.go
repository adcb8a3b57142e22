package scenefile

import (
	"strings"
	"testing"

	"github.com/phanxgames/tableau"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
stage:
  width: 200
  height: 100
  color: "#102030"
actors:
  - name: panel
    x: 10
    y: 20
    width: 100
    height: 60
    reactive: true
    clip_to_allocation: true
    children:
      - name: button
        color: "#ff0000"
        x: 5
        y: 5
        width: 20
        height: 10
        opacity: 128
      - name: hidden
        color: "#00ff00"
        width: 10
        height: 10
        visible: false
  - name: spinner
    color: "#0000ff80"
    x: 150
    y: 50
    width: 20
    height: 20
    rotation:
      angle: 90
      gravity: center
    scale:
      x: 2
      y: 2
      gravity: center
`

func load(t *testing.T, src string) *Scene {
	t.Helper()
	sc, err := Load(strings.NewReader(src))
	require.NoError(t, err)
	return sc
}

func TestLoad(t *testing.T) {
	sc := load(t, sample)
	assert.Equal(t, 200.0, sc.Stage.Width)
	require.Len(t, sc.Actors, 2)
	assert.Equal(t, "panel", sc.Actors[0].Name)
	require.Len(t, sc.Actors[0].Children, 2)
	require.NotNil(t, sc.Actors[0].Children[1].Visible)
	assert.False(t, *sc.Actors[0].Children[1].Visible)
	require.NotNil(t, sc.Actors[1].Rotation)
	assert.Equal(t, "center", sc.Actors[1].Rotation.Gravity)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"empty", "", "empty scene"},
		{"no size", "stage: {width: 0, height: 10}", "must be positive"},
		{"unknown field", "stage: {width: 1, height: 1, depth: 3}", "decode"},
		{"bad yaml", "stage: [", "decode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.src))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestNewStage(t *testing.T) {
	stage, actors, err := load(t, sample).NewStage()
	require.NoError(t, err)
	require.True(t, stage.IsMapped())
	stage.Update()

	assert.Equal(t, tableau.Color{R: 0x10 / 255.0, G: 0x20 / 255.0, B: 0x30 / 255.0, A: 1}, stage.Color())
	require.Len(t, actors, 4)

	panel := actors["panel"]
	assert.Equal(t, tableau.Box{X1: 10, Y1: 20, X2: 110, Y2: 80}, panel.AllocationBox())
	assert.True(t, panel.IsReactive())
	assert.True(t, panel.ClipToAllocation())
	assert.Same(t, panel, actors["button"].Parent())

	assert.Equal(t, uint8(128), actors["button"].Opacity())
	assert.True(t, actors["button"].IsMapped())
	assert.False(t, actors["hidden"].IsVisible())
	assert.False(t, actors["hidden"].IsMapped())

	spinner := actors["spinner"]
	angle, cx, cy, _ := spinner.Rotation(tableau.ZAxis)
	assert.Equal(t, 90.0, angle)
	assert.Equal(t, 10.0, cx)
	assert.Equal(t, 10.0, cy)
	assert.Equal(t, tableau.GravityCenter, spinner.ScaleGravity())
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name  string
		actor string
		want  string
	}{
		{"bad color", "{name: a, color: red}", "invalid color"},
		{"bad gravity", "{name: a, anchor: up}", "unknown gravity"},
		{"bad axis", "{name: a, rotation: {axis: w, angle: 1}}", "unknown rotation axis"},
		{"gravity on x", "{name: a, rotation: {axis: x, angle: 1, gravity: center}}", "only supported"},
		{"duplicate", "{name: a, children: [{name: a}]}", "duplicate name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := load(t, "stage: {width: 10, height: 10}\nactors: ["+tt.actor+"]")
			_, err := sc.Build(tableau.NewStage(10, 10))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#00ff0080")
	require.NoError(t, err)
	assert.Equal(t, tableau.Color{G: 1, A: 128 / 255.0}, c)

	c, err = ParseColor("ffffff")
	require.NoError(t, err)
	assert.Equal(t, tableau.ColorWhite, c)

	_, err = ParseColor("#12345")
	assert.Error(t, err)
	_, err = ParseColor("#gggggg")
	assert.Error(t, err)
}
