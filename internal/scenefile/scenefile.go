// Package scenefile loads YAML scene descriptions into a tableau stage.
package scenefile

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/phanxgames/tableau"
	"gopkg.in/yaml.v3"
)

// Scene is the root of a scene file.
type Scene struct {
	Stage  StageConfig `yaml:"stage"`
	Actors []Actor     `yaml:"actors"`
}

// StageConfig describes the stage the actors are added to.
type StageConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Scale  float64 `yaml:"scale"`
	Color  string  `yaml:"color"`
}

// Actor describes one actor and its children. Unset optional fields keep
// the actor defaults.
type Actor struct {
	Name      string   `yaml:"name"`
	Color     string   `yaml:"color"`
	X         *float64 `yaml:"x"`
	Y         *float64 `yaml:"y"`
	Width     *float64 `yaml:"width"`
	Height    *float64 `yaml:"height"`
	MinWidth  *float64 `yaml:"min_width"`
	MinHeight *float64 `yaml:"min_height"`
	Opacity   *uint8   `yaml:"opacity"`
	Visible   *bool    `yaml:"visible"`
	Reactive  bool     `yaml:"reactive"`
	Depth     float64  `yaml:"depth"`

	Rotation *Rotation `yaml:"rotation"`
	Scale    *Scale    `yaml:"scale"`
	Anchor   string    `yaml:"anchor"`

	ClipToAllocation bool `yaml:"clip_to_allocation"`

	Children []Actor `yaml:"children"`
}

// Rotation rotates an actor around one axis. Gravity applies to the z axis
// only; the other axes rotate about the origin.
type Rotation struct {
	Axis    string  `yaml:"axis"`
	Angle   float64 `yaml:"angle"`
	Gravity string  `yaml:"gravity"`
}

// Scale scales an actor about the point named by Gravity.
type Scale struct {
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Gravity string  `yaml:"gravity"`
}

// Load decodes a scene from r. Unknown fields are rejected.
func Load(r io.Reader) (*Scene, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var sc Scene
	if err := dec.Decode(&sc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("scenefile: empty scene")
		}
		return nil, fmt.Errorf("scenefile: decode: %w", err)
	}
	if sc.Stage.Width <= 0 || sc.Stage.Height <= 0 {
		return nil, fmt.Errorf("scenefile: stage size must be positive, got %gx%g", sc.Stage.Width, sc.Stage.Height)
	}
	return &sc, nil
}

// NewStage creates and shows a stage configured by the scene and builds the
// actors on it.
func (sc *Scene) NewStage() (*tableau.Stage, map[string]*tableau.Actor, error) {
	stage := tableau.NewStage(sc.Stage.Width, sc.Stage.Height)
	if sc.Stage.Scale > 0 {
		stage.SetScale(sc.Stage.Scale)
	}
	if sc.Stage.Color != "" {
		c, err := ParseColor(sc.Stage.Color)
		if err != nil {
			return nil, nil, fmt.Errorf("scenefile: stage: %w", err)
		}
		stage.SetColor(c)
	}
	actors, err := sc.Build(stage)
	if err != nil {
		return nil, nil, err
	}
	stage.Show()
	return stage, actors, nil
}

// Build creates the scene actors as children of the stage root. It returns
// the named actors by name.
func (sc *Scene) Build(stage *tableau.Stage) (map[string]*tableau.Actor, error) {
	b := builder{named: make(map[string]*tableau.Actor)}
	for i := range sc.Actors {
		if err := b.build(stage.Root(), &sc.Actors[i]); err != nil {
			return nil, err
		}
	}
	return b.named, nil
}

type builder struct {
	named map[string]*tableau.Actor
}

func (b *builder) build(parent *tableau.Actor, desc *Actor) error {
	a, err := b.newActor(desc)
	if err != nil {
		return fmt.Errorf("scenefile: actor %q: %w", desc.Name, err)
	}
	parent.AddChild(a)
	for i := range desc.Children {
		if err := b.build(a, &desc.Children[i]); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) newActor(desc *Actor) (*tableau.Actor, error) {
	if desc.Name != "" {
		if _, dup := b.named[desc.Name]; dup {
			return nil, errors.New("duplicate name")
		}
	}

	var a *tableau.Actor
	if desc.Color != "" {
		c, err := ParseColor(desc.Color)
		if err != nil {
			return nil, err
		}
		a = tableau.NewRectangle(desc.Name, c)
	} else {
		a = tableau.NewActor(desc.Name)
	}

	if desc.X != nil || desc.Y != nil {
		a.SetPosition(deref(desc.X), deref(desc.Y))
	}
	if desc.Width != nil {
		a.SetWidth(*desc.Width)
	}
	if desc.Height != nil {
		a.SetHeight(*desc.Height)
	}
	if desc.MinWidth != nil {
		a.SetMinWidth(*desc.MinWidth)
	}
	if desc.MinHeight != nil {
		a.SetMinHeight(*desc.MinHeight)
	}
	if desc.Opacity != nil {
		a.SetOpacity(*desc.Opacity)
	}
	a.SetReactive(desc.Reactive)
	if desc.Depth != 0 {
		a.SetDepth(desc.Depth)
	}
	a.SetClipToAllocation(desc.ClipToAllocation)

	if desc.Anchor != "" {
		g, err := parseGravity(desc.Anchor)
		if err != nil {
			return nil, err
		}
		a.SetAnchorPointFromGravity(g)
	}
	if r := desc.Rotation; r != nil {
		if err := applyRotation(a, r); err != nil {
			return nil, err
		}
	}
	if s := desc.Scale; s != nil {
		g, err := parseGravity(s.Gravity)
		if err != nil {
			return nil, err
		}
		a.SetScaleWithGravity(s.X, s.Y, g)
	}

	if desc.Visible != nil && !*desc.Visible {
		a.Hide()
	}
	if desc.Name != "" {
		b.named[desc.Name] = a
	}
	return a, nil
}

func applyRotation(a *tableau.Actor, r *Rotation) error {
	g, err := parseGravity(r.Gravity)
	if err != nil {
		return err
	}
	switch strings.ToLower(r.Axis) {
	case "", "z":
		a.SetZRotationFromGravity(r.Angle, g)
	case "x":
		if g != tableau.GravityNone {
			return errors.New("gravity is only supported for z rotations")
		}
		a.SetRotationAngle(tableau.XAxis, r.Angle)
	case "y":
		if g != tableau.GravityNone {
			return errors.New("gravity is only supported for z rotations")
		}
		a.SetRotationAngle(tableau.YAxis, r.Angle)
	default:
		return fmt.Errorf("unknown rotation axis %q", r.Axis)
	}
	return nil
}

func parseGravity(s string) (tableau.Gravity, error) {
	if s == "" {
		return tableau.GravityNone, nil
	}
	g, ok := tableau.ParseGravity(s)
	if !ok {
		return tableau.GravityNone, fmt.Errorf("unknown gravity %q", s)
	}
	return g, nil
}

// ParseColor parses a "#rrggbb" or "#rrggbbaa" hex color.
func ParseColor(s string) (tableau.Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return tableau.Color{}, fmt.Errorf("invalid color %q", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return tableau.Color{}, fmt.Errorf("invalid color %q", s)
	}
	return tableau.Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
