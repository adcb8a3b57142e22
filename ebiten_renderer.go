package tableau

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- White pixel singleton (no sync.Once, tableau is single-threaded) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image used
// as the source of untextured quads.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// EbitenRenderer paints into an Ebitengine image. Rectangles are drawn as
// two triangles so any modelview, including rotations, is honored; clips
// are reduced to device-space bounding boxes and applied with SubImage.
type EbitenRenderer struct {
	MatrixStack
	clips     ClipStack
	target    *ebiten.Image
	offscreen bool

	verts [4]ebiten.Vertex
	inds  [6]uint32
}

// NewEbitenRenderer returns a renderer drawing into target.
func NewEbitenRenderer(target *ebiten.Image) *EbitenRenderer {
	return &EbitenRenderer{
		target: target,
		inds:   [6]uint32{0, 1, 2, 1, 3, 2},
	}
}

// Target returns the image being drawn into.
func (r *EbitenRenderer) Target() *ebiten.Image { return r.target }

// SetTarget switches the image being drawn into and resets the clip and
// matrix stacks.
func (r *EbitenRenderer) SetTarget(target *ebiten.Image) {
	r.target = target
	r.clips.Reset()
	r.Reset(IdentityMatrix())
}

// SetOffscreen marks the target as something other than the stage
// framebuffer, which disables culling.
func (r *EbitenRenderer) SetOffscreen(offscreen bool) { r.offscreen = offscreen }

// Offscreen implements Renderer.
func (r *EbitenRenderer) Offscreen() bool { return r.offscreen }

// PushClip implements Renderer.
func (r *EbitenRenderer) PushClip(b Box) {
	r.clips.Push(b, r.Modelview())
}

// PopClip implements Renderer.
func (r *EbitenRenderer) PopClip() { r.clips.Pop() }

// FillRect implements Renderer.
func (r *EbitenRenderer) FillRect(b Box, c Color, opacity uint8) {
	r.fill(b, c.RGBA(opacity))
}

// FillPick implements Renderer.
func (r *EbitenRenderer) FillPick(b Box, pickID int32) {
	r.fill(b, PickIDToColor(pickID))
}

func (r *EbitenRenderer) fill(b Box, c color.RGBA) {
	if b.IsEmpty() || c.A == 0 && c.R == 0 && c.G == 0 && c.B == 0 {
		return
	}
	dst := r.clippedTarget()
	if dst == nil {
		return
	}

	m := r.Modelview()
	corners := [4]Vertex{
		{X: b.X1, Y: b.Y1},
		{X: b.X2, Y: b.Y1},
		{X: b.X1, Y: b.Y2},
		{X: b.X2, Y: b.Y2},
	}
	cr := float32(c.R) / 255
	cg := float32(c.G) / 255
	cb := float32(c.B) / 255
	ca := float32(c.A) / 255
	for i, v := range corners {
		p := m.TransformVertex(v)
		r.verts[i] = ebiten.Vertex{
			DstX:   float32(p.X),
			DstY:   float32(p.Y),
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		}
	}

	var op ebiten.DrawTrianglesOptions
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	dst.DrawTriangles32(r.verts[:], r.inds[:], ensureWhitePixel(), &op)
}

// clippedTarget returns the part of the target inside the current clip, or
// nil when the clip is empty.
func (r *EbitenRenderer) clippedTarget() *ebiten.Image {
	clip, ok := r.clips.Top()
	if !ok {
		return r.target
	}
	clip = clip.ClampToPixel()
	rect := image.Rect(int(clip.X1), int(clip.Y1), int(clip.X2), int(clip.Y2)).Intersect(r.target.Bounds())
	if rect.Empty() {
		return nil
	}
	return r.target.SubImage(rect).(*ebiten.Image)
}
