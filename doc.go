// Package tableau is a retained-mode 2D scene graph for [Ebitengine] that
// repaints only what changed.
//
// Every visual element is an [Actor]. Actors form a tree rooted at
// [Stage.Root]. Each actor negotiates a size with its parent, receives an
// allocation, and paints itself and its children through a [Renderer].
//
// # Quick start
//
//	stage := tableau.NewStage(640, 480)
//	box := tableau.NewRectangle("box", tableau.Color{R: 0.3, G: 0.7, B: 1, A: 1})
//	box.SetPosition(100, 50)
//	box.SetSize(80, 40)
//	stage.Add(box)
//
//	if err := tableau.Run(stage, tableau.RunConfig{Title: "Tableau"}); err != nil {
//		log.Fatal(err)
//	}
//
// For full control, implement [ebiten.Game] yourself and call [Stage.Paint]
// with an [EbitenRenderer] drawing into an image you keep between frames.
//
// # Map state
//
// An actor is visible when it wants to be shown, realized when it has the
// resources needed to paint, and mapped when it will actually be painted.
// Mapping follows visibility down the tree: a child is mapped exactly when
// it is visible and its parent is mapped. [Actor.SetPaintUnmapped] lets an
// actor be painted, for example by a clone, while its parent is hidden.
//
// # Layout
//
// Sizes are negotiated with [Actor.GetPreferredWidth] and
// [Actor.GetPreferredHeight]; results are cached per requested size.
// [Actor.QueueRelayout] invalidates the caches up to the stage, and the
// next [Stage.Update] allocates the tree again. Without an AllocateFunc an
// actor places its children at their fixed positions with their natural
// sizes.
//
// # Redraws
//
// [Actor.QueueRedraw] does not damage anything immediately. Redraws are
// collected per actor and flushed once per frame by [Stage.Update]. For
// each actor whose paint volume is known, the stage damages the area the
// actor covered when it was last painted and the area it covers now; any
// other redraw damages the whole stage. Actors outside the damaged area
// are culled from the next paint.
//
// # Debugging
//
// Warnings are reported through [log/slog]; call [SetLogger] to see them.
// [Stage.SetDebugConfig] and [LoadDebugConfig] switch off culling or
// clipped redraws and enable invariant checks.
//
// [Ebitengine]: https://ebitengine.org
package tableau
