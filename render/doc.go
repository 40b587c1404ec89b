// Package render draws a stillwater.Composition with ebiten.
//
// New bakes every procedural texture and shape layer into images, creates a
// CPU particle emitter per particle layer and a Tween per animated layer.
// Call Update from the game's Update and Draw from its Draw:
//
//	r, err := render.New(stillwater.Compose(opts), render.Options{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer r.Dispose()
//
//	// in Game.Update
//	r.Update(1 / float64(ebiten.TPS()))
//	// in Game.Draw
//	r.Draw(screen)
package render
