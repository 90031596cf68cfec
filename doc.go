// Package wriggle is a procedural 2D animation toolkit: a particle field
// and a set of creatures built from follow-the-leader bone chains with
// animated limbs and wings.
//
// # Quick start
//
// A [Scene] owns the particle field, the active creature and the live
// settings. Hosts sample the pointer once per frame and hand it to
// [Scene.Update], then draw through any [Surface]:
//
//	scene := wriggle.NewScene(wriggle.DefaultConfig(), nil)
//	// each frame
//	scene.Update(dt, wriggle.FrameInput{PointerX: x, PointerY: y, Held: down})
//	scene.Draw(surface)
//
// The ebitenrender package provides a Surface and an ebiten.Game for
// windows; termrender rasterizes into terminal cells with tcell.
//
// # Particles
//
// A [ParticleField] holds short-lived glowing dots. Pressing the pointer
// bursts Count particles at once; holding it spawns continuously at a rate
// proportional to Count, accumulated so that fractional rates still spawn
// the right total over time. Particles shrink and age each update and are
// removed when their life runs out or they leave the viewport.
//
// # Skeletons
//
// A [Skeleton] is a chain of joints. The head turns toward its target with
// angular smoothing and moves faster the further away the target is; every
// other joint is then placed exactly BoneLength behind its predecessor.
// A [LimbSystem] hangs a short chain of [Bone] values off one joint and
// poses it with a gait (legs) or a flap cycle (wings).
//
// # Creatures
//
// [NewCreature] builds any [Kind]: snake, fish, koi, centipede or dragon.
// The [EntityManager] keeps at most one active creature and replaces it
// wholesale on selection.
//
// # Configuration
//
// [Config] is loaded from TOML with [LoadConfig]; unknown keys are an
// error. [NewLogger] builds the logrus logger the scene reports through.
//
// # Scripted runs
//
// [LoadTestScript] parses a JSON list of steps (select, click, drag,
// wait, screenshot and others) that a [TestRunner] feeds to the scene one
// frame at a time:
//
//	{"steps": [
//	  {"action": "select", "entity": "dragon"},
//	  {"action": "drag", "fromX": 100, "fromY": 100, "toX": 600, "toY": 400, "frames": 60},
//	  {"action": "screenshot", "label": "dragon"}
//	]}
package wriggle
