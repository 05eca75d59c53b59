// Package transition schedules animated position changes.
//
// A Scheduler holds one tween per target. Scheduling a new move for a target
// that is already animating interrupts the old tween, so at most one
// transition runs per mark. The driver advances all tweens with Step once per
// frame; Schedule itself never blocks and never moves the target.
//
//	s := transition.NewScheduler(transition.WithDuration(250*time.Millisecond))
//	s.Schedule(mark, mark.X(), 120)
//	for s.Active() > 0 {
//	    s.Step(16 * time.Millisecond)
//	}
//
// Tweens are computed with github.com/tanema/gween. A Scheduler is not safe
// for concurrent use.
package transition
