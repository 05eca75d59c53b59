package transition

import (
	"strings"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultDuration matches the usual chart transition length.
const DefaultDuration = 250 * time.Millisecond

// Target is anything with a settable horizontal position.
type Target interface {
	SetX(x float64)
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithDuration sets the length of every scheduled transition.
func WithDuration(d time.Duration) Option {
	return func(s *Scheduler) {
		s.duration = d
	}
}

// WithEase sets the easing function.
func WithEase(fn ease.TweenFunc) Option {
	return func(s *Scheduler) {
		s.ease = fn
	}
}

// Scheduler runs position tweens.
type Scheduler struct {
	duration time.Duration
	ease     ease.TweenFunc
	active   map[Target]*run
	order    []Target
}

type run struct {
	tween    *gween.Tween
	from, to float64
}

// NewScheduler creates a scheduler with cubic in-out easing.
func NewScheduler(opts ...Option) *Scheduler {
	s := &Scheduler{
		duration: DefaultDuration,
		ease:     ease.InOutCubic,
		active:   make(map[Target]*run),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Duration returns the configured transition length.
func (s *Scheduler) Duration() time.Duration {
	return s.duration
}

// Schedule starts moving target from one coordinate to another, replacing
// any transition already running on it. The target is not touched until the
// next Step. A zero duration completes on that Step.
func (s *Scheduler) Schedule(target Target, from, to float64) {
	if _, running := s.active[target]; !running {
		s.order = append(s.order, target)
	}
	s.active[target] = &run{
		tween: gween.New(float32(from), float32(to), float32(s.duration.Seconds()), s.ease),
		from:  from,
		to:    to,
	}
}

// Cancel drops any transition on target without moving it.
func (s *Scheduler) Cancel(target Target) {
	if _, ok := s.active[target]; !ok {
		return
	}
	delete(s.active, target)
	s.compact()
}

// Pending reports whether target has a running transition and its end
// coordinate.
func (s *Scheduler) Pending(target Target) (to float64, ok bool) {
	r, ok := s.active[target]
	if !ok {
		return 0, false
	}
	return r.to, true
}

// Active returns the number of running transitions.
func (s *Scheduler) Active() int {
	return len(s.active)
}

// Step advances every transition by dt and applies the interpolated
// positions. Finished transitions land exactly on their end coordinate and
// are dropped. It returns the number of targets moved.
func (s *Scheduler) Step(dt time.Duration) int {
	moved := 0
	finished := false
	for _, target := range s.order {
		r, ok := s.active[target]
		if !ok {
			continue
		}
		if s.duration <= 0 {
			target.SetX(r.to)
			delete(s.active, target)
			finished = true
			moved++
			continue
		}
		current, done := r.tween.Update(float32(dt.Seconds()))
		if done {
			target.SetX(r.to)
			delete(s.active, target)
			finished = true
		} else {
			target.SetX(float64(current))
		}
		moved++
	}
	if finished {
		s.compact()
	}
	return moved
}

// Flush completes every running transition immediately.
func (s *Scheduler) Flush() int {
	moved := 0
	for _, target := range s.order {
		if r, ok := s.active[target]; ok {
			target.SetX(r.to)
			moved++
		}
	}
	s.active = make(map[Target]*run)
	s.order = s.order[:0]
	return moved
}

// compact drops finished targets from the iteration order.
func (s *Scheduler) compact() {
	kept := s.order[:0]
	for _, target := range s.order {
		if _, ok := s.active[target]; ok {
			kept = append(kept, target)
		}
	}
	for i := len(kept); i < len(s.order); i++ {
		s.order[i] = nil
	}
	s.order = kept
}

// EaseByName resolves an easing function by name. Unknown names fall back to
// cubic in-out; ok reports whether name was recognised.
func EaseByName(name string) (fn ease.TweenFunc, ok bool) {
	switch strings.ToLower(name) {
	case "linear":
		return ease.Linear, true
	case "quad", "in-out-quad":
		return ease.InOutQuad, true
	case "", "cubic", "in-out-cubic":
		return ease.InOutCubic, true
	case "out-cubic":
		return ease.OutCubic, true
	case "sine", "in-out-sine":
		return ease.InOutSine, true
	case "bounce", "out-bounce":
		return ease.OutBounce, true
	case "elastic", "out-elastic":
		return ease.OutElastic, true
	default:
		return ease.InOutCubic, false
	}
}
