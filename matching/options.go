// SPDX-License-Identifier: MIT

package matching

// Option configures an Engine via functional arguments.
// Nil callbacks are ignored; hooks registered more than once are chained.
type Option func(*Options)

// Options holds the hooks invoked while the engine runs.
// Hooks run synchronously on the solving goroutine and must not call back
// into the Engine's mutating methods (Step, Solve).
type Options struct {
	// OnPhase is called after every phase, relaxation included.
	OnPhase func(info PhaseInfo)

	// OnRelax is called right after potentials were shifted.
	OnRelax func(info RelaxInfo)

	// OnAugment is called for each augmenting path committed from a real
	// left vertex, with the right vertex it ended up matched to.
	OnAugment func(left, right int)
}

// DefaultOptions returns Options with no-op hooks.
func DefaultOptions() Options {
	return Options{
		OnPhase:   func(PhaseInfo) {},
		OnRelax:   func(RelaxInfo) {},
		OnAugment: func(int, int) {},
	}
}

// WithOnPhase registers a per-phase callback. Repeated registrations run
// in the order given.
func WithOnPhase(fn func(info PhaseInfo)) Option {
	return func(o *Options) {
		if fn == nil {
			return
		}
		if prev := o.OnPhase; prev != nil {
			o.OnPhase = func(info PhaseInfo) { prev(info); fn(info) }
			return
		}
		o.OnPhase = fn
	}
}

// WithOnRelax registers a callback fired after each potential shift.
func WithOnRelax(fn func(info RelaxInfo)) Option {
	return func(o *Options) {
		if fn == nil {
			return
		}
		if prev := o.OnRelax; prev != nil {
			o.OnRelax = func(info RelaxInfo) { prev(info); fn(info) }
			return
		}
		o.OnRelax = fn
	}
}

// WithOnAugment registers a callback fired for each committed augmenting path.
func WithOnAugment(fn func(left, right int)) Option {
	return func(o *Options) {
		if fn == nil {
			return
		}
		if prev := o.OnAugment; prev != nil {
			o.OnAugment = func(left, right int) { prev(left, right); fn(left, right) }
			return
		}
		o.OnAugment = fn
	}
}

// buildOptions applies opts on top of DefaultOptions.
func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
