// Package smooth implements the first-order IIR smoothing filter and the
// cubic-ease dynamic tween used to interpolate node-graph input values
// between coarse "slow update" samples and full sample-accurate output.
package smooth

import "math"

// SampleRate is the fixed audio sample rate assumed when a caller specifies
// a convergence time in milliseconds instead of samples.
const SampleRate = 44100.0

// Filter is a one-pole running weighted average (RWA) filter: each call to
// Next moves Value a fraction alpha of the way toward Target.
type Filter struct {
	value float32
	target float32
	alpha float32
}

// SetConvergence sets the per-step smoothing factor so that after
// approximately 'samples' steps the remaining error is reduced by 'damping'.
func (f *Filter) SetConvergence(samples float32, damping float32) *Filter {
	if samples <= 0 {
		f.alpha = 1
		return f
	}
	if damping <= 0 {
		damping = 0.01
	}
	f.alpha = float32(1 - math.Pow(float64(damping), 1/float64(samples)))
	return f
}

// SetConvergenceInMs is SetConvergence with the time constant expressed in
// milliseconds at the fixed SampleRate.
func (f *Filter) SetConvergenceInMs(ms float32, damping float32) *Filter {
	samples := ms * 0.001 * SampleRate
	return f.SetConvergence(samples, damping)
}

// SetConvergenceFactor installs a fast, fixed smoothing factor suitable for
// per-sample control signals that don't carry an explicit time constant.
func (f *Filter) SetConvergenceFactor() *Filter {
	f.alpha = 1.0 / 64.0
	return f
}

// SetTarget sets the value Next will converge toward.
func (f *Filter) SetTarget(v float32) *Filter {
	f.target = v
	return f
}

// SnapAt immediately sets Value to Target, skipping the remaining ramp.
func (f *Filter) SnapAt() *Filter {
	f.value = f.target
	return f
}

// Value returns the filter's current output without advancing it.
func (f *Filter) Value() float32 {
	return f.value
}

// SetValue forces the current output value, e.g. on reset.
func (f *Filter) SetValue(v float32) {
	f.value = v
}

// Next advances the filter one step toward Target and returns the result.
func (f *Filter) Next() float32 {
	f.value += f.alpha * (f.target - f.value)
	return f.value
}
