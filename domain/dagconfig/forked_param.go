package dagconfig

import "math"

// ForkedParam is a consensus parameter whose value changes once the DAA
// score crosses an activation point.
type ForkedParam[T any] struct {
	before             T
	after              T
	activationDAAScore uint64
}

// NewForkedParam returns a ForkedParam that yields before below
// activationDAAScore and after from it on.
func NewForkedParam[T any](before, after T, activationDAAScore uint64) ForkedParam[T] {
	return ForkedParam[T]{
		before:             before,
		after:              after,
		activationDAAScore: activationDAAScore,
	}
}

// ConstantForkedParam returns a ForkedParam that never activates.
func ConstantForkedParam[T any](value T) ForkedParam[T] {
	return NewForkedParam(value, value, math.MaxUint64)
}

// Get returns the value of the parameter at daaScore.
func (p ForkedParam[T]) Get(daaScore uint64) T {
	if daaScore >= p.activationDAAScore {
		return p.after
	}
	return p.before
}

// Before returns the pre-activation value.
func (p ForkedParam[T]) Before() T {
	return p.before
}

// After returns the post-activation value.
func (p ForkedParam[T]) After() T {
	return p.after
}

// ActivationDAAScore returns the DAA score from which After applies.
func (p ForkedParam[T]) ActivationDAAScore() uint64 {
	return p.activationDAAScore
}
