package anim

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRunTime = errors.New("anim: run time must be positive")
	ErrUnknownMobject = errors.New("anim: unknown mobject")
	ErrUnknownRate    = errors.New("anim: unknown rate")
)

// StepError records which timeline segment failed to build.
type StepError struct {
	Index int
	Op    string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("anim: segment %d (%s): %v", e.Index, e.Op, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
