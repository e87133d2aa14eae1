// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package initializer

import (
	"errors"
	"fmt"
)

// Stage names the step an initialization failed in. Every stage is handled
// the same way by callers; the stage only sharpens the message.
type Stage string

const (
	StageCredentials Stage = "credentials"
	StageClient      Stage = "client"
	StageWrite       Stage = "write"
)

// ErrInitialization matches any *Error via errors.Is.
var ErrInitialization = errors.New("update config initialization failed")

// Error is an initialization failure.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	switch e.Stage {
	case StageCredentials:
		return fmt.Sprintf("load credentials: %v", e.Err)
	case StageClient:
		return fmt.Sprintf("initialize document store client: %v", e.Err)
	case StageWrite:
		return fmt.Sprintf("write update config: %v", e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports ErrInitialization as a match.
func (e *Error) Is(target error) bool {
	return target == ErrInitialization
}

func fail(stage Stage, err error) *Error {
	return &Error{Stage: stage, Err: err}
}
