package submission

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLanguage is returned when the language label is not registered.
	ErrInvalidLanguage = errors.New("invalid language")
	// ErrInvalidRequest is returned for requests missing required fields.
	ErrInvalidRequest = errors.New("invalid request")
)

// Stage names the flow step at which an upstream call failed.
type Stage string

const (
	StageSubmit Stage = "submit"
	StageFetch  Stage = "fetch"
)

// UpstreamError is a failure talking to the execution engine.
type UpstreamError struct {
	Stage Stage
	Err   error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// StorageError is a failure persisting a record after the engine has
// already executed the submission.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("store submission: %v", e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
