package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a stage failure.
type ErrorKind string

const (
	KindFileAccess  ErrorKind = "FileAccessError"
	KindParse       ErrorKind = "ParseError"
	KindComputation ErrorKind = "ComputationError"
	KindPersistence ErrorKind = "PersistenceError"
)

// Sentinels matched by errors.Is against any StageError of the same kind.
var (
	ErrFileAccess  = errors.New("file access error")
	ErrParse       = errors.New("parse error")
	ErrComputation = errors.New("computation error")
	ErrPersistence = errors.New("persistence error")
)

var sentinelByKind = map[ErrorKind]error{
	KindFileAccess:  ErrFileAccess,
	KindParse:       ErrParse,
	KindComputation: ErrComputation,
	KindPersistence: ErrPersistence,
}

// Stage names used in StageError.Stage.
const (
	StageLoad      = "load"
	StageClean     = "clean"
	StageEnrich    = "enrich"
	StageAggregate = "aggregate"
	StagePersist   = "persist"
	StageDescribe  = "describe"
	StageForecast  = "forecast"
)

// StageError is a tagged failure of one pipeline stage.
type StageError struct {
	Stage string    // stage that failed
	Kind  ErrorKind // failure class
	Input string    // file, table or artifact involved (when applicable)
	Err   error     // underlying cause
}

// Error implements the error interface
func (e *StageError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Stage, e.Kind)
	if e.Input != "" {
		msg = fmt.Sprintf("%s [%s]", msg, e.Input)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Err.Error())
	}
	return msg
}

// Unwrap returns the underlying cause
func (e *StageError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error kind.
func (e *StageError) Is(target error) bool {
	return sentinelByKind[e.Kind] == target
}

// NewStageError creates a StageError.
func NewStageError(stage string, kind ErrorKind, input string, err error) *StageError {
	return &StageError{
		Stage: stage,
		Kind:  kind,
		Input: input,
		Err:   err,
	}
}

// KindOf returns the kind of the first StageError in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return stageErr.Kind, true
	}
	return "", false
}
