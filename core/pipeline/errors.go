package pipeline

import (
	"errors"
	"fmt"
)

// Stage names the processing step an error came from.
type Stage string

const (
	StageDecode  Stage = "decode"
	StageExtract Stage = "extract"
	StageRender  Stage = "render"
	StageWrite   Stage = "write"
	StageRemove  Stage = "remove"
)

var (
	ErrDecode  = errors.New("decode failed")
	ErrExtract = errors.New("extract failed")
	ErrRender  = errors.New("render failed")
	ErrWrite   = errors.New("write failed")
	ErrRemove  = errors.New("remove failed")
)

var stageErrors = map[Stage]error{
	StageDecode:  ErrDecode,
	StageExtract: ErrExtract,
	StageRender:  ErrRender,
	StageWrite:   ErrWrite,
	StageRemove:  ErrRemove,
}

// StageError records which stage failed for which file. It matches both the
// stage sentinel (ErrDecode, ...) and the underlying cause with errors.Is.
type StageError struct {
	Stage Stage
	Path  string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Path, e.Err)
}

func (e *StageError) Unwrap() []error {
	return []error{stageErrors[e.Stage], e.Err}
}

func stageErr(stage Stage, path string, err error) error {
	return &StageError{Stage: stage, Path: path, Err: err}
}
