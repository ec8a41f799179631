package emulator

import (
	"errors"

	"github.com/ezrec/tama/cpu"
	"github.com/ezrec/tama/translate"
)

var f = translate.From

var (
	ErrButtonInvalid  = errors.New(f("button invalid"))
	ErrNotInitialized = errors.New(f("emulator not initialized"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Line cpu.Line
	Err  error
}

func (err *ErrRuntime) Error() string {
	return f("%v: %v", err.Line, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
