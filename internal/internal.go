package internal

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
)

// PadExtent rounds extent up to the next multiple of width, the padded
// size of the grid covering the range. PadExtent panics if extent is
// negative or width is not positive.
func PadExtent(extent, width int) int {
	if extent < 0 {
		panic(fmt.Sprintf("invalid extent: %v", extent))
	}
	if width <= 0 {
		panic(fmt.Sprintf("invalid tile width: %v", width))
	}
	return ((extent + width - 1) / width) * width
}

// TileCount reports how many tiles of the given width cover extent.
func TileCount(extent, width int) int {
	return PadExtent(extent, width) / width
}

type runtimeError struct{ error }

func (runtimeError) RuntimeError() {}

// WrapPanic adds stack trace information to a recovered panic.
func WrapPanic(p interface{}) interface{} {
	if p != nil {
		s := fmt.Sprintf("%v\n%s\nrethrown at", p, debug.Stack())
		if _, isError := p.(error); isError {
			r := errors.New(s)
			if _, isRuntimeError := p.(runtime.Error); isRuntimeError {
				return runtimeError{r}
			}
			return r
		}
		return s
	}
	return nil
}
