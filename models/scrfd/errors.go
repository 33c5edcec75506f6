package scrfd

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidGrid is returned when the input side is not a positive multiple of a stride.
var ErrInvalidGrid = errors.New("input side is not a positive multiple of the stride")

// LayoutMismatchError reports that a score tensor does not carry the expected
// number of anchors per cell for its stride.
type LayoutMismatchError struct {
	Stride   Stride
	Expected int
	Actual   int
}

func (e *LayoutMismatchError) Error() string {
	return fmt.Sprintf(
		"anchor layout mismatch for stride %d: expected=%d, actual=%d anchors per cell",
		e.Stride, e.Expected, e.Actual,
	)
}
