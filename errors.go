package hdrhistogram

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrOutOfRange is returned by RecordValue and RecordCorrectedValue when the
// value being recorded falls outside [0, highestTrackableValue].
var ErrOutOfRange = errors.New("hdrhistogram: value out of range")

// ErrEmpty is returned by GetMeanValue when the histogram has recorded
// nothing yet and a mean is undefined.
var ErrEmpty = errors.New("hdrhistogram: histogram is empty")

// ConfigError reports an invalid pair of construction parameters passed to
// New. It is fatal at the call site: the histogram is never built.
type ConfigError struct {
	Param string
	Value int64
	Msg   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("hdrhistogram: invalid %s (%d): %s", e.Param, e.Value, e.Msg)
}
