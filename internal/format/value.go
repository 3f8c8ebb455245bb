package format

import (
	"time"

	"github.com/llehouerou/statusline/internal/playback"
)

// Value is the resolved, comparable value of a placeholder against a
// snapshot. Two snapshots render a placeholder identically when its
// values are equal, so == on Value is the change signal.
type Value interface {
	isValue()
}

// TextValue is fixed literal text.
type TextValue struct {
	Text string
}

// OptionalText is a song tag that may be missing.
type OptionalText struct {
	Text playback.Optional[string]
}

// IntValue is a signed number (volume).
type IntValue struct {
	N int
}

// OptionalDuration is a duration paired with the pattern that shows it.
type OptionalDuration struct {
	D       playback.Optional[time.Duration]
	Pattern *TimePattern
}

// OptionalQueuePlace is the place of the current song in the queue.
type OptionalQueuePlace struct {
	Place playback.Optional[playback.QueuePlace]
}

// CountValue is an unsigned count (queue length).
type CountValue struct {
	N uint32
}

// BoolValue is a toggle mode.
type BoolValue struct {
	On bool
}

// StateValue is the playback state with the padding of its icon.
type StateValue struct {
	State playback.State
	Pad   int
}

func (TextValue) isValue()          {}
func (OptionalText) isValue()       {}
func (IntValue) isValue()           {}
func (OptionalDuration) isValue()   {}
func (OptionalQueuePlace) isValue() {}
func (CountValue) isValue()         {}
func (BoolValue) isValue()          {}
func (StateValue) isValue()         {}
