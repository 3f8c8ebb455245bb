// Package icons parses the icon sets used for playback state and the
// consume/random/repeat/single toggles.
package icons

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/llehouerou/statusline/internal/playback"
)

var (
	ErrTooFewIcons  = errors.New("not enough characters")
	ErrTooManyIcons = errors.New("too many characters")
)

// IconCountError reports an icon string with the wrong number of characters.
type IconCountError struct {
	Expected int
	TooMany  bool
}

func (e *IconCountError) Error() string {
	if e.TooMany {
		return fmt.Sprintf("too many characters (expected %d)", e.Expected)
	}
	return fmt.Sprintf("not enough characters (expected %d)", e.Expected)
}

// Is lets callers match the error with ErrTooFewIcons or ErrTooManyIcons.
func (e *IconCountError) Is(target error) bool {
	if e.TooMany {
		return target == ErrTooManyIcons
	}
	return target == ErrTooFewIcons
}

// StateIcons holds one icon per playback state.
type StateIcons struct {
	Play  string
	Pause string
	Stop  string
}

// Icon returns the icon for the given state.
func (i StateIcons) Icon(s playback.State) string {
	switch s {
	case playback.StatePlaying:
		return i.Play
	case playback.StatePaused:
		return i.Pause
	default:
		return i.Stop
	}
}

// Write appends the icon for s followed by pad spaces.
func (i StateIcons) Write(b *strings.Builder, s playback.State, pad int) {
	b.WriteString(i.Icon(s))
	writePad(b, pad)
}

// ToggleIcons holds the icons of a boolean mode.
// An empty Disabled means nothing is shown while the mode is off.
type ToggleIcons struct {
	Enabled  string
	Disabled string
}

// Icon returns the icon for the given mode value, if any.
func (i ToggleIcons) Icon(on bool) (string, bool) {
	if on {
		return i.Enabled, true
	}
	return i.Disabled, i.Disabled != ""
}

// Write appends the icon for on followed by pad spaces.
// When there is no icon, neither the icon nor the padding is written.
func (i ToggleIcons) Write(b *strings.Builder, on bool, pad int) {
	icon, ok := i.Icon(on)
	if !ok {
		return
	}
	b.WriteString(icon)
	writePad(b, pad)
}

// Set is the complete icon configuration. It is built once at startup
// and only read afterwards.
type Set struct {
	State   StateIcons
	Consume ToggleIcons
	Random  ToggleIcons
	Repeat  ToggleIcons
	Single  ToggleIcons
}

// Default icon strings.
const (
	DefaultState   = "▶⏸⏹"
	DefaultConsume = "c"
	DefaultRandom  = "z"
	DefaultRepeat  = "r"
	DefaultSingle  = "1"
)

// ParseStateIcons parses exactly three characters: play, pause, stop.
func ParseStateIcons(s string) (StateIcons, error) {
	chars, err := split(s, 3, 3)
	if err != nil {
		return StateIcons{}, err
	}
	return StateIcons{Play: chars[0], Pause: chars[1], Stop: chars[2]}, nil
}

// ParseToggleIcons parses one or two characters: enabled and optionally disabled.
func ParseToggleIcons(s string) (ToggleIcons, error) {
	chars, err := split(s, 1, 2)
	if err != nil {
		return ToggleIcons{}, err
	}
	icons := ToggleIcons{Enabled: chars[0]}
	if len(chars) == 2 {
		icons.Disabled = chars[1]
	}
	return icons, nil
}

// Config holds the raw icon strings, as read from configuration.
type Config struct {
	State   string
	Consume string
	Random  string
	Repeat  string
	Single  string
}

// Parse builds a Set from raw icon strings. The error names the offending field.
func Parse(c Config) (Set, error) {
	var (
		set Set
		err error
	)
	if set.State, err = ParseStateIcons(c.State); err != nil {
		return Set{}, fmt.Errorf("state icons: %w", err)
	}
	toggles := []struct {
		name string
		raw  string
		dst  *ToggleIcons
	}{
		{"consume", c.Consume, &set.Consume},
		{"random", c.Random, &set.Random},
		{"repeat", c.Repeat, &set.Repeat},
		{"single", c.Single, &set.Single},
	}
	for _, t := range toggles {
		if *t.dst, err = ParseToggleIcons(t.raw); err != nil {
			return Set{}, fmt.Errorf("%s icons: %w", t.name, err)
		}
	}
	return set, nil
}

// split breaks s into user-perceived characters, requiring between
// minCount and maxCount of them.
func split(s string, minCount, maxCount int) ([]string, error) {
	var chars []string
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		if len(chars) == maxCount {
			return nil, &IconCountError{Expected: maxCount, TooMany: true}
		}
		chars = append(chars, gr.Str())
	}
	if len(chars) < minCount {
		return nil, &IconCountError{Expected: maxCount}
	}
	return chars, nil
}

func writePad(b *strings.Builder, pad int) {
	for range pad {
		b.WriteByte(' ')
	}
}
