//go:build !linux

package mpris

import (
	"errors"

	"github.com/llehouerou/statusline/internal/playback"
)

// Source is unavailable on non-Linux platforms.
type Source struct{}

// New always fails on non-Linux platforms.
func New(_ string) (*Source, error) {
	return nil, errors.New("mpris is only supported on linux")
}

// Fetch is never reached on non-Linux platforms.
func (s *Source) Fetch() (playback.Snapshot, error) {
	return playback.Snapshot{}, errors.New("mpris is only supported on linux")
}

// Close is a no-op on non-Linux platforms.
func (s *Source) Close() error {
	return nil
}
