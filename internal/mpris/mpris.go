//go:build linux

package mpris

import (
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/llehouerou/statusline/internal/playback"
)

const (
	objectPath       = "/org/mpris/MediaPlayer2"
	propertiesGetAll = "org.freedesktop.DBus.Properties.GetAll"
)

// Source reads snapshots from an MPRIS player on the session bus.
type Source struct {
	player string
	conn   *dbus.Conn
	obj    dbus.BusObject
}

// New connects to the session bus. player is the bus name of the player,
// e.g. "org.mpris.MediaPlayer2.spotify".
func New(player string) (*Source, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("d-bus connection error: %w", err)
	}
	return &Source{
		player: player,
		conn:   conn,
		obj:    conn.Object(player, objectPath),
	}, nil
}

// Fetch reads every property of the player interface.
func (s *Source) Fetch() (playback.Snapshot, error) {
	var props map[string]dbus.Variant
	call := s.obj.Call(propertiesGetAll, 0, playerInterface)
	if call.Err != nil {
		return playback.Snapshot{}, fmt.Errorf("%s: %w", s.player, call.Err)
	}
	if err := call.Store(&props); err != nil {
		return playback.Snapshot{}, fmt.Errorf("%s: %w", s.player, err)
	}
	return snapshotFromProps(props), nil
}

// Close closes the bus connection.
func (s *Source) Close() error {
	return s.conn.Close()
}
