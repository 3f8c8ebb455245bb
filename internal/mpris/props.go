// Package mpris implements a playback.Source that reads an MPRIS media
// player over D-Bus.
package mpris

import (
	"math"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/statusline/internal/playback"
)

const playerInterface = "org.mpris.MediaPlayer2.Player"

// snapshotFromProps maps the properties of org.mpris.MediaPlayer2.Player.
// MPRIS has no consume mode and no queue, so those stay zero.
func snapshotFromProps(props map[string]dbus.Variant) playback.Snapshot {
	snap := playback.Snapshot{Volume: -1}

	if v, ok := stringProp(props, "PlaybackStatus"); ok {
		switch types.PlaybackStatus(v) {
		case types.PlaybackStatusPlaying:
			snap.State = playback.StatePlaying
		case types.PlaybackStatusPaused:
			snap.State = playback.StatePaused
		default:
			snap.State = playback.StateStopped
		}
	}

	if v, ok := props["Volume"].Value().(float64); ok {
		snap.Volume = int(math.Round(v * 100))
	}
	if v, ok := props["Shuffle"].Value().(bool); ok {
		snap.Random = v
	}
	if v, ok := stringProp(props, "LoopStatus"); ok {
		switch types.LoopStatus(v) {
		case types.LoopStatusTrack:
			snap.Repeat, snap.Single = true, true
		case types.LoopStatusPlaylist:
			snap.Repeat = true
		}
	}
	if d, ok := micros(props["Position"]); ok && snap.State.IsActive() {
		snap.Elapsed = playback.Some(d)
	}

	meta, ok := props["Metadata"].Value().(map[string]dbus.Variant)
	if !ok || len(meta) == 0 {
		return snap
	}
	if d, ok := micros(meta["mpris:length"]); ok {
		snap.Duration = playback.Some(d)
	}
	snap.Song = &playback.Song{
		Artist:      listTag(meta, "xesam:artist"),
		AlbumArtist: listTag(meta, "xesam:albumArtist"),
		Album:       textTag(meta, "xesam:album"),
		Title:       textTag(meta, "xesam:title"),
		Filename:    textTag(meta, "xesam:url"),
		Date:        textTag(meta, "xesam:contentCreated"),
	}
	return snap
}

func stringProp(props map[string]dbus.Variant, key string) (string, bool) {
	v, ok := props[key]
	if !ok {
		return "", false
	}
	s, ok := v.Value().(string)
	return s, ok
}

func textTag(meta map[string]dbus.Variant, key string) playback.Optional[string] {
	if s, ok := stringProp(meta, key); ok {
		return playback.Some(s)
	}
	return playback.None[string]()
}

// listTag joins multi-valued tags such as xesam:artist.
func listTag(meta map[string]dbus.Variant, key string) playback.Optional[string] {
	v, ok := meta[key]
	if !ok {
		return playback.None[string]()
	}
	switch list := v.Value().(type) {
	case []string:
		if len(list) == 0 {
			return playback.None[string]()
		}
		return playback.Some(strings.Join(list, ", "))
	case string:
		return playback.Some(list)
	}
	return playback.None[string]()
}

// micros reads a duration in microseconds. Players disagree on the integer type.
func micros(v dbus.Variant) (time.Duration, bool) {
	var us int64
	switch n := v.Value().(type) {
	case int64:
		us = n
	case uint64:
		if n > math.MaxInt64/uint64(time.Microsecond) {
			return 0, false
		}
		us = int64(n) //nolint:gosec // bounded above
	case int32:
		us = int64(n)
	case uint32:
		us = int64(n)
	default:
		return 0, false
	}
	if us < 0 || us > math.MaxInt64/int64(time.Microsecond) {
		return 0, false
	}
	return time.Duration(us) * time.Microsecond, true
}
