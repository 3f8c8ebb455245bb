// Package mpd implements a playback.Source backed by an MPD server.
package mpd

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/fhs/gompd/v2/mpd"

	"github.com/llehouerou/statusline/internal/config"
	"github.com/llehouerou/statusline/internal/playback"
)

// Source fetches snapshots from MPD with the status and currentsong
// commands. The connection is opened on first use and reopened on the
// fetch after a failure.
type Source struct {
	network  string
	address  string
	password string

	client *mpd.Client
}

// New creates a Source for the configured server. It does not connect.
func New(cfg config.MPDConfig) *Source {
	network := "tcp"
	if strings.HasPrefix(cfg.Address, "/") {
		network = "unix"
	}
	return &Source{network: network, address: cfg.Address, password: cfg.Password}
}

// Connect opens the connection if it is not open yet.
func (s *Source) Connect() error {
	if s.client != nil {
		return nil
	}
	var (
		c   *mpd.Client
		err error
	)
	if s.password != "" {
		c, err = mpd.DialAuthenticated(s.network, s.address, s.password)
	} else {
		c, err = mpd.Dial(s.network, s.address)
	}
	if err != nil {
		return fmt.Errorf("mpd connection error: %w", err)
	}
	s.client = c
	return nil
}

// Fetch returns the current player state.
func (s *Source) Fetch() (playback.Snapshot, error) {
	if err := s.Connect(); err != nil {
		return playback.Snapshot{}, err
	}
	status, err := s.client.Status()
	if err != nil {
		s.drop()
		return playback.Snapshot{}, fmt.Errorf("mpd server error: %w", err)
	}
	song, err := s.client.CurrentSong()
	if err != nil {
		s.drop()
		return playback.Snapshot{}, fmt.Errorf("mpd server error: %w", err)
	}
	return snapshotFromAttrs(status, song), nil
}

// Close closes the connection.
func (s *Source) Close() error {
	if s.client == nil {
		return nil
	}
	err := s.client.Close()
	s.client = nil
	return err
}

func (s *Source) drop() {
	_ = s.Close()
}

// snapshotFromAttrs maps the replies of status and currentsong.
func snapshotFromAttrs(status, song mpd.Attrs) playback.Snapshot {
	snap := playback.Snapshot{
		Volume:   -1,
		QueueLen: parseUint(status["playlistlength"]),
		State:    parseState(status["state"]),
		Consume:  status["consume"] == "1",
		Random:   status["random"] == "1",
		Repeat:   status["repeat"] == "1",
		Single:   status["single"] == "1" || status["single"] == "oneshot",
	}
	if v, err := strconv.Atoi(status["volume"]); err == nil {
		snap.Volume = v
	}

	elapsed, total := parseTime(status["time"])
	if d, ok := parseSeconds(status["elapsed"]); ok {
		elapsed = playback.Some(d)
	}
	if d, ok := parseSeconds(status["duration"]); ok {
		total = playback.Some(d)
	}
	snap.Elapsed, snap.Duration = elapsed, total

	pos, posErr := strconv.ParseUint(status["song"], 10, 32)
	id, idErr := strconv.ParseUint(status["songid"], 10, 32)
	if posErr == nil && idErr == nil {
		snap.Position = playback.Some(playback.QueuePlace{ID: uint32(id), Pos: uint32(pos)})
	}

	if len(song) > 0 {
		snap.Song = &playback.Song{
			Artist:      tag(song, "Artist"),
			AlbumArtist: tag(song, "AlbumArtist"),
			Album:       tag(song, "Album"),
			Title:       tag(song, "Title"),
			Filename:    tag(song, "file"),
			Date:        tag(song, "Date"),
		}
	}
	return snap
}

func tag(attrs mpd.Attrs, key string) playback.Optional[string] {
	if v, ok := attrs[key]; ok {
		return playback.Some(v)
	}
	return playback.None[string]()
}

func parseState(s string) playback.State {
	switch s {
	case "play":
		return playback.StatePlaying
	case "pause":
		return playback.StatePaused
	default:
		return playback.StateStopped
	}
}

func parseUint(s string) uint32 {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0
	}
	return uint32(n)
}

// parseSeconds parses fractional seconds such as "83.412".
func parseSeconds(s string) (time.Duration, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0, false
	}
	return time.Duration(math.Round(f * float64(time.Second))), true
}

// parseTime parses the legacy "elapsed:total" time attribute.
func parseTime(s string) (elapsed, total playback.Optional[time.Duration]) {
	e, t, ok := strings.Cut(s, ":")
	if !ok {
		return elapsed, total
	}
	if d, ok := parseSeconds(e); ok {
		elapsed = playback.Some(d)
	}
	if d, ok := parseSeconds(t); ok {
		total = playback.Some(d)
	}
	return elapsed, total
}
