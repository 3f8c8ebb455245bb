package playback

import "time"

// Optional holds a value that the player may not report.
// The zero value is absent. Optional is comparable when T is.
type Optional[T comparable] struct {
	Value T
	Set   bool
}

// Some returns a present Optional holding v.
func Some[T comparable](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// None returns an absent Optional.
func None[T comparable]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Set
}

// Song is the metadata of the current song. Every tag may be missing.
type Song struct {
	Artist      Optional[string]
	AlbumArtist Optional[string]
	Album       Optional[string]
	Title       Optional[string]
	Filename    Optional[string]
	Date        Optional[string]
}

// QueuePlace locates the current song in the play queue.
type QueuePlace struct {
	ID  uint32 // stable song id
	Pos uint32 // zero-based position
}

// Snapshot is one fetched instant of player state.
// Snapshots are values: a new one is fetched each tick and never mutated.
type Snapshot struct {
	Song *Song // nil when nothing is current

	// Volume is passed through as reported. MPD uses -1 when no mixer is
	// available; that sentinel is not interpreted here.
	Volume int

	Elapsed  Optional[time.Duration]
	Duration Optional[time.Duration]
	Position Optional[QueuePlace]
	QueueLen uint32
	State    State

	Consume bool
	Random  bool
	Repeat  bool
	Single  bool
}

// song returns the current song or an empty one so tag lookups stay total.
func (s *Snapshot) song() Song {
	if s == nil || s.Song == nil {
		return Song{}
	}
	return *s.Song
}

// Artist returns the artist tag of the current song.
func (s *Snapshot) Artist() Optional[string] { return s.song().Artist }

// AlbumArtist returns the album artist tag of the current song.
func (s *Snapshot) AlbumArtist() Optional[string] { return s.song().AlbumArtist }

// Album returns the album tag of the current song.
func (s *Snapshot) Album() Optional[string] { return s.song().Album }

// Title returns the title tag of the current song.
func (s *Snapshot) Title() Optional[string] { return s.song().Title }

// Filename returns the file of the current song.
func (s *Snapshot) Filename() Optional[string] { return s.song().Filename }

// Date returns the date tag of the current song.
func (s *Snapshot) Date() Optional[string] { return s.song().Date }
