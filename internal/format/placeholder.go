package format

import (
	"strconv"
	"strings"
	"time"

	"github.com/llehouerou/statusline/internal/playback"
)

// Canonical placeholder names.
const (
	nameArtist       = "artist"
	nameAlbumArtist  = "albumArtist"
	nameAlbum        = "album"
	nameTitle        = "title"
	nameFilename     = "filename"
	nameDate         = "date"
	nameVolume       = "volume"
	nameSongPosition = "songPosition"
	nameQueueLength  = "queueLength"
	nameElapsedTime  = "elapsedTime"
	nameTotalTime    = "totalTime"
	nameStateIcon    = "stateIcon"
	nameConsumeIcon  = "consumeIcon"
	nameRandomIcon   = "randomIcon"
	nameRepeatIcon   = "repeatIcon"
	nameSingleIcon   = "singleIcon"
)

// Placeholder is one entry of a Program. The set of implementations is
// closed: each kind resolves and writes itself, so adding a kind means
// implementing every method.
type Placeholder interface {
	// Name returns the canonical bare name. Literals have none.
	Name() string
	// Resolve computes the comparable value of the placeholder.
	Resolve(s *playback.Snapshot) Value
	write(b *strings.Builder, s *playback.Snapshot, opts *Options) error
}

// Literal is fixed text between placeholders.
type Literal struct {
	Text string
}

type (
	Artist       struct{}
	AlbumArtist  struct{}
	Album        struct{}
	Title        struct{}
	Filename     struct{}
	Date         struct{}
	Volume       struct{}
	SongPosition struct{}
	QueueLength  struct{}
)

// ElapsedTime shows the elapsed time of the current song.
type ElapsedTime struct {
	Pattern *TimePattern
}

// TotalTime shows the duration of the current song.
type TotalTime struct {
	Pattern *TimePattern
}

// StateIcon shows the playback state icon followed by Pad spaces.
type StateIcon struct {
	Pad int
}

// ConsumeIcon shows the consume mode icon followed by Pad spaces.
type ConsumeIcon struct {
	Pad int
}

// RandomIcon shows the random mode icon followed by Pad spaces.
type RandomIcon struct {
	Pad int
}

// RepeatIcon shows the repeat mode icon followed by Pad spaces.
type RepeatIcon struct {
	Pad int
}

// SingleIcon shows the single mode icon followed by Pad spaces.
type SingleIcon struct {
	Pad int
}

func (Literal) Name() string      { return "" }
func (Artist) Name() string       { return nameArtist }
func (AlbumArtist) Name() string  { return nameAlbumArtist }
func (Album) Name() string        { return nameAlbum }
func (Title) Name() string        { return nameTitle }
func (Filename) Name() string     { return nameFilename }
func (Date) Name() string         { return nameDate }
func (Volume) Name() string       { return nameVolume }
func (SongPosition) Name() string { return nameSongPosition }
func (QueueLength) Name() string  { return nameQueueLength }
func (ElapsedTime) Name() string  { return nameElapsedTime }
func (TotalTime) Name() string    { return nameTotalTime }
func (StateIcon) Name() string    { return nameStateIcon }
func (ConsumeIcon) Name() string  { return nameConsumeIcon }
func (RandomIcon) Name() string   { return nameRandomIcon }
func (RepeatIcon) Name() string   { return nameRepeatIcon }
func (SingleIcon) Name() string   { return nameSingleIcon }

func (p Literal) Resolve(*playback.Snapshot) Value { return TextValue{Text: p.Text} }

func (Artist) Resolve(s *playback.Snapshot) Value      { return OptionalText{Text: s.Artist()} }
func (AlbumArtist) Resolve(s *playback.Snapshot) Value { return OptionalText{Text: s.AlbumArtist()} }
func (Album) Resolve(s *playback.Snapshot) Value       { return OptionalText{Text: s.Album()} }
func (Title) Resolve(s *playback.Snapshot) Value       { return OptionalText{Text: s.Title()} }
func (Filename) Resolve(s *playback.Snapshot) Value    { return OptionalText{Text: s.Filename()} }
func (Date) Resolve(s *playback.Snapshot) Value        { return OptionalText{Text: s.Date()} }

func (Volume) Resolve(s *playback.Snapshot) Value { return IntValue{N: s.Volume} }

func (SongPosition) Resolve(s *playback.Snapshot) Value {
	return OptionalQueuePlace{Place: s.Position}
}

func (QueueLength) Resolve(s *playback.Snapshot) Value { return CountValue{N: s.QueueLen} }

func (p ElapsedTime) Resolve(s *playback.Snapshot) Value {
	return OptionalDuration{D: s.Elapsed, Pattern: p.Pattern}
}

func (p TotalTime) Resolve(s *playback.Snapshot) Value {
	return OptionalDuration{D: s.Duration, Pattern: p.Pattern}
}

func (p StateIcon) Resolve(s *playback.Snapshot) Value {
	return StateValue{State: s.State, Pad: p.Pad}
}

func (ConsumeIcon) Resolve(s *playback.Snapshot) Value { return BoolValue{On: s.Consume} }
func (RandomIcon) Resolve(s *playback.Snapshot) Value  { return BoolValue{On: s.Random} }
func (RepeatIcon) Resolve(s *playback.Snapshot) Value  { return BoolValue{On: s.Repeat} }
func (SingleIcon) Resolve(s *playback.Snapshot) Value  { return BoolValue{On: s.Single} }

func (p Literal) write(b *strings.Builder, _ *playback.Snapshot, _ *Options) error {
	b.WriteString(p.Text)
	return nil
}

func (Artist) write(b *strings.Builder, s *playback.Snapshot, opts *Options) error {
	return writeText(b, s.Artist(), opts)
}

func (AlbumArtist) write(b *strings.Builder, s *playback.Snapshot, opts *Options) error {
	return writeText(b, s.AlbumArtist(), opts)
}

func (Album) write(b *strings.Builder, s *playback.Snapshot, opts *Options) error {
	return writeText(b, s.Album(), opts)
}

func (Title) write(b *strings.Builder, s *playback.Snapshot, opts *Options) error {
	return writeText(b, s.Title(), opts)
}

func (Filename) write(b *strings.Builder, s *playback.Snapshot, opts *Options) error {
	return writeText(b, s.Filename(), opts)
}

func (Date) write(b *strings.Builder, s *playback.Snapshot, opts *Options) error {
	return writeText(b, s.Date(), opts)
}

func (Volume) write(b *strings.Builder, s *playback.Snapshot, _ *Options) error {
	b.WriteString(strconv.Itoa(s.Volume))
	return nil
}

func (SongPosition) write(b *strings.Builder, s *playback.Snapshot, opts *Options) error {
	place, ok := s.Position.Get()
	if !ok {
		b.WriteString(opts.Default)
		return nil
	}
	b.WriteString(strconv.FormatUint(uint64(place.ID), 10))
	return nil
}

func (QueueLength) write(b *strings.Builder, s *playback.Snapshot, _ *Options) error {
	b.WriteString(strconv.FormatUint(uint64(s.QueueLen), 10))
	return nil
}

func (p ElapsedTime) write(b *strings.Builder, s *playback.Snapshot, opts *Options) error {
	return writeDuration(b, p.Pattern, s.Elapsed, opts)
}

func (p TotalTime) write(b *strings.Builder, s *playback.Snapshot, opts *Options) error {
	return writeDuration(b, p.Pattern, s.Duration, opts)
}

func (p StateIcon) write(b *strings.Builder, s *playback.Snapshot, opts *Options) error {
	opts.Icons.State.Write(b, s.State, p.Pad)
	return nil
}

func (p ConsumeIcon) write(b *strings.Builder, s *playback.Snapshot, opts *Options) error {
	opts.Icons.Consume.Write(b, s.Consume, p.Pad)
	return nil
}

func (p RandomIcon) write(b *strings.Builder, s *playback.Snapshot, opts *Options) error {
	opts.Icons.Random.Write(b, s.Random, p.Pad)
	return nil
}

func (p RepeatIcon) write(b *strings.Builder, s *playback.Snapshot, opts *Options) error {
	opts.Icons.Repeat.Write(b, s.Repeat, p.Pad)
	return nil
}

func (p SingleIcon) write(b *strings.Builder, s *playback.Snapshot, opts *Options) error {
	opts.Icons.Single.Write(b, s.Single, p.Pad)
	return nil
}

func writeText(b *strings.Builder, text playback.Optional[string], opts *Options) error {
	if v, ok := text.Get(); ok {
		b.WriteString(v)
	} else {
		b.WriteString(opts.Default)
	}
	return nil
}

func writeDuration(
	b *strings.Builder,
	pattern *TimePattern,
	d playback.Optional[time.Duration],
	opts *Options,
) error {
	v, ok := d.Get()
	if !ok {
		b.WriteString(opts.Default)
		return nil
	}
	if pattern == nil {
		pattern = defaultPattern
	}
	return pattern.Format(b, v)
}
