package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/statusline/internal/config"
	"github.com/llehouerou/statusline/internal/format"
	"github.com/llehouerou/statusline/internal/icons"
	"github.com/llehouerou/statusline/internal/playback"
	"github.com/llehouerou/statusline/internal/refresh"
	"github.com/llehouerou/statusline/internal/waybar"
)

type fakeSource struct {
	snap playback.Snapshot
	err  error
}

func (f *fakeSource) Fetch() (playback.Snapshot, error) { return f.snap, f.err }
func (f *fakeSource) Close() error                      { return nil }

func TestBuild_Defaults(t *testing.T) {
	a, err := build(config.Default())
	require.NoError(t, err)

	assert.Empty(t, a.sections.Prefix)
	assert.Equal(t, config.DefaultMain, a.sections.Main.String())
	assert.Equal(t, config.DefaultSuffix, a.sections.Suffix.String())
	assert.Nil(t, a.tooltip)
	assert.Equal(t, "N/A", a.opts.Default)
	assert.Equal(t, "▶", a.opts.Icons.State.Play)
}

func TestBuild_Tooltip(t *testing.T) {
	cfg := config.Default()
	cfg.Tooltip.Text = "static {text}"
	a, err := build(cfg)
	require.NoError(t, err)
	assert.Equal(t, "static {{text}}", a.tooltip.String())

	cfg.Tooltip.Format = "{album}"
	a, err = build(cfg)
	require.NoError(t, err)
	assert.Equal(t, "{album}", a.tooltip.String())
}

func TestBuild_Errors(t *testing.T) {
	t.Run("main template", func(t *testing.T) {
		cfg := config.Default()
		cfg.Format.Main = "{artist"
		_, err := build(cfg)
		require.ErrorIs(t, err, format.ErrUnmatchedDelimiter)
		assert.Contains(t, err.Error(), "'main'")
	})

	t.Run("tooltip template", func(t *testing.T) {
		cfg := config.Default()
		cfg.Tooltip.Format = "{nope}"
		_, err := build(cfg)
		var unknown *format.UnknownPlaceholderError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "nope", unknown.Name)
	})

	t.Run("icons", func(t *testing.T) {
		cfg := config.Default()
		cfg.Icons.State = "ab"
		_, err := build(cfg)
		require.ErrorIs(t, err, icons.ErrTooFewIcons)
	})
}

func TestPrintCheck(t *testing.T) {
	cfg := config.Default()
	cfg.Format.Prefix = "{{{elapsedTime:%S}}}"
	a, err := build(cfg)
	require.NoError(t, err)

	var buf bytes.Buffer
	printCheck(&buf, a)
	assert.Contains(t, buf.String(), `prefix:  "{{{elapsedTime}}}"`)
	assert.Contains(t, buf.String(), `main:    "{artist} - {title}"`)
}

func TestRun_WritesLine(t *testing.T) {
	a, err := build(config.Default())
	require.NoError(t, err)

	src := &fakeSource{snap: playback.Snapshot{
		Song: &playback.Song{
			Artist: playback.Some("Pink Floyd"),
			Title:  playback.Some("Time"),
		},
		Elapsed:  playback.Some(65 * time.Second),
		Duration: playback.Some(200 * time.Second),
		State:    playback.StatePlaying,
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	run(ctx, config.Default(), a, src, waybar.NewWriter(&buf, a.tooltip, 0))

	assert.Equal(t,
		`{"text":"Pink Floyd - Time [01:05/03:20] ▶","class":"playing","alt":"playing"}`+"\n",
		buf.String())
}

// scriptedSource returns its snapshots in order, repeating the last one,
// and calls done once all were fetched.
type scriptedSource struct {
	snaps []playback.Snapshot
	n     int
	done  func()
}

func (s *scriptedSource) Fetch() (playback.Snapshot, error) {
	snap := s.snaps[min(s.n, len(s.snaps)-1)]
	s.n++
	if s.n >= len(s.snaps) {
		s.done()
	}
	return snap, nil
}

func (s *scriptedSource) Close() error { return nil }

func TestRun_PollsAfterFirstFetch(t *testing.T) {
	cfg := config.Default()
	cfg.Interval = time.Millisecond
	a, err := build(cfg)
	require.NoError(t, err)

	titled := func(title string) playback.Snapshot {
		return playback.Snapshot{
			Song:  &playback.Song{Artist: playback.Some("Pink Floyd"), Title: playback.Some(title)},
			State: playback.StatePaused,
		}
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	src := &scriptedSource{snaps: []playback.Snapshot{titled("Dogs"), titled("Sheep")}, done: cancel}

	var buf bytes.Buffer
	run(ctx, cfg, a, src, waybar.NewWriter(&buf, nil, 0))

	assert.Equal(t,
		`{"text":"Pink Floyd - Dogs [N/A/N/A] ⏸","class":"paused","alt":"paused"}`+"\n"+
			`{"text":"Pink Floyd - Sheep [N/A/N/A] ⏸","class":"paused","alt":"paused"}`+"\n",
		buf.String())
}

func TestTickError(t *testing.T) {
	cause := format.ErrUnsupportedTime
	err := tickError(&refresh.RenderError{Section: "suffix", Err: cause})
	require.ErrorIs(t, err, cause)
	assert.Equal(t, "Failed to render status 'suffix': "+cause.Error(), err.Error())

	fetchErr := errors.New("connection refused")
	err = tickError(fetchErr)
	require.ErrorIs(t, err, fetchErr)
	assert.Equal(t, "Failed to fetch player status: connection refused", err.Error())
}

func TestRun_FetchErrorWritesNothing(t *testing.T) {
	a, err := build(config.Default())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	run(ctx, config.Default(), a, &fakeSource{err: errors.New("offline")}, waybar.NewWriter(&buf, nil, 0))
	assert.Empty(t, buf.String())
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"Error", slog.LevelError},
		{"", slog.LevelInfo},
		{"loud", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.in))
		})
	}
}
