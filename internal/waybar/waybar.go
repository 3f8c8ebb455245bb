// Package waybar writes the status line in the JSON line protocol of
// waybar's custom modules: one JSON object per line on stdout.
package waybar

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/llehouerou/statusline/internal/format"
	"github.com/llehouerou/statusline/internal/playback"
	"github.com/llehouerou/statusline/internal/refresh"
	"github.com/llehouerou/statusline/internal/render"
)

// Line is one status update.
type Line struct {
	Text    string `json:"text"`
	Tooltip string `json:"tooltip,omitempty"`
	Class   string `json:"class,omitempty"`
	Alt     string `json:"alt,omitempty"`
}

// Writer composes lines from a refresh controller and writes them when
// they differ from the last written one.
type Writer struct {
	enc      *json.Encoder
	tooltip  format.Program
	maxWidth int

	last     Line
	lastSnap playback.Snapshot // snapshot of the last successful update
	pending  refresh.Change    // sections changed since then
	written  bool
}

// NewWriter creates a Writer. tooltip may be nil for no tooltip; a static
// tooltip is a literal-only program. maxWidth limits the display width of
// the main text, zero meaning unlimited.
func NewWriter(w io.Writer, tooltip format.Program, maxWidth int) *Writer {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &Writer{enc: enc, tooltip: tooltip, maxWidth: maxWidth}
}

// Compose builds the line for the controller's current state.
// The tooltip program is rendered in full against the stored snapshot.
func (w *Writer) Compose(c *refresh.Controller) (Line, error) {
	snap := c.Snapshot()
	tooltip, err := w.tooltip.RenderString(&snap, c.Options())
	if err != nil {
		return Line{}, fmt.Errorf("tooltip: %w", err)
	}
	main := render.Truncate(render.Sanitize(c.Main()), w.maxWidth)
	return Line{
		Text:    render.Sanitize(c.Prefix()) + main + render.Sanitize(c.Suffix()),
		Tooltip: render.Sanitize(tooltip),
		Class:   snap.State.Class(),
		Alt:     snap.State.Class(),
	}, nil
}

// Update writes the current line if it differs from the previous one.
// change is what the controller re-rendered since the last call; when it
// is empty and neither the tooltip values nor the state changed, the line
// is not composed at all. It reports whether a line was written.
func (w *Writer) Update(c *refresh.Controller, change refresh.Change) (bool, error) {
	snap := c.Snapshot()
	w.pending |= change
	if w.written && w.pending == refresh.ChangeNone && !w.stale(&snap) {
		return false, nil
	}
	line, err := w.Compose(c)
	if err != nil {
		return false, err
	}
	wrote := false
	if !w.written || line != w.last {
		if err := w.Write(line); err != nil {
			return false, err
		}
		wrote = true
	}
	w.pending = refresh.ChangeNone
	w.lastSnap = snap
	return wrote, nil
}

// stale reports whether parts of the line outside the controller's
// sections differ between the last composed snapshot and snap.
func (w *Writer) stale(snap *playback.Snapshot) bool {
	return snap.State != w.lastSnap.State || w.tooltip.Changed(&w.lastSnap, snap)
}

// Write writes line unconditionally.
func (w *Writer) Write(line Line) error {
	if err := w.enc.Encode(line); err != nil {
		return err
	}
	w.last = line
	w.written = true
	return nil
}
