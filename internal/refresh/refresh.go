// Package refresh keeps the rendered prefix, main text and suffix of the
// status line up to date, re-rendering only the sections whose placeholders
// resolve to different values since the previous snapshot.
//
// A Controller is driven by a single goroutine and is not safe for
// concurrent use.
package refresh

import (
	"strings"

	"github.com/llehouerou/statusline/internal/format"
	"github.com/llehouerou/statusline/internal/playback"
)

// Change is the set of sections re-rendered by a tick.
type Change uint8

const (
	ChangePrefix Change = 1 << iota
	ChangeSuffix
	ChangeMain

	ChangeNone Change = 0
	ChangeAll         = ChangePrefix | ChangeSuffix | ChangeMain
)

// Has reports whether all sections in other are in c.
func (c Change) Has(other Change) bool {
	return c&other == other
}

// String returns the changed section names, for logging.
func (c Change) String() string {
	if c == ChangeNone {
		return "none"
	}
	var parts []string
	for _, s := range sections {
		if c.Has(s.change) {
			parts = append(parts, s.name)
		}
	}
	return strings.Join(parts, "|")
}

// Sections holds the program of each output section.
type Sections struct {
	Prefix format.Program
	Main   format.Program
	Suffix format.Program
}

type section struct {
	name   string
	change Change
	prog   func(*Sections) format.Program
}

// sections lists the sections in rendering order.
var sections = []section{
	{"prefix", ChangePrefix, func(s *Sections) format.Program { return s.Prefix }},
	{"suffix", ChangeSuffix, func(s *Sections) format.Program { return s.Suffix }},
	{"main", ChangeMain, func(s *Sections) format.Program { return s.Main }},
}

// RenderError reports the section whose program failed to render.
type RenderError struct {
	Section string
	Err     error
}

func (e *RenderError) Error() string { return e.Section + ": " + e.Err.Error() }

func (e *RenderError) Unwrap() error { return e.Err }

// Controller owns the last snapshot and the rendered text of each section.
type Controller struct {
	programs Sections
	opts     *format.Options
	snapshot playback.Snapshot
	buffers  [3]string // indexed like sections
}

// New creates a controller and renders every section against initial.
func New(programs Sections, opts *format.Options, initial playback.Snapshot) (*Controller, error) {
	c := &Controller{programs: programs, opts: opts}
	if err := c.render(ChangeAll, initial); err != nil {
		return nil, err
	}
	return c, nil
}

// Tick compares s with the stored snapshot, re-renders the sections whose
// values changed and stores s. On error nothing is modified: the previous
// text and snapshot stay in place.
func (c *Controller) Tick(s playback.Snapshot) (Change, error) {
	change := ChangeNone
	for _, sec := range sections {
		if sec.prog(&c.programs).Changed(&c.snapshot, &s) {
			change |= sec.change
		}
	}
	if err := c.render(change, s); err != nil {
		return ChangeNone, err
	}
	return change, nil
}

// Poll fetches a snapshot from src and ticks with it.
// Fetch errors are returned as they are.
func (c *Controller) Poll(src playback.Source) (Change, error) {
	s, err := src.Fetch()
	if err != nil {
		return ChangeNone, err
	}
	return c.Tick(s)
}

// render renders the sections in change against s, then commits the new
// text together with s.
func (c *Controller) render(change Change, s playback.Snapshot) error {
	next := c.buffers
	for i, sec := range sections {
		if !change.Has(sec.change) {
			continue
		}
		text, err := sec.prog(&c.programs).RenderString(&s, c.opts)
		if err != nil {
			return &RenderError{Section: sec.name, Err: err}
		}
		next[i] = text
	}
	c.buffers = next
	c.snapshot = s
	return nil
}

// Prefix returns the rendered prefix.
func (c *Controller) Prefix() string { return c.buffers[0] }

// Suffix returns the rendered suffix.
func (c *Controller) Suffix() string { return c.buffers[1] }

// Main returns the rendered main text.
func (c *Controller) Main() string { return c.buffers[2] }

// Text returns prefix, main text and suffix joined.
func (c *Controller) Text() string {
	return c.Prefix() + c.Main() + c.Suffix()
}

// Snapshot returns the last stored snapshot.
func (c *Controller) Snapshot() playback.Snapshot { return c.snapshot }

// Options returns the rendering options.
func (c *Controller) Options() *format.Options { return c.opts }
