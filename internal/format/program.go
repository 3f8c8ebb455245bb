package format

import (
	"fmt"
	"strings"

	"github.com/llehouerou/statusline/internal/icons"
	"github.com/llehouerou/statusline/internal/playback"
)

// Program is a parsed template: placeholders in rendering order.
// Programs are not modified after parsing.
type Program []Placeholder

// Text returns a program that always renders s.
func Text(s string) Program {
	if s == "" {
		return nil
	}
	return Program{Literal{Text: s}}
}

// Options are the rendering settings shared by every program.
// They are built once at startup and only read afterwards.
type Options struct {
	Icons icons.Set
	// Default is shown in place of missing data.
	Default string
}

var braceEscaper = strings.NewReplacer("{", "{{", "}", "}}")

// String returns the canonical template of the program. Literal braces are
// escaped and placeholders are written by bare name: time patterns and pad
// counts are not kept.
func (p Program) String() string {
	var b strings.Builder
	for _, ph := range p {
		if lit, ok := ph.(Literal); ok {
			_, _ = braceEscaper.WriteString(&b, lit.Text)
			continue
		}
		b.WriteByte('{')
		b.WriteString(ph.Name())
		b.WriteByte('}')
	}
	return b.String()
}

// Render appends the program rendered against s to b.
func (p Program) Render(b *strings.Builder, s *playback.Snapshot, opts *Options) error {
	for _, ph := range p {
		if err := ph.write(b, s, opts); err != nil {
			return fmt.Errorf("render {%s}: %w", ph.Name(), err)
		}
	}
	return nil
}

// RenderString renders the program against s into a new string.
func (p Program) RenderString(s *playback.Snapshot, opts *Options) (string, error) {
	var b strings.Builder
	if err := p.Render(&b, s, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Changed reports whether any placeholder resolves differently against
// prev and cur.
func (p Program) Changed(prev, cur *playback.Snapshot) bool {
	for _, ph := range p {
		if ph.Resolve(prev) != ph.Resolve(cur) {
			return true
		}
	}
	return false
}
