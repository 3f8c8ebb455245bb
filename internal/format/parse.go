package format

import (
	"strconv"
	"strings"
)

// Parse parses a template into a Program.
// Placeholders are {name} or {name:argument}; {{ and }} are literal braces.
// The scan runs left to right without backtracking and stops at the first
// error; no partial program is returned.
func Parse(template string) (Program, error) {
	var (
		prog Program
		raw  strings.Builder
	)
	flush := func() {
		if raw.Len() > 0 {
			prog = append(prog, Literal{Text: raw.String()})
			raw.Reset()
		}
	}

	rest := template
	for rest != "" {
		i := strings.IndexAny(rest, "{}")
		if i < 0 {
			raw.WriteString(rest)
			break
		}

		escaped := i+1 < len(rest) && rest[i+1] == rest[i]
		if rest[i] == '}' && !escaped {
			// No placeholder is open here, so a lone '}' is always stray.
			return nil, ErrUnmatchedDelimiter
		}
		if escaped {
			raw.WriteString(rest[:i+1])
			rest = rest[i+2:]
			continue
		}

		// Opening brace of a placeholder.
		raw.WriteString(rest[:i])
		flush()
		rest = rest[i+1:]

		end := strings.IndexAny(rest, "{}")
		if end < 0 || rest[end] == '{' {
			return nil, ErrUnmatchedDelimiter
		}
		ph, err := parsePlaceholder(rest[:end])
		if err != nil {
			return nil, err
		}
		prog = append(prog, ph)
		rest = rest[end+1:]
	}
	flush()
	return prog, nil
}

// builder creates a placeholder from its optional argument.
type builder func(arg string, hasArg bool) (Placeholder, error)

var builders = map[string]builder{
	nameArtist:       bare(Artist{}),
	nameAlbumArtist:  bare(AlbumArtist{}),
	nameAlbum:        bare(Album{}),
	nameTitle:        bare(Title{}),
	nameFilename:     bare(Filename{}),
	nameDate:         bare(Date{}),
	nameVolume:       bare(Volume{}),
	nameSongPosition: bare(SongPosition{}),
	nameQueueLength:  bare(QueueLength{}),
	nameElapsedTime: timed(func(p *TimePattern) Placeholder {
		return ElapsedTime{Pattern: p}
	}),
	nameTotalTime: timed(func(p *TimePattern) Placeholder {
		return TotalTime{Pattern: p}
	}),
	nameStateIcon:   padded(func(pad int) Placeholder { return StateIcon{Pad: pad} }),
	nameConsumeIcon: padded(func(pad int) Placeholder { return ConsumeIcon{Pad: pad} }),
	nameRandomIcon:  padded(func(pad int) Placeholder { return RandomIcon{Pad: pad} }),
	nameRepeatIcon:  padded(func(pad int) Placeholder { return RepeatIcon{Pad: pad} }),
	nameSingleIcon:  padded(func(pad int) Placeholder { return SingleIcon{Pad: pad} }),
}

// parsePlaceholder resolves the text between braces.
func parsePlaceholder(inner string) (Placeholder, error) {
	name, arg, hasArg := strings.Cut(inner, ":")
	build, ok := builders[name]
	if !ok {
		return nil, &UnknownPlaceholderError{Name: name}
	}
	return build(arg, hasArg)
}

func bare(p Placeholder) builder {
	return func(_ string, hasArg bool) (Placeholder, error) {
		if hasArg {
			return nil, &RedundantFormatError{Name: p.Name()}
		}
		return p, nil
	}
}

func timed(build func(*TimePattern) Placeholder) builder {
	return func(arg string, hasArg bool) (Placeholder, error) {
		if !hasArg {
			return build(defaultPattern), nil
		}
		p, err := CompilePattern(arg)
		if err != nil {
			return nil, &PatternError{Pattern: arg, Err: err}
		}
		return build(p), nil
	}
}

func padded(build func(int) Placeholder) builder {
	return func(arg string, hasArg bool) (Placeholder, error) {
		if !hasArg {
			arg = "0"
		}
		// One leading '+' is accepted, as in "{stateIcon:+1}".
		pad, err := strconv.ParseUint(strings.TrimPrefix(arg, "+"), 10, 31)
		if err != nil {
			return nil, &PadParseError{Value: arg, Err: err}
		}
		return build(int(pad)), nil
	}
}
