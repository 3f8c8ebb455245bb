package format

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"
)

// DefaultTimePattern is used by elapsedTime and totalTime without an argument.
const DefaultTimePattern = "%M:%S"

// defaultPattern is shared by every placeholder using DefaultTimePattern.
var defaultPattern = mustCompilePattern(DefaultTimePattern)

// clockSpecifiers are the conversions a time of day can satisfy.
const clockSpecifiers = "HIklMSpPRrTXfnt%"

// padFlags change the padding of the conversion that follows them:
// '-' removes it, '_' pads with spaces and '0' pads with zeros.
const padFlags = "-_0"

// maxExtended bounds the distinct flagged or fractional directives of one
// pattern. Each gets a private verb byte in the control range.
const maxExtended = 0x1f

var (
	errDanglingFlag = errors.New("padding flag without a conversion")
	errBadFraction  = errors.New("fractional seconds must be %f, %.f, %.3f, %.6f, %.9f, %3f, %6f or %9f")
	errTooComplex   = errors.New("too many flagged conversions")
)

// baseOptions extend the strftime set with the conversions it lacks.
func baseOptions() []strftime.Option {
	return []strftime.Option{
		strftime.WithSpecification('f', fraction(9, false)),
		strftime.WithSpecification('P', appendFunc(lowerMeridiem)),
		strftime.WithUnixSeconds('s'),
	}
}

// TimePattern is a compiled strftime pattern applied to durations.
// It is compiled once and shared between ticks; values holding it compare
// by pointer.
type TimePattern struct {
	source   string
	f        *strftime.Strftime
	calendar bool // references date fields a time of day does not have
}

// CompilePattern compiles a strftime pattern. Besides the usual
// conversions it accepts padding flags (%-M, %_H, %0k) and fractional
// seconds (%f, %.f, %.3f, %3f and the 6 and 9 digit forms).
func CompilePattern(pattern string) (*TimePattern, error) {
	rewritten, extra, err := expandDirectives(pattern)
	if err != nil {
		return nil, err
	}
	opts := baseOptions()
	for verb, a := range extra {
		opts = append(opts, strftime.WithSpecification(verb, a))
	}
	f, err := strftime.New(rewritten, opts...)
	if err != nil {
		return nil, err
	}
	return &TimePattern{
		source:   pattern,
		f:        f,
		calendar: usesCalendar(pattern),
	}, nil
}

func mustCompilePattern(pattern string) *TimePattern {
	p, err := CompilePattern(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the pattern source.
func (p *TimePattern) String() string {
	return p.source
}

// Format writes d as a time of day since midnight.
func (p *TimePattern) Format(b *strings.Builder, d time.Duration) error {
	if p.calendar {
		return fmt.Errorf("%w in %q: duration has no date", ErrUnsupportedTime, p.source)
	}
	if d < 0 || d >= 24*time.Hour {
		return fmt.Errorf("%w in %q: %s is not a time of day", ErrUnsupportedTime, p.source, d)
	}
	b.WriteString(p.f.FormatString(time.Time{}.Add(d)))
	return nil
}

// expandDirectives replaces every flagged or fractional directive with a
// private one-byte verb and returns the appenders those verbs stand for.
// Plain directives are left for strftime to resolve.
func expandDirectives(pattern string) (string, map[byte]strftime.Appender, error) {
	var (
		b     strings.Builder
		extra map[byte]strftime.Appender
		verbs map[string]byte
	)
	register := func(directive string, a strftime.Appender) error {
		if verbs == nil {
			verbs = make(map[string]byte)
			extra = make(map[byte]strftime.Appender)
		}
		verb, ok := verbs[directive]
		if !ok {
			if len(verbs) == maxExtended {
				return errTooComplex
			}
			verb = byte(len(verbs) + 1)
			verbs[directive] = verb
			extra[verb] = a
		}
		b.WriteByte('%')
		b.WriteByte(verb)
		return nil
	}

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != '%' || i+1 == len(pattern) {
			b.WriteByte(c)
			continue
		}
		next := pattern[i+1]
		switch {
		case next == '.':
			digits, n, err := fractionDigits(pattern[i+2:])
			if err != nil {
				return "", nil, err
			}
			if err := register(pattern[i:i+2+n], fraction(digits, true)); err != nil {
				return "", nil, err
			}
			i += 1 + n
		case isFractionWidth(next) && i+2 < len(pattern) && pattern[i+2] == 'f':
			if err := register(pattern[i:i+3], fraction(int(next-'0'), false)); err != nil {
				return "", nil, err
			}
			i += 2
		case strings.IndexByte(padFlags, next) >= 0:
			if i+2 == len(pattern) {
				return "", nil, errDanglingFlag
			}
			base, err := strftime.New("%"+string(pattern[i+2]), baseOptions()...)
			if err != nil {
				return "", nil, err
			}
			if err := register(pattern[i:i+3], repadded(base, next)); err != nil {
				return "", nil, err
			}
			i += 2
		default:
			b.WriteByte(c)
			b.WriteByte(next)
			i++
		}
	}
	return b.String(), extra, nil
}

func isFractionWidth(c byte) bool {
	return c == '3' || c == '6' || c == '9'
}

// fractionDigits parses what follows "%." and returns the digit count
// (0 for automatic) and the number of bytes consumed.
func fractionDigits(s string) (int, int, error) {
	switch {
	case strings.HasPrefix(s, "f"):
		return 0, 1, nil
	case len(s) >= 2 && isFractionWidth(s[0]) && s[1] == 'f':
		return int(s[0] - '0'), 2, nil
	}
	return 0, 0, errBadFraction
}

type appendFunc func([]byte, time.Time) []byte

func (f appendFunc) Append(b []byte, t time.Time) []byte { return f(b, t) }

func lowerMeridiem(b []byte, t time.Time) []byte {
	if t.Hour() < 12 {
		return append(b, "am"...)
	}
	return append(b, "pm"...)
}

// fraction writes the sub-second part of t. digits 0 picks the shortest of
// 3, 6 or 9 digits and writes nothing for whole seconds; dot prefixes '.'.
func fraction(digits int, dot bool) strftime.Appender {
	return appendFunc(func(b []byte, t time.Time) []byte {
		ns := t.Nanosecond()
		n := digits
		if n == 0 {
			switch {
			case ns == 0:
				return b
			case ns%1_000_000 == 0:
				n = 3
			case ns%1_000 == 0:
				n = 6
			default:
				n = 9
			}
		}
		for i := n; i < 9; i++ {
			ns /= 10
		}
		if dot {
			b = append(b, '.')
		}
		return fmt.Appendf(b, "%0*d", n, ns)
	})
}

// repadded re-pads the output of base according to a padding flag.
func repadded(base *strftime.Strftime, flag byte) strftime.Appender {
	return appendFunc(func(b []byte, t time.Time) []byte {
		return append(b, repad(base.FormatString(t), flag)...)
	})
}

func repad(s string, flag byte) string {
	n := 0
	for n < len(s)-1 && (s[n] == '0' || s[n] == ' ') {
		n++
	}
	switch flag {
	case '-':
		return s[n:]
	case '_':
		return strings.Repeat(" ", n) + s[n:]
	default:
		return strings.Repeat("0", n) + s[n:]
	}
}

func usesCalendar(pattern string) bool {
	for i := 0; i < len(pattern)-1; i++ {
		if pattern[i] != '%' {
			continue
		}
		i++
		for i < len(pattern)-1 && (strings.IndexByte(padFlags, pattern[i]) >= 0 ||
			pattern[i] == '.' || isFractionWidth(pattern[i])) {
			i++
		}
		if !strings.ContainsRune(clockSpecifiers, rune(pattern[i])) {
			return true
		}
	}
	return false
}
