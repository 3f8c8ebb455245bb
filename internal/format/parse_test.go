package format

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// describe flattens a program into comparable strings. Time patterns are
// compared by source and pad counts by value.
func describe(p Program) []string {
	out := make([]string, 0, len(p))
	for _, ph := range p {
		switch v := ph.(type) {
		case Literal:
			out = append(out, strconv.Quote(v.Text))
		case ElapsedTime:
			out = append(out, fmt.Sprintf("%s[%s]", v.Name(), v.Pattern))
		case TotalTime:
			out = append(out, fmt.Sprintf("%s[%s]", v.Name(), v.Pattern))
		case StateIcon:
			out = append(out, fmt.Sprintf("%s[%d]", v.Name(), v.Pad))
		case ConsumeIcon:
			out = append(out, fmt.Sprintf("%s[%d]", v.Name(), v.Pad))
		case RandomIcon:
			out = append(out, fmt.Sprintf("%s[%d]", v.Name(), v.Pad))
		case RepeatIcon:
			out = append(out, fmt.Sprintf("%s[%d]", v.Name(), v.Pad))
		case SingleIcon:
			out = append(out, fmt.Sprintf("%s[%d]", v.Name(), v.Pad))
		default:
			out = append(out, ph.Name())
		}
	}
	return out
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     []string
	}{
		{"literal only", "rawstr", []string{`"rawstr"`}},
		{"empty", "", []string{}},
		{"artist and title", "{artist} - {title}", []string{"artist", `" - "`, "title"}},
		{
			"default time patterns",
			" [{elapsedTime}/{totalTime}] {stateIcon}",
			[]string{`" ["`, "elapsedTime[%M:%S]", `"/"`, "totalTime[%M:%S]", `"] "`, "stateIcon[0]"},
		},
		{
			"custom arguments",
			" [{elapsedTime:%M with %S}/{totalTime:%H hours %M minutes %S seconds}] {stateIcon:1}",
			[]string{
				`" ["`, "elapsedTime[%M with %S]", `"/"`,
				"totalTime[%H hours %M minutes %S seconds]", `"] "`, "stateIcon[1]",
			},
		},
		{"elapsed with pattern", " [{elapsedTime:%M with %S}]", []string{`" ["`, "elapsedTime[%M with %S]", `"]"`}},
		{"escaped braces", "{{}}", []string{`"{}"`}},
		{"escaped around placeholder", "{{{artist}}}", []string{`"{"`, "artist", `"}"`}},
		{"adjacent placeholders", "{{{artist}{title}}}", []string{`"{"`, "artist", "title", `"}"`}},
		{"trailing escape", "{artist} {title}}}", []string{"artist", `" "`, "title", `"}"`}},
		{"only escapes", "}}{{}}}}", []string{`"}{}}"`}},
		{"no empty literals", "{artist}{title}", []string{"artist", "title"}},
		{"mixed escapes", "}}{{{artist}}}{title}}}", []string{`"}{"`, "artist", `"}"`, "title", `"}"`}},
		{
			"all names",
			"{albumArtist}{album}{filename}{date}{volume}{songPosition}{queueLength}",
			[]string{"albumArtist", "album", "filename", "date", "volume", "songPosition", "queueLength"},
		},
		{
			"toggle pads",
			"{consumeIcon}{randomIcon:1}{repeatIcon:2}{singleIcon:10}",
			[]string{"consumeIcon[0]", "randomIcon[1]", "repeatIcon[2]", "singleIcon[10]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := Parse(tt.template)
			require.NoError(t, err)
			assert.Equal(t, tt.want, describe(prog))
		})
	}
}

func TestParse_DefaultPatternShared(t *testing.T) {
	prog, err := Parse("{elapsedTime}{totalTime}")
	require.NoError(t, err)
	assert.Same(t, defaultPattern, prog[0].(ElapsedTime).Pattern)
	assert.Same(t, defaultPattern, prog[1].(TotalTime).Pattern)
}

func TestParse_Unmatched(t *testing.T) {
	tests := []string{
		"{artist}}",
		"}{artist}",
		"}}{{{artist}}}{{title}}}",
		"{{{{artist}}}",
		"{{{artist}}}{",
		"{{{artist}}}}",
		"{art{ist}",
		"{artist",
		"}",
	}
	for _, template := range tests {
		t.Run(template, func(t *testing.T) {
			prog, err := Parse(template)
			require.ErrorIs(t, err, ErrUnmatchedDelimiter)
			assert.Nil(t, prog)
		})
	}
}

func TestParse_UnknownPlaceholder(t *testing.T) {
	tests := []struct {
		template string
		want     string
	}{
		{"{artst}", "artst"},
		{"{}artist}}", ""},
		{"{ar}tst}", "ar"},
		{"{Artist}", "Artist"},
		{"{artst:%M}", "artst"},
	}
	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			_, err := Parse(tt.template)
			var unknown *UnknownPlaceholderError
			require.ErrorAs(t, err, &unknown)
			assert.Equal(t, tt.want, unknown.Name)
		})
	}
}

func TestParse_RedundantFormat(t *testing.T) {
	for _, name := range []string{"artist", "date", "volume", "queueLength", "songPosition"} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse("{" + name + ":x}")
			var redundant *RedundantFormatError
			require.ErrorAs(t, err, &redundant)
			assert.Equal(t, name, redundant.Name)
		})
	}
}

func TestParse_PatternError(t *testing.T) {
	_, err := Parse("{elapsedTime:%Q}")
	var patternErr *PatternError
	require.ErrorAs(t, err, &patternErr)
	assert.Equal(t, "%Q", patternErr.Pattern)
}

func TestParse_PadParseError(t *testing.T) {
	for _, arg := range []string{"", "x", "-1", "1.5", "+", "++1", "+-1", " 1"} {
		t.Run(arg, func(t *testing.T) {
			_, err := Parse("{stateIcon:" + arg + "}")
			var padErr *PadParseError
			require.ErrorAs(t, err, &padErr)
			assert.Equal(t, arg, padErr.Value)
		})
	}
}

func TestParse_PadSign(t *testing.T) {
	prog, err := Parse("{stateIcon:+1}{singleIcon:+02}")
	require.NoError(t, err)
	assert.Equal(t, []string{"stateIcon[1]", "singleIcon[2]"}, describe(prog))
}

func TestParse_FirstErrorWins(t *testing.T) {
	// The unknown name is met before the stray brace at the end.
	_, err := Parse("{artst}}")
	var unknown *UnknownPlaceholderError
	require.ErrorAs(t, err, &unknown)

	// The stray brace is met before the unknown name.
	_, err = Parse("}{artst}")
	require.ErrorIs(t, err, ErrUnmatchedDelimiter)
}
