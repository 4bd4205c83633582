// Package ass compiles timed-text cues plus a style configuration into an
// Advanced SubStation script, the format both the live overlay renderer and
// the burn-in pipeline consume.
package ass

import (
	"fmt"
	"strings"
	"time"

	"github.com/subtide/subtitle-flows/services/srt"
)

// Fallback for malformed color values: fully opaque white.
const fallbackColor = "&H00FFFFFF"

// Color converts "#RRGGBB" to the packed alpha-blue-green-red form
// ("&H00BBGGRR", alpha fixed to opaque). A value of the wrong length falls
// back to opaque white instead of failing the compile.
func Color(hex string) string {
	cleaned := strings.TrimPrefix(hex, "#")
	if len(cleaned) != 6 {
		return fallbackColor
	}

	r := cleaned[0:2]
	g := cleaned[2:4]
	b := cleaned[4:6]

	return "&H00" + b + g + r
}

// Timestamp renders "H:MM:SS.cc" with hours unpadded. Milliseconds are
// truncated to centiseconds, not rounded, to stay bit-compatible with
// existing renders.
func Timestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	seconds := d / time.Second
	d -= seconds * time.Second
	centis := d / (10 * time.Millisecond)
	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, seconds, centis)
}

const headerTemplate = `[Script Info]
Title: Generated Subtitles
ScriptType: v4.00+
WrapStyle: 0
PlayResX: 1920
PlayResY: 1080

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
Style: Default,%s,%d,%s,&H000000FF,%s,%s,0,0,0,0,100,100,0,0,1,2,1,%d,10,10,%d,1

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
`

// Generate compiles the cues into a full script. One Dialogue line is
// emitted per cue in input order; embedded newlines become the \N line
// break token. Other markup-reserved characters pass through unescaped.
func Generate(cues []srt.Cue, style Style) string {
	style = style.withDefaults()

	header := fmt.Sprintf(headerTemplate,
		style.FontName,
		style.FontSize,
		Color(style.PrimaryColor),
		Color(style.OutlineColor),
		Color(style.BackColor),
		style.Alignment.Value,
		style.MarginV,
	)

	events := make([]string, 0, len(cues))
	for _, cue := range cues {
		text := strings.ReplaceAll(cue.Text, "\n", `\N`)
		events = append(events, fmt.Sprintf("Dialogue: 0,%s,%s,Default,,0,0,0,,%s",
			Timestamp(cue.Start),
			Timestamp(cue.End),
			text,
		))
	}

	return header + strings.Join(events, "\n")
}
