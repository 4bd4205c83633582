package srt

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ansel1/merry/v2"
)

var ErrTimestampNotValid = merry.Sentinel("srt timestamp not valid")

// Cue is one timed text entry. Embedded newlines in Text are meaningful and
// round-trip through Parse/Marshal.
type Cue struct {
	Sequence int           `json:"sequence"`
	Start    time.Duration `json:"start"`
	End      time.Duration `json:"end"`
	Text     string        `json:"text"`
}

// Parse splits the document into blank-line-delimited blocks and keeps the
// well-formed ones in encounter order. A block without a "-->" timing line
// (or with unparsable id/timestamps) is dropped by scanning forward to the
// next blank line. Cues are not re-sorted and Start <= End is not enforced
// here; callers validate before handing the result to Locate.
func Parse(document string) []Cue {
	lines := strings.Split(strings.ReplaceAll(strings.TrimSpace(document), "\r\n", "\n"), "\n")

	var cues []Cue
	i := 0
	for i < len(lines) {
		if strings.TrimSpace(lines[i]) == "" {
			i++
			continue
		}

		sequence, seqErr := strconv.Atoi(strings.TrimSpace(lines[i]))
		i++

		if seqErr != nil || i >= len(lines) || !strings.Contains(lines[i], "-->") {
			// Malformed block, skip to the next blank line
			for i < len(lines) && strings.TrimSpace(lines[i]) != "" {
				i++
			}
			continue
		}

		timing := strings.SplitN(lines[i], "-->", 2)
		start, startErr := ParseTimestamp(strings.TrimSpace(timing[0]))
		end, endErr := ParseTimestamp(strings.TrimSpace(timing[1]))
		i++

		if startErr != nil || endErr != nil {
			for i < len(lines) && strings.TrimSpace(lines[i]) != "" {
				i++
			}
			continue
		}

		var textLines []string
		for i < len(lines) && strings.TrimSpace(lines[i]) != "" {
			textLines = append(textLines, lines[i])
			i++
		}

		cues = append(cues, Cue{
			Sequence: sequence,
			Start:    start,
			End:      end,
			Text:     strings.TrimRight(strings.Join(textLines, "\n"), " \t\n"),
		})
		i++
	}

	return cues
}

// Marshal renders cues back to the interchange format, blocks joined by one
// blank line. Inverse of Parse as long as cue text contains no blank lines.
func Marshal(cues []Cue) string {
	blocks := make([]string, 0, len(cues))
	for _, cue := range cues {
		blocks = append(blocks, fmt.Sprintf("%d\n%s --> %s\n%s",
			cue.Sequence,
			FormatTimestamp(cue.Start),
			FormatTimestamp(cue.End),
			cue.Text,
		))
	}
	return strings.Join(blocks, "\n\n")
}

// ParseTimestamp parses "HH:MM:SS,mmm".
func ParseTimestamp(value string) (time.Duration, error) {
	secondsParts := strings.Split(value, ",")
	if len(secondsParts) != 2 {
		return 0, merry.Wrap(ErrTimestampNotValid, merry.AppendMessagef("got %q", value))
	}

	clockParts := strings.Split(secondsParts[0], ":")
	if len(clockParts) != 3 {
		return 0, merry.Wrap(ErrTimestampNotValid, merry.AppendMessagef("got %q", value))
	}

	hours, hErr := strconv.Atoi(clockParts[0])
	minutes, mErr := strconv.Atoi(clockParts[1])
	seconds, sErr := strconv.Atoi(clockParts[2])
	millis, msErr := strconv.Atoi(secondsParts[1])
	if hErr != nil || mErr != nil || sErr != nil || msErr != nil {
		return 0, merry.Wrap(ErrTimestampNotValid, merry.AppendMessagef("got %q", value))
	}

	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond, nil
}

// FormatTimestamp renders "HH:MM:SS,mmm".
func FormatTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	seconds := d / time.Second
	d -= seconds * time.Second
	millis := d / time.Millisecond
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}
