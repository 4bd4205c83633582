package ass

import (
	"os"

	"github.com/ansel1/merry/v2"
	"github.com/orsinium-labs/enum"
	"github.com/pelletier/go-toml/v2"
)

// Alignment is the numpad positional code the script format uses. Only the
// bottom row is exposed to users.
type Alignment enum.Member[int]

var (
	AlignLeft   = Alignment{Value: 1}
	AlignCenter = Alignment{Value: 2}
	AlignRight  = Alignment{Value: 3}
	Alignments  = enum.New(AlignLeft, AlignCenter, AlignRight)

	ErrAlignmentNotValid = merry.Sentinel("alignment not valid")
)

var alignmentNames = map[string]Alignment{
	"left":   AlignLeft,
	"center": AlignCenter,
	"right":  AlignRight,
}

func ParseAlignment(name string) (Alignment, error) {
	if a, ok := alignmentNames[name]; ok {
		return a, nil
	}
	return Alignment{}, merry.Wrap(ErrAlignmentNotValid, merry.AppendMessagef("got %q", name))
}

// Style is the per-render configuration. It is a value object: a new style
// replaces the old one wholesale, there is no partial-field mutation.
type Style struct {
	FontName     string
	FontSize     int
	PrimaryColor string
	OutlineColor string
	BackColor    string
	Alignment    Alignment
	MarginV      int
}

var DefaultStyle = Style{
	FontName:     "Roboto",
	FontSize:     24,
	PrimaryColor: "#FFFFFF",
	OutlineColor: "#000000",
	BackColor:    "#000000",
	Alignment:    AlignCenter,
	MarginV:      30,
}

func (s Style) withDefaults() Style {
	if s.FontName == "" {
		s.FontName = DefaultStyle.FontName
	}
	if s.FontSize <= 0 {
		s.FontSize = DefaultStyle.FontSize
	}
	if s.PrimaryColor == "" {
		s.PrimaryColor = DefaultStyle.PrimaryColor
	}
	if s.OutlineColor == "" {
		s.OutlineColor = DefaultStyle.OutlineColor
	}
	if s.BackColor == "" {
		s.BackColor = DefaultStyle.BackColor
	}
	if s.Alignment.Value == 0 {
		s.Alignment = DefaultStyle.Alignment
	}
	if s.MarginV < 0 {
		s.MarginV = DefaultStyle.MarginV
	}
	return s
}

type styleFile struct {
	FontName     string `toml:"font_name"`
	FontSize     int    `toml:"font_size"`
	PrimaryColor string `toml:"primary_color"`
	OutlineColor string `toml:"outline_color"`
	BackColor    string `toml:"back_color"`
	Alignment    string `toml:"alignment"`
	MarginV      *int   `toml:"margin_v"`
}

// LoadStyle reads a style configuration from a TOML file. Missing fields
// keep their defaults.
func LoadStyle(path string) (Style, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Style{}, merry.Wrap(err)
	}

	var file styleFile
	err = toml.Unmarshal(data, &file)
	if err != nil {
		return Style{}, merry.Wrap(err)
	}

	style := Style{
		FontName:     file.FontName,
		FontSize:     file.FontSize,
		PrimaryColor: file.PrimaryColor,
		OutlineColor: file.OutlineColor,
		BackColor:    file.BackColor,
		// Zero is a valid margin, only an absent key takes the default.
		MarginV: DefaultStyle.MarginV,
	}
	if file.MarginV != nil {
		style.MarginV = *file.MarginV
	}
	if file.Alignment != "" {
		style.Alignment, err = ParseAlignment(file.Alignment)
		if err != nil {
			return Style{}, err
		}
	}
	return style.withDefaults(), nil
}
