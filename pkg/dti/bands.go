package dti

import "strings"

// Color is the severity color attached to a rating band.
type Color int

const (
	ColorRed Color = iota
	ColorGreen
	ColorBlue
	ColorYellow
	ColorOrange
)

func (c Color) String() string {
	switch c {
	case ColorGreen:
		return "green"
	case ColorBlue:
		return "blue"
	case ColorYellow:
		return "yellow"
	case ColorOrange:
		return "orange"
	default:
		return "red"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler; unknown names decode to red.
func (c *Color) UnmarshalText(text []byte) error {
	*c = ParseColor(string(text))
	return nil
}

// ParseColor maps a color name to a Color. Unknown names map to red.
func ParseColor(name string) Color {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "green":
		return ColorGreen
	case "blue":
		return ColorBlue
	case "yellow":
		return ColorYellow
	case "orange":
		return ColorOrange
	default:
		return ColorRed
	}
}

// Style is the presentation bundle a UI renders a rating with.
type Style struct {
	Text       string `json:"text"`
	Background string `json:"background"`
	Border     string `json:"border"`
}

// StyleFor returns the style bundle for c, falling back to red.
func StyleFor(c Color) Style {
	switch c {
	case ColorGreen:
		return Style{Text: "text-green-700", Background: "bg-green-50", Border: "border-green-200"}
	case ColorBlue:
		return Style{Text: "text-blue-700", Background: "bg-blue-50", Border: "border-blue-200"}
	case ColorYellow:
		return Style{Text: "text-yellow-700", Background: "bg-yellow-50", Border: "border-yellow-200"}
	case ColorOrange:
		return Style{Text: "text-orange-700", Background: "bg-orange-50", Border: "border-orange-200"}
	default:
		return Style{Text: "text-red-700", Background: "bg-red-50", Border: "border-red-200"}
	}
}

// RatingBand is one step of the back-end ratio classification.
type RatingBand struct {
	MaxRatioInclusive float64 `json:"maxRatioInclusive"`
	Label             string  `json:"label"`
	Color             Color   `json:"color"`
}

// Band labels.
const (
	LabelExcellent   = "Excellent"
	LabelGood        = "Good"
	LabelFair        = "Fair"
	LabelNeedsReview = "Needs Review"
	LabelTooHigh     = "Too High"
	LabelError       = "Error"
)

// bands are sorted ascending; the last one catches everything above 50%.
var bands = []RatingBand{
	{MaxRatioInclusive: 36, Label: LabelExcellent, Color: ColorGreen},
	{MaxRatioInclusive: 41, Label: LabelGood, Color: ColorBlue},
	{MaxRatioInclusive: 45, Label: LabelFair, Color: ColorYellow},
	{MaxRatioInclusive: 50, Label: LabelNeedsReview, Color: ColorOrange},
}

var tooHigh = RatingBand{MaxRatioInclusive: 0, Label: LabelTooHigh, Color: ColorRed}

// RatingBands returns a copy of the closed bands followed by the "too high" band.
func RatingBands() []RatingBand {
	out := make([]RatingBand, 0, len(bands)+1)
	out = append(out, bands...)
	return append(out, tooHigh)
}

// Classify returns the first band whose upper bound is at least ratio.
func Classify(ratio float64) RatingBand {
	for _, b := range bands {
		if ratio <= b.MaxRatioInclusive {
			return b
		}
	}
	return tooHigh
}
