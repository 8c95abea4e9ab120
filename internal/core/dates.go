package core

import (
	"fmt"
	"time"
)

// DateFormat identifies one of the supported display patterns.
type DateFormat string

const (
	DateFormatISO DateFormat = "YYYY-MM-DD"
	DateFormatUS  DateFormat = "MM/DD/YYYY"
	DateFormatEU  DateFormat = "DD.MM.YYYY"
)

// ISOLayout is the canonical storage layout.
const ISOLayout = "2006-01-02"

var dateLayouts = map[DateFormat]string{
	DateFormatISO: ISOLayout,
	DateFormatUS:  "01/02/2006",
	DateFormatEU:  "02.01.2006",
}

// DateFormats returns the supported display patterns in picker order.
func DateFormats() []DateFormat {
	return []DateFormat{DateFormatISO, DateFormatUS, DateFormatEU}
}

// ParseDateFormat maps a display pattern id to a DateFormat.
func ParseDateFormat(id string) (DateFormat, error) {
	f := DateFormat(id)
	if !f.Valid() {
		return "", fmt.Errorf("%w %q", ErrUnknownDateFormat, id)
	}
	return f, nil
}

func (f DateFormat) Valid() bool {
	_, ok := dateLayouts[f]
	return ok
}

func (f DateFormat) String() string {
	return string(f)
}

// Layout returns the time layout bound to f, or the ISO layout for an
// unknown format.
func (f DateFormat) Layout() string {
	if l, ok := dateLayouts[f]; ok {
		return l
	}
	return ISOLayout
}

// ParseUserDate parses text against the pattern bound to format and returns
// the canonical ISO date. The match must be exact: no trimming, no partial
// parse, no other pattern is tried.
func ParseUserDate(text string, format DateFormat) (string, error) {
	layout, ok := dateLayouts[format]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownDateFormat, format)
	}
	t, err := time.Parse(layout, text)
	if err != nil {
		return "", fmt.Errorf("%w: %q does not match %s", ErrInvalidDate, text, format)
	}
	return t.Format(ISOLayout), nil
}

// RenderDate formats a stored ISO date with the display pattern. Values that
// are not valid ISO dates are returned unchanged.
func RenderDate(isoDate string, format DateFormat) string {
	t, err := time.Parse(ISOLayout, isoDate)
	if err != nil {
		return isoDate
	}
	return t.Format(format.Layout())
}

// Today returns the current local date in the display pattern.
func Today(format DateFormat) string {
	return time.Now().Format(format.Layout())
}
