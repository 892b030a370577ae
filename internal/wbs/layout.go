package wbs

import "time"

// MinBarWidthPercent keeps zero and near-zero duration bars clickable.
const MinBarWidthPercent = 2.0

// Window is the visible date range of the timeline.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DefaultWindow is the reference view: two months back, four months ahead.
func DefaultWindow(today time.Time) Window {
	return Window{Start: today.AddDate(0, -2, 0), End: today.AddDate(0, 4, 0)}
}

// Days returns the window's span in days.
func (w Window) Days() float64 {
	return w.End.Sub(w.Start).Hours() / 24
}

// Span is a bar's horizontal geometry in percent of the window width.
// Overflow reports that the bar extends past the right edge; the reference
// behavior does not truncate there, so presentation of overflow is the
// caller's choice.
type Span struct {
	Left     float64 `json:"left"`
	Width    float64 `json:"width"`
	Overflow bool    `json:"overflow"`
}

// ClampRight returns a copy truncated at the window's right edge, for
// callers that prefer clipping over horizontal scrolling.
func (s Span) ClampRight() Span {
	if s.Left+s.Width > 100 {
		s.Width = 100 - s.Left
		if s.Width < 0 {
			s.Width = 0
		}
	}
	return s
}

// Layout converts a node's date range into bar geometry within the window.
// Pure function of its arguments: width is the duration's share of the
// window floored at MinBarWidthPercent, left is the start offset's share
// clamped at zero when the node begins before the window.
func Layout(w Window, start, end time.Time) Span {
	windowDays := w.Days()
	if windowDays <= 0 {
		return Span{Left: 0, Width: MinBarWidthPercent}
	}

	durationDays := end.Sub(start).Hours() / 24
	width := durationDays / windowDays * 100
	if width < MinBarWidthPercent {
		width = MinBarWidthPercent
	}

	left := start.Sub(w.Start).Hours() / 24 / windowDays * 100
	if left < 0 {
		left = 0
	}

	return Span{Left: left, Width: width, Overflow: left+width > 100}
}

// Milestone returns the marker position for a zero-duration item. Markers
// are fixed-size, so only the left offset matters.
func Milestone(w Window, at time.Time) float64 {
	return Layout(w, at, at).Left
}

// TodayMarker positions the today line using the same formula applied to a
// zero-duration range.
func TodayMarker(w Window, today time.Time) float64 {
	return Milestone(w, today)
}
