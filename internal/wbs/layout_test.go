package wbs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, d)
}

func TestLayoutFullWindowSpan(t *testing.T) {
	w := Window{Start: day(0), End: day(100)}
	s := Layout(w, day(0), day(100))
	assert.Equal(t, 0.0, s.Left)
	assert.Equal(t, 100.0, s.Width)
	assert.False(t, s.Overflow)
}

func TestLayoutMinimumWidthFloor(t *testing.T) {
	w := Window{Start: day(0), End: day(100)}
	for _, dur := range []int{0, 1} {
		s := Layout(w, day(10), day(10+dur))
		assert.GreaterOrEqual(t, s.Width, MinBarWidthPercent, "duration %dd", dur)
	}
}

func TestLayoutLeftClampBeforeWindow(t *testing.T) {
	w := Window{Start: day(10), End: day(110)}
	s := Layout(w, day(0), day(20))
	assert.Equal(t, 0.0, s.Left)
}

func TestLayoutNoRightTruncation(t *testing.T) {
	w := Window{Start: day(0), End: day(100)}
	s := Layout(w, day(80), day(150))
	assert.True(t, s.Overflow)
	assert.InDelta(t, 80.0, s.Left, 1e-9)
	assert.InDelta(t, 70.0, s.Width, 1e-9)

	clamped := s.ClampRight()
	assert.InDelta(t, 20.0, clamped.Width, 1e-9)
}

func TestLayoutIsPure(t *testing.T) {
	w := Window{Start: day(0), End: day(60)}
	a := Layout(w, day(5), day(25))
	b := Layout(w, day(5), day(25))
	assert.Equal(t, a, b)
}

func TestLayoutProportions(t *testing.T) {
	w := Window{Start: day(0), End: day(200)}
	s := Layout(w, day(50), day(100))
	assert.InDelta(t, 25.0, s.Left, 1e-9)
	assert.InDelta(t, 25.0, s.Width, 1e-9)
}

func TestMilestoneAndTodayMarker(t *testing.T) {
	w := Window{Start: day(0), End: day(100)}
	assert.InDelta(t, 50.0, Milestone(w, day(50)), 1e-9)
	assert.InDelta(t, 50.0, TodayMarker(w, day(50)), 1e-9)
	// Before the window clamps to the left edge like any bar.
	assert.Equal(t, 0.0, Milestone(w, day(-5)))
}

func TestDefaultWindow(t *testing.T) {
	today := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	w := DefaultWindow(today)
	assert.Equal(t, time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2026, 12, 30, 0, 0, 0, 0, time.UTC), w.End)
}

func TestLayoutDegenerateWindow(t *testing.T) {
	w := Window{Start: day(10), End: day(10)}
	s := Layout(w, day(0), day(5))
	assert.Equal(t, 0.0, s.Left)
	assert.Equal(t, MinBarWidthPercent, s.Width)
}
