package engine

import (
	"sync"
	"time"

	"github.com/vladblajovan/ritualist-engine/internal/core/domain"
)

const (
	// DefaultCalendarCacheSize covers the realistic case of one to three
	// timezones per user (device, home preference, rare override).
	DefaultCalendarCacheSize = 20

	dayKeyLayout = "2006-01-02"
)

// Calendar couples a timezone with a first-weekday setting and performs all
// civil-date math for that zone. Every boundary computed through the same
// Calendar value uses the same location, so day/week edges cannot drift
// mid-calculation.
type Calendar struct {
	loc          *time.Location
	firstWeekday time.Weekday
}

// Location returns the timezone the calendar is pinned to.
func (c *Calendar) Location() *time.Location {
	return c.loc
}

// StartOfDay returns local midnight of the civil day containing t. When
// midnight does not exist (a DST gap at 00:00), the normalized first valid
// instant of the day is returned.
func (c *Calendar) StartOfDay(t time.Time) time.Time {
	y, m, d := t.In(c.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.loc)
}

// EndOfDay returns the last representable instant of the civil day
// containing t.
func (c *Calendar) EndOfDay(t time.Time) time.Time {
	return c.NextDay(t).Add(-time.Nanosecond)
}

// NextDay returns the start of the civil day after the one containing t.
// AddDate keeps the wall clock, so a 23-hour spring-forward day still
// advances exactly one calendar day.
func (c *Calendar) NextDay(t time.Time) time.Time {
	return c.StartOfDay(c.StartOfDay(t).AddDate(0, 0, 1))
}

// epochDay numbers civil days by projecting the local date onto a UTC
// midnight. Midnights are exact multiples of 86400s, so the division is
// exact regardless of the zone's DST history.
func (c *Calendar) epochDay(t time.Time) int64 {
	y, m, d := t.In(c.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

// DaysBetween counts civil days from 'from' to 'to'. Negative when 'to'
// precedes 'from'; zero for instants on the same day.
func (c *Calendar) DaysBetween(from, to time.Time) int {
	return int(c.epochDay(to) - c.epochDay(from))
}

// IsSameDay reports whether both instants fall on the same civil day.
func (c *Calendar) IsSameDay(a, b time.Time) bool {
	return c.epochDay(a) == c.epochDay(b)
}

// HabitWeekday converts Go's Sunday-based weekday to the domain's
// Monday-based numbering: Sunday maps to 7, Monday..Saturday map to 1..6.
func (c *Calendar) HabitWeekday(t time.Time) domain.Weekday {
	wd := t.In(c.loc).Weekday()
	if wd == time.Sunday {
		return domain.Sunday
	}
	return domain.Weekday(int(wd))
}

// WeekInterval returns the half-open [start, end) week containing t,
// anchored on the calendar's first weekday.
func (c *Calendar) WeekInterval(t time.Time) (time.Time, time.Time) {
	day := c.StartOfDay(t)
	back := (int(day.Weekday()) - int(c.firstWeekday) + 7) % 7
	start := c.StartOfDay(day.AddDate(0, 0, -back))
	end := c.StartOfDay(start.AddDate(0, 0, 7))
	return start, end
}

// DayKey formats t's civil day as YYYY-MM-DD, the grouping key used across
// the engine and stats code.
func (c *Calendar) DayKey(t time.Time) string {
	return t.In(c.loc).Format(dayKeyLayout)
}

// CalendarService hands out Calendar values per timezone identifier and
// memoizes them in a small bounded cache. The cache is the only shared
// mutable state in the engine and is safe for concurrent use.
type CalendarService struct {
	mu    sync.Mutex
	cache map[string]*Calendar
	order []string

	maxCacheSize int
	firstWeekday time.Weekday
	fallback     *time.Location
}

type CalendarOption func(*CalendarService)

// WithCacheSize overrides the cache bound. Sizes below 1 are clamped to 1.
func WithCacheSize(n int) CalendarOption {
	return func(s *CalendarService) {
		if n < 1 {
			n = 1
		}
		s.maxCacheSize = n
	}
}

// WithFirstWeekday sets the weekday that starts the week, standing in for
// the user's locale setting. Defaults to Monday.
func WithFirstWeekday(wd time.Weekday) CalendarOption {
	return func(s *CalendarService) {
		s.firstWeekday = wd
	}
}

func NewCalendarService(opts ...CalendarOption) *CalendarService {
	s := &CalendarService{
		cache:        make(map[string]*Calendar),
		maxCacheSize: DefaultCalendarCacheSize,
		firstWeekday: time.Monday,
		fallback:     time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LocalCalendar builds a fresh calendar pinned to the given timezone.
// Unknown identifiers fall back to the process-local timezone; the
// operation never fails.
func (s *CalendarService) LocalCalendar(timezone string) *Calendar {
	loc, err := time.LoadLocation(timezone)
	if err != nil || timezone == "" {
		loc = s.fallback
	}
	return &Calendar{loc: loc, firstWeekday: s.firstWeekday}
}

// CachedCalendar returns the memoized calendar for a timezone identifier,
// building and caching it on first use. When the cache is full the oldest
// inserted entry is evicted (FIFO).
func (s *CalendarService) CachedCalendar(timezone string) *Calendar {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cal, ok := s.cache[timezone]; ok {
		return cal
	}

	cal := s.LocalCalendar(timezone)

	if len(s.order) >= s.maxCacheSize {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.cache, oldest)
	}

	s.cache[timezone] = cal
	s.order = append(s.order, timezone)
	return cal
}

// CacheLen reports the number of cached calendars.
func (s *CalendarService) CacheLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cache)
}

// Convenience wrappers for one-off calls. Multi-day calculations should
// grab a single CachedCalendar instead, so every boundary in the
// calculation comes from the same calendar instance.

func (s *CalendarService) StartOfDay(t time.Time, timezone string) time.Time {
	return s.CachedCalendar(timezone).StartOfDay(t)
}

func (s *CalendarService) EndOfDay(t time.Time, timezone string) time.Time {
	return s.CachedCalendar(timezone).EndOfDay(t)
}

func (s *CalendarService) DaysBetween(from, to time.Time, timezone string) int {
	return s.CachedCalendar(timezone).DaysBetween(from, to)
}

func (s *CalendarService) IsSameDay(a, b time.Time, timezone string) bool {
	return s.CachedCalendar(timezone).IsSameDay(a, b)
}

func (s *CalendarService) HabitWeekday(t time.Time, timezone string) domain.Weekday {
	return s.CachedCalendar(timezone).HabitWeekday(t)
}

func (s *CalendarService) WeekInterval(t time.Time, timezone string) (time.Time, time.Time) {
	return s.CachedCalendar(timezone).WeekInterval(t)
}

// AreSameDayAcrossTimezones compares the civil-day components of two
// instants interpreted in two different zones. Display-only helper for
// "does this log feel like today to its author"; completion and streak
// math never call it.
func (s *CalendarService) AreSameDayAcrossTimezones(a time.Time, tzA string, b time.Time, tzB string) bool {
	calA := s.CachedCalendar(tzA)
	calB := s.CachedCalendar(tzB)

	ya, ma, da := a.In(calA.loc).Date()
	yb, mb, db := b.In(calB.loc).Date()

	return ya == yb && ma == mb && da == db
}
