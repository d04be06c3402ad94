package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Horizon is the number of days ahead of today whose tasks are listed.
type Horizon int

// Named horizons offered by the client.
const (
	HorizonToday    Horizon = 0
	HorizonTomorrow Horizon = 1
	HorizonWeek     Horizon = 7
	HorizonMonth    Horizon = 30
)

// Horizons lists the named horizons in display order.
var Horizons = []Horizon{HorizonToday, HorizonTomorrow, HorizonWeek, HorizonMonth}

// DaysAhead returns the horizon as a day count.
func (h Horizon) DaysAhead() int {
	return int(h)
}

// Title returns the heading shown for the horizon.
func (h Horizon) Title() string {
	switch h {
	case HorizonToday:
		return "Today"
	case HorizonTomorrow:
		return "Tomorrow"
	case HorizonWeek:
		return "This week"
	case HorizonMonth:
		return "This month"
	default:
		return fmt.Sprintf("Next %d days", int(h))
	}
}

// String returns the config/command name of the horizon.
func (h Horizon) String() string {
	switch h {
	case HorizonToday:
		return "today"
	case HorizonTomorrow:
		return "tomorrow"
	case HorizonWeek:
		return "week"
	case HorizonMonth:
		return "month"
	default:
		return strconv.Itoa(int(h))
	}
}

// ParseHorizon accepts a horizon name (today, tomorrow, week, month) or a
// non-negative day count.
func ParseHorizon(s string) (Horizon, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "today", "":
		return HorizonToday, nil
	case "tomorrow":
		return HorizonTomorrow, nil
	case "week":
		return HorizonWeek, nil
	case "month":
		return HorizonMonth, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid horizon %q: use today, tomorrow, week, month or a day count", s)
	}
	return Horizon(n), nil
}

// Boundary returns the last instant (23:59:59 local) of the day that lies
// daysAhead days after now. It uses now's location and does not normalize
// against the server's timezone.
func Boundary(now time.Time, daysAhead int) time.Time {
	d := now.AddDate(0, 0, daysAhead)
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, d.Location())
}
