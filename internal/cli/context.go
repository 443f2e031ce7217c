package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/comitanigiacomo/kanso-routines/internal/core/services"
)

var ErrAmbiguousID = errors.New("id prefix matches more than one item")

// Context is handed to every command's Run method.
type Context struct {
	Store     *services.TrackingStore
	Analytics *services.AnalyticsService
	Out       io.Writer
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

var weekdayNames = map[string]int{
	"sun": 0, "sunday": 0,
	"mon": 1, "monday": 1,
	"tue": 2, "tuesday": 2,
	"wed": 3, "wednesday": 3,
	"thu": 4, "thursday": 4,
	"fri": 5, "friday": 5,
	"sat": 6, "saturday": 6,
}

// ParseWeekdays parses a comma-separated list of weekday names or numbers (0=Sunday).
// "daily" selects every day.
func ParseWeekdays(s string) ([]int, error) {
	if strings.EqualFold(strings.TrimSpace(s), "daily") {
		return []int{0, 1, 2, 3, 4, 5, 6}, nil
	}

	var days []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		if d, ok := weekdayNames[part]; ok {
			days = append(days, d)
			continue
		}
		num, err := strconv.Atoi(part)
		if err != nil || num < 0 || num > 6 {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		days = append(days, num)
	}
	return days, nil
}

// resolveID expands a unique id prefix. Unknown prefixes are returned as given so the store
// reports them as missing.
func resolveID(prefix string, ids []string) (string, error) {
	match := ""
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			if match != "" {
				return "", fmt.Errorf("%w: %s", ErrAmbiguousID, prefix)
			}
			match = id
		}
	}
	if match == "" {
		return prefix, nil
	}
	return match, nil
}

func (c *Context) routineID(prefix string) (string, error) {
	routines := c.Store.Routines()
	ids := make([]string, 0, len(routines))
	for _, r := range routines {
		ids = append(ids, r.ID)
	}
	return resolveID(prefix, ids)
}

func (c *Context) habitID(prefix string) (string, error) {
	habits := c.Store.Habits()
	ids := make([]string, 0, len(habits))
	for _, h := range habits {
		ids = append(ids, h.ID)
	}
	return resolveID(prefix, ids)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
