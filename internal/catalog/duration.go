package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// lessonDuration is the only accepted lesson duration label: "N min".
var lessonDuration = regexp.MustCompile(`^([0-9]+) min$`)

// ParseLessonMinutes reads a lesson duration label such as "5 min".
func ParseLessonMinutes(label string) (int, bool) {
	m := lessonDuration.FindStringSubmatch(strings.TrimSpace(label))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// LessonMinutes is ParseLessonMinutes with 0 for labels it cannot read.
func LessonMinutes(label string) int {
	n, _ := ParseLessonMinutes(label)
	return n
}

// TotalMinutes sums the lesson durations of a level.
func (c *Catalog) TotalMinutes(level Level) int {
	total := 0
	for _, p := range c.phases[level] {
		for _, l := range p.Lessons {
			total += LessonMinutes(l.Duration)
		}
	}
	return total
}

// TotalDuration renders the summed lesson time of a level.
func (c *Catalog) TotalDuration(level Level) string {
	return FormatMinutes(c.TotalMinutes(level))
}

// FormatMinutes renders a minute count as "about 50 min", "about 5 hr"
// or "about 4 hr 10 min".
func FormatMinutes(total int) string {
	if total < 60 {
		return fmt.Sprintf("about %d min", total)
	}
	hours := total / 60
	minutes := total % 60
	if minutes == 0 {
		return fmt.Sprintf("about %d hr", hours)
	}
	return fmt.Sprintf("about %d hr %d min", hours, minutes)
}
