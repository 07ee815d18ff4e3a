package model

import (
	"strconv"
	"time"
)

// DateLayout renders like "Jan 15, 2025, 10:30 AM".
const DateLayout = "Jan 2, 2006, 3:04 PM"

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(DateLayout)
}

// CountLabel is the header count, e.g. "1 application" or "3 applications".
func CountLabel(n int) string {
	return plural(n, "application", "applications")
}

func QuestionCountLabel(n int) string {
	return plural(n, "question", "questions")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}
