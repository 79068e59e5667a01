package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// dayKeyLayout is the calendar-day form used for habit completions and
// prayer tracking.
const dayKeyLayout = "2006-01-02"

// GenerateID returns a new opaque unique id for an entity. Ids are generated
// locally and never reused.
func GenerateID() string {
	return uuid.NewString()
}

// DayKey returns the calendar-day key for t, e.g. "2025-01-10".
func DayKey(t time.Time) string {
	return t.Format(dayKeyLayout)
}

// ParseTime parses an entity timestamp. Both full RFC3339 instants and bare
// calendar dates appear in stored documents, so both forms are accepted.
func ParseTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(dayKeyLayout, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized time value %q", value)
}

// IsValidTime reports whether value parses as an entity timestamp.
func IsValidTime(value string) bool {
	_, err := ParseTime(value)
	return err == nil
}

// CalculateStreak returns the number of consecutive days, ending today or
// yesterday, on which a completion was recorded. A gap of more than one day
// before the most recent completion means the streak is over.
func CalculateStreak(dayKeys []string) int {
	if len(dayKeys) == 0 {
		return 0
	}

	seen := make(map[string]struct{}, len(dayKeys))
	for _, key := range dayKeys {
		seen[key] = struct{}{}
	}

	today := time.Now()
	todayKey := DayKey(today)
	yesterdayKey := DayKey(today.AddDate(0, 0, -1))

	_, hasToday := seen[todayKey]
	_, hasYesterday := seen[yesterdayKey]
	if !hasToday && !hasYesterday {
		return 0
	}

	// Count backwards one day at a time until the first missing day.
	start := today
	if !hasToday {
		start = today.AddDate(0, 0, -1)
	}
	streak := 0
	for {
		if _, ok := seen[DayKey(start)]; !ok {
			break
		}
		streak++
		start = start.AddDate(0, 0, -1)
	}
	return streak
}

// ValidateEmail takes an email string as input and returns a boolean indicating whether the input is a valid email address.
func ValidateEmail(email string) bool {
	const emailPattern = `^(?i)[a-z0-9._%+\-]+@(?:[a-z0-9\-]+\.)+[a-z]{2,}$`
	matched, err := regexp.MatchString(emailPattern, email)
	return err == nil && matched
}

// ValidatePassword takes a password string as input and returns a boolean indicating whether the input is a valid password.
// A valid password is at least 8 characters long and contains both numbers and letters.
func ValidatePassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	containsLetter, _ := regexp.MatchString(`[a-zA-Z]`, password)
	containsNumber, _ := regexp.MatchString(`[0-9]`, password)
	return containsLetter && containsNumber
}

func PrintError(message string) {
	message = "ERROR: " + message
	bannerChar := "="
	bannerLength := len(message) + 4
	bannerLine := strings.Repeat(bannerChar, bannerLength)

	fmt.Println(bannerLine)
	fmt.Printf("%s %s %s\n", bannerChar, message, bannerChar)
	fmt.Println(bannerLine)
	fmt.Println()
}
