package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateIDIsUnique(t *testing.T) {
	a := GenerateID()
	b := GenerateID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestDayKey(t *testing.T) {
	at := time.Date(2026, 1, 5, 23, 45, 0, 0, time.UTC)
	assert.Equal(t, "2026-01-05", DayKey(at))
}

func TestParseTimeAcceptsBothLayouts(t *testing.T) {
	instant, err := ParseTime("2026-03-10T12:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 12, instant.Hour())

	day, err := ParseTime("2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, time.March, day.Month())
	assert.Equal(t, 10, day.Day())
}

func TestParseTimeRejectsGarbage(t *testing.T) {
	for _, value := range []string{"", "soon", "10/03/2026", "2026-13-40"} {
		_, err := ParseTime(value)
		assert.Error(t, err, value)
	}
	assert.False(t, IsValidTime("soon"))
	assert.True(t, IsValidTime("2026-03-10"))
}

func TestCalculateStreak(t *testing.T) {
	today := time.Now()
	day := func(offset int) string { return DayKey(today.AddDate(0, 0, offset)) }

	assert.Equal(t, 0, CalculateStreak(nil))
	assert.Equal(t, 3, CalculateStreak([]string{day(0), day(-1), day(-2)}))
	assert.Equal(t, 2, CalculateStreak([]string{day(-1), day(-2)}), "yesterday still counts before today is done")
	assert.Equal(t, 0, CalculateStreak([]string{day(-2), day(-3)}), "a missed day ends the streak")
	assert.Equal(t, 1, CalculateStreak([]string{day(0), day(-2)}), "gaps stop the backwards count")
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"user@example.com", "first.last+tag@sub.domain.org", "UPPER@EXAMPLE.COM"}
	for _, email := range valid {
		assert.True(t, ValidateEmail(email), email)
	}

	invalid := []string{"", "plainaddress", "@example.com", "user@", "user@domain", "user @example.com"}
	for _, email := range invalid {
		assert.False(t, ValidateEmail(email), email)
	}
}

func TestValidatePassword(t *testing.T) {
	valid := []string{"abcdefg1", "Str0ngPassword", "12345678a"}
	for _, password := range valid {
		assert.True(t, ValidatePassword(password), password)
	}

	invalid := []string{"", "short1", "onlyletters", "12345678"}
	for _, password := range invalid {
		assert.False(t, ValidatePassword(password), password)
	}
}
