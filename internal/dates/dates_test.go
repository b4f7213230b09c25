package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse(Layout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestParse(t *testing.T) {
	got, ok := Parse("2024-03-05")
	require.True(t, ok)
	require.Equal(t, day("2024-03-05"), got)

	got, ok = Parse("2024-03-05T17:45:00Z")
	require.True(t, ok)
	require.Equal(t, day("2024-03-05"), got)

	_, ok = Parse("not a date")
	require.False(t, ok)
	_, ok = Parse("   ")
	require.False(t, ok)
	require.True(t, ParseOrZero("2024-13-40").IsZero())
}

func TestFormat(t *testing.T) {
	require.Equal(t, "", Format(time.Time{}))
	require.Equal(t, "2024-01-31", Format(day("2024-01-31")))
}

func TestDaysBetween(t *testing.T) {
	require.Equal(t, 30, DaysBetween(day("2024-01-01"), day("2024-01-31")))
	require.Equal(t, -1, DaysBetween(day("2024-01-02"), day("2024-01-01")))
	require.Equal(t, 0, DaysBetween(day("2024-01-02"), day("2024-01-02").Add(23*time.Hour)))
}

func TestAddMonths(t *testing.T) {
	cases := []struct {
		from string
		n    int
		want string
	}{
		{"2024-01-01", 3, "2024-04-01"},
		{"2024-01-31", 3, "2024-04-30"},
		{"2024-01-31", 1, "2024-02-29"},
		{"2024-02-29", 1, "2024-03-29"},
		{"2024-04-30", 1, "2024-05-30"},
		{"2024-02-29", 3, "2024-05-29"},
		{"2023-01-30", 1, "2023-02-28"},
		{"2024-01-15", -3, "2023-10-15"},
		{"2024-11-30", 3, "2025-02-28"},
		{"2024-03-31", -1, "2024-02-29"},
		{"2024-12-10", 12, "2025-12-10"},
	}
	for _, tc := range cases {
		got := AddMonths(day(tc.from), tc.n)
		require.Equal(t, tc.want, Format(got), "%s %+d", tc.from, tc.n)
	}
	require.True(t, AddMonths(time.Time{}, 2).IsZero())
}
