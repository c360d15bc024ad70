package timeofday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWindowContains(t *testing.T) {
	day := Window{Open: MustParse("09:00"), Close: MustParse("21:00")}
	overnight := Window{Open: MustParse("22:00"), Close: MustParse("06:00")}

	cases := []struct {
		name   string
		window Window
		now    string
		want   bool
	}{
		{"exactly at opening is closed", day, "09:00", false},
		{"exactly at closing is closed", day, "21:00", false},
		{"inside daytime window", day, "12:30", true},
		{"before opening", day, "08:59:59", false},
		{"overnight late evening", overnight, "23:00", true},
		{"overnight early morning", overnight, "05:59", true},
		{"overnight midday", overnight, "12:00", false},
		{"overnight at close", overnight, "06:00", false},
		{"overnight at open", overnight, "22:00", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.window.Contains(MustParse(tc.now)))
		})
	}
}

func TestOfKeepsSubSecondPrecision(t *testing.T) {
	open := MustParse("09:00")
	justAfter := time.Date(2024, 1, 1, 9, 0, 0, 1, time.UTC)
	require.True(t, Of(justAfter).After(open))
	require.Equal(t, "09:00:00", Of(justAfter).String())
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse("25:00")
	require.ErrorIs(t, err, ErrInvalid)

	_, err = New(10, 60, 0)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestTextRoundTrip(t *testing.T) {
	var tod TimeOfDay
	require.NoError(t, tod.UnmarshalText([]byte("22:15")))
	text, err := tod.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "22:15:00", string(text))
}
