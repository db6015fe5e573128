package timefmt

import (
	"testing"
	"time"
)

func TestLabel(t *testing.T) {
	// reference: Wednesday 2025-06-18 21:30
	now := time.Date(2025, 6, 18, 21, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{
			name: "same day shows time of day",
			t:    time.Date(2025, 6, 18, 9, 5, 0, 0, time.UTC),
			want: "09:05",
		},
		{
			name: "same day just after midnight",
			t:    time.Date(2025, 6, 18, 0, 1, 0, 0, time.UTC),
			want: "00:01",
		},
		{
			name: "one calendar day earlier",
			t:    time.Date(2025, 6, 17, 23, 59, 0, 0, time.UTC),
			want: "Ontem",
		},
		{
			name: "yesterday even when less than 24h ago",
			t:    time.Date(2025, 6, 17, 22, 0, 0, 0, time.UTC),
			want: "Ontem",
		},
		{
			name: "two days back shows weekday",
			t:    time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC),
			want: "segunda-feira",
		},
		{
			name: "six days back still weekday",
			t:    time.Date(2025, 6, 12, 12, 0, 0, 0, time.UTC),
			want: "quinta-feira",
		},
		{
			name: "seven days back shows full date",
			t:    time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC),
			want: "11/06/2025",
		},
		{
			name: "across month boundary",
			t:    time.Date(2025, 5, 31, 8, 0, 0, 0, time.UTC),
			want: "31/05/2025",
		},
		{
			name: "across year boundary",
			t:    time.Date(2024, 12, 25, 8, 0, 0, 0, time.UTC),
			want: "25/12/2024",
		},
		{
			name: "zero time yields empty label",
			t:    time.Time{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Label(tt.t, now); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLabelYesterdayAcrossMonth(t *testing.T) {
	now := time.Date(2025, 7, 1, 0, 30, 0, 0, time.UTC)
	got := Label(time.Date(2025, 6, 30, 23, 45, 0, 0, time.UTC), now)
	if got != "Ontem" {
		t.Errorf("Label() = %q, want %q", got, "Ontem")
	}
}

func TestTimeOfDay(t *testing.T) {
	if got := TimeOfDay(time.Date(2025, 6, 18, 14, 7, 0, 0, time.UTC)); got != "14:07" {
		t.Errorf("TimeOfDay() = %q, want %q", got, "14:07")
	}
	if got := TimeOfDay(time.Time{}); got != "" {
		t.Errorf("TimeOfDay(zero) = %q, want empty", got)
	}
}
