package month

import (
	"testing"
	"time"
)

func TestAddMonths_TableTests(t *testing.T) {
	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name   string
		start  time.Time
		months int
		want   time.Time
	}{
		{
			name:   "simple shift inside year",
			start:  date(2024, time.February, 15),
			months: 3,
			want:   date(2024, time.May, 15),
		},
		{
			name:   "month end clamps to shorter month",
			start:  date(2024, time.January, 31),
			months: 3,
			want:   date(2024, time.April, 30),
		},
		{
			name:   "clamp to february in leap year",
			start:  date(2024, time.January, 31),
			months: 1,
			want:   date(2024, time.February, 29),
		},
		{
			name:   "clamp to february in common year",
			start:  date(2025, time.January, 31),
			months: 1,
			want:   date(2025, time.February, 28),
		},
		{
			name:   "year transition",
			start:  date(2024, time.November, 20),
			months: 6,
			want:   date(2025, time.May, 20),
		},
		{
			name:   "twelve months keeps the day",
			start:  date(2024, time.February, 29),
			months: 12,
			want:   date(2025, time.February, 28),
		},
		{
			name:   "zero months is identity",
			start:  date(2024, time.July, 1),
			months: 0,
			want:   date(2024, time.July, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddMonths(tt.start, tt.months)
			if !got.Equal(tt.want) {
				t.Errorf("AddMonths(%v, %d) = %v, want %v", tt.start, tt.months, got, tt.want)
			}
		})
	}
}
