package util

import (
	"testing"
	"time"
)

func TestRetentionCutoff(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "before boundary uses yesterday",
			now:  time.Date(2024, 1, 2, 2, 0, 0, 0, time.UTC),
			want: time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC),
		},
		{
			name: "after boundary uses today",
			now:  time.Date(2024, 1, 2, 4, 0, 0, 0, time.UTC),
			want: time.Date(2024, 1, 2, 3, 0, 0, 0, time.UTC),
		},
		{
			name: "exactly at boundary uses today",
			now:  time.Date(2024, 1, 2, 3, 0, 0, 0, time.UTC),
			want: time.Date(2024, 1, 2, 3, 0, 0, 0, time.UTC),
		},
		{
			name: "just before midnight",
			now:  time.Date(2024, 1, 2, 23, 59, 59, 0, time.UTC),
			want: time.Date(2024, 1, 2, 3, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := RetentionCutoff(tc.now, 3)
			if !got.Equal(tc.want) {
				t.Errorf("RetentionCutoff(%v) = %v, want %v", tc.now, got, tc.want)
			}
		})
	}
}
