package analytics

import (
	"testing"
	"time"
)

func TestMonthWindows(t *testing.T) {
	now := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)
	windows := MonthWindows(now, 12)

	if len(windows) != 12 {
		t.Fatalf("len = %d, want 12", len(windows))
	}

	// 古い順に並び、12ヶ月前から始まる（年跨ぎ）
	if got := windows[0].Label(); got != "2023-04" {
		t.Fatalf("first label = %s, want 2023-04", got)
	}
	if got := windows[11].Label(); got != "2024-03" {
		t.Fatalf("last label = %s, want 2024-03", got)
	}
	for i := 1; i < len(windows); i++ {
		if !windows[i-1].Start.Before(windows[i].Start) {
			t.Fatalf("windows not ascending at %d", i)
		}
	}

	// 過去の月は月末で閉じる（2月はうるう年で29日）
	feb := windows[10]
	if feb.Label() != "2024-02" {
		t.Fatalf("windows[10] = %s, want 2024-02", feb.Label())
	}
	if want := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC); !feb.End.Equal(want) {
		t.Fatalf("feb end = %s, want %s", feb.End, want)
	}

	// 当月は今日で打ち切り
	last := windows[11]
	if want := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC); !last.Start.Equal(want) {
		t.Fatalf("current start = %s, want %s", last.Start, want)
	}
	if want := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC); !last.End.Equal(want) {
		t.Fatalf("current end = %s, want %s", last.End, want)
	}
}

func TestCurrentMonthWindow(t *testing.T) {
	now := time.Date(2025, time.January, 3, 23, 59, 0, 0, time.UTC)
	w := CurrentMonthWindow(now)
	if want := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC); !w.Start.Equal(want) {
		t.Fatalf("start = %s, want %s", w.Start, want)
	}
	if want := time.Date(2025, time.January, 3, 0, 0, 0, 0, time.UTC); !w.End.Equal(want) {
		t.Fatalf("end = %s, want %s", w.End, want)
	}
}
