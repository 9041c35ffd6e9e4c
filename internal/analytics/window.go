package analytics

import "time"

// Window は集計対象の閉区間 [Start, End]（DATE単位）。
type Window struct {
	Start time.Time
	End   time.Time
}

// Label は "2006-01" 形式の月ラベルを返す。
func (w Window) Label() string { return w.Start.Format("2006-01") }

// MonthWindows は now の月で終わる直近 n ヶ月分の集計区間を古い順に返す。
// i ヶ月前の区間はそのカレンダー月の [1日, 末日]。当月だけは末日ではなく
// now の日付で打ち切る。time.Date の月正規化に任せるので年跨ぎ・月長差
// （28〜31日）もそのまま正しく扱える。
func MonthWindows(now time.Time, n int) []Window {
	out := make([]Window, 0, n)
	for i := n - 1; i >= 0; i-- {
		start := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		var end time.Time
		if i == 0 {
			end = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		} else {
			// 翌月1日の前日 = 当該月の末日
			end = start.AddDate(0, 1, 0).AddDate(0, 0, -1)
		}
		out = append(out, Window{Start: start, End: end})
	}
	return out
}

// CurrentMonthWindow は [当月1日, 今日] を返す。
func CurrentMonthWindow(now time.Time) Window {
	return Window{
		Start: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
	}
}
