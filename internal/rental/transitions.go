package rental

import (
	"time"

	"github.com/shopspring/decimal"
)

// AllowTransition は契約ステータスの許可された遷移を定義する。
// completed / cancelled は終端で、そこからの再遷移は認めない。
var AllowTransition = map[string][]string{
	StatusActive:    {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// CanTransition は from -> to が許可された遷移かを返す。
func CanTransition(from, to string) bool {
	allowed, ok := AllowTransition[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// InclusiveDays は両端を含む日数を返す。開始と終了が同日なら1。
// 日付はDATE起点（UTC深夜0時）で渡される前提。
func InclusiveDays(start, end time.Time) int {
	return int(end.Sub(start)/(24*time.Hour)) + 1
}

// ContractTotal = 日額 × 両端含む日数
func ContractTotal(dailyRate decimal.Decimal, start, end time.Time) decimal.Decimal {
	return dailyRate.Mul(decimal.NewFromInt(int64(InclusiveDays(start, end))))
}

// Overlaps は閉区間 [aStart, aEnd] と [cStart, cEnd] が1日でも重なるかを返す。
// 判定: aStart <= cEnd && cStart <= aEnd
func Overlaps(aStart, aEnd, cStart, cEnd time.Time) bool {
	return !aStart.After(cEnd) && !cStart.After(aEnd)
}
