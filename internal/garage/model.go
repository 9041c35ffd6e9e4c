package garage

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// 車両ステータス
const (
	StatusActive       = "active"
	StatusRented       = "rented"
	StatusDisassembled = "disassembled"
)

// Vehicle は vehicles テーブルの1行を表す
type Vehicle struct {
	VehicleID     int64
	Brand         string
	Model         string
	Year          int
	VIN           sql.NullString
	PurchasePrice decimal.Decimal
	Description   sql.NullString
	Status        string
	CreatedAt     time.Time
}

// Expense は expenses テーブルの1行を表す
type Expense struct {
	ExpenseID   int64
	VehicleID   int64
	SpentOn     time.Time
	Amount      decimal.Decimal
	Category    string
	Description sql.NullString
	CreatedAt   time.Time
}

// 車両詳細で返す貸出履歴（rentals/clients をJOINした読み取り専用ビュー）
type RentalSummary struct {
	RentalID    int64
	RentalULID  string
	ClientName  string
	StartDate   time.Time
	EndDate     time.Time
	DailyRate   decimal.Decimal
	TotalAmount decimal.Decimal
	Status      string
}

// 車両一覧の検索条件
type VehicleFilter struct {
	Status *string
}
