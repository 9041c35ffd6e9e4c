package rental

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// 契約ステータス
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Client は clients テーブルの1行を表す
type Client struct {
	ClientID  int64
	Name      string
	Phone     sql.NullString
	Email     sql.NullString
	CreatedAt time.Time
}

// Rental は rentals テーブルの1行を表す
type Rental struct {
	RentalID    int64
	RentalULID  string
	VehicleID   int64
	ClientID    int64
	StartDate   time.Time
	EndDate     time.Time
	DailyRate   decimal.Decimal
	TotalAmount decimal.Decimal
	Status      string
	CreatedAt   time.Time
}

// Payment は payments テーブルの1行を表す
type Payment struct {
	PaymentID   int64
	RentalID    int64
	Amount      decimal.Decimal
	PaidOn      time.Time
	Description sql.NullString
	CreatedAt   time.Time
}

// 契約一覧の検索条件
type RentalFilter struct {
	Status    *string
	VehicleID *int64
	ClientID  *int64
}
