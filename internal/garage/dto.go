package garage

import (
	"time"

	"github.com/shopspring/decimal"
)

// ===== Requests =====

type CreateVehicleRequest struct {
	Brand         string           `json:"brand" binding:"required"`
	Model         string           `json:"model" binding:"required"`
	Year          int              `json:"year" binding:"required"`
	VIN           *string          `json:"vin,omitempty"`
	PurchasePrice *decimal.Decimal `json:"purchase_price,omitempty"` // 省略時 0
	Description   *string          `json:"description,omitempty"`
}

type CreateExpenseRequest struct {
	// "2006-01-02" 形式の文字列を想定（DATE）
	Date        string          `json:"date" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Description *string         `json:"description,omitempty"`
}

// ===== Responses =====

type VehicleResponse struct {
	VehicleID     int64           `json:"vehicle_id"`
	Brand         string          `json:"brand"`
	Model         string          `json:"model"`
	Year          int             `json:"year"`
	VIN           *string         `json:"vin,omitempty"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Description   *string         `json:"description,omitempty"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

type ExpenseResponse struct {
	ExpenseID   int64           `json:"expense_id"`
	VehicleID   int64           `json:"vehicle_id"`
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description *string         `json:"description,omitempty"`
}

type RentalSummaryResponse struct {
	RentalID    int64           `json:"rental_id"`
	RentalULID  string          `json:"rental_ulid"`
	ClientName  string          `json:"client_name"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	DailyRate   decimal.Decimal `json:"daily_rate"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
}

// 車両詳細：本体＋履歴＋収支合計
type VehicleDetailResponse struct {
	Vehicle       VehicleResponse         `json:"vehicle"`
	Expenses      []ExpenseResponse       `json:"expenses"`
	Rentals       []RentalSummaryResponse `json:"rentals"`
	TotalExpenses decimal.Decimal         `json:"total_expenses"`
	TotalIncome   decimal.Decimal         `json:"total_income"`
}
