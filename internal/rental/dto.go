package rental

import (
	"time"

	"github.com/shopspring/decimal"
)

// ===== Requests =====

type CreateClientRequest struct {
	Name  string  `json:"name" binding:"required"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`
}

type CreateRentalRequest struct {
	VehicleID int64 `json:"vehicle_id" binding:"required"`
	ClientID  int64 `json:"client_id" binding:"required"`
	// "2006-01-02" 形式の文字列を想定（DATE）
	StartDate string          `json:"start_date" binding:"required"`
	EndDate   string          `json:"end_date" binding:"required"`
	DailyRate decimal.Decimal `json:"daily_rate" binding:"required"`
}

type CreatePaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate string          `json:"payment_date" binding:"required"`
	Description *string         `json:"description,omitempty"`
}

// ===== Responses =====

type ClientResponse struct {
	ClientID  int64     `json:"client_id"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone,omitempty"`
	Email     *string   `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type RentalResponse struct {
	RentalID    int64           `json:"rental_id"`
	RentalULID  string          `json:"rental_ulid"`
	VehicleID   int64           `json:"vehicle_id"`
	ClientID    int64           `json:"client_id"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	DailyRate   decimal.Decimal `json:"daily_rate"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

type PaymentResponse struct {
	PaymentID   int64           `json:"payment_id"`
	RentalID    int64           `json:"rental_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"payment_date"`
	Description *string         `json:"description,omitempty"`
}

// 空き確認API（日付不正でもHTTPエラーにはせず available=false で返す）
type AvailabilityResponse struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}
