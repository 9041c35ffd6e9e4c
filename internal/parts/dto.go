package parts

import (
	"time"

	"github.com/shopspring/decimal"
)

// ===== Requests =====

type CreateSupplierRequest struct {
	Name          string  `json:"name" binding:"required"`
	ContactPerson *string `json:"contact_person,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Email         *string `json:"email,omitempty"`
	Address       *string `json:"address,omitempty"`
}

type CreatePartRequest struct {
	Name                string          `json:"name" binding:"required"`
	Code                *string         `json:"code,omitempty"`
	Quantity            int             `json:"quantity"` // >=0、省略時 0
	Price               decimal.Decimal `json:"price" binding:"required"`
	SupplierID          *int64          `json:"supplier_id,omitempty"`
	DisassemblyRecordID *int64          `json:"disassembly_record_id,omitempty"`
	Description         *string         `json:"description,omitempty"`
	Location            *string         `json:"location,omitempty"`
}

type CreateSaleRequest struct {
	QuantitySold int             `json:"quantity_sold" binding:"required"`
	SalePrice    decimal.Decimal `json:"sale_price" binding:"required"`
	// "2006-01-02" 形式の文字列を想定（DATE）
	SaleDate     string  `json:"sale_date" binding:"required"`
	CustomerName *string `json:"customer_name,omitempty"`
	Description  *string `json:"description,omitempty"`
}

// ===== Responses =====

type SupplierResponse struct {
	SupplierID    int64     `json:"supplier_id"`
	Name          string    `json:"name"`
	ContactPerson *string   `json:"contact_person,omitempty"`
	Phone         *string   `json:"phone,omitempty"`
	Email         *string   `json:"email,omitempty"`
	Address       *string   `json:"address,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type PartResponse struct {
	PartID              int64           `json:"part_id"`
	Name                string          `json:"name"`
	Code                *string         `json:"code,omitempty"`
	Quantity            int             `json:"quantity"`
	Price               decimal.Decimal `json:"price"`
	SupplierID          *int64          `json:"supplier_id,omitempty"`
	DisassemblyRecordID *int64          `json:"disassembly_record_id,omitempty"`
	Description         *string         `json:"description,omitempty"`
	Location            *string         `json:"location,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
}

type SaleResponse struct {
	SaleID       int64           `json:"sale_id"`
	SaleULID     string          `json:"sale_ulid"`
	PartID       int64           `json:"part_id"`
	PartName     string          `json:"part_name,omitempty"`
	QuantitySold int             `json:"quantity_sold"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	SaleDate     string          `json:"sale_date"`
	CustomerName *string         `json:"customer_name,omitempty"`
	Description  *string         `json:"description,omitempty"`
}
