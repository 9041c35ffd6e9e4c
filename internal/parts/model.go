package parts

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Supplier は suppliers テーブルの1行を表す
type Supplier struct {
	SupplierID    int64
	Name          string
	ContactPerson sql.NullString
	Phone         sql.NullString
	Email         sql.NullString
	Address       sql.NullString
	CreatedAt     time.Time
}

// Part は parts テーブルの1行を表す
type Part struct {
	PartID              int64
	Name                string
	Code                sql.NullString
	Quantity            int
	Price               decimal.Decimal
	SupplierID          sql.NullInt64
	DisassemblyRecordID sql.NullInt64
	Description         sql.NullString
	Location            sql.NullString
	CreatedAt           time.Time
}

// Sale は sales テーブルの1行を表す
type Sale struct {
	SaleID       int64
	SaleULID     string
	PartID       int64
	QuantitySold int
	SalePrice    decimal.Decimal
	TotalAmount  decimal.Decimal
	SoldOn       time.Time
	CustomerName sql.NullString
	Description  sql.NullString
	CreatedAt    time.Time
}

// 在庫一覧の検索条件
type PartFilter struct {
	Search              string // name / code / description の部分一致
	SupplierID          *int64
	DisassemblyRecordID *int64
}

// 販売履歴（parts をJOINした読み取り専用ビュー）
type SaleRow struct {
	Sale
	PartName string
}
