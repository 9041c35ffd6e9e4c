package dismantle

import "time"

// ===== Requests =====

type CreateRecordRequest struct {
	// vehicle_id を指定した場合、その車両は同一トランザクションで disassembled になる
	VehicleID   *int64  `json:"vehicle_id,omitempty"`
	CarBrand    string  `json:"car_brand" binding:"required"`
	CarModel    string  `json:"car_model" binding:"required"`
	CarYear     int     `json:"car_year" binding:"required"`
	VIN         *string `json:"vin,omitempty"`
	Description *string `json:"description,omitempty"`
	// "2006-01-02" 形式の文字列を想定（DATE）
	DisassemblyDate string `json:"disassembly_date" binding:"required"`
}

// ===== Responses =====

type RecordResponse struct {
	RecordID        int64     `json:"record_id"`
	VehicleID       *int64    `json:"vehicle_id,omitempty"`
	CarBrand        string    `json:"car_brand"`
	CarModel        string    `json:"car_model"`
	CarYear         int       `json:"car_year"`
	VIN             *string   `json:"vin,omitempty"`
	Description     *string   `json:"description,omitempty"`
	DisassemblyDate string    `json:"disassembly_date"`
	CreatedAt       time.Time `json:"created_at"`
}
