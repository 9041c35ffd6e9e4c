package dismantle

import (
	"database/sql"
	"time"
)

// DisassemblyRecord は disassembly_records テーブルの1行を表す。
// 解体元の車両情報はスナップショットとして保持する（ガレージ車両への参照は任意）。
type DisassemblyRecord struct {
	RecordID     int64
	VehicleID    sql.NullInt64
	CarBrand     string
	CarModel     string
	CarYear      int
	VIN          sql.NullString
	Description  sql.NullString
	DismantledOn time.Time
	CreatedAt    time.Time
}
