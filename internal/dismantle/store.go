package dismantle

import (
	"context"
	"database/sql"
	"errors"

	"GMS-backend/internal/garage"
	"GMS-backend/internal/platform/apperr"
	"GMS-backend/internal/platform/db"
)

type Store interface {
	// CreateRecord は車両参照がある場合、車両ロック → 状態チェック →
	// disassembled へ更新 → 記録INSERT を1トランザクションで行う。
	CreateRecord(ctx context.Context, rec *DisassemblyRecord) error
	GetRecordByID(ctx context.Context, id int64) (*DisassemblyRecord, error)
	ListRecords(ctx context.Context) ([]DisassemblyRecord, error)
}

type mysqlStore struct {
	db *sql.DB
}

func NewStore(conn *sql.DB) Store { return &mysqlStore{db: conn} }

const recordCols = `record_id, vehicle_id, car_brand, car_model, car_year, vin, description, dismantled_on, created_at`

func scanRecord(row interface{ Scan(...any) error }) (*DisassemblyRecord, error) {
	var r DisassemblyRecord
	err := row.Scan(&r.RecordID, &r.VehicleID, &r.CarBrand, &r.CarModel, &r.CarYear,
		&r.VIN, &r.Description, &r.DismantledOn, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *mysqlStore) CreateRecord(ctx context.Context, rec *DisassemblyRecord) error {
	return db.RunInTx(ctx, s.db, &sql.TxOptions{}, func(ctx context.Context, tx db.DBTX) error {
		if rec.VehicleID.Valid {
			// 1. 車両行ロック & 状態チェック
			var status string
			err := tx.QueryRowContext(ctx,
				`SELECT status FROM vehicles WHERE vehicle_id = ? FOR UPDATE`,
				rec.VehicleID.Int64).Scan(&status)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return apperr.NotFound("vehicle not found")
				}
				return err
			}
			if status != garage.StatusActive {
				return apperr.Conflict("vehicle cannot be dismantled (status: " + status + ")")
			}

			// 2. 車両を disassembled へ
			if _, err := tx.ExecContext(ctx,
				`UPDATE vehicles SET status = ? WHERE vehicle_id = ?`,
				garage.StatusDisassembled, rec.VehicleID.Int64); err != nil {
				return err
			}
		}

		// 3. 記録INSERT
		res, err := tx.ExecContext(ctx, `
			INSERT INTO disassembly_records
			(vehicle_id, car_brand, car_model, car_year, vin, description, dismantled_on, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
			rec.VehicleID, rec.CarBrand, rec.CarModel, rec.CarYear,
			rec.VIN, rec.Description, rec.DismantledOn)
		if err != nil {
			return err
		}
		id, _ := res.LastInsertId()
		rec.RecordID = id
		return nil
	})
}

func (s *mysqlStore) GetRecordByID(ctx context.Context, id int64) (*DisassemblyRecord, error) {
	r, err := scanRecord(s.db.QueryRowContext(ctx,
		`SELECT `+recordCols+` FROM disassembly_records WHERE record_id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("disassembly record not found")
		}
		return nil, err
	}
	return r, nil
}

func (s *mysqlStore) ListRecords(ctx context.Context) ([]DisassemblyRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+recordCols+` FROM disassembly_records ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DisassemblyRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}
