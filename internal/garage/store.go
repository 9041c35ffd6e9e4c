package garage

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"
)

type Store interface {
	InsertVehicle(ctx context.Context, v *Vehicle) error
	GetVehicleByID(ctx context.Context, id int64) (*Vehicle, error)
	ListVehicles(ctx context.Context, f VehicleFilter) ([]Vehicle, error)

	InsertExpense(ctx context.Context, e *Expense) error
	ListExpensesByVehicle(ctx context.Context, vehicleID int64) ([]Expense, error)
	SumExpensesByVehicle(ctx context.Context, vehicleID int64) (decimal.Decimal, error)

	ListRentalsByVehicle(ctx context.Context, vehicleID int64) ([]RentalSummary, error)
	SumPaymentsByVehicle(ctx context.Context, vehicleID int64) (decimal.Decimal, error)
}

type mysqlStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) Store { return &mysqlStore{db: db} }

func (s *mysqlStore) InsertVehicle(ctx context.Context, v *Vehicle) error {
	const q = `
	INSERT INTO vehicles (brand, model, year, vin, purchase_price, description, status, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`
	res, err := s.db.ExecContext(ctx, q,
		v.Brand, v.Model, v.Year, v.VIN, v.PurchasePrice, v.Description, v.Status)
	if err != nil {
		return err
	}
	id, _ := res.LastInsertId()
	v.VehicleID = id
	return nil
}

func (s *mysqlStore) GetVehicleByID(ctx context.Context, id int64) (*Vehicle, error) {
	const q = `
	SELECT vehicle_id, brand, model, year, vin, purchase_price, description, status, created_at
	FROM vehicles WHERE vehicle_id = ?`
	var v Vehicle
	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&v.VehicleID, &v.Brand, &v.Model, &v.Year, &v.VIN,
		&v.PurchasePrice, &v.Description, &v.Status, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *mysqlStore) ListVehicles(ctx context.Context, f VehicleFilter) ([]Vehicle, error) {
	q := `
	SELECT vehicle_id, brand, model, year, vin, purchase_price, description, status, created_at
	FROM vehicles WHERE 1=1`
	args := []any{}
	if f.Status != nil {
		q += ` AND status = ?`
		args = append(args, *f.Status)
	}
	q += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Vehicle
	for rows.Next() {
		var v Vehicle
		if err := rows.Scan(
			&v.VehicleID, &v.Brand, &v.Model, &v.Year, &v.VIN,
			&v.PurchasePrice, &v.Description, &v.Status, &v.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *mysqlStore) InsertExpense(ctx context.Context, e *Expense) error {
	const q = `
	INSERT INTO expenses (vehicle_id, spent_on, amount, category, description, created_at)
	VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`
	res, err := s.db.ExecContext(ctx, q, e.VehicleID, e.SpentOn, e.Amount, e.Category, e.Description)
	if err != nil {
		return err
	}
	id, _ := res.LastInsertId()
	e.ExpenseID = id
	return nil
}

func (s *mysqlStore) ListExpensesByVehicle(ctx context.Context, vehicleID int64) ([]Expense, error) {
	const q = `
	SELECT expense_id, vehicle_id, spent_on, amount, category, description, created_at
	FROM expenses WHERE vehicle_id = ? ORDER BY spent_on DESC, expense_id DESC`
	rows, err := s.db.QueryContext(ctx, q, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Expense
	for rows.Next() {
		var e Expense
		if err := rows.Scan(
			&e.ExpenseID, &e.VehicleID, &e.SpentOn, &e.Amount, &e.Category, &e.Description, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *mysqlStore) SumExpensesByVehicle(ctx context.Context, vehicleID int64) (decimal.Decimal, error) {
	const q = `SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE vehicle_id = ?`
	var sum decimal.Decimal
	if err := s.db.QueryRowContext(ctx, q, vehicleID).Scan(&sum); err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

func (s *mysqlStore) ListRentalsByVehicle(ctx context.Context, vehicleID int64) ([]RentalSummary, error) {
	const q = `
	SELECT r.rental_id, r.rental_ulid, c.name, r.start_date, r.end_date, r.daily_rate, r.total_amount, r.status
	FROM rentals r
	JOIN clients c ON c.client_id = r.client_id
	WHERE r.vehicle_id = ?
	ORDER BY r.created_at DESC`
	rows, err := s.db.QueryContext(ctx, q, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RentalSummary
	for rows.Next() {
		var r RentalSummary
		if err := rows.Scan(
			&r.RentalID, &r.RentalULID, &r.ClientName, &r.StartDate, &r.EndDate,
			&r.DailyRate, &r.TotalAmount, &r.Status,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// 車両に紐づく全貸出の入金合計
func (s *mysqlStore) SumPaymentsByVehicle(ctx context.Context, vehicleID int64) (decimal.Decimal, error) {
	const q = `
	SELECT COALESCE(SUM(p.amount), 0)
	FROM payments p
	JOIN rentals r ON r.rental_id = p.rental_id
	WHERE r.vehicle_id = ?`
	var sum decimal.Decimal
	if err := s.db.QueryRowContext(ctx, q, vehicleID).Scan(&sum); err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}
