package rental

import (
	"context"
	"database/sql"
	"errors"

	"GMS-backend/internal/garage"
	"GMS-backend/internal/platform/apperr"
	"GMS-backend/internal/platform/db"
)

type Store interface {
	InsertClient(ctx context.Context, c *Client) error
	GetClientByID(ctx context.Context, id int64) (*Client, error)
	ListClients(ctx context.Context) ([]Client, error)

	// CreateRental は車両ロック → 状態チェック → 期間重複チェック → INSERT →
	// 車両を rented へ更新、までを1トランザクションで行う。
	CreateRental(ctx context.Context, r *Rental) error
	GetRentalByID(ctx context.Context, id int64) (*Rental, error)
	GetRentalByULID(ctx context.Context, ulid string) (*Rental, error)
	ListRentals(ctx context.Context, f RentalFilter) ([]Rental, error)

	// TransitionRental は契約ステータスの遷移と車両ステータスの復帰を
	// 1トランザクションで行う。許可されない遷移は CONFLICT。
	TransitionRental(ctx context.Context, rentalID int64, to string) (*Rental, error)

	InsertPayment(ctx context.Context, p *Payment) error
	ListPaymentsByRental(ctx context.Context, rentalID int64) ([]Payment, error)

	ListActiveRentalsByVehicle(ctx context.Context, vehicleID int64) ([]Rental, error)
	GetVehicleStatus(ctx context.Context, vehicleID int64) (string, error)
}

type mysqlStore struct {
	db *sql.DB
}

func NewStore(conn *sql.DB) Store { return &mysqlStore{db: conn} }

// ===== Clients =====

func (s *mysqlStore) InsertClient(ctx context.Context, c *Client) error {
	const q = `
	INSERT INTO clients (name, phone, email, created_at)
	VALUES (?, ?, ?, CURRENT_TIMESTAMP)`
	res, err := s.db.ExecContext(ctx, q, c.Name, c.Phone, c.Email)
	if err != nil {
		return err
	}
	id, _ := res.LastInsertId()
	c.ClientID = id
	return nil
}

func (s *mysqlStore) GetClientByID(ctx context.Context, id int64) (*Client, error) {
	const q = `SELECT client_id, name, phone, email, created_at FROM clients WHERE client_id = ?`
	var c Client
	err := s.db.QueryRowContext(ctx, q, id).Scan(&c.ClientID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("client not found")
		}
		return nil, err
	}
	return &c, nil
}

func (s *mysqlStore) ListClients(ctx context.Context) ([]Client, error) {
	const q = `SELECT client_id, name, phone, email, created_at FROM clients ORDER BY created_at DESC`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Client
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ClientID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ===== Rentals =====

func (s *mysqlStore) CreateRental(ctx context.Context, r *Rental) error {
	return db.RunInTx(ctx, s.db, &sql.TxOptions{}, func(ctx context.Context, tx db.DBTX) error {
		// 1. 車両行ロック & 状態チェック
		var status string
		err := tx.QueryRowContext(ctx,
			`SELECT status FROM vehicles WHERE vehicle_id = ? FOR UPDATE`, r.VehicleID).Scan(&status)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperr.NotFound("vehicle not found")
			}
			return err
		}
		if status != garage.StatusActive {
			return apperr.Conflict("vehicle is not available for rental (status: " + status + ")")
		}

		// 2. クライアント存在チェック
		var clientID int64
		err = tx.QueryRowContext(ctx,
			`SELECT client_id FROM clients WHERE client_id = ?`, r.ClientID).Scan(&clientID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperr.NotFound("client not found")
			}
			return err
		}

		// 3. 有効契約との期間重複チェック（閉区間: start <= 申込end AND end >= 申込start）
		var conflicts int
		err = tx.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM rentals
			WHERE vehicle_id = ? AND status = ? AND start_date <= ? AND end_date >= ?`,
			r.VehicleID, StatusActive, r.EndDate, r.StartDate).Scan(&conflicts)
		if err != nil {
			return err
		}
		if conflicts > 0 {
			return apperr.Conflict("vehicle is already rented for the requested dates")
		}

		// 4. 契約INSERT
		res, err := tx.ExecContext(ctx, `
			INSERT INTO rentals
			(rental_ulid, vehicle_id, client_id, start_date, end_date, daily_rate, total_amount, status, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
			r.RentalULID, r.VehicleID, r.ClientID, r.StartDate, r.EndDate,
			r.DailyRate, r.TotalAmount, r.Status)
		if err != nil {
			return err
		}
		id, _ := res.LastInsertId()
		r.RentalID = id

		// 5. 車両を rented へ
		if _, err := tx.ExecContext(ctx,
			`UPDATE vehicles SET status = ? WHERE vehicle_id = ?`,
			garage.StatusRented, r.VehicleID); err != nil {
			return err
		}
		return nil
	})
}

const rentalCols = `rental_id, rental_ulid, vehicle_id, client_id, start_date, end_date, daily_rate, total_amount, status, created_at`

func scanRental(row interface{ Scan(...any) error }) (*Rental, error) {
	var r Rental
	err := row.Scan(&r.RentalID, &r.RentalULID, &r.VehicleID, &r.ClientID,
		&r.StartDate, &r.EndDate, &r.DailyRate, &r.TotalAmount, &r.Status, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *mysqlStore) GetRentalByID(ctx context.Context, id int64) (*Rental, error) {
	r, err := scanRental(s.db.QueryRowContext(ctx,
		`SELECT `+rentalCols+` FROM rentals WHERE rental_id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("rental not found")
		}
		return nil, err
	}
	return r, nil
}

func (s *mysqlStore) GetRentalByULID(ctx context.Context, ulid string) (*Rental, error) {
	r, err := scanRental(s.db.QueryRowContext(ctx,
		`SELECT `+rentalCols+` FROM rentals WHERE rental_ulid = ?`, ulid))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("rental not found")
		}
		return nil, err
	}
	return r, nil
}

func (s *mysqlStore) ListRentals(ctx context.Context, f RentalFilter) ([]Rental, error) {
	q := `SELECT ` + rentalCols + ` FROM rentals WHERE 1=1`
	args := []any{}
	if f.Status != nil {
		q += ` AND status = ?`
		args = append(args, *f.Status)
	}
	if f.VehicleID != nil {
		q += ` AND vehicle_id = ?`
		args = append(args, *f.VehicleID)
	}
	if f.ClientID != nil {
		q += ` AND client_id = ?`
		args = append(args, *f.ClientID)
	}
	q += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Rental
	for rows.Next() {
		r, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

func (s *mysqlStore) TransitionRental(ctx context.Context, rentalID int64, to string) (*Rental, error) {
	var out *Rental
	err := db.RunInTx(ctx, s.db, &sql.TxOptions{}, func(ctx context.Context, tx db.DBTX) error {
		// 1. 契約行ロック
		r, err := scanRental(tx.QueryRowContext(ctx,
			`SELECT `+rentalCols+` FROM rentals WHERE rental_id = ? FOR UPDATE`, rentalID))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperr.NotFound("rental not found")
			}
			return err
		}

		// 2. 遷移ガード（completed/cancelled からの再遷移は拒否）
		if !CanTransition(r.Status, to) {
			return apperr.Conflict("rental is already " + r.Status)
		}

		// 3. 契約ステータス更新
		if _, err := tx.ExecContext(ctx,
			`UPDATE rentals SET status = ? WHERE rental_id = ?`, to, rentalID); err != nil {
			return err
		}

		// 4. 車両を active へ戻す（rented のときのみ）
		if _, err := tx.ExecContext(ctx,
			`UPDATE vehicles SET status = ? WHERE vehicle_id = ? AND status = ?`,
			garage.StatusActive, r.VehicleID, garage.StatusRented); err != nil {
			return err
		}

		r.Status = to
		out = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ===== Payments =====

func (s *mysqlStore) InsertPayment(ctx context.Context, p *Payment) error {
	const q = `
	INSERT INTO payments (rental_id, amount, paid_on, description, created_at)
	VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)`
	res, err := s.db.ExecContext(ctx, q, p.RentalID, p.Amount, p.PaidOn, p.Description)
	if err != nil {
		return err
	}
	id, _ := res.LastInsertId()
	p.PaymentID = id
	return nil
}

func (s *mysqlStore) ListPaymentsByRental(ctx context.Context, rentalID int64) ([]Payment, error) {
	const q = `
	SELECT payment_id, rental_id, amount, paid_on, description, created_at
	FROM payments WHERE rental_id = ? ORDER BY paid_on DESC, payment_id DESC`
	rows, err := s.db.QueryContext(ctx, q, rentalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.PaymentID, &p.RentalID, &p.Amount, &p.PaidOn, &p.Description, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ===== Availability =====

func (s *mysqlStore) ListActiveRentalsByVehicle(ctx context.Context, vehicleID int64) ([]Rental, error) {
	f := RentalFilter{}
	st := StatusActive
	f.Status = &st
	f.VehicleID = &vehicleID
	return s.ListRentals(ctx, f)
}

func (s *mysqlStore) GetVehicleStatus(ctx context.Context, vehicleID int64) (string, error) {
	var status string
	err := s.db.QueryRowContext(ctx,
		`SELECT status FROM vehicles WHERE vehicle_id = ?`, vehicleID).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperr.NotFound("vehicle not found")
		}
		return "", err
	}
	return status, nil
}
