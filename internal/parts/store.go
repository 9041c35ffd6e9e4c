package parts

import (
	"context"
	"database/sql"
	"errors"

	"GMS-backend/internal/platform/apperr"
	"GMS-backend/internal/platform/db"
)

type Store interface {
	InsertSupplier(ctx context.Context, sp *Supplier) error
	GetSupplierByID(ctx context.Context, id int64) (*Supplier, error)
	ListSuppliers(ctx context.Context) ([]Supplier, error)

	InsertPart(ctx context.Context, p *Part) error
	GetPartByID(ctx context.Context, id int64) (*Part, error)
	ListParts(ctx context.Context, f PartFilter) ([]Part, error)

	// CreateSale は部品行ロック → 在庫チェック → 減算 → 販売INSERT を
	// 1トランザクションで行う。在庫不足は INSUFFICIENT_STOCK で中断し、何も書かない。
	CreateSale(ctx context.Context, sale *Sale) error
	ListSales(ctx context.Context) ([]SaleRow, error)
}

type mysqlStore struct {
	db *sql.DB
}

func NewStore(conn *sql.DB) Store { return &mysqlStore{db: conn} }

// ===== Suppliers =====

func (s *mysqlStore) InsertSupplier(ctx context.Context, sp *Supplier) error {
	const q = `
	INSERT INTO suppliers (name, contact_person, phone, email, address, created_at)
	VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`
	res, err := s.db.ExecContext(ctx, q, sp.Name, sp.ContactPerson, sp.Phone, sp.Email, sp.Address)
	if err != nil {
		return err
	}
	id, _ := res.LastInsertId()
	sp.SupplierID = id
	return nil
}

func (s *mysqlStore) GetSupplierByID(ctx context.Context, id int64) (*Supplier, error) {
	const q = `
	SELECT supplier_id, name, contact_person, phone, email, address, created_at
	FROM suppliers WHERE supplier_id = ?`
	var sp Supplier
	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&sp.SupplierID, &sp.Name, &sp.ContactPerson, &sp.Phone, &sp.Email, &sp.Address, &sp.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("supplier not found")
		}
		return nil, err
	}
	return &sp, nil
}

func (s *mysqlStore) ListSuppliers(ctx context.Context) ([]Supplier, error) {
	const q = `
	SELECT supplier_id, name, contact_person, phone, email, address, created_at
	FROM suppliers ORDER BY created_at DESC`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Supplier
	for rows.Next() {
		var sp Supplier
		if err := rows.Scan(
			&sp.SupplierID, &sp.Name, &sp.ContactPerson, &sp.Phone, &sp.Email, &sp.Address, &sp.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, sp)
	}
	return out, rows.Err()
}

// ===== Parts =====

const partCols = `part_id, name, code, quantity, price, supplier_id, disassembly_record_id, description, location, created_at`

func scanPart(row interface{ Scan(...any) error }) (*Part, error) {
	var p Part
	err := row.Scan(&p.PartID, &p.Name, &p.Code, &p.Quantity, &p.Price,
		&p.SupplierID, &p.DisassemblyRecordID, &p.Description, &p.Location, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *mysqlStore) InsertPart(ctx context.Context, p *Part) error {
	const q = `
	INSERT INTO parts (name, code, quantity, price, supplier_id, disassembly_record_id, description, location, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`
	res, err := s.db.ExecContext(ctx, q,
		p.Name, p.Code, p.Quantity, p.Price, p.SupplierID, p.DisassemblyRecordID, p.Description, p.Location)
	if err != nil {
		return err
	}
	id, _ := res.LastInsertId()
	p.PartID = id
	return nil
}

func (s *mysqlStore) GetPartByID(ctx context.Context, id int64) (*Part, error) {
	p, err := scanPart(s.db.QueryRowContext(ctx,
		`SELECT `+partCols+` FROM parts WHERE part_id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("part not found")
		}
		return nil, err
	}
	return p, nil
}

func (s *mysqlStore) ListParts(ctx context.Context, f PartFilter) ([]Part, error) {
	q := `SELECT ` + partCols + ` FROM parts WHERE 1=1`
	args := []any{}
	if f.Search != "" {
		q += ` AND (name LIKE ? OR code LIKE ? OR description LIKE ?)`
		like := "%" + f.Search + "%"
		args = append(args, like, like, like)
	}
	if f.SupplierID != nil {
		q += ` AND supplier_id = ?`
		args = append(args, *f.SupplierID)
	}
	if f.DisassemblyRecordID != nil {
		q += ` AND disassembly_record_id = ?`
		args = append(args, *f.DisassemblyRecordID)
	}
	q += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Part
	for rows.Next() {
		p, err := scanPart(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// ===== Sales =====

func (s *mysqlStore) CreateSale(ctx context.Context, sale *Sale) error {
	return db.RunInTx(ctx, s.db, &sql.TxOptions{}, func(ctx context.Context, tx db.DBTX) error {
		// 1. 部品行ロック
		var qty int
		err := tx.QueryRowContext(ctx,
			`SELECT quantity FROM parts WHERE part_id = ? FOR UPDATE`, sale.PartID).Scan(&qty)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperr.NotFound("part not found")
			}
			return err
		}

		// 2. 在庫チェック
		if sale.QuantitySold > qty {
			return apperr.InsufficientStock()
		}

		// 3. 在庫減算
		res, err := tx.ExecContext(ctx,
			`UPDATE parts SET quantity = quantity - ? WHERE part_id = ?`,
			sale.QuantitySold, sale.PartID)
		if err != nil {
			return err
		}
		if aff, _ := res.RowsAffected(); aff != 1 {
			return apperr.Internal("failed to update parts.quantity")
		}

		// 4. 販売INSERT
		ins, err := tx.ExecContext(ctx, `
			INSERT INTO sales
			(sale_ulid, part_id, quantity_sold, sale_price, total_amount, sold_on, customer_name, description, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
			sale.SaleULID, sale.PartID, sale.QuantitySold, sale.SalePrice,
			sale.TotalAmount, sale.SoldOn, sale.CustomerName, sale.Description)
		if err != nil {
			return err
		}
		id, _ := ins.LastInsertId()
		sale.SaleID = id
		return nil
	})
}

func (s *mysqlStore) ListSales(ctx context.Context) ([]SaleRow, error) {
	const q = `
	SELECT s.sale_id, s.sale_ulid, s.part_id, s.quantity_sold, s.sale_price, s.total_amount,
	       s.sold_on, s.customer_name, s.description, s.created_at, p.name
	FROM sales s
	JOIN parts p ON p.part_id = s.part_id
	ORDER BY s.sold_on DESC, s.sale_id DESC`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SaleRow
	for rows.Next() {
		var r SaleRow
		if err := rows.Scan(
			&r.SaleID, &r.SaleULID, &r.PartID, &r.QuantitySold, &r.SalePrice, &r.TotalAmount,
			&r.SoldOn, &r.CustomerName, &r.Description, &r.CreatedAt, &r.PartName,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
