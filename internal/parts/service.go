package parts

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"strings"
	"time"

	mysql "github.com/go-sql-driver/mysql"
	ulid "github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"GMS-backend/internal/platform/apperr"
)

const dateLayout = "2006-01-02"

type Clock interface{ Now() time.Time }
type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

type IDGen interface{ NewULID(t time.Time) string }
type ulidGen struct{}

func (ulidGen) NewULID(t time.Time) string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

type Service struct {
	store Store
	clock Clock
	id    IDGen
}

func NewService(conn *sql.DB) *Service {
	return &Service{store: NewStore(conn), clock: realClock{}, id: ulidGen{}}
}

func NewServiceWithStore(store Store) *Service {
	return &Service{store: store, clock: realClock{}, id: ulidGen{}}
}

// ===== Suppliers =====

func (s *Service) CreateSupplier(ctx context.Context, in CreateSupplierRequest) (SupplierResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return SupplierResponse{}, apperr.Invalid("name is required")
	}
	sp := &Supplier{
		Name:          strings.TrimSpace(in.Name),
		ContactPerson: toNullString(in.ContactPerson),
		Phone:         toNullString(in.Phone),
		Email:         toNullString(in.Email),
		Address:       toNullString(in.Address),
	}
	if err := s.store.InsertSupplier(ctx, sp); err != nil {
		return SupplierResponse{}, err
	}
	return buildSupplierResponse(sp), nil
}

func (s *Service) ListSuppliers(ctx context.Context) ([]SupplierResponse, error) {
	items, err := s.store.ListSuppliers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]SupplierResponse, 0, len(items))
	for i := range items {
		out = append(out, buildSupplierResponse(&items[i]))
	}
	return out, nil
}

// ===== Parts =====

func (s *Service) CreatePart(ctx context.Context, in CreatePartRequest) (PartResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return PartResponse{}, apperr.Invalid("name is required")
	}
	if in.Quantity < 0 {
		return PartResponse{}, apperr.Invalid("quantity must be >= 0")
	}
	if in.Price.IsNegative() {
		return PartResponse{}, apperr.Invalid("price must be >= 0")
	}

	p := &Part{
		Name:                strings.TrimSpace(in.Name),
		Code:                toNullString(in.Code),
		Quantity:            in.Quantity,
		Price:               in.Price,
		SupplierID:          toNullInt64(in.SupplierID),
		DisassemblyRecordID: toNullInt64(in.DisassemblyRecordID),
		Description:         toNullString(in.Description),
		Location:            toNullString(in.Location),
	}
	if err := s.store.InsertPart(ctx, p); err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) {
			switch me.Number {
			case 1062:
				return PartResponse{}, apperr.Conflict("part code already exists")
			case 1452:
				return PartResponse{}, apperr.Invalid("invalid supplier_id or disassembly_record_id")
			}
		}
		return PartResponse{}, err
	}
	return buildPartResponse(p), nil
}

func (s *Service) GetPart(ctx context.Context, id int64) (PartResponse, error) {
	p, err := s.store.GetPartByID(ctx, id)
	if err != nil {
		return PartResponse{}, err
	}
	return buildPartResponse(p), nil
}

func (s *Service) ListParts(ctx context.Context, f PartFilter) ([]PartResponse, error) {
	items, err := s.store.ListParts(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]PartResponse, 0, len(items))
	for i := range items {
		out = append(out, buildPartResponse(&items[i]))
	}
	return out, nil
}

// ===== Sales =====

// SellPart は在庫チェックと減算・販売記録を両方成功か両方失敗で行う。
func (s *Service) SellPart(ctx context.Context, partID int64, in CreateSaleRequest) (SaleResponse, error) {
	if in.QuantitySold <= 0 {
		return SaleResponse{}, apperr.Invalid("quantity_sold must be > 0")
	}
	if !in.SalePrice.IsPositive() {
		return SaleResponse{}, apperr.Invalid("sale_price must be > 0")
	}
	soldOn, err := time.Parse(dateLayout, in.SaleDate)
	if err != nil {
		return SaleResponse{}, apperr.Invalid("invalid sale_date format, expected YYYY-MM-DD")
	}

	sale := &Sale{
		SaleULID:     s.id.NewULID(s.clock.Now()),
		PartID:       partID,
		QuantitySold: in.QuantitySold,
		SalePrice:    in.SalePrice,
		TotalAmount:  in.SalePrice.Mul(decimal.NewFromInt(int64(in.QuantitySold))),
		SoldOn:       soldOn,
		CustomerName: toNullString(in.CustomerName),
		Description:  toNullString(in.Description),
	}
	if err := s.store.CreateSale(ctx, sale); err != nil {
		return SaleResponse{}, err
	}
	return buildSaleResponse(sale, ""), nil
}

func (s *Service) ListSales(ctx context.Context) ([]SaleResponse, error) {
	items, err := s.store.ListSales(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]SaleResponse, 0, len(items))
	for i := range items {
		out = append(out, buildSaleResponse(&items[i].Sale, items[i].PartName))
	}
	return out, nil
}

// ===== helpers =====

func buildSupplierResponse(sp *Supplier) SupplierResponse {
	return SupplierResponse{
		SupplierID:    sp.SupplierID,
		Name:          sp.Name,
		ContactPerson: nullToPtr(sp.ContactPerson),
		Phone:         nullToPtr(sp.Phone),
		Email:         nullToPtr(sp.Email),
		Address:       nullToPtr(sp.Address),
		CreatedAt:     sp.CreatedAt,
	}
}

func buildPartResponse(p *Part) PartResponse {
	return PartResponse{
		PartID:              p.PartID,
		Name:                p.Name,
		Code:                nullToPtr(p.Code),
		Quantity:            p.Quantity,
		Price:               p.Price,
		SupplierID:          nullInt64ToPtr(p.SupplierID),
		DisassemblyRecordID: nullInt64ToPtr(p.DisassemblyRecordID),
		Description:         nullToPtr(p.Description),
		Location:            nullToPtr(p.Location),
		CreatedAt:           p.CreatedAt,
	}
}

func buildSaleResponse(sale *Sale, partName string) SaleResponse {
	return SaleResponse{
		SaleID:       sale.SaleID,
		SaleULID:     sale.SaleULID,
		PartID:       sale.PartID,
		PartName:     partName,
		QuantitySold: sale.QuantitySold,
		SalePrice:    sale.SalePrice,
		TotalAmount:  sale.TotalAmount,
		SaleDate:     sale.SoldOn.Format(dateLayout),
		CustomerName: nullToPtr(sale.CustomerName),
		Description:  nullToPtr(sale.Description),
	}
}

func toNullString(s *string) (ns sql.NullString) {
	if s == nil {
		return
	}
	if v := strings.TrimSpace(*s); v != "" {
		ns.Valid, ns.String = true, v
	}
	return
}

func nullToPtr(ns sql.NullString) *string {
	if ns.Valid {
		v := ns.String
		return &v
	}
	return nil
}

func toNullInt64(v *int64) (ni sql.NullInt64) {
	if v != nil && *v > 0 {
		ni.Valid, ni.Int64 = true, *v
	}
	return
}

func nullInt64ToPtr(ni sql.NullInt64) *int64 {
	if ni.Valid {
		v := ni.Int64
		return &v
	}
	return nil
}
