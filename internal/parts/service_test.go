package parts

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"GMS-backend/internal/platform/apperr"
)

// fakeStore は在庫チェック込みの販売トランザクションを模倣するインメモリ実装。
type fakeStore struct {
	suppliers map[int64]*Supplier
	parts     map[int64]*Part
	sales     []Sale
	nextID    int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		suppliers: map[int64]*Supplier{},
		parts:     map[int64]*Part{},
		nextID:    1,
	}
}

func (f *fakeStore) InsertSupplier(_ context.Context, sp *Supplier) error {
	sp.SupplierID = f.nextID
	f.nextID++
	f.suppliers[sp.SupplierID] = sp
	return nil
}

func (f *fakeStore) GetSupplierByID(_ context.Context, id int64) (*Supplier, error) {
	sp, ok := f.suppliers[id]
	if !ok {
		return nil, apperr.NotFound("supplier not found")
	}
	return sp, nil
}

func (f *fakeStore) ListSuppliers(_ context.Context) ([]Supplier, error) {
	out := make([]Supplier, 0, len(f.suppliers))
	for _, sp := range f.suppliers {
		out = append(out, *sp)
	}
	return out, nil
}

func (f *fakeStore) InsertPart(_ context.Context, p *Part) error {
	p.PartID = f.nextID
	f.nextID++
	f.parts[p.PartID] = p
	return nil
}

func (f *fakeStore) GetPartByID(_ context.Context, id int64) (*Part, error) {
	p, ok := f.parts[id]
	if !ok {
		return nil, apperr.NotFound("part not found")
	}
	return p, nil
}

func (f *fakeStore) ListParts(_ context.Context, _ PartFilter) ([]Part, error) {
	out := make([]Part, 0, len(f.parts))
	for _, p := range f.parts {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeStore) CreateSale(_ context.Context, sale *Sale) error {
	p, ok := f.parts[sale.PartID]
	if !ok {
		return apperr.NotFound("part not found")
	}
	if sale.QuantitySold > p.Quantity {
		return apperr.InsufficientStock()
	}
	p.Quantity -= sale.QuantitySold
	sale.SaleID = f.nextID
	f.nextID++
	f.sales = append(f.sales, *sale)
	return nil
}

func (f *fakeStore) ListSales(_ context.Context) ([]SaleRow, error) {
	out := make([]SaleRow, 0, len(f.sales))
	for _, s := range f.sales {
		out = append(out, SaleRow{Sale: s, PartName: f.parts[s.PartID].Name})
	}
	return out, nil
}

func seedPart(store *fakeStore, qty int) int64 {
	p := &Part{Name: "alternator", Quantity: qty, Price: decimal.NewFromInt(80)}
	_ = store.InsertPart(context.Background(), p)
	return p.PartID
}

func TestSellPartDecrementsStock(t *testing.T) {
	store := newFakeStore()
	svc := NewServiceWithStore(store)
	partID := seedPart(store, 5)

	res, err := svc.SellPart(context.Background(), partID, CreateSaleRequest{
		QuantitySold: 3,
		SalePrice:    decimal.NewFromInt(120),
		SaleDate:     "2024-03-01",
	})
	if err != nil {
		t.Fatalf("SellPart: %v", err)
	}
	if want := decimal.NewFromInt(360); !res.TotalAmount.Equal(want) {
		t.Fatalf("total = %s, want %s", res.TotalAmount, want)
	}
	if store.parts[partID].Quantity != 2 {
		t.Fatalf("quantity = %d, want 2", store.parts[partID].Quantity)
	}
	if res.SaleULID == "" {
		t.Fatalf("expected sale ulid to be set")
	}
}

func TestSellPartInsufficientStock(t *testing.T) {
	store := newFakeStore()
	svc := NewServiceWithStore(store)
	partID := seedPart(store, 5)

	_, err := svc.SellPart(context.Background(), partID, CreateSaleRequest{
		QuantitySold: 10,
		SalePrice:    decimal.NewFromInt(120),
		SaleDate:     "2024-03-01",
	})
	var api *apperr.APIError
	if !errors.As(err, &api) || api.Code != apperr.CodeInsufficientStock {
		t.Fatalf("expected INSUFFICIENT_STOCK, got %v", err)
	}
	// 在庫も販売記録も変化しない
	if store.parts[partID].Quantity != 5 {
		t.Fatalf("quantity = %d, want 5", store.parts[partID].Quantity)
	}
	if len(store.sales) != 0 {
		t.Fatalf("expected no sale rows, got %d", len(store.sales))
	}
}

func TestSellPartValidation(t *testing.T) {
	store := newFakeStore()
	svc := NewServiceWithStore(store)
	partID := seedPart(store, 5)

	cases := []struct {
		name string
		req  CreateSaleRequest
	}{
		{"zero quantity", CreateSaleRequest{QuantitySold: 0, SalePrice: decimal.NewFromInt(120), SaleDate: "2024-03-01"}},
		{"zero price", CreateSaleRequest{QuantitySold: 1, SalePrice: decimal.Zero, SaleDate: "2024-03-01"}},
		{"bad date", CreateSaleRequest{QuantitySold: 1, SalePrice: decimal.NewFromInt(120), SaleDate: "03/01/2024"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := svc.SellPart(context.Background(), partID, c.req)
			var api *apperr.APIError
			if !errors.As(err, &api) || api.Code != apperr.CodeInvalidArgument {
				t.Fatalf("expected INVALID_ARGUMENT, got %v", err)
			}
		})
	}
}

func TestCreatePartWithoutCode(t *testing.T) {
	svc := NewServiceWithStore(newFakeStore())

	res, err := svc.CreatePart(context.Background(), CreatePartRequest{
		Name: "bumper", Quantity: 2, Price: decimal.NewFromInt(40),
	})
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}
	if res.Code != nil {
		t.Fatalf("code = %v, want nil", res.Code)
	}

	blank := "   "
	res, err = svc.CreatePart(context.Background(), CreatePartRequest{
		Name: "hood", Quantity: 1, Price: decimal.NewFromInt(60), Code: &blank,
	})
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}
	if res.Code != nil {
		t.Fatalf("blank code = %v, want nil", res.Code)
	}
}

func TestCreatePartValidation(t *testing.T) {
	svc := NewServiceWithStore(newFakeStore())

	_, err := svc.CreatePart(context.Background(), CreatePartRequest{Name: "  ", Quantity: 1, Price: decimal.NewFromInt(10)})
	var api *apperr.APIError
	if !errors.As(err, &api) || api.Code != apperr.CodeInvalidArgument {
		t.Fatalf("expected INVALID_ARGUMENT for empty name, got %v", err)
	}

	_, err = svc.CreatePart(context.Background(), CreatePartRequest{Name: "bumper", Quantity: -1, Price: decimal.NewFromInt(10)})
	if !errors.As(err, &api) || api.Code != apperr.CodeInvalidArgument {
		t.Fatalf("expected INVALID_ARGUMENT for negative quantity, got %v", err)
	}
}
