package cart

import (
	"context"
	"testing"

	"order_portal/internal/models"

	"github.com/shopspring/decimal"
)

type memoryPersister struct {
	slots map[string][]byte
	fail  bool
}

func newMemoryPersister() *memoryPersister {
	return &memoryPersister{slots: map[string][]byte{}}
}

func (m *memoryPersister) SaveCart(ctx context.Context, retailerID string, payload []byte) error {
	if m.fail {
		return context.DeadlineExceeded
	}
	m.slots[retailerID] = payload
	return nil
}

func (m *memoryPersister) LoadCart(ctx context.Context, retailerID string) ([]byte, error) {
	payload, ok := m.slots[retailerID]
	if !ok {
		return nil, nil
	}
	return payload, nil
}

func testSKU(id string, dealerPrice int64) *models.SKU {
	return &models.SKU{
		ID:           id,
		SKUCode:      "SKU-" + id,
		VariantLabel: "5g",
		DealerPrice:  decimal.NewFromInt(dealerPrice),
		MRP:          decimal.NewFromInt(dealerPrice * 2),
	}
}

func TestAddItemAccumulatesQuantity(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, "r1", newMemoryPersister())

	if err := s.AddItem(ctx, testSKU("a", 100), "Epoxy", "Acme", 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := s.AddItem(ctx, testSKU("a", 100), "Epoxy", "Acme", 3); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	lines := s.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", lines[0].Quantity)
	}
	if s.TotalItems() != 5 {
		t.Errorf("expected totalItems 5, got %d", s.TotalItems())
	}
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, "r1", newMemoryPersister())

	if err := s.AddItem(ctx, testSKU("a", 100), "Epoxy", "Acme", 0); err != ErrInvalidQuantity {
		t.Errorf("expected ErrInvalidQuantity for qty 0, got %v", err)
	}
	if err := s.AddItem(ctx, testSKU("a", 100), "Epoxy", "Acme", -1); err != ErrInvalidQuantity {
		t.Errorf("expected ErrInvalidQuantity for qty -1, got %v", err)
	}
	if s.TotalItems() != 0 {
		t.Errorf("cart should stay empty, got %d items", s.TotalItems())
	}
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, "r1", newMemoryPersister())

	if err := s.AddItem(ctx, testSKU("a", 100), "Epoxy", "Acme", 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := s.UpdateQuantity(ctx, "a", 0); err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	if len(s.Lines()) != 0 {
		t.Errorf("expected empty cart after setting quantity to 0")
	}
}

func TestRemoveAbsentItemIsNoop(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, "r1", newMemoryPersister())

	if err := s.AddItem(ctx, testSKU("a", 100), "Epoxy", "Acme", 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := s.RemoveItem(ctx, "missing"); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if len(s.Lines()) != 1 {
		t.Errorf("existing line should survive removing an absent id")
	}
}

func TestTotalsWorkedExample(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, "r1", newMemoryPersister())

	if err := s.AddItem(ctx, testSKU("a", 100), "Epoxy", "Acme", 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := s.AddItem(ctx, testSKU("b", 50), "Sealant", "Acme", 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if s.TotalItems() != 3 {
		t.Errorf("expected totalItems 3, got %d", s.TotalItems())
	}
	if want := decimal.NewFromInt(250); !s.TotalAmount().Equal(want) {
		t.Errorf("expected totalAmount %s, got %s", want, s.TotalAmount())
	}
}

func TestPersistRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := newMemoryPersister()

	s := Open(ctx, "r1", p)
	if err := s.AddItem(ctx, testSKU("a", 100), "Epoxy", "Acme", 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := s.AddItem(ctx, testSKU("b", 50), "Sealant", "Bond", 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	reloaded := Open(ctx, "r1", p)
	got := reloaded.Lines()
	want := s.Lines()
	if len(got) != len(want) {
		t.Fatalf("expected %d lines after reload, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].SKUID != want[i].SKUID || got[i].Quantity != want[i].Quantity ||
			!got[i].DealerPrice.Equal(want[i].DealerPrice) ||
			got[i].ProductName != want[i].ProductName || got[i].BrandName != want[i].BrandName {
			t.Errorf("line %d mismatch after reload: got %+v want %+v", i, got[i], want[i])
		}
	}
}

func TestCorruptPayloadResetsToEmpty(t *testing.T) {
	ctx := context.Background()
	p := newMemoryPersister()
	p.slots["r1"] = []byte("{not json")

	s := Open(ctx, "r1", p)
	if len(s.Lines()) != 0 {
		t.Errorf("corrupt slot should load as empty cart")
	}
	if s.TotalItems() != 0 {
		t.Errorf("expected zero items, got %d", s.TotalItems())
	}
}

func TestClearEmptiesCart(t *testing.T) {
	ctx := context.Background()
	p := newMemoryPersister()
	s := Open(ctx, "r1", p)

	if err := s.AddItem(ctx, testSKU("a", 100), "Epoxy", "Acme", 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if s.TotalItems() != 0 {
		t.Errorf("expected empty cart after clear")
	}

	reloaded := Open(ctx, "r1", p)
	if len(reloaded.Lines()) != 0 {
		t.Errorf("clear should persist the empty state")
	}
}
