// Package cart holds one retailer's pre-order staging list. Every mutation
// writes the whole serialized line list back to the retailer's durable slot,
// last write wins. Totals are recomputed on every read, never cached.
package cart

import (
	"context"
	"encoding/json"

	"order_portal/internal/models"

	"github.com/shopspring/decimal"
)

// Persister is the durable slot a cart serializes into. Load errors on an
// empty slot; the store treats every load failure as an empty cart.
type Persister interface {
	SaveCart(ctx context.Context, retailerID string, payload []byte) error
	LoadCart(ctx context.Context, retailerID string) ([]byte, error)
}

// Line is one cart entry. Product and brand names are captured at add time so
// the cart renders without re-joining the catalog.
type Line struct {
	SKUID        string          `json:"sku_id"`
	SKUCode      string          `json:"sku_code"`
	VariantLabel string          `json:"variant_label"`
	ProductName  string          `json:"product_name"`
	BrandName    string          `json:"brand_name"`
	DealerPrice  decimal.Decimal `json:"dealer_price"`
	Quantity     int             `json:"quantity"`
}

type Store struct {
	retailerID string
	persister  Persister
	lines      []Line
}

// Open loads the retailer's cart from its slot. A missing or corrupt payload
// yields an empty cart; no error is surfaced for that case.
func Open(ctx context.Context, retailerID string, p Persister) *Store {
	s := &Store{retailerID: retailerID, persister: p}
	payload, err := p.LoadCart(ctx, retailerID)
	if err != nil || len(payload) == 0 {
		return s
	}
	var lines []Line
	if err := json.Unmarshal(payload, &lines); err != nil {
		// Corrupt slot: silently reset to empty.
		return s
	}
	s.lines = lines
	return s
}

// AddItem appends a new line for the SKU, or bumps the quantity of the
// existing one. Non-positive quantities are rejected.
func (s *Store) AddItem(ctx context.Context, sku *models.SKU, productName, brandName string, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	for i := range s.lines {
		if s.lines[i].SKUID == sku.ID {
			s.lines[i].Quantity += qty
			return s.persist(ctx)
		}
	}
	s.lines = append(s.lines, Line{
		SKUID:        sku.ID,
		SKUCode:      sku.SKUCode,
		VariantLabel: sku.VariantLabel,
		ProductName:  productName,
		BrandName:    brandName,
		DealerPrice:  sku.DealerPrice,
		Quantity:     qty,
	})
	return s.persist(ctx)
}

// UpdateQuantity sets the absolute quantity of a line. Zero or less removes
// the line.
func (s *Store) UpdateQuantity(ctx context.Context, skuID string, qty int) error {
	if qty <= 0 {
		return s.RemoveItem(ctx, skuID)
	}
	for i := range s.lines {
		if s.lines[i].SKUID == skuID {
			s.lines[i].Quantity = qty
			break
		}
	}
	return s.persist(ctx)
}

// RemoveItem drops a line. Removing an absent SKU is a no-op.
func (s *Store) RemoveItem(ctx context.Context, skuID string) error {
	kept := s.lines[:0]
	for _, l := range s.lines {
		if l.SKUID != skuID {
			kept = append(kept, l)
		}
	}
	s.lines = kept
	return s.persist(ctx)
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) error {
	s.lines = nil
	return s.persist(ctx)
}

// Lines returns a copy of the current line list in insertion order.
func (s *Store) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// TotalItems is the sum of all line quantities.
func (s *Store) TotalItems() int {
	total := 0
	for _, l := range s.lines {
		total += l.Quantity
	}
	return total
}

// TotalAmount is the sum of quantity times dealer price across all lines.
func (s *Store) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.DealerPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

func (s *Store) persist(ctx context.Context) error {
	payload, err := json.Marshal(s.lines)
	if err != nil {
		return err
	}
	return s.persister.SaveCart(ctx, s.retailerID, payload)
}
