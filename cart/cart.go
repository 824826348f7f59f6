// Package cart owns the session cart: add/remove/totals over snapshotted
// lines. Prices are fixed-point decimals end to end.
package cart

import (
	"errors"

	"readira/models"
	"readira/session"

	"github.com/shopspring/decimal"
)

// ErrInvalidQuantity rejects non-positive quantities on add.
var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

// Add increments an existing line or creates a new one snapshotting the
// material's current title, thumbnail and price. line_total is always
// recomputed as round(quantity * unit_price, 2).
func Add(s *session.Session, material models.ReadingMaterial, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	line, ok := s.Line(material.MaterialID)
	if !ok {
		line = models.CartLine{
			MaterialID: material.MaterialID,
			Title:      material.Title,
			Thumbnail:  material.Thumbnail,
			UnitPrice:  material.Price,
		}
	}
	line.Quantity += quantity
	line.LineTotal = lineTotal(line.UnitPrice, line.Quantity)
	s.SetLine(line)
	return nil
}

// Remove is idempotent; removing an absent material is a no-op.
func Remove(s *session.Session, materialID string) {
	s.RemoveLine(materialID)
}

// Totals sums all line totals, plus the selected plan's price when present.
func Totals(s *session.Session, plan *models.SubscriptionPlan) models.Money {
	total := decimal.Zero
	for _, line := range s.Cart {
		total = total.Add(line.LineTotal.Decimal)
	}
	if plan != nil {
		total = total.Add(plan.Price.Decimal)
	}
	return models.NewMoney(total.Round(2))
}

func lineTotal(unitPrice models.Money, quantity int) models.Money {
	return models.NewMoney(unitPrice.Decimal.Mul(decimal.NewFromInt(int64(quantity))).Round(2))
}
