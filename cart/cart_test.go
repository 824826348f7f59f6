package cart

import (
	"testing"

	"readira/models"
	"readira/session"
)

func material(id, price string) models.ReadingMaterial {
	p, err := models.MoneyFromString(price)
	if err != nil {
		panic(err)
	}
	return models.ReadingMaterial{
		MaterialID: id,
		Title:      "Book " + id,
		Price:      p,
		Enabled:    true,
	}
}

func TestAddRejectsNonPositiveQuantity(t *testing.T) {
	s := session.New("u1")
	for _, qty := range []int{0, -1, -99} {
		if err := Add(s, material("m1", "9.99"), qty); err != ErrInvalidQuantity {
			t.Fatalf("quantity %d: expected ErrInvalidQuantity, got %v", qty, err)
		}
	}
	if !s.CartEmpty() {
		t.Fatal("rejected add must not touch the cart")
	}
}

func TestAddAccumulatesQuantity(t *testing.T) {
	s := session.New("u1")
	m := material("m1", "9.99")

	if err := Add(s, m, 1); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := Add(s, m, 2); err != nil {
		t.Fatalf("second add: %v", err)
	}

	line, ok := s.Line("m1")
	if !ok {
		t.Fatal("line missing after add")
	}
	if line.Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", line.Quantity)
	}
	if got := line.LineTotal.String(); got != "29.97" {
		t.Fatalf("expected line total 29.97, got %s", got)
	}
}

func TestAddSnapshotsPriceAtFirstAdd(t *testing.T) {
	s := session.New("u1")
	if err := Add(s, material("m1", "10.00"), 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	// Catalog price changes must not rewrite an existing line.
	if err := Add(s, material("m1", "12.50"), 1); err != nil {
		t.Fatalf("add after price change: %v", err)
	}

	line, _ := s.Line("m1")
	if got := line.UnitPrice.String(); got != "10" {
		t.Fatalf("expected snapshotted unit price 10, got %s", got)
	}
	if got := line.LineTotal.String(); got != "20" {
		t.Fatalf("expected line total 20, got %s", got)
	}
}

func TestTotalsIncludePlanPrice(t *testing.T) {
	s := session.New("u1")
	if err := Add(s, material("m1", "9.99"), 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	planPrice, _ := models.MoneyFromString("4.50")
	plan := &models.SubscriptionPlan{PlanID: "p1", Name: "Basic", Price: planPrice}

	if got := Totals(s, plan).String(); got != "24.48" {
		t.Fatalf("expected total 24.48, got %s", got)
	}
	if got := Totals(s, nil).String(); got != "19.98" {
		t.Fatalf("expected cart-only total 19.98, got %s", got)
	}
}

func TestRemoveAbsentLineIsNoop(t *testing.T) {
	s := session.New("u1")
	Remove(s, "nothing")
	if s.Dirty() {
		t.Fatal("removing an absent line must not dirty the session")
	}
}
