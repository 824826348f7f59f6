package session

import (
	"context"
	"testing"

	"readira/models"
)

func line(materialID string, qty int) models.CartLine {
	price, _ := models.MoneyFromString("9.99")
	return models.CartLine{
		MaterialID: materialID,
		Title:      "Book " + materialID,
		UnitPrice:  price,
		Quantity:   qty,
		LineTotal:  price,
	}
}

func TestRemoveLineIdempotent(t *testing.T) {
	s := New("u1")
	s.RemoveLine("missing")
	if s.Dirty() {
		t.Fatal("removing an absent line should not dirty the session")
	}

	s.SetLine(line("m1", 1))
	s.RemoveLine("m1")
	if !s.CartEmpty() {
		t.Fatal("expected empty cart after remove")
	}
}

func TestSelectPlanNoopOnSameID(t *testing.T) {
	s := New("u1")
	s.SelectPlan("p1")
	if !s.Dirty() {
		t.Fatal("selecting a plan should dirty the session")
	}

	s2 := New("u1")
	s2.SelectedPlan = "p1"
	s2.SelectPlan("p1")
	if s2.Dirty() {
		t.Fatal("re-selecting the same plan should be a no-op")
	}
}

func TestResetCheckoutClearsEverything(t *testing.T) {
	s := New("u1")
	s.SetLine(line("m1", 2))
	s.OrderToken = "tok"
	s.SelectedPlan = "p1"

	s.ResetCheckout()

	if !s.CartEmpty() || s.OrderToken != "" || s.SelectedPlan != "" {
		t.Fatalf("reset left state behind: %+v", s)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	s, err := store.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	s.SetLine(line("m1", 3))
	s.OrderToken = "tok"
	if err := store.Save(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.OrderToken != "tok" {
		t.Fatalf("token lost on round trip: %q", got.OrderToken)
	}
	l, ok := got.Line("m1")
	if !ok || l.Quantity != 3 {
		t.Fatalf("cart line lost on round trip: %+v ok=%v", l, ok)
	}
	if got.Dirty() {
		t.Fatal("freshly loaded session should be clean")
	}
}
