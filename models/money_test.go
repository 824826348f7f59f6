package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoneyFromString(t *testing.T) {
	m, err := MoneyFromString("19.98")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if m.String() != "19.98" {
		t.Fatalf("expected 19.98, got %s", m.String())
	}

	if _, err := MoneyFromString("nineteen"); err == nil {
		t.Fatal("expected error for a non-numeric amount")
	}
}

func TestMoneyAdditionDoesNotDrift(t *testing.T) {
	price, _ := MoneyFromString("0.10")
	total := decimal.Zero
	for i := 0; i < 100; i++ {
		total = total.Add(price.Decimal)
	}
	if got := NewMoney(total).String(); got != "10" {
		t.Fatalf("expected exactly 10, got %s", got)
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	m, _ := MoneyFromString("4.50")
	raw, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `"4.5"` {
		t.Fatalf("expected decimal string, got %s", raw)
	}

	var back Money
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Decimal.Equal(m.Decimal) {
		t.Fatalf("round trip changed the value: %s vs %s", back, m)
	}
}
