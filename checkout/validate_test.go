package checkout

import (
	"strings"
	"testing"
	"time"

	"readira/models"
)

var checkoutNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func validInput() models.PaymentInput {
	return models.PaymentInput{
		CardNumber:     "4111111111111111",
		CardholderName: "Jane Doe",
		CardExpiry:     "12/27",
		CardCVV:        "123",
	}
}

func TestValidPaymentHasNoViolations(t *testing.T) {
	if got := ValidatePayment(validInput(), checkoutNow); len(got) != 0 {
		t.Fatalf("expected no violations, got %v", got)
	}
}

func TestCardNumberMustBeSixteenDigits(t *testing.T) {
	for _, number := range []string{"123", "41111111111111111", "4111-1111-1111-11", ""} {
		input := validInput()
		input.CardNumber = number
		got := ValidatePayment(input, checkoutNow)
		if len(got) != 1 || !strings.Contains(got[0], "16 digits") {
			t.Fatalf("card %q: expected single card-number violation, got %v", number, got)
		}
	}
}

func TestCardholderNameNeedsTwoTokens(t *testing.T) {
	for _, name := range []string{"", "Prince", "  Prince  "} {
		input := validInput()
		input.CardholderName = name
		got := ValidatePayment(input, checkoutNow)
		if len(got) != 1 || !strings.Contains(got[0], "first and last name") {
			t.Fatalf("name %q: expected single name violation, got %v", name, got)
		}
	}
}

func TestExpiryRules(t *testing.T) {
	cases := []struct {
		expiry string
		want   string
	}{
		{"1227", "MM/YY format"},
		{"12-27", "MM/YY format"},
		{"ab/27", "MM/YY format"},
		{"13/25", "between 01 and 12"},
		{"00/25", "between 01 and 12"},
		{"05/25", "expired"},
		{"05/24", "expired"},
	}
	for _, tc := range cases {
		input := validInput()
		input.CardExpiry = tc.expiry
		got := ValidatePayment(input, checkoutNow)
		if len(got) != 1 || !strings.Contains(got[0], tc.want) {
			t.Fatalf("expiry %q: expected violation containing %q, got %v", tc.expiry, tc.want, got)
		}
	}
}

func TestExpiryCurrentMonthStillValid(t *testing.T) {
	input := validInput()
	input.CardExpiry = "06/25"
	if got := ValidatePayment(input, checkoutNow); len(got) != 0 {
		t.Fatalf("card expiring this month must pass, got %v", got)
	}
}

func TestCVVMustBeThreeDigits(t *testing.T) {
	for _, cvv := range []string{"", "12", "1234", "12a"} {
		input := validInput()
		input.CardCVV = cvv
		got := ValidatePayment(input, checkoutNow)
		if len(got) != 1 || !strings.Contains(got[0], "CVV") {
			t.Fatalf("cvv %q: expected single CVV violation, got %v", cvv, got)
		}
	}
}

func TestViolationsAccumulate(t *testing.T) {
	got := ValidatePayment(models.PaymentInput{}, checkoutNow)
	if len(got) != 4 {
		t.Fatalf("empty payment should fail all four rules, got %v", got)
	}
}
