package checkout

import (
	"strconv"
	"strings"
	"time"

	"readira/models"
)

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// ValidatePayment checks every card rule and accumulates all violations so
// the form can be re-rendered with the full list.
func ValidatePayment(input models.PaymentInput, now time.Time) []string {
	var violations []string

	if len(input.CardNumber) != 16 || !allDigits(input.CardNumber) {
		violations = append(violations, "Card number must be exactly 16 digits")
	}

	if len(strings.Fields(input.CardholderName)) < 2 {
		violations = append(violations, "Cardholder name must include first and last name")
	}

	if ok, msg := checkExpiry(input.CardExpiry, now); !ok {
		violations = append(violations, msg)
	}

	if len(input.CardCVV) != 3 || !allDigits(input.CardCVV) {
		violations = append(violations, "CVV must be exactly 3 digits")
	}

	return violations
}

func checkExpiry(expiry string, now time.Time) (bool, string) {
	if len(expiry) != 5 || expiry[2] != '/' {
		return false, "Expiry must be in MM/YY format"
	}
	monthPart, yearPart := expiry[:2], expiry[3:]
	if !allDigits(monthPart) || !allDigits(yearPart) {
		return false, "Expiry must be in MM/YY format"
	}

	month, _ := strconv.Atoi(monthPart)
	if month < 1 || month > 12 {
		return false, "Expiry month must be between 01 and 12"
	}

	year, _ := strconv.Atoi(yearPart)
	expires := time.Date(2000+year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if expires.Before(currentMonth) {
		return false, "Card has expired"
	}
	return true, ""
}
