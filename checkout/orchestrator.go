// Package checkout drives the cart → order/subscription commit pipeline:
// token validation, payment validation, and the single transactional write
// that turns session state into persisted rows.
package checkout

import (
	"context"
	"errors"
	"sort"
	"time"

	"readira/catalog"
	"readira/models"
	"readira/session"
	"readira/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SubscriptionGuard answers whether a user already holds an active,
// unexpired subscription for a plan.
type SubscriptionGuard interface {
	HasActive(ctx context.Context, userID, planID string) (bool, error)
}

// Committer persists the order rows and the optional subscription
// atomically: all rows or none.
type Committer interface {
	Commit(ctx context.Context, orders []models.Order, sub *models.Subscription) error
}

type Orchestrator struct {
	Sessions session.Store
	Catalog  catalog.Source
	Guard    SubscriptionGuard
	Store    Committer
	Now      func() time.Time
}

// View is the payload the payment form is rendered from.
type View struct {
	Lines []models.CartLine        `json:"lines"`
	Plan  *models.SubscriptionPlan `json:"plan,omitempty"`
	Total models.Money             `json:"total"`
	Token string                   `json:"token"`
}

// Result reports what a successful commit persisted.
type Result struct {
	Orders       []models.Order       `json:"orders"`
	Subscription *models.Subscription `json:"subscription,omitempty"`
	Total        models.Money         `json:"total"`
}

func (o *Orchestrator) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// Begin moves a checkout attempt from Idle to Validating: the session must
// hold a non-empty cart or a selected plan, the supplied token must match,
// and the duplicate-subscription guard must pass. Used both to render the
// form (GET) and as the first step of Commit.
func (o *Orchestrator) Begin(ctx context.Context, userID, token string) (*session.Session, *models.SubscriptionPlan, error) {
	sess, err := o.Sessions.Load(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	if token == "" || sess.OrderToken == "" || token != sess.OrderToken {
		return nil, nil, ErrInvalidSession
	}

	plan, err := o.resolvePlan(ctx, sess)
	if err != nil {
		return nil, nil, err
	}

	if sess.CartEmpty() && plan == nil {
		return nil, nil, ErrInvalidSession
	}

	if plan != nil {
		active, err := o.Guard.HasActive(ctx, userID, plan.PlanID)
		if err != nil {
			return nil, nil, err
		}
		if active {
			return nil, nil, ErrDuplicateSubscription
		}
	}

	return sess, plan, nil
}

// resolvePlan returns the selected plan, dropping a stale selection whose id
// no longer resolves instead of failing the checkout.
func (o *Orchestrator) resolvePlan(ctx context.Context, sess *session.Session) (*models.SubscriptionPlan, error) {
	if sess.SelectedPlan == "" {
		return nil, nil
	}
	plan, err := o.Catalog.Plan(ctx, sess.SelectedPlan)
	if errors.Is(err, catalog.ErrNotFound) {
		sess.ClearPlan()
		if saveErr := o.Sessions.Save(ctx, sess); saveErr != nil {
			return nil, saveErr
		}
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// Render produces the payment form payload for a valid checkout session.
func (o *Orchestrator) Render(ctx context.Context, userID, token string) (View, error) {
	sess, plan, err := o.Begin(ctx, userID, token)
	if err != nil {
		return View{}, err
	}
	return View{
		Lines: sortedLines(sess),
		Plan:  plan,
		Total: grandTotal(sess, plan),
		Token: sess.OrderToken,
	}, nil
}

// Commit validates the payment fields and atomically persists one Order per
// cart line plus at most one Subscription, then clears cart, token and plan
// together. On any rejection the session is left untouched so the user can
// correct and resubmit with the same token.
func (o *Orchestrator) Commit(ctx context.Context, user models.User, token string, input models.PaymentInput) (Result, error) {
	sess, plan, err := o.Begin(ctx, user.UserID, token)
	if err != nil {
		return Result{}, err
	}

	now := o.now()
	if violations := ValidatePayment(input, now); len(violations) > 0 {
		return Result{}, &ValidationError{Violations: violations}
	}

	// Audit fingerprint, not a credential: a fresh nonce keeps identical
	// card details from producing identical hashes across checkouts.
	sessionHash := utils.HashIt(input.CardNumber + input.CardExpiry + input.CardholderName + uuid.NewString())

	deliveryAddress := input.DeliveryAddress
	if deliveryAddress == "" {
		deliveryAddress = user.DeliveryAddress()
	}

	var orders []models.Order
	for _, line := range sortedLines(sess) {
		total := line.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(line.Quantity))).Round(2)
		orders = append(orders, models.Order{
			OrderID:         "ORD" + utils.GenerateRandomString(13),
			UserID:          user.UserID,
			MaterialID:      line.MaterialID,
			MaterialTitle:   line.Title,
			Quantity:        line.Quantity,
			PricePerItem:    line.UnitPrice,
			TotalCost:       models.NewMoney(total),
			Status:          models.OrderPaid,
			DeliveryAddress: deliveryAddress,
			UserAddress:     user.DeliveryAddress(),
			ClientFullName:  input.CardholderName,
			SubmittedAt:     now,
			CardNumber:      input.CardNumber,
			CardExpiry:      input.CardExpiry,
			CardCVV:         input.CardCVV,
			CardholderName:  input.CardholderName,
			BuySessionHash:  sessionHash,
		})
	}

	var sub *models.Subscription
	if plan != nil {
		// Re-checked at commit time: a concurrent request may have created
		// the subscription between form render and submit.
		active, err := o.Guard.HasActive(ctx, user.UserID, plan.PlanID)
		if err != nil {
			return Result{}, err
		}
		if active {
			return Result{}, ErrDuplicateSubscription
		}

		duration := plan.DurationDays
		if duration <= 0 {
			duration = 30
		}
		sub = &models.Subscription{
			SubscriptionID: "SUB" + utils.GenerateRandomString(13),
			UserID:         user.UserID,
			PlanID:         plan.PlanID,
			PlanName:       plan.Name,
			StartDate:      now,
			EndDate:        now.AddDate(0, 0, duration),
			Active:         true,
		}
	}

	if err := o.Store.Commit(ctx, orders, sub); err != nil {
		return Result{}, err
	}

	total := grandTotal(sess, plan)
	sess.ResetCheckout()
	if err := o.Sessions.Save(ctx, sess); err != nil {
		return Result{}, err
	}

	return Result{Orders: orders, Subscription: sub, Total: total}, nil
}

func sortedLines(sess *session.Session) []models.CartLine {
	lines := make([]models.CartLine, 0, len(sess.Cart))
	for _, line := range sess.Cart {
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].MaterialID < lines[j].MaterialID })
	return lines
}

func grandTotal(sess *session.Session, plan *models.SubscriptionPlan) models.Money {
	total := decimal.Zero
	for _, line := range sess.Cart {
		total = total.Add(line.LineTotal.Decimal)
	}
	if plan != nil {
		total = total.Add(plan.Price.Decimal)
	}
	return models.NewMoney(total.Round(2))
}
