package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"readira/catalog"
	"readira/models"
	"readira/session"
)

type fakeGuard struct {
	active map[string]bool
	calls  int
}

func (g *fakeGuard) HasActive(ctx context.Context, userID, planID string) (bool, error) {
	g.calls++
	return g.active[userID+"/"+planID], nil
}

type fakeCommitter struct {
	orders  []models.Order
	sub     *models.Subscription
	commits int
	err     error
}

func (c *fakeCommitter) Commit(ctx context.Context, orders []models.Order, sub *models.Subscription) error {
	if c.err != nil {
		return c.err
	}
	c.commits++
	c.orders = orders
	c.sub = sub
	return nil
}

func mustMoney(t *testing.T, s string) models.Money {
	t.Helper()
	m, err := models.MoneyFromString(s)
	if err != nil {
		t.Fatalf("bad money literal %q: %v", s, err)
	}
	return m
}

type fixture struct {
	orch  *Orchestrator
	store *session.MemoryStore
	guard *fakeGuard
	sink  *fakeCommitter
	now   time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	source := catalog.NewMemory()
	source.Materials["m1"] = models.ReadingMaterial{
		MaterialID: "m1", Title: "Dune", Price: mustMoney(t, "9.99"), Enabled: true,
	}
	source.Plans["p1"] = models.SubscriptionPlan{
		PlanID: "p1", Name: "Monthly", Price: mustMoney(t, "4.50"), DurationDays: 30,
	}
	source.Plans["p90"] = models.SubscriptionPlan{
		PlanID: "p90", Name: "Quarterly", Price: mustMoney(t, "12.00"), DurationDays: 90,
	}

	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	f := &fixture{
		store: session.NewMemoryStore(),
		guard: &fakeGuard{active: make(map[string]bool)},
		sink:  &fakeCommitter{},
		now:   now,
	}
	f.orch = &Orchestrator{
		Sessions: f.store,
		Catalog:  source,
		Guard:    f.guard,
		Store:    f.sink,
		Now:      func() time.Time { return now },
	}
	return f
}

// seed puts a session with one cart line (and optionally a plan) into the
// store and returns its checkout token.
func (f *fixture) seed(t *testing.T, userID, planID string) string {
	t.Helper()
	ctx := context.Background()

	sess, err := f.store.Load(ctx, userID)
	if err != nil {
		t.Fatalf("seed load: %v", err)
	}
	price := mustMoney(t, "9.99")
	sess.SetLine(models.CartLine{
		MaterialID: "m1",
		Title:      "Dune",
		UnitPrice:  price,
		Quantity:   2,
		LineTotal:  mustMoney(t, "19.98"),
	})
	if planID != "" {
		sess.SelectPlan(planID)
	}
	token := EnsureToken(sess)
	if err := f.store.Save(ctx, sess); err != nil {
		t.Fatalf("seed save: %v", err)
	}
	return token
}

func testUser() models.User {
	return models.User{
		UserID:   "u1",
		Email:    "jane@example.com",
		FullName: "Jane Doe",
		Street:   "1 Main St",
		City:     "Springfield",
		Country:  "US",
	}
}

func payment() models.PaymentInput {
	return models.PaymentInput{
		CardNumber:     "4111111111111111",
		CardholderName: "Jane Doe",
		CardExpiry:     "12/27",
		CardCVV:        "123",
	}
}

func TestCommitRejectsWrongToken(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "u1", "")

	_, err := f.orch.Commit(context.Background(), testUser(), "bogus", payment())
	if !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
	if f.sink.commits != 0 {
		t.Fatal("nothing may be persisted on a token mismatch")
	}
}

func TestCommitRejectsEmptySession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Token but no cart and no plan.
	sess, _ := f.store.Load(ctx, "u1")
	token := EnsureToken(sess)
	if err := f.store.Save(ctx, sess); err != nil {
		t.Fatalf("save: %v", err)
	}

	_, err := f.orch.Commit(ctx, testUser(), token, payment())
	if !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestCommitPersistsOrdersAndClearsSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	token := f.seed(t, "u1", "")

	result, err := f.orch.Commit(ctx, testUser(), token, payment())
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	if len(result.Orders) != 1 {
		t.Fatalf("expected one order per cart line, got %d", len(result.Orders))
	}
	order := result.Orders[0]
	if order.Status != models.OrderPaid {
		t.Fatalf("expected status %q, got %q", models.OrderPaid, order.Status)
	}
	if order.Quantity != 2 || order.TotalCost.String() != "19.98" {
		t.Fatalf("wrong totals: qty=%d total=%s", order.Quantity, order.TotalCost.String())
	}
	if order.BuySessionHash == "" {
		t.Fatal("expected a buy session hash")
	}
	if result.Subscription != nil {
		t.Fatal("no plan selected, no subscription expected")
	}
	if result.Total.String() != "19.98" {
		t.Fatalf("expected total 19.98, got %s", result.Total.String())
	}

	// Cart, token and plan are gone afterwards.
	sess, _ := f.store.Load(ctx, "u1")
	if !sess.CartEmpty() || sess.OrderToken != "" || sess.SelectedPlan != "" {
		t.Fatalf("session not cleared: %+v", sess)
	}
}

func TestCommitCreatesSubscriptionFromPlan(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	token := f.seed(t, "u1", "p90")

	result, err := f.orch.Commit(ctx, testUser(), token, payment())
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	sub := result.Subscription
	if sub == nil {
		t.Fatal("expected a subscription")
	}
	if sub.PlanID != "p90" || !sub.Active {
		t.Fatalf("wrong subscription: %+v", sub)
	}
	if want := f.now.AddDate(0, 0, 90); !sub.EndDate.Equal(want) {
		t.Fatalf("expected end %v, got %v", want, sub.EndDate)
	}
	if result.Total.String() != "31.98" {
		t.Fatalf("expected total 31.98, got %s", result.Total.String())
	}
}

func TestCommitRejectsDuplicateSubscription(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	token := f.seed(t, "u1", "p1")
	f.guard.active["u1/p1"] = true

	_, err := f.orch.Commit(ctx, testUser(), token, payment())
	if !errors.Is(err, ErrDuplicateSubscription) {
		t.Fatalf("expected ErrDuplicateSubscription, got %v", err)
	}
	if f.sink.commits != 0 {
		t.Fatal("nothing may be persisted for a duplicate subscription")
	}

	// The session survives so the user can drop the plan and retry.
	sess, _ := f.store.Load(ctx, "u1")
	if sess.OrderToken != token {
		t.Fatal("token must survive a rejected commit")
	}
}

func TestCommitValidationFailureKeepsSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	token := f.seed(t, "u1", "")

	bad := payment()
	bad.CardNumber = "123"
	bad.CardCVV = "1"

	_, err := f.orch.Commit(ctx, testUser(), token, bad)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(vErr.Violations) != 2 {
		t.Fatalf("expected 2 violations, got %v", vErr.Violations)
	}
	if f.sink.commits != 0 {
		t.Fatal("nothing may be persisted on validation failure")
	}

	// Same token still commits after the fix.
	if _, err := f.orch.Commit(ctx, testUser(), token, payment()); err != nil {
		t.Fatalf("retry with fixed payment: %v", err)
	}
}

func TestCommitConsumesToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	token := f.seed(t, "u1", "")

	if _, err := f.orch.Commit(ctx, testUser(), token, payment()); err != nil {
		t.Fatalf("first commit: %v", err)
	}

	_, err := f.orch.Commit(ctx, testUser(), token, payment())
	if !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("replayed token must fail with ErrInvalidSession, got %v", err)
	}
	if f.sink.commits != 1 {
		t.Fatalf("expected exactly one commit, got %d", f.sink.commits)
	}
}

func TestCommitDropsStalePlanSelection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	token := f.seed(t, "u1", "gone")

	result, err := f.orch.Commit(ctx, testUser(), token, payment())
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if result.Subscription != nil {
		t.Fatal("stale plan id must not produce a subscription")
	}
	if len(result.Orders) != 1 {
		t.Fatalf("cart lines still commit, got %d orders", len(result.Orders))
	}
}

func TestRenderReturnsFormPayload(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	token := f.seed(t, "u1", "p1")

	view, err := f.orch.Render(ctx, "u1", token)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if view.Token != token {
		t.Fatal("render must echo the live token")
	}
	if len(view.Lines) != 1 || view.Plan == nil {
		t.Fatalf("unexpected view: %+v", view)
	}
	if view.Total.String() != "24.48" {
		t.Fatalf("expected total 24.48, got %s", view.Total.String())
	}
}

func TestCommitFailurePropagatesAndKeepsSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	token := f.seed(t, "u1", "")
	f.sink.err = errors.New("mongo down")

	if _, err := f.orch.Commit(ctx, testUser(), token, payment()); err == nil {
		t.Fatal("expected commit error to propagate")
	}

	sess, _ := f.store.Load(ctx, "u1")
	if sess.CartEmpty() || sess.OrderToken != token {
		t.Fatal("failed persistence must leave the session intact")
	}
}
