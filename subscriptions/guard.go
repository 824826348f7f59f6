// Package subscriptions owns the subscription lifecycle: the active-plan
// guard the checkout pipeline consults, plus the plan and history endpoints.
package subscriptions

import (
	"context"
	"time"

	"readira/db"

	"go.mongodb.org/mongo-driver/bson"
)

// Guard answers active-subscription queries. Expired rows are never deleted,
// only superseded, so "active" always means active flag set AND unexpired.
type Guard struct {
	Now func() time.Time
}

func NewGuard() *Guard { return &Guard{} }

func (g *Guard) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

// HasActive reports whether the user holds an active, unexpired subscription
// for this exact plan. Pure query, no side effects.
func (g *Guard) HasActive(ctx context.Context, userID, planID string) (bool, error) {
	count, err := db.SubscriptionCollection.CountDocuments(ctx, bson.M{
		"userid":   userID,
		"planid":   planID,
		"active":   true,
		"end_date": bson.M{"$gte": g.now()},
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// HasAnyActive backs the user's derived has_active_subscription property
// used to gate borrowing.
func (g *Guard) HasAnyActive(ctx context.Context, userID string) (bool, error) {
	count, err := db.SubscriptionCollection.CountDocuments(ctx, bson.M{
		"userid":   userID,
		"active":   true,
		"end_date": bson.M{"$gte": g.now()},
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
