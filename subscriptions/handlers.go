package subscriptions

import (
	"context"
	"log"
	"net/http"
	"time"

	"readira/db"
	"readira/models"
	"readira/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GET /api/plans
func GetPlans(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.PlansCollection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "price", Value: 1}}))
	if err != nil {
		log.Println("GetPlans Find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve plans")
		return
	}
	defer cursor.Close(ctx)

	var plans []models.SubscriptionPlan
	if err := cursor.All(ctx, &plans); err != nil {
		log.Println("GetPlans cursor.All error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading plans")
		return
	}
	if len(plans) == 0 {
		plans = []models.SubscriptionPlan{}
	}

	utils.RespondWithJSON(w, http.StatusOK, plans)
}

// GET /api/subscriptions
// The caller's subscription history, newest first. Expired subscriptions
// stay in the list; they are superseded, never deleted.
func GetMySubscriptions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	cursor, err := db.SubscriptionCollection.Find(ctx, bson.M{"userid": userID},
		options.Find().SetSort(bson.D{{Key: "start_date", Value: -1}}))
	if err != nil {
		log.Println("GetMySubscriptions Find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve subscriptions")
		return
	}
	defer cursor.Close(ctx)

	var subs []models.Subscription
	if err := cursor.All(ctx, &subs); err != nil {
		log.Println("GetMySubscriptions cursor.All error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading subscriptions")
		return
	}
	if len(subs) == 0 {
		subs = []models.Subscription{}
	}

	now := time.Now()
	active := false
	for _, s := range subs {
		if s.IsActiveAt(now) {
			active = true
			break
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"subscriptions":           subs,
		"has_active_subscription": active,
	})
}
