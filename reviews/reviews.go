package reviews

import (
	"context"
	"encoding/json"
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

// GET /api/materials/:materialid/reviews
func GetReviews(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	materialID := ps.ByName("materialid")
	skip, limit := utils.ParsePagination(r, 10, 100)
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := db.ReviewsCollection.Find(ctx, bson.M{"materialid": materialID}, opts)
	if err != nil {
		log.Println("GetReviews Find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		log.Println("GetReviews cursor.All error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}
	if len(reviews) == 0 {
		reviews = []models.Review{}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": true, "reviews": reviews})
}

// POST /api/materials/:materialid/reviews
// One review per (user, material).
func AddReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	materialID := ps.ByName("materialid")

	count, err := db.ReviewsCollection.CountDocuments(ctx, bson.M{
		"userid":     userID,
		"materialid": materialID,
	})
	if err != nil {
		log.Printf("Error checking for existing review: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if count > 0 {
		http.Error(w, "You have already reviewed this material", http.StatusConflict)
		return
	}

	var review models.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil || review.Content == "" {
		http.Error(w, "Invalid review data", http.StatusBadRequest)
		return
	}

	review.ReviewID = utils.GenerateRandomString(16)
	review.MaterialID = materialID
	review.UserID = userID
	review.CreatedAt = time.Now()

	if _, err := db.ReviewsCollection.InsertOne(ctx, review); err != nil {
		log.Println("AddReview InsertOne error:", err)
		http.Error(w, "Failed to create review", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, review)
}

// POST /api/materials/:materialid/rating
// Upserts the caller's 1-5 star rating for the material.
func RateMaterial(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		Score int `json:"score"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Score < 1 || body.Score > 5 {
		http.Error(w, "Score must be between 1 and 5", http.StatusBadRequest)
		return
	}

	materialID := ps.ByName("materialid")

	filter := bson.M{"materialid": materialID, "userid": userID}
	update := bson.M{
		"$set":         bson.M{"value": body.Score},
		"$setOnInsert": bson.M{"created_at": time.Now()},
	}
	opts := options.Update().SetUpsert(true)

	if _, err := db.RatingsCollection.UpdateOne(ctx, filter, update, opts); err != nil {
		log.Println("RateMaterial UpdateOne error:", err)
		http.Error(w, "Failed to save rating", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"status": "rated", "score": body.Score})
}
