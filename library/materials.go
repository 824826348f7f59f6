// Package library serves the public catalog: reading materials, authors and
// genres, plus the subscription-gated borrow endpoint.
package library

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
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GET /api/materials?page=&limit=&search=&genre=
func GetMaterials(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := utils.ParseQueryOptions(r)

	filter := bson.M{"enabled": true}
	if opts.Search != "" {
		filter["title"] = bson.M{"$regex": primitive.Regex{Pattern: opts.Search, Options: "i"}}
	}
	if opts.Genre != "" {
		filter["genre"] = opts.Genre
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "title", Value: 1}}).
		SetSkip(int64((opts.Page - 1) * opts.Limit)).
		SetLimit(int64(opts.Limit))

	cursor, err := db.MaterialsCollection.Find(ctx, filter, findOpts)
	if err != nil {
		log.Println("GetMaterials Find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve materials")
		return
	}
	defer cursor.Close(ctx)

	var materials []models.ReadingMaterial
	if err := cursor.All(ctx, &materials); err != nil {
		log.Println("GetMaterials cursor.All error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading materials")
		return
	}
	if len(materials) == 0 {
		materials = []models.ReadingMaterial{}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"materials": materials,
		"page":      opts.Page,
		"limit":     opts.Limit,
	})
}

// GET /api/materials/:materialid
// Detail payload includes the rating aggregate and, when authenticated, the
// caller's own rating.
func GetMaterial(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	materialID := ps.ByName("materialid")

	var material models.ReadingMaterial
	err := db.MaterialsCollection.FindOne(ctx, bson.M{"materialid": materialID, "enabled": true}).Decode(&material)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Material not found")
		return
	}
	if err != nil {
		log.Println("GetMaterial FindOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve material")
		return
	}

	average, distribution, err := ratingSummary(ctx, materialID)
	if err != nil {
		log.Println("GetMaterial rating summary error:", err)
	}

	userRating := 0
	if userID := utils.GetUserIDFromRequest(r); userID != "" {
		var rating models.Rating
		if err := db.RatingsCollection.FindOne(ctx, bson.M{"materialid": materialID, "userid": userID}).Decode(&rating); err == nil {
			userRating = rating.Value
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"material":            material,
		"average_rating":      average,
		"rating_distribution": distribution,
		"user_rating":         userRating,
	})
}

// ratingSummary returns the average rating rounded to two decimals and the
// per-star counts for one material.
func ratingSummary(ctx context.Context, materialID string) (float64, map[int]int, error) {
	distribution := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}

	cursor, err := db.RatingsCollection.Find(ctx, bson.M{"materialid": materialID})
	if err != nil {
		return 0, distribution, err
	}
	defer cursor.Close(ctx)

	var ratings []models.Rating
	if err := cursor.All(ctx, &ratings); err != nil {
		return 0, distribution, err
	}
	if len(ratings) == 0 {
		return 0, distribution, nil
	}

	sum := 0
	for _, rating := range ratings {
		sum += rating.Value
		if rating.Value >= 1 && rating.Value <= 5 {
			distribution[rating.Value]++
		}
	}
	average := float64(sum) / float64(len(ratings))
	return float64(int(average*100+0.5)) / 100, distribution, nil
}
