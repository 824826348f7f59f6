// Package admin is the staff backend: reading-material CRUD and cover
// uploads. Every route here sits behind the staff role.
package admin

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
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GET /api/admin/materials
// Staff listing includes disabled materials.
func ListMaterials(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 20, 200)
	findOpts := options.Find().SetSort(bson.D{{Key: "title", Value: 1}}).SetSkip(skip).SetLimit(limit)

	cursor, err := db.MaterialsCollection.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		log.Println("ListMaterials Find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve materials")
		return
	}
	defer cursor.Close(ctx)

	var materials []models.ReadingMaterial
	if err := cursor.All(ctx, &materials); err != nil {
		log.Println("ListMaterials cursor.All error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading materials")
		return
	}
	if len(materials) == 0 {
		materials = []models.ReadingMaterial{}
	}

	utils.RespondWithJSON(w, http.StatusOK, materials)
}

// POST /api/admin/materials
func CreateMaterial(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var material models.ReadingMaterial
	if err := json.NewDecoder(r.Body).Decode(&material); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if material.Title == "" || material.Price.Decimal.IsNegative() {
		http.Error(w, "Missing or invalid fields", http.StatusBadRequest)
		return
	}

	material.MaterialID = utils.GenerateRandomString(16)
	material.CreatedAt = time.Now()
	material.UpdatedAt = time.Now()

	if _, err := db.MaterialsCollection.InsertOne(ctx, material); err != nil {
		log.Println("CreateMaterial InsertOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create material")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, material)
}

// PUT /api/admin/materials/:materialid
func UpdateMaterial(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	materialID := ps.ByName("materialid")

	var input models.ReadingMaterial
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	update := bson.M{"$set": bson.M{
		"title":        input.Title,
		"authorid":     input.AuthorID,
		"author_name":  input.AuthorName,
		"genreid":      input.GenreID,
		"genre":        input.Genre,
		"summary":      input.Summary,
		"release_date": input.ReleaseDate,
		"price":        input.Price,
		"enabled":      input.Enabled,
		"availability": input.Availability,
		"updated_at":   time.Now(),
	}}

	res, err := db.MaterialsCollection.UpdateOne(ctx, bson.M{"materialid": materialID}, update)
	if err != nil {
		log.Println("UpdateMaterial UpdateOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update material")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Material not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// DELETE /api/admin/materials/:materialid
// Materials referenced by orders are never hard-deleted; they are disabled
// so order rows keep a resolvable reference.
func DeleteMaterial(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	materialID := ps.ByName("materialid")

	ordered, err := db.OrderCollection.CountDocuments(ctx, bson.M{"materialid": materialID})
	if err != nil {
		log.Println("DeleteMaterial order count error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete material")
		return
	}

	if ordered > 0 {
		_, err = db.MaterialsCollection.UpdateOne(ctx, bson.M{"materialid": materialID},
			bson.M{"$set": bson.M{"enabled": false, "updated_at": time.Now()}})
		if err != nil {
			log.Println("DeleteMaterial disable error:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete material")
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "disabled"})
		return
	}

	res, err := db.MaterialsCollection.DeleteOne(ctx, bson.M{"materialid": materialID})
	if err != nil {
		log.Println("DeleteMaterial DeleteOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete material")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Material not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func findMaterial(ctx context.Context, materialID string) (models.ReadingMaterial, error) {
	var material models.ReadingMaterial
	err := db.MaterialsCollection.FindOne(ctx, bson.M{"materialid": materialID}).Decode(&material)
	if err == mongo.ErrNoDocuments {
		return material, err
	}
	return material, err
}
