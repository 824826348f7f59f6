package admin

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"readira/db"
	"readira/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const coverDir = "static/materialpic"

// POST /api/admin/materials/:materialid/cover
// Accepts a multipart "cover" image, stores the original and a 300px-wide
// thumbnail, and records both paths on the material.
func UploadCover(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	materialID := ps.ByName("materialid")
	if _, err := findMaterial(ctx, materialID); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Material not found")
			return
		}
		log.Println("UploadCover lookup error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to upload cover")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("cover")
	if err != nil {
		http.Error(w, "Cover file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	img, err := imaging.Decode(file)
	if err != nil {
		http.Error(w, "Unsupported image format", http.StatusBadRequest)
		return
	}

	if err := os.MkdirAll(coverDir, 0755); err != nil {
		log.Println("UploadCover mkdir error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to upload cover")
		return
	}

	originalPath := filepath.Join(coverDir, materialID+".jpg")
	thumbnailPath := filepath.Join(coverDir, materialID+"_thumb.jpg")

	if err := imaging.Save(img, originalPath); err != nil {
		log.Println("UploadCover save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to upload cover")
		return
	}

	thumbImg := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumbImg, thumbnailPath); err != nil {
		log.Println("UploadCover thumbnail error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to upload cover")
		return
	}

	update := bson.M{"$set": bson.M{
		"image":      "/" + originalPath,
		"thumbnail":  "/" + thumbnailPath,
		"updated_at": time.Now(),
	}}
	if _, err := db.MaterialsCollection.UpdateOne(ctx, bson.M{"materialid": materialID}, update); err != nil {
		log.Println("UploadCover UpdateOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to upload cover")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"image":     "/" + originalPath,
		"thumbnail": "/" + thumbnailPath,
	})
}
