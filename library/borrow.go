package library

import (
	"context"
	"log"
	"net/http"
	"time"

	"readira/db"
	"readira/models"
	"readira/subscriptions"
	"readira/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// POST /api/materials/:materialid/borrow
// Borrowing is gated on an active subscription; without one the caller is
// pointed at the plans page.
func BorrowMaterial(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	guard := subscriptions.NewGuard()
	active, err := guard.HasAnyActive(ctx, userID)
	if err != nil {
		log.Println("BorrowMaterial guard error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not verify subscription")
		return
	}
	if !active {
		utils.RespondWithJSON(w, http.StatusForbidden, map[string]any{
			"error":    "An active subscription is required to borrow",
			"redirect": "/plans",
		})
		return
	}

	var material models.ReadingMaterial
	err = db.MaterialsCollection.FindOne(ctx, bson.M{"materialid": ps.ByName("materialid"), "enabled": true}).Decode(&material)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Material not found")
		return
	}
	if err != nil {
		log.Println("BorrowMaterial FindOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve material")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"material": material,
	})
}
