package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"readira/catalog"
	"readira/checkout"
	"readira/models"
	"readira/session"
	"readira/utils"

	"github.com/julienschmidt/httprouter"
)

type Handler struct {
	Sessions session.Store
	Catalog  catalog.Source
}

func NewHandler(sessions session.Store, source catalog.Source) *Handler {
	return &Handler{Sessions: sessions, Catalog: source}
}

// POST /api/cart/item/:materialid
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Println("AddToCart decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	material, err := h.Catalog.Material(ctx, ps.ByName("materialid"))
	if errors.Is(err, catalog.ErrNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "Material not found")
		return
	}
	if err != nil {
		log.Println("AddToCart catalog error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add to cart")
		return
	}

	sess, err := h.Sessions.Load(ctx, userID)
	if err != nil {
		log.Println("AddToCart session load error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add to cart")
		return
	}

	if err := Add(sess, material, body.Quantity); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	// First cart mutation mints the session's one-time checkout token.
	checkout.EnsureToken(sess)

	if err := h.Sessions.Save(ctx, sess); err != nil {
		log.Println("AddToCart session save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add to cart")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{
		"status":   "added",
		"redirect": "/cart",
	})
}

// DELETE /api/cart/item/:materialid
// Idempotent: removing an absent line still redirects to the cart.
func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	sess, err := h.Sessions.Load(ctx, userID)
	if err != nil {
		log.Println("RemoveFromCart session load error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}

	Remove(sess, ps.ByName("materialid"))

	if sess.Dirty() {
		if err := h.Sessions.Save(ctx, sess); err != nil {
			log.Println("RemoveFromCart session save error:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update cart")
			return
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"status":   "removed",
		"redirect": "/cart",
	})
}

// GET /api/cart?plan=<planid>
// Renders cart lines and totals; an optional plan query selects that plan
// before rendering.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	sess, err := h.Sessions.Load(ctx, userID)
	if err != nil {
		log.Println("GetCart session load error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve cart")
		return
	}

	if planID := r.URL.Query().Get("plan"); planID != "" {
		if _, err := h.Catalog.Plan(ctx, planID); err == nil {
			sess.SelectPlan(planID)
			checkout.EnsureToken(sess)
		} else if !errors.Is(err, catalog.ErrNotFound) {
			log.Println("GetCart plan lookup error:", err)
		}
	}

	plan := h.resolvePlan(ctx, sess)

	if sess.Dirty() {
		if err := h.Sessions.Save(ctx, sess); err != nil {
			log.Println("GetCart session save error:", err)
		}
	}

	lines := make([]models.CartLine, 0, len(sess.Cart))
	for _, line := range sess.Cart {
		lines = append(lines, line)
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"lines": lines,
		"plan":  plan,
		"total": Totals(sess, plan),
		"token": sess.OrderToken,
	})
}

// POST /api/cart/plan/:planid
func (h *Handler) SelectPlan(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	planID := ps.ByName("planid")
	if _, err := h.Catalog.Plan(ctx, planID); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Plan not found")
			return
		}
		log.Println("SelectPlan catalog error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to select plan")
		return
	}

	sess, err := h.Sessions.Load(ctx, userID)
	if err != nil {
		log.Println("SelectPlan session load error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to select plan")
		return
	}

	sess.SelectPlan(planID)
	checkout.EnsureToken(sess)

	if err := h.Sessions.Save(ctx, sess); err != nil {
		log.Println("SelectPlan session save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to select plan")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"status":   "selected",
		"redirect": "/cart",
	})
}

// DELETE /api/cart/plan
func (h *Handler) RemovePlan(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	sess, err := h.Sessions.Load(ctx, userID)
	if err != nil {
		log.Println("RemovePlan session load error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}

	sess.ClearPlan()
	if sess.Dirty() {
		if err := h.Sessions.Save(ctx, sess); err != nil {
			log.Println("RemovePlan session save error:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update cart")
			return
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"status":   "plan_removed",
		"redirect": "/cart",
	})
}

// resolvePlan returns the selected plan or nil, silently dropping a stale
// selection whose id no longer resolves.
func (h *Handler) resolvePlan(ctx context.Context, sess *session.Session) *models.SubscriptionPlan {
	if sess.SelectedPlan == "" {
		return nil
	}
	plan, err := h.Catalog.Plan(ctx, sess.SelectedPlan)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			sess.ClearPlan()
		}
		return nil
	}
	return &plan
}
