package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"readira/db"
	"readira/models"
	"readira/mq"
	"readira/rdx"
	"readira/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// commitLockTTL bounds how long a checkout POST may hold the per-user lock.
const commitLockTTL = 10 * time.Second

type Handler struct {
	Orch *Orchestrator
}

func NewHandler(orch *Orchestrator) *Handler {
	return &Handler{Orch: orch}
}

// GET /api/checkout/session/:token
// Renders the payment form payload. No validation beyond the session check
// happens here; card fields are only checked on POST.
func (h *Handler) RenderForm(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	view, err := h.Orch.Render(ctx, userID, ps.ByName("token"))
	if err != nil {
		h.respondCheckoutError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, view)
}

// POST /api/checkout/session/:token
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input models.PaymentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Println("Submit decode error:", err)
		http.Error(w, "Invalid payment payload", http.StatusBadRequest)
		return
	}

	// One commit per user at a time; a second tab waits out the lock and
	// then fails the token check once the first commit has cleared it.
	acquired, err := rdx.RdxSetNX("checkout_lock:"+userID, "1", commitLockTTL)
	if err != nil || !acquired {
		http.Error(w, "please retry", http.StatusTooManyRequests)
		return
	}
	defer rdx.RdxDel("checkout_lock:" + userID)

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		log.Println("Submit user lookup error:", err)
		http.Error(w, "User not found", http.StatusUnauthorized)
		return
	}

	result, err := h.Orch.Commit(ctx, user, ps.ByName("token"), input)
	if err != nil {
		h.respondCheckoutError(w, err)
		return
	}

	for _, order := range result.Orders {
		mq.Notify("order-placed", mq.Event{EntityType: "order", EntityID: order.OrderID, UserID: userID})
	}
	if result.Subscription != nil {
		mq.Notify("subscription-started", mq.Event{EntityType: "subscription", EntityID: result.Subscription.SubscriptionID, UserID: userID})
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{
		"success":  true,
		"redirect": "/checkout/success",
		"result":   result,
	})
}

// GET /api/checkout/success
func (h *Handler) Success(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Your order has been placed.",
	})
}

// respondCheckoutError maps pipeline failures onto the responses the cart
// flow expects: session problems bounce back to the cart view, validation
// failures re-render the form with every violation and the same token.
func (h *Handler) respondCheckoutError(w http.ResponseWriter, err error) {
	var vErr *ValidationError
	switch {
	case errors.Is(err, ErrInvalidSession):
		utils.RespondWithJSON(w, http.StatusConflict, map[string]any{
			"error":    "Your checkout session is no longer valid",
			"redirect": "/cart",
		})
	case errors.Is(err, ErrDuplicateSubscription):
		utils.RespondWithJSON(w, http.StatusConflict, map[string]any{
			"error":    "You already have an active subscription for this plan",
			"redirect": "/cart",
		})
	case errors.As(err, &vErr):
		utils.RespondWithJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"errors": vErr.Violations,
		})
	default:
		log.Println("checkout error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Checkout failed")
	}
}
