package routes

import (
	"net/http"

	"readira/admin"
	"readira/auth"
	"readira/cart"
	"readira/checkout"
	"readira/library"
	"readira/middleware"
	"readira/orders"
	"readira/profile"
	"readira/ratelim"
	"readira/reviews"
	"readira/subscriptions"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/materialpic/*filepath", http.Dir("static/materialpic"))
	router.ServeFiles("/static/userpic/*filepath", http.Dir("static/userpic"))
}

func AddAuthRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rateLimiter.Limit(auth.Register))
	router.POST("/api/auth/login", rateLimiter.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", rateLimiter.Limit(middleware.Authenticate(auth.RefreshToken)))
}

func AddLibraryRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/materials", rateLimiter.Limit(library.GetMaterials))
	router.GET("/api/materials/:materialid", rateLimiter.Limit(middleware.OptionalAuth(library.GetMaterial)))
	router.POST("/api/materials/:materialid/borrow", rateLimiter.Limit(middleware.Authenticate(library.BorrowMaterial)))

	router.GET("/api/authors", rateLimiter.Limit(library.GetAuthors))
	router.GET("/api/authors/:authorid", rateLimiter.Limit(middleware.Authenticate(library.GetAuthor)))
	router.GET("/api/genres", rateLimiter.Limit(library.GetGenres))
	router.GET("/api/genres/:genreid", rateLimiter.Limit(library.GetGenre))
}

func AddReviewsRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/materials/:materialid/reviews", rateLimiter.Limit(reviews.GetReviews))
	router.POST("/api/materials/:materialid/reviews", rateLimiter.Limit(middleware.Authenticate(reviews.AddReview)))
	router.POST("/api/materials/:materialid/rating", rateLimiter.Limit(middleware.Authenticate(reviews.RateMaterial)))
}

func AddCartRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter, h *cart.Handler) {
	router.GET("/api/cart", rateLimiter.Limit(middleware.Authenticate(h.GetCart)))
	router.POST("/api/cart/item/:materialid", rateLimiter.Limit(middleware.Authenticate(h.AddToCart)))
	router.DELETE("/api/cart/item/:materialid", rateLimiter.Limit(middleware.Authenticate(h.RemoveFromCart)))
	router.POST("/api/cart/plan/:planid", rateLimiter.Limit(middleware.Authenticate(h.SelectPlan)))
	router.DELETE("/api/cart/plan", rateLimiter.Limit(middleware.Authenticate(h.RemovePlan)))
}

func AddCheckoutRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter, h *checkout.Handler) {
	router.GET("/api/checkout/success", middleware.Authenticate(h.Success))
	router.GET("/api/checkout/session/:token", rateLimiter.Limit(middleware.Authenticate(h.RenderForm)))
	router.POST("/api/checkout/session/:token", rateLimiter.Limit(middleware.Authenticate(h.Submit)))
}

func AddPlanRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/plans", rateLimiter.Limit(subscriptions.GetPlans))
	router.GET("/api/subscriptions", rateLimiter.Limit(middleware.Authenticate(subscriptions.GetMySubscriptions)))
}

func AddOrderRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/orders", rateLimiter.Limit(middleware.Authenticate(orders.GetMyOrders)))
	router.GET("/api/orders/:orderid", rateLimiter.Limit(middleware.Authenticate(orders.GetOrder)))
	router.GET("/api/orders/:orderid/receipt", rateLimiter.Limit(middleware.Authenticate(orders.PrintReceipt)))
}

func AddProfileRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/profile", rateLimiter.Limit(middleware.Authenticate(profile.GetProfile)))
	router.PUT("/api/profile", rateLimiter.Limit(middleware.Authenticate(profile.UpdateProfile)))
	router.POST("/api/profile/password", rateLimiter.Limit(middleware.Authenticate(profile.ChangePassword)))
}

func AddAdminRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	staff := middleware.Chain(rateLimiter.Limit, middleware.Authenticate, middleware.RequireRoles("staff", "admin"))

	router.GET("/api/admin/materials", staff(admin.ListMaterials))
	router.POST("/api/admin/materials", staff(admin.CreateMaterial))
	router.PUT("/api/admin/materials/:materialid", staff(admin.UpdateMaterial))
	router.DELETE("/api/admin/materials/:materialid", staff(admin.DeleteMaterial))
	router.POST("/api/admin/materials/:materialid/cover", staff(admin.UploadCover))
}
