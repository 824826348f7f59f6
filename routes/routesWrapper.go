package routes

import (
	"readira/cart"
	"readira/catalog"
	"readira/checkout"
	"readira/ratelim"
	"readira/session"
	"readira/subscriptions"

	"github.com/julienschmidt/httprouter"
)

func RoutesWrapper(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	sessions := session.NewRedisStore()
	source := catalog.NewMongo()

	cartHandler := cart.NewHandler(sessions, source)
	checkoutHandler := checkout.NewHandler(&checkout.Orchestrator{
		Sessions: sessions,
		Catalog:  source,
		Guard:    subscriptions.NewGuard(),
		Store:    checkout.NewMongoCommitter(),
	})

	AddStaticRoutes(router)
	AddAuthRoutes(router, rateLimiter)
	AddLibraryRoutes(router, rateLimiter)
	AddReviewsRoutes(router, rateLimiter)
	AddCartRoutes(router, rateLimiter, cartHandler)
	AddCheckoutRoutes(router, rateLimiter, checkoutHandler)
	AddPlanRoutes(router, rateLimiter)
	AddOrderRoutes(router, rateLimiter)
	AddProfileRoutes(router, rateLimiter)
	AddAdminRoutes(router, rateLimiter)
}
