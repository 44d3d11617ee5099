package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/auth"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/service"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/health"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/middleware"
)

// referenceCacheSeconds is the browser/proxy cache lifetime for the
// states/LGAs/crops endpoints.
const referenceCacheSeconds = 3600

// RouterDeps bundles everything NewRouter needs.
type RouterDeps struct {
	SearchService   *service.SearchService
	ProductService  *service.ProductService
	FavoriteService *service.FavoriteService
	ProfileService  *service.ProfileService
	LocationService *service.LocationService
	AuthClient      *auth.Client
	HealthHandler   *health.Handler
	CORSConfig      middleware.CORSConfig
	ServiceName     string
	Logger          *slog.Logger
}

// NewRouter creates a chi router with all marketplace routes registered.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(deps.CORSConfig))
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogging(deps.Logger))
	r.Use(middleware.Tracing(deps.ServiceName))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.PrometheusMetrics(deps.ServiceName))

	// Health and metrics endpoints
	r.Get("/health/live", deps.HealthHandler.LivenessHandler())
	r.Get("/health/ready", deps.HealthHandler.ReadinessHandler())
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	requireAuth := auth.Middleware(deps.AuthClient)

	// Buyer search
	searchHandler := NewSearchHandler(deps.SearchService, deps.Logger)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/api/v1/search", searchHandler.Search)
	})

	// Listings
	productHandler := NewProductHandler(deps.ProductService, deps.Logger)

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		// Reading a single listing is public; everything else is the
		// authenticated farmer's own surface.
		r.Get("/{id}", productHandler.GetProduct)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/mine", productHandler.ListMyProducts)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireRole(auth.RoleFarmer))
				r.Post("/", productHandler.CreateProduct)
				r.Put("/{id}", productHandler.UpdateProduct)
				r.Delete("/{id}", productHandler.DeleteProduct)
			})
		})
	})

	// Buyer favorites
	favoriteHandler := NewFavoriteHandler(deps.FavoriteService, deps.Logger)

	r.Route("/api/v1/favorites", func(r chi.Router) {
		r.Use(requireAuth)

		r.Get("/", favoriteHandler.ListFavorites)
		r.Post("/{productId}", favoriteHandler.AddFavorite)
		r.Delete("/{productId}", favoriteHandler.RemoveFavorite)
	})

	// Profiles
	profileHandler := NewProfileHandler(deps.ProfileService, deps.Logger)

	r.Route("/api/v1/profiles", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(requireAuth)

		r.Get("/farmer", profileHandler.GetFarmerProfile)
		r.Put("/farmer", profileHandler.SaveFarmerProfile)
		r.Get("/buyer", profileHandler.GetBuyerProfile)
		r.Put("/buyer", profileHandler.SaveBuyerProfile)
	})

	// Reference data (public, cacheable)
	locationHandler := NewLocationHandler(deps.LocationService, deps.Logger)

	r.Group(func(r chi.Router) {
		r.Use(middleware.CacheControl(referenceCacheSeconds))

		r.Get("/api/v1/locations/states", locationHandler.ListStates)
		r.Get("/api/v1/locations/states/{stateId}/lgas", locationHandler.ListLGAs)
		r.Get("/api/v1/crops", locationHandler.ListCrops)
	})

	return r
}
