package http

import (
	"time"

	_ "github.com/catalogcraft/catalog-api/docs" // Импорт сгенерированных файлов
	"github.com/catalogcraft/catalog-api/internal/usecase"
	"github.com/catalogcraft/catalog-api/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

// Usecases — все сценарии, которые обслуживает HTTP-слой.
type Usecases struct {
	ProductCommands usecase.ProductCommands
	ProductQueries  usecase.ProductQueries
	Categories      usecase.CategoryUC
	Health          usecase.HealthUC
}

func (r *Router) Init(uc Usecases, uploadImagesLimit int) {
	r.router.Use(middleware.RequestID)
	r.router.Use(middleware.RealIP)
	r.router.Use(requestLogger(r.logger))
	r.router.Use(middleware.Recoverer)
	r.router.Use(middleware.Timeout(60 * time.Second))

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	healthHandler := NewHealthHandler(uc.Health)
	r.router.Get("/health", healthHandler.liveness)
	r.router.Get("/health/detailed", healthHandler.detailed)

	r.router.Route("/api", func(api chi.Router) {
		prHandler := NewProductHandler(uc.ProductCommands, uc.ProductQueries, r.logger, uploadImagesLimit)
		registerProductRoutes(api, prHandler)

		catHandler := NewCategoryHandler(uc.Categories, r.logger)
		registerCategoryRoutes(api, catHandler)
	})
}

func registerProductRoutes(router chi.Router, prHandler *ProductHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Post("/", prHandler.createProduct)
		pr.Get("/", prHandler.listProducts)

		pr.Route("/{id}", func(one chi.Router) {
			one.Get("/", prHandler.getProduct)
			one.Post("/publish", prHandler.publishProduct)
			one.Post("/archive", prHandler.archiveProduct)
			one.Put("/price", prHandler.changeProductPrice)
			one.Post("/images", prHandler.attachProductImages)
		})
	})
}

func registerCategoryRoutes(router chi.Router, catHandler *CategoryHandler) {
	router.Route("/categories", func(cat chi.Router) {
		cat.Post("/", catHandler.createCategory)
		cat.Get("/", catHandler.listCategories)
	})
}
