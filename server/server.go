package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"almacenes/internal/config"
	"almacenes/server/handlers"
	"almacenes/server/middleware"
	"almacenes/server/services"
)

// Server — HTTP сервер подбора петиций по каталогу.
type Server struct {
	config *config.Config

	catalogs *services.CatalogService
	requests *services.RequestService
	matches  *services.MatchService
	carts    *services.CartService
	products *services.ProductService

	httpServer *http.Server
}

// NewServer создаёт сервер и его сервисы по конфигурации.
func NewServer(cfg *config.Config) *Server {
	catalogs := services.NewCatalogService(cfg.StoreCapacity, cfg.StoreTTL)
	requests := services.NewRequestService(cfg.StoreCapacity, cfg.StoreTTL)
	matches := services.NewMatchService(cfg.StoreCapacity, cfg.StoreTTL)
	carts := services.NewCartService(catalogs)
	products := services.NewProductService(catalogs)

	return &Server{
		config:   cfg,
		catalogs: catalogs,
		requests: requests,
		matches:  matches,
		carts:    carts,
		products: products,
	}
}

// Router собирает Gin роутер со всеми middleware и маршрутами.
func (s *Server) Router() *gin.Engine {
	if ginMode := os.Getenv("GIN_MODE"); ginMode == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.GinRequestIDMiddleware())
	router.Use(middleware.GinCORSMiddleware())
	router.Use(middleware.GinGzipMiddleware())
	router.Use(middleware.GinLoggerMiddleware())
	router.Use(gin.Recovery())

	if s.config.RateLimitRPS > 0 {
		limiter := middleware.NewRateLimiter(s.config.RateLimitRPS, s.config.RateLimitBurst)
		router.Use(limiter.Middleware())
	}

	handlers.RegisterSwaggerRoutes(router, s.config.Port)
	s.registerRoutes(router)
	return router
}

func (s *Server) registerRoutes(router *gin.Engine) {
	uploads := handlers.NewUploadHandler(s.catalogs, s.requests, s.config.MaxUploadBytes)
	matches := handlers.NewMatchHandler(s.catalogs, s.requests, s.matches)
	productsH := handlers.NewProductsHandler(s.products)
	carts := handlers.NewCartHandler(s.carts, s.catalogs, s.requests, s.matches, s.config.PlantillaPath, s.config.MaxUploadBytes)

	router.GET("/health", handlers.HandleHealth)

	api := router.Group("/api")
	{
		api.POST("/catalog/upload", uploads.HandleCatalogUpload)
		api.POST("/request/upload", uploads.HandleRequestUpload)

		api.POST("/match", matches.HandleMatch)
		api.GET("/match/:id/export", matches.HandleMatchExport)

		products := api.Group("/products")
		{
			products.GET("/search", productsH.HandleSearch)
			products.GET("/suggest", productsH.HandleSuggest)
		}

		cart := api.Group("/cart")
		{
			cart.POST("/add", carts.HandleCartAdd)
			cart.POST("/remove", carts.HandleCartRemove)
			cart.POST("/update", carts.HandleCartUpdate)
			cart.GET("/view", carts.HandleCartView)
			cart.POST("/clear", carts.HandleCartClear)
			cart.GET("/checkout", carts.HandleCartCheckout)
		}

		api.POST("/import-and-match", carts.HandleImportAndMatch)

		api.GET("/monitoring/errors", handlers.HandleErrorMetrics)
	}
}

// Start загружает каталог по умолчанию и запускает HTTP сервер.
// Блокируется до остановки сервера.
func (s *Server) Start() error {
	if err := s.catalogs.LoadDefault(s.config.CatalogPath); err != nil {
		return fmt.Errorf("load default catalog: %w", err)
	}

	s.httpServer = &http.Server{
		Addr:         ":" + s.config.Port,
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	slog.Info("Сервер запускается", "port", s.config.Port)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("listen and serve: %w", err)
	}
	return nil
}

// Shutdown останавливает сервер, дожидаясь завершения активных запросов.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	slog.Info("Остановка сервера")
	return s.httpServer.Shutdown(ctx)
}
