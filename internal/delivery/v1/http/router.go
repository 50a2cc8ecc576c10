package http

import (
	"net/http"
	"time"

	_ "github.com/DRSN-tech/product-registry/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/product-registry/internal/usecase"
	"github.com/DRSN-tech/product-registry/pkg/logger"
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

func (r *Router) Init(registryUC usecase.RegistryUC, condition usecase.ExternalCondition) {
	r.router.Use(middleware.RequestID)
	r.router.Use(middleware.Recoverer)
	r.router.Use(r.requestLogger)

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		handler := NewRegistryHandler(registryUC, condition, r.logger)
		registerProductRoutes(v1, handler)
		registerOwnerRoutes(v1, handler)
		registerExternalRegistryRoutes(v1, handler)
		v1.Get("/events", handler.listEvents)
	})
}

func registerProductRoutes(router chi.Router, handler *RegistryHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Post("/", handler.createProduct)
		pr.Get("/", handler.listProducts)
		pr.Get("/{id}", handler.getProduct)
		pr.Post("/{id}/sell", handler.sellProduct)
	})
}

func registerOwnerRoutes(router chi.Router, handler *RegistryHandler) {
	router.Route("/owner", func(o chi.Router) {
		o.Get("/", handler.getOwner)
		o.Put("/", handler.transferOwnership)
	})
}

func registerExternalRegistryRoutes(router chi.Router, handler *RegistryHandler) {
	router.Post("/external-registry/verify", handler.verifyCondition)
}

// requestLogger пишет в лог метод, путь, статус и длительность каждого запроса.
func (r *Router) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, req)

		r.logger.Debugf("%s %s -> %d (%s) request_id=%s",
			req.Method, req.URL.Path, ww.Status(), time.Since(start), middleware.GetReqID(req.Context()))
	})
}
