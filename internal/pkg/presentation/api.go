package presentation

import (
	"compress/flate"
	"context"
	"net/http"

	"github.com/diwise/api-offerings/internal/pkg/application/services/offerings"
	"github.com/diwise/api-offerings/internal/pkg/presentation/handlers"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/riandyrn/otelchi"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

type API interface {
	Start(port string) error
}

type offeringsAPI struct {
	router chi.Router
	log    zerolog.Logger
}

func NewAPI(ctx context.Context, r chi.Router, svc offerings.OfferingService, gatherer prometheus.Gatherer) API {
	return newOfferingsAPI(ctx, r, svc, gatherer)
}

func newOfferingsAPI(ctx context.Context, r chi.Router, svc offerings.OfferingService, gatherer prometheus.Gatherer) *offeringsAPI {
	log := logging.GetFromContext(ctx)

	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowCredentials: true,
		Debug:            false,
	}).Handler)

	// Enable gzip compression for our responses
	compressor := middleware.NewCompressor(
		flate.DefaultCompression,
		"application/json",
	)
	r.Use(compressor.Handler)
	r.Use(otelchi.Middleware("api-offerings", otelchi.WithChiRoutes(r)))

	o := &offeringsAPI{
		router: r,
		log:    log,
	}

	o.addProbeHandlers(r, gatherer)

	r.Post("/newoffering", handlers.NewCreateOfferingHandler(log, svc))

	return o
}

func (a *offeringsAPI) Start(port string) error {
	a.log.Info().Msgf("Starting api-offerings on port:%s", port)
	return http.ListenAndServe(":"+port, a.router)
}

func (o *offeringsAPI) addProbeHandlers(r chi.Router, gatherer prometheus.Gatherer) {
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
}
