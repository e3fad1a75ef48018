package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/diwise/api-offerings/internal/pkg/application/services/offerings"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("api-offerings/api")

var ErrURLNotProvided = errors.New("URL not provided")

type newOfferingRequest struct {
	URL       *string `json:"url"`
	AccessURL string  `json:"accessURL"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewCreateOfferingHandler(logger zerolog.Logger, svc offerings.OfferingService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		ctx, span := tracer.Start(r.Context(), "create-new-offering")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logger, ctx)

		req := newOfferingRequest{}
		err = json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			err = fmt.Errorf("failed to decode request body: %w", err)
			log.Error().Err(err).Msg("bad request")
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}

		if req.URL == nil {
			err = ErrURLNotProvided
			log.Error().Err(err).Msg("bad request")
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		url := *req.URL
		log.Info().Msgf("crawling URL: %s", url)

		offering, err := svc.Create(ctx, offerings.Request{URL: url, AccessURL: req.AccessURL})
		if err != nil {
			log.Error().Err(err).Msgf("error processing URL %s", url)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			return
		}

		writeJSON(w, http.StatusOK, offering)
	})
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	b, err := json.Marshal(body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(b)
}
