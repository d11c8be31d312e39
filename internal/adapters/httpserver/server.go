package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/productcatalog/internal/adapters/export"
	"github.com/phenrril/productcatalog/internal/domain"
	"github.com/phenrril/productcatalog/internal/usecase"
)

const (
	apiKeyHeader = "X-API-KEY"
	maxBodyBytes = 1 << 20
)

// Response messages shown to API clients.
const (
	msgProductCreated   = "Product created"
	msgUnknownAPIKey    = "Unknown API key. Please check your API key."
	msgDuplicateProduct = "Product already in database, use PUT or PATCH methods to amend."
	msgNoJSON           = "No JSON body supplied"
	msgInvalidJSON      = "Invalid JSON body supplied."
	msgIncorrectData    = "Incorrect product data supplied."
	msgInternal         = "Internal server error"
)

type Server struct {
	mux      *http.ServeMux
	products *usecase.ProductUC
}

func New(p *usecase.ProductUC) http.Handler {
	s := &Server{products: p, mux: http.NewServeMux()}
	s.routes()
	return Chain(s.mux,
		Recovery,
		Logging,
		RequestID,
	)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/products", s.handleProducts)
	s.mux.HandleFunc("/products/export", s.handleProductsExport)
	s.mux.HandleFunc("/healthz", s.handleHealth)
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.createProduct(w, r)
	case http.MethodGet:
		s.listProducts(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}
	id, err := s.products.CreateProduct(r.Context(), body, r.Header.Get(apiKeyHeader))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": msgProductCreated, "id": id})
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	list, err := s.products.List(r.Context(), r.Header.Get(apiKeyHeader))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	out := make([]productJSON, 0, len(list))
	for i := range list {
		out = append(out, toProductJSON(&list[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleProductsExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	key := r.Header.Get(apiKeyHeader)
	list, err := s.products.List(r.Context(), key)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=products.xlsx")
	if err := export.WriteXLSX(w, list); err != nil {
		log.Error().Err(err).Str("industry", key).Msg("xlsx export")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := s.products.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "down"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var mismatch *domain.SchemaMismatchError
	switch {
	case errors.Is(err, domain.ErrUnknownIndustry):
		writeError(w, http.StatusForbidden, msgUnknownAPIKey)
	case errors.Is(err, domain.ErrMissingBody):
		writeError(w, http.StatusBadRequest, msgNoJSON)
	case errors.Is(err, domain.ErrInvalidJSON):
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
	case errors.As(err, &mismatch):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   msgIncorrectData,
			"missing": nonNil(mismatch.Missing),
			"extra":   nonNil(mismatch.Extra),
			"invalid": nonNil(mismatch.Invalid),
		})
	case errors.Is(err, domain.ErrDuplicateProduct):
		writeError(w, http.StatusBadRequest, msgDuplicateProduct)
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Str("request_id", RequestIDFrom(r.Context())).Msg("request failed")
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
