package warehouse

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/de-tools/warehouse-atlas/pkg/adapters"
	"github.com/de-tools/warehouse-atlas/pkg/models/api"
	"github.com/de-tools/warehouse-atlas/pkg/models/domain"
	"github.com/de-tools/warehouse-atlas/pkg/services/warehouse"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Handler struct {
	lookup warehouse.LookupService
}

func NewHandler(lookup warehouse.LookupService) *Handler {
	return &Handler{
		lookup: lookup,
	}
}

func (h *Handler) GetWarehouse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	id := chi.URLParam(r, "warehouseID")

	data, err := h.lookup.GetWarehouseData(ctx, domain.WarehouseRequest{WarehouseID: id})
	if err != nil {
		status := HTTPStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error().Err(err).Str("warehouse_id", id).Msg("failed to get warehouse data")
			writeJSON(w, r, status, api.Error{Error: "failed to get warehouse data"})
			return
		}
		writeJSON(w, r, status, api.Error{Error: err.Error()})
		return
	}

	writeJSON(w, r, http.StatusOK, adapters.MapDomainWarehouseToAPI(*data))
}

// HTTPStatus maps lookup errors to response codes
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}
