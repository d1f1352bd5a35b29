package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"faultproducer/src/model"

	logger "github.com/sirupsen/logrus"
)

const maxFailuresPageSize = 500

type failureLister interface {
	Recent(ctx context.Context, limit int) ([]model.DeliveryFailure, error)
}

// ListDeliveryFailuresHandler returns the most recent journaled delivery failures.
// Supports ?limit= (default 50, max 500).
func ListDeliveryFailuresHandler(repo failureLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 50
		if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
			parsed, err := strconv.Atoi(limitParam)
			if err != nil || parsed <= 0 {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}
			limit = parsed
		}
		if limit > maxFailuresPageSize {
			limit = maxFailuresPageSize
		}

		failures, err := repo.Recent(r.Context(), limit)
		if err != nil {
			logger.WithError(err).Error("failed to list delivery failures")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if failures == nil {
			failures = []model.DeliveryFailure{}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(failures); err != nil {
			logger.WithError(err).Error("failed to encode delivery failures response")
		}
	}
}
