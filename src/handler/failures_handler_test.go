package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"faultproducer/src/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockFailureLister struct {
	failures []model.DeliveryFailure
	err      error
	limit    int
	calls    int
}

func (m *mockFailureLister) Recent(_ context.Context, limit int) ([]model.DeliveryFailure, error) {
	m.calls++
	m.limit = limit
	return m.failures, m.err
}

func TestListDeliveryFailuresHandler(t *testing.T) {
	repo := &mockFailureLister{failures: []model.DeliveryFailure{{ID: 3, DeliveryID: "c", Topic: "exception-topic"}}}

	rr := httptest.NewRecorder()
	ListDeliveryFailuresHandler(repo).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/deliveries/failures?limit=10", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 10, repo.limit)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var got []model.DeliveryFailure
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].DeliveryID)
}

func TestListDeliveryFailuresHandlerLimits(t *testing.T) {
	cases := []struct {
		query     string
		wantCode  int
		wantLimit int
	}{
		{"", http.StatusOK, 50},
		{"?limit=10000", http.StatusOK, maxFailuresPageSize},
		{"?limit=0", http.StatusBadRequest, 0},
		{"?limit=abc", http.StatusBadRequest, 0},
	}
	for _, tc := range cases {
		repo := &mockFailureLister{}
		rr := httptest.NewRecorder()
		ListDeliveryFailuresHandler(repo).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/deliveries/failures"+tc.query, nil))

		assert.Equal(t, tc.wantCode, rr.Code, tc.query)
		assert.Equal(t, tc.wantLimit, repo.limit, tc.query)
		if tc.wantCode == http.StatusOK {
			assert.JSONEq(t, "[]", rr.Body.String())
		}
	}
}

func TestListDeliveryFailuresHandlerRepoError(t *testing.T) {
	repo := &mockFailureLister{err: assert.AnError}

	rr := httptest.NewRecorder()
	ListDeliveryFailuresHandler(repo).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/deliveries/failures", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, 1, repo.calls)
}
