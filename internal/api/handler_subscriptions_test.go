package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equipment-maintenance-backend/internal/model"
)

func TestPutSubscription(t *testing.T) {
	s := newTestStore(t)
	handler := NewHandler(s, testConfig(), nil, nil)
	r := gin.New()
	r.PUT("/api/subscriptions", handler.PutSubscription)
	r.GET("/api/subscriptions", handler.GetSubscription)

	t.Run("rejects an empty body", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/api/subscriptions", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"invalid request"}`, w.Body.String())
	})

	t.Run("stores the subscription with its equipment links", func(t *testing.T) {
		eq := model.Equipment{Name: "Monitor A", Sector: "UTI", SerialNumber: "SN1"}
		require.NoError(t, s.RegisterEquipment(context.Background(), &eq))

		w := postJSON(r, "PUT", "/api/subscriptions", gin.H{
			"endpoint":             "https://example.com/push",
			"p256dh":               "key",
			"auth":                 "auth",
			"subscribed_equipment": []int64{eq.ID},
		})
		require.Equal(t, http.StatusCreated, w.Code)

		w = postJSON(r, "GET", "/api/subscriptions?endpoint=https://example.com/push", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"subscribed_equipment":[1]}`, w.Body.String())
	})

	t.Run("unknown endpoint is a 404", func(t *testing.T) {
		w := postJSON(r, "GET", "/api/subscriptions?endpoint=https://example.com/missing", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
