package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"goshopper-backend-go/internal/core"
	"goshopper-backend-go/internal/models"
)

type stubPriceCompareService struct {
	report *models.ComparisonReport
	err    error
}

func (s *stubPriceCompareService) GetComparison(ctx context.Context, userID, receiptID string) (*models.ComparisonReport, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.report, nil
}

func newComparisonRouter(svc core.PriceCompareService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userID", "user-1")
	})
	handler := NewReceiptHandler(nil, svc)
	router.GET("/receipts/:receiptId/comparison", handler.GetComparison)
	return router
}

func TestGetComparison_OK(t *testing.T) {
	svc := &stubPriceCompareService{report: &models.ComparisonReport{ReceiptID: "r-1"}}
	router := newComparisonRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/receipts/r-1/comparison", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetComparison_NoDataIsNotFound(t *testing.T) {
	svc := &stubPriceCompareService{err: core.ErrNoComparisonData}
	router := newComparisonRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/receipts/r-1/comparison", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), core.ErrNoComparisonData.Error())
}

func TestGetComparison_BackendFailureIsUnavailable(t *testing.T) {
	svc := &stubPriceCompareService{err: errors.New("firestore: transport is closing")}
	router := newComparisonRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/receipts/r-1/comparison", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "temporarily unavailable")
}

func TestGetComparison_UpgradeRequiredIsForbidden(t *testing.T) {
	svc := &stubPriceCompareService{err: core.ErrUpgradeRequired}
	router := newComparisonRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/receipts/r-1/comparison", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
