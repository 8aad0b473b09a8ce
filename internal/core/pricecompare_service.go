package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"goshopper-backend-go/internal/cache"
	"goshopper-backend-go/internal/db"
	"goshopper-backend-go/internal/entitlements"
	"goshopper-backend-go/internal/models"
	"goshopper-backend-go/internal/pricing"
)

// ErrNoComparisonData is returned when none of the receipt's items have any
// price observations. Distinct from a repository failure, which callers
// surface as a temporary backend error.
var ErrNoComparisonData = errors.New("no price comparison data available")

const comparisonCacheTTL = 10 * time.Minute

// priceCompareService implements the PriceCompareService interface.
type priceCompareService struct {
	receiptSvc ReceiptService
	priceRepo  db.PricePointRepository
	subSvc     SubscriptionService
	cache      cache.Cache // optional, nil disables caching
	logger     *zap.Logger
	now        func() time.Time
}

// NewPriceCompareService creates a new PriceCompareService instance.
// cache may be nil when Redis is not configured.
func NewPriceCompareService(receiptSvc ReceiptService, priceRepo db.PricePointRepository, subSvc SubscriptionService, c cache.Cache, logger *zap.Logger) PriceCompareService {
	return &priceCompareService{
		receiptSvc: receiptSvc,
		priceRepo:  priceRepo,
		subSvc:     subSvc,
		cache:      c,
		logger:     logger,
		now:        time.Now,
	}
}

// GetComparison builds the price-comparison report for a receipt: community
// observations grouped per normalized product, aggregated against the price
// paid on this receipt.
func (s *priceCompareService) GetComparison(ctx context.Context, userID, receiptID string) (*models.ComparisonReport, error) {
	sub, err := s.subSvc.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !entitlements.HasAccess(entitlements.FeaturePriceComparison, sub, s.now().UTC()) {
		return nil, fmt.Errorf("%w: price comparison requires the %s plan",
			ErrUpgradeRequired, entitlements.MinimumPlanFor(entitlements.FeaturePriceComparison))
	}

	receipt, err := s.receiptSvc.GetByID(ctx, userID, receiptID)
	if err != nil {
		return nil, err
	}

	cacheKey := "price_comparison:" + receiptID
	if s.cache != nil {
		if cached, cacheErr := s.cache.Get(ctx, cacheKey); cacheErr == nil && cached != "" {
			var report models.ComparisonReport
			if json.Unmarshal([]byte(cached), &report) == nil {
				return &report, nil
			}
		}
	}

	var names []string
	currentByName := make(map[string]models.ReceiptItem)
	for _, item := range receipt.Items {
		if item.NormalizedName == "" || item.UnitPrice <= 0 {
			continue
		}
		if _, seen := currentByName[item.NormalizedName]; seen {
			continue
		}
		currentByName[item.NormalizedName] = item
		names = append(names, item.NormalizedName)
	}
	if len(names) == 0 {
		return nil, ErrNoComparisonData
	}

	points, err := s.priceRepo.GetByProducts(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("failed to load price observations: %w", err)
	}

	history := make(map[string][]pricing.Observation)
	for _, p := range points {
		// The receipt's own contributions are re-added as the current price.
		if p.ReceiptID == receiptID || p.Currency != receipt.Currency {
			continue
		}
		history[p.NormalizedName] = append(history[p.NormalizedName], pricing.Observation{
			Price:      p.Price,
			Store:      p.Store,
			ObservedAt: p.ObservedAt,
		})
	}
	if len(history) == 0 {
		return nil, ErrNoComparisonData
	}

	report := &models.ComparisonReport{
		ReceiptID: receiptID,
		Currency:  receipt.Currency,
	}
	for _, name := range names {
		item := currentByName[name]
		agg := pricing.Aggregate(item.UnitPrice, receipt.Store, receipt.ScannedAt, history[name])
		report.Comparisons = append(report.Comparisons, models.PriceComparison{
			ProductName:       name,
			CurrentPrice:      agg.CurrentPrice,
			CurrentStore:      agg.CurrentStore,
			BestPrice:         agg.BestPrice,
			BestStore:         agg.BestStore,
			AveragePrice:      agg.AveragePrice,
			MinPrice:          agg.MinPrice,
			MaxPrice:          agg.MaxPrice,
			PriceCount:        agg.PriceCount,
			PotentialSavings:  agg.PotentialSavings,
			SavingsPercentage: agg.SavingsPercentage,
			IsBestPrice:       agg.IsBestPrice,
		})
		report.TotalPotentialSavings += agg.PotentialSavings
	}

	if s.cache != nil {
		if encoded, marshalErr := json.Marshal(report); marshalErr == nil {
			if cacheErr := s.cache.Set(ctx, cacheKey, string(encoded), comparisonCacheTTL); cacheErr != nil {
				s.logger.Warn("failed to cache comparison report",
					zap.String("receiptId", receiptID),
					zap.Error(cacheErr))
			}
		}
	}

	return report, nil
}
