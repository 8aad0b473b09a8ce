package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"goshopper-backend-go/internal/currency"
	"goshopper-backend-go/internal/db"
	"goshopper-backend-go/internal/entitlements"
	"goshopper-backend-go/internal/models"
	"goshopper-backend-go/internal/pricing"
)

// Sentinel errors for receipt operations.
var (
	ErrReceiptNotFound = errors.New("receipt not found")
	ErrForbidden       = errors.New("access denied")
	// ErrUpgradeRequired gates features outside the user's plan; the wrapping
	// error text names the minimum plan.
	ErrUpgradeRequired = errors.New("feature requires a higher plan")
)

// receiptService implements the ReceiptService interface.
type receiptService struct {
	receiptRepo db.ReceiptRepository
	priceRepo   db.PricePointRepository
	subSvc      SubscriptionService
	auditSvc    AuditService
	normalizer  *pricing.Normalizer
	logger      *zap.Logger
	now         func() time.Time
}

// NewReceiptService creates a new ReceiptService instance.
func NewReceiptService(
	receiptRepo db.ReceiptRepository,
	priceRepo db.PricePointRepository,
	subSvc SubscriptionService,
	auditSvc AuditService,
	normalizer *pricing.Normalizer,
	logger *zap.Logger,
) ReceiptService {
	return &receiptService{
		receiptRepo: receiptRepo,
		priceRepo:   priceRepo,
		subSvc:      subSvc,
		auditSvc:    auditSvc,
		normalizer:  normalizer,
		logger:      logger,
		now:         time.Now,
	}
}

// Create records a scanned receipt. The scan is metered against the user's
// subscription first; ErrScanLimitReached / ErrSubscriptionInactive from the
// subscription service pass through unchanged. Item names are normalized
// against the product catalog and matched items contribute community price
// points.
func (s *receiptService) Create(ctx context.Context, userID string, req models.CreateReceiptRequest) (*models.Receipt, error) {
	// Validate before metering so a rejected payload does not consume a scan.
	code := currency.Code(req.Currency)
	if code != currency.USD && code != currency.CDF {
		return nil, fmt.Errorf("%w: %s", currency.ErrUnsupportedCurrency, req.Currency)
	}

	if _, err := s.subSvc.RecordScan(ctx, userID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	scannedAt := now
	if req.ScannedAt != nil {
		scannedAt = models.CoerceTime(req.ScannedAt.UTC(), now)
	}

	items := make([]models.ReceiptItem, len(req.Items))
	copy(items, req.Items)
	for i := range items {
		match := s.normalizer.Normalize(items[i].Name)
		if match.Method != "none" && !match.NeedsReview {
			items[i].NormalizedName = match.NormalizedName
			if items[i].Category == "" {
				items[i].Category = match.Category
			}
		}
		items[i].Confidence = match.Confidence
	}

	receipt := &models.Receipt{
		UserID:    userID,
		Store:     req.Store,
		City:      req.City,
		Items:     items,
		Total:     req.Total,
		Currency:  string(code),
		ScannedAt: scannedAt,
	}
	receipt.Total = receipt.DerivedTotal()

	totalUSD, err := currency.Convert(receipt.Total, code, currency.USD)
	if err != nil {
		return nil, fmt.Errorf("failed to convert receipt total: %w", err)
	}
	totalCDF, err := currency.Convert(receipt.Total, code, currency.CDF)
	if err != nil {
		return nil, fmt.Errorf("failed to convert receipt total: %w", err)
	}
	receipt.TotalUSD = totalUSD
	receipt.TotalCDF = totalCDF

	receiptID, err := s.receiptRepo.Create(ctx, receipt)
	if err != nil {
		return nil, fmt.Errorf("failed to create receipt: %w", err)
	}
	receipt.ID = receiptID

	s.recordPricePoints(ctx, receipt)

	if s.auditSvc != nil {
		auditErr := s.auditSvc.CreateAuditLog(ctx, models.AuditLog{
			UserID:     userID,
			Action:     models.AuditReceiptScan,
			TargetType: "RECEIPT",
			TargetID:   receiptID,
			Details:    map[string]interface{}{"store": receipt.Store, "total": receipt.Total, "currency": receipt.Currency},
		})
		if auditErr != nil {
			s.logger.Warn("failed to write audit log for receipt scan", zap.Error(auditErr))
		}
	}

	return receipt, nil
}

// recordPricePoints writes one observation per catalog-matched item. A
// failure here is logged and swallowed; the receipt itself is already stored.
func (s *receiptService) recordPricePoints(ctx context.Context, receipt *models.Receipt) {
	var points []*models.PricePoint
	for _, item := range receipt.Items {
		if item.NormalizedName == "" || item.UnitPrice <= 0 {
			continue
		}
		points = append(points, &models.PricePoint{
			NormalizedName: item.NormalizedName,
			Store:          receipt.Store,
			City:           receipt.City,
			Price:          item.UnitPrice,
			Currency:       receipt.Currency,
			ReceiptID:      receipt.ID,
			ObservedAt:     receipt.ScannedAt,
		})
	}
	if len(points) == 0 {
		return
	}
	if err := s.priceRepo.CreateBatch(ctx, points); err != nil {
		s.logger.Warn("failed to record price points",
			zap.String("receiptId", receipt.ID),
			zap.Int("count", len(points)),
			zap.Error(err))
	}
}

// GetByID retrieves a receipt, enforcing ownership.
func (s *receiptService) GetByID(ctx context.Context, userID, receiptID string) (*models.Receipt, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, receiptID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrReceiptNotFound, receiptID)
		}
		return nil, fmt.Errorf("failed to get receipt %s: %w", receiptID, err)
	}
	if receipt.UserID != userID {
		return nil, ErrForbidden
	}
	return receipt, nil
}

// List returns the user's receipts, most recent scan first.
func (s *receiptService) List(ctx context.Context, userID string, limit int) ([]*models.Receipt, error) {
	receipts, err := s.receiptRepo.GetByUserID(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts for %s: %w", userID, err)
	}
	return receipts, nil
}

// Delete removes a receipt after an ownership check. Price points already
// contributed by the receipt remain; community observations are not recalled.
func (s *receiptService) Delete(ctx context.Context, userID, receiptID string) error {
	if _, err := s.GetByID(ctx, userID, receiptID); err != nil {
		return err
	}
	if err := s.receiptRepo.Delete(ctx, receiptID); err != nil {
		return fmt.Errorf("failed to delete receipt %s: %w", receiptID, err)
	}
	if s.auditSvc != nil {
		auditErr := s.auditSvc.CreateAuditLog(ctx, models.AuditLog{
			UserID:     userID,
			Action:     models.AuditReceiptDelete,
			TargetType: "RECEIPT",
			TargetID:   receiptID,
		})
		if auditErr != nil {
			s.logger.Warn("failed to write audit log for receipt delete", zap.Error(auditErr))
		}
	}
	return nil
}

// UpdateCity backfills the city on a receipt.
func (s *receiptService) UpdateCity(ctx context.Context, userID, receiptID, city string) error {
	if _, err := s.GetByID(ctx, userID, receiptID); err != nil {
		return err
	}
	if err := s.receiptRepo.UpdateCity(ctx, receiptID, city); err != nil {
		return fmt.Errorf("failed to update city on receipt %s: %w", receiptID, err)
	}
	return nil
}

// SpendingStats aggregates the user's receipts since the given time into
// totals by store and category, in both currencies.
func (s *receiptService) SpendingStats(ctx context.Context, userID string, since time.Time) (*models.SpendingStats, error) {
	sub, err := s.subSvc.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !entitlements.HasAccess(entitlements.FeatureSpendingStats, sub, s.now().UTC()) {
		return nil, fmt.Errorf("%w: spending stats requires the %s plan",
			ErrUpgradeRequired, entitlements.MinimumPlanFor(entitlements.FeatureSpendingStats))
	}

	receipts, err := s.receiptRepo.GetByUserIDSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load receipts for stats: %w", err)
	}

	stats := &models.SpendingStats{
		PeriodStart: since,
		PeriodEnd:   s.now().UTC(),
		ByStore:     make(map[string]float64),
		ByCategory:  make(map[string]float64),
	}
	for _, r := range receipts {
		stats.ReceiptCount++
		stats.TotalUSD += r.TotalUSD
		stats.TotalCDF += r.TotalCDF
		stats.ByStore[r.Store] += r.TotalUSD
		for _, item := range r.Items {
			category := item.Category
			if category == "" {
				category = "other"
			}
			itemUSD, convErr := currency.Convert(item.TotalPrice, currency.Code(r.Currency), currency.USD)
			if convErr != nil {
				continue
			}
			stats.ByCategory[category] += itemUSD
		}
	}
	return stats, nil
}
