package service

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"time"

	"github.com/amirclear/shelf-inventory/internal/dto"
	"github.com/amirclear/shelf-inventory/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	analyticsCacheKey = "analytics:investment_scores"
	analyticsCacheTTL = 60 * time.Second
)

// AnalyticsService ranks the catalog by investment score and serves the
// dashboard counts. Both operations are read-only.
type AnalyticsService interface {
	InvestmentScores(ctx context.Context) (*dto.AnalyticsResponse, error)
	Dashboard(ctx context.Context, userID uuid.UUID) (*dto.DashboardResponse, error)
}

type analyticsService struct {
	productRepo   repository.ProductRepository
	invoiceRepo   repository.InvoiceRepository
	detectionRepo repository.DetectionRepository
	rdb           *redis.Client
}

func NewAnalyticsService(
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
	detectionRepo repository.DetectionRepository,
	rdb *redis.Client,
) AnalyticsService {
	return &analyticsService{
		productRepo:   productRepo,
		invoiceRepo:   invoiceRepo,
		detectionRepo: detectionRepo,
		rdb:           rdb,
	}
}

// InvestmentScores computes score = sales_estimate × margin / max(1, stock)
// for every product (stock ≤ 0 scores exactly 0), sorted descending. The sort
// is stable, so ties keep the repository's name ordering. Scores are rounded
// to two decimals for display only. Results are cached briefly in redis;
// product writes invalidate the cache.
func (s *analyticsService) InvestmentScores(ctx context.Context) (*dto.AnalyticsResponse, error) {
	if cached := s.readCache(ctx); cached != nil {
		return cached, nil
	}

	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	scores := make([]dto.ProductScore, 0, len(products))
	for i := range products {
		p := &products[i]
		scores = append(scores, dto.ProductScore{
			ProductID: p.ID.String(),
			SKU:       p.SKU,
			Name:      p.Name,
			Stock:     p.Stock,
			Score:     math.Round(p.InvestmentScore()*100) / 100,
		})
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })

	resp := &dto.AnalyticsResponse{Products: scores}
	resp.Chart.Labels = make([]string, 0, len(scores))
	resp.Chart.Scores = make([]float64, 0, len(scores))
	for _, sc := range scores {
		resp.Chart.Labels = append(resp.Chart.Labels, sc.Name)
		resp.Chart.Scores = append(resp.Chart.Scores, sc.Score)
	}

	s.writeCache(ctx, resp)
	return resp, nil
}

func (s *analyticsService) Dashboard(ctx context.Context, userID uuid.UUID) (*dto.DashboardResponse, error) {
	products, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoiceRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	detections, err := s.detectionRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{
		ProductsCount:   products,
		InvoicesCount:   invoices,
		DetectionsCount: detections,
	}, nil
}

func (s *analyticsService) readCache(ctx context.Context) *dto.AnalyticsResponse {
	if s.rdb == nil {
		return nil
	}
	raw, err := s.rdb.Get(ctx, analyticsCacheKey).Bytes()
	if err != nil {
		return nil // miss or redis down — recompute
	}
	var resp dto.AnalyticsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil
	}
	return &resp
}

func (s *analyticsService) writeCache(ctx context.Context, resp *dto.AnalyticsResponse) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, analyticsCacheKey, raw, analyticsCacheTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("failed to cache analytics response")
	}
}
