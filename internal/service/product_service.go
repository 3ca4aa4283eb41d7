package service

import (
	"context"
	"time"

	"hijabstore/internal/cache"
	apperrors "hijabstore/internal/errors"
	"hijabstore/internal/logger"
	"hijabstore/internal/metrics"
	"hijabstore/internal/model"
	"hijabstore/internal/repository"
)

// ProductService searches the catalog.
type ProductService interface {
	Search(ctx context.Context, keyword string) ([]model.Product, error)
	Seed(ctx context.Context, products []model.Product) (int, error)
}

type productService struct {
	repo  repository.ProductRepository
	cache *cache.Client
	ttl   time.Duration
}

// NewProductService builds a ProductService. A zero ttl disables the result cache.
func NewProductService(repo repository.ProductRepository, cache *cache.Client, ttl time.Duration) ProductService {
	return &productService{repo: repo, cache: cache, ttl: ttl}
}

func (s *productService) cacheKey(keyword string) string {
	return "search:" + keyword
}

// Search returns products whose category or name contains keyword.
func (s *productService) Search(ctx context.Context, keyword string) ([]model.Product, error) {
	if s.ttl > 0 {
		var cached []model.Product
		if s.cache.GetJSON(ctx, s.cacheKey(keyword), &cached) {
			metrics.SearchesTotal.WithLabelValues("hit").Inc()
			return cached, nil
		}
	}

	products, err := s.repo.Search(ctx, keyword)
	if err != nil {
		log := logger.Get()
		log.Error().Err(err).Str("keyword", keyword).Msg("product search failed")
		return nil, apperrors.Store(err)
	}

	metrics.SearchesTotal.WithLabelValues("miss").Inc()
	metrics.SearchResults.Observe(float64(len(products)))
	_ = s.cache.SetJSON(ctx, s.cacheKey(keyword), products, s.ttl)
	return products, nil
}

// Seed inserts products or overwrites them by id. Cached searches expire on
// their own TTL.
func (s *productService) Seed(ctx context.Context, products []model.Product) (int, error) {
	if len(products) == 0 {
		return 0, nil
	}
	if err := s.repo.Upsert(ctx, products); err != nil {
		return 0, apperrors.Store(err)
	}

	log := logger.Get()
	log.Info().Int("count", len(products)).Msg("catalog seeded")
	return len(products), nil
}
