package catalog

import (
	"context"
	"encoding/json"
	"log"
)

// Cache is the lookup cache consumed by the catalog service. Implemented by
// the Redis adapter; a nil Cache disables caching entirely.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string) error
}

// Service serves reference data through a read-through cache. The catalog
// changes only at migration time, so cached entries are safe to serve for
// their whole TTL.
type Service struct {
	repo  Repository
	cache Cache
}

// NewService creates a catalog service. cache may be nil, in which case every
// read goes to the database.
func NewService(repo Repository, cache Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

func (s *Service) ListPaymentForms(ctx context.Context) ([]*PaymentForm, error) {
	return cachedList(ctx, s, "catalog:payment_forms", s.repo.ListPaymentForms)
}

func (s *Service) ListDocumentTypes(ctx context.Context) ([]*DocumentType, error) {
	return cachedList(ctx, s, "catalog:document_types", s.repo.ListDocumentTypes)
}

func (s *Service) GetDocumentType(ctx context.Context, id int64) (*DocumentType, error) {
	return s.repo.GetDocumentType(ctx, id)
}

func (s *Service) ListCardBrands(ctx context.Context) ([]*CardBrand, error) {
	return cachedList(ctx, s, "catalog:card_brands", s.repo.ListCardBrands)
}

func (s *Service) ListStatuses(ctx context.Context) ([]*Status, error) {
	return cachedList(ctx, s, "catalog:statuses", s.repo.ListStatuses)
}

func (s *Service) ListCreditTypes(ctx context.Context) ([]*CreditType, error) {
	return cachedList(ctx, s, "catalog:credit_types", s.repo.ListCreditTypes)
}

// cachedList serves a lookup list from the cache when possible, falling back
// to the repository and populating the cache on a miss. Cache failures only
// log; they never fail the read.
func cachedList[T any](ctx context.Context, s *Service, key string, load func(context.Context) ([]*T, error)) ([]*T, error) {
	if s.cache != nil {
		if raw, ok := s.cache.Get(ctx, key); ok {
			var items []*T
			if err := json.Unmarshal([]byte(raw), &items); err == nil {
				return items, nil
			}
			log.Printf("Discarding malformed cache entry %s", key)
		}
	}

	items, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(items); err == nil {
			if err := s.cache.Set(ctx, key, string(raw)); err != nil {
				log.Printf("Failed to cache %s: %v", key, err)
			}
		}
	}

	return items, nil
}
