package faq

import "context"

// Store records which questions get asked. It is a side channel and never feeds
// back into matching.
type Store interface {
	IncrementQuery(ctx context.Context, canonical, display string) error
	TopQueries(ctx context.Context, limit int) ([]TrendingQuery, error)
}
