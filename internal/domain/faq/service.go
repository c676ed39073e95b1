package faq

import (
	"context"
	"log/slog"
	"strings"

	apperrors "github.com/yanqian/faq-assistant/pkg/errors"
)

// Service exposes the FAQ assistant capabilities.
type Service interface {
	Answer(ctx context.Context, req Request) (Response, error)
	List(ctx context.Context, category string) []Entry
	Get(ctx context.Context, id string) (Entry, error)
	Search(ctx context.Context, keyword string) ([]Entry, error)
	Categories(ctx context.Context) []string
	Trending(ctx context.Context) ([]TrendingQuery, error)
	Size() int
}

type service struct {
	cfg        Config
	collection *Collection
	composer   Composer
	store      Store
	logger     *slog.Logger
}

// NewService wires up the FAQ domain.
func NewService(cfg Config, collection *Collection, composer Composer, store Store, logger *slog.Logger) Service {
	return &service{
		cfg:        cfg,
		collection: collection,
		composer:   composer,
		store:      store,
		logger:     logger.With("component", "faq.service"),
	}
}

func (s *service) Answer(ctx context.Context, req Request) (Response, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, "question cannot be empty", nil)
	}

	match, err := bestMatch(question, s.collection)
	if err != nil {
		return Response{}, err
	}
	s.logger.Info("faq match selected", "faq_id", match.Entry.ID, "score", match.Score)

	answer, err := s.composer.Compose(ctx, question, match.Entry.Answer)
	if err != nil {
		return Response{}, err
	}

	if s.store != nil {
		if err := s.store.IncrementQuery(ctx, normalizeQuestion(question), question); err != nil {
			s.logger.Warn("faq trending increment failed", "error", err)
		}
	}

	return Response{Answer: answer}, nil
}

func (s *service) List(_ context.Context, category string) []Entry {
	if strings.TrimSpace(category) != "" {
		return s.collection.ByCategory(strings.TrimSpace(category))
	}
	return s.collection.Entries()
}

func (s *service) Get(_ context.Context, id string) (Entry, error) {
	entry, ok := s.collection.ByID(strings.TrimSpace(id))
	if !ok {
		return Entry{}, apperrors.Wrap(apperrors.CodeNotFound, "faq "+id+" not found", nil)
	}
	return entry, nil
}

func (s *service) Search(_ context.Context, keyword string) ([]Entry, error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "keyword cannot be empty", nil)
	}
	return s.collection.Search(keyword), nil
}

func (s *service) Categories(_ context.Context) []string {
	return s.collection.Categories()
}

func (s *service) Trending(ctx context.Context) ([]TrendingQuery, error) {
	if s.store == nil {
		return []TrendingQuery{}, nil
	}
	recs, err := s.store.TopQueries(ctx, s.cfg.TopRecommendations)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeTrending, "failed to load trending queries", err)
	}
	if recs == nil {
		recs = []TrendingQuery{}
	}
	return recs, nil
}

func (s *service) Size() int {
	return s.collection.Len()
}
