package faqsource

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/faq-assistant/internal/domain/faq"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// PostgresSource reads FAQ rows from a table with columns
// id, question, answer, category, tags.
type PostgresSource struct {
	pool  *pgxpool.Pool
	table string
}

// NewPostgresSource constructs the source. The table name is interpolated into the
// query, so only plain (optionally schema-qualified) identifiers are accepted.
func NewPostgresSource(pool *pgxpool.Pool, table string) (*PostgresSource, error) {
	if table == "" {
		table = "faqs"
	}
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid faq table name %q", table)
	}
	return &PostgresSource{pool: pool, table: table}, nil
}

// Load implements faq.Source. Rows come back in id order so repeated loads agree.
func (s *PostgresSource) Load(ctx context.Context) ([]faq.Entry, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
		SELECT id::text, question, answer, COALESCE(category, ''), COALESCE(tags, '{}')
		FROM %s
		ORDER BY id
	`, s.table))
	if err != nil {
		return nil, fmt.Errorf("query faq rows: %w", err)
	}
	entries, err := pgx.CollectRows(rows, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("scan faq rows: %w", err)
	}
	return entries, nil
}

func scanEntry(row pgx.CollectableRow) (faq.Entry, error) {
	var entry faq.Entry
	if err := row.Scan(&entry.ID, &entry.Question, &entry.Answer, &entry.Category, &entry.Tags); err != nil {
		return faq.Entry{}, err
	}
	if len(entry.Tags) == 0 {
		entry.Tags = nil
	}
	return entry, nil
}

var _ faq.Source = (*PostgresSource)(nil)
