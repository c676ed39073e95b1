package faqstore

import (
	"context"
	"fmt"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/faq-assistant/internal/domain/faq"
)

const defaultTopQueries = 10

// ValkeyStore keeps trending counters in a Valkey sorted set so every replica
// reports the same ranking.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "faq"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) IncrementQuery(ctx context.Context, canonical, display string) error {
	if canonical == "" {
		return nil
	}
	cmds := valkey.Commands{
		s.client.B().Zincrby().Key(s.trendingKey()).Increment(1).Member(canonical).Build(),
	}
	if display != "" {
		cmds = append(cmds, s.client.B().Set().Key(s.displayKey(canonical)).Value(display).Nx().Build())
	}
	for _, resp := range s.client.DoMulti(ctx, cmds...) {
		if err := resp.Error(); err != nil && !valkey.IsValkeyNil(err) {
			return err
		}
	}
	return nil
}

func (s *ValkeyStore) TopQueries(ctx context.Context, limit int) ([]faq.TrendingQuery, error) {
	if limit <= 0 {
		limit = defaultTopQueries
	}
	resp := s.client.Do(ctx, s.client.B().Zrevrange().Key(s.trendingKey()).Start(0).Stop(int64(limit-1)).Withscores().Build())
	scores, err := resp.AsZScores()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return []faq.TrendingQuery{}, nil
		}
		return nil, err
	}
	if len(scores) == 0 {
		return []faq.TrendingQuery{}, nil
	}

	canonicals := make([]string, len(scores))
	for i, z := range scores {
		canonicals[i] = z.Member
	}
	displays := s.fetchDisplays(ctx, canonicals)

	out := make([]faq.TrendingQuery, 0, len(scores))
	for i, z := range scores {
		out = append(out, faq.TrendingQuery{Query: displays[i], Count: int64(z.Score)})
	}
	return out, nil
}

// fetchDisplays resolves every display string in one MGET. Missing keys, or a
// failed lookup, fall back to the canonical form.
func (s *ValkeyStore) fetchDisplays(ctx context.Context, canonicals []string) []string {
	out := append([]string(nil), canonicals...)
	keys := make([]string, len(canonicals))
	for i, canonical := range canonicals {
		keys[i] = s.displayKey(canonical)
	}
	replies, err := s.client.Do(ctx, s.client.B().Mget().Key(keys...).Build()).ToArray()
	if err != nil {
		return out
	}
	for i, reply := range replies {
		if i >= len(out) {
			break
		}
		if display, err := reply.ToString(); err == nil && display != "" {
			out[i] = display
		}
	}
	return out
}

// Keys share the {prefix} hash tag so MGET stays on one cluster slot.
func (s *ValkeyStore) trendingKey() string {
	return fmt.Sprintf("{%s}:trending", s.prefix)
}

func (s *ValkeyStore) displayKey(canonical string) string {
	return fmt.Sprintf("{%s}:display:%s", s.prefix, canonical)
}

var _ faq.Store = (*ValkeyStore)(nil)
