package faq

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/faq-assistant/pkg/errors"
)

func TestDecodeEntries(t *testing.T) {
	t.Run("array", func(t *testing.T) {
		entries, err := DecodeEntries([]byte(`[{"question":"q1","answer":"a1"},{"question":"q2","answer":"a2","category":"billing","tags":["invoice"]}]`))
		require.NoError(t, err)
		require.Equal(t, []Entry{
			{Question: "q1", Answer: "a1"},
			{Question: "q2", Answer: "a2", Category: "billing", Tags: []string{"invoice"}},
		}, entries)
	})

	t.Run("faqs object", func(t *testing.T) {
		entries, err := DecodeEntries([]byte(`{"faqs":[{"id":"faq-1","question":"q","answer":"a"}]}`))
		require.NoError(t, err)
		require.Equal(t, []Entry{{ID: "faq-1", Question: "q", Answer: "a"}}, entries)
	})

	t.Run("empty array", func(t *testing.T) {
		entries, err := DecodeEntries([]byte(" [] "))
		require.NoError(t, err)
		require.Empty(t, entries)
	})

	invalid := map[string]string{
		"empty":            "",
		"not json":         "question: answer",
		"wrong type":       `[{"question":1,"answer":"a"}]`,
		"object no faqs":   `{"items":[]}`,
		"scalar":           `"faq"`,
		"trailing garbage": `[{"question":"q","answer":"a"}] [1]`,
	}
	for name, doc := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeEntries([]byte(doc))
			require.Error(t, err)
			require.True(t, apperrors.IsCode(err, apperrors.CodeLoad))
		})
	}
}

func TestNewCollectionValidatesEntries(t *testing.T) {
	_, err := NewCollection([]Entry{{Question: "q", Answer: "a"}, {Question: "  ", Answer: "a"}})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeLoad))
	require.Contains(t, err.Error(), "entry 1")

	_, err = NewCollection([]Entry{{Question: "q", Answer: ""}})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeLoad))
}

func TestNewCollectionAssignsPositionalIDs(t *testing.T) {
	collection := mustCollection(t,
		Entry{Question: "q1", Answer: "a1"},
		Entry{ID: "custom", Question: "q2", Answer: "a2"},
		Entry{Question: "q3", Answer: "a3"},
	)

	ids := make([]string, 0, collection.Len())
	for _, entry := range collection.Entries() {
		ids = append(ids, entry.ID)
	}
	require.Equal(t, []string{"1", "custom", "3"}, ids)
}

func TestNewCollectionRejectsDuplicateIDs(t *testing.T) {
	cases := map[string][]Entry{
		"explicit ids": {
			{ID: "a", Question: "q1", Answer: "a1"},
			{ID: "a", Question: "q2", Answer: "a2"},
		},
		"positional id collides with explicit id": {
			{ID: "2", Question: "q1", Answer: "a1"},
			{Question: "q2", Answer: "a2"},
		},
	}

	for name, entries := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewCollection(entries)
			require.Error(t, err)
			require.True(t, apperrors.IsCode(err, apperrors.CodeLoad))
			require.Contains(t, err.Error(), "entry 1 reuses id")
		})
	}
}

func TestCollectionIsImmutable(t *testing.T) {
	source := []Entry{{Question: "q", Answer: "a", Tags: []string{"x"}}}
	collection := mustCollection(t, source...)

	source[0].Answer = "changed"
	source[0].Tags[0] = "changed"
	entries := collection.Entries()
	entries[0].Tags[0] = "mutated"
	entries[0].Answer = "mutated"

	got, ok := collection.ByID("1")
	require.True(t, ok)
	require.Equal(t, "a", got.Answer)
	require.Equal(t, []string{"x"}, got.Tags)
}

func TestCollectionQueries(t *testing.T) {
	collection := mustCollection(t,
		Entry{ID: "1", Question: "What is your return policy?", Answer: "30 days.", Category: "Shipping", Tags: []string{"returns"}},
		Entry{ID: "2", Question: "Do you accept PayPal?", Answer: "Yes, and cards.", Category: "payment"},
		Entry{ID: "3", Question: "How long is delivery?", Answer: "3-5 days.", Category: "shipping", Tags: []string{"Courier"}},
		Entry{ID: "4", Question: "Where are you located?", Answer: "Berlin."},
	)

	require.Equal(t, []string{"Shipping", "payment"}, collection.Categories())

	shipping := collection.ByCategory("SHIPPING")
	require.Len(t, shipping, 2)
	require.Equal(t, "1", shipping[0].ID)
	require.Equal(t, "3", shipping[1].ID)
	require.Empty(t, collection.ByCategory("unknown"))

	require.Len(t, collection.Search("DAYS"), 2)
	require.Equal(t, "3", collection.Search("courier")[0].ID)
	require.Equal(t, "2", collection.Search("paypal")[0].ID)
	require.Empty(t, collection.Search("   "))

	entry, ok := collection.ByID("4")
	require.True(t, ok)
	require.Equal(t, "Berlin.", entry.Answer)
	_, ok = collection.ByID("missing")
	require.False(t, ok)
}

func TestLoadCollection(t *testing.T) {
	src := stubSource{entries: []Entry{{Question: "q", Answer: "a"}}}
	collection, err := LoadCollection(context.Background(), src)
	require.NoError(t, err)
	require.Equal(t, 1, collection.Len())

	again, err := LoadCollection(context.Background(), src)
	require.NoError(t, err)
	require.Equal(t, collection.Entries(), again.Entries())
}

func TestLoadCollectionWrapsSourceErrors(t *testing.T) {
	cause := errors.New("disk on fire")
	_, err := LoadCollection(context.Background(), stubSource{err: cause})
	require.Error(t, err)
	require.ErrorIs(t, err, cause)
	require.True(t, apperrors.IsCode(err, apperrors.CodeLoad))

	_, err = LoadCollection(context.Background(), stubSource{entries: []Entry{{Question: "", Answer: "a"}}})
	require.True(t, apperrors.IsCode(err, apperrors.CodeLoad))
}

type stubSource struct {
	entries []Entry
	err     error
}

func (s stubSource) Load(context.Context) ([]Entry, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.entries, nil
}
