package faq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/yanqian/faq-assistant/pkg/errors"
)

// Source yields the raw FAQ entries backing a Collection.
type Source interface {
	Load(ctx context.Context) ([]Entry, error)
}

// Collection is the ordered, read-only FAQ catalogue. It is safe for concurrent use
// because nothing mutates it after construction.
type Collection struct {
	entries []Entry
}

// NewCollection validates entries and freezes them into a Collection.
func NewCollection(entries []Entry) (*Collection, error) {
	frozen := make([]Entry, len(entries))
	seen := make(map[string]int, len(entries))
	for i, entry := range entries {
		if strings.TrimSpace(entry.Question) == "" {
			return nil, apperrors.Wrap(apperrors.CodeLoad, fmt.Sprintf("faq entry %d has an empty question", i), nil)
		}
		if strings.TrimSpace(entry.Answer) == "" {
			return nil, apperrors.Wrap(apperrors.CodeLoad, fmt.Sprintf("faq entry %d has an empty answer", i), nil)
		}
		if strings.TrimSpace(entry.ID) == "" {
			entry.ID = strconv.Itoa(i + 1)
		}
		if prev, dup := seen[entry.ID]; dup {
			return nil, apperrors.Wrap(apperrors.CodeLoad, fmt.Sprintf("faq entry %d reuses id %q of entry %d", i, entry.ID, prev), nil)
		}
		seen[entry.ID] = i
		frozen[i] = entry.clone()
	}
	return &Collection{entries: frozen}, nil
}

// LoadCollection reads every entry from src once. Any failure is a load_error.
func LoadCollection(ctx context.Context, src Source) (*Collection, error) {
	entries, err := src.Load(ctx)
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeLoad) {
			return nil, err
		}
		return nil, apperrors.Wrap(apperrors.CodeLoad, "failed to load faq data", err)
	}
	return NewCollection(entries)
}

// DecodeEntries parses a JSON document holding either an array of entries or an
// object with a "faqs" array.
func DecodeEntries(data []byte) ([]Entry, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, apperrors.Wrap(apperrors.CodeLoad, "faq document is empty", nil)
	}

	var entries []Entry
	switch trimmed[0] {
	case '[':
		if err := strictUnmarshal(trimmed, &entries); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeLoad, "malformed faq document", err)
		}
	case '{':
		var doc struct {
			FAQs *[]Entry `json:"faqs"`
		}
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeLoad, "malformed faq document", err)
		}
		if doc.FAQs == nil {
			return nil, apperrors.Wrap(apperrors.CodeLoad, "faq document has no faqs array", nil)
		}
		entries = *doc.FAQs
	default:
		return nil, apperrors.Wrap(apperrors.CodeLoad, "faq document must be a JSON array or object", nil)
	}
	return entries, nil
}

func strictUnmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("trailing data after faq array")
	}
	return nil
}

// Len reports the number of entries.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Entries returns a copy of the catalogue in load order.
func (c *Collection) Entries() []Entry {
	if c == nil {
		return nil
	}
	out := make([]Entry, len(c.entries))
	for i, entry := range c.entries {
		out[i] = entry.clone()
	}
	return out
}

// ByID returns the first entry with the given id.
func (c *Collection) ByID(id string) (Entry, bool) {
	for _, entry := range c.all() {
		if entry.ID == id {
			return entry.clone(), true
		}
	}
	return Entry{}, false
}

// ByCategory returns entries whose category matches case-insensitively.
func (c *Collection) ByCategory(category string) []Entry {
	out := make([]Entry, 0)
	for _, entry := range c.all() {
		if strings.EqualFold(entry.Category, category) {
			out = append(out, entry.clone())
		}
	}
	return out
}

// Categories lists distinct non-empty categories in first-appearance order.
func (c *Collection) Categories() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, entry := range c.all() {
		if entry.Category == "" {
			continue
		}
		key := strings.ToLower(entry.Category)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, entry.Category)
	}
	return out
}

// Search returns entries whose question, answer or tags contain keyword.
func (c *Collection) Search(keyword string) []Entry {
	needle := strings.ToLower(strings.TrimSpace(keyword))
	out := make([]Entry, 0)
	if needle == "" {
		return out
	}
	for _, entry := range c.all() {
		if strings.Contains(strings.ToLower(entry.Question), needle) ||
			strings.Contains(strings.ToLower(entry.Answer), needle) ||
			containsTag(entry.Tags, needle) {
			out = append(out, entry.clone())
		}
	}
	return out
}

func (c *Collection) all() []Entry {
	if c == nil {
		return nil
	}
	return c.entries
}

func (e Entry) clone() Entry {
	if e.Tags != nil {
		e.Tags = append([]string(nil), e.Tags...)
	}
	return e
}

func containsTag(tags []string, needle string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}
