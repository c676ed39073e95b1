package faqsource

import (
	"context"
	"fmt"
	"os"

	"github.com/yanqian/faq-assistant/internal/domain/faq"
)

// FileSource reads the FAQ document from the local filesystem.
type FileSource struct {
	path string
}

// NewFileSource constructs a source for the JSON document at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load implements faq.Source.
func (s *FileSource) Load(_ context.Context) ([]faq.Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read faq file %s: %w", s.path, err)
	}
	return faq.DecodeEntries(data)
}

var _ faq.Source = (*FileSource)(nil)
