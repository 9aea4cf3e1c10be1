package stats

import (
	"fmt"
	"os"
	"path"
	"strings"
	"time"
)

// Source represents a resource containing a dataset.
// This is typically a CSV file, but Excel workbooks are supported too.
type Source struct {
	URL     string
	Title   string
	Content []byte
	Fetched time.Time
}

// NewSource returns a source for a local path or an http(s) URL.
func NewSource(url string) *Source {
	return &Source{URL: url, Title: path.Base(url)}
}

// IsRemote reports whether the source is fetched over HTTP.
func (s *Source) IsRemote() bool {
	return strings.HasPrefix(s.URL, "http://") || strings.HasPrefix(s.URL, "https://")
}

// Fetch loads the source content. Content is only fetched once.
func (s *Source) Fetch(timeout time.Duration) error {
	if s.Content != nil {
		return nil
	}

	var data []byte
	var err error
	if s.IsRemote() {
		data, err = download(s.URL, timeout)
	} else {
		data, err = os.ReadFile(s.URL)
	}
	if err != nil {
		return fmt.Errorf("fetch %s: %w", s.URL, err)
	}

	s.Content = data
	s.Fetched = time.Now()
	return nil
}
