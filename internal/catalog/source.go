package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/cxsxrrrr/PokeMart/pkg/models"
)

var (
	// ErrCatalogUnavailable means the data endpoint could not be read.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrMalformedCatalog means the payload is not {"data": [...]}.
	ErrMalformedCatalog = errors.New("malformed catalog payload")
)

// Source is anything that can produce the raw catalog.
type Source interface {
	Name() string
	FetchAll(ctx context.Context) ([]models.CatalogCard, error)
}

// HTTPSource fetches the catalog file from the storefront host. The client
// has no timeout of its own; callers bound the fetch through ctx.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func NewHTTPSource(rawURL string) *HTTPSource {
	return &HTTPSource{
		URL:    rawURL,
		Client: &http.Client{},
	}
}

func (s *HTTPSource) Name() string { return "http" }

// FetchAll performs a single uncached GET of the data endpoint.
func (s *HTTPSource) FetchAll(ctx context.Context) ([]models.CatalogCard, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", ErrCatalogUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrCatalogUnavailable, err)
	}
	return DecodePayload(b)
}

// FileSource reads the same payload from disk.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Name() string { return "file" }

func (s *FileSource) FetchAll(ctx context.Context) ([]models.CatalogCard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	return DecodePayload(b)
}

// DecodePayload validates the {"data": [...]} envelope. An empty array is a
// valid, empty catalog. Records are decoded one by one, so a mistyped field
// only loses that field.
func DecodePayload(b []byte) ([]models.CatalogCard, error) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCatalog, err)
	}

	data := bytes.TrimSpace(envelope.Data)
	if len(data) == 0 || data[0] != '[' {
		return nil, fmt.Errorf("%w: data is not an array", ErrMalformedCatalog)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCatalog, err)
	}
	cards := make([]models.CatalogCard, 0, len(records))
	for _, r := range records {
		cards = append(cards, decodeRecord(r))
	}
	return cards, nil
}

// ResolveURL joins a possibly relative endpoint (e.g. "/data/cards.json")
// onto a base such as "http://localhost:8080".
func ResolveURL(base, ref string) (string, error) {
	r, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", ref, err)
	}
	if r.IsAbs() || base == "" {
		return r.String(), nil
	}
	b, err := url.Parse(strings.TrimRight(base, "/") + "/")
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", base, err)
	}
	return b.ResolveReference(r).String(), nil
}

// SelectSource fetches over HTTP when endpoint is absolute or an API base is
// configured, and reads file otherwise.
func SelectSource(endpoint, apiBase, file string) Source {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return NewHTTPSource(endpoint)
	}
	if apiBase != "" {
		if u, err := ResolveURL(apiBase, endpoint); err == nil {
			return NewHTTPSource(u)
		}
	}
	return NewFileSource(file)
}
