package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"

	"scoreboard/internal/scoring"
)

// maxExportBytes caps the size of a downloaded export
const maxExportBytes = 64 << 20

// ErrExportTooLarge is returned when a download exceeds the size cap
var ErrExportTooLarge = errors.New("export too large")

// HTTPSource downloads an export, such as a shared spreadsheet link
type HTTPSource struct {
	url        string
	httpClient *http.Client
	maxBytes   int64
}

// NewHTTPSource creates an HTTP source. A non-empty token is sent as a bearer token.
func NewHTTPSource(url, token string) *HTTPSource {
	client := &http.Client{}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
		client = oauth2.NewClient(context.Background(), ts)
	}
	return &HTTPSource{url: url, httpClient: client, maxBytes: maxExportBytes}
}

func (s *HTTPSource) Kind() string     { return KindHTTP }
func (s *HTTPSource) Location() string { return s.url }

// Fetch downloads and decodes the export
func (s *HTTPSource) Fetch(ctx context.Context) (scoring.Batch, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return scoring.Batch{}, fmt.Errorf("building request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return scoring.Batch{}, fmt.Errorf("downloading export: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return scoring.Batch{}, fmt.Errorf("download error %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes+1))
	if err != nil {
		return scoring.Batch{}, fmt.Errorf("reading export: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return scoring.Batch{}, fmt.Errorf("%w: export exceeds %d bytes", ErrExportTooLarge, s.maxBytes)
	}

	format, err := DetectFormat(s.url, data)
	if err != nil {
		if ct := resp.Header.Get("Content-Type"); ct != "" {
			return scoring.Batch{}, fmt.Errorf("%w (content type %s)", err, ct)
		}
		return scoring.Batch{}, err
	}

	batch, err := Decode(format, bytes.NewReader(data))
	if err != nil {
		return scoring.Batch{}, fmt.Errorf("decoding %s export: %w", format, err)
	}
	return batch, nil
}
