package sources

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/agentstation/shelfmap/internal/transport"
	"github.com/agentstation/shelfmap/pkg/errors"
)

// HTTPSource downloads a dataset export over HTTP.
type HTTPSource struct {
	name   string
	url    string
	client *transport.Client
}

// NewHTTP creates an HTTP source.
func NewHTTP(name, url string, client *transport.Client) *HTTPSource {
	return &HTTPSource{name: name, url: url, client: client}
}

// Name implements Source.
func (s *HTTPSource) Name() string { return s.name }

// URI implements Source.
func (s *HTTPSource) URI() string { return s.url }

// Fetch implements Source.
func (s *HTTPSource) Fetch(ctx context.Context) (io.ReadCloser, error) {
	resp, err := s.client.Get(ctx, s.url)
	if err != nil {
		return nil, &errors.APIError{
			Source:   s.name,
			Endpoint: s.url,
			Message:  "request failed",
			Err:      err,
		}
	}
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		_ = resp.Body.Close()
		msg := resp.Status
		if body := strings.TrimSpace(string(snippet)); body != "" {
			msg += ": " + body
		}
		return nil, &errors.APIError{
			Source:     s.name,
			Endpoint:   s.url,
			StatusCode: resp.StatusCode,
			Message:    msg,
		}
	}
	return resp.Body, nil
}
