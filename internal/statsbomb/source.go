package statsbomb

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	// Fiber ships a fasthttp-based HTTP client (fiber.Agent). Using it for upstream calls
	// keeps the whole service on one HTTP stack.
	"github.com/gofiber/fiber/v2"
)

// DefaultBaseURL is the raw-content root of the public StatsBomb open-data repository.
const DefaultBaseURL = "https://raw.githubusercontent.com/statsbomb/open-data/master/data"

const userAgent = "match-explorer/1.0"

// Source fetches one raw open-data document by its slash-separated path,
// e.g. "matches/11/90.json".
type Source interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// HTTPSource fetches documents from a base URL.
type HTTPSource struct {
	baseURL string
	timeout time.Duration
	client  *fiber.Client
}

// NewHTTPSource returns a Source rooted at baseURL. A non-positive timeout means the
// request is bounded only by the caller's context deadline.
func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		client:  &fiber.Client{UserAgent: userAgent},
	}
}

// Fetch issues GET {baseURL}/{path} and returns the body of a 200 response.
// Any other status is an error; there are no retries.
func (s *HTTPSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	url := s.baseURL + "/" + strings.TrimLeft(path, "/")

	// fiber.Agent has no context support, so the context deadline is folded into the
	// agent's own timeout instead.
	timeout := s.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); timeout <= 0 || remaining < timeout {
			timeout = remaining
		}
	}

	agent := s.client.Get(url)
	if timeout > 0 {
		agent.Timeout(timeout)
	}

	// Bytes sends the request, copies the body out, and releases the agent.
	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("GET %s: %w", url, errors.Join(errs...))
	}
	if code != fiber.StatusOK {
		return nil, fmt.Errorf("GET %s: unexpected status %d", url, code)
	}
	return body, nil
}

// DirSource reads documents from a local checkout of the open-data "data" directory.
type DirSource struct {
	root string
}

// NewDirSource returns a Source that reads files under root.
func NewDirSource(root string) *DirSource {
	return &DirSource{root: root}
}

func (s *DirSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(filepath.Join(s.root, filepath.FromSlash(path)))
}
