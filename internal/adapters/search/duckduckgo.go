package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PJEDeveloper/thinker/internal/domain"
)

const defaultEndpoint = "https://api.duckduckgo.com/"

// DuckDuckGo queries the DuckDuckGo Instant Answer API and returns result
// URLs. It implements domain.Searcher; callers treat every failure as
// "search unavailable" and degrade to empty results.
type DuckDuckGo struct {
	Endpoint string
	Client   *Client
}

func NewDuckDuckGo(endpoint string, client *Client) *DuckDuckGo {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	if client == nil {
		client = NewClient(Options{})
	}
	return &DuckDuckGo{Endpoint: endpoint, Client: client}
}

func (d *DuckDuckGo) Search(ctx context.Context, query string, limit int) ([]string, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 5
	}

	u, err := url.Parse(d.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSearchUnavailable, err)
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("no_html", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSearchUnavailable, err)
	}
	req.Header.Set("User-Agent", "thinker/1.0")

	resp, err := d.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSearchUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", domain.ErrSearchUnavailable, resp.StatusCode)
	}

	var ddg struct {
		AbstractURL   string `json:"AbstractURL"`
		RelatedTopics []struct {
			FirstURL string `json:"FirstURL"`
			Topics   []struct {
				FirstURL string `json:"FirstURL"`
			} `json:"Topics"`
		} `json:"RelatedTopics"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ddg); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSearchUnavailable, err)
	}

	results := make([]string, 0, limit)
	add := func(u string) {
		if u != "" && len(results) < limit {
			results = append(results, u)
		}
	}

	add(ddg.AbstractURL)
	for _, topic := range ddg.RelatedTopics {
		add(topic.FirstURL)
		// Categorized answers nest one level deeper.
		for _, sub := range topic.Topics {
			add(sub.FirstURL)
		}
	}

	return results, nil
}
