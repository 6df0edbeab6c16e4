package search

import (
	"math/rand"
	"net/http"
	"time"

	"github.com/PJEDeveloper/thinker/internal/observability"
)

// Client is a small retrying HTTP client for the best-effort outbound calls
// this adapter makes. Search is allowed to fail, so the retry budget stays
// tight.
type Client struct {
	hc  *http.Client
	opt Options
}

type Options struct {
	Timeout    time.Duration
	Retry      int
	BackoffMin time.Duration
	BackoffMax time.Duration
}

func NewClient(opt Options) *Client {
	if opt.Timeout <= 0 {
		opt.Timeout = 5 * time.Second
	}
	if opt.Retry < 0 {
		opt.Retry = 0
	}
	if opt.BackoffMin <= 0 {
		opt.BackoffMin = 100 * time.Millisecond
	}
	if opt.BackoffMax <= opt.BackoffMin {
		opt.BackoffMax = 800 * time.Millisecond
	}
	return &Client{
		hc:  &http.Client{Timeout: opt.Timeout},
		opt: opt,
	}
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	var resp *http.Response
	var err error
	for i := 0; i <= c.opt.Retry; i++ {
		resp, err = c.hc.Do(req)
		if err == nil && resp.StatusCode >= 200 && resp.StatusCode < 500 {
			return resp, nil
		}
		observability.Logger().Warn("outbound request failed",
			"url", req.URL.String(), "attempt", i+1, "error", err)
		if i < c.opt.Retry {
			// close the failed body so the connection can be reused
			if resp != nil {
				_ = resp.Body.Close()
			}
			time.Sleep(backoffJitter(c.opt.BackoffMin, c.opt.BackoffMax))
		}
	}
	return resp, err
}

func backoffJitter(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)))
}
