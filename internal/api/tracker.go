package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rocketleague-tracker/internal/config"
	"rocketleague-tracker/internal/constants"
	"rocketleague-tracker/internal/profile"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

// TrackerClient fetches profile documents from the stats provider.
type TrackerClient struct {
	client    *fasthttp.Client
	userAgent string
	timeout   time.Duration
	logger    zerolog.Logger
}

func NewTrackerClient(cfg *config.Config, logger zerolog.Logger) *TrackerClient {
	return &TrackerClient{
		client: &fasthttp.Client{
			MaxConnsPerHost:     constants.TrackerMaxConns,
			ReadTimeout:         cfg.TrackerTimeout,
			WriteTimeout:        cfg.TrackerTimeout,
			MaxIdleConnDuration: constants.TrackerIdleConnTTL,
			MaxResponseBodySize: constants.TrackerMaxBodyBytes,
		},
		userAgent: cfg.TrackerUserAgent,
		timeout:   cfg.TrackerTimeout,
		logger:    logger,
	}
}

// Fetch issues one GET for url, bounded by the client timeout or the context
// deadline, whichever comes first. It does not retry.
func (c *TrackerClient) Fetch(ctx context.Context, url string) (*profile.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, &profile.FetchError{URL: url, Err: err}
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetUserAgent(c.userAgent)
	req.Header.Set("Accept", "application/json")

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	start := time.Now()
	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		c.logger.Error().Err(err).Str("url", url).Msg("tracker request failed")
		return nil, &profile.FetchError{URL: url, Err: err}
	}

	status := resp.StatusCode()
	c.logger.Debug().
		Str("url", url).
		Int("status", status).
		Int("bytes", len(resp.Body())).
		Dur("duration", time.Since(start)).
		Msg("tracker response received")

	doc, err := profile.DecodeDocument(resp.Body())
	if err != nil {
		if status != fasthttp.StatusOK {
			return nil, &profile.FetchError{URL: url, StatusCode: status, Err: unwrapParse(err)}
		}
		return nil, err
	}

	// Unknown players come back as 404 with a provider error list; let the
	// caller surface that message instead of a bare status.
	if status != fasthttp.StatusOK && len(doc.Errors) == 0 {
		return nil, &profile.FetchError{URL: url, StatusCode: status, Err: fmt.Errorf("unexpected status %d", status)}
	}
	return doc, nil
}

func unwrapParse(err error) error {
	var pe *profile.ParseError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}
