package client

import (
	"backend/customerrors"
	"backend/middleware"
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://api.worldbank.org/v2"

// Each indicator fetch gets this long before the whole request is failed.
const fetchTimeout = 20 * time.Second

type WorldBankClient struct {
	client *resty.Client
}

// NewWorldBankClient builds the client for the World Bank v2 API. baseURL is
// overridable so tests can point it at a stub server; empty picks the public
// endpoint.
func NewWorldBankClient(baseURL string) *WorldBankClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(fetchTimeout).
		SetHeaders(map[string]string{
			"Accept":          "application/json",
			"Accept-Encoding": "gzip, deflate, br",
		})

	client.OnAfterResponse(middleware.DecompressMiddleware)

	return &WorldBankClient{client: client}
}

// FetchIndicator performs one GET for a single indicator code and returns the
// raw envelope body. Non-2xx statuses and transport failures both surface as
// *customerrors.UpstreamError so the caller can abort the whole request.
func (w *WorldBankClient) FetchIndicator(ctx context.Context, country, code, start, end string) ([]byte, error) {
	resp, err := w.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"country": country,
			"code":    code,
		}).
		SetQueryParams(map[string]string{
			"format":   "json",
			"per_page": "20000",
			"date":     start + ":" + end,
		}).
		Get("/country/{country}/indicator/{code}")

	if err != nil {
		return nil, &customerrors.UpstreamError{Code: code, Err: err}
	}

	if !resp.IsSuccess() {
		return nil, &customerrors.UpstreamError{Code: code, Status: resp.StatusCode()}
	}

	return resp.Body(), nil
}
