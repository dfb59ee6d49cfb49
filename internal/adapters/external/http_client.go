package external

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"healthadvisor.app/pkg/errors"
)

// ClientParams configures an upstream HTTP client
type ClientParams struct {
	BaseURL string
	Timeout time.Duration
}

func newRestyClient(params ClientParams) *resty.Client {
	return resty.New().
		SetBaseURL(params.BaseURL).
		SetTimeout(params.Timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")
}

// getJSON performs a single GET and decodes the body into out.
// Transport failures and non-2xx statuses are upstream errors; a body that
// cannot be decoded is an internal error.
func getJSON(ctx context.Context, client *resty.Client, service, path string, query map[string]string, out interface{}) error {
	resp, err := client.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get(path)
	if err != nil {
		return errors.NewUpstreamError(service, "request failed", err)
	}

	if !resp.IsSuccess() {
		return errors.NewUpstreamError(service,
			fmt.Sprintf("unexpected status %d", resp.StatusCode()),
			fmt.Errorf("GET %s returned %q", path, resp.Status()))
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return errors.NewInternalError(fmt.Sprintf("decode %s response", service), err)
	}

	return nil
}
