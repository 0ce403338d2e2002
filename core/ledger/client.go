package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Row is a single ledger row, a mapping of column name to value.
type Row map[string]any

// Client defines the interface for ledger lookups.
type Client interface {
	// FetchRows returns the rows of tableID whose columnName equals value.
	// Zero rows is a valid result, not an error.
	FetchRows(ctx context.Context, tableID, columnName, value string) ([]Row, error)
}

// NewClient creates an HTTP client for the ledger service.
func NewClient(cfg Config) (Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("ledger base url is not configured")
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 10
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	// Custom transport with strict timeouts so a slow ledger cannot
	// hold a lookup longer than the configured bound.
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	return &httpClient{
		baseURL: base,
		token:   strings.TrimSpace(cfg.APIToken),
		http: &http.Client{
			Timeout:   timeoutDuration,
			Transport: transport,
		},
	}, nil
}

type httpClient struct {
	baseURL string
	token   string
	http    *http.Client
}

// rowsResponse is the wire shape of a filtered table read.
type rowsResponse struct {
	Rows []Row `json:"rows"`
}

func (c *httpClient) FetchRows(ctx context.Context, tableID, columnName, value string) ([]Row, error) {
	params := url.Values{}
	params.Set(fmt.Sprintf("filter[%s]", columnName), value)

	endpoint := fmt.Sprintf("%s/api/v1/tables/%s/rows?%s",
		c.baseURL, url.PathEscape(tableID), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &LookupError{Kind: KindBadResponse, TableID: tableID, Err: err}
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &LookupError{Kind: classifyTransportError(err), TableID: tableID, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &LookupError{Kind: classifyTransportError(err), TableID: tableID, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &LookupError{
			Kind:    KindBadResponse,
			TableID: tableID,
			Err:     fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	var parsed rowsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &LookupError{Kind: KindBadResponse, TableID: tableID, Err: err}
	}

	return parsed.Rows, nil
}

// classifyTransportError maps a transport error to a failure kind.
func classifyTransportError(err error) FailureKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return KindTimeout
	}
	return KindUnreachable
}
