// Package etherscan implements the guard.TransactionSource interface against
// the Etherscan account API (and compatible explorers).
package etherscan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/gabapcia/sharkguard/internal/guard"
	"github.com/gabapcia/sharkguard/internal/pkg/transport/http"
	"github.com/gabapcia/sharkguard/internal/txnorm"

	"github.com/hashicorp/go-retryablehttp"
)

// defaultBaseURL is the public Etherscan API endpoint.
const defaultBaseURL = "https://api.etherscan.io/api"

// Default block range: the full chain history, matching the explorer's own
// defaults.
const (
	defaultStartBlock = 0
	defaultEndBlock   = 99999999
	defaultSort       = "asc"
)

var (
	// ErrUnexpectedStatusCode is returned when the explorer responds with a
	// non-200 HTTP status.
	ErrUnexpectedStatusCode = errors.New("unexpected http status code")

	// ErrAPIFailure is returned when the explorer answers 200 but reports an
	// application-level error, such as a rate limit or a bad API key.
	ErrAPIFailure = errors.New("explorer api failure")
)

// apiResponse is the envelope every Etherscan account API response arrives
// in. Status is "1" on success and "0" both for errors and for the benign
// "no transactions found" case; Message disambiguates.
type apiResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// client fetches wallet transaction histories from an Etherscan-compatible
// explorer.
type client struct {
	httpClient *retryablehttp.Client

	baseURL    string
	apiKey     string
	startBlock int64
	endBlock   int64
	sort       string
}

// Ensure compile-time compliance with the guard.TransactionSource interface.
var _ guard.TransactionSource = (*client)(nil)

// Option defines a functional option for configuring the explorer client.
type Option func(*client)

// WithBaseURL overrides the explorer endpoint, for compatible explorers or
// tests.
func WithBaseURL(baseURL string) Option {
	return func(c *client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *retryablehttp.Client) Option {
	return func(c *client) {
		c.httpClient = httpClient
	}
}

// WithBlockRange restricts queries to the given inclusive block range.
// Default: the full chain history.
func WithBlockRange(start, end int64) Option {
	return func(c *client) {
		c.startBlock, c.endBlock = start, end
	}
}

// WithSort sets the result ordering, "asc" or "desc". Default: "asc".
func WithSort(sort string) Option {
	return func(c *client) {
		c.sort = sort
	}
}

// NewClient creates an explorer client using the given API key.
//
// The returned client satisfies guard.TransactionSource and is intended to be
// used by dependency injection during application wiring.
func NewClient(apiKey string, opts ...Option) *client {
	c := &client{
		httpClient: http.NewClient(),
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		startBlock: defaultStartBlock,
		endBlock:   defaultEndBlock,
		sort:       defaultSort,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// buildURL assembles the account txlist query for the given address.
func (c *client) buildURL(address string) string {
	params := url.Values{
		"module":     {"account"},
		"action":     {"txlist"},
		"address":    {address},
		"startblock": {strconv.FormatInt(c.startBlock, 10)},
		"endblock":   {strconv.FormatInt(c.endBlock, 10)},
		"sort":       {c.sort},
		"apikey":     {c.apiKey},
	}

	return c.baseURL + "?" + params.Encode()
}

// FetchTransactions returns the raw transaction history of the address.
//
// An address with no on-chain activity yields an empty slice and a nil
// error. HTTP failures and application-level API errors are returned as
// errors so the caller's retry policy can engage.
func (c *client) FetchTransactions(ctx context.Context, address string) ([]txnorm.RawTransaction, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", c.buildURL(address), nil)
	if err != nil {
		return nil, fmt.Errorf("building explorer request: %w", err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling explorer: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != 200 {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("reading explorer response: %w", err)
	}

	var envelope apiResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decoding explorer response: %w", err)
	}

	if envelope.Status != "1" {
		// The explorer reports an empty history through the error channel.
		if strings.EqualFold(envelope.Message, "no transactions found") {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrAPIFailure, envelope.Message)
	}

	var txs []txnorm.RawTransaction
	if err := json.Unmarshal(envelope.Result, &txs); err != nil {
		return nil, fmt.Errorf("decoding explorer transaction list: %w", err)
	}

	return txs, nil
}
