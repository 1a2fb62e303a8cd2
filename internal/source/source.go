/*
Package source reads open auctions and their recent bids from the marketplace HTTP API.
*/
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shanehull/auctionwatch/internal/logging"
	"github.com/shanehull/auctionwatch/internal/types"

	jsoniter "github.com/json-iterator/go"
)

const (
	auctionListLimit = 100
	bidListLimit     = 5

	sortEndingSoon   = "ENDING_SOON"
	statusOnAuction  = "ON_AUCTION"
	itemTypeUsername = "USERNAME"

	bidPath = "/bid"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrMissingItems     = errors.New("response has no items list")
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient returns a Client for the auction list endpoint at baseURL. Bid
// history is read from baseURL + "/bid". Connections are not reused between
// calls.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:             http.ProxyFromEnvironment,
				DisableKeepAlives: true,
			},
		},
	}
}

// ListAuctions returns up to 100 open auctions, soonest ending first.
func (c *Client) ListAuctions(ctx context.Context) ([]types.AuctionItem, error) {
	params := url.Values{
		"limit":       {strconv.Itoa(auctionListLimit)},
		"offset":      {"0"},
		"sort_type":   {sortEndingSoon},
		"status_type": {statusOnAuction},
		"item_types":  {itemTypeUsername},
	}

	var page types.AuctionPage
	if err := c.getJSON(ctx, c.baseURL, params, &page); err != nil {
		return nil, fmt.Errorf("list auctions: %w", err)
	}
	if page.Items == nil {
		return nil, fmt.Errorf("list auctions: %w", ErrMissingItems)
	}
	return page.Items, nil
}

// ListRecentBids returns up to 5 of the latest bids on one auction, newest first.
func (c *Client) ListRecentBids(ctx context.Context, id types.AuctionID) ([]types.Bid, error) {
	params := url.Values{
		"item_id": {id.String()},
		"limit":   {strconv.Itoa(bidListLimit)},
		"offset":  {"0"},
	}

	var page types.BidPage
	if err := c.getJSON(ctx, c.baseURL+bidPath, params, &page); err != nil {
		return nil, fmt.Errorf("list bids for auction %s: %w", id, err)
	}
	return page.Items, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	reqURL := endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Close = true

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", endpoint, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn("failed to close response body", map[string]any{"url": endpoint, "error": err.Error()})
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w %d from %s: %s", ErrUnexpectedStatus, resp.StatusCode, endpoint, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
	}
	return nil
}
