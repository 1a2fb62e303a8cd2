/*
Package types holds the auction marketplace records shared by the source, notify and monitor packages.
*/
package types

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// AuctionID is the marketplace's identifier for one auction. The API sends it
// as a JSON number, but it is only ever compared and printed.
type AuctionID string

func (id *AuctionID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("auction id is empty")
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid auction id %s: %w", data, err)
		}
		*id = AuctionID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid auction id %s: %w", data, err)
	}
	*id = AuctionID(n.String())
	return nil
}

func (id AuctionID) String() string {
	return string(id)
}

type AuctionItem struct {
	ID         AuctionID       `json:"id"`
	Name       string          `json:"item_data"`
	CurrentBid decimal.Decimal `json:"current_bid"`
	MinimumBid decimal.Decimal `json:"minimum_bid"`
	EndTime    string          `json:"end_time"`
}

type Bid struct {
	UserName string `json:"user_name"`
}

// AuctionPage is the auction list response. Items stays nil when the body
// carries no "items" key, which is how a malformed page is told apart from an
// empty one.
type AuctionPage struct {
	Items []AuctionItem `json:"items"`
}

type BidPage struct {
	Items []Bid `json:"items"`
}
