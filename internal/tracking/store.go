/*
Package tracking keeps the in-memory record of which auctions have been
announced and which bid was last seen on auctions close to their end.

A Store has a single owner, the monitor loop, and is not safe for concurrent use.
*/
package tracking

import (
	"time"

	"github.com/shanehull/auctionwatch/internal/types"

	"github.com/shopspring/decimal"
)

type sighting struct {
	endsAt time.Time
	seenAt time.Time
}

type Store struct {
	known   map[types.AuctionID]sighting
	lastBid map[types.AuctionID]decimal.Decimal
}

func NewStore() *Store {
	return &Store{
		known:   make(map[types.AuctionID]sighting),
		lastBid: make(map[types.AuctionID]decimal.Decimal),
	}
}

func (s *Store) IsKnown(id types.AuctionID) bool {
	_, ok := s.known[id]
	return ok
}

// MarkKnown records id as announced and listed at seenAt. Calling it again for
// a known id refreshes both times used for pruning.
func (s *Store) MarkKnown(id types.AuctionID, endsAt, seenAt time.Time) {
	s.known[id] = sighting{endsAt: endsAt, seenAt: seenAt}
}

func (s *Store) LastBid(id types.AuctionID) (decimal.Decimal, bool) {
	bid, ok := s.lastBid[id]
	return bid, ok
}

// RecordBid must only be called for auctions inside the ending-soon window.
func (s *Store) RecordBid(id types.AuctionID, amount decimal.Decimal) {
	s.lastBid[id] = amount
}

func (s *Store) KnownCount() int {
	return len(s.known)
}

func (s *Store) TrackedBidCount() int {
	return len(s.lastBid)
}

// Prune forgets every auction that both ended and was last listed before
// cutoff, and returns how many were removed. An auction still being listed
// is never forgotten, whatever its end time says.
func (s *Store) Prune(cutoff time.Time) int {
	removed := 0
	for id, seen := range s.known {
		if seen.endsAt.Before(cutoff) && seen.seenAt.Before(cutoff) {
			delete(s.known, id)
			delete(s.lastBid, id)
			removed++
		}
	}
	return removed
}
