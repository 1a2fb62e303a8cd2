// Package watch decides which auctions are tracked, based on an optional list of display names.
package watch

import "strings"

// List is a case-insensitive set of display names. The zero value tracks everything.
type List struct {
	names map[string]struct{}
}

func NewList(names []string) List {
	l := List{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n != "" {
			l.names[n] = struct{}{}
		}
	}
	return l
}

func (l List) Empty() bool {
	return len(l.names) == 0
}

func (l List) Len() int {
	return len(l.names)
}

// ShouldTrack matches the whole name only; "Notch" does not match "Notch_".
func (l List) ShouldTrack(name string) bool {
	if l.Empty() {
		return true
	}
	_, ok := l.names[strings.ToLower(name)]
	return ok
}

// ShouldTrack is a one-off List.ShouldTrack. Entries are trimmed and blank
// ones ignored, so a list of blanks tracks everything.
func ShouldTrack(name string, list []string) bool {
	return NewList(list).ShouldTrack(name)
}
