package watch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldTrack(t *testing.T) {
	tests := []struct {
		name  string
		item  string
		list  []string
		track bool
	}{
		{name: "empty_list_tracks_all", item: "Foo", list: nil, track: true},
		{name: "case_insensitive_match", item: "Foo", list: []string{"foo"}, track: true},
		{name: "no_match", item: "Foo", list: []string{"bar"}, track: false},
		{name: "no_substring_match", item: "Foobar", list: []string{"foo"}, track: false},
		{name: "one_of_many", item: "NOTCH", list: []string{"jeb", "notch"}, track: true},
		{name: "padded_entry", item: "Foo", list: []string{"  foo "}, track: true},
		{name: "only_blank_entries", item: "Foo", list: []string{"", " "}, track: true},
		{name: "blank_entry_ignored", item: "", list: []string{"", "bar"}, track: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.track, ShouldTrack(tc.item, tc.list))
			assert.Equal(t, tc.track, NewList(tc.list).ShouldTrack(tc.item))
		})
	}
}

func TestNewList_IgnoresBlankEntries(t *testing.T) {
	l := NewList([]string{" ", "", " Foo "})
	assert.Equal(t, 1, l.Len())
	assert.True(t, l.ShouldTrack("foo"))
	assert.False(t, l.ShouldTrack("bar"))

	assert.True(t, NewList([]string{"", "  "}).Empty())
	assert.True(t, List{}.ShouldTrack("anything"))
}
