package reconcile

import (
	"cmp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type offer struct {
	key   string
	price int64
	tag   string
}

func offerKey(o offer) string  { return o.key }
func offerScore(o offer) int64 { return o.price }

func TestKeepMax(t *testing.T) {
	tests := []struct {
		name  string
		items []offer
		want  map[string]string
	}{
		{
			name:  "Highest price wins",
			items: []offer{{"R", 300, "a"}, {"R", 450, "b"}, {"C", 10, "c"}},
			want:  map[string]string{"R": "b", "C": "c"},
		},
		{
			name:  "Tie keeps first",
			items: []offer{{"R", 100, "a"}, {"R", 100, "b"}},
			want:  map[string]string{"R": "a"},
		},
		{
			name:  "Empty",
			items: nil,
			want:  map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KeepMax(tt.items, offerKey, offerScore)
			tags := make(map[string]string, len(got))
			for k, v := range got {
				tags[k] = v.tag
			}
			assert.Equal(t, tt.want, tags)
		})
	}
}

func TestUnionKeys(t *testing.T) {
	left := map[string]int{"b": 1, "a": 2}
	right := map[string]bool{"c": true, "a": false}

	assert.Equal(t, []string{"a", "b", "c"}, UnionKeys(left, right, strings.Compare))
	assert.Empty(t, UnionKeys(map[string]int{}, map[string]int{}, strings.Compare))
}

func TestJoin(t *testing.T) {
	left := map[int]string{1: "one", 3: "three"}
	right := map[int]string{2: "zwei", 3: "drei"}

	pairs := Join(left, right, cmp.Compare[int])
	require.Len(t, pairs, 3)

	assert.Equal(t, 1, pairs[0].Key)
	assert.Equal(t, "one", *pairs[0].Left)
	assert.Nil(t, pairs[0].Right)

	assert.Nil(t, pairs[1].Left)
	assert.Equal(t, "zwei", *pairs[1].Right)

	assert.Equal(t, "three", *pairs[2].Left)
	assert.Equal(t, "drei", *pairs[2].Right)
}
