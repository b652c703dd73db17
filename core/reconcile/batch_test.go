package reconcile

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeItems(n int) []Item {
	items := make([]Item, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, NewItem(fmt.Sprintf("host-%03d.example.com", i), "DOMAIN"))
	}
	return items
}

func TestSplit_RoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		items      int
		size       int
		wantChunks int
	}{
		{name: "empty input", items: 0, size: 100, wantChunks: 0},
		{name: "single partial chunk", items: 3, size: 100, wantChunks: 1},
		{name: "exact multiple", items: 200, size: 100, wantChunks: 2},
		{name: "uneven final chunk", items: 250, size: 100, wantChunks: 3},
		{name: "size one", items: 5, size: 1, wantChunks: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := makeItems(tt.items)

			chunks, err := Split(items, tt.size)
			assert.NoError(t, err)
			assert.Len(t, chunks, tt.wantChunks)

			// Every chunk respects the size bound.
			for _, chunk := range chunks {
				assert.LessOrEqual(t, len(chunk), tt.size)
			}

			// Concatenation reproduces the input exactly, in order.
			joined := make([]Item, 0, len(items))
			for _, chunk := range chunks {
				joined = append(joined, chunk...)
			}
			assert.Equal(t, items, joined)
		})
	}
}

func TestSplit_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1, -100} {
		_, err := Split(makeItems(3), size)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "batch size must be positive")
	}
}

func TestNewItem_Normalization(t *testing.T) {
	item := NewItem("  WWW.Example.COM ", " domain ")
	assert.Equal(t, "www.example.com", item.Domain)
	assert.Equal(t, ScopeDomain, item.Scope)

	item = NewItem("a.com", "")
	assert.Equal(t, ScopeDomain, item.Scope, "empty scope defaults to DOMAIN")

	item = NewItem("a.com", "dv_san")
	assert.Equal(t, ScopeDVSAN, item.Scope)
	assert.True(t, item.Scope.IsValid())

	item = NewItem("a.com", "WILDCARD")
	assert.False(t, item.Scope.IsValid())
}
