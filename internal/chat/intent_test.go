package chat

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buddyai-core/server/internal/chat/repo"
	"github.com/buddyai-core/server/internal/llm"
	"github.com/buddyai-core/server/internal/model"
)

func TestHasProductIntent(t *testing.T) {
	cases := []struct {
		message string
		want    bool
	}{
		{"i want to buy 2 kg tomato", true},
		{"add rice to my cart", true},
		{"5 pack noodles", true},
		{"where is my refund", false},
		{"hello there", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, hasProductIntent(tc.message), tc.message)
	}
}

func TestExtractSearchTerms(t *testing.T) {
	terms := extractSearchTerms("i want to buy 2 kg tomato and rice please")
	assert.Contains(t, terms, "tomato")
	assert.Contains(t, terms, "rice")
	assert.NotContains(t, terms, "buy")
	assert.NotContains(t, terms, "want")
}

func TestExtractSearchTermsConsumesQuantityPrefix(t *testing.T) {
	terms := extractSearchTerms("2 kg onion")
	assert.Equal(t, []string{"onion"}, terms)
}

func newIntentService(searcher ProductSearcher) *Service {
	return NewService(Config{}, nil, llm.RetryConfig{}, repo.NewMemoryRepository(), searcher)
}

func TestSearchProductsFromMessageSkipsNonProductChat(t *testing.T) {
	searcher := &fakeSearcher{}
	svc := newIntentService(searcher)

	found := svc.searchProductsFromMessage(context.Background(), "hi, how are you?")
	assert.Empty(t, found)
	assert.Empty(t, searcher.keywords)
}

func TestSearchProductsFromMessageDeduplicatesAcrossTerms(t *testing.T) {
	shared := model.Product{ProductID: 101, ProductName: "Fresh Tomato"}
	searcher := &fakeSearcher{results: map[string][]model.Product{
		"tomato": {shared},
		"rice":   {shared, {ProductID: 104, ProductName: "Basmati Rice"}},
	}}
	svc := newIntentService(searcher)

	found := svc.searchProductsFromMessage(context.Background(), "i want to buy tomato and rice")
	require.Len(t, found, 2)
	assert.Equal(t, 101, found[0].ProductID)
	assert.Equal(t, 104, found[1].ProductID)
}

func TestSearchProductsFromMessageCapsAtTen(t *testing.T) {
	many := make([]model.Product, 0, 15)
	for i := 0; i < 15; i++ {
		many = append(many, model.Product{ProductID: 200 + i, ProductName: fmt.Sprintf("Masala %d", i)})
	}
	searcher := &fakeSearcher{results: map[string][]model.Product{"masala": many}}
	svc := newIntentService(searcher)

	found := svc.searchProductsFromMessage(context.Background(), "i want to buy masala")
	assert.Len(t, found, 10)
}

func TestSearchProductsFromMessageSwallowsSearchErrors(t *testing.T) {
	searcher := &fakeSearcher{err: fmt.Errorf("redis down")}
	svc := newIntentService(searcher)

	found := svc.searchProductsFromMessage(context.Background(), "i want to buy tomato")
	assert.Empty(t, found)
	assert.NotEmpty(t, searcher.keywords)
}
