package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/buddyai-core/server/internal/model"
)

func price(v float64) *float64 { return &v }

func TestMatchesProduct(t *testing.T) {
	p := model.Product{
		ProductID:   101,
		ProductName: "Fresh Tomato",
		Brand:       "FarmDirect",
		Category:    "Vegetables",
		Price:       40,
		Description: "Juicy red tomatoes",
	}

	cases := []struct {
		name     string
		keyword  string
		category string
		minPrice *float64
		maxPrice *float64
		want     bool
	}{
		{"keyword in name", "tomato", "", nil, nil, true},
		{"keyword in brand", "farmdirect", "", nil, nil, true},
		{"keyword in description", "juicy", "", nil, nil, true},
		{"keyword miss", "onion", "", nil, nil, false},
		{"category match", "", "vegetables", nil, nil, true},
		{"category all disables filter", "", "All", nil, nil, true},
		{"category miss", "", "Dairy", nil, nil, false},
		{"within price band", "", "", price(30), price(50), true},
		{"below min price", "", "", price(45), nil, false},
		{"above max price", "", "", nil, price(35), false},
		{"no filters", "", "", nil, nil, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, matchesProduct(p, tc.keyword, tc.category, tc.minPrice, tc.maxPrice))
		})
	}
}

func TestWithProductDefaults(t *testing.T) {
	p := withProductDefaults(model.Product{ProductID: 1, ProductName: "Mystery Item"})
	assert.Equal(t, "General", p.Category)
	assert.Equal(t, defaultProductImage, p.ImageURL)
	assert.Equal(t, 4.5, p.Rating)

	full := withProductDefaults(model.Product{Category: "Dairy", ImageURL: "https://cdn.example/milk.jpg", Rating: 4.1})
	assert.Equal(t, "Dairy", full.Category)
	assert.Equal(t, "https://cdn.example/milk.jpg", full.ImageURL)
	assert.Equal(t, 4.1, full.Rating)
}
