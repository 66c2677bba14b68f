package chat

import (
	"context"
	"regexp"
	"strings"

	"github.com/buddyai-core/server/internal/model"
	logx "github.com/buddyai-core/server/pkg/logger"
)

// ProductSearcher is the product-search collaborator the orchestrator uses
// to resolve extracted terms into product tiles.
type ProductSearcher interface {
	SearchProducts(ctx context.Context, keyword, category string, minPrice, maxPrice *float64) ([]model.Product, error)
}

const maxProductMatches = 10

var transactionalWords = []string{"kg", "gram", "pack", "order", "buy", "add", "need", "want"}

var commonProducts = []string{
	"tomato", "onion", "potato", "rice", "milk", "bread",
	"egg", "chicken", "fish", "vegetable", "fruit", "dal",
	"oil", "sugar", "salt", "spice", "flour", "atta",
}

var (
	quantityUnitRe = regexp.MustCompile(`\d+\s*(kg|gram|g|pack|piece|pc)`)
	stopWordRe     = regexp.MustCompile(`\b(?:i|want|need|to|buy|order|add|get|please|can|you|help|me|with|the|a|an|some|kg|gram)\b`)
	spaceRe        = regexp.MustCompile(`\s+`)
	termRe         = regexp.MustCompile(`(?:\d+\s*(?:kg|gram|g|pack|piece|pc)\s+)?([a-z]+)`)
	digitsRe       = regexp.MustCompile(`^\d+$`)
)

// hasProductIntent reports whether a message looks like a product request:
// quantity/unit patterns, transactional verbs, or common grocery nouns.
func hasProductIntent(message string) bool {
	for _, w := range transactionalWords {
		if strings.Contains(message, w) {
			return true
		}
	}
	if quantityUnitRe.MatchString(message) {
		return true
	}
	for _, p := range commonProducts {
		if strings.Contains(message, p) {
			return true
		}
	}
	return false
}

// extractSearchTerms strips stop words and pulls candidate product terms,
// consuming an optional leading quantity+unit before each word. When the
// pattern yields nothing it falls back to all remaining tokens longer than
// two characters.
func extractSearchTerms(message string) []string {
	cleaned := stopWordRe.ReplaceAllString(message, " ")
	cleaned = strings.TrimSpace(spaceRe.ReplaceAllString(cleaned, " "))

	var terms []string
	for _, m := range termRe.FindAllStringSubmatch(cleaned, -1) {
		if len(m[1]) > 2 {
			terms = append(terms, m[1])
		}
	}
	if len(terms) > 0 {
		return terms
	}

	for _, word := range strings.Fields(cleaned) {
		if len(word) > 2 && !digitsRe.MatchString(word) {
			terms = append(terms, word)
		}
	}
	return terms
}

// searchProductsFromMessage runs the product-intent heuristic over the user
// message and resolves terms via the product searcher. Failures are absorbed
// and logged; the caller always gets a (possibly empty) list.
func (s *Service) searchProductsFromMessage(ctx context.Context, userMessage string) []model.Product {
	found := []model.Product{}
	if s.searcher == nil || strings.TrimSpace(userMessage) == "" {
		return found
	}

	message := strings.ToLower(userMessage)
	if !hasProductIntent(message) {
		return found
	}

	seen := make(map[int]bool)
	for _, term := range extractSearchTerms(message) {
		if len(term) < 2 {
			continue
		}

		logx.Info().Str("keyword", term).Msg("searching products for chat message")
		results, err := s.searcher.SearchProducts(ctx, term, "", nil, nil)
		if err != nil {
			logx.Error().Err(err).Str("keyword", term).Msg("product search failed for chat message")
			continue
		}

		for _, p := range results {
			if seen[p.ProductID] {
				continue
			}
			seen[p.ProductID] = true
			found = append(found, p)
		}

		// the current term's full result set is processed before capping
		if len(found) >= maxProductMatches {
			found = found[:maxProductMatches]
			break
		}
	}

	logx.Info().Int("count", len(found)).Str("message", userMessage).Msg("product extraction finished")
	return found
}
