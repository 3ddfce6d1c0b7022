package storefront

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/crawlproduct/backend/internal/domain"
)

// assignmentPattern matches the start of the state assignment up to and
// including its opening brace. The closing brace is found by scanning, not
// by pattern matching: a lazy capture up to "};" truncates blobs that carry
// "};" inside a JSON string value.
var assignmentPattern = regexp.MustCompile(`window\.__PRODUCT_DETAIL_APP_INITIAL_STATE__\s*=\s*\{`)

// ExtractState returns the JSON object literal assigned to the product
// detail state variable in the page. It prefers scanning <script> contents
// and falls back to the raw document for markup the HTML parser rejects.
// A page without the assignment yields domain.ErrStateNotFound; that is the
// normal outcome for non-product pages.
func ExtractState(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err == nil {
		var fragment string
		doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			frag, ok := extractAssignment(s.Text())
			if ok {
				fragment = frag
				return false
			}
			return true
		})
		if fragment != "" {
			return fragment, nil
		}
	}

	if frag, ok := extractAssignment(html); ok {
		return frag, nil
	}

	return "", domain.ErrStateNotFound
}

// extractAssignment finds the first state assignment in text and returns the
// object literal spanning from its opening brace to the matching close.
func extractAssignment(text string) (string, bool) {
	loc := assignmentPattern.FindStringIndex(text)
	if loc == nil {
		return "", false
	}

	open := loc[1] - 1 // index of the opening brace matched by the pattern
	close := matchingBrace(text, open)
	if close < 0 {
		return "", false
	}

	return text[open : close+1], true
}

// matchingBrace walks forward from the opening brace at open and returns the
// index of the brace that closes it, tracking depth while skipping string
// literals and backslash escapes. Returns -1 if the object never closes.
func matchingBrace(s string, open int) int {
	depth := 0
	inString := false
	escaped := false

	for i := open; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
