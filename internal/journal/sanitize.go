package journal

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"trade-journal/internal/models"
)

// strictPolicy removes all HTML tags and attributes.
var strictPolicy = bluemonday.StrictPolicy()

// maxSanitizePasses bounds unescape-and-strip rounds for entity-encoded markup.
const maxSanitizePasses = 4

// sanitizeText strips markup from free text that the web dashboard renders.
// Plain text, including "&" and ">", is returned unchanged apart from
// surrounding whitespace.
func sanitizeText(s string) string {
	for i := 0; i < maxSanitizePasses && strings.ContainsRune(s, '<'); i++ {
		clean := html.UnescapeString(strictPolicy.Sanitize(s))
		if clean == s {
			break
		}
		s = clean
	}
	return strings.TrimSpace(s)
}

func sanitizePtr(s *string) *string {
	if s == nil {
		return nil
	}
	clean := sanitizeText(*s)
	return &clean
}

func sanitizeDraft(d models.TradeDraft) models.TradeDraft {
	d.Setup = sanitizeText(d.Setup)
	d.Strategy = sanitizeText(d.Strategy)
	d.Notes = sanitizeText(d.Notes)
	return d
}

func sanitizeUpdate(u models.TradeUpdate) models.TradeUpdate {
	u.Setup = sanitizePtr(u.Setup)
	u.Strategy = sanitizePtr(u.Strategy)
	u.Notes = sanitizePtr(u.Notes)
	return u
}
