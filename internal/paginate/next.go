package paginate

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// nextText reports whether anchor text reads like a next-page control.
// Covers the word "next" and the usual pagination glyphs.
func nextText(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	return strings.Contains(text, "next") ||
		strings.Contains(text, "›") ||
		strings.Contains(text, "»")
}

// hasNextControl scans doc for any anchor that looks like a next-page
// control.
func hasNextControl(doc *goquery.Document) bool {
	found := false
	doc.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if nextText(a.Text()) {
			found = true
			return false
		}
		return true
	})
	return found
}

// findNextHref returns the target of the first next-like anchor, resolved
// against base when the href is relative.
func findNextHref(doc *goquery.Document, base string) (string, bool) {
	var href string
	doc.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if !nextText(a.Text()) {
			return true
		}
		h, exists := a.Attr("href")
		if !exists || strings.TrimSpace(h) == "" {
			return true
		}
		href = strings.TrimSpace(h)
		return false
	})
	if href == "" {
		return "", false
	}
	return resolveRef(base, href)
}

func resolveRef(base, href string) (string, bool) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	if ref.IsAbs() {
		return ref.String(), true
	}
	b, err := url.Parse(base)
	if err != nil {
		return "", false
	}
	return b.ResolveReference(ref).String(), true
}
