// Package metadata retrieves a page and extracts the Open Graph /
// Twitter-card fields used for link previews.
package metadata

import (
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Metadata is the preview description of a page. Absent fields stay
// empty and are omitted from the JSON rendering.
type Metadata struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	URL         string `json:"url"`
}

// Extract pulls title, description and image out of an HTML document.
//
// Each field takes the first non-empty candidate in priority order:
// Open Graph tag, Twitter-card tag, then the generic fallback (the
// <title> element for the title, meta description for the
// description; the image has no generic fallback). Values are
// whitespace-trimmed; a root-relative image path is rewritten to an
// absolute URL using baseURL's scheme and host.
//
// Extraction never fails: an unparsable document simply yields empty
// fields.
func Extract(html io.Reader, baseURL string) *Metadata {
	meta := &Metadata{URL: baseURL}

	doc, err := goquery.NewDocumentFromReader(html)
	if err != nil {
		return meta
	}

	meta.Title = firstNonEmpty(
		metaContent(doc, `meta[property="og:title"]`),
		metaContent(doc, `meta[name="twitter:title"]`),
		doc.Find("title").First().Text(),
	)
	meta.Description = firstNonEmpty(
		metaContent(doc, `meta[property="og:description"]`),
		metaContent(doc, `meta[name="twitter:description"]`),
		metaContent(doc, `meta[name="description"]`),
	)
	meta.Image = firstNonEmpty(
		metaContent(doc, `meta[property="og:image"]`),
		metaContent(doc, `meta[name="twitter:image"]`),
	)

	if strings.HasPrefix(meta.Image, "/") && !strings.HasPrefix(meta.Image, "//") {
		if base, err := url.Parse(baseURL); err == nil && base.Host != "" {
			meta.Image = base.Scheme + "://" + base.Host + meta.Image
		}
	}

	return meta
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return content
}

func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if trimmed := strings.TrimSpace(c); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
