package article

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CanonicalSource names the document field that supplied the canonical URL.
type CanonicalSource string

const (
	SourceLinkCanonical CanonicalSource = "link"
	SourceOpenGraph     CanonicalSource = "og:url"
	SourceTwitterCard   CanonicalSource = "twitter:url"
	SourceFetchURL      CanonicalSource = "fetch"
)

// Canonical is the authoritative URL of a page and where it came from.
type Canonical struct {
	Href   string
	Source CanonicalSource
}

var canonicalCandidates = []struct {
	source   CanonicalSource
	selector string
	attr     string
}{
	{SourceLinkCanonical, `link[rel~="canonical"]`, "href"},
	{SourceOpenGraph, `meta[property="og:url"], meta[name="og:url"]`, "content"},
	{SourceTwitterCard, `meta[name="twitter:url"], meta[property="twitter:url"]`, "content"},
}

// ResolveCanonical picks the canonical URL of doc in priority order:
// <link rel="canonical">, og:url, twitter:url, then fetchURL itself.
// The first candidate found is resolved against fetchURL; when it is
// malformed or not http(s), fetchURL is returned instead.
func ResolveCanonical(doc *goquery.Document, fetchURL *url.URL) Canonical {
	fallback := Canonical{Href: fetchURL.String(), Source: SourceFetchURL}
	if doc == nil {
		return fallback
	}

	for _, c := range canonicalCandidates {
		href := firstAttr(doc, c.selector, c.attr)
		if href == "" {
			continue
		}
		ref, err := url.Parse(href)
		if err != nil {
			return fallback
		}
		resolved := fetchURL.ResolveReference(ref)
		if resolved.Host == "" || (resolved.Scheme != "http" && resolved.Scheme != "https") {
			return fallback
		}
		return Canonical{Href: resolved.String(), Source: c.source}
	}
	return fallback
}

func firstAttr(doc *goquery.Document, selector, attr string) string {
	var value string
	doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		v, ok := s.Attr(attr)
		v = strings.TrimSpace(v)
		if ok && v != "" {
			value = v
			return false
		}
		return true
	})
	return value
}
