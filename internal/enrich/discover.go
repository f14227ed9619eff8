package enrich

import (
	"bytes"
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
)

const defaultSearchBase = "https://www.google.com"

// allowedDomains restricts discovery to result URLs whose host ends in one of
// these suffixes; everything else on a results page is navigation noise.
var allowedDomains = []string{".co.za", ".com", ".org"}

// discoverWebsite runs a best-effort search-engine query for a place without
// a known website and returns the first plausible result. Advisory only:
// every failure path returns "".
func (e *Enricher) discoverWebsite(ctx context.Context, name string) string {
	query := url.QueryEscape(name + " Tshwane Pretoria South Africa official website")
	body, err := e.fetcher.FetchPage(ctx, e.searchBase+"/search?q="+query)
	if err != nil {
		log.Debug().Err(err).Str("place", name).Msg("website discovery fetch failed")
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	var found string
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		// result links are wrapped as /url?q=<target>&...
		if !strings.HasPrefix(href, "/url?q=") {
			return true
		}
		target := strings.SplitN(strings.TrimPrefix(href, "/url?q="), "&", 2)[0]
		if plausibleSite(target) {
			found = target
			return false
		}
		return true
	})
	return found
}

func plausibleSite(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	host := strings.ToLower(u.Host)
	for _, d := range allowedDomains {
		if strings.HasSuffix(host, d) {
			return true
		}
	}
	return false
}
