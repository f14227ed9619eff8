package enrich

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	phoneExpr = regexp.MustCompile(`(\+27|0)[0-9\s\-()]{8,15}`)
	emailExpr = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
)

var addressKeywords = []string{"address", "location", "street", "avenue", "road"}
var hoursKeywords = []string{"hours", "opening", "time", "schedule"}
var socialPlatforms = []string{"facebook", "twitter", "instagram", "linkedin", "youtube", "tiktok"}

// PageData carries the per-field extraction from one fetched page. Empty
// fields mean "nothing found", never an error.
type PageData struct {
	Phone        string
	Email        string
	Address      string
	Description  string
	OpeningHours string
	SocialMedia  string
}

// Map flattens non-empty fields for the web_scraped_data output column.
func (d PageData) Map() map[string]string {
	out := map[string]string{}
	for k, v := range map[string]string{
		"phone":         d.Phone,
		"email":         d.Email,
		"address":       d.Address,
		"description":   d.Description,
		"opening_hours": d.OpeningHours,
		"social_media":  d.SocialMedia,
	} {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// Extract pulls contact details, a description, opening hours, and social
// links out of an HTML page using regex and DOM heuristics.
func Extract(body []byte) (PageData, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return PageData{}, fmt.Errorf("parse html: %w", err)
	}

	text := doc.Text()
	d := PageData{
		Phone: strings.TrimSpace(phoneExpr.FindString(text)),
		Email: emailExpr.FindString(text),
	}

	d.Address = firstBlockContaining(doc, addressKeywords)
	d.OpeningHours = firstBlockContaining(doc, hoursKeywords)
	d.Description = extractDescription(doc)
	d.SocialMedia = extractSocial(doc)

	return d, nil
}

// firstBlockContaining returns the first p/div/span whose text mentions one
// of the keywords.
func firstBlockContaining(doc *goquery.Document, keywords []string) string {
	var found string
	doc.Find("p, div, span").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		t := sel.Text()
		low := strings.ToLower(t)
		for _, kw := range keywords {
			if strings.Contains(low, kw) {
				found = strings.Join(strings.Fields(t), " ")
				return false
			}
		}
		return true
	})
	return found
}

// extractDescription prefers the meta description, then the first paragraph
// longer than 50 characters.
func extractDescription(doc *goquery.Document) string {
	if content, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok && content != "" {
		return strings.TrimSpace(content)
	}
	var desc string
	doc.Find("p").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		t := strings.TrimSpace(sel.Text())
		if len(t) > 50 {
			desc = t
			return false
		}
		return true
	})
	return desc
}

// extractSocial reports which known platforms the page links to, first-seen
// order, deduplicated.
func extractSocial(doc *goquery.Document) string {
	seen := map[string]struct{}{}
	var platforms []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		low := strings.ToLower(href)
		for _, p := range socialPlatforms {
			if !strings.Contains(low, p) {
				continue
			}
			if _, ok := seen[p]; !ok {
				seen[p] = struct{}{}
				platforms = append(platforms, p)
			}
		}
	})
	return strings.Join(platforms, ", ")
}
