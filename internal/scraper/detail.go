package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fosdem-tools/fosdem-events/internal/event"
)

// maxFieldLength caps abstract and description text.
const maxFieldLength = 500

// Details holds the optional fields a detail page can contribute. Each field
// is independently optional; nil means the page did not carry it.
type Details struct {
	Abstract    *string
	Description *string
	VideoLink   *string
	ChatLink    *string
	Navicon     *string
}

// ApplyTo copies the detail fields onto evt.
func (d *Details) ApplyTo(evt *event.Event) {
	evt.Abstract = d.Abstract
	evt.Description = d.Description
	evt.VideoLink = d.VideoLink
	evt.ChatLink = d.ChatLink
	evt.Navicon = d.Navicon
}

// ParseDetails extracts the optional long-form fields from a detail page.
// origin is used to rewrite root-relative icon paths absolute. Fields are
// extracted independently; unparseable markup simply yields none of them.
func ParseDetails(html, origin string) *Details {
	details := &Details{}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return details
	}

	if text := collapseWhitespace(doc.Find("div.event-abstract p").First().Text()); text != "" {
		text = truncate(text, maxFieldLength)
		details.Abstract = &text
	}

	if text := collapseWhitespace(doc.Find("div.event-description").First().Text()); text != "" {
		text = truncate(text, maxFieldLength)
		details.Description = &text
	}

	if href, ok := doc.Find(`a[href^="https://live.fosdem.org"]`).First().Attr("href"); ok {
		details.VideoLink = &href
	}

	if href, ok := doc.Find(`a[href^="https://chat.fosdem.org"]`).First().Attr("href"); ok {
		details.ChatLink = &href
	}

	if icon, ok := findNavicon(doc); ok {
		if strings.HasPrefix(icon, "/") {
			icon = origin + icon
		}
		details.Navicon = &icon
	}

	return details
}

// findNavicon resolves the page icon, preferring the 32x32 favicon, then the
// 16x16 one, then the apple touch icon.
func findNavicon(doc *goquery.Document) (string, bool) {
	selectors := []string{
		`link[rel="icon"][href*="favicon-32x32.png"]`,
		`link[rel="icon"][href*="favicon-16x16.png"]`,
		`link[rel="apple-touch-icon"]`,
	}
	for _, selector := range selectors {
		if href, ok := doc.Find(selector).First().Attr("href"); ok {
			return href, true
		}
	}
	return "", false
}

// collapseWhitespace trims s and folds every whitespace run into one space.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate caps s at max runes without splitting a rune.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
