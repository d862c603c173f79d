package providers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"travelplanner/internal/models/trip_models"
	"travelplanner/pkg/utils"

	"golang.org/x/net/html"
)

const minParagraphWords = 6

// PageScraper extracts headings and substantial paragraphs from a web page.
type PageScraper struct {
	HTTP *http.Client
}

func NewPageScraper(client *http.Client) *PageScraper {
	return &PageScraper{HTTP: client}
}

func (s *PageScraper) Scrape(ctx context.Context, pageURL string) (*trip_models.ScrapedPage, error) {
	if strings.TrimSpace(pageURL) == "" {
		return nil, fmt.Errorf("scrape: %w", utils.ErrInvalidInput)
	}
	body, err := fetchPage(ctx, s.HTTP, pageURL)
	if err != nil {
		return nil, fmt.Errorf("scrape %s: %w", pageURL, err)
	}
	defer body.Close()

	doc, err := html.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("scrape %s: %w: parse: %w", pageURL, utils.ErrProviderRequest, err)
	}
	return extractPage(doc), nil
}

// extractPage keeps h1-h3 headings and paragraphs of more than five words, in document order.
func extractPage(doc *html.Node) *trip_models.ScrapedPage {
	page := &trip_models.ScrapedPage{Headings: []string{}, Paragraphs: []string{}}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			case "h1", "h2", "h3":
				if text := textContent(n); text != "" {
					page.Headings = append(page.Headings, text)
				}
				return
			case "p":
				if text := textContent(n); len(strings.Fields(text)) >= minParagraphWords {
					page.Paragraphs = append(page.Paragraphs, text)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return page
}
