package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"travelplanner/internal/models/trip_models"
	"travelplanner/pkg/utils"

	"golang.org/x/net/html"
)

const (
	serperBaseURL = "https://google.serper.dev"
	googleBaseURL = "https://www.google.com"
)

// SerperClient queries the Serper Google search API.
type SerperClient struct {
	HTTP    *http.Client
	APIKey  string
	BaseURL string
}

func NewSerperClient(client *http.Client, apiKey string) *SerperClient {
	return &SerperClient{HTTP: client, APIKey: apiKey, BaseURL: serperBaseURL}
}

func (s *SerperClient) Search(ctx context.Context, query string, n int) ([]trip_models.SearchResult, error) {
	if s.APIKey == "" {
		return nil, fmt.Errorf("serper: %w", utils.ErrMissingCredential)
	}

	body, err := json.Marshal(map[string]any{"q": query, "num": n})
	if err != nil {
		return nil, fmt.Errorf("serper: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("serper: %w: %w", utils.ErrProviderRequest, err)
	}
	req.Header.Set("X-API-KEY", s.APIKey)
	req.Header.Set("Content-Type", "application/json")

	var payload struct {
		Organic []trip_models.SearchResult `json:"organic"`
	}
	if err := doJSON(s.HTTP, req, &payload); err != nil {
		return nil, fmt.Errorf("serper: %w", err)
	}
	return payload.Organic[:min(n, len(payload.Organic))], nil
}

// GoogleHTMLSearch reads organic results from the Google results page.
type GoogleHTMLSearch struct {
	HTTP    *http.Client
	BaseURL string
}

func NewGoogleHTMLSearch(client *http.Client) *GoogleHTMLSearch {
	return &GoogleHTMLSearch{HTTP: client, BaseURL: googleBaseURL}
}

func (g *GoogleHTMLSearch) Search(ctx context.Context, query string, n int) ([]trip_models.SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("num", strconv.Itoa(n))

	body, err := fetchPage(ctx, g.HTTP, g.BaseURL+"/search?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("google search: %w", err)
	}
	defer body.Close()

	doc, err := html.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("google search: %w: parse: %w", utils.ErrProviderRequest, err)
	}
	return parseGoogleResults(doc, n), nil
}

// parseGoogleResults collects result blocks, i.e. divs carrying the "g" class.
func parseGoogleResults(doc *html.Node, n int) []trip_models.SearchResult {
	var results []trip_models.SearchResult

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if len(results) >= n {
			return
		}
		if node.Type == html.ElementNode && node.Data == "div" && hasClass(node, "g") {
			if anchor := findElement(node, "a"); anchor != nil {
				title := "No title"
				if h3 := findElement(node, "h3"); h3 != nil {
					title = textContent(h3)
				}
				results = append(results, trip_models.SearchResult{
					Title: title,
					Link:  attr(anchor, "href"),
				})
			}
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return results
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// textContent joins the text below n with single spaces.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
			sb.WriteString(" ")
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
