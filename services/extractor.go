package services

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/Mercury86-sudo/Real-State-Scraper/models"
	"github.com/Mercury86-sudo/Real-State-Scraper/utils"
)

// CandidateExtractor isolates plausible listing fragments from a fetched
// page. Implementations encapsulate per-site extraction rules so another
// source site only needs a new extractor, not a new pipeline.
type CandidateExtractor interface {
	Extract(pageHTML string, page int) []models.Candidate
}

const (
	// maxPriceTextLen guards against paragraphs that merely mention a
	// price somewhere in running text.
	maxPriceTextLen = 25

	// cardClimbLevels is how many ancestors above a price element the
	// enclosing listing card sits on this site.
	cardClimbLevels = 3
)

// LamudiExtractor scans rendered lamudi.com.mx pages for listing cards.
// The signature set spans the whole run, so a card repeated across pages
// is kept only at its first occurrence.
type LamudiExtractor struct {
	seen   *utils.SeenSet
	logger *utils.Logger
}

// NewLamudiExtractor creates an extractor with empty dedup state.
func NewLamudiExtractor(logger *utils.Logger) *LamudiExtractor {
	return &LamudiExtractor{
		seen:   utils.NewSeenSet(),
		logger: logger,
	}
}

// Extract returns the distinct candidate blocks of one page, in
// discovery order.
func (e *LamudiExtractor) Extract(pageHTML string, page int) []models.Candidate {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		e.logger.Skip("page-parse", "page %d: %v", page, err)
		return nil
	}

	var candidates []models.Candidate

	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		priceText := strings.TrimSpace(ownText(s.Nodes[0]))
		if !strings.Contains(priceText, "$") {
			return
		}
		if len([]rune(priceText)) > maxPriceTextLen || !containsDigit(priceText) {
			return
		}

		card := s
		for i := 0; i < cardClimbLevels; i++ {
			card = card.Parent()
			if card.Length() == 0 {
				return
			}
		}

		blockText := renderBlockText(card.Nodes[0])
		if !e.seen.Add(blockText) {
			return
		}

		link := "#"
		if href, ok := card.Find("a[href]").First().Attr("href"); ok && href != "" {
			link = href
		}

		candidates = append(candidates, models.Candidate{
			PriceText: priceText,
			BlockText: blockText,
			Link:      link,
			Page:      page,
		})
	})

	e.logger.Debug("[extract] Page %d — %d candidate blocks", page, len(candidates))
	return candidates
}

// ownText concatenates the element's direct text-node children, ignoring
// descendant elements.
func ownText(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

func containsDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

// blockTags are the elements that introduce a line break when a browser
// renders innerText. The card's line structure drives title parsing, so
// the rendering here has to preserve it.
var blockTags = map[string]struct{}{
	"address": {}, "article": {}, "aside": {}, "blockquote": {},
	"div": {}, "dl": {}, "dt": {}, "dd": {}, "fieldset": {},
	"figure": {}, "footer": {}, "form": {}, "h1": {}, "h2": {},
	"h3": {}, "h4": {}, "h5": {}, "h6": {}, "header": {}, "hr": {},
	"li": {}, "main": {}, "nav": {}, "ol": {}, "p": {}, "pre": {},
	"section": {}, "table": {}, "tr": {}, "ul": {},
}

// renderBlockText approximates a browser's innerText for a card node:
// one line per block-level element, inline text joined with spaces,
// script and style contents dropped.
func renderBlockText(root *html.Node) string {
	var out strings.Builder
	var line strings.Builder

	flush := func() {
		if s := strings.TrimSpace(line.String()); s != "" {
			out.WriteString(s)
			out.WriteByte('\n')
		}
		line.Reset()
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if s := strings.TrimSpace(n.Data); s != "" {
				if line.Len() > 0 {
					line.WriteByte(' ')
				}
				line.WriteString(s)
			}
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
			_, block := blockTags[n.Data]
			if block || n.Data == "br" {
				flush()
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
			if block {
				flush()
			}
		default:
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
		}
	}

	walk(root)
	flush()
	return strings.TrimRight(out.String(), "\n")
}
