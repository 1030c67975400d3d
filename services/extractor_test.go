package services

import (
	"strings"
	"testing"
)

const listingsPage = `<html><body><div id="results">
<div class="card">
  <div class="body">
    <div class="price"><span>$2,500,000</span></div>
    <div class="title">Casa en Altabrisa</div>
  </div>
  <a href="https://example.com/casa-1">Ver detalle</a>
  <div>120 m2</div>
</div>
<div class="card">
  <div class="body">
    <div class="price"><span>$1,850,000</span></div>
    <div class="title">Casa en Cholul</div>
  </div>
  <a href="https://example.com/casa-2">Ver detalle</a>
  <div>200 m2</div>
</div>
<div class="card">
  <div class="body">
    <div class="price"><span>Los precios arrancan desde $1,000,000 en esta zona de la ciudad</span></div>
    <div class="title">Párrafo promocional largo</div>
  </div>
</div>
<div class="card">
  <div class="body">
    <div class="price"><span>Precios en $ MXN</span></div>
    <div class="title">Fragmento sin dígitos</div>
  </div>
</div>
</div></body></html>`

const cardWithoutLink = `<html><body>
<div class="card">
  <div class="body">
    <div class="price"><span>$3,100,000</span></div>
    <div class="title">Casa sin enlace</div>
  </div>
</div>
</body></html>`

func TestExtractFindsCurrencyCards(t *testing.T) {
	e := NewLamudiExtractor(newTestLogger())

	got := e.Extract(listingsPage, 1)
	if len(got) != 2 {
		t.Fatalf("Extract returned %d candidates; want 2", len(got))
	}

	if got[0].PriceText != "$2,500,000" {
		t.Errorf("candidate 0 price = %q; want %q", got[0].PriceText, "$2,500,000")
	}
	if got[0].Link != "https://example.com/casa-1" {
		t.Errorf("candidate 0 link = %q; want card link", got[0].Link)
	}
	if !strings.Contains(got[0].BlockText, "Casa en Altabrisa") {
		t.Errorf("candidate 0 block text missing title: %q", got[0].BlockText)
	}
	if !strings.Contains(got[0].BlockText, "120 m2") {
		t.Errorf("candidate 0 block text missing area line: %q", got[0].BlockText)
	}
	if got[1].PriceText != "$1,850,000" {
		t.Errorf("candidate 1 price = %q; want %q", got[1].PriceText, "$1,850,000")
	}
}

func TestExtractBlockTextKeepsLineStructure(t *testing.T) {
	e := NewLamudiExtractor(newTestLogger())

	got := e.Extract(listingsPage, 1)
	if len(got) == 0 {
		t.Fatal("no candidates extracted")
	}

	lines := strings.Split(got[0].BlockText, "\n")
	want := []string{"$2,500,000", "Casa en Altabrisa", "Ver detalle", "120 m2"}
	if len(lines) != len(want) {
		t.Fatalf("block text has %d lines (%q); want %d", len(lines), got[0].BlockText, len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q; want %q", i, lines[i], want[i])
		}
	}
}

func TestExtractDeduplicatesAcrossPages(t *testing.T) {
	e := NewLamudiExtractor(newTestLogger())

	first := e.Extract(listingsPage, 1)
	second := e.Extract(listingsPage, 2)

	if len(first) != 2 {
		t.Errorf("first page: got %d candidates; want 2", len(first))
	}
	if len(second) != 0 {
		t.Errorf("second page repeated the same cards: got %d candidates; want 0", len(second))
	}
}

func TestExtractLinkFallback(t *testing.T) {
	e := NewLamudiExtractor(newTestLogger())

	got := e.Extract(cardWithoutLink, 1)
	if len(got) != 1 {
		t.Fatalf("Extract returned %d candidates; want 1", len(got))
	}
	if got[0].Link != "#" {
		t.Errorf("link = %q; want %q", got[0].Link, "#")
	}
}

func TestExtractMalformedHTML(t *testing.T) {
	e := NewLamudiExtractor(newTestLogger())

	// html.Parse is lenient; a truncated document must not panic and
	// simply yields whatever cards are recoverable.
	got := e.Extract("<div><span>$2,000,000</span>", 1)
	for _, c := range got {
		if c.PriceText == "" {
			t.Errorf("extracted candidate with empty price text")
		}
	}
}
