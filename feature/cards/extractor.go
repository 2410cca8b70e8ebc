package cards

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"card-ledger/core/transport"

	"github.com/PuerkitoBio/goquery"
)

const (
	productSep = " / "
	qaSep      = "\n\n"
)

// Extractor maps card detail pages into Records.
type Extractor struct {
	fetcher transport.Fetcher
	base    *url.URL
}

// NewExtractor creates an extractor resolving image paths against baseURL.
func NewExtractor(fetcher transport.Fetcher, baseURL string) (*Extractor, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	return &Extractor{fetcher: fetcher, base: base}, nil
}

// Fetch loads one detail page. A transport failure yields a nil record and
// the error; callers skip the card and continue.
func (e *Extractor) Fetch(ctx context.Context, pageURL, expansion string) (*Record, error) {
	doc, err := e.fetcher.Fetch(ctx, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch detail %s: %w", pageURL, err)
	}
	rec := e.Extract(doc, pageURL, expansion)
	return &rec, nil
}

// Extract reads every field independently from doc.
func (e *Extractor) Extract(doc *goquery.Document, pageURL, expansion string) Record {
	products, dates := productsAndDates(doc)
	qaText, qaCount := questions(doc)

	return Record{
		Expansion:    expansion,
		CardCode:     transport.Text(doc.Find("p.number span")),
		NameJA:       transport.Text(doc.Find("h1.name")),
		PageURL:      pageURL,
		ImageURL:     e.imageURL(doc),
		ReleaseDates: dates,
		Products:     products,
		Illustrator:  transport.Text(doc.Find("div.illustrator")),
		QACount:      qaCount,
		QAText:       qaText,
		EffectText:   transport.JoinedText(doc.Find("div.txt-Inner").First(), "\n"),
	}
}

func (e *Extractor) imageURL(doc *goquery.Document) string {
	src, ok := doc.Find(`img[src*="/cardlist/"]`).First().Attr("src")
	if !ok || src == "" {
		return ""
	}
	if !strings.HasPrefix(src, "/") {
		return src
	}
	ref, err := url.Parse(src)
	if err != nil {
		return src
	}
	return e.base.ResolveReference(ref).String()
}

// productsAndDates joins product names in page order and the distinct
// release dates sorted lexically.
func productsAndDates(doc *goquery.Document) (products, dates string) {
	box := doc.Find("div.cardlist-Detail_Products").First()
	if box.Length() == 0 {
		return "", ""
	}

	var names []string
	seen := make(map[string]struct{})
	var dateList []string
	box.Find("div.products").Each(func(_ int, s *goquery.Selection) {
		if name := transport.Text(s.Find("p")); name != "" {
			names = append(names, name)
		}
		dd := s.Find("dl").First().Find("dd")
		if dd.Length() == 0 {
			return
		}
		d := transport.Text(dd)
		if _, dup := seen[d]; !dup && d != "" {
			seen[d] = struct{}{}
			dateList = append(dateList, d)
		}
	})
	sort.Strings(dateList)

	return strings.Join(names, productSep), strings.Join(dateList, productSep)
}

// questions renders Q/A pairs; a pair counts when either side has text.
func questions(doc *goquery.Document) (string, int) {
	var blocks []string
	doc.Find("div.qa-List_Item").Each(func(_ int, s *goquery.Selection) {
		q := transport.JoinedText(s.Find("p.qa-List_Txt-Q").First(), " ")
		a := transport.JoinedText(s.Find("p.qa-List_Txt-A").First(), " ")
		if q == "" && a == "" {
			return
		}
		blocks = append(blocks, fmt.Sprintf("Q: %s\nA: %s", q, a))
	})
	return strings.Join(blocks, qaSep), len(blocks)
}
