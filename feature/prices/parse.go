package prices

import (
	"regexp"
	"strconv"
	"strings"

	"card-ledger/core/normalize"
	"card-ledger/core/transport"

	"github.com/PuerkitoBio/goquery"
)

// parallelMarker in a product name flags an alternate-art print.
const parallelMarker = "パラレル"

var altCodePattern = regexp.MustCompile(`h[0-9A-Za-z]+-\d{3}`)

// ParseListings returns the products on a search page whose printed code, or
// the code embedded in the image alt text, matches cardCode. Relative detail
// links are resolved against baseURL.
func ParseListings(doc *goquery.Document, cardCode string, side Side, baseURL string) []Listing {
	target := normalize.SearchKey(cardCode)
	linkMarker := "/" + string(side) + "/hocg/card/"
	base := strings.TrimRight(baseURL, "/")

	var out []Listing
	doc.Find("div.py-4.cards-list").Each(func(_ int, block *goquery.Selection) {
		h3 := block.Find("h3").First()
		if h3.Length() == 0 {
			return
		}
		rarity := blockRarity(h3)

		block.Find("div.card-product").Each(func(_ int, product *goquery.Selection) {
			codeSpan := product.Find("span.d-block.border.border-dark").First()
			if codeSpan.Length() == 0 {
				return
			}
			if !matches(product, codeSpan, target) {
				return
			}

			l := Listing{CardCode: cardCode, Rarity: rarity}
			if name := product.Find("h4").First(); name.Length() > 0 {
				n := transport.Text(name)
				l.Name = &n
				l.IsParallel = strings.Contains(n, parallelMarker)
			}
			if strong := product.Find("strong").First(); strong.Length() > 0 {
				raw := transport.Text(strong)
				if raw != "" {
					l.RawPriceText = &raw
					l.Price = digits(raw)
				}
			}
			l.URL = detailURL(product, linkMarker, base)
			out = append(out, l)
		})
	})
	return out
}

// blockRarity reads the rarity from the heading span, else the heading's first word.
func blockRarity(h3 *goquery.Selection) *string {
	if span := h3.Find("span").First(); span.Length() > 0 {
		if r := transport.Text(span); r != "" {
			return &r
		}
	}
	if words := strings.Fields(transport.JoinedText(h3, " ")); len(words) > 0 {
		return &words[0]
	}
	return nil
}

func matches(product, codeSpan *goquery.Selection, target string) bool {
	if normalize.SearchKey(transport.Text(codeSpan)) == target {
		return true
	}
	alt, ok := product.Find("img[alt]").First().Attr("alt")
	if !ok {
		return false
	}
	code := altCodePattern.FindString(strings.TrimSpace(alt))
	return code != "" && normalize.SearchKey(code) == target
}

func digits(raw string) *int64 {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= '\uff10' && r <= '\uff19':
			b.WriteRune('0' + (r - '\uff10'))
		}
	}
	if b.Len() == 0 {
		return nil
	}
	v, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

func detailURL(product *goquery.Selection, marker, base string) *string {
	var found *string
	product.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		if !strings.Contains(href, marker) {
			return true
		}
		if strings.HasPrefix(href, "/") {
			href = base + href
		}
		found = &href
		return false
	})
	return found
}
