package cards

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// pageFetcher serves canned HTML keyed by URL plus the "page" parameter.
type pageFetcher struct {
	pages    map[string]string
	requests []string
}

func (f *pageFetcher) Fetch(_ context.Context, rawURL string, params url.Values) (*goquery.Document, error) {
	key := rawURL
	if p := params.Get("page"); p != "" {
		key += "#" + p
	}
	f.requests = append(f.requests, key)

	body, ok := f.pages[key]
	if !ok {
		return nil, errors.New("status 404 Not Found: " + key)
	}
	return goquery.NewDocumentFromReader(strings.NewReader(body))
}

func linksPage(hrefs ...string) string {
	var b strings.Builder
	b.WriteString("<html><body><a href=\"/cardlist/\">top</a>")
	for _, h := range hrefs {
		b.WriteString(`<a href="` + h + `"><img src="x.png"></a>`)
	}
	b.WriteString("</body></html>")
	return b.String()
}
