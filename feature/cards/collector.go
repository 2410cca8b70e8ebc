package cards

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"card-ledger/core/transport"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// SearchPath is the paginated card search endpoint.
const SearchPath = "/cardlist/cardsearch_ex"

// detailMarker identifies card detail links on a search page.
const detailMarker = "/cardlist/?id="

// StopReason explains why pagination ended.
type StopReason string

const (
	StopFetchFailed StopReason = "fetch_failed"
	StopEmptyPage   StopReason = "empty_page"
	StopNoNewLinks  StopReason = "no_new_links"
	StopCancelled   StopReason = "cancelled"
)

// CollectResult is the outcome of one pagination walk.
type CollectResult struct {
	// URLs holds detail page URLs in first-seen order.
	URLs []string
	// Pages is the number of page requests issued.
	Pages int
	// StopReason tells which condition ended the walk.
	StopReason StopReason
	// Err is the fetch error when StopReason is StopFetchFailed.
	Err error
}

// Collector walks the card search pages of one expansion.
type Collector struct {
	fetcher transport.Fetcher
	base    *url.URL
	logger  *zap.Logger
	now     func() time.Time
}

// NewCollector creates a collector resolving links against baseURL.
func NewCollector(fetcher transport.Fetcher, baseURL string, logger *zap.Logger) (*Collector, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	return &Collector{fetcher: fetcher, base: base, logger: logger, now: time.Now}, nil
}

// Collect requests pages 1, 2, ... until a page fails to load, yields no
// detail links, or (after page 1) yields only links already collected.
// Failures end the walk without an error; the links gathered so far are kept.
func (c *Collector) Collect(ctx context.Context, expansion string) CollectResult {
	seen := NewSeenSet()
	endpoint := c.base.ResolveReference(&url.URL{Path: SearchPath}).String()

	result := CollectResult{}
	for page := 1; ; page++ {
		if ctx.Err() != nil {
			result.StopReason = StopCancelled
			break
		}

		params := url.Values{
			"expansion": {expansion},
			"view":      {"image"},
			"page":      {strconv.Itoa(page)},
			"t":         {strconv.FormatInt(c.now().UnixMilli(), 10)},
		}

		result.Pages++
		doc, err := c.fetcher.Fetch(ctx, endpoint, params)
		if err != nil {
			c.logger.Warn("Search page failed, stopping pagination",
				zap.String("expansion", expansion),
				zap.Int("page", page),
				zap.Error(err))
			result.StopReason = StopFetchFailed
			result.Err = err
			break
		}

		links := c.detailLinks(doc)
		if len(links) == 0 {
			c.logger.Info("Reached last page",
				zap.String("expansion", expansion),
				zap.Int("last_page", page-1))
			result.StopReason = StopEmptyPage
			break
		}

		added := 0
		for _, link := range links {
			if seen.Add(link) {
				added++
			}
		}
		c.logger.Debug("Collected search page",
			zap.String("expansion", expansion),
			zap.Int("page", page),
			zap.Int("links", len(links)),
			zap.Int("new", added),
			zap.Int("collected", seen.Len()))

		if added == 0 && page > 1 {
			c.logger.Warn("Page repeated earlier results, stopping pagination",
				zap.String("expansion", expansion),
				zap.Int("page", page))
			result.StopReason = StopNoNewLinks
			break
		}
	}

	result.URLs = seen.Items()
	return result
}

func (c *Collector) detailLinks(doc *goquery.Document) []string {
	var links []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if !strings.Contains(href, detailMarker) {
			return
		}
		links = append(links, c.resolve(href))
	})
	return links
}

func (c *Collector) resolve(href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return c.base.ResolveReference(ref).String()
}
