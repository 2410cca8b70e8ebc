package prices

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const marketBase = "https://market.example"

const searchHTML = `<html><body>
<div class="py-4 cards-list">
  <h3><span>OSR</span> オシレア</h3>
  <div class="card-product">
    <img alt="hBP01-001 ときのそら">
    <span class="d-block border border-dark">hBP01-001</span>
    <h4>ときのそら</h4>
    <strong>1,980 円</strong>
    <a href="/sell/hocg/card/hbp01/10001">detail</a>
  </div>
  <div class="card-product">
    <span class="d-block border border-dark">hBP01-002</span>
    <h4>AZKi</h4>
    <strong>500 円</strong>
  </div>
</div>
<div class="py-4 cards-list">
  <h3>SEC シークレット</h3>
  <div class="card-product">
    <img alt="hBP01 - 001 parallel hBP01-001">
    <span class="d-block border border-dark">HBP01-001-P</span>
    <h4>ときのそら(パラレル)</h4>
    <strong>売切れ</strong>
    <a href="/buy/hocg/card/x">wrong side</a>
    <a href="https://market.example/sell/hocg/card/hbp01/10002">detail</a>
  </div>
  <div class="card-product">
    <img alt="hBP01-001">
    <h4>no code span</h4>
  </div>
</div>
<div class="py-4 cards-list"><div class="card-product"><span class="d-block border border-dark">hBP01-001</span></div></div>
</body></html>`

func TestParseListings(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(searchHTML))
	require.NoError(t, err)

	got := ParseListings(doc, "hBP01-001", Sell, marketBase)
	require.Len(t, got, 2)

	first := got[0]
	assert.Equal(t, "OSR", *first.Rarity)
	assert.Equal(t, "ときのそら", *first.Name)
	assert.False(t, first.IsParallel)
	assert.Equal(t, int64(1980), *first.Price)
	assert.Equal(t, "1,980 円", *first.RawPriceText)
	assert.Equal(t, marketBase+"/sell/hocg/card/hbp01/10001", *first.URL)

	second := got[1]
	assert.Equal(t, "SEC", *second.Rarity)
	assert.True(t, second.IsParallel)
	assert.Nil(t, second.Price)
	assert.Equal(t, "売切れ", *second.RawPriceText)
	assert.Equal(t, marketBase+"/sell/hocg/card/hbp01/10002", *second.URL)
	assert.Equal(t, Key{Rarity: "SEC", Parallel: true}, KeyOf(second))
}

func TestParseListings_BuySideLinks(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(searchHTML))
	require.NoError(t, err)

	got := ParseListings(doc, "hbp01-001", Buy, marketBase)
	require.Len(t, got, 2)
	assert.Nil(t, got[0].URL)
	assert.Equal(t, marketBase+"/buy/hocg/card/x", *got[1].URL)
}

func TestParseListings_NestedTextNodesConcatenate(t *testing.T) {
	body := "<div class=\"py-4 cards-list\"><h3><span>\n SR \n</span></h3>" +
		"<div class=\"card-product\">" +
		"<span class=\"d-block border border-dark\">\n hBP01-001 \n</span>" +
		"<h4>\n  ときのそら\n  <small>パラレル</small>\n</h4>" +
		"<strong>\n 1,980\n <small>円</small>\n</strong>" +
		"</div></div>"
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	require.NoError(t, err)

	got := ParseListings(doc, "hBP01-001", Sell, marketBase)
	require.Len(t, got, 1)
	assert.Equal(t, "SR", *got[0].Rarity)
	assert.Equal(t, "ときのそらパラレル", *got[0].Name)
	assert.True(t, got[0].IsParallel)
	assert.Equal(t, "1,980円", *got[0].RawPriceText)
	assert.Equal(t, int64(1980), *got[0].Price)
}

func TestDigits(t *testing.T) {
	assert.Equal(t, int64(1200), *digits("¥1,200"))
	assert.Equal(t, int64(350), *digits("３５0円"))
	assert.Nil(t, digits("SOLD OUT"))
}
