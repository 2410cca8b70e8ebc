package cards

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const detailHTML = `<html><body>
<h1 class="name"> ときのそら </h1>
<p class="number">カードナンバー<span>hBP01-001</span></p>
<img src="/wp-content/images/cardlist/hBP01/hBP01-001_OSR.png">
<div class="illustrator">はるかぜせつな</div>
<div class="cardlist-Detail_Products">
  <div class="products"><p>ブースターパック「ブルーミングレディアンス」</p><dl><dt>発売日</dt><dd>2024/09/20</dd></dl></div>
  <div class="products"><p>スタートデッキ</p><dl><dt>発売日</dt><dd>2024/09/13</dd></dl></div>
  <div class="products"><p>プロモ</p><dl><dt>発売日</dt><dd>2024/09/20</dd></dl></div>
</div>
<div class="qa-List_Item"><p class="qa-List_Txt-Q">効果は<b>重複</b>しますか？</p><p class="qa-List_Txt-A">はい。</p></div>
<div class="qa-List_Item"><p class="qa-List_Txt-Q"></p><p class="qa-List_Txt-A"></p></div>
<div class="qa-List_Item"><p class="qa-List_Txt-A">回答のみ</p></div>
<div class="txt-Inner"><p>ブルームエフェクト</p><p>デッキを1枚引く。</p></div>
</body></html>`

func parse(t *testing.T, body string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	require.NoError(t, err)
	return doc
}

func newTestExtractor(t *testing.T, f *pageFetcher) *Extractor {
	t.Helper()
	e, err := NewExtractor(f, testBase)
	require.NoError(t, err)
	return e
}

func TestExtractor_Extract(t *testing.T) {
	e := newTestExtractor(t, &pageFetcher{})
	got := e.Extract(parse(t, detailHTML), testBase+"/cardlist/?id=1", "hBP01")

	want := Record{
		Expansion:    "hBP01",
		CardCode:     "hBP01-001",
		NameJA:       "ときのそら",
		PageURL:      testBase + "/cardlist/?id=1",
		ImageURL:     testBase + "/wp-content/images/cardlist/hBP01/hBP01-001_OSR.png",
		ReleaseDates: "2024/09/13 / 2024/09/20",
		Products:     "ブースターパック「ブルーミングレディアンス」 / スタートデッキ / プロモ",
		Illustrator:  "はるかぜせつな",
		QACount:      2,
		QAText:       "Q: 効果は 重複 しますか？\nA: はい。\n\nQ: \nA: 回答のみ",
		EffectText:   "ブルームエフェクト\nデッキを1枚引く。",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractor_MissingBlocksDegradeToEmpty(t *testing.T) {
	e := newTestExtractor(t, &pageFetcher{})
	got := e.Extract(parse(t, `<h1 class="name">Only name</h1><img src="https://cdn.example/cardlist/a.png">`), "u", "hSD01")

	assert.Equal(t, Record{
		Expansion: "hSD01",
		NameJA:    "Only name",
		PageURL:   "u",
		ImageURL:  "https://cdn.example/cardlist/a.png",
	}, got)
	assert.Equal(t, "0", got.Row()[8])
}

func TestExtractor_Fetch(t *testing.T) {
	pageURL := testBase + "/cardlist/?id=1"
	f := &pageFetcher{pages: map[string]string{pageURL: detailHTML}}
	e := newTestExtractor(t, f)

	rec, err := e.Fetch(context.Background(), pageURL, "hBP01")
	require.NoError(t, err)
	assert.Equal(t, "hBP01-001", rec.CardCode)

	rec, err = e.Fetch(context.Background(), testBase+"/cardlist/?id=404", "hBP01")
	assert.Error(t, err)
	assert.Nil(t, rec)
}

func TestExtractor_NestedTextNodesConcatenate(t *testing.T) {
	e := newTestExtractor(t, &pageFetcher{})
	body := "<html><body>" +
		"<h1 class=\"name\">\n  ときのそら\n  <span>(SEC)</span>\n</h1>" +
		"<p class=\"number\"><span>\n hBP01-001\n</span></p>" +
		"<div class=\"illustrator\"><p>イラスト</p>\n<p>おおた</p></div>" +
		"<div class=\"cardlist-Detail_Products\"><div class=\"products\">" +
		"<p>ブースター\n  <br>パック</p><dl><dd>\n 2024/09/20 \n</dd></dl></div></div>" +
		"</body></html>"

	got := e.Extract(parse(t, body), testBase+"/cardlist/?id=9", "hBP01")

	assert.Equal(t, "ときのそら(SEC)", got.NameJA)
	assert.Equal(t, "hBP01-001", got.CardCode)
	assert.Equal(t, "イラストおおた", got.Illustrator)
	assert.Equal(t, "ブースターパック", got.Products)
	assert.Equal(t, "2024/09/20", got.ReleaseDates)
}
