package transport

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinedText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<div class="txt-Inner"> <p>Line one</p>
		<p> Line <b>two</b> </p><br></div>`))
	require.NoError(t, err)

	sel := doc.Find("div.txt-Inner")
	assert.Equal(t, "Line one\nLine\ntwo", JoinedText(sel, "\n"))
	assert.Equal(t, "Line one Line two", JoinedText(sel, " "))
	assert.Equal(t, "", JoinedText(doc.Find("div.none"), " "))
	assert.Equal(t, "", Text(doc.Find("div.none")))
}

func TestText_ConcatenatesTrimmedNodes(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		"<h1 class=\"name\">\n  Tokino Sora\n  <span>(SEC)</span>\n</h1><h1 class=\"name\">second</h1>"))
	require.NoError(t, err)

	assert.Equal(t, "Tokino Sora(SEC)", Text(doc.Find("h1.name")))
}
