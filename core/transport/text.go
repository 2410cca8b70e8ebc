package transport

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// JoinedText collects every text node under the selection, trims each one,
// drops the empty ones and joins the rest with sep.
func JoinedText(sel *goquery.Selection, sep string) string {
	var parts []string
	for _, n := range sel.Nodes {
		collectText(n, &parts)
	}
	return strings.Join(parts, sep)
}

// Text is the text of the first matched element with every text node trimmed
// and the pieces concatenated, or "" when nothing matched.
func Text(sel *goquery.Selection) string {
	return JoinedText(sel.First(), "")
}

func collectText(node *html.Node, parts *[]string) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		if s := strings.TrimSpace(node.Data); s != "" {
			*parts = append(*parts, s)
		}
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, parts)
	}
}
