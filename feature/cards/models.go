package cards

import "strconv"

// Header is the column order of the cards CSV.
var Header = []string{
	"expansion",
	"card_code",
	"name_ja",
	"card_page_url",
	"image_url",
	"release_dates",
	"products",
	"illustrator_name",
	"qa_count",
	"qa_text",
	"effect_text",
}

// Record is one card detail page. Text fields are empty, never absent, when
// the page lacks the matching block.
type Record struct {
	Expansion    string `json:"expansion"`
	CardCode     string `json:"card_code"`
	NameJA       string `json:"name_ja"`
	PageURL      string `json:"card_page_url"`
	ImageURL     string `json:"image_url"`
	ReleaseDates string `json:"release_dates"`
	Products     string `json:"products"`
	Illustrator  string `json:"illustrator_name"`
	QACount      int    `json:"qa_count"`
	QAText       string `json:"qa_text"`
	EffectText   string `json:"effect_text"`
}

// Row renders the record in Header order.
func (r Record) Row() []string {
	return []string{
		r.Expansion,
		r.CardCode,
		r.NameJA,
		r.PageURL,
		r.ImageURL,
		r.ReleaseDates,
		r.Products,
		r.Illustrator,
		strconv.Itoa(r.QACount),
		r.QAText,
		r.EffectText,
	}
}
