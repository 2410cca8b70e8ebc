package prices

import "strconv"

// Side is the marketplace direction of a listing.
type Side string

const (
	// Sell listings are offers to sell to collectors.
	Sell Side = "sell"
	// Buy listings are offers to buy from collectors.
	Buy Side = "buy"
)

// UnknownRarity replaces a missing rarity in grouping keys.
const UnknownRarity = "?"

// Listing is one matching product on a search page.
type Listing struct {
	CardCode     string
	Rarity       *string
	Name         *string
	IsParallel   bool
	Price        *int64
	RawPriceText *string
	URL          *string
}

// Key groups listings of the same print.
type Key struct {
	Rarity   string
	Parallel bool
}

// KeyOf returns the grouping key of a listing.
func KeyOf(l Listing) Key {
	r := UnknownRarity
	if l.Rarity != nil && *l.Rarity != "" {
		r = *l.Rarity
	}
	return Key{Rarity: r, Parallel: l.IsParallel}
}

// Header is the column order of the prices CSV.
var Header = []string{
	"card_code",
	"rarity",
	"is_parallel_name",
	"name_ja",
	"sell_price_jpy",
	"buy_price_jpy",
	"raw_sell_price_text",
	"raw_buy_price_text",
	"sell_url",
	"buy_url",
	"is_suspicious",
	"error_message",
}

// Row is one reconciled (card, rarity, parallel) price line.
type Row struct {
	CardCode       string  `json:"card_code"`
	Rarity         *string `json:"rarity"`
	IsParallelName bool    `json:"is_parallel_name"`
	Name           *string `json:"name_ja"`
	SellPrice      *int64  `json:"sell_price_jpy"`
	BuyPrice       *int64  `json:"buy_price_jpy"`
	RawSellText    *string `json:"raw_sell_price_text"`
	RawBuyText     *string `json:"raw_buy_price_text"`
	SellURL        *string `json:"sell_url"`
	BuyURL         *string `json:"buy_url"`
	IsSuspicious   bool    `json:"is_suspicious"`
	ErrorMessage   *string `json:"error_message"`
}

// Record renders the row in Header order. Null fields become empty cells.
func (r Row) Record() []string {
	return []string{
		r.CardCode,
		str(r.Rarity),
		flag(r.IsParallelName),
		str(r.Name),
		num(r.SellPrice),
		num(r.BuyPrice),
		str(r.RawSellText),
		str(r.RawBuyText),
		str(r.SellURL),
		str(r.BuyURL),
		flag(r.IsSuspicious),
		str(r.ErrorMessage),
	}
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func num(p *int64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatInt(*p, 10)
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func ptr[T any](v T) *T {
	return &v
}
