package inventory

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// PortfolioView is the read model of current positions.
const PortfolioView = "v_portfolio_positions_jpy_v2"

// RESTLedger is a Ledger backed by a PostgREST endpoint.
type RESTLedger struct {
	http  *resty.Client
	table string
}

// NewRESTLedger creates a REST ledger. baseURL is the project URL; the
// REST root is baseURL/rest/v1.
func NewRESTLedger(baseURL, apiKey, table string, timeout time.Duration) *RESTLedger {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")+"/rest/v1").
		SetTimeout(timeout).
		SetHeader("apikey", apiKey).
		SetAuthToken(apiKey).
		SetHeader("Accept", "application/json")
	return &RESTLedger{http: client, table: table}
}

// Resty exposes the underlying client.
func (l *RESTLedger) Resty() *resty.Client {
	return l.http
}

// LookupCards maps card codes to ids.
func (l *RESTLedger) LookupCards(ctx context.Context, codes []string) (map[string]int64, error) {
	out := make(map[string]int64, len(codes))
	if len(codes) == 0 {
		return out, nil
	}

	quoted := make([]string, len(codes))
	for i, c := range codes {
		quoted[i] = strconv.Quote(c)
	}

	var cards []Card
	resp, err := l.http.R().
		SetContext(ctx).
		SetQueryParam("select", "id,card_code").
		SetQueryParam("card_code", "in.("+strings.Join(quoted, ",")+")").
		SetResult(&cards).
		Get("/cards")
	if err := check("lookup cards", resp, err); err != nil {
		return nil, err
	}
	for _, c := range cards {
		out[c.CardCode] = c.ID
	}
	return out, nil
}

// LookupPrints returns the print variants of the given cards.
func (l *RESTLedger) LookupPrints(ctx context.Context, cardIDs []int64) (map[int64][]CardPrint, error) {
	out := make(map[int64][]CardPrint, len(cardIDs))
	if len(cardIDs) == 0 {
		return out, nil
	}

	ids := make([]string, len(cardIDs))
	for i, id := range cardIDs {
		ids[i] = strconv.FormatInt(id, 10)
	}

	var prints []CardPrint
	resp, err := l.http.R().
		SetContext(ctx).
		SetQueryParam("select", "id,card_id,rarity_code,print_hint").
		SetQueryParam("card_id", "in.("+strings.Join(ids, ",")+")").
		SetQueryParam("order", "card_id.asc,id.asc").
		SetResult(&prints).
		Get("/card_prints")
	if err := check("lookup prints", resp, err); err != nil {
		return nil, err
	}
	for _, p := range prints {
		out[p.CardID] = append(out[p.CardID], p)
	}
	return out, nil
}

// ClearStaging deletes every staging row. The count comes from the
// Content-Range header and is -1 when the server omits it.
func (l *RESTLedger) ClearStaging(ctx context.Context) (int64, error) {
	resp, err := l.http.R().
		SetContext(ctx).
		SetQueryParam("id", "not.is.null").
		SetHeader("Prefer", "count=exact").
		Delete("/" + l.table)
	if err := check("clear staging", resp, err); err != nil {
		return 0, err
	}
	return contentRangeTotal(resp.Header().Get("Content-Range")), nil
}

// InsertStaging posts all lots as one JSON array.
func (l *RESTLedger) InsertStaging(ctx context.Context, lots []StagedLot) error {
	if len(lots) == 0 {
		return nil
	}
	resp, err := l.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Prefer", "return=minimal").
		SetBody(lots).
		Post("/" + l.table)
	return check("insert staging", resp, err)
}

// Position is one row of the portfolio view.
type Position struct {
	CardCode       string           `json:"card_code"`
	NameJA         *string          `json:"name_ja"`
	RarityCode     *string          `json:"rarity_code"`
	Qty            int              `json:"qty"`
	SellPriceJPY   *decimal.Decimal `json:"sell_price_jpy"`
	MarketValueJPY *decimal.Decimal `json:"market_value_jpy"`
	ImageURL       *string          `json:"image_url"`
}

// Portfolio reads the current positions ordered by card code and rarity.
func (l *RESTLedger) Portfolio(ctx context.Context) ([]Position, error) {
	var rows []Position
	resp, err := l.http.R().
		SetContext(ctx).
		SetQueryParam("select", "card_code,name_ja,rarity_code,qty,sell_price_jpy,market_value_jpy,image_url").
		SetQueryParam("order", "card_code.asc,rarity_code.asc").
		SetResult(&rows).
		Get("/" + PortfolioView)
	if err := check("portfolio", resp, err); err != nil {
		return nil, err
	}
	return rows, nil
}

func check(op string, resp *resty.Response, err error) error {
	if err != nil {
		return &LedgerError{Op: op, Text: err.Error(), Err: err}
	}
	if !resp.IsSuccess() {
		return &LedgerError{Op: op, Status: resp.StatusCode(), Text: strings.TrimSpace(resp.String())}
	}
	return nil
}

// contentRangeTotal parses "0-9/10" or "*/0".
func contentRangeTotal(header string) int64 {
	_, total, ok := strings.Cut(header, "/")
	if !ok {
		return -1
	}
	n, err := strconv.ParseInt(total, 10, 64)
	if err != nil {
		return -1
	}
	return n
}
