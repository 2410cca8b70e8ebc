package prices

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listing(rarity string, parallel bool, price int64, name string) Listing {
	l := Listing{CardCode: "hBP01-001", IsParallel: parallel, Price: ptr(price), Name: ptr(name)}
	if rarity != "" {
		l.Rarity = ptr(rarity)
	}
	l.RawPriceText = ptr(num(l.Price) + " 円")
	return l
}

func TestReconcile_BuyAboveSellIsSuspicious(t *testing.T) {
	rows := Reconcile("hBP01-001",
		[]Listing{listing("R", false, 500, "ときのそら")},
		[]Listing{listing("R", false, 600, "ときのそら")},
		"")

	require.Len(t, rows, 1)
	assert.True(t, rows[0].IsSuspicious)
	require.NotNil(t, rows[0].ErrorMessage)
	assert.Equal(t, MsgBuyAboveSell, *rows[0].ErrorMessage)
	assert.Equal(t, int64(500), *rows[0].SellPrice)
	assert.Equal(t, int64(600), *rows[0].BuyPrice)
}

func TestReconcile_EqualPricesNotSuspicious(t *testing.T) {
	rows := Reconcile("hBP01-001",
		[]Listing{listing("R", false, 500, "a")},
		[]Listing{listing("R", false, 500, "a")},
		"")

	require.Len(t, rows, 1)
	assert.False(t, rows[0].IsSuspicious)
	assert.Nil(t, rows[0].ErrorMessage)
}

func TestReconcile_NoListingsEmitsPlaceholder(t *testing.T) {
	rows := Reconcile("hBP01-099", nil, nil, "")

	want := []Row{{
		CardCode:     "hBP01-099",
		IsSuspicious: true,
		ErrorMessage: ptr(MsgNoMatch),
	}}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("Reconcile() mismatch (-want +got):\n%s", diff)
	}
}

func TestReconcile_PlaceholderCarriesTransportError(t *testing.T) {
	msg := TransportError(assert.AnError, assert.AnError)
	rows := Reconcile("hBP01-001", nil, nil, msg)

	require.Len(t, rows, 1)
	assert.Equal(t, "sell search error: "+assert.AnError.Error()+" | buy search error: "+assert.AnError.Error(), *rows[0].ErrorMessage)
}

func TestReconcile_KeepsHighestPricePerKey(t *testing.T) {
	rows := Reconcile("hBP01-001",
		[]Listing{listing("R", false, 300, "low"), listing("R", false, 450, "high")},
		nil, "")

	require.Len(t, rows, 1)
	assert.Equal(t, int64(450), *rows[0].SellPrice)
	assert.Equal(t, "high", *rows[0].Name)
	assert.Nil(t, rows[0].BuyPrice)
	assert.False(t, rows[0].IsSuspicious)
}

func TestReconcile_MissingPriceLosesButStaysNull(t *testing.T) {
	noPrice := listing("C", false, 0, "free")
	noPrice.Price = nil

	rows := Reconcile("hBP01-001", []Listing{noPrice}, nil, "")
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].SellPrice)
	assert.False(t, rows[0].IsSuspicious)
}

func TestReconcile_OrderAndNames(t *testing.T) {
	sell := []Listing{
		listing("SR", true, 5000, "そら パラレル"),
		listing("", false, 10, ""),
		listing("C", false, 30, ""),
	}
	buy := []Listing{
		listing("C", false, 10, "buy name"),
		listing("SR", false, 900, "そら"),
	}

	rows := Reconcile("hBP01-001", sell, buy, "")

	var keys []Key
	for _, r := range rows {
		keys = append(keys, Key{Rarity: *r.Rarity, Parallel: r.IsParallelName})
	}
	assert.Equal(t, []Key{
		{"?", false},
		{"C", false},
		{"SR", false},
		{"SR", true},
	}, keys)

	assert.Equal(t, "buy name", *rows[1].Name)
	assert.Equal(t, "そら", *rows[2].Name)
	assert.Nil(t, rows[2].SellPrice)
	assert.Nil(t, rows[3].BuyURL)
}

func TestReconcile_TransportErrorOnEveryRow(t *testing.T) {
	rows := Reconcile("hBP01-001",
		[]Listing{listing("R", false, 100, "a")},
		nil,
		"buy search error: timeout")

	require.Len(t, rows, 1)
	assert.Equal(t, "buy search error: timeout", *rows[0].ErrorMessage)
	assert.False(t, rows[0].IsSuspicious)
}

func TestRow_Record(t *testing.T) {
	r := Row{
		CardCode:       "hBP01-001",
		Rarity:         ptr("RR"),
		IsParallelName: true,
		SellPrice:      ptr(int64(1200)),
		IsSuspicious:   false,
	}
	assert.Equal(t, []string{"hBP01-001", "RR", "1", "", "1200", "", "", "", "", "", "0", ""}, r.Record())
}
