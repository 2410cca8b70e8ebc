package cards

import (
	"context"
	"os"
	"testing"

	"card-ledger/core/csvio"
	"card-ledger/core/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T, f *pageFetcher, m *metrics.Metrics) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	return NewService(newTestCollector(t, f), newTestExtractor(t, f), dir, zap.NewNop(), m), dir
}

func TestService_Run(t *testing.T) {
	f := &pageFetcher{pages: map[string]string{
		searchURL + "#1":             linksPage("/cardlist/?id=1", "/cardlist/?id=2"),
		searchURL + "#2":             linksPage(),
		testBase + "/cardlist/?id=1": detailHTML,
	}}
	m := metrics.New()
	svc, dir := newTestService(t, f, m)

	res, err := svc.Run(context.Background(), "hBP01")
	require.NoError(t, err)

	assert.Equal(t, OutputPath(dir, "hBP01"), res.Path)
	assert.Equal(t, 2, res.Collected)
	assert.Equal(t, 1, res.Written)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CardsTotal))

	table, err := csvio.ReadFile(res.Path, Header)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "hBP01-001", table.Rows[0].Get("card_code"))
	assert.Equal(t, "2", table.Rows[0].Get("qa_count"))
}

func TestService_Run_NoCardsStillWritesHeader(t *testing.T) {
	f := &pageFetcher{pages: map[string]string{searchURL + "#1": linksPage()}}
	svc, dir := newTestService(t, f, nil)

	res, err := svc.Run(context.Background(), "hBP09")
	require.NoError(t, err)
	assert.Zero(t, res.Written)

	data, err := os.ReadFile(OutputPath(dir, "hBP09"))
	require.NoError(t, err)
	assert.Equal(t, "expansion,card_code,name_ja,card_page_url,image_url,release_dates,products,illustrator_name,qa_count,qa_text,effect_text\n", string(data))
}
