package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/a11y-scraper/internal/entity"
)

func TestImportCSV(t *testing.T) {
	// header carries a UTF-8 BOM, as exported by spreadsheet tools
	input := "\ufeffProduct Name,Portfolio,Statement URL\n" +
		"Payments Portal,Finance,https://example.gov.uk/accessibility\n" +
		",Finance,https://orphan.gov.uk/a11y\n" +
		"Legacy Intranet,Corporate,\n"

	products := newFakeProductRepo()
	catalog := NewCatalog(products)

	summary, err := catalog.ImportCSV(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Imported)
	assert.Equal(t, 1, summary.Skipped)

	portal := products.rows["Payments Portal"]
	require.NotNil(t, portal)
	assert.Equal(t, "Finance", portal.Portfolio)
	assert.Equal(t, "https://example.gov.uk/accessibility", portal.URL)
	assert.Equal(t, entity.StatusPending, portal.Status)

	intranet := products.rows["Legacy Intranet"]
	require.NotNil(t, intranet)
	assert.Equal(t, entity.StatusNoURL, intranet.Status)
}

func TestImportCSVRejectsMissingProductColumn(t *testing.T) {
	catalog := NewCatalog(newFakeProductRepo())
	_, err := catalog.ImportCSV(context.Background(), strings.NewReader("Name,URL\nfoo,bar\n"))
	assert.Error(t, err)
}

func TestImportCSVToleratesShortRows(t *testing.T) {
	input := "Product Name,Portfolio,Statement URL\n" +
		"Bare Product\n"

	products := newFakeProductRepo()
	summary, err := NewCatalog(products).ImportCSV(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Imported)
	assert.Equal(t, entity.StatusNoURL, products.rows["Bare Product"].Status)
}

func TestImportCSVIsIdempotentUpsert(t *testing.T) {
	input := "Product Name,Portfolio,Statement URL\n" +
		"Payments Portal,Finance,https://example.gov.uk/accessibility\n"

	products := newFakeProductRepo()
	catalog := NewCatalog(products)

	_, err := catalog.ImportCSV(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	_, err = catalog.ImportCSV(context.Background(), strings.NewReader(
		"Product Name,Portfolio,Statement URL\n"+
			"Payments Portal,Digital,https://example.gov.uk/accessibility\n"))
	require.NoError(t, err)

	count, err := catalog.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, "Digital", products.rows["Payments Portal"].Portfolio)
}

func TestExportJSON(t *testing.T) {
	products := newFakeProductRepo(&entity.Product{
		Name:   "Payments Portal",
		URL:    "https://example.gov.uk/accessibility",
		Status: entity.StatusSuccess,
		StatementFields: entity.StatementFields{
			WCAG:            "2.1",
			ComplianceLevel: "Partially Compliant",
			FeedbackPresent: "yes",
		},
	})

	var buf bytes.Buffer
	require.NoError(t, NewCatalog(products).ExportJSON(context.Background(), &buf))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "Payments Portal", decoded[0]["product_name"])
	assert.Equal(t, "2.1", decoded[0]["wcag"])
}
