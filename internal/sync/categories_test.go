package sync

import (
	"errors"
	"testing"

	"kozsync/internal/services/woocommerce"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryImportCreatesTwoLevelTree(t *testing.T) {
	catalog := newFakeCatalog()
	importer := NewCategoryImporter(catalog, nil, testLogger())

	feed := CategoryFeed{"Elektronik": {{Name: "Telefon"}}}
	report, err := importer.Import(feed, CategoryImportOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, report.TotalMain)
	assert.Equal(t, 1, report.TotalSub)
	assert.Equal(t, 1, report.CreatedMain)
	assert.Equal(t, 1, report.CreatedSub)
	assert.Empty(t, report.Errors)

	mainID, ok := report.Mapping["Elektronik"]
	require.True(t, ok)
	subID, ok := report.Mapping["Elektronik > Telefon"]
	require.True(t, ok)
	assert.NotEqual(t, mainID, subID)

	// The sub-category was created under the resolved main id.
	require.Len(t, catalog.createdCategories, 2)
	assert.Equal(t, int64(0), catalog.createdCategories[0].Parent)
	assert.Equal(t, mainID, catalog.createdCategories[1].Parent)
}

func TestCategoryImportIsIdempotent(t *testing.T) {
	catalog := newFakeCatalog()
	importer := NewCategoryImporter(catalog, nil, testLogger())

	feed := CategoryFeed{
		"Elektronik": {{Name: "Telefon"}, {Name: "Tablet"}},
		"Kozmetik":   {{Name: "Şampuan"}},
	}

	first, err := importer.Import(feed, CategoryImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, first.CreatedMain)
	assert.Equal(t, 3, first.CreatedSub)

	second, err := importer.Import(feed, CategoryImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, second.CreatedMain)
	assert.Equal(t, 0, second.CreatedSub)
	assert.Equal(t, first.Mapping, second.Mapping)
}

func TestCategoryImportTopLevelFuzzyMatch(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.categories = []woocommerce.Category{
		{ID: 7, Name: "Evcil Hayvan", Slug: "evcil-hayvan", Parent: 0},
	}
	importer := NewCategoryImporter(catalog, nil, testLogger())

	// "Ev" matches inside "evcil-hayvan"; the fuzzy top-level match accepts
	// this imprecision to avoid duplicate main categories.
	report, err := importer.Import(CategoryFeed{"Ev": nil}, CategoryImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, report.CreatedMain)
	assert.Equal(t, int64(7), report.Mapping["Ev"])
	assert.Empty(t, catalog.createdCategories)
}

func TestCategoryImportSubLevelIsExact(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.categories = []woocommerce.Category{
		{ID: 5, Name: "Elektronik", Slug: "elektronik", Parent: 0},
		{ID: 6, Name: "Telefon Aksesuar", Slug: "telefon-aksesuar", Parent: 5},
	}
	importer := NewCategoryImporter(catalog, nil, testLogger())

	report, err := importer.Import(CategoryFeed{"Elektronik": {{Name: "Telefon"}}}, CategoryImportOptions{})
	require.NoError(t, err)

	// No substring fallback below top level: "telefon" must be created even
	// though "telefon-aksesuar" contains it.
	assert.Equal(t, 1, report.CreatedSub)
	require.Len(t, catalog.createdCategories, 1)
	assert.Equal(t, "telefon", catalog.createdCategories[0].Slug)
	assert.Equal(t, int64(5), catalog.createdCategories[0].Parent)
}

func TestCategoryImportDryRunNeverCreates(t *testing.T) {
	catalog := newFakeCatalog()
	importer := NewCategoryImporter(catalog, nil, testLogger())

	feed := CategoryFeed{"Elektronik": {{Name: "Telefon"}}}

	first, err := importer.Import(feed, CategoryImportOptions{DryRun: true})
	require.NoError(t, err)
	second, err := importer.Import(feed, CategoryImportOptions{DryRun: true})
	require.NoError(t, err)

	assert.Empty(t, catalog.createdCategories)
	assert.Equal(t, 1, first.CreatedMain)
	assert.Equal(t, 1, first.CreatedSub)

	// Pseudo-ids are hash-derived and stable across runs.
	assert.Equal(t, first.Mapping["Elektronik"], second.Mapping["Elektronik"])
	assert.Equal(t, first.Mapping["Elektronik > Telefon"], second.Mapping["Elektronik > Telefon"])
}

func TestCategoryImportLimitTruncatesMainsOnly(t *testing.T) {
	catalog := newFakeCatalog()
	importer := NewCategoryImporter(catalog, nil, testLogger())

	feed := CategoryFeed{
		"Aydınlatma": {{Name: "Avize"}, {Name: "Abajur"}},
		"Bebek":      {{Name: "Bez"}},
		"Cam":        {{Name: "Vazo"}},
	}

	report, err := importer.Import(feed, CategoryImportOptions{Limit: 1})
	require.NoError(t, err)

	// Alphabetical order: only "Aydınlatma" is processed, with all its subs.
	assert.Equal(t, 1, report.TotalMain)
	assert.Equal(t, 2, report.TotalSub)
}

func TestCategoryImportFailureDoesNotAbortBatch(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.createCategoryErr = errors.New("remote says no")
	importer := NewCategoryImporter(catalog, nil, testLogger())

	feed := CategoryFeed{
		"Elektronik": {{Name: "Telefon"}},
		"Kozmetik":   nil,
	}

	report, err := importer.Import(feed, CategoryImportOptions{})
	require.NoError(t, err)

	// Both mains fail to create, both are reported, neither aborts the run.
	assert.Equal(t, 2, report.TotalMain)
	assert.Equal(t, 0, report.CreatedMain)
	assert.Len(t, report.Errors, 2)
}

func TestCategoryImportRecordsRun(t *testing.T) {
	catalog := newFakeCatalog()
	store := newFakeStore()
	importer := NewCategoryImporter(catalog, store, testLogger())

	_, err := importer.Import(CategoryFeed{"Elektronik": {{Name: "Telefon"}}}, CategoryImportOptions{})
	require.NoError(t, err)

	require.Len(t, store.runs, 1)
	assert.Equal(t, 2, store.runs[0].Total)
	assert.Equal(t, 2, store.runs[0].Created)
	assert.False(t, store.runs[0].DryRun)
}

func TestPseudoIDIsDeterministic(t *testing.T) {
	a := pseudoID(0, "elektronik")
	b := pseudoID(0, "elektronik")
	c := pseudoID(5, "elektronik")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Positive(t, a)
}
