package csvimport

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/orderpad/backend/internal/domain/catalog"
)

const sampleCSV = `id,name,category,weekdayQty,weekendQty,longWeekendQty
7,Rice,D,20,15,25
8,Lettuce,G,6,,x
9,,M,1,1,1
10,Chicken,M,12,14,16
11,Mystery,Z,1,2,3
`

func TestParseCatalog(t *testing.T) {
	t.Run("parses rows", func(t *testing.T) {
		items, err := ParseCatalog(strings.NewReader(sampleCSV))
		require.NoError(t, err)
		require.Len(t, items, 4)

		rice := items[0]
		assert.Equal(t, "7", rice.ID)
		assert.Equal(t, "Rice", rice.Name)
		assert.Equal(t, catalog.CategoryDryGoods, rice.Category)
		assert.Equal(t, 20, rice.RecommendedFor(catalog.DayTypeWeekday))
		assert.Equal(t, 15, rice.RecommendedFor(catalog.DayTypeWeekend))
		assert.Equal(t, 25, rice.RecommendedFor(catalog.DayTypeLongWeekend))

		assert.Equal(t, []string{"Rice", "Lettuce", "Chicken", "Mystery"}, items.Names())
	})

	t.Run("non-numeric quantities become zero", func(t *testing.T) {
		items, err := ParseCatalog(strings.NewReader(sampleCSV))
		require.NoError(t, err)

		lettuce, ok := items.Find("Lettuce")
		require.True(t, ok)
		assert.Equal(t, 6, lettuce.RecommendedFor(catalog.DayTypeWeekday))
		assert.Equal(t, 0, lettuce.RecommendedFor(catalog.DayTypeWeekend))
		assert.Equal(t, 0, lettuce.RecommendedFor(catalog.DayTypeLongWeekend))
	})

	t.Run("reports issues", func(t *testing.T) {
		res, err := ParseCatalogDetailed(strings.NewReader(sampleCSV))
		require.NoError(t, err)

		codes := make(map[string]int)
		for _, issue := range res.Issues {
			codes[issue.Code]++
		}
		assert.Equal(t, 1, codes[ErrCodeImportEmptyName])
		assert.Equal(t, 1, codes[ErrCodeImportInvalidNumber])
		assert.Equal(t, 1, codes[ErrCodeImportUnknownCategory])
	})

	t.Run("unknown category kept raw", func(t *testing.T) {
		items, err := ParseCatalog(strings.NewReader(sampleCSV))
		require.NoError(t, err)
		mystery, ok := items.Find("Mystery")
		require.True(t, ok)
		assert.Equal(t, catalog.Category("Z"), mystery.Category)
		assert.Equal(t, "Z", mystery.Category.DisplayName())
	})

	t.Run("empty input gives empty catalog", func(t *testing.T) {
		items, err := ParseCatalog(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("header only", func(t *testing.T) {
		items, err := ParseCatalog(strings.NewReader("id,name,category,weekdayQty,weekendQty,longWeekendQty\n"))
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("leading integer wins", func(t *testing.T) {
		items, err := ParseCatalog(strings.NewReader("h\n1,Oil,D,12.5,3 cases,-4\n"))
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, 12, items[0].RecommendedFor(catalog.DayTypeWeekday))
		assert.Equal(t, 3, items[0].RecommendedFor(catalog.DayTypeWeekend))
		assert.Equal(t, 0, items[0].RecommendedFor(catalog.DayTypeLongWeekend))
	})
}

func TestWriteCatalog(t *testing.T) {
	items, err := ParseCatalog(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCatalog(&buf, items))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "id,name,category,weekdayQty,weekendQty,longWeekendQty", lines[0])
	assert.Equal(t, "7,Rice,D,20,15,25", lines[1])
	assert.Equal(t, "8,Lettuce,G,6,0,0", lines[2])

	again, err := ParseCatalog(&buf)
	require.NoError(t, err)
	assert.Equal(t, items, again)
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Updated_Inventory_with_Additional_Dry_Items.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	core, logs := observer.New(zap.WarnLevel)
	src := NewFileSource(path, zap.New(core))

	assert.Equal(t, "Updated_Inventory_with_Additional_Dry_Items.csv", src.FileName())

	items, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 4)
	assert.Equal(t, 3, logs.FilterMessage("Catalog row issue").Len())

	t.Run("missing file", func(t *testing.T) {
		_, err := NewFileSource(filepath.Join(dir, "nope.csv"), nil).Load(context.Background())
		assert.Error(t, err)
	})
}
