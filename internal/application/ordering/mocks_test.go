package ordering

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/orderpad/backend/internal/domain/catalog"
	"github.com/orderpad/backend/internal/domain/ordering"
	"github.com/orderpad/backend/internal/infrastructure/printing"
	"github.com/orderpad/backend/internal/infrastructure/storage"
)

// MockCatalogProvider is a mock implementation of CatalogProvider
type MockCatalogProvider struct {
	mock.Mock
}

func (m *MockCatalogProvider) Catalog(ctx context.Context) (catalog.Catalog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(catalog.Catalog), args.Error(1)
}

// MockOrderDocumentWriter is a mock implementation of OrderDocumentWriter
type MockOrderDocumentWriter struct {
	mock.Mock
}

func (m *MockOrderDocumentWriter) Write(ctx context.Context, sheet *ordering.OrderSheet) (*printing.OrderDocument, error) {
	args := m.Called(ctx, sheet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*printing.OrderDocument), args.Error(1)
}

// MockInventoryWorkbookWriter is a mock implementation of InventoryWorkbookWriter
type MockInventoryWorkbookWriter struct {
	mock.Mock
}

func (m *MockInventoryWorkbookWriter) Write(rows []ordering.InventoryRow) ([]byte, error) {
	args := m.Called(rows)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockArchiveStorage is a mock implementation of storage.ArchiveStorage
type MockArchiveStorage struct {
	mock.Mock
}

func (m *MockArchiveStorage) Store(ctx context.Context, key string, data []byte, contentType string) (*storage.StoredObject, error) {
	args := m.Called(ctx, key, data, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.StoredObject), args.Error(1)
}

func testCatalog() catalog.Catalog {
	return catalog.Catalog{
		{ID: "1", Name: "Rice", Category: catalog.CategoryDryGoods, Recommended: catalog.Recommendation{
			catalog.DayTypeWeekday: 10, catalog.DayTypeWeekend: 14, catalog.DayTypeLongWeekend: 18,
		}},
		{ID: "2", Name: "Kale", Category: catalog.CategoryGreens, Recommended: catalog.Recommendation{
			catalog.DayTypeWeekday: 4, catalog.DayTypeWeekend: 6, catalog.DayTypeLongWeekend: 8,
		}},
		{ID: "3", Name: "Beef", Category: catalog.CategoryMeat, Recommended: catalog.Recommendation{
			catalog.DayTypeWeekday: 2, catalog.DayTypeWeekend: 3, catalog.DayTypeLongWeekend: 5,
		}},
	}
}

func newCatalogProvider() *MockCatalogProvider {
	p := &MockCatalogProvider{}
	p.On("Catalog", mock.Anything).Return(testCatalog(), nil)
	return p
}
