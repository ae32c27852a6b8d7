package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	catalogapp "github.com/orderpad/backend/internal/application/catalog"
	orderingapp "github.com/orderpad/backend/internal/application/ordering"
	"github.com/orderpad/backend/internal/domain/catalog"
	"github.com/orderpad/backend/internal/domain/ordering"
	"github.com/orderpad/backend/internal/infrastructure/auth"
	"github.com/orderpad/backend/internal/infrastructure/cache"
	"github.com/orderpad/backend/internal/infrastructure/persistence"
	"github.com/orderpad/backend/internal/infrastructure/printing"
	"github.com/orderpad/backend/internal/infrastructure/spreadsheet"
	"github.com/orderpad/backend/internal/interfaces/http/dto"
	"github.com/orderpad/backend/internal/interfaces/http/middleware"
)

const testPassphrase = "letmein"

func init() {
	gin.SetMode(gin.TestMode)
	if err := middleware.SetupValidator(); err != nil {
		panic(err)
	}
}

type staticSource struct {
	items    catalog.Catalog
	fileName string
}

func (s staticSource) Load(context.Context) (catalog.Catalog, error) {
	return s.items.Clone(), nil
}

func (s staticSource) FileName() string {
	return s.fileName
}

// MockOrderDocumentWriter is a mock implementation of orderingapp.OrderDocumentWriter
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

func testCatalog() catalog.Catalog {
	return catalog.Catalog{
		{ID: "1", Name: "Milk", Category: catalog.CategoryDryGoods, Recommended: catalog.Recommendation{
			catalog.DayTypeWeekday: 10, catalog.DayTypeWeekend: 14, catalog.DayTypeLongWeekend: 20,
		}},
		{ID: "2", Name: "Lettuce", Category: catalog.CategoryGreens, Recommended: catalog.Recommendation{
			catalog.DayTypeWeekday: 4, catalog.DayTypeWeekend: 6, catalog.DayTypeLongWeekend: 8,
		}},
		{ID: "3", Name: "Chicken", Category: catalog.CategoryMeat, Recommended: catalog.Recommendation{
			catalog.DayTypeWeekday: 3, catalog.DayTypeWeekend: 5, catalog.DayTypeLongWeekend: 7,
		}},
	}
}

type testAPI struct {
	setup    *catalogapp.SetupService
	sessions *orderingapp.SessionService
	exports  *orderingapp.ExportService
	pdf      *MockOrderDocumentWriter
	engine   *gin.Engine
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	log := zap.NewNop()
	overrides := persistence.NewKVOverrideRepository(cache.NewInMemoryKeyValueStore(), log)
	setup := catalogapp.NewSetupService(staticSource{items: testCatalog(), fileName: "inventory.csv"}, overrides, nil, log)
	sessions := orderingapp.NewSessionService(setup, nil, log)
	pdf := new(MockOrderDocumentWriter)
	exports := orderingapp.NewExportService(setup, pdf, spreadsheet.NewFullInventoryWriter(),
		orderingapp.WithClock(func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC) }),
	)

	engine := gin.New()
	engine.Use(middleware.RequestID())

	api := &testAPI{setup: setup, sessions: sessions, exports: exports, pdf: pdf, engine: engine}
	authorizer := auth.NewStaticPassphraseAuthorizer(testPassphrase)

	gate := NewGateHandler(authorizer)
	catalogHandler := NewCatalogHandler(setup, "orderpad-test")
	sessionHandler := NewSessionHandler(sessions)
	exportHandler := NewExportHandler(exports)
	setupHandler := NewSetupHandler(setup)

	v1 := engine.Group("/api/v1")
	v1.GET("/health", catalogHandler.Health)
	v1.GET("/catalog", catalogHandler.Get)
	v1.POST("/gate/verify", gate.Verify)
	v1.POST("/sessions", sessionHandler.Start)
	v1.POST("/sessions/day-type", sessionHandler.ChangeDayType)
	v1.POST("/sessions/inventory", sessionHandler.UpdateInventory)
	v1.POST("/sessions/order", sessionHandler.UpdateOrder)
	v1.POST("/sessions/note", sessionHandler.UpdateNote)
	v1.POST("/sessions/final-note", sessionHandler.UpdateFinalNote)
	v1.POST("/sessions/do-not-recommend", sessionHandler.ToggleDoNotRecommend)
	v1.POST("/sessions/apply", sessionHandler.Apply)
	v1.POST("/exports/order-pdf", exportHandler.OrderDocument)
	v1.POST("/exports/full-inventory", exportHandler.FullInventory)
	v1.GET("/setup/catalog", setupHandler.GetCatalog)
	v1.GET("/setup/catalog.csv", setupHandler.ExportCSV)
	v1.PUT("/setup/recommendations", setupHandler.UpdateRecommendation)
	v1.POST("/setup/items", setupHandler.AddItem)
	v1.POST("/setup/items/move", setupHandler.MoveItem)
	v1.PUT("/setup/items/order", setupHandler.ReorderItems)
	v1.DELETE("/setup/items/:name", setupHandler.RemoveItem)
	v1.DELETE("/setup/overrides", setupHandler.Reset)
	return api
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

// startSession opens a weekday session through the API
func (a *testAPI) startSession(t *testing.T) ordering.Session {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/v1/sessions", orderingapp.StartSessionRequest{DayType: "WEEKDAYS"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeSession(t, w).Session
}

type sessionEnvelope struct {
	Success bool                        `json:"success"`
	Data    orderingapp.SessionResponse `json:"data"`
	Error   *dto.ErrorInfo              `json:"error"`
}

func decodeSession(t *testing.T, w *httptest.ResponseRecorder) orderingapp.SessionResponse {
	t.Helper()
	var env sessionEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.True(t, env.Success, w.Body.String())
	return env.Data
}

type catalogEnvelope struct {
	Success bool                       `json:"success"`
	Data    catalogapp.CatalogResponse `json:"data"`
}

func decodeCatalog(t *testing.T, w *httptest.ResponseRecorder) catalogapp.CatalogResponse {
	t.Helper()
	var env catalogEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.True(t, env.Success, w.Body.String())
	return env.Data
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) *dto.ErrorInfo {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	return resp.Error
}
