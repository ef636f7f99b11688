package adapter_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gotransfer/internal/adapter"
	"gotransfer/internal/domain"
	"gotransfer/internal/pkg/logger"
)

// MockStockStore é uma implementação mock da interface adapter.StockStore
type MockStockStore struct {
	mock.Mock
}

func (m *MockStockStore) FetchAll(ctx context.Context) ([]domain.NormalizedInventoryItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.NormalizedInventoryItem), args.Error(1)
}

func (m *MockStockStore) ApplyDelta(ctx context.Context, upc string, delta int) (int, error) {
	args := m.Called(ctx, upc, delta)
	return args.Int(0), args.Error(1)
}

func newTestLogger() logger.Logger {
	return logger.NewLogger("error")
}

func storeItems() []domain.NormalizedInventoryItem {
	return []domain.NormalizedInventoryItem{
		{UPC: "11111111", Category: "widgets", Name: "Widget A", Quantity: 10},
		{UPC: "22222222", Category: "gadgets", Name: "Gadget B", Quantity: 4},
		{UPC: "33333333", Category: "widgets", Name: "Widget C", Quantity: 7},
	}
}

func TestInternalFetch_FiltersByUPC(t *testing.T) {
	mockStore := new(MockStockStore)
	mockStore.On("FetchAll", mock.Anything).Return(storeItems(), nil)

	adp := adapter.NewInternalAdapter("wh-la", mockStore, newTestLogger())
	items, err := adp.Fetch(context.Background(), "22222222", "")

	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "Gadget B", items[0].Name)
	assert.Equal(t, "wh-la", items[0].Source) // carimbado com a origem
	mockStore.AssertExpectations(t)
}

func TestInternalFetch_FiltersByCategory(t *testing.T) {
	mockStore := new(MockStockStore)
	mockStore.On("FetchAll", mock.Anything).Return(storeItems(), nil)

	adp := adapter.NewInternalAdapter("wh-la", mockStore, newTestLogger())
	items, err := adp.Fetch(context.Background(), "", "widgets")

	assert.NoError(t, err)
	assert.Len(t, items, 2)
	mockStore.AssertExpectations(t)
}

func TestInternalFetch_NoFiltersReturnsAll(t *testing.T) {
	mockStore := new(MockStockStore)
	mockStore.On("FetchAll", mock.Anything).Return(storeItems(), nil)

	adp := adapter.NewInternalAdapter("wh-la", mockStore, newTestLogger())
	items, err := adp.Fetch(context.Background(), "", "")

	assert.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestInternalFetch_StoreErrorDegradesToEmpty(t *testing.T) {
	mockStore := new(MockStockStore)
	mockStore.On("FetchAll", mock.Anything).Return([]domain.NormalizedInventoryItem{}, errors.New("db timeout"))

	adp := adapter.NewInternalAdapter("wh-la", mockStore, newTestLogger())
	items, err := adp.Fetch(context.Background(), "11111111", "")

	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestInternalApplyDelta_DelegatesToStore(t *testing.T) {
	mockStore := new(MockStockStore)
	mockStore.On("ApplyDelta", mock.Anything, "11111111", -5).Return(-5, nil)

	adp := adapter.NewInternalAdapter("wh-la", mockStore, newTestLogger())
	actual, err := adp.ApplyDelta(context.Background(), "11111111", -5)

	assert.NoError(t, err)
	assert.Equal(t, -5, actual)
	mockStore.AssertExpectations(t)
}
