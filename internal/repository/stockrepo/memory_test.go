package stockrepo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"gotransfer/internal/domain"
	apperror "gotransfer/internal/errors"
	"gotransfer/internal/pkg/logger"
	"gotransfer/internal/repository/stockrepo"
)

func newTestLogger() logger.Logger {
	return logger.NewLogger("error")
}

func seedItem(upc string, quantity int) domain.NormalizedInventoryItem {
	return domain.NormalizedInventoryItem{
		UPC:      upc,
		Category: "widgets",
		Name:     "Widget Básico",
		Quantity: quantity,
	}
}

func TestApplyDelta_ExactDeduction(t *testing.T) {
	store := stockrepo.NewMemoryStore(newTestLogger(), seedItem("12345678", 15))

	actual, err := store.ApplyDelta(context.Background(), "12345678", -5)

	assert.NoError(t, err)
	assert.Equal(t, -5, actual)

	items, _ := store.FetchAll(context.Background())
	assert.Equal(t, 10, items[0].Quantity)
}

func TestApplyDelta_ClampsToAvailable(t *testing.T) {
	store := stockrepo.NewMemoryStore(newTestLogger(), seedItem("12345678", 5))

	// Pedir -10 contra 5 em estoque aplica -5 e zera a quantidade
	actual, err := store.ApplyDelta(context.Background(), "12345678", -10)

	assert.NoError(t, err)
	assert.Equal(t, -5, actual)

	items, _ := store.FetchAll(context.Background())
	assert.Equal(t, 0, items[0].Quantity)
}

func TestApplyDelta_PositiveDelta(t *testing.T) {
	store := stockrepo.NewMemoryStore(newTestLogger(), seedItem("12345678", 5))

	actual, err := store.ApplyDelta(context.Background(), "12345678", 7)

	assert.NoError(t, err)
	assert.Equal(t, 7, actual)

	items, _ := store.FetchAll(context.Background())
	assert.Equal(t, 12, items[0].Quantity)
}

func TestApplyDelta_UnknownUPC(t *testing.T) {
	store := stockrepo.NewMemoryStore(newTestLogger())

	_, err := store.ApplyDelta(context.Background(), "00000000", -1)

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
}

func TestFetchAll_ReturnsCopies(t *testing.T) {
	store := stockrepo.NewMemoryStore(newTestLogger(), seedItem("a", 1), seedItem("b", 2))

	items, err := store.FetchAll(context.Background())
	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, "a", items[0].UPC)
	assert.Equal(t, "b", items[1].UPC)

	// Mutar a cópia não afeta o store
	items[0].Quantity = 999
	fresh, _ := store.FetchAll(context.Background())
	assert.Equal(t, 1, fresh[0].Quantity)
}
