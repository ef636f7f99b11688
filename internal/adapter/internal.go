package adapter

import (
	"context"

	"gotransfer/internal/domain"
	"gotransfer/internal/pkg/logger"
)

// InternalAdapter é a variante para armazéns próprios, apoiada no StockStore.
// O store devolve o catálogo inteiro; a filtragem por UPC/categoria acontece
// aqui no adaptador.
type InternalAdapter struct {
	warehouseID string
	store       StockStore
	logger      logger.Logger
}

// NewInternalAdapter cria um adaptador interno para o armazém informado.
func NewInternalAdapter(warehouseID string, store StockStore, log logger.Logger) *InternalAdapter {
	return &InternalAdapter{
		warehouseID: warehouseID,
		store:       store,
		logger:      log,
	}
}

// Fetch busca todos os itens do store e filtra por UPC e/ou categoria.
// Cada item sai carimbado com o ID deste armazém como origem.
func (a *InternalAdapter) Fetch(ctx context.Context, upc, category string) ([]domain.NormalizedInventoryItem, error) {
	all, err := a.store.FetchAll(ctx)
	if err != nil {
		// Degradar sem abortar: falha de leitura vira resultado vazio.
		a.logger.Warn("Falha ao ler o store interno; retornando vazio.", map[string]interface{}{
			"warehouse": a.warehouseID,
			"error":     err.Error(),
		})
		return []domain.NormalizedInventoryItem{}, nil
	}

	items := make([]domain.NormalizedInventoryItem, 0, len(all))
	for _, item := range all {
		if upc != "" && item.UPC != upc {
			continue
		}
		if category != "" && item.Category != category {
			continue
		}
		item.Source = a.warehouseID
		items = append(items, item)
	}
	return items, nil
}

// ApplyDelta delega ao store, que clampa a dedução ao disponível e retorna
// a variação realmente aplicada. UPC desconhecido propaga NotFoundError.
func (a *InternalAdapter) ApplyDelta(ctx context.Context, upc string, delta int) (int, error) {
	return a.store.ApplyDelta(ctx, upc, delta)
}
