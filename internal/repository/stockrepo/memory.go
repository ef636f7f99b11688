package stockrepo

import (
	"context"
	"fmt"
	"sync"

	"gotransfer/internal/domain"
	apperror "gotransfer/internal/errors"
	"gotransfer/internal/pkg/logger"
)

// MemoryStore é a implementação em memória do store de estoque interno.
// Usada em desenvolvimento e testes, e como fallback quando não há DATABASE_URL.
//
// O mutex é mantido durante toda a checagem + escrita de ApplyDelta: a dedução
// com clamp é atômica por store, então duas transferências concorrentes não
// conseguem gastar o mesmo estoque duas vezes.
type MemoryStore struct {
	mu     sync.Mutex
	items  map[string]*domain.NormalizedInventoryItem // por UPC
	order  []string
	logger logger.Logger
}

// NewMemoryStore cria um novo store em memória, opcionalmente semeado.
func NewMemoryStore(log logger.Logger, seed ...domain.NormalizedInventoryItem) *MemoryStore {
	s := &MemoryStore{
		items:  make(map[string]*domain.NormalizedInventoryItem),
		logger: log,
	}
	for _, item := range seed {
		s.Put(context.Background(), item)
	}
	return s
}

// Put insere ou sobrescreve um item pelo UPC.
func (s *MemoryStore) Put(ctx context.Context, item domain.NormalizedInventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[item.UPC]; !exists {
		s.order = append(s.order, item.UPC)
	}
	copied := item
	s.items[item.UPC] = &copied
	return nil
}

// FetchAll retorna uma cópia de todos os itens, na ordem de inserção.
func (s *MemoryStore) FetchAll(ctx context.Context) ([]domain.NormalizedInventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.NormalizedInventoryItem, 0, len(s.order))
	for _, upc := range s.order {
		out = append(out, *s.items[upc])
	}
	return out, nil
}

// ApplyDelta aplica um ajuste ao estoque de um UPC e retorna a variação
// realmente aplicada. Uma dedução maior que o disponível é clampada:
// pedir -10 contra 5 em estoque aplica -5 e zera a quantidade.
// UPC desconhecido retorna NotFoundError.
func (s *MemoryStore) ApplyDelta(ctx context.Context, upc string, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[upc]
	if !ok {
		return 0, apperror.NewNotFoundError(fmt.Sprintf("UPC %s não existe no estoque interno.", upc))
	}

	actual := delta
	newQuantity := item.Quantity + delta
	if newQuantity < 0 {
		actual = -item.Quantity
		newQuantity = 0
	}
	item.Quantity = newQuantity

	s.logger.Debug("Delta aplicado no estoque em memória.", map[string]interface{}{
		"upc":          upc,
		"delta":        delta,
		"actual_delta": actual,
		"new_quantity": newQuantity,
	})
	return actual, nil
}
