package inventoryservice

import (
	"context"
	"fmt"
	"sync"

	"gotransfer/internal/adapter"
	"gotransfer/internal/domain"
	apperror "gotransfer/internal/errors"
	"gotransfer/internal/pkg/logger"
	"gotransfer/internal/pkg/metrics"
)

// Registry define o contrato que o Serviço de Inventário espera do registro de armazéns.
type Registry interface {
	Get(id string) (domain.WarehouseConfig, bool)
	List() []domain.WarehouseConfig
}

// AdapterFactory define o contrato de construção de adaptadores por configuração.
type AdapterFactory interface {
	Create(config domain.WarehouseConfig) (adapter.WarehouseAdapter, error)
}

// Service agrega inventário de todos os armazéns registrados.
type Service struct {
	registry Registry
	factory  AdapterFactory
	logger   logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Inventário.
func NewService(registry Registry, factory AdapterFactory, logger logger.Logger) *Service {
	return &Service{registry: registry, factory: factory, logger: logger}
}

// fetchResult é o resultado por armazém do fan-out: sucesso carrega itens,
// falha carrega o erro. A junção filtra as falhas em vez de abortar.
type fetchResult struct {
	items []domain.NormalizedInventoryItem
	err   error
}

// GetAll despacha fetch para todos os armazéns registrados concorrentemente.
// Uma falha por armazém (erro ou vazio) contribui com zero itens e não aborta
// a chamada; os resultados são concatenados na ordem do registro
// (sem ordenação global).
func (s *Service) GetAll(ctx domain.Context, upc, category string) ([]domain.NormalizedInventoryItem, error) {
	s.logger.Debug("Iniciando agregação de inventário.", map[string]interface{}{"upc": upc, "category": category})

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para GetAll", nil)
	}

	configs := s.registry.List()
	results := make([]fetchResult, len(configs))

	// Fan-out: N leituras independentes e sem efeito colateral, despachadas
	// concorrentemente; espera por todas e coleta o que tiver sucedido
	// (não é fail-fast).
	var wg sync.WaitGroup
	for i, config := range configs {
		wg.Add(1)
		go func(slot int, config domain.WarehouseConfig) {
			defer wg.Done()

			adp, err := s.factory.Create(config)
			if err != nil {
				results[slot] = fetchResult{err: err}
				return
			}
			items, err := adp.Fetch(ctxGo, upc, category)
			results[slot] = fetchResult{items: items, err: err}
		}(i, config)
	}
	wg.Wait()

	// Junção: falhas viram zero itens, logadas e emitidas como métrica.
	aggregated := make([]domain.NormalizedInventoryItem, 0)
	for i, result := range results {
		if result.err != nil {
			metrics.WarehouseFetchFailures.WithLabelValues(configs[i].ID, configs[i].API.Type).Inc()
			s.logger.Warn("Armazém falhou durante a agregação; contribuindo com zero itens.", map[string]interface{}{
				"warehouse": configs[i].ID,
				"error":     result.err.Error(),
			})
			continue
		}
		aggregated = append(aggregated, result.items...)
	}

	s.logger.Info("Agregação de inventário concluída.", map[string]interface{}{
		"warehouses": len(configs),
		"items":      len(aggregated),
	})
	return aggregated, nil
}

// GetFromOne busca inventário de um único armazém.
// Armazém não registrado é NotFoundError.
func (s *Service) GetFromOne(ctx domain.Context, warehouseID, upc, category string) ([]domain.NormalizedInventoryItem, error) {
	s.logger.Debug("Iniciando consulta de inventário em armazém único.", map[string]interface{}{"warehouse": warehouseID, "upc": upc})

	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
		s.logger.Warn("Contexto de domínio inválido, usando context.Background() para GetFromOne", nil)
	}

	config, ok2 := s.registry.Get(warehouseID)
	if !ok2 {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("O armazém %s não está registrado.", warehouseID))
	}

	adp, err := s.factory.Create(config)
	if err != nil {
		return nil, err
	}

	return adp.Fetch(ctxGo, upc, category)
}
