package transferservice

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"gotransfer/internal/adapter"
	"gotransfer/internal/domain"
	apperror "gotransfer/internal/errors"
	"gotransfer/internal/geo"
	"gotransfer/internal/pkg/logger"
	"gotransfer/internal/pkg/metrics"
	"gotransfer/internal/pricing"
)

// Registry define o contrato que o Serviço de Transferência espera do registro.
type Registry interface {
	Get(id string) (domain.WarehouseConfig, bool)
	Has(id string) bool
}

// InventoryProvider define o contrato de agregação de inventário.
type InventoryProvider interface {
	GetAll(ctx domain.Context, upc, category string) ([]domain.NormalizedInventoryItem, error)
}

// AdapterFactory define o contrato de construção do adaptador da origem escolhida.
type AdapterFactory interface {
	Create(config domain.WarehouseConfig) (adapter.WarehouseAdapter, error)
}

// Service é o orquestrador de transferências: valida, seleciona a origem
// (automaticamente quando não informada), deduz o estoque e reporta o resultado.
type Service struct {
	registry  Registry
	inventory InventoryProvider
	factory   AdapterFactory
	cost      *pricing.CostModel
	time      *pricing.TimeModel
	logger    logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Transferência.
func NewService(registry Registry, inventory InventoryProvider, factory AdapterFactory, cost *pricing.CostModel, timeModel *pricing.TimeModel, logger logger.Logger) *Service {
	return &Service{
		registry:  registry,
		inventory: inventory,
		factory:   factory,
		cost:      cost,
		time:      timeModel,
		logger:    logger,
	}
}

// sourceGroup acumula os itens agregados de uma mesma origem.
// O primeiro item visto é o representativo para o cálculo da métrica.
type sourceGroup struct {
	total int
	first *domain.NormalizedInventoryItem
}

// ExecuteTransfer executa uma transferência completa:
//  1. valida destino, origem (se informada) e regra;
//  2. agrega o inventário do UPC em todos os armazéns;
//  3. determina a origem: a informada, ou a de menor métrica entre as
//     candidatas com estoque suficiente;
//  4. re-checa a quantidade disponível na origem escolhida;
//  5. calcula distância e métrica finais;
//  6. aplica a dedução via adaptador da origem (autoritativa no interno,
//     apenas registrada nos parceiros);
//  7. retorna a confirmação.
//
// O destino nunca é creditado: o débito na origem é a única mutação
// (o lado de crédito pertence a outro sistema). Uma falha no passo 6 propaga
// sem encapsulamento e aborta a transferência; há exatamente uma chamada
// mutante por transferência, então não existe commit parcial a compensar.
func (s *Service) ExecuteTransfer(ctx domain.Context, req domain.TransferRequest) (domain.TransferResult, error) {
	s.logger.Debug("Iniciando transferência no serviço.", map[string]interface{}{
		"from": req.From, "to": req.To, "upc": req.UPC, "quantity": req.Quantity, "rule": req.Rule,
	})

	// 1. Validação
	if err := s.validate(req); err != nil {
		metrics.Transfers.WithLabelValues("validation_error").Inc()
		s.logger.Warn("Falha na validação da transferência.", map[string]interface{}{"error": err.Error()})
		return domain.TransferResult{}, err
	}

	// 2. Agregação do inventário do UPC em todos os armazéns
	items, err := s.inventory.GetAll(ctx, req.UPC, "")
	if err != nil {
		metrics.Transfers.WithLabelValues("failed").Inc()
		return domain.TransferResult{}, err
	}
	if len(items) == 0 {
		metrics.Transfers.WithLabelValues("not_found").Inc()
		return domain.TransferResult{}, apperror.NewNotFoundError(
			fmt.Sprintf("Nenhum inventário encontrado para o UPC %s.", req.UPC))
	}

	strategy := pricing.NewStrategy(req.Rule, s.cost, s.time)
	groups, order := groupBySource(items)

	// 3. Determinar a origem
	sourceID := req.From
	if sourceID == "" {
		sourceID, err = s.selectSource(req, strategy, groups, order)
		if err != nil {
			metrics.Transfers.WithLabelValues("insufficient_stock").Inc()
			return domain.TransferResult{}, err
		}
	}

	// 4. Re-checar a quantidade disponível na origem escolhida
	group, ok := groups[sourceID]
	available := 0
	if ok {
		available = group.total
	}
	if available < req.Quantity {
		metrics.Transfers.WithLabelValues("insufficient_stock").Inc()
		return domain.TransferResult{}, apperror.NewInsufficientStockError(
			fmt.Sprintf("O armazém %s tem %d unidades de %s; %d solicitadas.", sourceID, available, req.UPC, req.Quantity),
			available)
	}

	// 5. Distância e métrica finais para a origem escolhida
	sourceConfig, _ := s.registry.Get(sourceID)
	destConfig, _ := s.registry.Get(req.To)
	distance := geo.Haversine(
		sourceConfig.Location.Lat, sourceConfig.Location.Long,
		destConfig.Location.Lat, destConfig.Location.Long,
	)
	metric := strategy.Calculate(sourceID, distance, group.first)

	// 6. Dedução via adaptador da origem. Falha aqui propaga sem encapsulamento.
	adp, err := s.factory.Create(sourceConfig)
	if err != nil {
		metrics.Transfers.WithLabelValues("failed").Inc()
		return domain.TransferResult{}, err
	}
	ctxGo := toGoContext(ctx, s.logger)
	actual, err := adp.ApplyDelta(ctxGo, req.UPC, -req.Quantity)
	if err != nil {
		metrics.Transfers.WithLabelValues("failed").Inc()
		s.logger.Error("Falha ao aplicar dedução na origem; transferência abortada.", err)
		return domain.TransferResult{}, err
	}

	// 7. Confirmação
	result := domain.TransferResult{
		ID:            uuid.New().String(),
		UPC:           req.UPC,
		Quantity:      req.Quantity,
		Source:        sourceID,
		Destination:   req.To,
		DistanceMiles: math.Round(distance),
		Metric:        metric.Value,
		MetricLabel:   metric.Label,
		Message: fmt.Sprintf("Transferred %d units of %s from %s to %s (%.0f miles). %s",
			req.Quantity, req.UPC, displayName(sourceConfig), displayName(destConfig), math.Round(distance), metric.Label),
	}

	metrics.Transfers.WithLabelValues("completed").Inc()
	s.logger.Info("Transferência concluída.", map[string]interface{}{
		"id":           result.ID,
		"source":       sourceID,
		"destination":  req.To,
		"upc":          req.UPC,
		"quantity":     req.Quantity,
		"actual_delta": actual,
		"metric":       metric.Label,
	})
	return result, nil
}

// validate aplica as regras de entrada: destino registrado, origem (quando
// informada) registrada e diferente do destino, quantidade positiva e regra
// conhecida. A fábrica de estratégias ainda tolera regra desconhecida, mas a
// validação estrita acontece aqui, antes dela.
func (s *Service) validate(req domain.TransferRequest) error {
	if req.UPC == "" {
		return apperror.NewValidationError("O UPC da transferência não pode ser vazio.")
	}
	if req.Quantity <= 0 {
		return apperror.NewValidationError("A quantidade da transferência deve ser positiva.")
	}
	if req.Rule != domain.RuleCheapest && req.Rule != domain.RuleFastest {
		return apperror.NewValidationError(
			fmt.Sprintf("Regra de transferência desconhecida: %q (use cheapest ou fastest).", req.Rule))
	}
	if !s.registry.Has(req.To) {
		return apperror.NewValidationError(
			fmt.Sprintf("O armazém de destino %s não está registrado.", req.To))
	}
	if req.From != "" {
		if !s.registry.Has(req.From) {
			return apperror.NewValidationError(
				fmt.Sprintf("O armazém de origem %s não está registrado.", req.From))
		}
		if req.From == req.To {
			return apperror.NewValidationError("Origem e destino não podem ser o mesmo armazém.")
		}
	}
	return nil
}

// selectSource escolhe a origem de menor métrica entre as candidatas com
// estoque suficiente. O mínimo é mantido sob < estrito: em empate, vence a
// primeira vista; a ordem determinística de registro faz o desempate.
func (s *Service) selectSource(req domain.TransferRequest, strategy pricing.Strategy, groups map[string]*sourceGroup, order []string) (string, error) {
	destConfig, _ := s.registry.Get(req.To)

	best := ""
	bestValue := 0.0
	for _, candidateID := range order {
		if candidateID == req.To {
			continue
		}
		group := groups[candidateID]
		if group.total < req.Quantity {
			continue
		}
		candidateConfig, ok := s.registry.Get(candidateID)
		if !ok {
			// Item de uma origem que saiu do registro entre a leitura e a
			// seleção: não é candidata.
			continue
		}

		distance := geo.Haversine(
			candidateConfig.Location.Lat, candidateConfig.Location.Long,
			destConfig.Location.Lat, destConfig.Location.Long,
		)
		metric := strategy.Calculate(candidateID, distance, group.first)

		if best == "" || metric.Value < bestValue {
			best = candidateID
			bestValue = metric.Value
		}
	}

	if best == "" {
		return "", apperror.NewInsufficientStockError(
			fmt.Sprintf("Nenhum armazém candidato tem %d unidades de %s disponíveis.", req.Quantity, req.UPC), 0)
	}

	s.logger.Debug("Origem selecionada automaticamente.", map[string]interface{}{
		"source": best, "rule": strategy.Name(), "metric": bestValue,
	})
	return best, nil
}

// groupBySource agrupa os itens agregados por origem, preservando a ordem de
// primeira aparição (que segue a ordem do registro na agregação).
func groupBySource(items []domain.NormalizedInventoryItem) (map[string]*sourceGroup, []string) {
	groups := make(map[string]*sourceGroup)
	order := make([]string, 0)
	for i := range items {
		item := items[i]
		group, ok := groups[item.Source]
		if !ok {
			group = &sourceGroup{first: &items[i]}
			groups[item.Source] = group
			order = append(order, item.Source)
		}
		group.total += item.Quantity
	}
	return groups, order
}

// toGoContext converte o domain.Context para context.Context,
// caindo em context.Background() se o chamador passou outra coisa.
func toGoContext(ctx domain.Context, log logger.Logger) context.Context {
	ctxGo, ok := ctx.(context.Context)
	if !ok {
		log.Warn("Contexto de domínio inválido, usando context.Background() para ExecuteTransfer", nil)
		return context.Background()
	}
	return ctxGo
}

func displayName(config domain.WarehouseConfig) string {
	if config.Name != "" {
		return config.Name
	}
	return config.ID
}
