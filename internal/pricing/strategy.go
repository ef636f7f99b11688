package pricing

import (
	"fmt"

	"gotransfer/internal/domain"
)

// Metric é o escalar que uma estratégia calcula para um par distância/item,
// usado para ranquear origens candidatas, junto com o rótulo exibível.
type Metric struct {
	Value float64
	Label string
}

// Strategy define o contrato das estratégias de transferência (Cheapest | Fastest).
type Strategy interface {
	Name() string
	Calculate(warehouseID string, distance float64, item *domain.NormalizedInventoryItem) Metric
}

// CheapestStrategy ranqueia origens pelo custo (CostModel).
type CheapestStrategy struct {
	cost *CostModel
}

func (s *CheapestStrategy) Name() string { return domain.RuleCheapest }

func (s *CheapestStrategy) Calculate(warehouseID string, distance float64, item *domain.NormalizedInventoryItem) Metric {
	value := s.cost.Cost(warehouseID, distance, item)
	return Metric{Value: value, Label: fmt.Sprintf("Cost: $%.2f", value)}
}

// FastestStrategy ranqueia origens pelo tempo (TimeModel).
type FastestStrategy struct {
	time *TimeModel
}

func (s *FastestStrategy) Name() string { return domain.RuleFastest }

func (s *FastestStrategy) Calculate(warehouseID string, distance float64, item *domain.NormalizedInventoryItem) Metric {
	value := s.time.Time(warehouseID, distance)
	return Metric{Value: value, Label: fmt.Sprintf("Time: %.2f hours", value)}
}

// NewStrategy constrói a estratégia correspondente à regra informada.
// Uma regra não reconhecida cai silenciosamente em Cheapest: comportamento
// documentado da fábrica, preservado por compatibilidade com chamadores que
// validam a regra antes (a validação estrita acontece no serviço de transferência).
func NewStrategy(rule string, cost *CostModel, time *TimeModel) Strategy {
	switch rule {
	case domain.RuleFastest:
		return &FastestStrategy{time: time}
	case domain.RuleCheapest:
		return &CheapestStrategy{cost: cost}
	default:
		return &CheapestStrategy{cost: cost}
	}
}
