package pricing

import (
	"gotransfer/internal/domain"
)

// ConfigLookup define o contrato que os modelos de custo/tempo esperam do
// registro de armazéns. A consulta é total: ausência é representada por false.
type ConfigLookup interface {
	Get(id string) (domain.WarehouseConfig, bool)
}

// Taxas por milha de fallback por tipo de armazém, usadas quando nem o item
// nem a configuração do armazém informam um valor.
var fallbackRates = map[string]float64{
	domain.WarehouseTypeInternal: 0.2,
	domain.WarehouseTypePartnerB: 0.7,
	domain.WarehouseTypePartnerC: 0.65,
}

// genericRate é a taxa por milha usada em último caso.
const genericRate = 0.5

// genericSpeedMPH é a velocidade assumida (milhas/hora) quando nenhum perfil
// de tempo específico do tipo se aplica.
const genericSpeedMPH = 30.0

// CostModel calcula o custo de transferência: distância × taxa por milha.
type CostModel struct {
	registry ConfigLookup
}

// NewCostModel cria um novo modelo de custo sobre o registro informado.
func NewCostModel(registry ConfigLookup) *CostModel {
	return &CostModel{registry: registry}
}

// Cost retorna distance × taxa. A resolução da taxa segue camadas, a primeira
// que casar vence:
//  1. transferCost do próprio item consultado, se presente;
//  2. defaultTransferCost configurado no armazém;
//  3. fallback por tipo (internal 0.2, partner-b 0.7, partner-c 0.65);
//  4. taxa genérica 0.5.
func (m *CostModel) Cost(warehouseID string, distance float64, item *domain.NormalizedInventoryItem) float64 {
	return distance * m.resolveRate(warehouseID, item)
}

func (m *CostModel) resolveRate(warehouseID string, item *domain.NormalizedInventoryItem) float64 {
	if item != nil && item.TransferCost != nil {
		return *item.TransferCost
	}

	if config, ok := m.registry.Get(warehouseID); ok {
		if config.API.DefaultTransferCost != nil {
			return *config.API.DefaultTransferCost
		}
		if rate, ok := fallbackRates[config.API.Type]; ok {
			return rate
		}
	}

	return genericRate
}

// TimeModel calcula o tempo de transferência em horas:
// tempo base + distância/velocidade assumida.
type TimeModel struct {
	registry ConfigLookup
}

// NewTimeModel cria um novo modelo de tempo sobre o registro informado.
func NewTimeModel(registry ConfigLookup) *TimeModel {
	return &TimeModel{registry: registry}
}

// Time retorna o tempo estimado em horas. A resolução segue camadas:
//  1. defaultTransferTime configurado no armazém, como tempo base,
//     mais distância/velocidade genérica;
//  2. perfil por tipo: internal d/60, partner-b 1+d/30, partner-c 2+d/25;
//  3. perfil genérico d/30.
func (m *TimeModel) Time(warehouseID string, distance float64) float64 {
	config, ok := m.registry.Get(warehouseID)
	if ok && config.API.DefaultTransferTime != nil {
		return *config.API.DefaultTransferTime + distance/genericSpeedMPH
	}

	if ok {
		switch config.API.Type {
		case domain.WarehouseTypeInternal:
			return distance / 60
		case domain.WarehouseTypePartnerB:
			return 1 + distance/30
		case domain.WarehouseTypePartnerC:
			return 2 + distance/25
		}
	}

	return distance / genericSpeedMPH
}
