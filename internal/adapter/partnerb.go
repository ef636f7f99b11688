package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"gotransfer/internal/domain"
	"gotransfer/internal/pkg/logger"
	"gotransfer/internal/pkg/metrics"
)

// Caminhos padrão do protocolo do parceiro tipo B, usados quando a
// configuração não informa endpoints.
const (
	defaultPartnerBLookupPath    = "/api/lookup"
	defaultPartnerBInventoryPath = "/api/inventory"
)

// partnerBInventoryRecord é a forma nativa de um item na API do parceiro B.
type partnerBInventoryRecord struct {
	SKU                string    `json:"sku"`
	Label              string    `json:"label"`
	Stock              int       `json:"stock"`
	Coords             []float64 `json:"coords"` // [lat, long]
	MileageCostPerMile float64   `json:"mileageCostPerMile"`
}

// PartnerBAdapter implementa o protocolo de dois passos do parceiro B:
// POST {baseUrl}{lookupPath}/{upc} devolve a lista de SKUs para o UPC,
// e GET {baseUrl}{inventoryPath}/{sku} devolve os itens de cada SKU.
type PartnerBAdapter struct {
	config domain.WarehouseConfig
	client *http.Client
	logger logger.Logger
}

// NewPartnerBAdapter cria um adaptador para um armazém de parceiro tipo B.
func NewPartnerBAdapter(config domain.WarehouseConfig, client *http.Client, log logger.Logger) *PartnerBAdapter {
	return &PartnerBAdapter{
		config: config,
		client: client,
		logger: log,
	}
}

// Fetch executa o protocolo de dois passos e normaliza o resultado.
// Qualquer falha remota é absorvida em lista vazia (degradar sem abortar).
// O protocolo do parceiro é indexado por UPC: sem UPC não há o que consultar.
func (a *PartnerBAdapter) Fetch(ctx context.Context, upc, category string) ([]domain.NormalizedInventoryItem, error) {
	if upc == "" {
		return []domain.NormalizedInventoryItem{}, nil
	}

	start := time.Now()
	defer func() {
		metrics.PartnerFetchLatency.WithLabelValues(a.config.ID, domain.WarehouseTypePartnerB).Observe(time.Since(start).Seconds())
	}()

	// Passo 1: lookup do UPC → lista de SKUs
	lookupURL := a.config.API.BaseURL + a.endpoint("lookup", defaultPartnerBLookupPath) + "/" + upc
	var skus []string
	if err := a.doJSON(ctx, http.MethodPost, lookupURL, &skus); err != nil {
		return a.failEmpty("lookup", err), nil
	}

	// Passo 2: inventário por SKU
	items := make([]domain.NormalizedInventoryItem, 0, len(skus))
	for _, sku := range skus {
		inventoryURL := a.config.API.BaseURL + a.endpoint("inventory", defaultPartnerBInventoryPath) + "/" + sku
		var records []partnerBInventoryRecord
		if err := a.doJSON(ctx, http.MethodGet, inventoryURL, &records); err != nil {
			return a.failEmpty("inventory", err), nil
		}

		for _, record := range records {
			item := a.normalize(upc, record)
			if category != "" && item.Category != category {
				continue
			}
			items = append(items, item)
		}
	}
	return items, nil
}

// ApplyDelta é um no-op registrado: não há acesso de escrita aos sistemas
// do parceiro.
func (a *PartnerBAdapter) ApplyDelta(ctx context.Context, upc string, delta int) (int, error) {
	a.logger.Info("ApplyDelta ignorado em armazém de parceiro (sem acesso de escrita).", map[string]interface{}{
		"warehouse": a.config.ID,
		"upc":       upc,
		"delta":     delta,
	})
	return 0, nil
}

func (a *PartnerBAdapter) normalize(upc string, record partnerBInventoryRecord) domain.NormalizedInventoryItem {
	cost := record.MileageCostPerMile
	item := domain.NormalizedInventoryItem{
		Source:       a.config.ID,
		UPC:          upc,
		Category:     ClassifyLabel(record.Label),
		Name:         record.Label,
		Quantity:     record.Stock,
		TransferCost: &cost,
	}
	if len(record.Coords) == 2 {
		item.LocationDetails = map[string]interface{}{
			"sku":    record.SKU,
			"coords": record.Coords,
		}
	} else {
		item.LocationDetails = map[string]interface{}{"sku": record.SKU}
	}
	return item
}

func (a *PartnerBAdapter) endpoint(key, fallback string) string {
	if path, ok := a.config.API.Endpoints[key]; ok && path != "" {
		return path
	}
	return fallback
}

func (a *PartnerBAdapter) doJSON(ctx context.Context, method, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("status inesperado %d de %s", resp.StatusCode, url)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (a *PartnerBAdapter) failEmpty(step string, err error) []domain.NormalizedInventoryItem {
	metrics.WarehouseFetchFailures.WithLabelValues(a.config.ID, domain.WarehouseTypePartnerB).Inc()
	a.logger.Warn("Falha remota no parceiro B; retornando vazio.", map[string]interface{}{
		"warehouse": a.config.ID,
		"step":      step,
		"error":     err.Error(),
	})
	return []domain.NormalizedInventoryItem{}
}
