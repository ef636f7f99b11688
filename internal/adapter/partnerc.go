package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"gotransfer/internal/domain"
	"gotransfer/internal/pkg/logger"
	"gotransfer/internal/pkg/metrics"
)

// Caminho padrão do protocolo do parceiro tipo C.
const defaultPartnerCItemsPath = "/v2/items"

// partnerCItemRecord é a forma nativa de um item na API do parceiro C.
type partnerCItemRecord struct {
	UPC             string          `json:"upc"`
	Desc            string          `json:"desc"`
	Qty             int             `json:"qty"`
	Position        domain.GeoPoint `json:"position"`
	TransferFeeMile float64         `json:"transfer_fee_mile"`
}

// PartnerCAdapter implementa o protocolo de um passo do parceiro C:
// GET {baseUrl}{itemsPath}?upc={upc} devolve os itens com a taxa por milha.
type PartnerCAdapter struct {
	config domain.WarehouseConfig
	client *http.Client
	logger logger.Logger
}

// NewPartnerCAdapter cria um adaptador para um armazém de parceiro tipo C.
func NewPartnerCAdapter(config domain.WarehouseConfig, client *http.Client, log logger.Logger) *PartnerCAdapter {
	return &PartnerCAdapter{
		config: config,
		client: client,
		logger: log,
	}
}

// Fetch consulta o parceiro e normaliza o resultado. Qualquer falha remota é
// absorvida em lista vazia (degradar sem abortar). O protocolo é indexado por
// UPC: sem UPC não há o que consultar.
func (a *PartnerCAdapter) Fetch(ctx context.Context, upc, category string) ([]domain.NormalizedInventoryItem, error) {
	if upc == "" {
		return []domain.NormalizedInventoryItem{}, nil
	}

	start := time.Now()
	defer func() {
		metrics.PartnerFetchLatency.WithLabelValues(a.config.ID, domain.WarehouseTypePartnerC).Observe(time.Since(start).Seconds())
	}()

	itemsPath := defaultPartnerCItemsPath
	if path, ok := a.config.API.Endpoints["items"]; ok && path != "" {
		itemsPath = path
	}
	itemsURL := a.config.API.BaseURL + itemsPath + "?upc=" + url.QueryEscape(upc)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, itemsURL, nil)
	if err != nil {
		return a.failEmpty(err), nil
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return a.failEmpty(err), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return a.failEmpty(fmt.Errorf("status inesperado %d de %s", resp.StatusCode, itemsURL)), nil
	}

	var records []partnerCItemRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return a.failEmpty(err), nil
	}

	items := make([]domain.NormalizedInventoryItem, 0, len(records))
	for _, record := range records {
		fee := record.TransferFeeMile
		item := domain.NormalizedInventoryItem{
			Source:   a.config.ID,
			UPC:      record.UPC,
			Category: ClassifyLabel(record.Desc),
			Name:     record.Desc,
			Quantity: record.Qty,
			LocationDetails: map[string]interface{}{
				"position": map[string]interface{}{"lat": record.Position.Lat, "long": record.Position.Long},
			},
			TransferCost: &fee,
		}
		if category != "" && item.Category != category {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// ApplyDelta é um no-op registrado: não há acesso de escrita aos sistemas
// do parceiro.
func (a *PartnerCAdapter) ApplyDelta(ctx context.Context, upc string, delta int) (int, error) {
	a.logger.Info("ApplyDelta ignorado em armazém de parceiro (sem acesso de escrita).", map[string]interface{}{
		"warehouse": a.config.ID,
		"upc":       upc,
		"delta":     delta,
	})
	return 0, nil
}

func (a *PartnerCAdapter) failEmpty(err error) []domain.NormalizedInventoryItem {
	metrics.WarehouseFetchFailures.WithLabelValues(a.config.ID, domain.WarehouseTypePartnerC).Inc()
	a.logger.Warn("Falha remota no parceiro C; retornando vazio.", map[string]interface{}{
		"warehouse": a.config.ID,
		"error":     err.Error(),
	})
	return []domain.NormalizedInventoryItem{}
}
