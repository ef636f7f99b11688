package domain

// NormalizedInventoryItem é a forma canônica que todo adaptador deve emitir.
// É efêmero: produzido a cada consulta, nunca persistido por este núcleo.
type NormalizedInventoryItem struct {
	Source          string                 `json:"source"` // ID do armazém de origem
	UPC             string                 `json:"upc"`
	Category        string                 `json:"category"`
	Name            string                 `json:"name"`
	Quantity        int                    `json:"quantity"`
	LocationDetails map[string]interface{} `json:"location_details,omitempty"` // forma varia por origem, opaco para o orquestrador
	TransferCost    *float64               `json:"transfer_cost,omitempty"`    // custo por milha, se a origem informar
	TransferTime    *float64               `json:"transfer_time,omitempty"`    // horas de base, se a origem informar
}
