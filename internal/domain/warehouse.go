package domain

// Tipos de API de armazém suportados pelo sistema.
// Cada tipo corresponde a uma variante de adaptador (ver internal/adapter).
const (
	WarehouseTypeInternal = "internal"
	WarehouseTypePartnerB = "partner-b"
	WarehouseTypePartnerC = "partner-c"
)

// GeoPoint representa uma coordenada geográfica (latitude/longitude).
type GeoPoint struct {
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
}

// APIConfig descreve como alcançar a API nativa de um armazém.
// BaseURL e Endpoints só são usados pelos tipos de parceiro;
// os defaults de custo/tempo são opcionais (nil = não configurado).
type APIConfig struct {
	Type                string            `json:"type"`
	BaseURL             string            `json:"baseUrl,omitempty"`
	Endpoints           map[string]string `json:"endpoints,omitempty"`
	DefaultTransferCost *float64          `json:"defaultTransferCost,omitempty"`
	DefaultTransferTime *float64          `json:"defaultTransferTime,omitempty"`
}

// WarehouseConfig representa um armazém registrado (a Entidade de configuração).
// O ID é único no registro; re-registrar um ID existente sobrescreve no lugar.
type WarehouseConfig struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Location GeoPoint  `json:"location"`
	API      APIConfig `json:"api"`
}

// RegistryFile é o formato do arquivo de bootstrap do registro,
// carregado uma única vez na inicialização (sem reload ao vivo).
type RegistryFile struct {
	Warehouses []WarehouseConfig `json:"warehouses"`
}
