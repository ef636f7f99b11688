package domain

// Regras de transferência suportadas pelo orquestrador.
const (
	RuleCheapest = "cheapest"
	RuleFastest  = "fastest"
)

// TransferRequest é o payload esperado para a requisição de transferência.
// From é opcional: quando vazio, o orquestrador seleciona a melhor origem
// automaticamente segundo a regra (cheapest/fastest).
type TransferRequest struct {
	From     string `json:"from,omitempty"`
	To       string `json:"to"`
	UPC      string `json:"upc"`
	Quantity int    `json:"quantity"`
	Rule     string `json:"rule"`
}

// TransferResult é a confirmação de uma transferência executada.
type TransferResult struct {
	ID            string  `json:"id"`
	UPC           string  `json:"upc"`
	Quantity      int     `json:"quantity"`
	Source        string  `json:"source"`
	Destination   string  `json:"destination"`
	DistanceMiles float64 `json:"distance_miles"` // arredondada para a milha inteira
	Metric        float64 `json:"metric"`
	MetricLabel   string  `json:"metric_label"` // e.g. "Cost: $12.34" ou "Time: 3.50 hours"
	Message       string  `json:"message"`
}

// Context é uma interface que encapsula o Go context.Context.
// É usado para propagar o timeout e sinais de cancelamento pelas camadas.
// Isso evita a dependência direta do pacote "context" nas interfaces de serviço.
type Context interface{}
