package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry é o registro Prometheus dedicado da API.
	Registry = prometheus.NewRegistry()

	// WarehouseFetchFailures conta falhas de leitura por armazém durante a agregação.
	// A agregação absorve a falha (resultado vazio); o contador é o canal de visibilidade.
	WarehouseFetchFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "warehouse_fetch_failures_total", Help: "Falhas de leitura por armazém na agregação."},
		[]string{"warehouse", "type"},
	)

	// PartnerFetchLatency registra a latência das chamadas aos parceiros, em segundos.
	PartnerFetchLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "partner_fetch_duration_seconds", Help: "Duração das consultas a APIs de parceiros.", Buckets: prometheus.DefBuckets},
		[]string{"warehouse", "type"},
	)

	// Transfers conta transferências por resultado (completed, validation_error,
	// not_found, insufficient_stock, failed).
	Transfers = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "transfers_total", Help: "Transferências por resultado."},
		[]string{"outcome"},
	)
)

var regOnce sync.Once

// RegisterDefault registra os coletores no registro dedicado.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(WarehouseFetchFailures)
		Registry.MustRegister(PartnerFetchLatency)
		Registry.MustRegister(Transfers)
		// Coletores de Go/processo no nosso registro
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
