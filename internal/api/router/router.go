package router

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gotransfer/internal/api/auth"
	"gotransfer/internal/api/inventory"
	"gotransfer/internal/api/transfer"
	"gotransfer/internal/api/warehouse"
	"gotransfer/internal/pkg/cache"
	"gotransfer/internal/pkg/metrics"
	"gotransfer/internal/pkg/middleware"
	"gotransfer/internal/pkg/token"
)

// Deps agrupa os Handlers e colaboradores que o roteador recebe por
// injeção de dependências.
type Deps struct {
	AuthHandler      *auth.Handler
	InventoryHandler *inventory.Handler
	TransferHandler  *transfer.Handler
	WarehouseHandler *warehouse.Handler

	TokenSvc    token.TokenService
	CacheClient cache.Client // nil desabilita o rate limiting

	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration
}

// NewRouter configura e retorna o roteador HTTP principal.
func NewRouter(deps Deps) http.Handler {

	// Usamos o ServeMux padrão do net/http para roteamento
	mux := http.NewServeMux()

	authGuard := middleware.NewAuthMiddleware(deps.TokenSvc)

	// --- 1. Rotas de Health Check e Observabilidade ---
	mux.HandleFunc("/ping", PingHandler)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- 2. Autenticação do Operador ---
	mux.HandleFunc("/v1/auth/login", deps.AuthHandler.LoginHandler)

	// --- 3. Inventário (leitura, pública) ---
	mux.HandleFunc("/v1/inventory", deps.InventoryHandler.GetAllInventoryHandler)
	mux.HandleFunc("/v1/inventory/", deps.InventoryHandler.GetInventoryByWarehouseHandler)

	// --- 4. Transferências (JWT + rate limit) ---
	var transferHandler http.Handler = http.HandlerFunc(authGuard(deps.TransferHandler.ExecuteTransferHandler))
	if deps.CacheClient != nil {
		limiter := middleware.RateLimiter(deps.CacheClient, deps.RateLimitMaxRequests, deps.RateLimitPeriod)
		transferHandler = limiter(transferHandler)
	}
	mux.Handle("/v1/transfers", transferHandler)

	// --- 5. Registro de Armazéns (mutações exigem JWT) ---
	mux.HandleFunc("/v1/warehouses", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			deps.WarehouseHandler.ListWarehousesHandler(w, r)
			return
		}
		authGuard(deps.WarehouseHandler.RegisterWarehouseHandler)(w, r)
	})
	mux.HandleFunc("/v1/warehouses/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			deps.WarehouseHandler.WarehouseByIDHandler(w, r)
			return
		}
		authGuard(deps.WarehouseHandler.WarehouseByIDHandler)(w, r)
	})

	return mux
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
