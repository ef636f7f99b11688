package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Nossos pacotes de infraestrutura e utilitários
	"gotransfer/config"
	"gotransfer/internal/domain"
	"gotransfer/internal/pkg/cache"
	"gotransfer/internal/pkg/database"
	"gotransfer/internal/pkg/logger"
	"gotransfer/internal/pkg/metrics"
	"gotransfer/internal/pkg/token"

	// Camadas do domínio para Injeção de Dependências
	"gotransfer/internal/adapter"
	"gotransfer/internal/api/auth"
	"gotransfer/internal/api/inventory"
	"gotransfer/internal/api/router"
	"gotransfer/internal/api/transfer"
	"gotransfer/internal/api/warehouse"
	"gotransfer/internal/pricing"
	"gotransfer/internal/registry"
	"gotransfer/internal/repository/stockrepo"
	"gotransfer/internal/service/authservice"
	"gotransfer/internal/service/inventoryservice"
	"gotransfer/internal/service/transferservice"
)

// stockStore é o contrato do store interno visto pelo main: o que a
// fábrica de adaptadores consome, mais o Put usado no seed.
type stockStore interface {
	adapter.StockStore
	Put(ctx context.Context, item domain.NormalizedInventoryItem) error
}

// seedStock carrega itens do estoque interno a partir de um arquivo JSON
// no formato {"items": [...]} e os grava no store via upsert por UPC.
func seedStock(path string, store stockStore) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var file struct {
		Items []domain.NormalizedInventoryItem `json:"items"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return 0, err
	}

	ctx := context.Background()
	for _, item := range file.Items {
		if err := store.Put(ctx, item); err != nil {
			return 0, err
		}
	}
	return len(file.Items), nil
}

func main() {
	// 1. Configuração e Inicialização
	log.Println("Inicializando serviço GoTransfer...")

	// 0. CARREGAR VARIÁVEIS DE AMBIENTE (.env)
	if err := godotenv.Load(); err != nil {
		// Variáveis essenciais podem estar no ambiente do sistema (ex: Docker).
		log.Println("Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	appLog := logger.NewLogger(cfg.LogLevel)
	appLog.Info("Configurações carregadas.", nil)

	// 2. Conexão com Recursos de Infraestrutura

	// A. Store interno: PostgreSQL quando DATABASE_URL está definida,
	// memória caso contrário.
	var store stockStore
	if cfg.DatabaseURL != "" {
		db, err := database.NewPostgresDB(cfg.DatabaseURL)
		if err != nil {
			appLog.Fatal("Falha ao conectar ao banco de dados.", err)
		}
		defer db.Close()
		store = stockrepo.NewPostgresStore(db, cfg.DBTimeout, appLog)
		appLog.Info("Store interno PostgreSQL inicializado.", nil)
	} else {
		store = stockrepo.NewMemoryStore(appLog)
		appLog.Info("Store interno em memória inicializado.", nil)
	}

	// Seed opcional do estoque interno a partir de arquivo JSON.
	if cfg.StockFile != "" {
		n, err := seedStock(cfg.StockFile, store)
		if err != nil {
			appLog.Fatal("Falha ao carregar o arquivo de estoque.", err)
		}
		appLog.Info("Itens de estoque carregados do arquivo.", map[string]interface{}{"count": n, "file": cfg.StockFile})
	}

	// B. Cache (Redis), usado pelo rate limiting. Opcional.
	var cacheClient cache.Client
	if cfg.RedisAddr != "" {
		cacheClient = cache.NewRedisClient(cfg.RedisAddr)
		appLog.Info("Conexão Redis estabelecida.", nil)
	} else {
		appLog.Warn("REDIS_ADDR não definido; rate limiting desabilitado.", nil)
	}

	// 3. INJEÇÃO DE DEPENDÊNCIAS (Montagem da Clean Architecture)
	// Ordem: Registry/Store -> Service -> Handler

	// A. Registro de Armazéns (+ bootstrap opcional por arquivo JSON)
	reg := registry.NewRegistry(appLog)
	if cfg.WarehousesFile != "" {
		n, err := reg.LoadFromFile(cfg.WarehousesFile)
		if err != nil {
			appLog.Fatal("Falha ao carregar o arquivo de armazéns.", err)
		}
		appLog.Info("Armazéns carregados do arquivo.", map[string]interface{}{"count": n, "file": cfg.WarehousesFile})
	}

	// B. Fábrica de adaptadores, com client HTTP compartilhado para os parceiros
	httpClient := &http.Client{Timeout: cfg.PartnerHTTPTimeout}
	factory := adapter.NewFactory(store, httpClient, appLog)
	appLog.Debug("Fábrica de adaptadores inicializada.", nil)

	// C. Serviços de domínio
	inventorySvc := inventoryservice.NewService(reg, factory, appLog)
	transferSvc := transferservice.NewService(
		reg, inventorySvc, factory,
		pricing.NewCostModel(reg), pricing.NewTimeModel(reg),
		appLog,
	)
	appLog.Debug("Serviços de inventário e transferência inicializados.", nil)

	// D. Serviço de Tokens (JWT) + autenticação do operador
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
	authSvc := authservice.NewService(cfg.OperatorID, cfg.OperatorKeyHash, tokenSvc, appLog)
	appLog.Debug("Serviço de autenticação inicializado.", nil)

	// E. Handlers (Camada de Apresentação)
	authHandler := auth.NewHandler(authSvc, appLog)
	inventoryHandler := inventory.NewHandler(inventorySvc, appLog)
	transferHandler := transfer.NewHandler(transferSvc, appLog)
	warehouseHandler := warehouse.NewHandler(reg, appLog)

	// F. Métricas
	metrics.RegisterDefault()

	// 4. Configuração e Início do Roteador/Servidor
	r := router.NewRouter(router.Deps{
		AuthHandler:          authHandler,
		InventoryHandler:     inventoryHandler,
		TransferHandler:      transferHandler,
		WarehouseHandler:     warehouseHandler,
		TokenSvc:             tokenSvc,
		CacheClient:          cacheClient,
		RateLimitMaxRequests: cfg.RateLimitMaxRequests,
		RateLimitPeriod:      cfg.RateLimitPeriod,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		appLog.Info("Servidor GoTransfer ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	appLog.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLog.Error("Desligamento do servidor forçado.", err)
	}

	appLog.Info("Servidor encerrado com sucesso.", nil)
}
