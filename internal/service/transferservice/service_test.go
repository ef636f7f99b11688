package transferservice_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gotransfer/internal/adapter"
	"gotransfer/internal/domain"
	apperror "gotransfer/internal/errors"
	"gotransfer/internal/pkg/logger"
	"gotransfer/internal/pricing"
	"gotransfer/internal/registry"
	"gotransfer/internal/repository/stockrepo"
	"gotransfer/internal/service/inventoryservice"
	"gotransfer/internal/service/transferservice"
)

// MockInventory é uma implementação mock da interface transferservice.InventoryProvider
type MockInventory struct {
	mock.Mock
}

func (m *MockInventory) GetAll(ctx domain.Context, upc, category string) ([]domain.NormalizedInventoryItem, error) {
	args := m.Called(ctx, upc, category)
	return args.Get(0).([]domain.NormalizedInventoryItem), args.Error(1)
}

// MockAdapter é uma implementação mock da interface adapter.WarehouseAdapter
type MockAdapter struct {
	mock.Mock
}

func (m *MockAdapter) Fetch(ctx context.Context, upc, category string) ([]domain.NormalizedInventoryItem, error) {
	args := m.Called(ctx, upc, category)
	return args.Get(0).([]domain.NormalizedInventoryItem), args.Error(1)
}

func (m *MockAdapter) ApplyDelta(ctx context.Context, upc string, delta int) (int, error) {
	args := m.Called(ctx, upc, delta)
	return args.Int(0), args.Error(1)
}

// MockFactory é uma implementação mock da interface transferservice.AdapterFactory
type MockFactory struct {
	mock.Mock
}

func (m *MockFactory) Create(config domain.WarehouseConfig) (adapter.WarehouseAdapter, error) {
	args := m.Called(config)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(adapter.WarehouseAdapter), args.Error(1)
}

func newTestLogger() logger.Logger {
	return logger.NewLogger("error")
}

var (
	losAngeles = domain.GeoPoint{Lat: 34.0522, Long: -118.2437}
	newYork    = domain.GeoPoint{Lat: 40.7128, Long: -74.0060}
)

func internalConfig(id, name string, location domain.GeoPoint) domain.WarehouseConfig {
	return domain.WarehouseConfig{
		ID:       id,
		Name:     name,
		Location: location,
		API:      domain.APIConfig{Type: domain.WarehouseTypeInternal},
	}
}

func floatPtr(v float64) *float64 { return &v }

func item(source, upc string, quantity int, rate *float64) domain.NormalizedInventoryItem {
	return domain.NormalizedInventoryItem{
		Source:       source,
		UPC:          upc,
		Category:     "widgets",
		Name:         "Widget",
		Quantity:     quantity,
		TransferCost: rate,
	}
}

// newService monta um serviço com registro real e colaboradores mock.
func newService(reg *registry.Registry, inventory *MockInventory, factory *MockFactory) *transferservice.Service {
	return transferservice.NewService(
		reg, inventory, factory,
		pricing.NewCostModel(reg), pricing.NewTimeModel(reg),
		newTestLogger(),
	)
}

// --- Seleção automática de origem ---

func TestExecuteTransfer_CheapestPicksLowestRate(t *testing.T) {
	reg := registry.NewRegistry(newTestLogger())
	reg.Register(internalConfig("A", "A", losAngeles))
	reg.Register(internalConfig("B", "B", losAngeles)) // mesma distância, taxa maior
	reg.Register(internalConfig("C", "C", newYork))

	inventory := new(MockInventory)
	inventory.On("GetAll", mock.Anything, "X", "").Return([]domain.NormalizedInventoryItem{
		item("A", "X", 20, floatPtr(0.2)),
		item("B", "X", 15, floatPtr(0.7)),
	}, nil)

	adapterA := new(MockAdapter)
	adapterA.On("ApplyDelta", mock.Anything, "X", -5).Return(-5, nil)

	factory := new(MockFactory)
	factory.On("Create", mock.MatchedBy(func(c domain.WarehouseConfig) bool { return c.ID == "A" })).Return(adapterA, nil)

	svc := newService(reg, inventory, factory)
	result, err := svc.ExecuteTransfer(context.Background(), domain.TransferRequest{
		To: "C", UPC: "X", Quantity: 5, Rule: domain.RuleCheapest,
	})

	assert.NoError(t, err)
	assert.Equal(t, "A", result.Source)
	assert.Equal(t, "C", result.Destination)
	assert.Contains(t, result.Message, "from A to C")
	assert.Contains(t, result.MetricLabel, "Cost: $")
	adapterA.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestExecuteTransfer_SkipsCandidatesWithoutStock(t *testing.T) {
	reg := registry.NewRegistry(newTestLogger())
	reg.Register(internalConfig("A", "A", losAngeles))
	reg.Register(internalConfig("B", "B", losAngeles))
	reg.Register(internalConfig("C", "C", newYork))

	// A é mais barato mas só tem 3 unidades; B qualifica
	inventory := new(MockInventory)
	inventory.On("GetAll", mock.Anything, "X", "").Return([]domain.NormalizedInventoryItem{
		item("A", "X", 3, floatPtr(0.2)),
		item("B", "X", 15, floatPtr(0.7)),
	}, nil)

	adapterB := new(MockAdapter)
	adapterB.On("ApplyDelta", mock.Anything, "X", -5).Return(-5, nil)

	factory := new(MockFactory)
	factory.On("Create", mock.MatchedBy(func(c domain.WarehouseConfig) bool { return c.ID == "B" })).Return(adapterB, nil)

	svc := newService(reg, inventory, factory)
	result, err := svc.ExecuteTransfer(context.Background(), domain.TransferRequest{
		To: "C", UPC: "X", Quantity: 5, Rule: domain.RuleCheapest,
	})

	assert.NoError(t, err)
	assert.Equal(t, "B", result.Source)
}

func TestExecuteTransfer_TieBreakFirstSeenWins(t *testing.T) {
	reg := registry.NewRegistry(newTestLogger())
	reg.Register(internalConfig("A", "A", losAngeles))
	reg.Register(internalConfig("B", "B", losAngeles)) // métrica idêntica à de A
	reg.Register(internalConfig("C", "C", newYork))

	inventory := new(MockInventory)
	inventory.On("GetAll", mock.Anything, "X", "").Return([]domain.NormalizedInventoryItem{
		item("A", "X", 20, floatPtr(0.5)),
		item("B", "X", 20, floatPtr(0.5)),
	}, nil)

	adapterA := new(MockAdapter)
	adapterA.On("ApplyDelta", mock.Anything, "X", -5).Return(-5, nil)

	factory := new(MockFactory)
	factory.On("Create", mock.MatchedBy(func(c domain.WarehouseConfig) bool { return c.ID == "A" })).Return(adapterA, nil)

	svc := newService(reg, inventory, factory)
	result, err := svc.ExecuteTransfer(context.Background(), domain.TransferRequest{
		To: "C", UPC: "X", Quantity: 5, Rule: domain.RuleCheapest,
	})

	// Mínimo sob < estrito: em empate, a primeira origem vista vence
	assert.NoError(t, err)
	assert.Equal(t, "A", result.Source)
}

func TestExecuteTransfer_FastestRule(t *testing.T) {
	reg := registry.NewRegistry(newTestLogger())
	reg.Register(internalConfig("A", "A", losAngeles)) // internal: d/60
	partnerB := domain.WarehouseConfig{
		ID: "B", Name: "B", Location: losAngeles,
		API: domain.APIConfig{Type: domain.WarehouseTypePartnerB, BaseURL: "http://partner.example"},
	}
	reg.Register(partnerB) // partner-b: 1 + d/30, sempre mais lento aqui
	reg.Register(internalConfig("C", "C", newYork))

	inventory := new(MockInventory)
	inventory.On("GetAll", mock.Anything, "X", "").Return([]domain.NormalizedInventoryItem{
		item("B", "X", 20, floatPtr(0.7)),
		item("A", "X", 20, nil),
	}, nil)

	adapterA := new(MockAdapter)
	adapterA.On("ApplyDelta", mock.Anything, "X", -5).Return(-5, nil)

	factory := new(MockFactory)
	factory.On("Create", mock.MatchedBy(func(c domain.WarehouseConfig) bool { return c.ID == "A" })).Return(adapterA, nil)

	svc := newService(reg, inventory, factory)
	result, err := svc.ExecuteTransfer(context.Background(), domain.TransferRequest{
		To: "C", UPC: "X", Quantity: 5, Rule: domain.RuleFastest,
	})

	assert.NoError(t, err)
	assert.Equal(t, "A", result.Source)
	assert.Contains(t, result.MetricLabel, "hours")
}

func TestExecuteTransfer_NoQualifyingCandidate(t *testing.T) {
	reg := registry.NewRegistry(newTestLogger())
	reg.Register(internalConfig("A", "A", losAngeles))
	reg.Register(internalConfig("B", "B", losAngeles))
	reg.Register(internalConfig("C", "C", newYork))

	// Total de 50 unidades fora do destino; 1000 solicitadas
	inventory := new(MockInventory)
	inventory.On("GetAll", mock.Anything, "X", "").Return([]domain.NormalizedInventoryItem{
		item("A", "X", 20, floatPtr(0.2)),
		item("B", "X", 30, floatPtr(0.7)),
	}, nil)

	factory := new(MockFactory)

	svc := newService(reg, inventory, factory)
	_, err := svc.ExecuteTransfer(context.Background(), domain.TransferRequest{
		To: "C", UPC: "X", Quantity: 1000, Rule: domain.RuleCheapest,
	})

	assert.Error(t, err)
	assert.IsType(t, &apperror.InsufficientStockError{}, err)
	factory.AssertNotCalled(t, "Create")
}

// --- Origem informada ---

func TestExecuteTransfer_ExplicitFromInsufficientStock(t *testing.T) {
	reg := registry.NewRegistry(newTestLogger())
	reg.Register(internalConfig("A", "A", losAngeles))
	reg.Register(internalConfig("C", "C", newYork))

	inventory := new(MockInventory)
	inventory.On("GetAll", mock.Anything, "X", "").Return([]domain.NormalizedInventoryItem{
		item("A", "X", 3, floatPtr(0.2)),
	}, nil)

	factory := new(MockFactory)

	svc := newService(reg, inventory, factory)
	_, err := svc.ExecuteTransfer(context.Background(), domain.TransferRequest{
		From: "A", To: "C", UPC: "X", Quantity: 5, Rule: domain.RuleCheapest,
	})

	assert.Error(t, err)
	var stockErr *apperror.InsufficientStockError
	assert.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 3, stockErr.Available) // reporta o disponível
}

// --- Validações ---

func TestExecuteTransfer_ValidationErrors(t *testing.T) {
	reg := registry.NewRegistry(newTestLogger())
	reg.Register(internalConfig("A", "A", losAngeles))
	reg.Register(internalConfig("C", "C", newYork))

	inventory := new(MockInventory)
	factory := new(MockFactory)
	svc := newService(reg, inventory, factory)

	cases := []domain.TransferRequest{
		{To: "Z", UPC: "X", Quantity: 5, Rule: domain.RuleCheapest},            // destino não registrado
		{From: "Z", To: "C", UPC: "X", Quantity: 5, Rule: domain.RuleCheapest}, // origem não registrada
		{From: "C", To: "C", UPC: "X", Quantity: 5, Rule: domain.RuleCheapest}, // origem == destino
		{To: "C", UPC: "X", Quantity: 0, Rule: domain.RuleCheapest},            // quantidade não positiva
		{To: "C", UPC: "X", Quantity: -2, Rule: domain.RuleCheapest},           // quantidade negativa
		{To: "C", UPC: "X", Quantity: 5, Rule: "turbo"},                        // regra desconhecida
		{To: "C", UPC: "", Quantity: 5, Rule: domain.RuleCheapest},             // UPC vazio
	}

	for _, req := range cases {
		_, err := svc.ExecuteTransfer(context.Background(), req)
		assert.Error(t, err)
		assert.IsType(t, &apperror.ValidationError{}, err)
	}
	inventory.AssertNotCalled(t, "GetAll")
}

func TestExecuteTransfer_NoInventoryForUPC(t *testing.T) {
	reg := registry.NewRegistry(newTestLogger())
	reg.Register(internalConfig("A", "A", losAngeles))
	reg.Register(internalConfig("C", "C", newYork))

	inventory := new(MockInventory)
	inventory.On("GetAll", mock.Anything, "X", "").Return([]domain.NormalizedInventoryItem{}, nil)

	svc := newService(reg, inventory, new(MockFactory))
	_, err := svc.ExecuteTransfer(context.Background(), domain.TransferRequest{
		To: "C", UPC: "X", Quantity: 5, Rule: domain.RuleCheapest,
	})

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
}

// --- Falha no passo de escrita ---

func TestExecuteTransfer_DeductionFailurePropagatesUnwrapped(t *testing.T) {
	reg := registry.NewRegistry(newTestLogger())
	reg.Register(internalConfig("A", "A", losAngeles))
	reg.Register(internalConfig("C", "C", newYork))

	inventory := new(MockInventory)
	inventory.On("GetAll", mock.Anything, "X", "").Return([]domain.NormalizedInventoryItem{
		item("A", "X", 20, floatPtr(0.2)),
	}, nil)

	deductionErr := errors.New("store unavailable")
	adapterA := new(MockAdapter)
	adapterA.On("ApplyDelta", mock.Anything, "X", -5).Return(0, deductionErr)

	factory := new(MockFactory)
	factory.On("Create", mock.Anything).Return(adapterA, nil)

	svc := newService(reg, inventory, factory)
	_, err := svc.ExecuteTransfer(context.Background(), domain.TransferRequest{
		To: "C", UPC: "X", Quantity: 5, Rule: domain.RuleCheapest,
	})

	// O erro do passo de escrita propaga sem encapsulamento
	assert.Equal(t, deductionErr, err)
}

// --- Ponta a ponta: registro + store em memória + fábrica + agregador reais ---

func TestExecuteTransfer_EndToEnd(t *testing.T) {
	log := newTestLogger()
	reg := registry.NewRegistry(log)
	reg.Register(internalConfig("A", "A", losAngeles))
	reg.Register(domain.WarehouseConfig{
		ID: "B", Name: "B", Location: newYork,
		// Parceiro inalcançável: a agregação degrada para vazio nesse armazém
		API: domain.APIConfig{Type: domain.WarehouseTypePartnerB, BaseURL: "http://unreachable.invalid"},
	})

	store := stockrepo.NewMemoryStore(log, domain.NormalizedInventoryItem{
		UPC: "12345678", Category: "widgets", Name: "Widget Básico", Quantity: 15,
	})
	factory := adapter.NewFactory(store, &http.Client{Timeout: time.Second}, log)
	inventory := inventoryservice.NewService(reg, factory, log)

	svc := transferservice.NewService(
		reg, inventory, factory,
		pricing.NewCostModel(reg), pricing.NewTimeModel(reg),
		log,
	)

	result, err := svc.ExecuteTransfer(context.Background(), domain.TransferRequest{
		From: "A", To: "B", UPC: "12345678", Quantity: 5, Rule: domain.RuleCheapest,
	})

	assert.NoError(t, err)
	assert.Equal(t, "A", result.Source)
	assert.Equal(t, "B", result.Destination)
	assert.Contains(t, result.MetricLabel, "Cost: $")
	assert.InDelta(t, 2445.0, result.DistanceMiles, 50.0)

	// O estoque interno foi deduzido de 15 para 10
	remaining, err := store.FetchAll(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 10, remaining[0].Quantity)
}
