package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"gotransfer/internal/domain"
	"gotransfer/internal/pkg/logger"
)

// Registry mantém em memória os armazéns registrados, preservando a ordem
// de inserção. É uma instância explícita (sem estado global): o composition
// root em cmd/main.go constrói uma e a passa por referência às camadas.
//
// Todas as consultas são totais: ausência é representada por false/vazio,
// nunca por erro.
type Registry struct {
	mu      sync.RWMutex
	configs map[string]domain.WarehouseConfig
	order   []string // ordem de registro; re-registro não altera a posição
	logger  logger.Logger
}

// NewRegistry cria e retorna um novo registro de armazéns vazio.
func NewRegistry(log logger.Logger) *Registry {
	return &Registry{
		configs: make(map[string]domain.WarehouseConfig),
		order:   make([]string, 0),
		logger:  log,
	}
}

// Register insere ou sobrescreve (upsert) a configuração de um armazém pelo ID.
// Re-registrar um ID existente sobrescreve no lugar: o registro não cresce
// e a posição de inserção original é mantida.
func (r *Registry) Register(config domain.WarehouseConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.configs[config.ID]; !exists {
		r.order = append(r.order, config.ID)
	}
	r.configs[config.ID] = config

	r.logger.Info("Armazém registrado.", map[string]interface{}{"id": config.ID, "name": config.Name, "type": config.API.Type})
}

// Unregister remove um armazém do registro. Retorna false se o ID não existia.
func (r *Registry) Unregister(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.configs[id]; !exists {
		return false
	}
	delete(r.configs, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	r.logger.Info("Armazém removido do registro.", map[string]interface{}{"id": id})
	return true
}

// Get retorna a configuração de um armazém e se ela existe.
func (r *Registry) Get(id string) (domain.WarehouseConfig, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	config, ok := r.configs[id]
	return config, ok
}

// Has informa se um armazém está registrado.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.configs[id]
	return ok
}

// List retorna as configurações na ordem de registro.
func (r *Registry) List() []domain.WarehouseConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.WarehouseConfig, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.configs[id])
	}
	return out
}

// Len retorna o número de armazéns registrados.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.configs)
}

// LoadFromFile carrega o bootstrap do registro a partir de um arquivo JSON
// no formato {"warehouses": [...]}. Chamado uma única vez na inicialização;
// não há reload ao vivo.
func (r *Registry) LoadFromFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("falha ao ler o arquivo de armazéns %s: %w", path, err)
	}

	var file domain.RegistryFile
	if err := json.Unmarshal(data, &file); err != nil {
		return 0, fmt.Errorf("falha ao decodificar o arquivo de armazéns %s: %w", path, err)
	}

	for _, config := range file.Warehouses {
		r.Register(config)
	}

	r.logger.Info("Bootstrap do registro concluído.", map[string]interface{}{"file": path, "count": len(file.Warehouses)})
	return len(file.Warehouses), nil
}
