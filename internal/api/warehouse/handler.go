package warehouse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"gotransfer/internal/domain"
	apperror "gotransfer/internal/errors"
	"gotransfer/internal/pkg/logger"
)

// WarehouseRegistry define o contrato que o Handler espera do registro de armazéns.
type WarehouseRegistry interface {
	Register(config domain.WarehouseConfig)
	Unregister(id string) bool
	Get(id string) (domain.WarehouseConfig, bool)
	List() []domain.WarehouseConfig
}

// Handler agrupa todos os métodos de Handler de armazéns.
type Handler struct {
	Registry WarehouseRegistry
	Logger   logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Registry e o Logger.
func NewHandler(reg WarehouseRegistry, log logger.Logger) *Handler {
	return &Handler{
		Registry: reg,
		Logger:   log,
	}
}

// handleServiceResponse processa erros e envia respostas padronizadas ao cliente.
func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		// Sucesso
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)
		if data != nil {
			if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
				h.Logger.Error("Falha ao codificar JSON de resposta", jsonErr)
				http.Error(w, "Erro ao codificar resposta", http.StatusInternalServerError)
			}
		}
		return
	}

	// TRATAMENTO DE ERROS
	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		h.Logger.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	} else {
		h.Logger.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{"path": r.URL.Path})
	}

	errorResponse := domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse)
}

// validateConfig aplica as validações de payload antes do upsert no registro.
func validateConfig(config domain.WarehouseConfig) error {
	if config.ID == "" {
		return apperror.NewValidationError("O ID do armazém não pode ser vazio.")
	}
	switch config.API.Type {
	case domain.WarehouseTypeInternal, domain.WarehouseTypePartnerB, domain.WarehouseTypePartnerC:
		return nil
	default:
		return apperror.NewValidationError(
			fmt.Sprintf("Tipo de API desconhecido: %q.", config.API.Type))
	}
}

// RegisterWarehouseHandler lida com a requisição POST /v1/warehouses.
// O registro é um upsert: reenviar o mesmo ID substitui a configuração
// existente mantendo a posição de registro original.
func (h *Handler) RegisterWarehouseHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	var config domain.WarehouseConfig
	if err := json.NewDecoder(r.Body).Decode(&config); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusBadRequest)
		return
	}

	if err := validateConfig(config); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.Registry.Register(config)
	h.Logger.Info("Armazém registrado.", map[string]interface{}{"id": config.ID, "type": string(config.API.Type)})
	h.handleServiceResponse(w, r, config, nil, http.StatusCreated)
}

// ListWarehousesHandler lida com a requisição GET /v1/warehouses.
// Retorna as configurações na ordem de registro.
func (h *Handler) ListWarehousesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	h.handleServiceResponse(w, r, h.Registry.List(), nil, http.StatusOK)
}

// WarehouseByIDHandler lida com GET e DELETE em /v1/warehouses/{id}.
func (h *Handler) WarehouseByIDHandler(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/warehouses/")

	switch r.Method {
	case http.MethodGet:
		config, ok := h.Registry.Get(id)
		if !ok {
			h.handleServiceResponse(w, r, nil, apperror.NewNotFoundError(
				fmt.Sprintf("O armazém %s não está registrado.", id)), http.StatusOK)
			return
		}
		h.handleServiceResponse(w, r, config, nil, http.StatusOK)

	case http.MethodDelete:
		if !h.Registry.Unregister(id) {
			h.handleServiceResponse(w, r, nil, apperror.NewNotFoundError(
				fmt.Sprintf("O armazém %s não está registrado.", id)), http.StatusOK)
			return
		}
		h.Logger.Info("Armazém removido do registro.", map[string]interface{}{"id": id})
		h.handleServiceResponse(w, r, nil, nil, http.StatusNoContent)

	default:
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
	}
}
