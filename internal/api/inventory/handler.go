package inventory

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"gotransfer/internal/domain"
	apperror "gotransfer/internal/errors"
	"gotransfer/internal/pkg/logger"
)

// InventoryService define o contrato que o Handler espera do agregador.
type InventoryService interface {
	GetAll(ctx domain.Context, upc, category string) ([]domain.NormalizedInventoryItem, error)
	GetFromOne(ctx domain.Context, warehouseID, upc, category string) ([]domain.NormalizedInventoryItem, error)
}

// Handler agrupa os métodos de Handler de inventário.
type Handler struct {
	Service InventoryService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc InventoryService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// handleServiceResponse processa erros de serviço e envia respostas padronizadas ao cliente.
func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
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

// GetAllInventoryHandler lida com a requisição GET /v1/inventory.
// Agrega o inventário de todos os armazéns registrados; filtros opcionais
// por query string: ?upc= e ?category=.
func (h *Handler) GetAllInventoryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	upc := r.URL.Query().Get("upc")
	category := r.URL.Query().Get("category")

	items, err := h.Service.GetAll(ctx, upc, category)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, items, nil, http.StatusOK)
}

// GetInventoryByWarehouseHandler lida com a requisição GET /v1/inventory/{warehouseId}.
func (h *Handler) GetInventoryByWarehouseHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	warehouseID := strings.TrimPrefix(r.URL.Path, "/v1/inventory/")
	upc := r.URL.Query().Get("upc")
	category := r.URL.Query().Get("category")

	items, err := h.Service.GetFromOne(ctx, warehouseID, upc, category)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, items, nil, http.StatusOK)
}
