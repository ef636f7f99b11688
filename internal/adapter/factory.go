package adapter

import (
	"fmt"
	"net/http"

	"gotransfer/internal/domain"
	apperror "gotransfer/internal/errors"
	"gotransfer/internal/pkg/logger"
)

// Factory constrói o adaptador correto a partir da configuração do armazém.
// O StockStore é compartilhado por todos os armazéns internos; pode ser nil
// quando a instalação não opera armazém próprio.
type Factory struct {
	store  StockStore
	client *http.Client
	logger logger.Logger
}

// NewFactory cria uma fábrica de adaptadores.
func NewFactory(store StockStore, client *http.Client, log logger.Logger) *Factory {
	return &Factory{
		store:  store,
		client: client,
		logger: log,
	}
}

// Create despacha sobre config.API.Type. Tipo não reconhecido, ou tipo interno
// sem store injetado, é ConfigurationError.
func (f *Factory) Create(config domain.WarehouseConfig) (WarehouseAdapter, error) {
	switch config.API.Type {
	case domain.WarehouseTypeInternal:
		if f.store == nil {
			return nil, apperror.NewConfigurationError(
				fmt.Sprintf("O armazém %s é do tipo interno, mas nenhum store de estoque foi injetado.", config.ID))
		}
		return NewInternalAdapter(config.ID, f.store, f.logger), nil
	case domain.WarehouseTypePartnerB:
		return NewPartnerBAdapter(config, f.client, f.logger), nil
	case domain.WarehouseTypePartnerC:
		return NewPartnerCAdapter(config, f.client, f.logger), nil
	default:
		return nil, apperror.NewConfigurationError(
			fmt.Sprintf("Tipo de API de armazém não reconhecido: %q (armazém %s).", config.API.Type, config.ID))
	}
}
