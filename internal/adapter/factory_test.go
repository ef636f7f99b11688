package adapter_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"gotransfer/internal/adapter"
	"gotransfer/internal/domain"
	apperror "gotransfer/internal/errors"
)

func configWithType(apiType string) domain.WarehouseConfig {
	return domain.WarehouseConfig{ID: "wh", API: domain.APIConfig{Type: apiType, BaseURL: "http://partner.example"}}
}

func TestFactoryCreate_Dispatch(t *testing.T) {
	factory := adapter.NewFactory(new(MockStockStore), http.DefaultClient, newTestLogger())

	internalAdp, err := factory.Create(configWithType(domain.WarehouseTypeInternal))
	assert.NoError(t, err)
	assert.IsType(t, &adapter.InternalAdapter{}, internalAdp)

	partnerB, err := factory.Create(configWithType(domain.WarehouseTypePartnerB))
	assert.NoError(t, err)
	assert.IsType(t, &adapter.PartnerBAdapter{}, partnerB)

	partnerC, err := factory.Create(configWithType(domain.WarehouseTypePartnerC))
	assert.NoError(t, err)
	assert.IsType(t, &adapter.PartnerCAdapter{}, partnerC)
}

func TestFactoryCreate_UnknownType(t *testing.T) {
	factory := adapter.NewFactory(new(MockStockStore), http.DefaultClient, newTestLogger())

	_, err := factory.Create(configWithType("carrier-pigeon"))

	assert.Error(t, err)
	assert.IsType(t, &apperror.ConfigurationError{}, err)
}

func TestFactoryCreate_InternalWithoutStore(t *testing.T) {
	factory := adapter.NewFactory(nil, http.DefaultClient, newTestLogger())

	_, err := factory.Create(configWithType(domain.WarehouseTypeInternal))

	assert.Error(t, err)
	assert.IsType(t, &apperror.ConfigurationError{}, err)
}
