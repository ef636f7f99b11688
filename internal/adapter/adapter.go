package adapter

import (
	"context"

	"gotransfer/internal/domain"
)

// WarehouseAdapter é o contrato comum sobre o qual agregador e orquestrador
// operam. Cada variante (internal | partner-b | partner-c) traduz a forma
// nativa do seu armazém para NormalizedInventoryItem.
//
// Contrato de Fetch: falha remota (non-2xx, rede, timeout, decode) é absorvida
// em lista vazia, nunca propagada, para que um parceiro instável não derrube
// uma consulta agregada.
//
// Contrato de ApplyDelta: a variante interna é autoritativa e clampa a dedução
// ao estoque disponível, retornando a variação realmente aplicada
// (|actual| ≤ |delta|, mesmo sinal ou zero). As variantes de parceiro não têm
// acesso de escrita e apenas registram a intenção (no-op retornando 0).
type WarehouseAdapter interface {
	Fetch(ctx context.Context, upc, category string) ([]domain.NormalizedInventoryItem, error)
	ApplyDelta(ctx context.Context, upc string, delta int) (int, error)
}

// StockStore define o contrato que o adaptador interno espera do
// colaborador de estoque (implementações em internal/repository/stockrepo).
type StockStore interface {
	FetchAll(ctx context.Context) ([]domain.NormalizedInventoryItem, error)
	ApplyDelta(ctx context.Context, upc string, delta int) (int, error)
}
