package stockrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gotransfer/internal/domain"
	apperror "gotransfer/internal/errors"
	"gotransfer/internal/pkg/logger"
)

// PostgresStore é a implementação do store de estoque interno sobre PostgreSQL.
// A dedução usa SELECT ... FOR UPDATE dentro de transação: a linha fica
// bloqueada entre a checagem e o clamp, então transferências concorrentes
// serializam no UPC e não há gasto duplo.
type PostgresStore struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewPostgresStore cria e retorna uma nova instância do store PostgreSQL.
func NewPostgresStore(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *PostgresStore {
	return &PostgresStore{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    log,
	}
}

// FetchAll retorna todos os itens do estoque interno.
func (s *PostgresStore) FetchAll(ctx context.Context) ([]domain.NormalizedInventoryItem, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, s.DBTimeout)
	defer cancel()

	query := `
        SELECT upc, category, name, quantity, transfer_cost, transfer_time, location_details
        FROM stock_items
        ORDER BY created_at`

	rows, err := s.DB.QueryContext(ctxTimeout, query)
	if err != nil {
		s.logger.Error("Falha ao buscar itens de estoque no DB.", err)
		return nil, apperror.NewDBError("Falha ao buscar itens de estoque", err)
	}
	defer rows.Close()

	var items []domain.NormalizedInventoryItem
	for rows.Next() {
		var item domain.NormalizedInventoryItem
		var transferCost, transferTime sql.NullFloat64
		var location []byte

		if err := rows.Scan(&item.UPC, &item.Category, &item.Name, &item.Quantity, &transferCost, &transferTime, &location); err != nil {
			s.logger.Error("Falha ao ler linha de estoque.", err)
			return nil, apperror.NewDBError("Falha ao ler item de estoque", err)
		}
		if transferCost.Valid {
			v := transferCost.Float64
			item.TransferCost = &v
		}
		if transferTime.Valid {
			v := transferTime.Float64
			item.TransferTime = &v
		}
		if len(location) > 0 {
			// location_details é opaco para o orquestrador; erro de decode
			// não invalida o item.
			_ = json.Unmarshal(location, &item.LocationDetails)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("Falha ao iterar itens de estoque", err)
	}

	return items, nil
}

// Put insere ou sobrescreve um item pelo UPC (usado no seed/admin).
func (s *PostgresStore) Put(ctx context.Context, item domain.NormalizedInventoryItem) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, s.DBTimeout)
	defer cancel()

	var location []byte
	if item.LocationDetails != nil {
		location, _ = json.Marshal(item.LocationDetails)
	}

	query := `
        INSERT INTO stock_items (id, upc, category, name, quantity, transfer_cost, transfer_time, location_details, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        ON CONFLICT (upc) DO UPDATE
        SET category = EXCLUDED.category, name = EXCLUDED.name, quantity = EXCLUDED.quantity,
            transfer_cost = EXCLUDED.transfer_cost, transfer_time = EXCLUDED.transfer_time,
            location_details = EXCLUDED.location_details, updated_at = EXCLUDED.updated_at`

	now := time.Now().UTC()
	_, err := s.DB.ExecContext(ctxTimeout, query,
		uuid.New().String(), item.UPC, item.Category, item.Name, item.Quantity,
		nullableFloat(item.TransferCost), nullableFloat(item.TransferTime), location, now, now,
	)
	if err != nil {
		s.logger.Error("Falha ao gravar item de estoque no DB.", err)
		return apperror.NewDBError("Falha ao gravar item de estoque", err)
	}
	return nil
}

// ApplyDelta aplica um ajuste ao estoque de um UPC dentro de uma transação,
// com clamp em zero, e retorna a variação realmente aplicada.
// UPC desconhecido retorna NotFoundError.
func (s *PostgresStore) ApplyDelta(ctx context.Context, upc string, delta int) (int, error) {
	s.logger.Debug("Iniciando ApplyDelta no store PostgreSQL.", map[string]interface{}{"upc": upc, "delta": delta})

	ctxTimeout, cancel := context.WithTimeout(ctx, s.DBTimeout)
	defer cancel()

	tx, err := s.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		s.logger.Error("Falha ao iniciar transação para ajuste de estoque.", err)
		return 0, apperror.NewDBError("Falha ao iniciar transação", err)
	}
	defer tx.Rollback() // Rollback em caso de erro

	// 1. Obter a quantidade atual (FOR UPDATE bloqueia a linha na transação)
	var current int
	querySelect := `SELECT quantity FROM stock_items WHERE upc = $1 FOR UPDATE`
	err = tx.QueryRowContext(ctxTimeout, querySelect, upc).Scan(&current)
	if err == sql.ErrNoRows {
		return 0, apperror.NewNotFoundError(fmt.Sprintf("UPC %s não existe no estoque interno.", upc))
	}
	if err != nil {
		s.logger.Error("Falha ao selecionar estoque para ajuste.", err)
		return 0, apperror.NewDBError("Falha ao buscar estoque para ajuste", err)
	}

	// 2. Aplicar o ajuste com clamp em zero
	actual := delta
	newQuantity := current + delta
	if newQuantity < 0 {
		actual = -current
		newQuantity = 0
	}

	queryUpdate := `UPDATE stock_items SET quantity = $1, updated_at = $2 WHERE upc = $3`
	if _, err := tx.ExecContext(ctxTimeout, queryUpdate, newQuantity, time.Now().UTC(), upc); err != nil {
		s.logger.Error("Falha ao atualizar quantidade de estoque.", err)
		return 0, apperror.NewDBError("Falha ao atualizar estoque", err)
	}

	// 3. Commitar a transação
	if commitErr := tx.Commit(); commitErr != nil {
		s.logger.Error("Falha ao commitar transação de ajuste de estoque.", commitErr)
		return 0, apperror.NewDBError("Falha ao commitar transação", commitErr)
	}

	s.logger.Info("Estoque ajustado com sucesso.", map[string]interface{}{
		"upc":          upc,
		"delta":        delta,
		"actual_delta": actual,
		"new_quantity": newQuantity,
	})
	return actual, nil
}

func nullableFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
