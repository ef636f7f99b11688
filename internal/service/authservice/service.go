package authservice

import (
	"golang.org/x/crypto/bcrypt"

	apperror "gotransfer/internal/errors"
	"gotransfer/internal/pkg/logger"
	"gotransfer/internal/pkg/token"
)

// operatorRole é a role única atribuída ao operador autenticado.
const operatorRole = "operator"

// TokenService é o contrato da camada de token (internal/pkg/token)
type TokenService interface {
	GenerateToken(operatorID string, role string) (string, error)
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// Service autentica o operador do sistema contra a credencial configurada
// no ambiente. O GoTransfer não mantém base de usuários: há um único
// operador, cujo hash bcrypt da chave vem da configuração.
type Service struct {
	operatorID string
	keyHash    string
	tokenSvc   TokenService
	logger     logger.Logger
}

// NewService cria uma nova instância do serviço de autenticação.
func NewService(operatorID, keyHash string, tokenSvc TokenService, log logger.Logger) *Service {
	return &Service{
		operatorID: operatorID,
		keyHash:    keyHash,
		tokenSvc:   tokenSvc,
		logger:     log,
	}
}

// Login verifica a credencial do operador e gera um JWT.
func (s *Service) Login(operatorID, key string) (string, error) {
	// 1. Validação Básica
	if operatorID == "" || key == "" {
		return "", apperror.NewUnauthorizedError("Identificador e chave do operador são obrigatórios.")
	}

	// 2. Conferir o identificador configurado.
	// Identificador errado e chave errada produzem a mesma resposta,
	// para não dar dicas a invasores.
	if operatorID != s.operatorID {
		s.logger.Warn("Tentativa de login com operador desconhecido.", map[string]interface{}{"operator_id": operatorID})
		return "", apperror.NewUnauthorizedError("Credenciais inválidas.")
	}

	// 3. Comparar a chave informada (texto puro) com o hash configurado.
	if err := bcrypt.CompareHashAndPassword([]byte(s.keyHash), []byte(key)); err != nil {
		s.logger.Warn("Tentativa de login com chave incorreta.", map[string]interface{}{"operator_id": operatorID})
		return "", apperror.NewUnauthorizedError("Credenciais inválidas.")
	}

	// 4. Gerar JWT
	tokenString, err := s.tokenSvc.GenerateToken(s.operatorID, operatorRole)
	if err != nil {
		return "", apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}

	return tokenString, nil
}
