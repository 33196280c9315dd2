package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// BusinessError is a recoverable, user-facing failure. The operation that
// returned it left persisted state unchanged.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// ErrNotFound covers missing rows and rows owned by another company alike, so
// callers never learn whether a foreign row exists.
var ErrNotFound = errors.New("not_found")

const uniqueViolation = "23505"

// IsUniqueViolation reports whether the database rejected a write on a
// unique index, either translated by gorm or as a raw Postgres error.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	return false
}

var messages = map[string]string{
	"invalid_request":           "Dados inválidos.",
	"invalid_status_code":       "Estado de agendamento desconhecido.",
	"already_at_end_of_cycle":   "O agendamento já está no último estado do fluxo.",
	"already_at_start_of_cycle": "O agendamento já está no primeiro estado do fluxo.",
	"could_not_be_finalized":    "Este agendamento não pode mais ser finalizado.",
	"already_deleted":           "Registro já foi removido.",
	"not_deleted":               "Registro não está removido.",
	"invalid_cpf":               "CPF inválido.",
	"invalid_cnpj":              "CNPJ inválido.",
	"invalid_phone":             "Telefone deve começar com '+' seguido do código do país.",
	"invalid_price":             "Preço inválido.",
	"invalid_timezone":          "Fuso horário inválido.",
	"invalid_choice":            "Seleção inválida para a empresa ativa.",
	"invalid_date":              "Data inválida.",
	"invalid_date_or_time":      "Data ou hora inválida.",
	"invalid_year":              "Ano inválido.",
	"invalid_month":             "Mês inválido.",
	"invalid_image":             "Imagem inválida.",
	"images_disabled":           "Envio de imagens não configurado.",
	"duplicate_value":           "Já existe um registro com estes dados.",
	"invalid_email_domain":      "O domínio do e-mail informado não parece ser válido.",
	"email_already_exists":      "E-mail já cadastrado.",
	"invalid_credentials":       "Credenciais inválidas.",
	"no_active_company":         "Selecione uma empresa para continuar.",
	"company_not_found":         "Empresa não encontrada.",
	"appointment_not_found":     "Agendamento não encontrado.",
	"not_found":                 "Registro não encontrado.",
}

// Message returns the user-facing text for a business code.
func Message(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return "Operação não permitida."
}
