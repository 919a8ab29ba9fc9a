package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/nivela-brasil/intake-backend/types"
)

// ValidateDistributor checks a raw distributor application. Company, city,
// state, experience and message are optional; absent values normalize to the
// empty string.
func ValidateDistributor(req types.DistributorCreate, phoneOK PhoneRule) (*types.Distributor, FieldErrors) {
	errs := FieldErrors{}

	name := strings.TrimSpace(req.Nome)
	if blank(name) {
		errs["nome"] = "nome é obrigatório"
	} else if utf8.RuneCountInString(name) < 2 {
		errs["nome"] = "nome deve ter pelo menos 2 caracteres"
	}

	email := NormalizeEmail(req.Email)
	if blank(email) {
		errs["email"] = "email é obrigatório"
	} else if !ValidEmail(email) {
		errs["email"] = "email em formato inválido"
	}

	phone := DigitsOnly(req.Telefone)
	if blank(req.Telefone) {
		errs["telefone"] = "telefone é obrigatório"
	} else if !phoneOK(phone) {
		errs["telefone"] = "telefone deve ter 10 ou 11 dígitos"
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &types.Distributor{
		Name:       name,
		Email:      email,
		Phone:      phone,
		Company:    strings.TrimSpace(req.Empresa),
		City:       strings.TrimSpace(req.Cidade),
		State:      strings.TrimSpace(req.Estado),
		Experience: strings.TrimSpace(req.Experiencia),
		Message:    strings.TrimSpace(req.Mensagem),
	}, nil
}
