package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/nivela-brasil/intake-backend/types"
)

// defaultUTMSource is stored when the landing page sends no attribution at all.
const defaultUTMSource = "direct"

// ValidateLead checks a raw lead payload and, when it passes, returns the
// normalized record ready for persistence. All field errors are collected in a
// single pass so the client can render every problem at once.
func ValidateLead(req types.LeadCreate, phoneOK PhoneRule) (*types.Lead, FieldErrors) {
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

	establishment := strings.TrimSpace(req.TipoEstabelecimento)
	if blank(establishment) {
		errs["tipoEstabelecimento"] = "tipo de estabelecimento é obrigatório"
	}

	if len(errs) > 0 {
		return nil, errs
	}

	source := strings.TrimSpace(req.UTMSource)
	if source == "" {
		source = defaultUTMSource
	}

	return &types.Lead{
		Name:              name,
		Email:             email,
		Phone:             phone,
		EstablishmentType: establishment,
		UTMSource:         source,
		UTMMedium:         strings.TrimSpace(req.UTMMedium),
		UTMCampaign:       strings.TrimSpace(req.UTMCampaign),
	}, nil
}
