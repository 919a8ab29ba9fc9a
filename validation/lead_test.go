package validation

import (
	"testing"

	"github.com/nivela-brasil/intake-backend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validLeadPayload() types.LeadCreate {
	return types.LeadCreate{
		Nome:                "Ana Silva",
		Email:               "ANA@Example.com",
		Telefone:            "(21) 91234-5678",
		TipoEstabelecimento: "salao-proprio",
		UTMSource:           "instagram",
		UTMMedium:           "social",
		UTMCampaign:         "lancamento",
	}
}

func TestValidateLead_Normalizes(t *testing.T) {
	lead, errs := ValidateLead(validLeadPayload(), BrazilPhoneRule)
	require.Empty(t, errs)
	require.NotNil(t, lead)

	assert.Equal(t, "Ana Silva", lead.Name)
	assert.Equal(t, "ana@example.com", lead.Email, "email must be lowercased")
	assert.Equal(t, "21912345678", lead.Phone, "phone must be stripped to digits")
	assert.Equal(t, "salao-proprio", lead.EstablishmentType)
	assert.Empty(t, lead.ID, "id is assigned by the store, never by validation")
	assert.True(t, lead.CreatedAt.IsZero())
}

func TestValidateLead_UTMDefaults(t *testing.T) {
	req := validLeadPayload()
	req.UTMSource = ""
	req.UTMMedium = ""
	req.UTMCampaign = ""

	lead, errs := ValidateLead(req, BrazilPhoneRule)
	require.Empty(t, errs)
	assert.Equal(t, "direct", lead.UTMSource)
	assert.Empty(t, lead.UTMMedium)
	assert.Empty(t, lead.UTMCampaign)
}

func TestValidateLead_CollectsAllErrors(t *testing.T) {
	req := types.LeadCreate{
		Nome:     "",
		Email:    "not-an-email",
		Telefone: "123",
	}

	lead, errs := ValidateLead(req, BrazilPhoneRule)
	assert.Nil(t, lead)
	assert.Len(t, errs, 4, "every invalid field must be reported in one pass")
	assert.Contains(t, errs, "nome")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "telefone")
	assert.Contains(t, errs, "tipoEstabelecimento")
}

func TestValidateLead_FieldRules(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*types.LeadCreate)
		badField string
	}{
		{"blank name", func(r *types.LeadCreate) { r.Nome = "   " }, "nome"},
		{"single-char name", func(r *types.LeadCreate) { r.Nome = "A" }, "nome"},
		{"email without at", func(r *types.LeadCreate) { r.Email = "ana.example.com" }, "email"},
		{"email without domain dot", func(r *types.LeadCreate) { r.Email = "ana@example" }, "email"},
		{"email with spaces", func(r *types.LeadCreate) { r.Email = "ana silva@example.com" }, "email"},
		{"phone too short", func(r *types.LeadCreate) { r.Telefone = "2191234" }, "telefone"},
		{"phone too long", func(r *types.LeadCreate) { r.Telefone = "5521912345678" }, "telefone"},
		{"missing establishment", func(r *types.LeadCreate) { r.TipoEstabelecimento = "" }, "tipoEstabelecimento"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validLeadPayload()
			tt.mutate(&req)

			lead, errs := ValidateLead(req, BrazilPhoneRule)
			assert.Nil(t, lead)
			assert.Contains(t, errs, tt.badField)
		})
	}
}

func TestValidateLead_Deterministic(t *testing.T) {
	req := validLeadPayload()
	req.Nome = ""

	_, first := ValidateLead(req, BrazilPhoneRule)
	_, second := ValidateLead(req, BrazilPhoneRule)
	assert.Equal(t, first, second, "same invalid payload must classify identically")
}

func TestValidateLead_TrimsWhitespace(t *testing.T) {
	req := validLeadPayload()
	req.Nome = "  Ana Silva  "
	req.Email = "  ana@example.com  "

	lead, errs := ValidateLead(req, BrazilPhoneRule)
	require.Empty(t, errs)
	assert.Equal(t, "Ana Silva", lead.Name)
	assert.Equal(t, "ana@example.com", lead.Email)
}
