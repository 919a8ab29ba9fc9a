package validation

import (
	"testing"

	"github.com/nivela-brasil/intake-backend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDistributorPayload() types.DistributorCreate {
	return types.DistributorCreate{
		Nome:        "Carlos",
		Email:       "c@c.com",
		Telefone:    "11988887777",
		Cidade:      "São Paulo",
		Estado:      "SP",
		Experiencia: "sim",
		Mensagem:    "Tenho rede de salões parceiros.",
	}
}

func TestValidateDistributor_OptionalFieldsDefaultEmpty(t *testing.T) {
	req := validDistributorPayload()
	req.Empresa = ""
	req.Experiencia = ""
	req.Mensagem = ""

	dist, errs := ValidateDistributor(req, BrazilPhoneRule)
	require.Empty(t, errs)
	require.NotNil(t, dist)

	assert.Empty(t, dist.Company)
	assert.Empty(t, dist.Experience)
	assert.Empty(t, dist.Message)
	assert.Equal(t, "São Paulo", dist.City)
	assert.Equal(t, "SP", dist.State)
}

func TestValidateDistributor_RequiredFields(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*types.DistributorCreate)
		badField string
	}{
		{"blank name", func(r *types.DistributorCreate) { r.Nome = "" }, "nome"},
		{"bad email", func(r *types.DistributorCreate) { r.Email = "c@c" }, "email"},
		{"blank phone", func(r *types.DistributorCreate) { r.Telefone = "" }, "telefone"},
		{"short phone", func(r *types.DistributorCreate) { r.Telefone = "119888" }, "telefone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validDistributorPayload()
			tt.mutate(&req)

			dist, errs := ValidateDistributor(req, BrazilPhoneRule)
			assert.Nil(t, dist)
			assert.Contains(t, errs, tt.badField)
		})
	}
}

func TestValidateDistributor_NormalizesEmailAndPhone(t *testing.T) {
	req := validDistributorPayload()
	req.Email = " Carlos@Example.COM "
	req.Telefone = "(11) 98888-7777"

	dist, errs := ValidateDistributor(req, BrazilPhoneRule)
	require.Empty(t, errs)
	assert.Equal(t, "carlos@example.com", dist.Email)
	assert.Equal(t, "11988887777", dist.Phone)
}
