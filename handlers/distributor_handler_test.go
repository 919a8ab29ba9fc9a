package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nivela-brasil/intake-backend/errors"
	"github.com/nivela-brasil/intake-backend/store"
	"github.com/nivela-brasil/intake-backend/types"
)

func distributorRouter(distStore *mockDistributorStore) *gin.Engine {
	handler := NewDistributorHandler(distStore, nil, nil, 10*time.Second)
	return testEngine(func(r *gin.Engine) {
		r.POST("/api/distribuidores", handler.CreateDistributor)
	})
}

func TestCreateDistributor_Success(t *testing.T) {
	distStore := new(mockDistributorStore)
	serverID := uuid.New().String()
	distStore.On("Insert", mock.Anything, mock.MatchedBy(func(d *types.Distributor) bool {
		return d.Email == "carlos@distribuidora.com.br" && d.Company == "Distribuidora Silva"
	})).Return(&types.Distributor{
		ID:        serverID,
		Name:      "Carlos Silva",
		Email:     "carlos@distribuidora.com.br",
		Phone:     "11987654321",
		Company:   "Distribuidora Silva",
		City:      "São Paulo",
		State:     "SP",
		CreatedAt: time.Now().UTC(),
	}, nil)

	w := postJSON(distributorRouter(distStore), "/api/distribuidores", `{
		"nome": "Carlos Silva",
		"email": "Carlos@Distribuidora.com.br",
		"telefone": "(11) 98765-4321",
		"empresa": "Distribuidora Silva",
		"cidade": "São Paulo",
		"estado": "SP"
	}`)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp types.DistributorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Distributor)
	assert.Equal(t, serverID, resp.Distributor.ID)
	assert.Equal(t, "carlos@distribuidora.com.br", resp.Distributor.Email)
	distStore.AssertExpectations(t)
}

func TestCreateDistributor_OptionalFieldsOmitted(t *testing.T) {
	distStore := new(mockDistributorStore)
	distStore.On("Insert", mock.Anything, mock.MatchedBy(func(d *types.Distributor) bool {
		return d.Company == "" && d.City == "" && d.Experience == ""
	})).Return(&types.Distributor{
		ID:        uuid.New().String(),
		Name:      "Carlos",
		Email:     "carlos@example.com",
		Phone:     "11987654321",
		CreatedAt: time.Now().UTC(),
	}, nil)

	w := postJSON(distributorRouter(distStore), "/api/distribuidores", `{
		"nome": "Carlos",
		"email": "carlos@example.com",
		"telefone": "11987654321"
	}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	distStore.AssertExpectations(t)
}

func TestCreateDistributor_MissingRequiredFields(t *testing.T) {
	distStore := new(mockDistributorStore)

	w := postJSON(distributorRouter(distStore), "/api/distribuidores", `{
		"empresa": "Distribuidora Silva"
	}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	fields, ok := resp["fields"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, fields, "nome")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "telefone")

	distStore.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreateDistributor_DuplicateEmail(t *testing.T) {
	distStore := new(mockDistributorStore)
	distStore.On("Insert", mock.Anything, mock.Anything).Return(nil, store.ErrDuplicateEmail)

	w := postJSON(distributorRouter(distStore), "/api/distribuidores", `{
		"nome": "Carlos Silva",
		"email": "carlos@distribuidora.com.br",
		"telefone": "11987654321"
	}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), errors.CodeEmailAlreadyRegistered)
}
