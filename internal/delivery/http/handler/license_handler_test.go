package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cronosflow/internal/delivery/dto"
	"cronosflow/internal/usecase"
	"cronosflow/pkg/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLicenseUsecase struct {
	got *dto.ActivateLicenseRequest
	err error
}

func (f *fakeLicenseUsecase) Activate(ctx context.Context, req *dto.ActivateLicenseRequest) error {
	f.got = req
	return f.err
}

func activateRequest(body string) (*httptest.ResponseRecorder, *http.Request) {
	req := httptest.NewRequest(http.MethodPost, "/api/ativar-licenca", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return httptest.NewRecorder(), req
}

func TestActivate_Success(t *testing.T) {
	uc := &fakeLicenseUsecase{}
	h := NewLicenseHandler(uc, validator.NewValidator())

	rec, req := activateRequest(`{"chave":"BROO-1234","userId":"user-1","email":"carla@example.com"}`)
	h.Activate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, "BROO-1234", uc.got.Key)

	var resp dto.ActivateLicenseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Sucesso)
}

func TestActivate_MissingFields(t *testing.T) {
	h := NewLicenseHandler(&fakeLicenseUsecase{}, validator.NewValidator())

	rec, req := activateRequest(`{"chave":"BROO-1234"}`)
	h.Activate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestActivate_UnknownKey(t *testing.T) {
	h := NewLicenseHandler(&fakeLicenseUsecase{err: usecase.ErrLicenseNotFound}, validator.NewValidator())

	rec, req := activateRequest(`{"chave":"BROO-0000","userId":"user-1"}`)
	h.Activate(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Chave inválida")
}

func TestActivate_AlreadyUsed(t *testing.T) {
	h := NewLicenseHandler(&fakeLicenseUsecase{err: usecase.ErrLicenseAlreadyUsed}, validator.NewValidator())

	rec, req := activateRequest(`{"chave":"BROO-1234","userId":"user-1"}`)
	h.Activate(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Chave já utilizada")
}
