package handler

import (
	"encoding/json"
	"net/http"

	"cronosflow/internal/delivery/dto"
	"cronosflow/internal/usecase"
	"cronosflow/pkg/response"
	"cronosflow/pkg/validator"
)

type LicenseHandler struct {
	licenseUsecase usecase.LicenseUsecase
	validator      *validator.CustomValidator
}

func NewLicenseHandler(licenseUsecase usecase.LicenseUsecase, validator *validator.CustomValidator) *LicenseHandler {
	return &LicenseHandler{
		licenseUsecase: licenseUsecase,
		validator:      validator,
	}
}

func (h *LicenseHandler) Activate(w http.ResponseWriter, r *http.Request) {
	var req dto.ActivateLicenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	err := h.licenseUsecase.Activate(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrLicenseNotFound:
			response.NotFound(w, "Chave inválida.")
		case usecase.ErrLicenseAlreadyUsed:
			response.Conflict(w, "Chave já utilizada.")
		default:
			response.InternalServerError(w, "Erro ao ativar licença.")
		}
		return
	}

	response.JSON(w, http.StatusOK, dto.ActivateLicenseResponse{
		Sucesso:  true,
		Mensagem: "Sistema ativado!",
	})
}
