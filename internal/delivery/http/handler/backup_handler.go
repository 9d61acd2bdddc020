package handler

import (
	"net/http"

	"cronosflow/internal/usecase"
	"cronosflow/pkg/response"
)

type BackupHandler struct {
	backupUsecase usecase.BackupUsecase
}

func NewBackupHandler(backupUsecase usecase.BackupUsecase) *BackupHandler {
	return &BackupHandler{
		backupUsecase: backupUsecase,
	}
}

func (h *BackupHandler) Gerar(w http.ResponseWriter, r *http.Request) {
	backup, err := h.backupUsecase.Export(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to generate backup")
		return
	}

	response.JSON(w, http.StatusOK, backup)
}
