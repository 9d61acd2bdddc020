package dto

type ActivateLicenseRequest struct {
	Key    string `json:"chave" validate:"required"`
	UserID string `json:"userId" validate:"required"`
	Email  string `json:"email" validate:"omitempty,email"`
}

type ActivateLicenseResponse struct {
	Sucesso  bool   `json:"sucesso"`
	Mensagem string `json:"mensagem"`
}
