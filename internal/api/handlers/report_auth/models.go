package report_auth

// ReportAuthRequest HTTP request model
type ReportAuthRequest struct {
	Pin string `json:"pin" validate:"required,max=64"`
}

// ReportAuthResponse HTTP response model
type ReportAuthResponse struct {
	ExpiresAt string `json:"expiresAt"`
}
