package domain

// VerificationResult is returned per verification call and never persisted.
type VerificationResult struct {
	Success  bool   `json:"success"`
	Name     string `json:"name,omitempty"`
	BankName string `json:"bankName,omitempty"`
	IsValid  *bool  `json:"isValid,omitempty"`
	Error    string `json:"error,omitempty"`
}
