package models

// TOTPSetupResponse carries the provisioning secret plus a QR code the user
// scans into an authenticator app.
type TOTPSetupResponse struct {
	Secret      string `json:"secret"`
	QRCode      string `json:"qr_code"`
	Issuer      string `json:"issuer"`
	AccountName string `json:"account_name"`
}

// TOTPVerifyRequest is the body for verify/disable calls.
type TOTPVerifyRequest struct {
	Code string `json:"code"`
}
