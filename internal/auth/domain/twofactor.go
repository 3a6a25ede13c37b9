package domain

// TwoFactorSecret is the JSON shape stored (encrypted) in the users table.
// The URI embeds the secret, so both travel through the cipher together.
type TwoFactorSecret struct {
	Secret string `json:"secret"`
	URI    string `json:"uri"`
}
