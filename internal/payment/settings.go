package payment

import "context"

// Provider settings are admin-maintained, one record per provider. They are
// parsed into these typed shapes at the storage boundary; nothing past it
// inspects raw key/value rows.

// CardConfig configures the card gateway. Both credentials must be present
// for the provider to count as active.
type CardConfig struct {
	Enabled   bool   `json:"enabled"`
	PublicKey string `json:"public_key"`
	SecretKey string `json:"secret_key"`
}

func (c CardConfig) Active() bool {
	return c.Enabled && c.PublicKey != "" && c.SecretKey != ""
}

// WalletConfig configures the wallet gateway.
type WalletConfig struct {
	Enabled  bool   `json:"enabled"`
	ClientID string `json:"client_id"`
	Secret   string `json:"secret"`
}

func (c WalletConfig) Active() bool {
	return c.Enabled && c.ClientID != "" && c.Secret != ""
}

// TransferConfig configures bank transfer. It has no credentials; enabling
// it is enough. Instructions are shown on the confirmation screen.
type TransferConfig struct {
	Enabled       bool   `json:"enabled"`
	AccountHolder string `json:"account_holder"`
	IBAN          string `json:"iban"`
	Instructions  string `json:"instructions"`
}

func (c TransferConfig) Active() bool {
	return c.Enabled
}

// Settings bundles all provider configurations.
type Settings struct {
	Card     CardConfig     `json:"card"`
	Wallet   WalletConfig   `json:"wallet"`
	Transfer TransferConfig `json:"transfer"`
}

// SettingsRepository reads and writes the provider configuration records.
type SettingsRepository interface {
	Load(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, s *Settings) error
}
