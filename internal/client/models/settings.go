package models

import "time"

// Defaults shown when the admin has not configured a value.
const (
	DefaultBankName    = "BCA"
	DefaultBankAccount = "1234567890"
	DefaultAdminName   = "Admin AffiliatePro"
	DefaultContactURL  = "https://wa.me/628123456789"
	DefaultMinWithdraw = int64(50000)
)

// BankInfo is where members transfer upgrade payments.
type BankInfo struct {
	BankName    string
	BankAccount string
	AdminName   string
}

// WithdrawPolicy controls member withdrawals.
type WithdrawPolicy struct {
	Enabled bool
	Minimum int64
}

// WithdrawRequest is what a member submits to cash out.
type WithdrawRequest struct {
	Name    string `validate:"required"`
	Account string `validate:"required,numeric"`
	Bank    string `validate:"required"`
	Amount  int64  `validate:"gt=0"`
}

// Withdrawal is an accepted withdrawal kept for the admin's records.
type Withdrawal struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Account   string    `json:"account"`
	Bank      string    `json:"bank"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}

// UpgradeRequest describes a pending membership purchase.
type UpgradeRequest struct {
	CurrentLevel Tier
	TargetLevel  Tier
	Price        int64
	BankInfo
}
