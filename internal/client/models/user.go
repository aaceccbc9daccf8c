package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/affiliatepro/internal/csvx"
)

// User is an affiliate account together with its performance counters.
type User struct {
	ID       string    `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	Phone    string    `json:"phone"`
	Level    Tier      `json:"level"`
	Clicks   int       `json:"clicks"`
	Orders   int       `json:"orders"`
	Balance  int64     `json:"balance"`
	JoinDate time.Time `json:"joinDate"`

	// Set by a credential reset; never exported.
	SecretSalt []byte `json:"secretSalt,omitempty"`
	SecretHash []byte `json:"secretHash,omitempty"`
}

// DisplayName is the username, or the email local part when it is empty.
func (u User) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	return EmailLocalPart(u.Email)
}

// CSVRecord lists the exportable fields in column order.
func (u User) CSVRecord() csvx.Record {
	return csvx.Record{
		{Key: "id", Value: u.ID},
		{Key: "email", Value: u.Email},
		{Key: "phone", Value: u.Phone},
		{Key: "username", Value: u.Username},
		{Key: "level", Value: string(u.Level)},
		{Key: "clicks", Value: strconv.Itoa(u.Clicks)},
		{Key: "orders", Value: strconv.Itoa(u.Orders)},
		{Key: "balance", Value: strconv.FormatInt(u.Balance, 10)},
		{Key: "joinDate", Value: u.JoinDate.UTC().Format(time.RFC3339)},
	}
}

// UserPatch carries the fields an admin edit may change; nil means "keep".
type UserPatch struct {
	Username *string
	Email    *string
	Phone    *string
	Level    *Tier
	Clicks   *int
	Orders   *int
	Balance  *int64
}

// EmailLocalPart returns the part of email before "@".
func EmailLocalPart(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
