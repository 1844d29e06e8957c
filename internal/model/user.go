package model

import "github.com/shopspring/decimal"

func init() {
	// Balances and prices go out as JSON numbers, like the store columns.
	decimal.MarshalJSONWithoutQuotes = true
}

type User struct {
	ID           int64           `json:"id"`
	Name         string          `json:"nom"`
	Email        string          `json:"correu"`
	PasswordHash string          `json:"-"`
	Age          *int32          `json:"edat"`
	Nationality  string          `json:"nacionalitat"`
	PostalCode   string          `json:"codiPostal"`
	ProfileImage string          `json:"imatgePerfil"`
	Balance      decimal.Decimal `json:"btc"`
}

// UserInput is the writable part of a user. Password is plain text and is hashed by the service.
type UserInput struct {
	Name         string `json:"nom" validate:"required,max=255"`
	Email        string `json:"correu" validate:"required,email,max=255"`
	Password     string `json:"contrasenya" validate:"omitempty,min=4,max=72"`
	Age          *int32 `json:"edat" validate:"omitempty,gte=0,lte=150"`
	Nationality  string `json:"nacionalitat" validate:"max=100"`
	PostalCode   string `json:"codiPostal" validate:"max=20"`
	ProfileImage string `json:"imatgePerfil" validate:"max=2048"`
}

// BalancePolicy selects how ApplyBalanceDelta treats a result below zero.
type BalancePolicy int

const (
	// BalanceConstrained rejects any delta that would leave the balance negative.
	BalanceConstrained BalancePolicy = iota
	// BalanceUnconstrained applies the delta as is (admin credit or correction).
	BalanceUnconstrained
)

func (p BalancePolicy) String() string {
	switch p {
	case BalanceConstrained:
		return "constrained"
	case BalanceUnconstrained:
		return "unconstrained"
	default:
		return "unknown"
	}
}
