package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Client struct {
	Name        string                      `json:"name"`
	Email       string                      `json:"email"`
	Phone       string                      `json:"phone"`
	FatherName  string                      `json:"fatherName"`
	FatherPhone string                      `json:"fatherPhone"`
	Age         string                      `json:"age"`
	Gender      string                      `json:"gender"`
	Dob         string                      `json:"dob"`
	Address     string                      `json:"address"`
	City        string                      `json:"city"`
	State       string                      `json:"state"`
	Country     string                      `json:"country"`
	Courses     datatypes.JSONSlice[string] `json:"courses"`
}

// TransactionRecord is one row of the payment ledger. Status is free text; the
// callback writes success/failed, back office may write anything.
type TransactionRecord struct {
	DTO
	Client        Client          `gorm:"embedded;embeddedPrefix:client_" json:"client"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	TransactionID string          `gorm:"size:64;index;not null" json:"transactionId"`
	MerchantTxnNo *string         `gorm:"size:64;uniqueIndex" json:"merchantTxnNo,omitempty"`
	Course        string          `gorm:"size:120" json:"course"`
	ResponseCode  string          `gorm:"size:32" json:"responseCode,omitempty"`
	Status        string          `gorm:"size:32;not null" json:"status"`
}

func (TransactionRecord) TableName() string { return "payment_transactions" }

type ClientInput struct {
	Name        string   `json:"name" validate:"omitempty,max=120"`
	Email       string   `json:"email" validate:"omitempty,email"`
	Phone       string   `json:"phone" validate:"omitempty,max=20"`
	FatherName  string   `json:"fatherName" validate:"omitempty,max=120"`
	FatherPhone string   `json:"fatherPhone" validate:"omitempty,max=20"`
	Age         string   `json:"age" validate:"omitempty,max=3"`
	Gender      string   `json:"gender" validate:"omitempty,max=20"`
	Dob         string   `json:"dob" validate:"omitempty,max=32"`
	Address     string   `json:"address" validate:"omitempty,max=255"`
	City        string   `json:"city" validate:"omitempty,max=80"`
	State       string   `json:"state" validate:"omitempty,max=80"`
	Country     string   `json:"country" validate:"omitempty,max=80"`
	Courses     []string `json:"courses" validate:"omitempty,dive,max=120"`
}

type CreateTransactionInput struct {
	Client        ClientInput      `json:"client"`
	Amount        *decimal.Decimal `json:"amount"`
	TransactionID string           `json:"transactionId" validate:"required,max=64"`
	Status        string           `json:"status" validate:"required,max=32"`
}

type UpdateTransactionInput struct {
	Client ClientInput `json:"client"`
}

type TransactionFilter struct {
	Pagination
	Status *string `query:"status" json:"status"`
}

type CallbackEventKind string

const (
	CallbackEmpty       CallbackEventKind = "empty"
	CallbackJSON        CallbackEventKind = "json"
	CallbackFormEncoded CallbackEventKind = "form"
	CallbackRawFallback CallbackEventKind = "raw"
)

// CallbackEvent is the audit row written for every gateway callback.
type CallbackEvent struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	MerchantTxnNo string            `gorm:"size:64;index" json:"merchantTxnNo"`
	Kind          CallbackEventKind `gorm:"size:16;not null" json:"kind"`
	ResponseCode  string            `gorm:"size:32" json:"responseCode"`
	Outcome       PaymentOutcome    `gorm:"size:16;not null" json:"outcome"`
	Method        string            `gorm:"size:8" json:"method"`
	Verified      bool              `gorm:"not null;default:false" json:"verified"`
	Payload       datatypes.JSON    `json:"payload"`
	ReceivedAt    time.Time         `gorm:"index" json:"receivedAt"`
}

func (CallbackEvent) TableName() string { return "payment_callback_events" }
