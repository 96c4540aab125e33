package models

import "time"

type TransactionStatus string

const (
	TransactionOpen TransactionStatus = "OPEN"
	TransactionSold TransactionStatus = "SOLD"
)

// Transaction — ручная запись о покупке, заведённая командой в боте.
// Движок сигналов про неё не знает: закрывается только командой /sell.
type Transaction struct {
	ID              int64
	Symbol          string
	BuyPrice        float64
	Nominal         float64 // вложено в quote-валюте
	Quantity        float64
	TargetProfitPct float64
	StopLossPct     float64
	Status          TransactionStatus
	BuyTime         time.Time
	SellPrice       float64
	SellTime        *time.Time
}
