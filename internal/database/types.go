package database

import "github.com/shopspring/decimal"

type Holding struct {
	Symbol string          `db:"symbol" json:"symbol"`
	Shares decimal.Decimal `db:"shares" json:"sharesHeld"`
}
