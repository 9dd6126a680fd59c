package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TransferType is the direction of a capital transfer.
type TransferType string

const (
	TransferDeposit    TransferType = "DEPOSIT"
	TransferWithdrawal TransferType = "WITHDRAWAL"
)

// Transfer is a deposit into or withdrawal from the trading account.
type Transfer struct {
	ID     int64        `json:"id"`
	Type   TransferType `json:"type"`
	Amount Amount       `json:"amount"`
	Date   string       `json:"date"`
	Notes  string       `json:"notes,omitempty"`
}

// TransferSummary is the backend's aggregate over all transfers.
type TransferSummary struct {
	TotalDeposits    Amount `json:"total_deposits"`
	TotalWithdrawals Amount `json:"total_withdrawals"`
	NetAmount        Amount `json:"net_amount"`
	Count            int    `json:"count"`
}

// TransferList is the payload of GET /transfers/.
type TransferList struct {
	Summary   TransferSummary `json:"summary"`
	Transfers []Transfer      `json:"transfers"`
}

// Net returns deposits minus withdrawals. The backend's net figure wins when
// present.
func (l TransferList) Net() decimal.Decimal {
	if l.Summary.NetAmount.IsSet() {
		return l.Summary.NetAmount.Decimal()
	}
	net := decimal.Zero
	for _, t := range l.Transfers {
		switch TransferType(strings.ToUpper(string(t.Type))) {
		case TransferDeposit:
			net = net.Add(t.Amount.Decimal())
		case TransferWithdrawal:
			net = net.Sub(t.Amount.Decimal())
		}
	}
	return net
}
