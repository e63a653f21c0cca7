package model

import "time"

// InvestmentStatus tracks where an investment sits in its lifecycle.
type InvestmentStatus string

const (
	// StatusOpen represents an investment that has been bought but not yet sold.
	StatusOpen InvestmentStatus = "open"
	// StatusSold represents a completed flip with a recorded sale.
	StatusSold InvestmentStatus = "sold"
)

// Investment represents a single Grand Exchange flip: a buy, and
// eventually a sale. Prices are in whole gp per unit.
type Investment struct {
	PurchasedAt   time.Time
	SoldAt        *time.Time
	SellPrice     *int64
	ItemName      string
	Status        InvestmentStatus
	ID            int64
	ItemID        int64
	Quantity      int64
	PurchasePrice int64
	TaxPaid       int64
}

// Profit returns the realized profit in gp: total sale value minus
// total purchase cost minus tax. An unsold investment reports the
// loss of its full purchase cost.
func (i Investment) Profit() int64 {
	var sell int64
	if i.SellPrice != nil {
		sell = *i.SellPrice
	}
	return sell*i.Quantity - i.PurchasePrice*i.Quantity - i.TaxPaid
}

// ROI returns the return on investment as a percentage of the total
// purchase cost. A zero or negative cost basis yields 0 rather than
// dividing by zero.
func (i Investment) ROI() float64 {
	cost := i.PurchasePrice * i.Quantity
	if cost <= 0 {
		return 0
	}
	return float64(i.Profit()) / float64(cost) * 100
}

// IsSold reports whether the investment has a completed sale.
func (i Investment) IsSold() bool {
	return i.Status == StatusSold
}
