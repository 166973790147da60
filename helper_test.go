package fintrack

import "github.com/shopspring/decimal"

// dec is a helper for tests to create decimals from const.
func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// usd is a helper for tests to create reference currency money from const.
func usd(v float64) Money { return M(v, USD) }

// ils is a helper for tests to create local currency money from const.
func ils(v float64) Money { return M(v, ILS) }

// buy is a helper for tests to create a BUY stock event.
func buy(day Date, symbol string, quantity, price float64, currency string) InvestmentTransaction {
	tx := NewInvestment(day, Buy, Stock, symbol, "", dec(quantity), dec(price), currency)
	return tx
}

// sell is a helper for tests to create a SELL stock event.
func sell(day Date, symbol string, quantity, price float64, currency string) InvestmentTransaction {
	tx := NewInvestment(day, Sell, Stock, symbol, "", dec(quantity), dec(price), currency)
	return tx
}
