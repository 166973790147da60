package fintrack

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TradeSide is the event type of an investment transaction.
type TradeSide string

const (
	Buy  TradeSide = "BUY"
	Sell TradeSide = "SELL"
)

// ParseTradeSide parses a string into a TradeSide.
func ParseTradeSide(s string) (TradeSide, error) {
	switch TradeSide(strings.ToUpper(s)) {
	case Buy:
		return Buy, nil
	case Sell:
		return Sell, nil
	default:
		return "", fmt.Errorf("unknown trade side %q, want %q or %q", s, Buy, Sell)
	}
}

// AssetType classifies an instrument.
type AssetType string

const (
	Stock      AssetType = "STOCK"
	RealEstate AssetType = "REAL_ESTATE"
	Crypto     AssetType = "CRYPTO"
	OtherAsset AssetType = "OTHER"
)

// AssetTypes lists the classes in display order.
var AssetTypes = []AssetType{Stock, RealEstate, Crypto, OtherAsset}

// ParseAssetType parses a string into an AssetType.
func ParseAssetType(s string) (AssetType, error) {
	switch AssetType(strings.ToUpper(s)) {
	case Stock:
		return Stock, nil
	case RealEstate:
		return RealEstate, nil
	case Crypto:
		return Crypto, nil
	case OtherAsset:
		return OtherAsset, nil
	default:
		return "", fmt.Errorf("unknown asset type %q", s)
	}
}

// InvestmentTransaction is a single buy or sell event in the investment ledger.
type InvestmentTransaction struct {
	ID     string
	Side   TradeSide
	Asset  AssetType
	Symbol string // uppercased, the grouping key
	Name   string // optional display name
	Date   Date
	// Quantity of units, fractional to 8 places for crypto-like assets.
	Quantity Quantity
	// Price per unit, in the transaction's own currency.
	Price Money
	// Fee is captured but not factored into cost basis.
	Fee Money
}

// NewInvestment creates an investment event with a fresh id. The symbol is
// case-normalized; quantity and price are in the given currency.
func NewInvestment(day Date, side TradeSide, asset AssetType, symbol, name string, quantity, price decimal.Decimal, currency string) InvestmentTransaction {
	return InvestmentTransaction{
		ID:       NewID(),
		Side:     side,
		Asset:    asset,
		Symbol:   strings.ToUpper(symbol),
		Name:     name,
		Date:     day,
		Quantity: Q(quantity),
		Price:    M(price, currency),
	}
}

// Validate checks the fields a user-facing entry point must reject early.
func (t InvestmentTransaction) Validate() error {
	if t.Symbol == "" {
		return errors.New("instrument symbol is missing")
	}
	if t.Date.IsZero() {
		return errors.New("investment date is missing")
	}
	if _, err := ParseTradeSide(string(t.Side)); err != nil {
		return err
	}
	if _, err := ParseAssetType(string(t.Asset)); err != nil {
		return err
	}
	if !t.Quantity.IsPositive() {
		return fmt.Errorf("quantity must be positive, got %s", t.Quantity)
	}
	if !t.Price.IsPositive() {
		return fmt.Errorf("price per unit must be positive, got %s", t.Price)
	}
	if err := ValidateCurrency(t.Price.Currency()); err != nil {
		return err
	}
	return nil
}

// CheckSell rejects a sell exceeding the quantity held on its date. The
// aggregator itself does not defend against oversell; this is the entry-point
// validation that keeps one out of a well-formed ledger.
func CheckSell(txs []InvestmentTransaction, sell InvestmentTransaction) error {
	held := HeldQuantity(txs, sell.Symbol, sell.Date)
	if held.LessThan(sell.Quantity) {
		return fmt.Errorf("on %s, cannot sell %s of %s, position is only %s",
			sell.Date, sell.Quantity, sell.Symbol, held)
	}
	return nil
}

// HeldQuantity replays the ledger and returns the quantity of symbol held at
// the end of the given day.
func HeldQuantity(txs []InvestmentTransaction, symbol string, on Date) Quantity {
	var held Quantity
	for _, tx := range txs {
		if tx.Symbol != symbol || tx.Date.After(on) {
			continue
		}
		switch tx.Side {
		case Buy:
			held = held.Add(tx.Quantity)
		case Sell:
			held = held.Sub(tx.Quantity)
		}
	}
	return held
}

// Symbols returns the distinct symbols of the ledger in order of first
// appearance.
func Symbols(txs []InvestmentTransaction) []string {
	seen := make(map[string]struct{}, len(txs))
	var symbols []string
	for _, tx := range txs {
		if _, ok := seen[tx.Symbol]; ok {
			continue
		}
		seen[tx.Symbol] = struct{}{}
		symbols = append(symbols, tx.Symbol)
	}
	return symbols
}

// MarshalJSON implements the json.Marshaler interface for InvestmentTransaction.
func (t InvestmentTransaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("side", t.Side)
	w.Append("asset", t.Asset)
	w.Append("symbol", t.Symbol)
	w.Optional("name", t.Name)
	w.Append("date", t.Date)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price.Amount())
	w.Append("currency", t.Price.Currency())
	if !t.Fee.IsZero() {
		w.Append("fee", t.Fee.Amount())
	}
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for InvestmentTransaction.
func (t *InvestmentTransaction) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID       string          `json:"id"`
		Side     TradeSide       `json:"side"`
		Asset    AssetType       `json:"asset"`
		Symbol   string          `json:"symbol"`
		Name     string          `json:"name"`
		Date     Date            `json:"date"`
		Quantity Quantity        `json:"quantity"`
		Price    decimal.Decimal `json:"price"`
		Currency string          `json:"currency"`
		Fee      decimal.Decimal `json:"fee"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.ID = temp.ID
	t.Side = temp.Side
	t.Asset = temp.Asset
	t.Symbol = strings.ToUpper(temp.Symbol)
	t.Name = temp.Name
	t.Date = temp.Date
	t.Quantity = temp.Quantity
	t.Price = M(temp.Price, temp.Currency)
	if !temp.Fee.IsZero() {
		t.Fee = M(temp.Fee, temp.Currency)
	}
	return nil
}
