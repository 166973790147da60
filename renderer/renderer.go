// Package renderer turns the application's collections into markdown
// reports.
package renderer

import (
	"fmt"
	"strings"

	"fintrack"
)

// Transactions renders the ledger as a markdown table, most recent first.
func Transactions(ledger []fintrack.Transaction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Transactions\n\n")
	if len(ledger) == 0 {
		fmt.Fprintln(&b, "No transactions recorded.")
		return b.String()
	}
	fmt.Fprintln(&b, "| Date | Type | Category | Description | Amount |")
	fmt.Fprintln(&b, "|:---|:---|:---|:---|---:|")

	sorted := fintrack.SortByDate(ledger)
	for i := len(sorted) - 1; i >= 0; i-- {
		tx := sorted[i]
		amount := tx.Amount.String()
		if tx.Type == fintrack.Expense {
			amount = tx.Amount.Neg().SignedString()
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			tx.Date, tx.Type, tx.Category, tx.Description, amount)
	}
	return b.String()
}

// Categories renders the income and expense category lists in their display
// order.
func Categories(cats fintrack.CategoryData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Categories\n\n## Income\n\n")
	for _, c := range cats.Income {
		fmt.Fprintf(&b, "- %s\n", c)
	}
	fmt.Fprintf(&b, "\n## Expense\n\n")
	for _, c := range cats.Expense {
		fmt.Fprintf(&b, "- %s\n", c)
	}
	return b.String()
}

// Recurring renders the recurring definitions with their processing markers.
func Recurring(defs []fintrack.RecurringDefinition) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Recurring charges\n\n")
	if len(defs) == 0 {
		fmt.Fprintln(&b, "No recurring charges defined.")
		return b.String()
	}
	fmt.Fprintln(&b, "| Day | Type | Category | Description | Amount | Active | Last processed |")
	fmt.Fprintln(&b, "|---:|:---|:---|:---|---:|:---:|:---|")
	for _, def := range defs {
		active := " "
		if def.Active {
			active = "X"
		}
		last := ""
		if !def.LastProcessed.IsZero() {
			last = def.LastProcessed.String()
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s | %s |\n",
			def.DayOfMonth, def.Type, def.Category, def.Description, def.Amount, active, last)
	}
	return b.String()
}

// Holdings renders the positions grouped by asset class, each class with its
// own table, followed by portfolio totals.
func Holdings(positions []fintrack.Position) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Holdings\n\n")
	if len(positions) == 0 {
		fmt.Fprintln(&b, "No open positions.")
		return b.String()
	}

	buckets := fintrack.ByAssetType(positions)
	for _, asset := range fintrack.AssetTypes {
		bucket := buckets[asset]
		if len(bucket) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", assetLabel(asset))
		fmt.Fprintln(&b, "| Symbol | Quantity | Avg cost | Price | Market value | Gain | Gain % |")
		fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|---:|")
		for _, p := range bucket {
			price := ""
			if p.HasPrice {
				price = p.Price.String()
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
				p.Symbol, p.Quantity, p.AvgCost, price,
				p.MarketValue(), p.UnrealizedGain().SignedString(), p.GainPercent().SignedString())
		}
		fmt.Fprintln(&b)
	}

	value := fintrack.TotalMarketValue(positions)
	invested := fintrack.TotalInvested(positions)
	gain := value.Sub(invested)
	fmt.Fprintf(&b, "Total market value: **%s**, invested: %s, unrealized: %s\n",
		value, invested, gain.SignedString())
	return b.String()
}

// Performance renders the portfolio-versus-benchmark return series.
func Performance(series fintrack.PerformanceSeries, benchmark string, rng fintrack.TimeRange) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Performance (%s vs %s)\n\n", rng, benchmark)
	if series.Empty() {
		fmt.Fprintln(&b, "No data for this range.")
		return b.String()
	}
	fmt.Fprintln(&b, "| Date | Portfolio | Benchmark |")
	fmt.Fprintln(&b, "|:---|---:|---:|")
	for i, ts := range series.Timestamps {
		fmt.Fprintf(&b, "| %s | %+.2f%% | %+.2f%% |\n",
			fintrack.DateOfUnix(ts), series.Portfolio[i], series.Benchmark[i])
	}
	return b.String()
}

func assetLabel(asset fintrack.AssetType) string {
	switch asset {
	case fintrack.Stock:
		return "Stocks"
	case fintrack.RealEstate:
		return "Real estate"
	case fintrack.Crypto:
		return "Crypto"
	default:
		return "Other"
	}
}
