// Package fintrack provides the types and engines for tracking a household's
// finances: a transaction ledger, recurring monthly charges, and an
// investment portfolio with valuation against market prices.
//
// The core functionalities include:
//   - Ledger Management: Recording income and expense transactions against
//     user-ordered category lists, with dates persisted in a single
//     day-first textual form.
//   - Recurrence Materialization: Turning monthly recurring-charge
//     definitions into ledger entries, at most once per definition per
//     calendar month, deterministically from an explicit today parameter.
//   - Position Aggregation: Folding the chronological stream of buy and
//     sell events into per-instrument holdings with volume-weighted average
//     cost and invested capital, normalized into the reference currency.
//   - Valuation: Combining holdings with current and historical prices to
//     compute market value, unrealized return, and a return series charted
//     against a benchmark instrument.
//
// Every engine is a pure function of its inputs: collections flow in, new
// collections flow out, and the owning layer persists what changed. This
// package serves as the foundational logic for the `ft` command-line tool.
package fintrack
