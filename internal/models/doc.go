// Package models defines the core domain models for the Vereinskasse.
//
// # Models
//
//   - Product: a sellable article in the catalog
//   - ReceiptItem: one line (product + quantity) of a cart or receipt
//   - CompletedReceipt: a finished sale, immutable once created
//   - DailySales: per-day aggregate derived from the ledger (never stored)
//   - SalesSummary: totals across the whole ledger (never stored)
//
// # Design Principles
//
// 1. **Snapshots, not references**: a ReceiptItem embeds a copy of the
// Product. Editing or deleting a product never changes sales history.
// 2. **Money is decimal**: prices and totals use decimal.Decimal so that
// 3.50 × 2 is exactly 7.00.
// 3. **JSON shape is the persisted shape**: the json tags below are the
// layout of the stored collections.
package models
