package ledger

import "github.com/shopspring/decimal"

// CapExceeded reports whether appending amount to the given history would push
// the paid total past the base amount. Non-positive amounts (refund entries)
// never trip the cap.
func CapExceeded(base decimal.Decimal, lines []Line, amount decimal.Decimal) bool {
	if !amount.IsPositive() {
		return false
	}
	return amount.GreaterThan(Project(base, decimal.Zero, lines).RemainingAmount)
}

// AnchorProtected reports whether entryID is the chronologically first entry
// of a multi-entry history. The first entry anchors the reconciliation and
// may only be deleted once it is the sole entry left.
func AnchorProtected(entryID string, orderedEntryIDs []string) bool {
	return len(orderedEntryIDs) > 1 && orderedEntryIDs[0] == entryID
}
