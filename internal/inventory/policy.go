package inventory

// NeedsReorder reports whether a stock level at or below the threshold
// calls for a restock.
func NeedsReorder(stock, threshold int) bool {
	return stock <= threshold
}

// ReorderQuantity is the suggested restock size for a threshold: twice
// the threshold.
func ReorderQuantity(threshold int) int {
	return 2 * threshold
}
