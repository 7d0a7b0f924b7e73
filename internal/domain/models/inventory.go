package models

// InventoryItem is an ingredient's stock position.
type InventoryItem struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	Quantity       float64 `json:"quantity"`
	RestockMin     float64 `json:"restock_min"`
	Unit           string  `json:"unit"`
	RestockOrdered float64 `json:"restock_ordered"`
}

// NeedsRestock is true when stock sits at or below the threshold.
func (i InventoryItem) NeedsRestock() bool {
	return i.Quantity <= i.RestockMin
}
