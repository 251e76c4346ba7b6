package domain

import "time"

// InventoryUnit enumerates the fixed set of measurement units.
type InventoryUnit string

const (
	UnitKilogram   InventoryUnit = "kg"
	UnitGram       InventoryUnit = "g"
	UnitLiters     InventoryUnit = "liters"
	UnitMilliliter InventoryUnit = "ml"
	UnitPackets    InventoryUnit = "packets"
	UnitPieces     InventoryUnit = "pieces"
	UnitBags       InventoryUnit = "bags"
	UnitBoxes      InventoryUnit = "boxes"
)

// InventoryUnits lists every valid unit.
var InventoryUnits = []InventoryUnit{
	UnitKilogram,
	UnitGram,
	UnitLiters,
	UnitMilliliter,
	UnitPackets,
	UnitPieces,
	UnitBags,
	UnitBoxes,
}

// ValidUnit reports whether s names a known unit.
func ValidUnit(s string) bool {
	for _, u := range InventoryUnits {
		if string(u) == s {
			return true
		}
	}
	return false
}

// LowStockThreshold is the quantity below which an item counts as low stock.
const LowStockThreshold = 5

// InventoryItem is a stocked supply owned by a user. Quantity may be
// fractional (e.g. 2.5 kg).
type InventoryItem struct {
	ID        string
	OwnerID   string
	ItemName  string
	Quantity  float64
	Unit      InventoryUnit
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LowStock reports whether the item's quantity is below the threshold.
// It is derived on every read and never stored.
func (i InventoryItem) LowStock() bool {
	return i.Quantity < LowStockThreshold
}
