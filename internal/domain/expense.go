package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory enumerates the fixed set of expense categories.
type ExpenseCategory string

const (
	CategorySeeds      ExpenseCategory = "Seeds"
	CategoryFertilizer ExpenseCategory = "Fertilizer"
	CategoryLabor      ExpenseCategory = "Labor"
	CategoryEquipment  ExpenseCategory = "Equipment"
	CategoryWater      ExpenseCategory = "Water"
	CategoryPesticides ExpenseCategory = "Pesticides"
	CategoryFuel       ExpenseCategory = "Fuel"
	CategoryOther      ExpenseCategory = "Other"
)

// ExpenseCategories lists every valid category in display order.
var ExpenseCategories = []ExpenseCategory{
	CategorySeeds,
	CategoryFertilizer,
	CategoryLabor,
	CategoryEquipment,
	CategoryWater,
	CategoryPesticides,
	CategoryFuel,
	CategoryOther,
}

// ParseCategory maps a raw string onto a known category. Unknown or empty
// values fall back to Other rather than failing the write.
func ParseCategory(s string) ExpenseCategory {
	for _, c := range ExpenseCategories {
		if string(c) == s {
			return c
		}
	}
	return CategoryOther
}

// Expense is a single farm expense owned by a user. Date is a calendar day
// in YYYY-MM-DD form; month filtering is a prefix match on it.
type Expense struct {
	ID        string
	OwnerID   string
	Date      string
	Category  ExpenseCategory
	Amount    decimal.Decimal
	Notes     string
	CreatedAt time.Time
}
