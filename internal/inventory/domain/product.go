package domain

import (
	"time"

	"gorm.io/gorm"
)

// InventoryType classifies how sellable a product currently is
type InventoryType string

const (
	InStock      InventoryType = "in_stock"
	LowStock     InventoryType = "low_stock"
	OutOfStock   InventoryType = "out_of_stock"
	Discontinued InventoryType = "discontinued"
)

// Product is the stock-bearing entity. Available, ReservedTotal and SoldTotal
// are only ever mutated through the ledger commands, inside a locked row.
type Product struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	Name          string         `json:"name" gorm:"not null"`
	VendorID      uint           `json:"vendor_id" gorm:"not null;index"`
	Available     int            `json:"available" gorm:"not null;default:0"`
	ReservedTotal int            `json:"reserved_total" gorm:"not null;default:0"`
	SoldTotal     int            `json:"sold_total" gorm:"not null;default:0"`
	InventoryType InventoryType  `json:"inventory_type" gorm:"not null;default:'out_of_stock'"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// Classify derives the inventory type from the available quantity
func Classify(available, threshold int) InventoryType {
	switch {
	case available <= 0:
		return OutOfStock
	case available <= threshold:
		return LowStock
	default:
		return InStock
	}
}

// Reclassify recomputes InventoryType from Available. Discontinued is sticky:
// a vendor pulled the product, stock movements do not resurrect it.
func (p *Product) Reclassify(threshold int) {
	if p.InventoryType == Discontinued {
		return
	}
	p.InventoryType = Classify(p.Available, threshold)
}

// Reserve moves quantity from available into the reserved tally
func (p *Product) Reserve(qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if p.Available < qty {
		return ErrInsufficientStock
	}
	p.Available -= qty
	p.ReservedTotal += qty
	return nil
}

// Release credits a released hold back into available stock.
// ReservedTotal is clamped at zero so a drifted tally cannot block repair.
func (p *Product) Release(qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if p.ReservedTotal < qty {
		p.ReservedTotal = 0
	} else {
		p.ReservedTotal -= qty
	}
	p.Available += qty
	return nil
}

// Commit converts a hold into a sale. The available debit already happened at
// reserve time, so only the tallies move.
func (p *Product) Commit(qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if p.ReservedTotal < qty {
		p.ReservedTotal = 0
	} else {
		p.ReservedTotal -= qty
	}
	p.SoldTotal += qty
	return nil
}

// Restock provisions additional sellable quantity
func (p *Product) Restock(qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	p.Available += qty
	return nil
}

// ShouldAlertLowStock reports whether a status change warrants paging the
// vendor. Out-of-stock entries are suppressed: once available hits zero there
// is nothing actionable left to protect.
func ShouldAlertLowStock(prev, next InventoryType, available int) bool {
	if available <= 0 {
		return false
	}
	return (next == LowStock || next == OutOfStock) && prev != next
}
