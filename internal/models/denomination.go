package models

import (
	"errors"
	"fmt"
)

// Category tells bills apart from coins
type Category string

const (
	CategoryBill Category = "bill"
	CategoryCoin Category = "coin"
)

// Denomination is a single bill or coin type with a fixed face value
type Denomination struct {
	Key        string   `json:"key"`
	MinorValue int64    `json:"minorValue"` // face value in cents
	Category   Category `json:"category"`
	Label      string   `json:"label"` // used in withdrawal instructions, e.g. "$20 bills"
}

// Catalog is the ordered list of denominations a drawer can hold.
// The order is strictly descending by MinorValue; the planner relies on it.
type Catalog struct {
	denominations []Denomination
}

// NewCatalog validates the ordering and keys of the given denominations
func NewCatalog(denominations ...Denomination) (Catalog, error) {
	if len(denominations) == 0 {
		return Catalog{}, errors.New("catalog must contain at least one denomination")
	}

	seen := make(map[string]struct{}, len(denominations))
	for i, d := range denominations {
		if d.Key == "" {
			return Catalog{}, fmt.Errorf("denomination at position %d has an empty key", i)
		}
		if d.MinorValue <= 0 {
			return Catalog{}, fmt.Errorf("denomination %q must have a positive value", d.Key)
		}
		if _, dup := seen[d.Key]; dup {
			return Catalog{}, fmt.Errorf("duplicate denomination key %q", d.Key)
		}
		if i > 0 && d.MinorValue >= denominations[i-1].MinorValue {
			return Catalog{}, fmt.Errorf("denomination %q is out of descending order", d.Key)
		}
		seen[d.Key] = struct{}{}
	}

	copied := make([]Denomination, len(denominations))
	copy(copied, denominations)
	return Catalog{denominations: copied}, nil
}

// MustCatalog is NewCatalog for package-level tables that are known to be valid
func MustCatalog(denominations ...Denomination) Catalog {
	c, err := NewCatalog(denominations...)
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultCatalog is the US till: six bill slots and four coin slots
func DefaultCatalog() Catalog {
	return MustCatalog(
		Denomination{Key: "bills100", MinorValue: 10000, Category: CategoryBill, Label: "$100 bills"},
		Denomination{Key: "bills50", MinorValue: 5000, Category: CategoryBill, Label: "$50 bills"},
		Denomination{Key: "bills20", MinorValue: 2000, Category: CategoryBill, Label: "$20 bills"},
		Denomination{Key: "bills10", MinorValue: 1000, Category: CategoryBill, Label: "$10 bills"},
		Denomination{Key: "bills5", MinorValue: 500, Category: CategoryBill, Label: "$5 bills"},
		Denomination{Key: "bills1", MinorValue: 100, Category: CategoryBill, Label: "$1 bills"},
		Denomination{Key: "quarters", MinorValue: 25, Category: CategoryCoin, Label: "quarters"},
		Denomination{Key: "dimes", MinorValue: 10, Category: CategoryCoin, Label: "dimes"},
		Denomination{Key: "nickels", MinorValue: 5, Category: CategoryCoin, Label: "nickels"},
		Denomination{Key: "pennies", MinorValue: 1, Category: CategoryCoin, Label: "pennies"},
	)
}

// Denominations returns a copy of the catalog in its fixed order
func (c Catalog) Denominations() []Denomination {
	copied := make([]Denomination, len(c.denominations))
	copy(copied, c.denominations)
	return copied
}

// Keys returns the denomination keys in catalog order
func (c Catalog) Keys() []string {
	keys := make([]string, len(c.denominations))
	for i, d := range c.denominations {
		keys[i] = d.Key
	}
	return keys
}

// Lookup finds a denomination by key
func (c Catalog) Lookup(key string) (Denomination, bool) {
	for _, d := range c.denominations {
		if d.Key == key {
			return d, true
		}
	}
	return Denomination{}, false
}

func (c Catalog) Len() int {
	return len(c.denominations)
}
