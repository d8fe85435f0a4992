package entity

// Inventory is a participant's private holdings. Every quantity and the
// currency stay >= 0 at all times; the order sanitizer is the only writer
// and enforces this before returning.
type Inventory struct {
	Currency  int                `json:"currency"`
	Resources map[ResourceID]int `json:"resources"`
	Products  map[ProductID]int  `json:"products"`
}

func NewInventory(startingCurrency int) Inventory {
	return Inventory{
		Currency:  startingCurrency,
		Resources: make(map[ResourceID]int),
		Products:  make(map[ProductID]int),
	}
}

// Clone deep-copies the inventory so round processing can mutate a private
// copy while the previous snapshot stays immutable.
func (i Inventory) Clone() Inventory {
	clone := Inventory{
		Currency:  i.Currency,
		Resources: make(map[ResourceID]int, len(i.Resources)),
		Products:  make(map[ProductID]int, len(i.Products)),
	}

	for id, qty := range i.Resources {
		clone.Resources[id] = qty
	}
	for id, qty := range i.Products {
		clone.Products[id] = qty
	}

	return clone
}

func CloneInventories(inventories []Inventory) []Inventory {
	clones := make([]Inventory, len(inventories))
	for i, inv := range inventories {
		clones[i] = inv.Clone()
	}
	return clones
}
