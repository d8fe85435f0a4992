package entity

type ResourceID string

type ProductID string

func (r ResourceID) String() string { return string(r) }

func (p ProductID) String() string { return string(p) }

// Resource is a raw input purchasable each day at the generated price.
type Resource struct {
	ID   ResourceID `json:"id"`
	Name string     `json:"name"`
	Tier int        `json:"tier"`
}

// Product is a craftable good consuming exactly two resources, sellable
// into the daily market.
type Product struct {
	ID     ProductID     `json:"id"`
	Name   string        `json:"name"`
	Tier   int           `json:"tier"`
	Recipe [2]ResourceID `json:"recipe"`
}

// Catalog is the closed set of tradable resources and craftable products.
// Built once at startup and never mutated.
type Catalog struct {
	resources []Resource
	products  []Product

	resourceIndex map[ResourceID]Resource
	productIndex  map[ProductID]Product
}

func NewCatalog(resources []Resource, products []Product) Catalog {
	c := Catalog{
		resources:     resources,
		products:      products,
		resourceIndex: make(map[ResourceID]Resource, len(resources)),
		productIndex:  make(map[ProductID]Product, len(products)),
	}

	for _, r := range resources {
		c.resourceIndex[r.ID] = r
	}
	for _, p := range products {
		c.productIndex[p.ID] = p
	}

	return c
}

// Resources returns resources in their declaration order, which fixes the
// draw order of the economy generator.
func (c Catalog) Resources() []Resource { return c.resources }

func (c Catalog) Products() []Product { return c.products }

func (c Catalog) Resource(id ResourceID) (Resource, bool) {
	r, ok := c.resourceIndex[id]
	return r, ok
}

func (c Catalog) Product(id ProductID) (Product, bool) {
	p, ok := c.productIndex[id]
	return p, ok
}

// Tiers returns the highest tier number used by any resource or product.
func (c Catalog) Tiers() int {
	max := 0
	for _, r := range c.resources {
		if r.Tier > max {
			max = r.Tier
		}
	}
	for _, p := range c.products {
		if p.Tier > max {
			max = p.Tier
		}
	}
	return max
}

// DefaultCatalog is the standard game content: six herbs in two price
// tiers and three potions, each consuming two distinct herbs.
func DefaultCatalog() Catalog {
	resources := []Resource{
		{ID: "H01", Name: "Sunleaf", Tier: 1},
		{ID: "H02", Name: "Marshroot", Tier: 1},
		{ID: "H03", Name: "Thistlecap", Tier: 1},
		{ID: "H04", Name: "Duskmoss", Tier: 2},
		{ID: "H05", Name: "Emberbloom", Tier: 2},
		{ID: "H06", Name: "Frostvine", Tier: 2},
	}

	products := []Product{
		{ID: "P01", Name: "Tonic of Vigor", Tier: 1, Recipe: [2]ResourceID{"H01", "H02"}},
		{ID: "P02", Name: "Draught of Wit", Tier: 2, Recipe: [2]ResourceID{"H03", "H04"}},
		{ID: "P03", Name: "Elixir of Embers", Tier: 2, Recipe: [2]ResourceID{"H05", "H06"}},
	}

	return NewCatalog(resources, products)
}
