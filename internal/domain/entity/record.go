package entity

// Sale reports how one offer fared in the market.
type Sale struct {
	Product ProductID `json:"product"`
	Offered int       `json:"offered"`
	Filled  int       `json:"filled"`
	Price   int       `json:"price"`
	Revenue int       `json:"revenue"`
}

// ActionOutcome is the audited result of one participant's round: what was
// requested, what actually executed, and why anything was clamped.
type ActionOutcome struct {
	StartInventory Inventory         `json:"startInventory"`
	EndInventory   Inventory         `json:"endInventory"`
	Requested      RequestedAction   `json:"requested"`
	ExecutedBuys   []BuyOrder        `json:"executedBuys"`
	ExecutedCrafts []CraftOrder      `json:"executedCrafts"`
	ExecutedOffers []ExecutableOffer `json:"executedOffers"`
	Violations     []string          `json:"violations"`
	Sales          []Sale            `json:"sales"`
}

// ProductSummary aggregates one product's market clearing for a day.
// LowPrice and HighPrice are the lowest and highest prices among filled
// offers, both zero when nothing sold.
type ProductSummary struct {
	Fulfilled int `json:"fulfilled"`
	Remaining int `json:"remaining"`
	LowPrice  int `json:"lowPrice"`
	HighPrice int `json:"highPrice"`
}

type MarketSummary map[ProductID]ProductSummary

// DayRecord is the append-only audit entry for one completed round. It is
// never revised after the round transition produces it.
type DayRecord struct {
	Day      int             `json:"day"`
	Prices   DayPrices       `json:"prices"`
	Demand   DayDemand       `json:"demand"`
	Outcomes []ActionOutcome `json:"outcomes"`
	Market   MarketSummary   `json:"market"`
}
