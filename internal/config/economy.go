package config

// Economy tunes the schedule generator. Slices are indexed by tier-1 and
// must cover every tier in the catalog.
type Economy struct {
	TierBasePrices   []int `env:"ECONOMY_TIER_BASE_PRICES" envDefault:"6,14" envSeparator:","`
	TierPriceSpreads []int `env:"ECONOMY_TIER_PRICE_SPREADS" envDefault:"2,4" envSeparator:","`

	TierBaseDemands   []int `env:"ECONOMY_TIER_BASE_DEMANDS" envDefault:"8,4" envSeparator:","`
	TierDemandSpreads []int `env:"ECONOMY_TIER_DEMAND_SPREADS" envDefault:"3,2" envSeparator:","`

	DailyPriceJitter  int `env:"ECONOMY_DAILY_PRICE_JITTER" envDefault:"2"`
	DailyDemandJitter int `env:"ECONOMY_DAILY_DEMAND_JITTER" envDefault:"2"`
}
