package rest

// RunRequest starts a run.
type RunRequest struct {
	Seed             string   `json:"seed" validate:"required"`
	Days             int      `json:"days" validate:"required,min=1,max=365"`
	StartingCurrency int      `json:"startingCurrency" validate:"min=0"`
	Participants     []string `json:"participants" validate:"required,min=1,dive,oneof=scripted llm human"`
}

// Run is the run header returned on creation and lookup.
type Run struct {
	ID           string   `json:"id"`
	Seed         string   `json:"seed"`
	Days         int      `json:"days"`
	Participants []string `json:"participants"`
	Completed    bool     `json:"completed"`
}

// GameState is one snapshot of a run.
type GameState struct {
	RunID       string              `json:"runId"`
	Day         int                 `json:"day"`
	TotalDays   int                 `json:"totalDays"`
	Completed   bool                `json:"completed"`
	Inventories []Inventory         `json:"inventories"`
	Statuses    []ParticipantStatus `json:"statuses"`
	Usage       []DecisionUsage     `json:"usage"`
}

type Inventory struct {
	Currency  int            `json:"currency"`
	Resources map[string]int `json:"resources"`
	Products  map[string]int `json:"products"`
}

type ParticipantStatus struct {
	Index        int    `json:"index"`
	Disqualified bool   `json:"disqualified"`
	Reason       string `json:"reason,omitempty"`
}

type DecisionUsage struct {
	Requests       int   `json:"requests"`
	InputTokens    int64 `json:"inputTokens"`
	OutputTokens   int64 `json:"outputTokens"`
	CostMicrocents int64 `json:"costMicrocents"`
	ElapsedMs      int64 `json:"elapsedMs"`
}

// DayRecord is the immutable audit entry of one completed round.
type DayRecord struct {
	Day      int                       `json:"day"`
	Prices   map[string]int            `json:"prices"`
	Demand   map[string]int            `json:"demand"`
	Outcomes []ActionOutcome           `json:"outcomes"`
	Market   map[string]ProductSummary `json:"market"`
}

type ActionOutcome struct {
	StartInventory Inventory `json:"startInventory"`
	EndInventory   Inventory `json:"endInventory"`
	Requested      Decision  `json:"requested"`
	ExecutedBuys   []Buy     `json:"executedBuys"`
	ExecutedCrafts []Craft   `json:"executedCrafts"`
	ExecutedOffers []Offer   `json:"executedOffers"`
	Violations     []string  `json:"violations"`
	Sales          []Sale    `json:"sales"`
}

type Buy struct {
	Resource string `json:"resource"`
	Qty      int    `json:"qty"`
}

type Craft struct {
	Product string `json:"product"`
	Qty     int    `json:"qty"`
}

type Offer struct {
	Product   string `json:"product"`
	Price     int    `json:"price"`
	Qty       int    `json:"qty"`
	FilledQty int    `json:"filledQty"`
}

type Sale struct {
	Product string `json:"product"`
	Offered int    `json:"offered"`
	Filled  int    `json:"filled"`
	Price   int    `json:"price"`
	Revenue int    `json:"revenue"`
}

type ProductSummary struct {
	Fulfilled int `json:"fulfilled"`
	Remaining int `json:"remaining"`
	LowPrice  int `json:"lowPrice"`
	HighPrice int `json:"highPrice"`
}

// Schedule is the generated economy of a run.
type Schedule struct {
	Seed string        `json:"seed"`
	Days []ScheduleDay `json:"days"`
}

type ScheduleDay struct {
	Day    int            `json:"day"`
	Prices map[string]int `json:"prices"`
	Demand map[string]int `json:"demand"`
}

// Decision is a human participant's raw round decision.
type Decision struct {
	Buys   []Buy           `json:"buys,omitempty"`
	Crafts []Craft         `json:"crafts,omitempty"`
	Offers []DecisionOffer `json:"offers,omitempty"`
}

type DecisionOffer struct {
	Product string `json:"product"`
	Price   int    `json:"price" validate:"min=1"`
	Qty     int    `json:"qty" validate:"min=0"`
}

// Error is the error reply model.
type Error struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	SupportID string `json:"supportId"`
}
