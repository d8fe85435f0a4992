package entity

// RequestedAction is what a participant asked to do this round. It comes
// from an untrusted decision provider and may be infeasible; the order
// sanitizer clamps it to what the inventory actually allows.
type RequestedAction struct {
	Buys   []BuyOrder   `json:"buys,omitempty"`
	Crafts []CraftOrder `json:"crafts,omitempty"`
	Offers []SellOffer  `json:"offers,omitempty"`
}

type BuyOrder struct {
	Resource ResourceID `json:"resource"`
	Qty      int        `json:"qty"`
}

type CraftOrder struct {
	Product ProductID `json:"product"`
	Qty     int       `json:"qty"`
}

type SellOffer struct {
	Product ProductID `json:"product"`
	Price   int       `json:"price"`
	Qty     int       `json:"qty"`
}

// EmptyAction is what a disqualified or silent participant contributes.
func EmptyAction() RequestedAction {
	return RequestedAction{}
}

func (a RequestedAction) IsEmpty() bool {
	return len(a.Buys) == 0 && len(a.Crafts) == 0 && len(a.Offers) == 0
}

// ExecutableOffer is a sell offer after clamping. FilledQty and Owner are
// populated by the market clearer and the round transition respectively.
type ExecutableOffer struct {
	Product   ProductID `json:"product"`
	Price     int       `json:"price"`
	Qty       int       `json:"qty"`
	FilledQty int       `json:"filledQty"`
	Owner     int       `json:"owner"`
}
