package entity

import "time"

// ParticipantStatus tracks disqualification. Once disqualified a
// participant stays disqualified for the rest of the run.
type ParticipantStatus struct {
	Index        int    `json:"index"`
	Disqualified bool   `json:"disqualified"`
	Reason       string `json:"reason,omitempty"`
}

// DecisionUsage accumulates what a participant's decision provider spent.
type DecisionUsage struct {
	Requests       int           `json:"requests"`
	InputTokens    int64         `json:"inputTokens"`
	OutputTokens   int64         `json:"outputTokens"`
	CostMicrocents int64         `json:"costMicrocents"`
	Elapsed        time.Duration `json:"elapsedNs"`
}

func (u DecisionUsage) Add(other DecisionUsage) DecisionUsage {
	u.Requests += other.Requests
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
	u.CostMicrocents += other.CostMicrocents
	u.Elapsed += other.Elapsed
	return u
}

// GameState is the immutable top-level snapshot emitted once before round
// one (day 0) and once per completed round. State is never mutated in
// place, only replaced by the next snapshot.
type GameState struct {
	RunID       string              `json:"runId"`
	Day         int                 `json:"day"`
	TotalDays   int                 `json:"totalDays"`
	Completed   bool                `json:"completed"`
	Inventories []Inventory         `json:"inventories"`
	Records     []DayRecord         `json:"records"`
	Statuses    []ParticipantStatus `json:"statuses"`
	Usage       []DecisionUsage     `json:"usage"`
}

// LastRecord returns the most recent day record, if any round completed.
func (s GameState) LastRecord() (DayRecord, bool) {
	if len(s.Records) == 0 {
		return DayRecord{}, false
	}
	return s.Records[len(s.Records)-1], true
}
