package models

type FlowStatus string

const (
	FlowIdle      FlowStatus = "idle"
	FlowRunning   FlowStatus = "running"
	FlowSucceeded FlowStatus = "succeeded"
	FlowFailed    FlowStatus = "failed"
)

// FlowState is the state of one request flow. Data is set only when
// Status is FlowSucceeded and Reason only when Status is FlowFailed.
type FlowState[T any] struct {
	Status FlowStatus `json:"status"`
	Data   *T         `json:"data,omitempty"`
	Reason string     `json:"reason,omitempty"`
}

func Idle[T any]() FlowState[T] {
	return FlowState[T]{Status: FlowIdle}
}

func Running[T any]() FlowState[T] {
	return FlowState[T]{Status: FlowRunning}
}

func Succeeded[T any](data T) FlowState[T] {
	return FlowState[T]{Status: FlowSucceeded, Data: &data}
}

func Failed[T any](reason string) FlowState[T] {
	return FlowState[T]{Status: FlowFailed, Reason: reason}
}

func (f FlowState[T]) IsRunning() bool {
	return f.Status == FlowRunning
}

// MatchResult is the scoring service answer, stored verbatim. Match is the
// percentage as a string and is only meaningful once parsed.
type MatchResult struct {
	Match   string `json:"match"`
	Summary string `json:"summary"`
}

// NotifyOutcome records where the result email was delivered.
type NotifyOutcome struct {
	Email string `json:"email"`
}
