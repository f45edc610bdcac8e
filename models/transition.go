package models

// StatusTransition declares one valid status change. The transition tables
// in this package are domain knowledge consumed by the FSM validator in
// services.
type StatusTransition struct {
	Src string
	Dst string
}
