package models

import "fmt"

// RequestStatus represents the lifecycle state of a maintenance request.
type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "pending"
	RequestStatusApproved   RequestStatus = "approved"
	RequestStatusRejected   RequestStatus = "rejected"
	RequestStatusAssigned   RequestStatus = "assigned"
	RequestStatusInProgress RequestStatus = "in_progress"
	RequestStatusCompleted  RequestStatus = "completed"
)

// WorkOrderStatus represents the lifecycle state of a work order.
type WorkOrderStatus string

const (
	WorkOrderStatusAssigned   WorkOrderStatus = "assigned"
	WorkOrderStatusInProgress WorkOrderStatus = "in_progress"
	WorkOrderStatusOnHold     WorkOrderStatus = "on_hold"
	WorkOrderStatusCompleted  WorkOrderStatus = "completed"
	WorkOrderStatusCancelled  WorkOrderStatus = "cancelled"
)

// RequestPriority represents the urgency of a maintenance request.
type RequestPriority string

const (
	PriorityLow    RequestPriority = "low"
	PriorityMedium RequestPriority = "medium"
	PriorityHigh   RequestPriority = "high"
	PriorityUrgent RequestPriority = "urgent"
)

var requestTransitions = map[RequestStatus]map[RequestStatus]bool{
	RequestStatusPending:    {RequestStatusApproved: true, RequestStatusRejected: true},
	RequestStatusApproved:   {RequestStatusAssigned: true},
	RequestStatusAssigned:   {RequestStatusInProgress: true},
	RequestStatusInProgress: {RequestStatusCompleted: true},
	RequestStatusRejected:   {},
	RequestStatusCompleted:  {},
}

var workOrderTransitions = map[WorkOrderStatus]map[WorkOrderStatus]bool{
	WorkOrderStatusAssigned:   {WorkOrderStatusInProgress: true, WorkOrderStatusCancelled: true},
	WorkOrderStatusInProgress: {WorkOrderStatusOnHold: true, WorkOrderStatusCompleted: true, WorkOrderStatusCancelled: true},
	WorkOrderStatusOnHold:     {WorkOrderStatusInProgress: true, WorkOrderStatusCancelled: true},
	WorkOrderStatusCompleted:  {},
	WorkOrderStatusCancelled:  {},
}

// ParseRequestStatus validates an incoming request status string.
func ParseRequestStatus(s string) (RequestStatus, error) {
	switch RequestStatus(s) {
	case RequestStatusPending, RequestStatusApproved, RequestStatusRejected,
		RequestStatusAssigned, RequestStatusInProgress, RequestStatusCompleted:
		return RequestStatus(s), nil
	default:
		return "", fmt.Errorf("unknown request status: %q", s)
	}
}

// ParseWorkOrderStatus validates an incoming work order status string.
func ParseWorkOrderStatus(s string) (WorkOrderStatus, error) {
	switch WorkOrderStatus(s) {
	case WorkOrderStatusAssigned, WorkOrderStatusInProgress, WorkOrderStatusOnHold,
		WorkOrderStatusCompleted, WorkOrderStatusCancelled:
		return WorkOrderStatus(s), nil
	default:
		return "", fmt.Errorf("unknown work order status: %q", s)
	}
}

// ParseRequestPriority validates an incoming priority string.
func ParseRequestPriority(s string) (RequestPriority, error) {
	switch RequestPriority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return RequestPriority(s), nil
	default:
		return "", fmt.Errorf("unknown priority: %q", s)
	}
}

// CanTransitionTo reports whether the request status graph allows
// moving from s to target.
func (s RequestStatus) CanTransitionTo(target RequestStatus) bool {
	allowed, ok := requestTransitions[s]
	if !ok {
		return false
	}
	return allowed[target]
}

// IsTerminal reports whether no further request transitions are allowed.
func (s RequestStatus) IsTerminal() bool {
	return len(requestTransitions[s]) == 0
}

// CanTransitionTo reports whether the work order status graph allows
// moving from s to target.
func (s WorkOrderStatus) CanTransitionTo(target WorkOrderStatus) bool {
	allowed, ok := workOrderTransitions[s]
	if !ok {
		return false
	}
	return allowed[target]
}

// IsTerminal reports whether no further work order transitions are allowed.
func (s WorkOrderStatus) IsTerminal() bool {
	return len(workOrderTransitions[s]) == 0
}
