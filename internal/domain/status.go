package domain

// Status is the lifecycle state of a sub-order.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
	StatusRefunded   Status = "refunded"
)

// Action is a merchant-initiated status transition. Shipping and delivery are
// two distinct transitions; refunds happen through the payment-reversal path
// and have no merchant action.
type Action string

const (
	ActionAccept  Action = "accept"
	ActionReject  Action = "reject"
	ActionShip    Action = "ship"
	ActionDeliver Action = "deliver"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

// Terminal reports whether no merchant action can move the sub-order further.
func (s Status) Terminal() bool {
	switch s {
	case StatusDelivered, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

// Transition returns the status reached by applying action to current, or a
// TransitionError when the pair is illegal.
func Transition(current Status, action Action) (Status, error) {
	switch action {
	case ActionAccept:
		if current == StatusPending {
			return StatusProcessing, nil
		}
	case ActionReject:
		if current == StatusPending || current == StatusProcessing {
			return StatusCancelled, nil
		}
	case ActionShip:
		if current == StatusProcessing {
			return StatusShipped, nil
		}
	case ActionDeliver:
		if current == StatusShipped {
			return StatusDelivered, nil
		}
	}
	return current, &TransitionError{Current: current, Action: action}
}

// AvailableActions lists the merchant actions legal from the given status,
// in the order the console renders them.
func AvailableActions(s Status) []Action {
	switch s {
	case StatusPending:
		return []Action{ActionAccept, ActionReject}
	case StatusProcessing:
		return []Action{ActionShip, ActionReject}
	case StatusShipped:
		return []Action{ActionDeliver}
	}
	return nil
}
