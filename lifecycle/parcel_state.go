package lifecycle

import (
	"errors"

	"parcel-delivery-api/models"
)

// Actors that may trigger delivery transitions
const (
	ActorAdmin = "admin"
	ActorRider = "rider"
)

// Transition defines a valid delivery state change and who can perform it
type Transition struct {
	From  models.DeliveryStatus
	To    models.DeliveryStatus
	Actor string
}

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	// Admin/dispatch hands the parcel to a rider
	{From: models.StatusPending, To: models.StatusRiderAssigned, Actor: ActorAdmin},
	// Rider picks up the parcel
	{From: models.StatusRiderAssigned, To: models.StatusInTransit, Actor: ActorRider},
	// Rider completes the delivery, either to the door or to a service center
	{From: models.StatusInTransit, To: models.StatusDelivered, Actor: ActorRider},
	{From: models.StatusInTransit, To: models.StatusServiceCenterDelivered, Actor: ActorRider},
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From  models.DeliveryStatus
	To    models.DeliveryStatus
	Actor string
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.DeliveryStatus) []models.DeliveryStatus {
	var nexts []models.DeliveryStatus
	seen := map[models.DeliveryStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move a parcel from one
// delivery state to another
func CanTransition(from, to models.DeliveryStatus, actor string) error {
	key := transitionKey{From: from, To: to, Actor: actor}
	if transitionMap[key] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			" is not allowed for actor '" + actor + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.DeliveryStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// CanRecordPayment guards the unpaid -> paid transition. A second payment
// against the same parcel is rejected so the ledger stays one entry per
// parcel.
func CanRecordPayment(p *models.Parcel) error {
	if p.PaymentStatus == models.PaymentPaid {
		return errors.New("parcel is already paid")
	}
	return nil
}

// CanCashout guards the not_cashed -> cashed_out transition. Cash can only
// be reconciled after it was collected.
func CanCashout(p *models.Parcel) error {
	if p.PaymentStatus != models.PaymentPaid {
		return errors.New("parcel must be paid before cashout")
	}
	if p.CashoutStatus == models.CashoutCashedOut {
		return errors.New("parcel is already cashed out")
	}
	return nil
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
