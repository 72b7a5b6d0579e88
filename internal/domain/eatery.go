package domain

// Point is a geographic coordinate pair.
type Point struct {
	Latitude  float64
	Longitude float64
}

// PaymentMethod is a tender type an eatery accepts.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCredit PaymentMethod = "credit"
	PaymentSwipe  PaymentMethod = "swipe"
	PaymentBRB    PaymentMethod = "brb"
)

func (p PaymentMethod) String() string {
	return string(p)
}

// Eatery is the engine's view of one dining location, already deserialized
// by the feed layer. The engine only reads it.
type Eatery struct {
	ID             int64
	Name           string
	CampusArea     string
	Coordinates    *Point
	PaymentMethods []PaymentMethod
	Events         []Event

	// WaitTimesByDay holds historical service-wait observations keyed by
	// the canonical day they were sampled on.
	WaitTimesByDay map[Day]WaitTimes
}

func (e Eatery) AcceptsPayment(m PaymentMethod) bool {
	for _, pm := range e.PaymentMethods {
		if pm == m {
			return true
		}
	}
	return false
}
