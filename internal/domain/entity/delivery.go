package entity

// DeliveryStatus is the outcome of a chat notification attempt.
type DeliveryStatus string

const (
	DeliverySent   DeliveryStatus = "sent"
	DeliveryFailed DeliveryStatus = "failed"
)

// Message is a chat notification. ThreadTS is empty for a top-level message.
type Message struct {
	Channel  string
	Text     string
	ThreadTS string
}

// Delivery is the result of posting a Message. Timestamp identifies the posted
// message and is only set when the chat backend returns one.
type Delivery struct {
	Status    DeliveryStatus
	Timestamp string
	Reason    string
}

// Sent builds a successful Delivery.
func Sent(timestamp string) Delivery {
	return Delivery{Status: DeliverySent, Timestamp: timestamp}
}

// Failed builds a failed Delivery carrying the reason reported by the backend.
func Failed(reason string) Delivery {
	return Delivery{Status: DeliveryFailed, Reason: reason}
}

// Threadable reports whether replies can be attached to this message.
func (d Delivery) Threadable() bool {
	return d.Status == DeliverySent && d.Timestamp != ""
}
