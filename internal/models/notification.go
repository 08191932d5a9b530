package models

// Notification channels
const (
	NotificationChannelEmail = "EMAIL"
	NotificationChannelSMS   = "SMS"
)

// Notification is a fire-and-forget message to a customer. The core
// never consumes a delivery confirmation.
type Notification struct {
	ID        string `json:"id"`
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	Channel   string `json:"channel"`
}
