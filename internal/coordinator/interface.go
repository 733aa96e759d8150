package coordinator

// Sender is the transport boundary. Delivery is best-effort fire-and-forget:
// unknown or dead connection ids are dropped by the implementation.
type Sender interface {
	SendTo(connID string, message interface{})
}
