package log

const (
	// Request
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldLatency   = "latency_ms"
	FieldClientIP  = "client_ip"

	// Participant
	FieldConnID  = "conn_id"
	FieldAnonID  = "anon_id"
	FieldPartner = "partner_id"

	// Chat
	FieldRoomID    = "room_id"
	FieldRoomName  = "room_name"
	FieldEventType = "event_type"
	FieldAudience  = "audience"

	// Service
	FieldService = "service"

	// Log type (for audit log)
	FieldLogType = "log_type"
	LogTypeAudit = "audit"
)
