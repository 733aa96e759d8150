package audit

import (
	"anonchat/pkg/log"
)

// Audit actions for the chat coordinator.
const (
	ActionCreateRoom = "room.create"
	ActionCloseRoom  = "room.close"
	ActionPairStart  = "pair.start"
	ActionPairEnd    = "pair.end"
)

// Field constants for audit entries.
const (
	FieldAction = "action"
	FieldDetail = "detail"
)

// Log emits a structured audit log entry for a connection's action.
func Log(action string, connID string, msg string) {
	l := log.L()
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(log.FieldConnID, connID).
		Msg(msg)
}

// LogWithDetail emits an audit log with an extra detail field.
func LogWithDetail(action string, connID string, detail string, msg string) {
	l := log.L()
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(log.FieldConnID, connID).
		Str(FieldDetail, detail).
		Msg(msg)
}
