package types

const (
	ActionRabbitMQConnected       = "rabbitmq_connected"
	ActionRabbitConnectionClosed  = "rabbitmq_connection_closed"
	ActionRabbitConnectionClosing = "rabbitmq_connection_closing"
	ActionRabbitReconnected       = "rabbitmq_reconnection_success"

	ActionDatabaseTransactionFailed = "database_transaction_failed"

	ActionValidateStudent = "validate_student"
	ActionSubmitCode      = "submit_code"
	ActionMarkAttendance  = "mark_attendance"
	ActionListAttendance  = "list_attendance"
	ActionStartLecture    = "start_lecture"
	ActionEndLecture      = "end_lecture"
	ActionResetAttendance = "reset_attendance"
	ActionExportSheet     = "export_attendance"
	ActionRequestLocation = "request_location"
)
