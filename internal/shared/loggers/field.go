package loggers

const (
	FieldApp       = "app"
	FieldComponent = "component"
	FieldRunID     = "run_id"

	FieldSource  = "source"
	FieldDate    = "date"
	FieldPrefix  = "prefix"
	FieldBucket  = "bucket"
	FieldKey     = "key"
	FieldArchive = "archive"

	FieldStage = "stage"
	FieldDone  = "done"
	FieldTotal = "total"

	FieldErrorCode = "error_code"
)
