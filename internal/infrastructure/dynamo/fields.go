package dynamo

// DynamoDB attribute names used in key, update and condition expressions.
const (
	fieldUserID     = "user_id"
	fieldCode       = "code"
	fieldConsumed   = "consumed"
	fieldConsumedAt = "consumed_at"
)
