package constants

const (
	MISSING_LOGIN_INPUT        = "MISSING_LOGIN_INPUT"
	INVALID_USERNAME           = "INVALID_USERNAME"
	INVALID_PASSWORD           = "INVALID_PASSWORD"
	INVALID_EMAIL              = "INVALID_EMAIL"
	ACCOUNT_NOT_ACTIVE         = "ACCOUNT_NOT_ACTIVE"
	ACCOUNT_NOT_PERMISSION     = "ACCOUNT_NOT_PERMISSION"
	EMAIL_EXISTS               = "EMAIL_EXISTS"
	PHONE_NUMBER_EXISTS        = "PHONE_NUMBER_EXISTS"
	CAN_NOT_HASH_PASSWORD      = "CAN_NOT_HASH_PASSWORD"
	ERROR_INTERNAL_ERROR       = "ERROR_INTERNAL_ERROR"
	ERROR_INPUT                = "ERROR_INPUT"
	ERROR_CREATE               = "ERROR_CREATE"
	ERROR_UPDATE               = "ERROR_UPDATE"
	ERROR_PARSE_DATA_TO_LOCALS = "ERROR_PARSE_DATA_TO_LOCALS"
	NOT_FOUND_RECORDS          = "NOT_FOUND_RECORDS"
	DATA_INPUT_IS_NOT_NUMBER   = "DATA_INPUT_IS_NOT_NUMBER"
	NOT_SHOP_OWNER             = "NOT_SHOP_OWNER"

	ORDER_NOT_FOUND       = "ORDER_NOT_FOUND"
	INVALID_TRANSITION    = "INVALID_TRANSITION"
	MISSING_REASON        = "MISSING_REASON"
	PAYMENT_NOT_COMPLETED = "PAYMENT_NOT_COMPLETED"
	SHOP_NOT_FOUND        = "SHOP_NOT_FOUND"
	MENU_ITEM_NOT_FOUND   = "MENU_ITEM_NOT_FOUND"
	SHOP_CLOSED           = "SHOP_CLOSED"
	REVIEW_LIMIT_REACHED  = "REVIEW_LIMIT_REACHED"
	ORDER_NOT_FULFILLED   = "ORDER_NOT_FULFILLED"
)

const (
	ROLE_ADMIN = "ADMIN"
	ROLE_OWNER = "OWNER"
	ROLE_STAFF = "STAFF"
)
