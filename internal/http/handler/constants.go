package handler

const (
	jsonKeyError   = "error"
	jsonKeyMessage = "message"

	queryParamFormat = "format"
	queryParamRole   = "role"
	queryParamStatus = "status"

	paramID        = "id"
	paramSectionID = "sid"
	paramUserID    = "uid"

	formFieldImage = "image"
)

const (
	msgContentTypeJSONRequired = "Content-Type must be application/json"
	msgInvalidRequestBody      = "invalid request body"
	msgInvalidCredentials      = "invalid email or password"
	msgGenerateTokenFail       = "failed to generate token"
	msgInvalidClientID         = "invalid client id"
	msgInvalidUserID           = "invalid user id"
	msgInvalidRequestID        = "invalid request id"
	msgInvalidExportFormat     = "invalid export format"
	msgInvalidReviewStatus     = "review status must be approved or rejected"
	msgImageFieldRequired      = "image file field is required"
	msgSectionSaved            = "section saved"
	msgAccountDeleted          = "account deleted"
	msgSettingsSaved           = "export settings saved"
	msgStatusUpdated           = "status updated"
	msgRequestReviewed         = "request reviewed"
)
