// internal/i18n/keys.go
package i18n

// Translation keys. Store operations return these as reason codes; the
// user-facing string is only resolved at the presentation edge.
const (
	// Common / HTTP surface
	KeyOK            = "common.ok"
	KeyInvalidParams = "common.invalid_params"
	KeyInternalError = "common.internal_error"
	KeyThrottled     = "common.throttled"

	// Authentication (HTTP)
	KeyAuthRequired  = "auth.required"
	KeyAuthExpired   = "auth.expired"
	KeyAuthForbidden = "auth.forbidden"

	// Admin console session store
	KeySessionEmptyCredentials  = "session.empty_credentials"
	KeySessionInvalidLogin      = "session.invalid_login"
	KeySessionRegisterEmpty     = "session.register_empty"
	KeySessionAccountExists     = "session.account_exists"
	KeySessionNotLoggedIn       = "session.not_logged_in"
	KeySessionPasswordEmpty     = "session.password_empty"
	KeySessionPasswordTooShort  = "session.password_too_short"
	KeySessionAccountMissing    = "session.account_missing"
	KeySessionOldPasswordWrong  = "session.old_password_wrong"
	KeySessionChangeFailed      = "session.change_failed"
	KeySessionChangeSuccess     = "session.change_success"
	KeySessionResetEmpty        = "session.reset_empty"
	KeySessionAccountNotFound   = "session.account_not_found"
	KeySessionResetFailed       = "session.reset_failed"
	KeySessionResetSuccess      = "session.reset_success"

	// Admin-role application workflow
	KeyApplicationMissingAccount   = "application.missing_account"
	KeyApplicationAlreadyAdmin     = "application.already_admin"
	KeyApplicationDuplicatePending = "application.duplicate_pending"
	KeyApplicationReasonRequired   = "application.reason_required"
	KeyApplicationSubmitted        = "application.submitted"
	KeyApplicationNotFound         = "application.not_found"
	KeyApplicationProcessed        = "application.processed"
	KeyApplicationApplicantMissing = "application.applicant_missing"
	KeyApplicationPromoteFailed    = "application.promote_failed"
	KeyApplicationApproved         = "application.approved"
	KeyApplicationApprovedNote     = "application.approved_note"
	KeyApplicationFeedbackRequired = "application.feedback_required"
	KeyApplicationRejected         = "application.rejected"

	// Dictionary loading (storefront)
	KeyDictCategoriesFailed = "dict.categories_failed"
	KeyDictTagsFailed       = "dict.tags_failed"
	KeyDictConditionsFailed = "dict.conditions_failed"

	// Storefront user module
	KeyUserAccountExists      = "user.account_exists"
	KeyUserInvalidCredentials = "user.invalid_credentials"
	KeyUserPasswordMismatch   = "user.password_mismatch"
	KeyUserOldPasswordWrong   = "user.old_password_wrong"
	KeyUserNicknameLimit      = "user.nickname_limit"
	KeyUserNotFound           = "user.not_found"

	// Product module
	KeyProductNotFound        = "product.not_found"
	KeyProductNotForSale      = "product.not_for_sale"
	KeyProductInvalidAction   = "product.invalid_action"
	KeyProductCannotDelist    = "product.cannot_delist"
	KeyProductCannotRelist    = "product.cannot_relist"
	KeyProductCannotSell      = "product.cannot_sell"
	KeyProductEditForbidden   = "product.edit_forbidden"
	KeyProductSoldLocked      = "product.sold_locked"
	KeyProductUndoTimeout     = "product.undo_timeout"
	KeyProductStatusImmutable = "product.status_immutable"

	// Contact gating tips
	KeyContactLoginRequired = "contact.login_required"
	KeyContactNotForSale    = "contact.not_for_sale"
	KeyContactUnavailable   = "contact.unavailable"
	KeyContactSafetyTips    = "contact.safety_tips"

	// Dictionary management
	KeyCategoryInUse = "category.in_use"

	// Upload
	KeyUploadTooLarge = "upload.too_large"
	KeyUploadBadType  = "upload.bad_type"
)
