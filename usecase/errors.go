package usecase

// Error is a failure whose message can be shown to the caller as is.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(message string) *Error {
	return &Error{Message: message}
}

var (
	ErrInvalidEmailDomain = NewError("only institutional e-mail addresses are accepted")
	ErrAlreadyRegistered  = NewError("this e-mail or phone number is already registered")
	ErrVerificationFailed = NewError("at least 2 verification questions must be answered correctly")
	ErrUserNotFound       = NewError("user not found")
	ErrAccountInactive    = NewError("your account has been deactivated")
	ErrWrongPassword      = NewError("wrong password")
	ErrAdminNotFound      = NewError("admin not found")
	ErrUsernameTaken      = NewError("this username is already taken")
	ErrSuperAdminRequired = NewError("super admin permission is required")
	ErrCannotBlockSelf    = NewError("you cannot block yourself")
	ErrCannotReportSelf   = NewError("you cannot report yourself")
	ErrMessageNotFound    = NewError("message not found")
	ErrLoginRequired      = NewError("login required")
	ErrAdminRequired      = NewError("admin login required")
	ErrTooManyAttempts    = NewError("too many login attempts, try again later")
	ErrInvalidRequest     = NewError("invalid request body")
	ErrInvalidUpload      = NewError("profile picture must be an image within the size limit")
	ErrUnknownEvent       = NewError("unknown event")
	ErrSessionMismatch    = NewError("payload user does not match the session")

	// ErrRecipientBlocked means a private message was dropped by the
	// recipient's block list. It is never reported to the sender.
	ErrRecipientBlocked = NewError("recipient has blocked the sender")
)
