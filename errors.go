package amt8000

import "errors"

// Errors reported by the client. The auth ones mirror the result codes the
// central sends back, the rest are session misuse or a mangled response.
var (
	ErrNotConnected     = errors.New("not connected")
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrPasswordFormat is returned before anything is sent to the central.
	ErrPasswordFormat = errors.New("password must be 6 digits")

	// ErrInvalidPassword is the central rejecting the password (result 0x01).
	ErrInvalidPassword = errors.New("invalid password")

	// ErrIncorrectSoftwareVersion is the central rejecting the software
	// version we advertise (result 0x02).
	ErrIncorrectSoftwareVersion = errors.New("incorrect software version")

	// ErrPanelCallback means the central will call back (result 0x03).
	ErrPanelCallback = errors.New("alarm panel will call back")

	// ErrWaitingPermission means the central is waiting for user permission
	// (result 0x04).
	ErrWaitingPermission = errors.New("waiting for user permission")

	ErrChecksumMismatch = errors.New("checksum mismatch")
	ErrShortFrame       = errors.New("frame too short")
)
