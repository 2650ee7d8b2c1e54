package assert

import "github.com/telrender/tel/logging"

// T panics with the formatted message when check is false.
//
// Asserts are for programming errors (e.g. using a handle that was never issued),
// not for conditions a caller is expected to recover from.
func T(check bool, msg string, args ...any) {
	if !check {
		logging.ErrLog.Panicf("Assert failed: "+msg, args...)
	}
}
