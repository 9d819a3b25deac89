// Package errors defines the coded errors returned by the goatswap CLI.
//
// Every command failure surfaces as an *Error carrying a stable code, so callers
// can branch with errors.Is against the predefined values while the message keeps
// the argument or SDK detail that caused it.
package errors

import (
	"errors"
	"fmt"
)

// Error codes.
const (
	ErrCodeInvalidArgument   = "INVALID_ARGUMENT"
	ErrCodeInvalidPubkey     = "INVALID_PUBKEY"
	ErrCodeWalletRequired    = "WALLET_REQUIRED"
	ErrCodeNotSupported      = "NOT_SUPPORTED"
	ErrCodeSDKFailed         = "SDK_FAILED"
	ErrCodeRPCFailed         = "RPC_FAILED"
	ErrCodeSimulationFailed  = "SIMULATION_FAILED"
	ErrCodeTransactionFailed = "TRANSACTION_FAILED"
	ErrCodeStorageDisabled   = "STORAGE_DISABLED"
	ErrCodeCustom            = "CUSTOM"
)

// Error is a coded CLI error.
type Error struct {
	// Code identifies the error kind.
	Code string

	// Message is a human-readable description.
	Message string

	// Cause is the underlying error, if any.
	Cause error

	// Details carries extra context such as simulation logs.
	Details map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithCause sets the cause.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithDetails sets the details.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// NewError creates an Error.
func NewError(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Sentinels for errors.Is checks. Never return these directly, they are shared.
var (
	ErrInvalidArgument   = NewError(ErrCodeInvalidArgument, "invalid argument")
	ErrInvalidPubkey     = NewError(ErrCodeInvalidPubkey, "invalid public key")
	ErrWalletRequired    = NewError(ErrCodeWalletRequired, "wallet keypair required")
	ErrNotSupported      = NewError(ErrCodeNotSupported, "not supported")
	ErrSDKFailed         = NewError(ErrCodeSDKFailed, "sdk call failed")
	ErrRPCFailed         = NewError(ErrCodeRPCFailed, "rpc call failed")
	ErrSimulationFailed  = NewError(ErrCodeSimulationFailed, "transaction simulation failed")
	ErrTransactionFailed = NewError(ErrCodeTransactionFailed, "transaction failed")
	ErrStorageDisabled   = NewError(ErrCodeStorageDisabled, "storage is not enabled")
)

// InvalidArgument reports a bad command argument.
func InvalidArgument(name, reason string) *Error {
	return NewError(ErrCodeInvalidArgument, fmt.Sprintf("invalid %s: %s", name, reason))
}

// InvalidPubkey reports an argument that is not a base58 public key.
func InvalidPubkey(name, value string, cause error) *Error {
	return NewError(ErrCodeInvalidPubkey, fmt.Sprintf("invalid %s %q", name, value)).WithCause(cause)
}

// WalletRequired reports a write command run without a keypair.
func WalletRequired(command string) *Error {
	return NewError(ErrCodeWalletRequired, fmt.Sprintf("%s requires a wallet (set --keypair or wallet.keypair)", command))
}

// NotSupported reports an operation the selected driver cannot perform.
func NotSupported(what string, cause error) *Error {
	return NewError(ErrCodeNotSupported, fmt.Sprintf("%s is not supported", what)).WithCause(cause)
}

// SDKFailed wraps an error returned by the goatswap SDK.
func SDKFailed(operation string, cause error) *Error {
	return NewError(ErrCodeSDKFailed, operation).WithCause(cause)
}

// RPCFailed wraps an error returned by the Solana RPC node.
func RPCFailed(operation string, cause error) *Error {
	return NewError(ErrCodeRPCFailed, operation).WithCause(cause)
}

// SimulationFailed reports a failed preflight simulation with its logs.
func SimulationFailed(reason string, logs []string) *Error {
	return NewError(ErrCodeSimulationFailed, reason).WithDetails(map[string]any{"logs": logs})
}

// TransactionFailed reports a transaction that landed with an error or never confirmed.
func TransactionFailed(signature string, cause error) *Error {
	return NewError(ErrCodeTransactionFailed, fmt.Sprintf("transaction %s", signature)).WithCause(cause)
}

// StorageDisabled reports a persistence request with no database configured.
func StorageDisabled(command string) *Error {
	return NewError(ErrCodeStorageDisabled, fmt.Sprintf("%s needs database.enabled=true", command))
}

// Custom creates an error with a free-form message.
func Custom(message string) *Error {
	return NewError(ErrCodeCustom, message)
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
