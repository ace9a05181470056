package db

import (
	"errors"
	"fmt"
)

// ErrNoConnection is returned when an operation needs a live client but the
// registry slot is empty.
var ErrNoConnection = errors.New("no active database connection")

// ErrUnsupported is returned for backends that exist in the selection list
// but have no client implementation wired into the UI yet.
var ErrUnsupported = errors.New("unsupported database backend")

// ErrTxFinalized is returned by transaction handles after Commit or Rollback.
var ErrTxFinalized = errors.New("transaction already finalized")

// ConnError represents a failure to establish a connection.
type ConnError struct {
	Cause error
}

func (e *ConnError) Error() string {
	return fmt.Sprintf("connection error: %v", e.Cause)
}

func (e *ConnError) Unwrap() error {
	return e.Cause
}

// ExecError represents a statement that failed at the backend.
type ExecError struct {
	Query string
	Cause error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("query error: %v", e.Cause)
}

func (e *ExecError) Unwrap() error {
	return e.Cause
}

// TxError represents a transaction begin/execute/commit/rollback failure.
type TxError struct {
	Op    string
	Cause error
}

func (e *TxError) Error() string {
	return fmt.Sprintf("transaction %s error: %v", e.Op, e.Cause)
}

func (e *TxError) Unwrap() error {
	return e.Cause
}
