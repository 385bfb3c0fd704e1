package network

import (
	"fmt"
)

// NodeError is returned when the node answers with a non-2xx status other
// than 500, or with a body that lacks an expected field.
type NodeError struct {
	Message    string
	StatusCode int
	Body       []byte
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("eos node error, %s (status %d)", e.Message, e.StatusCode)
}

// TransactionError is returned on HTTP 500, which the node uses to reject a
// transaction or a contract call. Body holds the node's JSON error.
type TransactionError struct {
	StatusCode int
	Body       []byte
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("transaction error: %s", e.Body)
}
