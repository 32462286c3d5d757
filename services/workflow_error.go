package services

// Workflow error codes returned to controllers for HTTP mapping
const (
	ErrCodeOrderNotFound  = "ORDER_NOT_FOUND"
	ErrCodeTaskNotFound   = "TASK_NOT_FOUND"
	ErrCodeInvalidStatus  = "INVALID_STATUS"
	ErrCodeNoOpTransition = "NO_OP_TRANSITION"
)

// WorkflowError represents a validation or lookup failure inside the
// bespoke order workflow. The Code is machine-readable and maps directly
// to the API error envelope.
type WorkflowError struct {
	Code    string
	Message string
}

func (e *WorkflowError) Error() string {
	return e.Message
}

// IsWorkflowError returns the typed workflow error if err is one
func IsWorkflowError(err error) (*WorkflowError, bool) {
	wfErr, ok := err.(*WorkflowError)
	return wfErr, ok
}
