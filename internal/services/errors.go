package services

// Custom errors. Handlers map these to transport status codes; core logic
// never inspects them by kind.

type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

type UnauthorizedError struct{ Message string }

func (e *UnauthorizedError) Error() string { return e.Message }

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

// UpstreamError reports that the answering service could not be reached or
// answered with a non-2xx status.
type UpstreamError struct{ Message string }

func (e *UpstreamError) Error() string { return e.Message }
