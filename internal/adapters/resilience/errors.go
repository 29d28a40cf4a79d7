package resilience

import "errors"

// ErrBreakerOpen is returned without calling the wrapped fetcher while the
// circuit breaker is open or saturated in half-open state.
var ErrBreakerOpen = errors.New("content source circuit breaker open")
