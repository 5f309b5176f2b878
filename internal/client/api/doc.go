// Package api is the HTTP client of the product service.
//
// Every call returns the raw status code and body in a Response, so callers
// can show exactly what the server answered, including error bodies and the
// bodyless 401. Transport failures are returned as errors wrapping
// ErrUnavailable.
package api
