package flightdata

import "fmt"

// AuthError reports a rejected credential (HTTP 401/403) from the
// flight data provider.
type AuthError struct {
	Status int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("flight data provider rejected the request (status %d): check the API token", e.Status)
}

// BadRequestError reports a request the provider refused as malformed
// (HTTP 400), most often a time window not shaped as
// YYYY-MM-DDTHH:MM:SS.
type BadRequestError struct {
	Detail string
}

func (e *BadRequestError) Error() string {
	if e.Detail == "" {
		return "flight data provider rejected the request as malformed"
	}
	return fmt.Sprintf("flight data provider rejected the request as malformed: %s", e.Detail)
}
