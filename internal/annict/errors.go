package annict

import (
	"fmt"

	"cour/internal/services"
)

// ErrResponseUnparseable marks a fetch whose transport failed or whose body
// was not a JSON GraphQL response.
var ErrResponseUnparseable = fmt.Errorf("%w: annict response unparseable", services.ErrDecode)

// defaultErrorMessage is reported when the API returns an error entry with no
// message.
const defaultErrorMessage = "不明なエラー"

// APIError carries the first error the GraphQL API reported.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return "annict api error: " + e.Message
}

// Unwrap tags API errors as upstream failures.
func (e *APIError) Unwrap() error {
	return services.ErrUpstream
}
