package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Veraticus/ledgerdeck/internal/common"
	"github.com/Veraticus/ledgerdeck/internal/model"
)

// UnexpectedAuthMessage is shown when sign-in fails without a backend message.
const UnexpectedAuthMessage = "An unexpected error occurred"

// AuthError carries the backend's own sign-in error message.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// SignIn authenticates against /api/auth/signin, or registers through
// /api/auth/signup when signup is set. A backend "error" field is returned
// verbatim as an AuthError, whatever the response status.
func (c *Client) SignIn(ctx context.Context, creds model.Credentials, signup bool) (model.User, error) {
	path := "/api/auth/signin"
	if signup {
		path = "/api/auth/signup"
	}

	encoded, err := json.Marshal(creds)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to encode credentials: %w", err)
	}

	var resp model.AuthResponse
	data, err := c.send(ctx, http.MethodPost, path, "application/json", bytes.NewReader(encoded))
	if len(bytes.TrimSpace(data)) > 0 {
		if decodeErr := decodeJSON(data, &resp); decodeErr != nil && err == nil {
			err = fmt.Errorf("failed to decode auth response: %w", decodeErr)
		}
	}
	if resp.Error != "" {
		return model.User{}, &AuthError{Message: resp.Error}
	}
	if err != nil {
		return model.User{}, common.NewUserError(UnexpectedAuthMessage, err)
	}
	return resp.UserFor(creds.Email), nil
}

func decodeJSON(data []byte, out any) error {
	return json.Unmarshal(data, out)
}
