package gateway

import (
	"context"
	"net/http"
	"strings"

	"ebuy-client/internal/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  UserPayload `json:"user"`
}

// Login exchanges credentials for a bearer token and the user identity.
// Callers hand both to the session; this call itself goes out without a
// token.
func (c *Client) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return "", domain.User{}, domain.Validationf("email and password required")
	}
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login/", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return "", domain.User{}, err
	}
	return resp.Token, resp.User.User(), nil
}
