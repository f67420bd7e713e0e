package credential

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/infinitysurge/pentaauth/permission"
	"github.com/infinitysurge/pentaauth/session"
)

const maxResponseBytes = 64 << 10

// HTTPGateway asks a remote authentication service. It POSTs
// {"email","password"} as JSON to the endpoint and expects
// {"email","name","role"} back with 200. 401 and 403 are rejections; any
// other status, a transport error, or an unreadable body is unavailability.
type HTTPGateway struct {
	endpoint string
	client   *http.Client
}

// NewHTTPGateway returns a gateway for endpoint. A nil client gets a
// 10-second timeout.
func NewHTTPGateway(endpoint string, client *http.Client) *HTTPGateway {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPGateway{endpoint: endpoint, client: client}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func (g *HTTPGateway) Authenticate(ctx context.Context, email, password string) (session.Principal, error) {
	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return session.Principal{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return session.Principal{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return session.Principal{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return session.Principal{}, ErrRejected
	default:
		return session.Principal{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var out loginResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&out); err != nil {
		return session.Principal{}, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	if out.Email == "" {
		return session.Principal{}, fmt.Errorf("%w: response missing email", ErrUnavailable)
	}
	role, err := permission.ParseRole(out.Role)
	if err != nil {
		return session.Principal{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return session.Principal{Email: out.Email, Name: out.Name, Role: role}, nil
}
