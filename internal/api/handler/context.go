package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jake-esse/ai-broker/internal/core/domain"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call:
//   - role must be non-empty (presence proves the middleware ran).
//   - broker role requires a non-empty broker_id; a broker token without
//     one cannot be scoped to any loads.
func ctxClaims(c echo.Context) (role, brokerID string, err error) {
	role, _ = c.Get("role").(string)
	if role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	brokerID, _ = c.Get("broker_id").(string)
	if role == domain.RoleBroker && brokerID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "token missing broker identity")
	}

	return role, brokerID, nil
}
