package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// getAccountIDParam parses the :accountId path parameter
func getAccountIDParam(c echo.Context) (int64, error) {
	raw := c.Param("accountId")
	accountID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || accountID <= 0 {
		return 0, fmt.Errorf("invalid account id %q", raw)
	}
	return accountID, nil
}

func getIntParam(c echo.Context, name string, defaultValue int) int {
	param := c.QueryParam(name)
	if param == "" {
		return defaultValue
	}

	var value int
	if _, err := fmt.Sscanf(param, "%d", &value); err != nil {
		return defaultValue
	}

	return value
}

func getInt64Param(c echo.Context, name string, defaultValue int64) int64 {
	param := c.QueryParam(name)
	if param == "" {
		return defaultValue
	}

	value, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getClientIP(c echo.Context) string {
	xff := c.Request().Header.Get("X-Forwarded-For")
	if xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	xri := c.Request().Header.Get("X-Real-IP")
	if xri != "" {
		return xri
	}

	return c.Request().RemoteAddr
}
