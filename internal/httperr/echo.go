package httperr

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/inventory_api/internal/logging"
)

// ErrorHandler shapes every error that escapes a handler into the envelope.
func ErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		env := envelopeFor(err)

		if env.StatusCode >= 500 {
			l := logging.FromContext(c.Request().Context())
			l.Error("request failed", "status", env.StatusCode, "error", err.Error())
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(env.StatusCode)
			return
		}
		_ = c.JSON(env.StatusCode, env)
	}
}

func envelopeFor(err error) Envelope {
	if appErr, ok := As(err); ok {
		return appErr.ToEnvelope()
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if s, ok := he.Message.(string); ok {
			msg = s
		}
		return Envelope{StatusCode: he.Code, Message: msg}
	}

	return Internal(err).ToEnvelope()
}
