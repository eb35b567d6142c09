package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
)

// JSONBodyBinder decodes request bodies as JSON whatever the Content-Type
// header says. Browsers posting a string body send text/plain, and such
// requests must be read the same as application/json. An empty body binds
// as {}.
type JSONBodyBinder struct{}

// Bind implements echo.Binder
func (JSONBodyBinder) Bind(i interface{}, c echo.Context) error {
	body := c.Request().Body
	if body == nil || body == http.NoBody {
		return nil
	}

	if err := json.NewDecoder(body).Decode(i); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload").SetInternal(err)
	}
	return nil
}
