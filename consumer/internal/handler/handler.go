package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	md "github.com/Astemirdum/kafka-avro/pkg/middleware"
)

// NewRouter serves the consumer health check.
func NewRouter() *echo.Echo {
	e := echo.New()
	const baseRPS = 10
	e.HideBanner = true
	e.Use(middleware.Recover())

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", Health)
	return e
}

func Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
