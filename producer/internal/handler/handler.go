package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"github.com/Astemirdum/kafka-avro/pkg/validate"
	_ "github.com/Astemirdum/kafka-avro/producer/docs"
	"github.com/Astemirdum/kafka-avro/producer/internal/model"

	md "github.com/Astemirdum/kafka-avro/pkg/middleware"
)

type Handler struct {
	producerSvc ProducerService
	log         *zap.Logger
}

func New(producerSvc ProducerService, log *zap.Logger) *Handler {
	return &Handler{
		producerSvc: producerSvc,
		log:         log.Named("handler"),
	}
}

// @title kafka-producer
// @version 1.0
// @description Encodes messages with the registered Avro schema and writes them to Kafka.
// @BasePath /
func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.HideBanner = true
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Validator = validate.NewCustomValidator()

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	logged := []echo.MiddlewareFunc{
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		md.RequestID(),
		md.NewRateLimiter(apiRPS),
	}
	e.POST("/", h.Send, logged...)
	api := e.Group("/api/v1", logged...)
	api.POST("/messages", h.Send)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// Send godoc
// @Summary produce a message
// @Description encodes value against the registered schema and sends it to the configured topic
// @Tags messages
// @Accept json
// @Produce json
// @Param message body model.Message true "key and value"
// @Success 200 {array} model.RecordMetadata
// @Failure 400 {object} echo.HTTPError
// @Failure 500 {object} echo.HTTPError
// @Router /api/v1/messages [post]
func (h *Handler) Send(c echo.Context) error {
	var msg model.Message
	if err := c.Bind(&msg); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&msg); err != nil {
		return err
	}

	res, err := h.producerSvc.Send(c.Request().Context(), msg)
	if err != nil {
		h.log.Error("producerSvc.Send", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, res)
}
