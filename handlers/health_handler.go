package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Greeting is the body of the root route.
const Greeting = "Hello World"

type HealthHandler struct {
	checker HealthCheckerInterface
}

func NewHealthHandler(checker HealthCheckerInterface) *HealthHandler {
	return &HealthHandler{
		checker: checker,
	}
}

// GreetingHandler godoc
// @Summary Liveness greeting
// @Description Returns a constant greeting while the process is serving requests
// @Tags health
// @Produce plain
// @Success 200 {string} string "Hello World"
// @Router / [get]
func (h *HealthHandler) GreetingHandler(c *gin.Context) {
	c.String(http.StatusOK, Greeting)
}

// HealthCheckHandler godoc
// @Summary Service health
// @Description Reports the status declared in health.txt. Ok and Degraded keep the
// @Description service in rotation; Down and Unknown (missing or invalid file) do not.
// @Tags health
// @Produce plain
// @Success 200 {string} string "Ok or Degraded"
// @Failure 503 {string} string "Down or Unknown"
// @Router /health [get]
func (h *HealthHandler) HealthCheckHandler(c *gin.Context) {
	status := h.checker.Check(c.Request.Context())

	code := http.StatusOK
	if !status.IsAvailable() {
		code = http.StatusServiceUnavailable
	}

	c.String(code, status.String())
}
