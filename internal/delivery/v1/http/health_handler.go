package http

import (
	"net/http"

	"github.com/catalogcraft/catalog-api/internal/usecase"
)

type HealthHandler struct {
	health usecase.HealthUC
}

func NewHealthHandler(health usecase.HealthUC) *HealthHandler {
	return &HealthHandler{health: health}
}

// liveness
//
//	@Summary	Проверка живости сервиса
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	HealthResponse
//	@Router		/health [get]
func (h *HealthHandler) liveness(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, HealthResponse{Status: usecase.HealthStatusOK})
}

// detailed
//
//	@Summary		Проверка зависимостей сервиса
//	@Description	Опрашивает postgres, redis и kafka; при недоступности любой зависимости возвращает 503
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Failure		503	{object}	HealthResponse	"Часть зависимостей недоступна"
//	@Router			/health/detailed [get]
func (h *HealthHandler) detailed(w http.ResponseWriter, r *http.Request) {
	report := h.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != usecase.HealthStatusOK {
		status = http.StatusServiceUnavailable
	}
	WriteSuccess(w, status, toHealthResponse(report))
}
