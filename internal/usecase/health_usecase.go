package usecase

import (
	"context"
	"time"

	"github.com/catalogcraft/catalog-api/pkg/logger"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck — именованная проверка одной зависимости.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// HealthUseCase опрашивает зависимости сервиса (postgres, redis, kafka).
type HealthUseCase struct {
	logger logger.Logger
	checks []HealthCheck
}

func NewHealthUC(logger logger.Logger, checks ...HealthCheck) *HealthUseCase {
	return &HealthUseCase{
		logger: logger,
		checks: checks,
	}
}

// Check прогоняет все проверки с таймаутом на каждую.
// Любой отказ переводит общий статус в degraded, но ответ остаётся полным.
func (h *HealthUseCase) Check(ctx context.Context) *HealthReport {
	report := &HealthReport{
		Status:     HealthStatusOK,
		Components: make([]ComponentHealth, 0, len(h.checks)),
	}

	for _, check := range h.checks {
		component := ComponentHealth{
			Name:   check.Name,
			Status: ComponentStatusUp,
		}

		checkCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
		err := check.Check(checkCtx)
		cancel()

		if err != nil {
			component.Status = ComponentStatusDown
			component.Error = err.Error()
			report.Status = HealthStatusDegraded
			h.logger.Warnf("health check %q failed: %v", check.Name, err)
		}

		report.Components = append(report.Components, component)
	}

	return report
}
