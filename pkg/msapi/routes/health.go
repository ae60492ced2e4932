package routes

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/quatton/metashare/pkg/msapi/services"
	"github.com/quatton/metashare/pkg/msapi/services/health"
)

type HealthOutput struct {
	Body struct {
		Status string `json:"status" example:"ok" doc:"Health status"`
	}
}

type ReadinessOutput struct {
	Status int
	Body   struct {
		Status string            `json:"status" enum:"ok,degraded" doc:"ok when every dependency answered"`
		Checks map[string]string `json:"checks" doc:"Per-dependency result, ok or the error text"`
	}
}

func RegisterHealth(api huma.API, svcs *services.Services) {
	huma.Register(api, huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Liveness check",
		Tags:        []string{TagHealth.String()},
	}, func(ctx context.Context, input *struct{}) (*HealthOutput, error) {
		resp := &HealthOutput{}
		resp.Body.Status = health.StatusOK
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "readiness-check",
		Method:      http.MethodGet,
		Path:        "/health/ready",
		Summary:     "Readiness check",
		Description: "Pings the database and redis. Responds 503 while any of them is unreachable.",
		Tags:        []string{TagHealth.String()},
	}, func(ctx context.Context, input *struct{}) (*ReadinessOutput, error) {
		checker := svcs.Health
		if checker == nil {
			checker = health.NewHealthService(nil)
		}
		report := checker.Ready(ctx)

		resp := &ReadinessOutput{Status: http.StatusOK}
		if !report.Healthy() {
			resp.Status = http.StatusServiceUnavailable
		}
		resp.Body.Status = report.Status
		resp.Body.Checks = report.Checks
		return resp, nil
	})
}
