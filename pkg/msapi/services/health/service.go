package health

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
)

const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"

	defaultTimeout = 2 * time.Second
)

// Check reports whether one backing service is reachable.
type Check func(ctx context.Context) error

func Database(db *bun.DB) Check {
	return db.PingContext
}

func Redis(client redis.UniversalClient) Check {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}

// Report is the outcome of running every check once. Checks maps each
// check name to "ok" or its error text.
type Report struct {
	Status string
	Checks map[string]string
}

func (r Report) Healthy() bool {
	return r.Status == StatusOK
}

type HealthService struct {
	checks  map[string]Check
	timeout time.Duration
}

func NewHealthService(checks map[string]Check) *HealthService {
	return &HealthService{checks: checks, timeout: defaultTimeout}
}

// Names lists the registered checks in a stable order.
func (s *HealthService) Names() []string {
	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Ready runs all checks concurrently, each bounded by its own timeout.
func (s *HealthService) Ready(ctx context.Context) Report {
	report := Report{Status: StatusOK, Checks: make(map[string]string, len(s.checks))}
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for name, check := range s.checks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			checkCtx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()
			result := StatusOK
			if err := check(checkCtx); err != nil {
				result = err.Error()
			}
			mu.Lock()
			defer mu.Unlock()
			report.Checks[name] = result
			if result != StatusOK {
				report.Status = StatusDegraded
			}
		}()
	}
	wg.Wait()
	return report
}
