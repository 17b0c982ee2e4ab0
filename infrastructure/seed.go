package infrastructure

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"job-board/domain"
)

// SeedJobs fills an empty store with a few postings for local development.
func SeedJobs(ctx context.Context, store domain.JobStore, log *zap.Logger) error {
	existing, err := store.List(ctx, "", domain.PageRequest{Page: 0, Size: 1})
	if err != nil {
		return fmt.Errorf("count jobs: %w", err)
	}
	if existing.TotalElements > 0 {
		return nil
	}

	salary := func(v int64) *int64 { return &v }
	jobs := []domain.JobInput{
		{
			Title:       "Backend Engineer",
			Company:     "Northwind",
			Location:    "Remote",
			Description: "Build and operate REST services in Go backed by MySQL and RabbitMQ.",
			SalaryFrom:  salary(60000),
			SalaryTo:    salary(85000),
		},
		{
			Title:       "Frontend Developer",
			Company:     "Contoso",
			Location:    "Berlin",
			Description: "React single-page applications talking to JSON APIs.",
		},
		{
			Title:       "Site Reliability Engineer",
			Company:     "Fabrikam",
			Location:    "Amsterdam",
			Description: "Own deployments, monitoring and incident response for the hiring platform.",
			SalaryFrom:  salary(70000),
		},
	}

	for _, input := range jobs {
		if _, err := store.Create(ctx, input); err != nil {
			return fmt.Errorf("seed %q: %w", input.Title, err)
		}
	}

	log.Info("seeded jobs", zap.Int("count", len(jobs)))
	return nil
}
