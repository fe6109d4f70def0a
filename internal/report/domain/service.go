package domain

import "context"

type Service interface {
	// BuildPerformanceReport assembles the closing report for a batch.
	BuildPerformanceReport(ctx context.Context, batchNo string) (*PerformanceReport, error)
	// BuildCurrentReport assembles the mid-cycle report for a batch.
	BuildCurrentReport(ctx context.Context, batchNo string) (*CurrentReport, error)
}
