// Package interfaces defines service contracts for synthfin
package interfaces

import (
	"context"

	"github.com/bobmcallan/synthfin/internal/models"
	"github.com/bobmcallan/synthfin/internal/services/generator"
)

// StatementService serves synthetic statement bundles to the presentation layer.
type StatementService interface {
	// GetStatements returns the bundle for ticker over the last years fiscal years.
	// Errors matching generator.ErrInvalidInput are caller mistakes.
	GetStatements(ctx context.Context, ticker string, years int) (*models.StatementBundle, error)

	// ValidateStatements runs the cross-statement linkage checks for a bundle.
	ValidateStatements(ctx context.Context, ticker string, years int) (*models.LinkageReport, error)

	// Limits returns the generator limits the service was built with
	Limits() generator.Limits
}
