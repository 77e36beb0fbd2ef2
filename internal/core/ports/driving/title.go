package driving

import (
	"context"

	"github.com/custodia-labs/titlescan/internal/core/domain"
)

// TitleService produces title packages for property owners.
type TitleService interface {
	// Analyze searches the registry for req.Owner and runs the full
	// pipeline: normalise, optional scan, classify, chain, match, flag
	// and summarise.
	// Returns an error only when the request is invalid or the record
	// source fails; per-document text failures are routed to review.
	Analyze(ctx context.Context, req domain.AnalyzeRequest) (*domain.TitlePackage, error)
}
