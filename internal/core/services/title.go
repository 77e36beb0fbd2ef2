package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/titlescan/internal/chain"
	"github.com/custodia-labs/titlescan/internal/classifier"
	"github.com/custodia-labs/titlescan/internal/core/domain"
	"github.com/custodia-labs/titlescan/internal/core/ports/driven"
	"github.com/custodia-labs/titlescan/internal/core/ports/driving"
	"github.com/custodia-labs/titlescan/internal/extractors"
	"github.com/custodia-labs/titlescan/internal/logger"
	"github.com/custodia-labs/titlescan/internal/matcher"
	"github.com/custodia-labs/titlescan/internal/risk"
)

// Ensure TitleService implements the interface.
var _ driving.TitleService = (*TitleService)(nil)

// TitleService runs the title pipeline for one owner at a time.
type TitleService struct {
	source     driven.RecordSource
	normaliser driven.RecordNormaliser
	text       driven.TextExtractor
	signals    driven.SignalExtractor
	settings   domain.Settings
	now        func() time.Time
	newID      func() string
}

// TitleOption configures a TitleService.
type TitleOption func(*TitleService)

// WithTextExtractor enables scanning. Without one, Analyze ignores
// AnalyzeRequest.Scan and matches on names only.
func WithTextExtractor(text driven.TextExtractor) TitleOption {
	return func(s *TitleService) {
		s.text = text
	}
}

// WithSignalExtractor replaces the rule-based extractor built from settings.
func WithSignalExtractor(signals driven.SignalExtractor) TitleOption {
	return func(s *TitleService) {
		s.signals = signals
	}
}

// WithSettings overrides the default settings.
func WithSettings(settings domain.Settings) TitleOption {
	return func(s *TitleService) {
		s.settings = settings
	}
}

// WithClock sets the time source for GeneratedAt.
func WithClock(now func() time.Time) TitleOption {
	return func(s *TitleService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDFunc sets the run ID generator.
func WithIDFunc(fn func() string) TitleOption {
	return func(s *TitleService) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewTitleService creates a new title service.
func NewTitleService(
	source driven.RecordSource,
	normaliser driven.RecordNormaliser,
	opts ...TitleOption,
) *TitleService {
	s := &TitleService{
		source:     source,
		normaliser: normaliser,
		settings:   domain.DefaultSettings(),
		now:        time.Now,
		newID:      func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.signals == nil {
		s.signals = extractors.New(
			extractors.WithMinTextLength(s.settings.Extract.MinTextLength),
			extractors.WithKnownInstitutions(s.settings.Extract.KnownInstitutions...),
		)
	}
	return s
}

// Analyze searches the registry for req.Owner and builds its title package.
func (s *TitleService) Analyze(ctx context.Context, req domain.AnalyzeRequest) (*domain.TitlePackage, error) {
	owner := strings.TrimSpace(req.Owner)
	if owner == "" {
		return nil, fmt.Errorf("%w: owner name is required", domain.ErrInvalidInput)
	}
	if s.source == nil || s.normaliser == nil {
		return nil, fmt.Errorf("analyze: %w: record source", domain.ErrNotConfigured)
	}
	if err := s.settings.Validate(); err != nil {
		return nil, err
	}

	logger.Section("Analyze " + owner)

	done := logger.Timed("search")
	raws, err := s.source.Search(ctx, owner)
	done()
	if err != nil {
		if errors.Is(err, domain.ErrSourceUnavailable) {
			return nil, fmt.Errorf("search %s: %w", s.source.Name(), err)
		}
		return nil, fmt.Errorf("search %s: %w: %w", s.source.Name(), domain.ErrSourceUnavailable, err)
	}

	docs := s.normaliser.NormaliseAll(raws)
	logger.Info("%s: %d documents for %q", s.source.Name(), len(docs), owner)

	scanned := false
	if req.Scan && s.text != nil {
		docs, scanned = s.scan(ctx, docs)
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
	} else if req.Scan {
		logger.Warn("scan requested but no text extractor is configured; matching on names only")
	}

	return s.assemble(owner, docs, scanned), nil
}

// scan extracts signals for every scannable document. Matching must not
// start until scan returns, so the caller sees either every result or a
// review placeholder for each attempted document.
func (s *TitleService) scan(ctx context.Context, docs []domain.Document) ([]domain.Document, bool) {
	defer logger.Timed("scan")()

	out := make([]domain.Document, len(docs))
	copy(out, docs)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.settings.Scan.Concurrency)

	attempted := 0
	for i, doc := range docs {
		category := classifier.CategoryOf(doc)
		if !category.Scannable() {
			continue
		}
		attempted++
		g.Go(func() error {
			text, err := s.text.ExtractText(gctx, doc)
			if err != nil {
				logger.Warn("text for %s: %v", reviewID(doc), err)
				out[i] = doc.WithExtractedData(domain.NeedsReview(category, err.Error()))
				return nil
			}
			out[i] = doc.WithExtractedData(s.signals.Extract(text, category))
			return nil
		})
	}
	_ = g.Wait()

	logger.Info("scanned %d of %d documents", attempted, len(docs))
	return out, attempted > 0
}

func (s *TitleService) assemble(owner string, docs []domain.Document, scanned bool) *domain.TitlePackage {
	groups := classifier.Group(docs)
	for _, c := range domain.AllCategories() {
		if n := len(groups[c]); n > 0 {
			logger.Debug("bucket %s: %d", c, n)
		}
	}

	entries := chain.Build(groups[domain.CategoryDeed])
	logger.Debug("chain length: %d", len(entries))

	m := matcher.New(s.settings.Match)
	mortgages := m.Match(groups[domain.CategoryMortgage], groups[domain.CategorySatisfaction])
	liens := m.Match(groups[domain.CategoryLien], groups[domain.CategoryRelease])
	logger.Debug("mortgages: %s mode, %d satisfied, %d open",
		mortgages.Mode, len(mortgages.Satisfied), len(mortgages.Open))
	logger.Debug("liens: %s mode, %d released, %d open",
		liens.Mode, len(liens.Satisfied), len(liens.Open))

	flags := risk.Flags(groups, s.settings.Risk.QuickFlipDays)
	logger.Debug("flags: %d", len(flags))

	summary := risk.Summarize(risk.Inputs{
		Documents: docs,
		Chain:     entries,
		Mortgages: mortgages,
		Liens:     liens,
		Flags:     flags,
		Scanned:   scanned,
	})
	logger.Info("risk level %s", summary.RiskLevel)

	return &domain.TitlePackage{
		RunID:       s.newID(),
		Owner:       owner,
		GeneratedAt: s.now().UTC(),
		Documents:   docs,
		Groups:      groups,
		Chain:       entries,
		Mortgages:   mortgages,
		Liens:       liens,
		Flags:       flags,
		Summary:     summary,
		ReviewQueue: reviewQueue(docs),
	}
}

func reviewQueue(docs []domain.Document) []string {
	queue := []string{}
	for _, d := range docs {
		if d.NeedsManualReview() {
			queue = append(queue, reviewID(d))
		}
	}
	return queue
}

// reviewID names a document for a reviewer: its registry document id
// when present, otherwise its record key.
func reviewID(d domain.Document) string {
	if d.DocumentID != "" {
		return d.DocumentID
	}
	return d.RecordKey()
}
