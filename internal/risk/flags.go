// Package risk derives attention flags from a classified document set and
// rolls them into a single risk level.
package risk

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/custodia-labs/titlescan/internal/classifier"
	"github.com/custodia-labs/titlescan/internal/core/domain"
)

// DefaultQuickFlipDays is the exclusive bound for a quick resale.
const DefaultQuickFlipDays = 90

const secondsPerDay = 86400

// Flags scans groups for conditions worth human attention.
// It is independent of matching results. quickFlipDays <= 0 uses the default.
func Flags(groups domain.Groups, quickFlipDays int) []domain.Flag {
	if quickFlipDays <= 0 {
		quickFlipDays = DefaultQuickFlipDays
	}
	flags := []domain.Flag{}

	if docs := groups[domain.CategoryLisPendens]; len(docs) > 0 {
		flags = append(flags, domain.Flag{
			Severity:  domain.SeverityHigh,
			Type:      domain.FlagLisPendens,
			Message:   fmt.Sprintf("%d lis pendens %s: pending litigation may affect title", len(docs), plural(len(docs), "notice", "notices")),
			Documents: docs,
		})
	}

	if docs := groups[domain.CategoryJudgment]; len(docs) > 0 {
		flags = append(flags, domain.Flag{
			Severity:  domain.SeverityHigh,
			Type:      domain.FlagJudgment,
			Message:   fmt.Sprintf("%d %s recorded against the owner", len(docs), plural(len(docs), "judgment", "judgments")),
			Documents: docs,
		})
	}

	if docs := taxLiens(groups); len(docs) > 0 {
		flags = append(flags, domain.Flag{
			Severity:  domain.SeverityHigh,
			Type:      domain.FlagTaxLien,
			Message:   fmt.Sprintf("%d tax-related %s recorded", len(docs), plural(len(docs), "instrument", "instruments")),
			Documents: docs,
		})
	}

	if flag, ok := quickFlip(groups[domain.CategoryDeed], quickFlipDays); ok {
		flags = append(flags, flag)
	}

	return flags
}

// taxLiens collects documents carrying the corporate tax lien code or a
// doc type mentioning tax, in category order.
func taxLiens(groups domain.Groups) []domain.Document {
	var out []domain.Document
	for _, c := range domain.AllCategories() {
		for _, d := range groups[c] {
			if d.DocTypeShort == classifier.CorporateTaxLienCode || strings.Contains(strings.ToUpper(d.DocType), "TAX") {
				out = append(out, d)
			}
		}
	}
	return out
}

// quickFlip compares the two most recent deeds.
func quickFlip(deeds []domain.Document, quickFlipDays int) (domain.Flag, bool) {
	if len(deeds) < 2 {
		return domain.Flag{}, false
	}

	recent := append([]domain.Document(nil), deeds...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].RecordTimestamp > recent[j].RecordTimestamp
	})
	latest, previous := recent[0], recent[1]

	gap := latest.RecordTimestamp - previous.RecordTimestamp
	if gap >= int64(quickFlipDays)*secondsPerDay {
		return domain.Flag{}, false
	}

	days := int(math.Round(float64(gap) / secondsPerDay))
	return domain.Flag{
		Severity: domain.SeverityMedium,
		Type:     domain.FlagQuickFlip,
		Message: fmt.Sprintf("deeds %s and %s recorded %d days apart",
			label(previous), label(latest), days),
		Documents: []domain.Document{previous, latest},
	}, true
}

func label(d domain.Document) string {
	if d.InstrumentNumber != "" {
		return d.InstrumentNumber
	}
	return d.DocumentID
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
