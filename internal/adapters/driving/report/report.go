package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/titlescan/internal/core/domain"
)

// Render writes a text report of pkg to w.
func Render(w io.Writer, pkg *domain.TitlePackage, styles *Styles) error {
	if styles == nil {
		styles = PlainStyles()
	}
	var b strings.Builder

	s := pkg.Summary
	fmt.Fprintf(&b, "%s\n", styles.Title.Render("Title report: "+pkg.Owner))
	fmt.Fprintf(&b, "%s\n", styles.Muted.Render(fmt.Sprintf("run %s, %s", pkg.RunID, pkg.GeneratedAt.Format("2006-01-02 15:04 MST"))))
	fmt.Fprintf(&b, "%s\n\n", styles.Badge.Render("Risk: "+styles.Risk(s.RiskLevel).Render(string(s.RiskLevel))))

	mode := "name-only"
	if s.ScannedMode {
		mode = "scanned"
	}
	fmt.Fprintf(&b, "%s\n", styles.Section.Render("Summary"))
	fmt.Fprintf(&b, "  Documents:  %d (%s)\n", s.TotalDocuments, mode)
	fmt.Fprintf(&b, "  Chain:      %d deeds\n", s.ChainLength)
	fmt.Fprintf(&b, "  Mortgages:  %d open, %d satisfied\n", s.OpenMortgages, s.SatisfiedMortgages)
	fmt.Fprintf(&b, "  Liens:      %d open, %d released\n", s.OpenLiens, s.ReleasedLiens)
	fmt.Fprintf(&b, "  Flags:      %d (%d high, %d medium)\n", s.FlagCount, s.HighFlags, s.MediumFlags)
	if s.NeedsReview > 0 {
		fmt.Fprintf(&b, "  Review:     %d documents need manual review\n", s.NeedsReview)
	}

	if len(pkg.Flags) > 0 {
		fmt.Fprintf(&b, "\n%s\n", styles.Section.Render("Flags"))
		for _, f := range pkg.Flags {
			sev := styles.Severity(f.Severity).Render(strings.ToUpper(string(f.Severity)))
			fmt.Fprintf(&b, "  [%s] %s: %s\n", sev, f.Type, f.Message)
		}
	}

	if len(pkg.Chain) > 0 {
		fmt.Fprintf(&b, "\n%s\n", styles.Section.Render("Chain of title"))
		for _, e := range pkg.Chain {
			fmt.Fprintf(&b, "  %d. %s  %s -> %s  %s%s\n",
				e.Sequence, dateOr(e.RecordDate), names(e.Grantors), names(e.Grantees),
				e.DocType, price(e.SalesPrice))
		}
	}

	writeAnalysis(&b, styles, "Mortgages", "satisfied by", pkg.Mortgages)
	writeAnalysis(&b, styles, "Liens", "released by", pkg.Liens)

	if len(pkg.ReviewQueue) > 0 {
		fmt.Fprintf(&b, "\n%s\n", styles.Section.Render("Manual review"))
		for _, id := range pkg.ReviewQueue {
			fmt.Fprintf(&b, "  %s\n", id)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeAnalysis(b *strings.Builder, styles *Styles, title, verb string, a domain.EncumbranceAnalysis) {
	if len(a.Satisfied) == 0 && len(a.Open) == 0 && len(a.UnmatchedDischarges) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s %s\n", styles.Section.Render(title), styles.Muted.Render("("+string(a.Mode)+")"))
	for _, d := range a.Open {
		fmt.Fprintf(b, "  %s %s  %s  %s\n",
			styles.Medium.Render("OPEN"), instrument(d), dateOr(d.RecordDate), names(d.Grantees))
	}
	for _, m := range a.Satisfied {
		fmt.Fprintf(b, "  %s %s %s %s  score %d, %s confidence\n",
			styles.Low.Render("DONE"), instrument(m.Encumbrance), verb, instrument(*m.Discharge),
			m.Score, m.Confidence)
	}
	for _, d := range a.UnmatchedDischarges {
		fmt.Fprintf(b, "  %s %s  %s\n", styles.Muted.Render("UNMATCHED"), instrument(d), dateOr(d.RecordDate))
	}
}

func instrument(d domain.Document) string {
	if d.InstrumentNumber != "" {
		return d.InstrumentNumber
	}
	return d.RecordKey()
}

func names(list []string) string {
	if len(list) == 0 {
		return "?"
	}
	return strings.Join(list, "; ")
}

func dateOr(date string) string {
	if date == "" {
		return "(undated)"
	}
	return date
}

func price(p *float64) string {
	if p == nil || *p <= 0 {
		return ""
	}
	return fmt.Sprintf("  $%.2f", *p)
}
