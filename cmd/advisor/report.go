package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"price-intel/internal/advisor"
	"price-intel/internal/recommend"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	ruleLine   = strings.Repeat("─", 63)

	actionStyles = map[recommend.Action]lipgloss.Style{
		recommend.BuyNow:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		recommend.Wait:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		recommend.SetAlert: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
	}
	actionLabels = map[recommend.Action]string{
		recommend.BuyNow:   "✅ BUY NOW",
		recommend.Wait:     "⏳ WAIT",
		recommend.SetAlert: "🔔 SET ALERT",
	}
)

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

func printResults(w io.Writer, results []result) {
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		printProduct(w, r.Product)
		if r.Demand != nil {
			fmt.Fprintln(w)
			printDemand(w, r.Demand)
		}
	}
}

func printProduct(w io.Writer, p *advisor.ProductReport) {
	name := p.Name
	if name == "" {
		name = p.ProductID
	}
	rec := p.Recommendation
	f := rec.Factors

	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s (%s)", name, p.Category)))
	fmt.Fprintln(w, ruleLine)
	fmt.Fprintf(w, "  %s  %.0f%% confidence\n",
		actionStyles[rec.Action].Render(actionLabels[rec.Action]), rec.Confidence*100)
	fmt.Fprintf(w, "  📝 %s\n", rec.Reasoning)
	fmt.Fprintln(w)

	if p.HistoryPoints == 0 {
		return
	}
	fmt.Fprintf(w, "  💰 Current:        %s (%s of range)\n", recommend.Rupees(f.CurrentPrice), f.PositionLabel)
	fmt.Fprintf(w, "  📊 Range:          %s to %s, average %s\n",
		recommend.Rupees(f.MinPrice), recommend.Rupees(f.MaxPrice), recommend.Rupees(f.AveragePrice))
	fmt.Fprintf(w, "  📈 Trend:          %s (%+.1f%%), volatility %s\n", f.Trend, f.TrendChangePercent, f.Volatility)
	if len(p.Predictions) > 0 {
		fmt.Fprintf(w, "  🔮 Forecast low:   %s on %s (save %s)\n",
			recommend.Rupees(rec.PredictedBestPrice), rec.PredictedBestDate.Format("02 Jan 2006"),
			recommend.Rupees(rec.SavingsIfWait))
	}
	if fi := f.FestivalImpact; fi != nil {
		fmt.Fprintf(w, "  🎉 Next sale:      %s in %d days, ~%.0f%% off\n",
			fi.Festival.Name, fi.DaysUntil, fi.ExpectedDiscount)
	}
	fmt.Fprintf(w, "  🏷️  Deal score:     %d/100 (%s)\n", p.Deal.Score, p.Deal.Rating)
	for _, reason := range p.Deal.Reasons {
		fmt.Fprintf(w, "     • %s\n", reason)
	}
	if m := p.CheapestMonth; m != nil {
		fmt.Fprintf(w, "  📅 Cheapest month: %s (%.1f%% below average)\n", monthNames[m.Month], m.AverageDiscount)
	}
}

func printDemand(w io.Writer, d *advisor.DemandReport) {
	in := d.Insights
	inv := d.Inventory

	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Demand outlook: %s", d.Category)))
	fmt.Fprintln(w, ruleLine)
	fmt.Fprintf(w, "  📈 Trend %s, volatility %s, seasonality %s\n", in.Trend, in.Volatility, in.SeasonalityStrength)
	if !in.PeakDate.IsZero() {
		fmt.Fprintf(w, "  🔝 Peak %.0f units on %s\n", in.PeakDemand, in.PeakDate.Format("02 Jan 2006"))
	}
	fmt.Fprintf(w, "  📦 Reorder at %.0f units, stock %.0f (lead %dd + safety %dd)\n",
		inv.ReorderPoint, inv.RecommendedStock, inv.LeadTimeDays, inv.SafetyDays)
	fmt.Fprintf(w, "  📝 %s\n", in.Recommendation)
	for _, opp := range d.Opportunities {
		if opp.IsOpportunity {
			fmt.Fprintf(w, "  🚀 %s\n", opp.Description)
		}
	}
}
