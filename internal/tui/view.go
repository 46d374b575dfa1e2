package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/takehome/internal/output"
	"github.com/rgehrsitz/takehome/internal/tui/components"
	"github.com/rgehrsitz/takehome/internal/tui/tuistyles"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return tuistyles.AppStyle.Render(
			tuistyles.InfoStyle.Render(fmt.Sprintf("Loading profiles from %s...", m.configPath)))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderParameters(),
		"  ",
		m.renderResults(),
	)

	sections := []string{m.renderTitleBar(), body}
	if m.err != nil {
		sections = append(sections, tuistyles.ErrorStyle.Render("Error: "+m.err.Error()))
	}
	sections = append(sections, m.help.View(m.keys))

	return tuistyles.AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// renderTitleBar renders the application title and the profile being edited
func (m Model) renderTitleBar() string {
	title := tuistyles.TitleStyle.Render("TAKEHOME · UK Take-Home Pay")

	crumb := m.current.Name
	if m.config != nil && len(m.config.Profiles) > 1 {
		crumb = fmt.Sprintf("%s (%d/%d)", crumb, m.profileIndex+1, len(m.config.Profiles))
	}
	crumb = fmt.Sprintf("%s • %s", crumb, m.breakdown.TaxYear)
	if m.modified() {
		crumb += " • modified"
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, tuistyles.SubtitleStyle.Render(crumb), "")
}

func (m Model) renderParameters() string {
	lines := []string{
		m.salary.Render(),
		m.age.Render(),
		m.pension.Render(),
		m.studentLoan.Render(),
		m.plan.Render(),
		m.blind.Render(),
		m.taxYear.Render(),
	}
	return tuistyles.ActiveBorderStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderResults() string {
	tb, base := m.breakdown, m.baseBreakdown

	cards := []*components.MetricCard{
		components.NewMetricCard("Take-Home Pay", tb.TakeHomePay).
			WithChange(tb.TakeHomePay.Sub(base.TakeHomePay), false),
		components.NewMetricCard("Income Tax", tb.TaxPayable).
			WithChange(tb.TaxPayable.Sub(base.TaxPayable), true),
		components.NewMetricCard("National Insurance", tb.NationalInsurance).
			WithChange(tb.NationalInsurance.Sub(base.NationalInsurance), true),
		components.NewMetricCard("Student Loan", tb.StudentLoanRepayment).
			WithChange(tb.StudentLoanRepayment.Sub(base.StudentLoanRepayment), true),
	}

	detail := func(label, value string) string {
		return fmt.Sprintf("%-22s %14s", label, value)
	}
	details := strings.Join([]string{
		detail("Personal Allowance", output.FormatCurrency(tb.PersonalAllowance)),
		detail("Taxable Income", output.FormatCurrency(tb.TaxableIncome)),
		detail("Pension Sacrifice", output.FormatCurrency(tb.PensionSacrifice)),
		detail("Basic Rate Tax", output.FormatCurrency(tb.BasicRate.Tax)),
		detail("Higher Rate Tax", output.FormatCurrency(tb.HigherRate.Tax)),
		detail("Additional Rate Tax", output.FormatCurrency(tb.AdditionalRate.Tax)),
		detail("Effective Tax Rate", output.FormatRate(tb.EffectiveTaxRate().Round(4))),
	}, "\n")

	return lipgloss.JoinVertical(lipgloss.Left,
		components.MetricGrid(cards, 2),
		tuistyles.BorderStyle.Render(details),
	)
}

// modified reports whether any edit changed the breakdown
func (m Model) modified() bool {
	return !m.breakdown.TakeHomePay.Equal(m.baseBreakdown.TakeHomePay) ||
		m.breakdown.TaxYear != m.baseBreakdown.TaxYear ||
		!m.breakdown.GrossSalary.Equal(m.baseBreakdown.GrossSalary)
}
