package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/takehome/internal/calculation"
	"github.com/rgehrsitz/takehome/internal/config"
	"github.com/rgehrsitz/takehome/internal/domain"
	"github.com/rgehrsitz/takehome/internal/output"
	"github.com/rgehrsitz/takehome/internal/rules"
	"github.com/rgehrsitz/takehome/internal/tui/components"
	"github.com/rgehrsitz/takehome/internal/transform"
)

// field identifies an editable parameter, in display order
type field int

const (
	fieldSalary field = iota
	fieldAge
	fieldPension
	fieldStudentLoan
	fieldPlan
	fieldBlind
	fieldTaxYear
	fieldCount
)

var (
	salaryStep   = decimal.NewFromInt(500)
	salaryLimit  = decimal.NewFromInt(250000)
	pensionStep  = decimal.NewFromFloat(0.5)
	hundred      = decimal.NewFromInt(100)
	defaultGross = decimal.NewFromInt(30000)
)

// Model represents the entire application state
type Model struct {
	// Terminal dimensions
	width  int
	height int

	// Profiles loaded from file, if any
	configPath   string
	config       *domain.Configuration
	profileIndex int

	rules      *rules.Repository
	calcEngine *calculation.CalculationEngine

	// base is the profile as loaded; current carries the edits made so far
	base          *domain.ProfileInput
	current       *domain.ProfileInput
	baseBreakdown domain.TaxBreakdown
	breakdown     domain.TaxBreakdown

	salary      *components.ParameterSlider
	age         *components.ParameterSlider
	pension     *components.ParameterSlider
	studentLoan *components.ChoiceField
	plan        *components.ChoiceField
	blind       *components.ChoiceField
	taxYear     *components.ChoiceField
	focused     field

	keys keyMap
	help help.Model

	err     error
	loading bool
}

// NewModel creates the calculator. With an empty configPath it starts from a
// default profile; otherwise the file's profiles are loaded by Init.
func NewModel(configPath string, repo *rules.Repository) Model {
	m := Model{
		configPath: configPath,
		rules:      repo,
		calcEngine: calculation.NewCalculationEngine(repo),
		keys:       defaultKeyMap(),
		help:       help.New(),
		width:      80,
		height:     24,
		loading:    configPath != "",
	}
	m.setProfile(defaultProfile(), "")
	return m
}

func defaultProfile() *domain.ProfileInput {
	gross := defaultGross
	return &domain.ProfileInput{
		Name:  "you",
		Facts: domain.Facts{GrossSalary: &gross},
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	if m.configPath == "" {
		return nil
	}
	return loadConfigCmd(m.configPath, m.rules)
}

// loadConfigCmd returns a command that loads the profile file
func loadConfigCmd(path string, repo *rules.Repository) tea.Cmd {
	return func() tea.Msg {
		cfg, err := config.NewInputParser(repo).LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ConfigLoadedMsg{Config: cfg}
	}
}

// setProfile makes input the base profile, pinning its tax year
func (m *Model) setProfile(input *domain.ProfileInput, defaultTaxYear string) {
	base := input.DeepCopy()
	if base.TaxYear == "" {
		base.TaxYear = defaultTaxYear
	}
	if base.TaxYear == "" {
		base.TaxYear = m.rules.DefaultTaxYear()
	}
	m.base = base
	m.reset()
}

// reset discards every edit
func (m *Model) reset() {
	m.current = m.base.DeepCopy()
	m.err = nil
	m.recompute()
	m.baseBreakdown = m.breakdown
	m.buildFields()
}

// buildFields creates the editors from the current profile's effective values
func (m *Model) buildFields() {
	p, err := m.calcEngine.NewProfile(m.current, "")
	if err != nil {
		m.err = err
		p, _ = domain.NewProfile(m.rules, &m.current.Facts, m.rules.DefaultTaxYear())
	}

	m.salary = components.NewParameterSlider("Gross Salary", p.GrossSalary,
		decimal.Zero, decimal.Max(salaryLimit, p.GrossSalary), salaryStep).
		WithFormat(output.FormatCurrency).
		WithDescription("Annual salary before any deductions")

	age := decimal.NewFromInt(int64(p.Age))
	m.age = components.NewParameterSlider("Age", age,
		decimal.Min(decimal.NewFromInt(16), age), decimal.Max(decimal.NewFromInt(100), age), decimal.NewFromInt(1)).
		WithDescription("National Insurance stops at state pension age")

	m.pension = components.NewParameterSlider("Pension Sacrifice", p.PensionSacrificePercent.Mul(hundred),
		decimal.Zero, hundred, pensionStep).
		WithFormat(func(d decimal.Decimal) string { return d.StringFixed(1) + "%" }).
		WithDescription("Share of salary paid into a pension before tax")

	m.studentLoan = components.NewChoiceField("Student Loan", []string{"off", "on"}, onOff(p.StudentLoanRepayments))
	planName := "plan 1"
	if p.StudentLoanPlan == domain.StudentLoanPlan2 {
		planName = "plan 2"
	}
	m.plan = components.NewChoiceField("Repayment Plan", []string{"plan 1", "plan 2"}, planName)
	m.blind = components.NewChoiceField("Blind Allowance", []string{"no", "yes"}, yesNo(p.Blind))
	m.taxYear = components.NewChoiceField("Tax Year", m.rules.TaxYears(), p.TaxYear())

	m.syncFocus()
}

func (m *Model) syncFocus() {
	m.salary.SetFocused(m.focused == fieldSalary)
	m.age.SetFocused(m.focused == fieldAge)
	m.pension.SetFocused(m.focused == fieldPension)
	m.studentLoan.IsFocused = m.focused == fieldStudentLoan
	m.plan.IsFocused = m.focused == fieldPlan
	m.blind.IsFocused = m.focused == fieldBlind
	m.taxYear.IsFocused = m.focused == fieldTaxYear
}

// apply edits the current profile and recomputes its breakdown
func (m *Model) apply(transforms ...transform.ProfileTransform) {
	next, err := transform.ApplyTransforms(m.current, transforms)
	if err != nil {
		m.err = err
		return
	}
	m.current = next
	m.err = nil
	m.recompute()
}

func (m *Model) recompute() {
	p, err := m.calcEngine.NewProfile(m.current, "")
	if err != nil {
		m.err = err
		return
	}
	m.breakdown = m.calcEngine.Evaluate(p)
}

// adjust moves the focused parameter by steps (negative to decrease)
func (m *Model) adjust(steps int64) {
	switch m.focused {
	case fieldSalary:
		m.salary.Increment(steps)
		m.apply(&transform.SetSalary{Amount: m.salary.Value})
	case fieldAge:
		m.age.Increment(steps)
		m.apply(&transform.SetAge{Age: int(m.age.Value.IntPart())})
	case fieldPension:
		m.pension.Increment(steps)
		m.apply(&transform.SetPensionSacrifice{Percent: m.pension.Value.Div(hundred)})
	default:
		choice := m.choice(m.focused)
		if steps < 0 {
			choice.Prev()
		} else {
			choice.Next()
		}
		m.applyChoice(m.focused)
	}
}

// toggle advances the focused choice; sliders ignore it
func (m *Model) toggle() {
	if choice := m.choice(m.focused); choice != nil {
		choice.Next()
		m.applyChoice(m.focused)
	}
}

func (m *Model) choice(f field) *components.ChoiceField {
	switch f {
	case fieldStudentLoan:
		return m.studentLoan
	case fieldPlan:
		return m.plan
	case fieldBlind:
		return m.blind
	case fieldTaxYear:
		return m.taxYear
	}
	return nil
}

func (m *Model) applyChoice(f field) {
	switch f {
	case fieldStudentLoan:
		if m.studentLoan.Selected() == "on" {
			m.apply(&transform.EnableStudentLoan{Plan: m.selectedPlan()})
		} else {
			m.apply(&transform.DisableStudentLoan{})
		}
	case fieldPlan:
		edits := []transform.ProfileTransform{&transform.EnableStudentLoan{Plan: m.selectedPlan()}}
		if m.studentLoan.Selected() != "on" {
			edits = append(edits, &transform.DisableStudentLoan{})
		}
		m.apply(edits...)
	case fieldBlind:
		m.apply(&transform.SetBlind{Blind: m.blind.Selected() == "yes"})
	case fieldTaxYear:
		m.apply(&transform.SetTaxYear{TaxYear: m.taxYear.Selected(), Rules: m.rules})
	}
}

func (m *Model) selectedPlan() domain.StudentLoanPlan {
	if m.plan.Selected() == "plan 2" {
		return domain.StudentLoanPlan2
	}
	return domain.StudentLoanPlan1
}

// switchProfile moves to another profile from the loaded file
func (m *Model) switchProfile(delta int) {
	if m.config == nil || len(m.config.Profiles) < 2 {
		return
	}
	n := len(m.config.Profiles)
	m.profileIndex = (m.profileIndex + delta + n) % n
	m.setProfile(&m.config.Profiles[m.profileIndex], m.config.DefaultTaxYear)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
