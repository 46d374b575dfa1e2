package tui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/takehome/internal/domain"
	"github.com/rgehrsitz/takehome/internal/rules"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func assertTakeHome(t *testing.T, m Model, expected string) {
	t.Helper()
	assert.True(t, m.breakdown.TakeHomePay.Equal(decimal.RequireFromString(expected)),
		"expected take-home %s, got %s", expected, m.breakdown.TakeHomePay)
}

func newTestModel() Model {
	return NewModel("", rules.MustDefault())
}

func TestNewModel_DefaultProfile(t *testing.T) {
	m := newTestModel()

	assert.False(t, m.loading)
	assert.Nil(t, m.Init())
	assert.Equal(t, "you", m.current.Name)
	assert.Equal(t, "2015/2016", m.breakdown.TaxYear)
	assertTakeHome(t, m, "23487.2")
	assert.Equal(t, fieldSalary, m.focused)
	assert.True(t, m.salary.IsFocused)
}

func TestModel_AdjustSalary(t *testing.T) {
	m := press(t, newTestModel(), keyRight)

	assert.True(t, m.current.Facts.GrossSalary.Equal(decimal.NewFromInt(30500)))
	assertTakeHome(t, m, "23827.2")
	assert.True(t, m.baseBreakdown.TakeHomePay.Equal(decimal.RequireFromString("23487.2")), "base is unchanged")
	assert.True(t, m.modified())

	m = press(t, m, runes("H"))
	assert.True(t, m.current.Facts.GrossSalary.Equal(decimal.NewFromInt(25500)))
}

func TestModel_SalaryStopsAtZero(t *testing.T) {
	m := newTestModel()
	for i := 0; i < 7; i++ {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyPgDown})
	}

	assert.True(t, m.current.Facts.GrossSalary.IsZero())
	assert.True(t, m.breakdown.TakeHomePay.IsZero())
}

func TestModel_AdjustPension(t *testing.T) {
	m := press(t, newTestModel(), keyDown, keyDown, keyRight, keyRight)

	assert.Equal(t, fieldPension, m.focused)
	assert.True(t, m.breakdown.PensionSacrifice.Equal(decimal.NewFromInt(300)))
	assertTakeHome(t, m, "23247.2")
}

func TestModel_AgeAtPensionAgeStopsNI(t *testing.T) {
	m := press(t, newTestModel(), keyDown)
	for i := 0; i < 25; i++ {
		m = press(t, m, keyRight)
	}

	assert.Equal(t, 65, *m.current.Facts.Age)
	assert.True(t, m.breakdown.NationalInsurance.IsZero())
}

func TestModel_StudentLoanAndPlan(t *testing.T) {
	m := press(t, newTestModel(), keyDown, keyDown, keyDown, keyEnter)

	require.True(t, *m.current.Facts.StudentLoanRepayments)
	// (30000 - 17335) * 9%
	assert.True(t, m.breakdown.StudentLoanRepayment.Equal(decimal.RequireFromString("1139.85")))

	m = press(t, m, keyDown, keyEnter)
	assert.Equal(t, int(domain.StudentLoanPlan2), *m.current.Facts.StudentLoanPlan)
	assert.True(t, m.breakdown.StudentLoanRepayment.Equal(decimal.NewFromInt(810)))

	m = press(t, m, keyUp, keyLeft)
	assert.False(t, *m.current.Facts.StudentLoanRepayments)
	assert.True(t, m.breakdown.StudentLoanRepayment.IsZero())
}

func TestModel_PlanChangeKeepsLoanOff(t *testing.T) {
	m := press(t, newTestModel(), keyDown, keyDown, keyDown, keyDown, keyEnter)

	assert.Equal(t, int(domain.StudentLoanPlan2), *m.current.Facts.StudentLoanPlan)
	assert.False(t, *m.current.Facts.StudentLoanRepayments)
	assert.True(t, m.breakdown.StudentLoanRepayment.IsZero())
}

func TestModel_Blind(t *testing.T) {
	m := press(t, newTestModel(), keyUp, keyUp, keyEnter)

	assert.Equal(t, fieldBlind, m.focused)
	assert.True(t, m.breakdown.PersonalAllowance.Equal(decimal.NewFromInt(12890)))
	assertTakeHome(t, m, "23945.2")
}

func TestModel_TaxYearCycles(t *testing.T) {
	m := press(t, newTestModel(), keyUp, keyRight)

	assert.Equal(t, fieldTaxYear, m.focused)
	assert.Equal(t, "2013/2014", m.breakdown.TaxYear)
	assertTakeHome(t, m, "23218.6")

	m = press(t, m, keyLeft)
	assert.Equal(t, "2015/2016", m.breakdown.TaxYear)
}

func TestModel_Reset(t *testing.T) {
	m := press(t, newTestModel(), keyRight, keyRight, keyDown, keyDown, keyRight, runes("r"))

	assertTakeHome(t, m, "23487.2")
	assert.False(t, m.modified())
	assert.Equal(t, fieldPension, m.focused, "focus survives a reset")
	assert.True(t, m.pension.IsFocused)
}

func TestModel_Profiles(t *testing.T) {
	alice := decimal.NewFromInt(50000)
	bob := decimal.NewFromInt(110000)
	cfg := &domain.Configuration{
		Profiles: []domain.ProfileInput{
			{Name: "alice", Facts: domain.Facts{GrossSalary: &alice}},
			{Name: "bob", Facts: domain.Facts{GrossSalary: &bob}},
		},
	}

	next, _ := newTestModel().Update(ConfigLoadedMsg{Config: cfg})
	m := next.(Model)
	assert.Equal(t, "alice", m.current.Name)
	assertTakeHome(t, m, "36325.7")

	m = press(t, m, keyTab)
	assert.Equal(t, "bob", m.current.Name)
	assertTakeHome(t, m, "69125.7")

	m = press(t, m, keyTab)
	assert.Equal(t, "alice", m.current.Name)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, "bob", m.current.Name)

	// Edits never reach the loaded configuration
	m = press(t, m, keyRight)
	assert.True(t, cfg.Profiles[1].Facts.GrossSalary.Equal(bob))
}

func TestModel_LoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
default_tax_year: "2014/2015"
profiles:
  - name: carol
    gross_salary: 40000
`), 0644))

	m := NewModel(path, rules.MustDefault())
	assert.True(t, m.loading)
	assert.Contains(t, m.View(), "Loading profiles")

	cmd := m.Init()
	require.NotNil(t, cmd)
	msg := cmd()
	loaded, ok := msg.(ConfigLoadedMsg)
	require.True(t, ok, "expected ConfigLoadedMsg, got %T", msg)

	next, _ := m.Update(loaded)
	m = next.(Model)
	assert.False(t, m.loading)
	assert.Equal(t, "carol", m.current.Name)
	assert.Equal(t, "2014/2015", m.breakdown.TaxYear)
}

func TestModel_LoadConfigError(t *testing.T) {
	m := NewModel(filepath.Join(t.TempDir(), "missing.yaml"), rules.MustDefault())

	msg := m.Init()()
	errMsg, ok := msg.(ErrorMsg)
	require.True(t, ok)

	next, _ := m.Update(errMsg)
	m = next.(Model)
	assert.False(t, m.loading)
	assert.Contains(t, m.View(), "failed to read file")
}

func TestModel_QuitAndHelp(t *testing.T) {
	m := newTestModel()

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	m = press(t, m, runes("?"))
	assert.True(t, m.help.ShowAll)
}

func TestModel_WindowSize(t *testing.T) {
	next, _ := newTestModel().Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m := next.(Model)

	assert.Equal(t, 120, m.width)
	assert.Equal(t, 120, m.help.Width)
}

func TestModel_View(t *testing.T) {
	view := newTestModel().View()

	assert.Contains(t, view, "UK Take-Home Pay")
	assert.Contains(t, view, "Gross Salary")
	assert.Contains(t, view, "Take-Home Pay")
	assert.Contains(t, view, "£23,487.20")
	assert.Contains(t, view, "2015/2016")
}
