package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/takehome/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// ParameterSlider displays an adjustable amount with a visual slider
type ParameterSlider struct {
	Label       string
	Value       decimal.Decimal
	Min         decimal.Decimal
	Max         decimal.Decimal
	Step        decimal.Decimal
	Format      func(decimal.Decimal) string
	Width       int // Width of the slider bar
	IsFocused   bool
	Description string
}

// NewParameterSlider creates a new parameter slider with value clamped to [min, max]
func NewParameterSlider(label string, value, min, max, step decimal.Decimal) *ParameterSlider {
	p := &ParameterSlider{
		Label:  label,
		Min:    min,
		Max:    max,
		Step:   step,
		Format: func(d decimal.Decimal) string { return d.String() },
		Width:  20,
	}
	p.SetValue(value)
	return p
}

// WithFormat sets the value formatter
func (p *ParameterSlider) WithFormat(format func(decimal.Decimal) string) *ParameterSlider {
	p.Format = format
	return p
}

// WithWidth sets the slider width
func (p *ParameterSlider) WithWidth(width int) *ParameterSlider {
	p.Width = width
	return p
}

// WithDescription adds a description/help text
func (p *ParameterSlider) WithDescription(desc string) *ParameterSlider {
	p.Description = desc
	return p
}

// SetFocused sets the focus state
func (p *ParameterSlider) SetFocused(focused bool) *ParameterSlider {
	p.IsFocused = focused
	return p
}

// Increment increases the value by steps, stopping at Max
func (p *ParameterSlider) Increment(steps int64) {
	p.SetValue(p.Value.Add(p.Step.Mul(decimal.NewFromInt(steps))))
}

// Decrement decreases the value by steps, stopping at Min
func (p *ParameterSlider) Decrement(steps int64) {
	p.SetValue(p.Value.Sub(p.Step.Mul(decimal.NewFromInt(steps))))
}

// SetValue sets the value directly, clamping to min/max
func (p *ParameterSlider) SetValue(value decimal.Decimal) {
	p.Value = decimal.Max(p.Min, decimal.Min(p.Max, value))
}

// Fraction returns the position of the value within the range, from 0 to 1
func (p *ParameterSlider) Fraction() float64 {
	span := p.Max.Sub(p.Min)
	if !span.IsPositive() {
		return 0
	}
	return p.Value.Sub(p.Min).Div(span).InexactFloat64()
}

// Render returns the slider as a single styled line
func (p *ParameterSlider) Render() string {
	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	cursor := "  "
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
		cursor = "▸ "
	}

	line := cursor + labelStyle.Render(p.Label) + " " + p.renderBar() + " " + valueStyle.Render(p.Format(p.Value))
	if p.IsFocused && p.Description != "" {
		line += "\n    " + lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Italic(true).Render(p.Description)
	}
	return line
}

// renderBar creates the visual slider bar
func (p *ParameterSlider) renderBar() string {
	filled := int(float64(p.Width-1)*p.Fraction() + 0.5)
	filled = max(0, min(p.Width-1, filled))

	thumbStyle := tuistyles.SliderThumbStyle
	if p.IsFocused {
		thumbStyle = thumbStyle.Foreground(tuistyles.ColorAccent)
	}

	var bar strings.Builder
	bar.WriteString("[")
	bar.WriteString(thumbStyle.Render(strings.Repeat("━", filled) + "●"))
	bar.WriteString(tuistyles.SliderTrackStyle.Render(strings.Repeat("─", p.Width-1-filled)))
	bar.WriteString("]")
	return bar.String()
}

// ChoiceField cycles through a fixed list of options
type ChoiceField struct {
	Label     string
	Options   []string
	Index     int
	IsFocused bool
}

// NewChoiceField creates a choice field selecting current, or the first
// option when current is not listed
func NewChoiceField(label string, options []string, current string) *ChoiceField {
	c := &ChoiceField{Label: label, Options: options}
	for i, o := range options {
		if o == current {
			c.Index = i
		}
	}
	return c
}

// Selected returns the current option
func (c *ChoiceField) Selected() string {
	if len(c.Options) == 0 {
		return ""
	}
	return c.Options[c.Index]
}

// Next selects the following option, wrapping around
func (c *ChoiceField) Next() {
	if len(c.Options) > 0 {
		c.Index = (c.Index + 1) % len(c.Options)
	}
}

// Prev selects the preceding option, wrapping around
func (c *ChoiceField) Prev() {
	if len(c.Options) > 0 {
		c.Index = (c.Index - 1 + len(c.Options)) % len(c.Options)
	}
}

// Render returns the choice as a single styled line
func (c *ChoiceField) Render() string {
	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	cursor := "  "
	if c.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
		cursor = "▸ "
	}
	return fmt.Sprintf("%s%s ‹ %s ›", cursor, labelStyle.Render(c.Label), valueStyle.Render(c.Selected()))
}
