package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/payroll-must-balance/internal/common"
	"github.com/Veraticus/payroll-must-balance/internal/tui/themes"
	"github.com/Veraticus/payroll-must-balance/internal/viewmodel"
)

const (
	minGaugeWidth = 20
	maxGaugeWidth = 60
)

// GaugeModel shows the tuition slider as a bar, colored by the verdict, with a
// marker where the payroll breaks even.
type GaugeModel struct {
	theme       themes.Theme
	bar         progress.Model
	tuition     float64
	breakEven   float64
	width       int
	sustainable bool
}

// NewGaugeModel creates a gauge at the default slider position.
func NewGaugeModel(theme themes.Theme) GaugeModel {
	g := GaugeModel{
		theme:   theme,
		tuition: viewmodel.SliderDefault,
		width:   40,
	}
	g.bar = g.newBar()
	return g
}

func (g GaugeModel) newBar() progress.Model {
	color := g.theme.Error
	if g.sustainable {
		color = g.theme.Success
	}
	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(g.width),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(g.theme.Border)
	return bar
}

// Set moves the slider and updates the verdict.
func (g *GaugeModel) Set(tuition, breakEven float64, sustainable bool) {
	g.tuition = tuition
	g.breakEven = breakEven
	g.sustainable = sustainable
	g.bar = g.newBar()
}

// Resize fits the bar into width columns.
func (g *GaugeModel) Resize(width int) {
	g.width = max(minGaugeWidth, min(width, maxGaugeWidth))
	g.bar.Width = g.width
}

// Fill returns the bar position in [0, 1].
func (g GaugeModel) Fill() float64 {
	return viewmodel.GaugeFill(g.tuition)
}

// View renders the gauge.
func (g GaugeModel) View() string {
	label := fmt.Sprintf("Tuition increase %s", g.theme.Bold.Render(common.FormatPercent(g.tuition)))
	verdict := "DEFICIT"
	if g.sustainable {
		verdict = "SURPLUS"
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		label+"  "+g.theme.Verdict(g.sustainable).Render(verdict),
		g.bar.ViewAs(g.Fill()),
		g.renderScale(),
		g.renderMarker(),
	)
}

func (g GaugeModel) renderScale() string {
	lo := fmt.Sprintf("%.0f%%", viewmodel.SliderMin)
	hi := fmt.Sprintf("%.0f%%", viewmodel.SliderMax)
	gap := max(1, g.width-len(lo)-len(hi))
	return g.theme.CardLabel.Render(lo + strings.Repeat(" ", gap) + hi)
}

func (g GaugeModel) renderMarker() string {
	muted := g.theme.CardLabel
	switch {
	case g.breakEven <= 0:
		return muted.Render("Sustainable without a tuition increase")
	case g.breakEven > viewmodel.SliderMax:
		return muted.Render("Break-even " + common.FormatPercent(g.breakEven) + ", beyond the slider")
	}

	pos := viewmodel.BarWidth(g.breakEven, viewmodel.SliderMax, g.width-1)
	return strings.Repeat(" ", pos) + g.theme.StatusWarning.Render("▲") + " " +
		muted.Render("break-even "+common.FormatPercent(g.breakEven))
}
