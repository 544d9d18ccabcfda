package components

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/payroll-must-balance/internal/common"
	"github.com/Veraticus/payroll-must-balance/internal/model"
	"github.com/Veraticus/payroll-must-balance/internal/tui/themes"
)

// EmployeeTableModel lists employee projections with a movable cursor.
type EmployeeTableModel struct {
	theme   themes.Theme
	rows    []model.EmployeeProjection
	table   table.Model
	width   int
	height  int
	compact bool
}

// NewEmployeeTableModel creates an empty, focused table.
func NewEmployeeTableModel(theme themes.Theme) EmployeeTableModel {
	m := EmployeeTableModel{
		theme:  theme,
		width:  100,
		height: 12,
	}

	styles := table.DefaultStyles()
	styles.Header = theme.TableHeader
	styles.Selected = theme.Selected
	styles.Cell = theme.Normal.Padding(0, 1)

	m.table = table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(m.height),
		table.WithStyles(styles),
	)
	return m
}

// SetRows replaces the table contents. The cursor stays on the same employee
// when it is still visible.
func (m *EmployeeTableModel) SetRows(rows []model.EmployeeProjection) {
	selectedID := -1
	if p, ok := m.Selected(); ok {
		selectedID = p.Employee.ID
	}

	m.rows = rows
	m.table.SetRows(m.buildRows())

	cursor := min(m.table.Cursor(), max(len(rows)-1, 0))
	for i, p := range rows {
		if p.Employee.ID == selectedID {
			cursor = i
			break
		}
	}
	m.table.SetCursor(cursor)
}

// Selected returns the projection under the cursor.
func (m EmployeeTableModel) Selected() (model.EmployeeProjection, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.rows) {
		return model.EmployeeProjection{}, false
	}
	return m.rows[i], true
}

// Len returns the number of rows shown.
func (m EmployeeTableModel) Len() int {
	return len(m.rows)
}

// Resize fits the table into width x height cells.
func (m *EmployeeTableModel) Resize(width, height int) {
	m.width = width
	m.height = max(height, 3)
	m.compact = width < 100
	// rows must never be wider than the column set
	m.table.SetRows(nil)
	m.table.SetColumns(m.columns())
	m.table.SetRows(m.buildRows())
	m.table.SetWidth(width)
	m.table.SetHeight(m.height)
}

// Update handles navigation keys.
func (m EmployeeTableModel) Update(msg tea.Msg) (EmployeeTableModel, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the table.
func (m EmployeeTableModel) View() string {
	if len(m.rows) == 0 {
		return m.theme.StatusPending.Render("No employees match the current filters")
	}
	return m.table.View()
}

func (m EmployeeTableModel) columns() []table.Column {
	if m.compact {
		return []table.Column{
			{Title: "#", Width: 3},
			{Title: "Name", Width: max(12, m.width-58)},
			{Title: "Cat", Width: 3},
			{Title: "MA", Width: 3},
			{Title: "Bonus", Width: 7},
			{Title: "Final net", Width: 14},
			{Title: "Raise", Width: 14},
		}
	}
	return []table.Column{
		{Title: "#", Width: 3},
		{Title: "Name", Width: max(16, m.width-104)},
		{Title: "Role", Width: 18},
		{Title: "Cat", Width: 3},
		{Title: "Start", Width: 5},
		{Title: "Yrs", Width: 3},
		{Title: "MA", Width: 3},
		{Title: "Bonus", Width: 7},
		{Title: "Current net", Width: 14},
		{Title: "Final net", Width: 14},
		{Title: "Raise", Width: 14},
	}
}

func (m EmployeeTableModel) buildRows() []table.Row {
	out := make([]table.Row, 0, len(m.rows))
	for _, p := range m.rows {
		e := p.Employee
		ma := ""
		if e.AdvancedDegree {
			ma = "✓"
		}
		bonus := common.FormatFraction(p.TotalBonus())

		if m.compact {
			out = append(out, table.Row{
				strconv.Itoa(e.ID),
				e.Name,
				string(e.Category),
				ma,
				bonus,
				common.FormatMoney(p.FinalNet),
				common.FormatSignedMoney(p.NetRaise),
			})
			continue
		}
		out = append(out, table.Row{
			strconv.Itoa(e.ID),
			e.Name,
			e.Role,
			string(e.Category),
			strconv.Itoa(e.StartYear),
			strconv.Itoa(p.TenureYears),
			ma,
			bonus,
			common.FormatMoney(e.CurrentNet),
			common.FormatMoney(p.FinalNet),
			common.FormatSignedMoney(p.NetRaise),
		})
	}
	return out
}
