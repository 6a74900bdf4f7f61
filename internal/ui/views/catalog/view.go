package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	catalogdto "eduvantage/internal/modules/catalog/dto"
	"eduvantage/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type CatalogPort interface {
	List(ctx context.Context) ([]catalogdto.CourseOutput, error)
	Show(ctx context.Context, id string) (catalogdto.CourseDetailOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type CoursesLoadedMsg struct {
	Courses []catalogdto.CourseOutput
	Err     error
}

type DetailLoadedMsg struct {
	Detail catalogdto.CourseDetailOutput
	Err    error
}

// ─── list item ───────────────────────────────────────────────────────────────

type courseItem struct {
	course catalogdto.CourseOutput
}

func (i courseItem) Title() string { return i.course.Title }
func (i courseItem) Description() string {
	return fmt.Sprintf("%s  %s  %s", i.course.Category, i.course.Duration, i.course.Difficulty)
}
func (i courseItem) FilterValue() string { return i.course.Title + " " + i.course.Category }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    CatalogPort
	list    list.Model
	detail  catalogdto.CourseDetailOutput
	preview viewport.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port CatalogPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Catalog"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		list:    l,
		preview: vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCoursesCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case CoursesLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Catalog — " + msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.Courses))
		for i, c := range msg.Courses {
			items[i] = courseItem{course: c}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if len(msg.Courses) > 0 {
			cmds = append(cmds, m.loadDetailCmd(msg.Courses[0].ID))
		}

	case DetailLoadedMsg:
		if msg.Err == nil {
			m.detail = msg.Detail
			m.preview.SetContent(m.renderDetail())
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			if item, ok := m.list.SelectedItem().(courseItem); ok {
				cmds = append(cmds, m.loadDetailCmd(item.course.ID))
			}
		}

		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading catalog…")
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Reload refetches the course list.
func (m Model) Reload() tea.Cmd {
	return m.loadCoursesCmd()
}

// SelectedCourse returns the current selection, if any.
func (m Model) SelectedCourse() (catalogdto.CourseOutput, bool) {
	if item, ok := m.list.SelectedItem().(courseItem); ok {
		return item.course, true
	}
	return catalogdto.CourseOutput{}, false
}

// Filtering reports whether the list's search filter is currently active.
// The app model checks this to avoid consuming global keys during a search.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4
}

func (m Model) renderDetail() string {
	d := m.detail
	if d.ID == "" {
		return theme.Muted.Render("Select a course to see details")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(d.Title) + "\n\n")
	sb.WriteString(theme.Muted.Render("category:   ") + d.Category + "\n")
	sb.WriteString(theme.Muted.Render("duration:   ") + d.Duration + "\n")
	sb.WriteString(theme.Muted.Render("difficulty: ") + d.Difficulty + "\n")
	sb.WriteString(theme.Muted.Render("students:   ") + d.Students + "\n")
	sb.WriteString(fmt.Sprintf("%s%d\n", theme.Muted.Render("lessons:    "), len(d.Lessons)))
	if len(d.Questions) > 0 {
		sb.WriteString(fmt.Sprintf("%s%d questions\n", theme.Muted.Render("quiz:       "), len(d.Questions)))
	}
	if d.Description != "" {
		sb.WriteString("\n" + d.Description + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("e: enroll  enter: open lessons"))
	return sb.String()
}

func (m Model) loadCoursesCmd() tea.Cmd {
	return func() tea.Msg {
		courses, err := m.port.List(context.Background())
		return CoursesLoadedMsg{Courses: courses, Err: err}
	}
}

func (m Model) loadDetailCmd(id string) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.port.Show(context.Background(), id)
		return DetailLoadedMsg{Detail: detail, Err: err}
	}
}
