package courses

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	recordsdto "eduvantage/internal/modules/records/dto"
	"eduvantage/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type RecordsPort interface {
	ListCourses(ctx context.Context) ([]recordsdto.CourseProgressOutput, error)
	GetCourse(ctx context.Context, courseID string) (recordsdto.CourseProgressOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type CoursesLoadedMsg struct {
	Courses []recordsdto.CourseProgressOutput
	Err     error
}

type DetailLoadedMsg struct {
	Detail recordsdto.CourseProgressOutput
	Err    error
}

// OpenLessonsMsg asks the app model to switch to the Lessons tab for a course.
type OpenLessonsMsg struct {
	CourseID   string
	CourseName string
}

// ─── list item ───────────────────────────────────────────────────────────────

type courseItem struct {
	course recordsdto.CourseProgressOutput
}

func (i courseItem) Title() string {
	if i.course.IsFavorite {
		return "★ " + i.course.CourseName
	}
	return i.course.CourseName
}

func (i courseItem) Description() string {
	return fmt.Sprintf("%s  %.0f%%  %d/%d lessons",
		i.course.Category, i.course.CompletionPercentage,
		i.course.LessonsCompleted, i.course.TotalLessons)
}

func (i courseItem) FilterValue() string { return i.course.CourseName + " " + i.course.Category }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    RecordsPort
	list    list.Model
	detail  recordsdto.CourseProgressOutput
	preview viewport.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port RecordsPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "My Courses"
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
			m.list.Title = "My Courses — " + msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.Courses))
		for i, c := range msg.Courses {
			items[i] = courseItem{course: c}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if len(msg.Courses) > 0 {
			cmds = append(cmds, m.loadDetailCmd(msg.Courses[0].CourseID))
		} else {
			m.detail = recordsdto.CourseProgressOutput{}
			m.preview.SetContent(m.renderDetail())
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

	case tea.KeyMsg:
		if msg.String() == "enter" && !m.Filtering() {
			if item, ok := m.list.SelectedItem().(courseItem); ok {
				course := item.course
				return m, func() tea.Msg {
					return OpenLessonsMsg{CourseID: course.CourseID, CourseName: course.CourseName}
				}
			}
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			if item, ok := m.list.SelectedItem().(courseItem); ok {
				cmds = append(cmds, m.loadDetailCmd(item.course.CourseID))
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
			m.spinner.View()+" Loading courses…")
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

// Reload refetches the enrolled course list.
func (m Model) Reload() tea.Cmd {
	return m.loadCoursesCmd()
}

// SelectedCourseID returns the current selection's course ID, if any.
func (m Model) SelectedCourseID() (string, bool) {
	if item, ok := m.list.SelectedItem().(courseItem); ok {
		return item.course.CourseID, true
	}
	return "", false
}

// Filtering reports whether the list's search filter is currently active.
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
	if d.CourseID == "" {
		return theme.Muted.Render("No enrollments yet. Enroll from the Catalog tab.")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(d.CourseName) + "\n\n")
	sb.WriteString(theme.Muted.Render("category:  ") + d.Category + "\n")
	sb.WriteString(fmt.Sprintf("%s%.1f%%\n", theme.Muted.Render("progress:  "), d.CompletionPercentage))
	sb.WriteString(fmt.Sprintf("%s%d / %d\n", theme.Muted.Render("lessons:   "), d.LessonsCompleted, d.TotalLessons))
	sb.WriteString(theme.Muted.Render("enrolled:  ") + d.EnrollmentDate.Format("2006-01-02") + "\n")
	if d.LastAccessedDate != nil {
		sb.WriteString(theme.Muted.Render("accessed:  ") + d.LastAccessedDate.Format("2006-01-02 15:04") + "\n")
	}
	if d.IsFavorite {
		sb.WriteString(theme.Good.Render("★ favorite") + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("enter: open lessons  f: favorite  d: drop"))
	return sb.String()
}

func (m Model) loadCoursesCmd() tea.Cmd {
	return func() tea.Msg {
		courses, err := m.port.ListCourses(context.Background())
		return CoursesLoadedMsg{Courses: courses, Err: err}
	}
}

func (m Model) loadDetailCmd(courseID string) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.port.GetCourse(context.Background(), courseID)
		return DetailLoadedMsg{Detail: detail, Err: err}
	}
}
