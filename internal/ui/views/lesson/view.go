package lesson

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
	recordsdto "eduvantage/internal/modules/records/dto"
	"eduvantage/internal/ui/theme"
)

// watchStep is how much playback advances on a single "watch" key press.
const watchStep = 60.0

// ─── ports ───────────────────────────────────────────────────────────────────

type CatalogPort interface {
	Show(ctx context.Context, id string) (catalogdto.CourseDetailOutput, error)
}

type RecordsPort interface {
	ListLessons(ctx context.Context) ([]recordsdto.LessonProgressOutput, error)
	WatchLesson(ctx context.Context, lessonID string, watched, total float64, completed bool) (recordsdto.LessonProgressOutput, error)
	CompleteLesson(ctx context.Context, lessonID string) (recordsdto.LessonProgressOutput, error)
	UpdateCourse(ctx context.Context, courseID string, percentage float64, lessonsCompleted int) (recordsdto.CourseProgressOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LessonsLoadedMsg struct {
	Detail   catalogdto.CourseDetailOutput
	Progress []recordsdto.LessonProgressOutput
	Err      error
}

type ActionDoneMsg struct {
	Err error
}

// ─── list item ───────────────────────────────────────────────────────────────

type lessonRow struct {
	lesson   catalogdto.LessonOutput
	progress *recordsdto.LessonProgressOutput
}

func (r lessonRow) Title() string {
	if r.progress != nil && r.progress.IsCompleted {
		return "✓ " + r.lesson.Title
	}
	return r.lesson.Title
}

func (r lessonRow) Description() string {
	if r.progress == nil {
		return fmt.Sprintf("not started  %.0fs", r.lesson.Duration)
	}
	return fmt.Sprintf("%.0fs / %.0fs", r.progress.WatchedDuration, r.progress.TotalDuration)
}

func (r lessonRow) FilterValue() string { return r.lesson.Title }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	catalog CatalogPort
	records RecordsPort

	courseID   string
	courseName string
	detail     catalogdto.CourseDetailOutput
	rows       []lessonRow
	list       list.Model
	preview    viewport.Model
	spinner    spinner.Model
	loading    bool
	errText    string
	width      int
	height     int
}

func New(catalog CatalogPort, records RecordsPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Lessons"
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
		catalog: catalog,
		records: records,
		list:    l,
		preview: vp,
		spinner: sp,
	}
}

// SetCourse points the view at a course and reloads its lessons.
func (m *Model) SetCourse(courseID, courseName string) tea.Cmd {
	m.courseID = courseID
	m.courseName = courseName
	m.list.Title = courseName
	m.loading = true
	m.errText = ""
	return tea.Batch(m.loadLessonsCmd(), m.spinner.Tick)
}

// CourseID returns the course this view is showing, empty when unset.
func (m Model) CourseID() string { return m.courseID }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case LessonsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errText = msg.Err.Error()
			return m, nil
		}
		m.detail = msg.Detail
		m.rows = mergeRows(msg.Detail, msg.Progress)
		items := make([]list.Item, len(m.rows))
		for i, r := range m.rows {
			items[i] = r
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.preview.SetContent(m.renderDetail())

	case ActionDoneMsg:
		if msg.Err != nil {
			m.errText = msg.Err.Error()
			return m, nil
		}
		m.errText = ""
		cmds = append(cmds, m.loadLessonsCmd())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		if !m.Filtering() {
			switch msg.String() {
			case "w":
				return m, m.watchSelected()
			case "c":
				return m, m.completeSelected()
			}
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			m.preview.SetContent(m.renderDetail())
		}

		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.courseID == "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("Pick a course in My Courses and press enter."))
	}
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading lessons…")
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

	body := lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
	if m.errText != "" {
		return lipgloss.JoinVertical(lipgloss.Left, theme.Bad.Render(m.errText), body)
	}
	return body
}

// Reload refetches lessons for the current course.
func (m Model) Reload() tea.Cmd {
	if m.courseID == "" {
		return nil
	}
	return m.loadLessonsCmd()
}

// SelectedLessonID returns the current selection's lesson ID, if any.
func (m Model) SelectedLessonID() (string, bool) {
	if row, ok := m.list.SelectedItem().(lessonRow); ok {
		return row.lesson.ID, true
	}
	return "", false
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func mergeRows(detail catalogdto.CourseDetailOutput, progress []recordsdto.LessonProgressOutput) []lessonRow {
	byLesson := make(map[string]recordsdto.LessonProgressOutput, len(progress))
	for _, p := range progress {
		if _, seen := byLesson[p.LessonID]; !seen {
			byLesson[p.LessonID] = p
		}
	}
	rows := make([]lessonRow, len(detail.Lessons))
	for i, l := range detail.Lessons {
		rows[i] = lessonRow{lesson: l}
		if p, ok := byLesson[l.ID]; ok {
			record := p
			rows[i].progress = &record
		}
	}
	return rows
}

func (m Model) selectedRow() (lessonRow, bool) {
	row, ok := m.list.SelectedItem().(lessonRow)
	return row, ok
}

func (m Model) watchSelected() tea.Cmd {
	row, ok := m.selectedRow()
	if !ok {
		return nil
	}
	watched := watchStep
	if row.progress != nil {
		watched = row.progress.WatchedDuration + watchStep
	}
	if watched > row.lesson.Duration {
		watched = row.lesson.Duration
	}
	lessonID := row.lesson.ID
	total := row.lesson.Duration
	return tea.Batch(func() tea.Msg {
		_, err := m.records.WatchLesson(context.Background(), lessonID, watched, total, false)
		if err == nil {
			err = m.syncCourseProgress()
		}
		return ActionDoneMsg{Err: err}
	}, m.spinner.Tick)
}

func (m Model) completeSelected() tea.Cmd {
	row, ok := m.selectedRow()
	if !ok {
		return nil
	}
	lessonID := row.lesson.ID
	return tea.Batch(func() tea.Msg {
		_, err := m.records.CompleteLesson(context.Background(), lessonID)
		if err == nil {
			err = m.syncCourseProgress()
		}
		return ActionDoneMsg{Err: err}
	}, m.spinner.Tick)
}

// syncCourseProgress recomputes the enclosing course's percentage from the
// lesson records after a watch or complete action.
func (m Model) syncCourseProgress() error {
	progress, err := m.records.ListLessons(context.Background())
	if err != nil {
		return err
	}
	ids := make(map[string]struct{}, len(m.detail.Lessons))
	for _, l := range m.detail.Lessons {
		ids[l.ID] = struct{}{}
	}
	completed := 0
	seen := make(map[string]struct{})
	for _, p := range progress {
		if _, ok := ids[p.LessonID]; !ok {
			continue
		}
		if _, dup := seen[p.LessonID]; dup {
			continue
		}
		seen[p.LessonID] = struct{}{}
		if p.IsCompleted {
			completed++
		}
	}
	total := len(m.detail.Lessons)
	if total == 0 {
		return nil
	}
	pct := float64(completed) / float64(total) * 100
	_, err = m.records.UpdateCourse(context.Background(), m.courseID, pct, completed)
	return err
}

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4
}

func (m Model) renderDetail() string {
	row, ok := m.selectedRow()
	if !ok {
		return theme.Muted.Render("Select a lesson")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(row.lesson.Title) + "\n\n")
	sb.WriteString(theme.Muted.Render("id:       ") + row.lesson.ID + "\n")
	sb.WriteString(fmt.Sprintf("%s%.0fs\n", theme.Muted.Render("duration: "), row.lesson.Duration))
	if p := row.progress; p != nil {
		sb.WriteString(fmt.Sprintf("%s%.0fs\n", theme.Muted.Render("watched:  "), p.WatchedDuration))
		if p.IsCompleted {
			sb.WriteString(theme.Good.Render("completed") + "\n")
		}
		if p.Notes != "" {
			sb.WriteString(theme.Muted.Render("notes:    ") + p.Notes + "\n")
		}
		if p.Rating > 0 {
			sb.WriteString(theme.Muted.Render("rating:   ") + strings.Repeat("★", p.Rating) + "\n")
		}
	} else {
		sb.WriteString(theme.Muted.Render("not started") + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("w: watch 60s  c: complete"))
	return sb.String()
}

func (m Model) loadLessonsCmd() tea.Cmd {
	courseID := m.courseID
	return func() tea.Msg {
		detail, err := m.catalog.Show(context.Background(), courseID)
		if err != nil {
			return LessonsLoadedMsg{Err: err}
		}
		progress, err := m.records.ListLessons(context.Background())
		return LessonsLoadedMsg{Detail: detail, Progress: progress, Err: err}
	}
}
