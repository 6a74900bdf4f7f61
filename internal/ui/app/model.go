package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	accountdto "eduvantage/internal/modules/account/dto"
	catalogdto "eduvantage/internal/modules/catalog/dto"
	quizdto "eduvantage/internal/modules/quiz/dto"
	recordsdto "eduvantage/internal/modules/records/dto"
	sessiondto "eduvantage/internal/modules/session/dto"
	"eduvantage/internal/ui/components"
	"eduvantage/internal/ui/theme"
	authview "eduvantage/internal/ui/views/auth"
	catalogview "eduvantage/internal/ui/views/catalog"
	coursesview "eduvantage/internal/ui/views/courses"
	lessonview "eduvantage/internal/ui/views/lesson"
	profileview "eduvantage/internal/ui/views/profile"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type accountPort interface {
	Register(ctx context.Context, firstName, lastName string, dob time.Time, email, password, confirmPassword string) (accountdto.RegisterOutput, error)
	SignIn(ctx context.Context, email, password string) (accountdto.SignInOutput, error)
	Show(ctx context.Context) (accountdto.CredentialOutput, error)
	SignOut(ctx context.Context) error
	ForgetAccount(ctx context.Context) error
}

type sessionPort interface {
	Current(ctx context.Context) (sessiondto.StateOutput, error)
}

type catalogPort interface {
	List(ctx context.Context) ([]catalogdto.CourseOutput, error)
	Show(ctx context.Context, id string) (catalogdto.CourseDetailOutput, error)
	Seed(ctx context.Context) (catalogdto.SeedOutput, error)
	Reindex(ctx context.Context) error
}

type recordsPort interface {
	Enroll(ctx context.Context, courseID, courseName, category string, totalLessons int) (recordsdto.CourseProgressOutput, error)
	ListCourses(ctx context.Context) ([]recordsdto.CourseProgressOutput, error)
	GetCourse(ctx context.Context, courseID string) (recordsdto.CourseProgressOutput, error)
	UpdateCourse(ctx context.Context, courseID string, percentage float64, lessonsCompleted int) (recordsdto.CourseProgressOutput, error)
	ToggleFavorite(ctx context.Context, courseID string) (recordsdto.CourseProgressOutput, error)
	DropCourse(ctx context.Context, courseID string) error
	ListLessons(ctx context.Context) ([]recordsdto.LessonProgressOutput, error)
	WatchLesson(ctx context.Context, lessonID string, watched, total float64, completed bool) (recordsdto.LessonProgressOutput, error)
	CompleteLesson(ctx context.Context, lessonID string) (recordsdto.LessonProgressOutput, error)
	SaveLessonNotes(ctx context.Context, lessonID, notes string) error
	RateLesson(ctx context.Context, lessonID string, rating int) error
	GetPreferences(ctx context.Context) (recordsdto.PreferencesOutput, error)
	SetPreference(ctx context.Context, key, value string) (recordsdto.PreferencesOutput, error)
	Statistics(ctx context.Context) (recordsdto.StatisticsOutput, error)
	Reindex(ctx context.Context) error
}

type quizPort interface {
	Start(ctx context.Context, courseID string) (quizdto.StartOutput, error)
	Answer(ctx context.Context, optionIndex int) (quizdto.AnswerOutput, error)
	Status(ctx context.Context) (quizdto.StatusOutput, error)
	Abort(ctx context.Context) error
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabCatalog tabID = iota
	tabCourses
	tabLessons
	tabProfile
	tabCount
)

var tabLabels = [tabCount]string{
	"Catalog", "My Courses", "Lessons", "Profile",
}

// ─── async messages ───────────────────────────────────────────────────────────

type authCheckedMsg struct {
	state sessiondto.StateOutput
	name  string
	err   error
}

type enrolledMsg struct {
	course recordsdto.CourseProgressOutput
	err    error
}

type courseActionMsg struct {
	verb string
	err  error
}

type lessonActionMsg struct {
	verb string
	err  error
}

type quizMsg struct {
	line string
	err  error
}

type prefsSetMsg struct{ err error }

type seededMsg struct {
	out catalogdto.SeedOutput
	err error
}

type reindexedMsg struct{ err error }

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab      key.Binding
	Help     key.Binding
	Palette  key.Binding
	Quit     key.Binding
	Enter    key.Binding
	Enroll   key.Binding
	Favorite key.Binding
	Drop     key.Binding
	Watch    key.Binding
	Complete key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Enroll:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "enroll")),
		Favorite: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
		Drop:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "drop course")),
		Watch:    key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "watch lesson")),
		Complete: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete lesson")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Enter, k.Enroll},
		{k.Favorite, k.Drop, k.Watch, k.Complete},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns the authentication gate,
// tab routing, the global help overlay, and the command palette. All
// business logic is delegated to port interfaces; all rendering is
// delegated to sub-views.
type Model struct {
	rootPath string

	// ports used at this orchestration level only
	account accountPort
	session sessionPort
	catalog catalogPort
	records recordsPort
	quiz    quizPort

	// unauthenticated flow
	authView authview.Model
	authed   bool
	userName string

	// sub-views (one per tab)
	catalogView catalogview.Model
	coursesView coursesview.Model
	lessonView  lessonview.Model
	profileView profileview.Model

	// global UI state
	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(
	rootPath string,
	account accountPort,
	session sessionPort,
	catalog catalogPort,
	records recordsPort,
	quiz quizPort,
) Model {
	return Model{
		rootPath:    rootPath,
		account:     account,
		session:     session,
		catalog:     catalog,
		records:     records,
		quiz:        quiz,
		authView:    authview.New(authPortBridge{p: account}, sessionPortBridge{p: session}),
		catalogView: catalogview.New(catalogPortBridge{p: catalog}),
		coursesView: coursesview.New(coursesPortBridge{p: records}),
		lessonView:  lessonview.New(catalogPortBridge{p: catalog}, lessonPortBridge{p: records}),
		profileView: profileview.New(authPortBridge{p: account}, profilePortBridge{p: records}),
		activeTab:   tabCatalog,
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(),
		status:      "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.authView.Init(), m.checkAuthCmd())
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		if !m.authed {
			m.authView, _ = m.authView.Update(msg)
		}
		return m, nil
	}

	if !m.authed {
		return m.updateUnauthed(msg)
	}

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case authCheckedMsg:
		// Already authenticated; nothing to do.

	case enrolledMsg:
		if msg.err != nil {
			m.status = "enroll failed: " + msg.err.Error()
		} else {
			m.status = "enrolled: " + msg.course.CourseName
			cmds = append(cmds, m.coursesView.Reload())
		}

	case courseActionMsg:
		if msg.err != nil {
			m.status = msg.verb + " failed: " + msg.err.Error()
		} else {
			m.status = msg.verb + " ok"
			cmds = append(cmds, m.coursesView.Reload())
		}

	case lessonActionMsg:
		if msg.err != nil {
			m.status = msg.verb + " failed: " + msg.err.Error()
		} else {
			m.status = msg.verb + " ok"
			cmds = append(cmds, m.lessonView.Reload())
		}

	case quizMsg:
		if msg.err != nil {
			m.status = "quiz: " + msg.err.Error()
		} else {
			m.status = msg.line
		}

	case prefsSetMsg:
		if msg.err != nil {
			m.status = "prefs failed: " + msg.err.Error()
		} else {
			m.status = "prefs ok"
			cmds = append(cmds, m.profileView.Reload())
		}

	case seededMsg:
		if msg.err != nil {
			m.status = "seed failed: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("seeded %d courses", len(msg.out.Created))
			cmds = append(cmds, m.catalogView.Reload())
		}

	case reindexedMsg:
		if msg.err != nil {
			m.status = "reindex failed: " + msg.err.Error()
		} else {
			m.status = "reindex ok"
		}

	case profileview.ProfileLoadedMsg:
		var cmd tea.Cmd
		m.profileView, cmd = m.profileView.Update(msg)
		return m, cmd

	// Loader results go to their owning view even when another tab is
	// active, so a mid-load tab switch cannot drop them.
	case catalogview.CoursesLoadedMsg, catalogview.DetailLoadedMsg:
		var cmd tea.Cmd
		m.catalogView, cmd = m.catalogView.Update(msg)
		return m, cmd

	case coursesview.CoursesLoadedMsg, coursesview.DetailLoadedMsg:
		var cmd tea.Cmd
		m.coursesView, cmd = m.coursesView.Update(msg)
		return m, cmd

	case lessonview.LessonsLoadedMsg, lessonview.ActionDoneMsg:
		var cmd tea.Cmd
		m.lessonView, cmd = m.lessonView.Update(msg)
		return m, cmd

	case coursesview.OpenLessonsMsg:
		m.activeTab = tabLessons
		cmds = append(cmds, m.lessonView.SetCourse(msg.CourseID, msg.CourseName))

	case profileview.SignedOutMsg:
		if msg.Err != nil {
			m.status = "sign out failed: " + msg.Err.Error()
			break
		}
		m.authed = false
		m.userName = ""
		m.authView = authview.New(authPortBridge{p: m.account}, sessionPortBridge{p: m.session})
		m.authView, _ = m.authView.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		if msg.Deleted {
			m.status = "account deleted"
		} else {
			m.status = "signed out"
		}
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to sub-view when its search filter is active.
		if m.subViewFiltering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			cmds = append(cmds, m.enterTabCmd())
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			cmds = append(cmds, m.enterTabCmd())
		case "?":
			m.showHelp = !m.showHelp
		case ":":
			cmds = append(cmds, m.palette.Open())
			return m, tea.Batch(cmds...)
		case "e":
			if m.activeTab == tabCatalog {
				if course, ok := m.catalogView.SelectedCourse(); ok {
					cmds = append(cmds, m.enrollCmd(course.ID))
				}
			}
		case "f":
			if m.activeTab == tabCourses {
				if id, ok := m.coursesView.SelectedCourseID(); ok {
					cmds = append(cmds, m.favoriteCmd(id))
				}
			}
		case "d":
			if m.activeTab == tabCourses {
				if id, ok := m.coursesView.SelectedCourseID(); ok {
					cmds = append(cmds, m.dropCmd(id))
				}
			}
		case "enter":
			if m.activeTab == tabCatalog {
				if course, ok := m.catalogView.SelectedCourse(); ok {
					m.activeTab = tabLessons
					cmds = append(cmds, m.lessonView.SetCourse(course.ID, course.Title))
				}
			}
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabCatalog:
		m.catalogView, tabCmd = m.catalogView.Update(msg)
	case tabCourses:
		m.coursesView, tabCmd = m.coursesView.Update(msg)
	case tabLessons:
		m.lessonView, tabCmd = m.lessonView.Update(msg)
	case tabProfile:
		m.profileView, tabCmd = m.profileView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

func (m Model) updateUnauthed(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case authCheckedMsg:
		if msg.err == nil && msg.state.Authenticated {
			return m.signIn(msg.name)
		}
		var cmd tea.Cmd
		m.authView, cmd = m.authView.Update(msg)
		return m, cmd

	case authview.SignedInMsg:
		return m.signIn(msg.FullName)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if msg.String() == "q" && !m.authView.TypingActive() {
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.authView, cmd = m.authView.Update(msg)
	return m, cmd
}

// signIn flips to the authenticated surface and boots the tab views.
func (m Model) signIn(name string) (tea.Model, tea.Cmd) {
	m.authed = true
	m.userName = name
	m.status = "signed in"
	m.activeTab = tabCatalog
	m.propagateSize()
	return m, tea.Batch(
		m.catalogView.Init(),
		m.coursesView.Init(),
		m.profileView.Init(),
	)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if !m.authed {
		return m.authView.View()
	}

	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabCatalog:
		return m.catalogView.View()
	case tabCourses:
		return m.coursesView.View()
	case tabLessons:
		return m.lessonView.View()
	case tabProfile:
		return m.profileView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "eduvantage  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.userName != "" {
		left = theme.Hot.Render("● "+m.userName) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "course:enroll":
		course, ok := m.catalogView.SelectedCourse()
		if !ok {
			m.status = "no catalog course selected"
			return m, nil
		}
		return m, m.enrollCmd(course.ID)

	case "course:progress":
		if len(parts) < 3 {
			m.status = "usage: course:progress <percent> <lessons>"
			return m, nil
		}
		courseID, ok := m.currentCourseID()
		if !ok {
			m.status = "no course selected"
			return m, nil
		}
		pct, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			m.status = "invalid percent"
			return m, nil
		}
		lessons, err := strconv.Atoi(parts[2])
		if err != nil {
			m.status = "invalid lesson count"
			return m, nil
		}
		return m, m.progressCmd(courseID, pct, lessons)

	case "course:favorite":
		courseID, ok := m.currentCourseID()
		if !ok {
			m.status = "no course selected"
			return m, nil
		}
		return m, m.favoriteCmd(courseID)

	case "course:drop":
		courseID, ok := m.currentCourseID()
		if !ok {
			m.status = "no course selected"
			return m, nil
		}
		return m, m.dropCmd(courseID)

	case "lesson:notes":
		if len(parts) < 2 {
			m.status = "usage: lesson:notes <text>"
			return m, nil
		}
		lessonID, ok := m.lessonView.SelectedLessonID()
		if !ok {
			m.status = "no lesson selected"
			return m, nil
		}
		notes := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
		return m, m.notesCmd(lessonID, notes)

	case "lesson:rate":
		if len(parts) < 2 {
			m.status = "usage: lesson:rate <1-5>"
			return m, nil
		}
		lessonID, ok := m.lessonView.SelectedLessonID()
		if !ok {
			m.status = "no lesson selected"
			return m, nil
		}
		rating, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid rating"
			return m, nil
		}
		return m, m.rateCmd(lessonID, rating)

	case "quiz:start":
		courseID, ok := m.currentCourseID()
		if !ok {
			m.status = "no course selected"
			return m, nil
		}
		return m, m.quizStartCmd(courseID)

	case "quiz:answer":
		if len(parts) < 2 {
			m.status = "usage: quiz:answer <option>"
			return m, nil
		}
		option, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid option index"
			return m, nil
		}
		return m, m.quizAnswerCmd(option)

	case "quiz:status":
		return m, m.quizStatusCmd()

	case "quiz:abort":
		return m, m.quizAbortCmd()

	case "prefs:set":
		if len(parts) < 3 {
			m.status = "usage: prefs:set <key> <value>"
			return m, nil
		}
		return m, m.setPreferenceCmd(parts[1], parts[2])

	case "catalog:seed":
		return m, m.seedCmd()

	case "account:sign-out":
		return m, func() tea.Msg {
			return profileview.SignedOutMsg{Err: m.account.SignOut(context.Background())}
		}

	case "account:delete":
		return m, func() tea.Msg {
			return profileview.SignedOutMsg{Deleted: true, Err: m.account.ForgetAccount(context.Background())}
		}

	case "reindex":
		return m, m.reindexCmd()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// currentCourseID resolves the course a palette command targets: the
// Lessons tab's course when set, otherwise the active tab's selection.
func (m Model) currentCourseID() (string, bool) {
	switch m.activeTab {
	case tabCatalog:
		if course, ok := m.catalogView.SelectedCourse(); ok {
			return course.ID, true
		}
	case tabCourses:
		if id, ok := m.coursesView.SelectedCourseID(); ok {
			return id, true
		}
	}
	if id := m.lessonView.CourseID(); id != "" {
		return id, true
	}
	return "", false
}

// subViewFiltering reports whether the active tab's list filter is open,
// in which case global key bindings must yield to allow free typing.
func (m Model) subViewFiltering() bool {
	switch m.activeTab {
	case tabCatalog:
		return m.catalogView.Filtering()
	case tabCourses:
		return m.coursesView.Filtering()
	case tabLessons:
		return m.lessonView.Filtering()
	}
	return false
}

// enterTabCmd refreshes the tab the user just switched to.
func (m Model) enterTabCmd() tea.Cmd {
	switch m.activeTab {
	case tabCourses:
		return m.coursesView.Reload()
	case tabLessons:
		return m.lessonView.Reload()
	case tabProfile:
		return m.profileView.Reload()
	}
	return nil
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.catalogView, _ = m.catalogView.Update(sz)
	m.coursesView, _ = m.coursesView.Update(sz)
	m.lessonView, _ = m.lessonView.Update(sz)
	m.profileView, _ = m.profileView.Update(sz)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) checkAuthCmd() tea.Cmd {
	return func() tea.Msg {
		state, err := m.session.Current(context.Background())
		if err != nil {
			return authCheckedMsg{err: err}
		}
		if !state.Authenticated {
			return authCheckedMsg{state: state}
		}
		credential, err := m.account.Show(context.Background())
		if err != nil {
			return authCheckedMsg{state: state}
		}
		name := strings.TrimSpace(credential.FirstName + " " + credential.LastName)
		return authCheckedMsg{state: state, name: name}
	}
}

// enrollCmd pulls the catalog detail first so the enrollment record
// carries the course title, category, and lesson count.
func (m Model) enrollCmd(courseID string) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.catalog.Show(context.Background(), courseID)
		if err != nil {
			return enrolledMsg{err: err}
		}
		course, err := m.records.Enroll(context.Background(),
			detail.ID, detail.Title, detail.Category, len(detail.Lessons))
		return enrolledMsg{course: course, err: err}
	}
}

func (m Model) progressCmd(courseID string, pct float64, lessons int) tea.Cmd {
	return func() tea.Msg {
		_, err := m.records.UpdateCourse(context.Background(), courseID, pct, lessons)
		return courseActionMsg{verb: "progress", err: err}
	}
}

func (m Model) favoriteCmd(courseID string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.records.ToggleFavorite(context.Background(), courseID)
		return courseActionMsg{verb: "favorite", err: err}
	}
}

func (m Model) dropCmd(courseID string) tea.Cmd {
	return func() tea.Msg {
		err := m.records.DropCourse(context.Background(), courseID)
		return courseActionMsg{verb: "drop", err: err}
	}
}

func (m Model) notesCmd(lessonID, notes string) tea.Cmd {
	return func() tea.Msg {
		err := m.records.SaveLessonNotes(context.Background(), lessonID, notes)
		return lessonActionMsg{verb: "notes", err: err}
	}
}

func (m Model) rateCmd(lessonID string, rating int) tea.Cmd {
	return func() tea.Msg {
		err := m.records.RateLesson(context.Background(), lessonID, rating)
		return lessonActionMsg{verb: "rate", err: err}
	}
}

func (m Model) quizStartCmd(courseID string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.quiz.Start(context.Background(), courseID)
		if err != nil {
			return quizMsg{err: err}
		}
		return quizMsg{line: formatQuestion(out.Question)}
	}
}

func (m Model) quizAnswerCmd(option int) tea.Cmd {
	return func() tea.Msg {
		out, err := m.quiz.Answer(context.Background(), option)
		if err != nil {
			return quizMsg{err: err}
		}
		verdict := "incorrect"
		if out.Correct {
			verdict = "correct"
		}
		if out.Finished {
			return quizMsg{line: fmt.Sprintf("%s. quiz finished, score %d", verdict, out.Score)}
		}
		return quizMsg{line: verdict + ". " + formatQuestion(*out.Next)}
	}
}

func (m Model) quizStatusCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.quiz.Status(context.Background())
		if err != nil {
			return quizMsg{err: err}
		}
		line := fmt.Sprintf("%s: %d/%d answered, score %d", out.CourseTitle, out.Answered, out.Total, out.Score)
		if out.Question != nil {
			line += "  " + formatQuestion(*out.Question)
		}
		return quizMsg{line: line}
	}
}

func (m Model) quizAbortCmd() tea.Cmd {
	return func() tea.Msg {
		err := m.quiz.Abort(context.Background())
		if err != nil {
			return quizMsg{err: err}
		}
		return quizMsg{line: "quiz abandoned"}
	}
}

func (m Model) setPreferenceCmd(key, value string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.records.SetPreference(context.Background(), key, value)
		return prefsSetMsg{err: err}
	}
}

func (m Model) seedCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.catalog.Seed(context.Background())
		return seededMsg{out: out, err: err}
	}
}

func (m Model) reindexCmd() tea.Cmd {
	return func() tea.Msg {
		if err := m.records.Reindex(context.Background()); err != nil {
			return reindexedMsg{err: err}
		}
		return reindexedMsg{err: m.catalog.Reindex(context.Background())}
	}
}

func formatQuestion(q quizdto.QuestionOutput) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Q%d/%d: %s", q.Index+1, q.Total, q.Text)
	for i, option := range q.Options {
		fmt.Fprintf(&sb, "  [%d] %s", i, option)
	}
	return sb.String()
}

// ─── port bridges ─────────────────────────────────────────────────────────────
// Each bridge narrows a broad port interface to the minimal interface needed by
// a specific sub-view, keeping view packages free of knowledge about the wider
// port surface.

type authPortBridge struct{ p accountPort }

func (b authPortBridge) Register(ctx context.Context, firstName, lastName string, dob time.Time, email, password, confirm string) (accountdto.RegisterOutput, error) {
	return b.p.Register(ctx, firstName, lastName, dob, email, password, confirm)
}
func (b authPortBridge) SignIn(ctx context.Context, email, password string) (accountdto.SignInOutput, error) {
	return b.p.SignIn(ctx, email, password)
}
func (b authPortBridge) Show(ctx context.Context) (accountdto.CredentialOutput, error) {
	return b.p.Show(ctx)
}
func (b authPortBridge) SignOut(ctx context.Context) error {
	return b.p.SignOut(ctx)
}
func (b authPortBridge) ForgetAccount(ctx context.Context) error {
	return b.p.ForgetAccount(ctx)
}

type sessionPortBridge struct{ p sessionPort }

func (b sessionPortBridge) Current(ctx context.Context) (sessiondto.StateOutput, error) {
	return b.p.Current(ctx)
}

type catalogPortBridge struct{ p catalogPort }

func (b catalogPortBridge) List(ctx context.Context) ([]catalogdto.CourseOutput, error) {
	return b.p.List(ctx)
}
func (b catalogPortBridge) Show(ctx context.Context, id string) (catalogdto.CourseDetailOutput, error) {
	return b.p.Show(ctx, id)
}

type coursesPortBridge struct{ p recordsPort }

func (b coursesPortBridge) ListCourses(ctx context.Context) ([]recordsdto.CourseProgressOutput, error) {
	return b.p.ListCourses(ctx)
}
func (b coursesPortBridge) GetCourse(ctx context.Context, courseID string) (recordsdto.CourseProgressOutput, error) {
	return b.p.GetCourse(ctx, courseID)
}

type lessonPortBridge struct{ p recordsPort }

func (b lessonPortBridge) ListLessons(ctx context.Context) ([]recordsdto.LessonProgressOutput, error) {
	return b.p.ListLessons(ctx)
}
func (b lessonPortBridge) WatchLesson(ctx context.Context, lessonID string, watched, total float64, completed bool) (recordsdto.LessonProgressOutput, error) {
	return b.p.WatchLesson(ctx, lessonID, watched, total, completed)
}
func (b lessonPortBridge) CompleteLesson(ctx context.Context, lessonID string) (recordsdto.LessonProgressOutput, error) {
	return b.p.CompleteLesson(ctx, lessonID)
}
func (b lessonPortBridge) UpdateCourse(ctx context.Context, courseID string, pct float64, lessons int) (recordsdto.CourseProgressOutput, error) {
	return b.p.UpdateCourse(ctx, courseID, pct, lessons)
}

type profilePortBridge struct{ p recordsPort }

func (b profilePortBridge) Statistics(ctx context.Context) (recordsdto.StatisticsOutput, error) {
	return b.p.Statistics(ctx)
}
func (b profilePortBridge) GetPreferences(ctx context.Context) (recordsdto.PreferencesOutput, error) {
	return b.p.GetPreferences(ctx)
}
func (b profilePortBridge) SetPreference(ctx context.Context, key, value string) (recordsdto.PreferencesOutput, error) {
	return b.p.SetPreference(ctx, key, value)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
