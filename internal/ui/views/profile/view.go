package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	accountdto "eduvantage/internal/modules/account/dto"
	recordsdto "eduvantage/internal/modules/records/dto"
	"eduvantage/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type AccountPort interface {
	Show(ctx context.Context) (accountdto.CredentialOutput, error)
	SignOut(ctx context.Context) error
	ForgetAccount(ctx context.Context) error
}

type RecordsPort interface {
	Statistics(ctx context.Context) (recordsdto.StatisticsOutput, error)
	GetPreferences(ctx context.Context) (recordsdto.PreferencesOutput, error)
	SetPreference(ctx context.Context, key, value string) (recordsdto.PreferencesOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type ProfileLoadedMsg struct {
	Credential  accountdto.CredentialOutput
	Stats       recordsdto.StatisticsOutput
	Preferences recordsdto.PreferencesOutput
	Err         error
}

// SignedOutMsg tells the app model to fall back to the welcome flow.
// Deleted is set when the whole account was removed rather than just
// the session ended.
type SignedOutMsg struct {
	Deleted bool
	Err     error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	account AccountPort
	records RecordsPort

	credential  accountdto.CredentialOutput
	stats       recordsdto.StatisticsOutput
	preferences recordsdto.PreferencesOutput
	body        viewport.Model
	errText     string
	width       int
	height      int
}

func New(account AccountPort, records RecordsPort) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)
	return Model{account: account, records: records, body: vp}
}

func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

// Reload refetches the credential, statistics and preferences.
func (m Model) Reload() tea.Cmd {
	return m.loadCmd()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.body.Width = m.width - 4
		m.body.Height = m.height - 4

	case ProfileLoadedMsg:
		if msg.Err != nil {
			m.errText = msg.Err.Error()
			return m, nil
		}
		m.errText = ""
		m.credential = msg.Credential
		m.stats = msg.Stats
		m.preferences = msg.Preferences
		m.body.SetContent(m.renderBody())

	case tea.KeyMsg:
		switch msg.String() {
		case "o":
			return m, func() tea.Msg {
				return SignedOutMsg{Err: m.account.SignOut(context.Background())}
			}
		case "x":
			return m, func() tea.Msg {
				return SignedOutMsg{Deleted: true, Err: m.account.ForgetAccount(context.Background())}
			}
		case "n":
			return m, m.toggleCmd("notifications", m.preferences.NotificationsEnabled)
		case "m":
			return m, m.toggleCmd("darkMode", m.preferences.DarkModeEnabled)
		}
	}

	var cmd tea.Cmd
	m.body, cmd = m.body.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	pane := theme.Pane.
		Width(m.width - 2).
		Height(m.height - 2).
		Render(m.body.View())
	if m.errText != "" {
		return lipgloss.JoinVertical(lipgloss.Left, theme.Bad.Render(m.errText), pane)
	}
	return pane
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) renderBody() string {
	c := m.credential
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(strings.TrimSpace(c.FirstName+" "+c.LastName)) + "\n\n")
	sb.WriteString(theme.Muted.Render("email: ") + c.Email + "\n")
	if !c.DOB.IsZero() {
		sb.WriteString(theme.Muted.Render("born:  ") + c.DOB.Format("2006-01-02") + "\n")
	}

	sb.WriteString("\n" + theme.Title.Render("Statistics") + "\n")
	sb.WriteString(fmt.Sprintf("%s%d\n", theme.Muted.Render("enrolled:  "), m.stats.CoursesEnrolled))
	sb.WriteString(fmt.Sprintf("%s%d\n", theme.Muted.Render("completed: "), m.stats.CoursesCompleted))
	sb.WriteString(fmt.Sprintf("%s%d\n", theme.Muted.Render("lessons:   "), m.stats.LessonsCompleted))
	sb.WriteString(fmt.Sprintf("%s%.1f%%\n", theme.Muted.Render("average:   "), m.stats.AverageProgress))

	p := m.preferences
	sb.WriteString("\n" + theme.Title.Render("Preferences") + "\n")
	sb.WriteString(theme.Muted.Render("notifications: ") + onOff(p.NotificationsEnabled) + "\n")
	sb.WriteString(theme.Muted.Render("dark mode:     ") + onOff(p.DarkModeEnabled) + "\n")
	sb.WriteString(theme.Muted.Render("language:      ") + p.Language + "\n")
	sb.WriteString(theme.Muted.Render("autoplay:      ") + onOff(p.AutoPlayEnabled) + "\n")
	sb.WriteString(theme.Muted.Render("quality:       ") + p.PlaybackQuality + "\n")
	sb.WriteString(theme.Muted.Render("theme:         ") + p.Theme + "\n")

	sb.WriteString("\n" + theme.Muted.Render("n: notifications  m: dark mode  o: sign out  x: delete account"))
	return sb.String()
}

func onOff(v bool) string {
	if v {
		return theme.Good.Render("on")
	}
	return theme.Muted.Render("off")
}

func (m Model) toggleCmd(key string, current bool) tea.Cmd {
	value := "true"
	if current {
		value = "false"
	}
	return func() tea.Msg {
		if _, err := m.records.SetPreference(context.Background(), key, value); err != nil {
			return ProfileLoadedMsg{Err: err}
		}
		return m.load()
	}
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg { return m.load() }
}

func (m Model) load() tea.Msg {
	credential, err := m.account.Show(context.Background())
	if err != nil {
		return ProfileLoadedMsg{Err: err}
	}
	stats, err := m.records.Statistics(context.Background())
	if err != nil {
		return ProfileLoadedMsg{Err: err}
	}
	preferences, err := m.records.GetPreferences(context.Background())
	if err != nil {
		return ProfileLoadedMsg{Err: err}
	}
	return ProfileLoadedMsg{Credential: credential, Stats: stats, Preferences: preferences}
}
