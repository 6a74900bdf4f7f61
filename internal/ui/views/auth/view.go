package auth

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	accountdto "eduvantage/internal/modules/account/dto"
	sessiondto "eduvantage/internal/modules/session/dto"
	"eduvantage/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type AccountPort interface {
	Register(ctx context.Context, firstName, lastName string, dob time.Time, email, password, confirmPassword string) (accountdto.RegisterOutput, error)
	SignIn(ctx context.Context, email, password string) (accountdto.SignInOutput, error)
	ForgetAccount(ctx context.Context) error
}

type SessionPort interface {
	Current(ctx context.Context) (sessiondto.StateOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// SignedInMsg bubbles up to the app model, which switches to the
// authenticated surface.
type SignedInMsg struct {
	FullName string
	Email    string
}

type registeredMsg struct {
	out accountdto.RegisterOutput
	err error
}

type signInResultMsg struct {
	out accountdto.SignInOutput
	err error
}

type stateLoadedMsg struct {
	state sessiondto.StateOutput
	err   error
}

// ─── screens ─────────────────────────────────────────────────────────────────

type screen int

const (
	screenWelcome screen = iota
	screenCreate
	screenSignIn
	screenVerify
)

const (
	fieldFirstName = iota
	fieldLastName
	fieldDOB
	fieldEmail
	fieldPassword
	fieldConfirm
	createFieldCount
)

// Model drives the unauthenticated flow: welcome, create account, sign
// in, and the verification screen after a successful registration.
type Model struct {
	account AccountPort
	session SessionPort

	screen      screen
	inputs      []textinput.Model
	focus       int
	errText     string
	verifyEmail string
	width       int
	height      int
}

func New(account AccountPort, session SessionPort) Model {
	return Model{
		account: account,
		session: session,
		screen:  screenWelcome,
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadStateCmd()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case stateLoadedMsg:
		// Resume the verification screen when a relaunch left it on top.
		if msg.err == nil && len(msg.state.Stack) > 0 {
			top := msg.state.Stack[len(msg.state.Stack)-1]
			if top.Kind == "verifyEmail" {
				m.screen = screenVerify
				m.verifyEmail = top.Email
			}
		}

	case registeredMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.errText = ""
		m.screen = screenVerify
		m.verifyEmail = msg.out.Email

	case signInResultMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.errText = ""
		out := msg.out
		return m, func() tea.Msg { return SignedInMsg{FullName: out.FullName, Email: out.Email} }

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.screen {
	case screenWelcome:
		switch msg.String() {
		case "c":
			m.startCreate()
		case "s":
			m.startSignIn()
		}
		return m, m.focusCmd()

	case screenVerify:
		switch msg.String() {
		case "enter":
			m.startSignIn()
			return m, m.focusCmd()
		case "esc":
			// Backing out of verification abandons the pending account.
			m.screen = screenWelcome
			m.verifyEmail = ""
			account := m.account
			return m, func() tea.Msg {
				if err := account.ForgetAccount(context.Background()); err != nil {
					return registeredMsg{err: err}
				}
				return nil
			}
		}
		return m, nil

	case screenCreate, screenSignIn:
		switch msg.String() {
		case "esc":
			m.screen = screenWelcome
			m.inputs = nil
			m.errText = ""
			return m, nil
		case "tab", "down":
			m.setFocus((m.focus + 1) % len(m.inputs))
			return m, m.focusCmd()
		case "shift+tab", "up":
			m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs))
			return m, m.focusCmd()
		case "enter":
			if m.focus < len(m.inputs)-1 {
				m.setFocus(m.focus + 1)
				return m, m.focusCmd()
			}
			return m, m.submit()
		}
	}
	return m.updateFocused(msg)
}

func (m Model) updateFocused(msg tea.Msg) (Model, tea.Cmd) {
	if len(m.inputs) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) startCreate() {
	m.screen = screenCreate
	m.errText = ""
	m.inputs = make([]textinput.Model, createFieldCount)
	placeholders := []string{"First name", "Last name", "Date of birth (YYYY-MM-DD)", "Email", "Password", "Confirm password"}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 128
		if i == fieldPassword || i == fieldConfirm {
			ti.EchoMode = textinput.EchoPassword
		}
		m.inputs[i] = ti
	}
	m.setFocus(0)
}

func (m *Model) startSignIn() {
	m.screen = screenSignIn
	m.errText = ""
	m.inputs = make([]textinput.Model, 2)
	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 128
	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	m.inputs[0] = email
	m.inputs[1] = password
	m.setFocus(0)
}

func (m *Model) setFocus(i int) {
	for j := range m.inputs {
		m.inputs[j].Blur()
	}
	m.focus = i
}

func (m Model) focusCmd() tea.Cmd {
	if len(m.inputs) == 0 {
		return nil
	}
	return m.inputs[m.focus].Focus()
}

func (m *Model) submit() tea.Cmd {
	switch m.screen {
	case screenCreate:
		dob, err := time.Parse("2006-01-02", strings.TrimSpace(m.inputs[fieldDOB].Value()))
		if err != nil {
			m.errText = "Please choose a valid date of birth."
			return nil
		}
		first := m.inputs[fieldFirstName].Value()
		last := m.inputs[fieldLastName].Value()
		email := m.inputs[fieldEmail].Value()
		password := m.inputs[fieldPassword].Value()
		confirm := m.inputs[fieldConfirm].Value()
		return func() tea.Msg {
			out, err := m.account.Register(context.Background(), first, last, dob, email, password, confirm)
			return registeredMsg{out: out, err: err}
		}
	case screenSignIn:
		email := m.inputs[0].Value()
		password := m.inputs[1].Value()
		return func() tea.Msg {
			out, err := m.account.SignIn(context.Background(), email, password)
			return signInResultMsg{out: out, err: err}
		}
	}
	return nil
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	var sb strings.Builder
	switch m.screen {
	case screenWelcome:
		sb.WriteString(theme.Title.Render("EduVantage") + "\n\n")
		sb.WriteString("Your learning companion.\n\n")
		sb.WriteString(theme.Hot.Render("c") + theme.Muted.Render(": create account   "))
		sb.WriteString(theme.Hot.Render("s") + theme.Muted.Render(": sign in   "))
		sb.WriteString(theme.Hot.Render("q") + theme.Muted.Render(": quit"))

	case screenCreate:
		sb.WriteString(theme.Title.Render("Create Account") + "\n\n")
		for _, input := range m.inputs {
			sb.WriteString(input.View() + "\n")
		}
		sb.WriteString("\n" + theme.Muted.Render("enter: next/submit  tab: move  esc: back"))

	case screenSignIn:
		sb.WriteString(theme.Title.Render("Sign In") + "\n\n")
		for _, input := range m.inputs {
			sb.WriteString(input.View() + "\n")
		}
		sb.WriteString("\n" + theme.Muted.Render("enter: next/submit  tab: move  esc: back"))

	case screenVerify:
		sb.WriteString(theme.Title.Render("Verify Your Email") + "\n\n")
		sb.WriteString("We sent a verification link to " + theme.Hot.Render(m.verifyEmail) + ".\n\n")
		sb.WriteString(theme.Muted.Render("enter: continue to sign in  esc: abandon account"))
	}

	if m.errText != "" {
		sb.WriteString("\n\n" + theme.Bad.Render(m.errText))
	}

	card := theme.Pane.Width(minWidth(m.width-8, 64)).Render(sb.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
}

func (m Model) loadStateCmd() tea.Cmd {
	return func() tea.Msg {
		state, err := m.session.Current(context.Background())
		return stateLoadedMsg{state: state, err: err}
	}
}

// TypingActive reports whether a text input has focus, in which case
// global key bindings must yield.
func (m Model) TypingActive() bool {
	return m.screen == screenCreate || m.screen == screenSignIn
}

func minWidth(a, b int) int {
	if a < b && a > 20 {
		return a
	}
	return b
}
