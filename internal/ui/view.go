// Package ui provides the terminal view layer. It consumes controller result
// envelopes only; all filtering and aggregation policy lives in domain.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskdesk/taskdesk/controller"
	"github.com/taskdesk/taskdesk/domain"
)

type viewState int

const (
	stateLogin viewState = iota
	stateTasks
	stateNewTask
)

// ExportFunc writes a backup file and returns its path.
type ExportFunc func() (string, error)

// Options configures the view.
type Options struct {
	Users       *controller.UserController
	Tasks       *controller.TaskController
	DueSoonDays int
	Export      ExportFunc
}

// Run starts the interactive view and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	if opts.DueSoonDays <= 0 {
		opts.DueSoonDays = controller.DefaultDueSoonDays
	}
	m := newModel(opts)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type model struct {
	opts  Options
	state viewState

	input   string
	cursor  int
	filter  domain.Filter
	tasks   []domain.Task
	stats   []domain.CategoryStat
	users   []domain.User
	current *domain.User

	message string
	isError bool
}

func newModel(opts Options) *model {
	return &model{
		opts:   opts,
		state:  stateLogin,
		filter: domain.Filter{Mode: domain.FilterAll},
	}
}

func (m *model) Init() tea.Cmd {
	m.loadUsers()
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c":
		return m, tea.Quit
	}

	switch m.state {
	case stateLogin:
		return m.updateLogin(key)
	case stateNewTask:
		return m.updateNewTask(key)
	default:
		return m.updateTasks(key)
	}
}

func (m *model) updateLogin(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "enter":
		res := m.opts.Users.Login(context.Background(), m.input)
		m.setMessage(res)
		if res.Success {
			user := res.Data.(*domain.User)
			m.current = user
			m.opts.Tasks.SetCurrentUser(user.ID)
			m.input = ""
			m.state = stateTasks
			m.refresh()
		}
	case "ctrl+n":
		res := m.opts.Users.Register(context.Background(), domain.UserInput{Username: m.input})
		m.setMessage(res)
		if res.Success {
			m.loadUsers()
		}
	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	default:
		if key.Type == tea.KeyRunes {
			m.input += string(key.Runes)
		}
	}
	return m, nil
}

func (m *model) updateNewTask(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "enter":
		title := strings.TrimSpace(m.input)
		res := m.opts.Tasks.CreateTask(context.Background(), controller.CreateTaskRequest{
			Title:    title,
			Assignee: controller.AssigneeSelf,
		})
		m.setMessage(res)
		m.input = ""
		m.state = stateTasks
		m.refresh()
	case "esc":
		m.input = ""
		m.state = stateTasks
	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	default:
		if key.Type == tea.KeyRunes {
			m.input += string(key.Runes)
		}
	}
	return m, nil
}

func (m *model) updateTasks(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case "t", " ":
		if task := m.selected(); task != nil {
			res := m.opts.Tasks.ToggleTaskStatus(context.Background(), task.ID)
			m.setMessage(res)
			m.refresh()
		}
	case "d":
		if task := m.selected(); task != nil {
			res := m.opts.Tasks.DeleteTask(context.Background(), task.ID)
			m.setMessage(res)
			m.refresh()
		}
	case "n":
		m.input = ""
		m.state = stateNewTask
	case "f":
		m.filter = nextFilter(m.filter)
		m.refresh()
	case "c":
		m.filter = nextCategoryFilter(m.filter)
		m.refresh()
	case "o":
		res := m.opts.Tasks.GetOverdueTasks(context.Background())
		m.reportCount(res, "overdue task(s)")
	case "s":
		res := m.opts.Tasks.GetTasksDueSoon(context.Background(), m.opts.DueSoonDays)
		m.reportCount(res, fmt.Sprintf("task(s) due within %d days", m.opts.DueSoonDays))
	case "e":
		if m.opts.Export != nil {
			if path, err := m.opts.Export(); err != nil {
				m.message, m.isError = err.Error(), true
			} else {
				m.message, m.isError = "Exported to "+path, false
			}
		}
	case "r":
		m.refresh()
	case "l":
		res := m.opts.Users.Logout(context.Background())
		m.setMessage(res)
		m.current = nil
		m.opts.Tasks.SetCurrentUser("")
		m.state = stateLogin
		m.loadUsers()
	}
	return m, nil
}

// refresh reloads the task list through the controller and applies the active
// filter policy.
func (m *model) refresh() {
	res := m.opts.Tasks.GetAllTasks(context.Background())
	if !res.Success {
		m.setMessage(res)
		m.tasks = nil
		m.stats = nil
		return
	}
	all := res.Data.([]domain.Task)
	m.tasks = domain.FilterTasks(all, m.filter)
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	if stats := m.opts.Tasks.GetCategoryStats(context.Background()); stats.Success {
		m.stats = stats.Data.([]domain.CategoryStat)
	}
}

func (m *model) loadUsers() {
	if res := m.opts.Users.GetAllUsers(context.Background()); res.Success {
		m.users = res.Data.([]domain.User)
	}
}

func (m *model) selected() *domain.Task {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return nil
	}
	return &m.tasks[m.cursor]
}

func (m *model) setMessage(res controller.Result) {
	if res.Success {
		m.message, m.isError = res.Message, false
		return
	}
	m.message, m.isError = res.Error, true
}

func (m *model) reportCount(res controller.Result, what string) {
	if !res.Success {
		m.setMessage(res)
		return
	}
	count := 0
	if res.Count != nil {
		count = *res.Count
	}
	if count == 0 {
		m.message, m.isError = "No "+what, false
		return
	}
	m.message, m.isError = fmt.Sprintf("Found %d %s", count, what), false
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
	badgeStyle    = lipgloss.NewStyle().Faint(true)

	priorityColors = map[domain.Priority]lipgloss.Style{
		domain.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		domain.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		domain.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
)

func (m *model) View() string {
	switch m.state {
	case stateLogin:
		return m.viewLogin()
	case stateNewTask:
		return m.viewNewTask()
	default:
		return m.viewTasks()
	}
}

func (m *model) viewLogin() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("taskdesk") + "\n\n")
	b.WriteString("Username: " + m.input + "▌\n\n")
	if len(m.users) > 0 {
		b.WriteString(helpStyle.Render("registered users:") + "\n")
		for _, u := range m.users {
			b.WriteString("  " + u.Username + "  " + badgeStyle.Render(u.FullName) + "\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(m.messageLine())
	b.WriteString(helpStyle.Render("enter login · ctrl+n register · ctrl+c quit"))
	return b.String()
}

func (m *model) viewNewTask() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("New task") + "\n\n")
	b.WriteString("Title: " + m.input + "▌\n\n")
	b.WriteString(helpStyle.Render("enter create · esc cancel"))
	return b.String()
}

func (m *model) viewTasks() string {
	var b strings.Builder

	header := "taskdesk"
	if m.current != nil {
		header += " — " + m.current.DisplayName()
	}
	b.WriteString(titleStyle.Render(header))
	b.WriteString("  " + badgeStyle.Render("["+filterLabel(m.filter)+"]") + "\n\n")

	if len(m.tasks) == 0 {
		b.WriteString(helpStyle.Render("no tasks for this filter") + "\n")
	}
	for i := range m.tasks {
		b.WriteString(m.taskLine(i) + "\n")
	}

	if len(m.stats) > 0 {
		b.WriteString("\n" + helpStyle.Render("by category:") + " ")
		parts := make([]string, 0, len(m.stats))
		for _, s := range m.stats {
			parts = append(parts, fmt.Sprintf("%s %d/%d", s.Category, s.Completed, s.Total))
		}
		b.WriteString(badgeStyle.Render(strings.Join(parts, "  ")) + "\n")
	}

	b.WriteString("\n" + m.messageLine())
	b.WriteString(helpStyle.Render("t toggle · d delete · n new · f filter · c category · o overdue · s due soon · e export · l logout · q quit"))
	return b.String()
}

func (m *model) taskLine(i int) string {
	t := &m.tasks[i]

	marker := "[ ]"
	if t.IsCompleted() {
		marker = "[x]"
	}
	line := fmt.Sprintf("%s %s", marker, t.Title)
	if t.DueDate != nil {
		line += badgeStyle.Render("  due " + t.DueDate.Format("2006-01-02"))
		if t.IsOverdue(time.Now()) {
			line += errorStyle.Render(" !")
		}
	}
	line += "  " + priorityColors[t.Priority].Render(string(t.Priority))
	line += "  " + badgeStyle.Render(string(t.Category))

	switch {
	case i == m.cursor:
		return selectedStyle.Render("> " + line)
	case t.IsCompleted():
		return "  " + doneStyle.Render(line)
	default:
		return "  " + line
	}
}

func (m *model) messageLine() string {
	if m.message == "" {
		return "\n"
	}
	if m.isError {
		return errorStyle.Render(m.message) + "\n"
	}
	return infoStyle.Render(m.message) + "\n"
}

func filterLabel(f domain.Filter) string {
	switch f.Mode {
	case domain.FilterByPriority:
		return string(f.Priority)
	case domain.FilterByCategory:
		return string(f.Category)
	default:
		return string(f.Mode)
	}
}

// nextFilter cycles all → pending → completed → high → medium → low → all.
// Selecting a status/priority filter clears any category filter, keeping
// exactly one mode active.
func nextFilter(f domain.Filter) domain.Filter {
	switch f.Mode {
	case domain.FilterAll:
		return domain.Filter{Mode: domain.FilterPending}
	case domain.FilterPending:
		return domain.Filter{Mode: domain.FilterCompleted}
	case domain.FilterCompleted:
		return domain.Filter{Mode: domain.FilterByPriority, Priority: domain.PriorityHigh}
	case domain.FilterByPriority:
		switch f.Priority {
		case domain.PriorityHigh:
			return domain.Filter{Mode: domain.FilterByPriority, Priority: domain.PriorityMedium}
		case domain.PriorityMedium:
			return domain.Filter{Mode: domain.FilterByPriority, Priority: domain.PriorityLow}
		}
		return domain.Filter{Mode: domain.FilterAll}
	default:
		return domain.Filter{Mode: domain.FilterAll}
	}
}

// nextCategoryFilter cycles through the fixed categories, then back to all.
func nextCategoryFilter(f domain.Filter) domain.Filter {
	cats := domain.Categories()
	if f.Mode != domain.FilterByCategory {
		return domain.Filter{Mode: domain.FilterByCategory, Category: cats[0]}
	}
	for i, c := range cats {
		if c == f.Category {
			if i == len(cats)-1 {
				return domain.Filter{Mode: domain.FilterAll}
			}
			return domain.Filter{Mode: domain.FilterByCategory, Category: cats[i+1]}
		}
	}
	return domain.Filter{Mode: domain.FilterAll}
}
