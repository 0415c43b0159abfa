package main

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/kmercer13/villageforge/pkg/chat"
)

const PlaceHolderText = "Say something..."

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config       *ConsoleConfig
	client       *http.Client
	world        *WorldState
	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	err          error
	loading      bool

	// Conversation log as shown on screen. Each entry is pre-labeled.
	transcript []chat.Message
	lastReply  string

	// NPC picker state
	showNPCModal bool
	npcs         []string
	npcMap       map[string]string
	selectedNPC  int
	loadingNPCs  bool
	npcID        string
	npcName      string

	// Quit confirmation state
	showQuitModal bool

	// Progress bar state
	progressTick int
}

type turnResultMsg struct {
	result *chat.TurnResult
	err    error
}

type worldStateMsg struct {
	world *WorldState
	err   error
}

type rosterLoadedMsg struct {
	npcs   []string
	npcMap map[string]string
	err    error
}

type worldResetMsg struct {
	world *WorldState
	err   error
}

type progressTickMsg struct{}

var (
	chatPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	npcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	effectStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")). // gold
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)
)

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 1000
	ta.SetWidth(50)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return ConsoleUI{
		config:       cfg,
		client:       client,
		textarea:     ta,
		chatViewport: chatVp,
		metaViewport: metaVp,
		ready:        false,
		showNPCModal: true,
		loadingNPCs:  true,
		selectedNPC:  0,
	}
}

func (m *ConsoleUI) writeMetadata() string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("VILLAGE") + "\n\n")

	content.WriteString("Talking to:\n")
	content.WriteString(m.npcName + "\n\n")

	if m.world != nil {
		content.WriteString("Inventory:\n")
		if len(m.world.Inventory) == 0 {
			content.WriteString("(empty)\n")
		} else {
			for _, item := range m.world.Inventory {
				content.WriteString("• " + item + "\n")
			}
		}
		content.WriteString("\n")

		content.WriteString("Missions:\n")
		ids := make([]string, 0, len(m.world.Missions))
		for id := range m.world.Missions {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			marker := "○"
			if m.world.Missions[id] == "completed" {
				marker = "●"
			}
			content.WriteString(fmt.Sprintf("%s %s\n", marker, id))
		}
		content.WriteString("\n")

		if m.world.GameComplete {
			content.WriteString(effectStyle.Render("ALL MISSIONS COMPLETE!") + "\n\n")
		}
	}

	content.WriteString("Commands:\n")
	content.WriteString("• Ctrl+C: Quit\n")
	content.WriteString("• Ctrl+Y: Copy reply\n")
	content.WriteString("• Enter: Send\n")
	content.WriteString("• /npc: Switch NPC\n")
	content.WriteString("• /reset: New game\n")

	return content.String()
}

// writeChatContent rebuilds the chat panel from the transcript for the
// current viewport width.
func (m *ConsoleUI) writeChatContent() {
	chatWidth := m.chatViewport.Width - 6 // Account for left(3) + right(3) padding

	var content strings.Builder
	content.WriteString(titleStyle.Render("VILLAGEFORGE") + "\n\n")
	content.WriteString("Talk to the villagers. Complete their missions.\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", max(chatWidth-6, 1))) + "\n\n")

	for _, msg := range m.transcript {
		switch msg.Role {
		case chat.RolePlayer:
			content.WriteString(userStyle.Render("You: ") + wordwrap.String(msg.Content, chatWidth-6) + "\n\n")
		case chat.RoleCharacter:
			label := m.npcName
			if label == "" {
				label = "Villager"
			}
			content.WriteString(npcStyle.Render(label+": ") + wordwrap.String(msg.Content, chatWidth-6) + "\n\n")
		case chat.RoleSystem:
			content.WriteString(effectStyle.Render(msg.Content) + "\n\n")
		}
	}

	if m.loading {
		content.WriteString(m.renderProgressBar())
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

func (m ConsoleUI) Init() tea.Cmd {
	if m.showNPCModal {
		return m.loadRoster()
	}
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showNPCModal {
		return m.updateNPCModal(msg)
	}

	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.chatViewport, vpCmd = m.chatViewport.Update(msg)
		m.textarea, tiCmd = m.textarea.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(tiCmd, vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizePanels()
		m.ready = true
		m.writeChatContent()
		m.metaViewport.SetContent(m.writeMetadata())

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyCtrlY:
			if m.lastReply != "" {
				// Best effort; headless terminals have no clipboard.
				_ = clipboard.WriteAll(m.lastReply)
			}
			return m, nil
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}

			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}

			if strings.HasPrefix(input, "/") {
				return m.handleCommand(input)
			}

			m.textarea.Reset()
			m.loading = true
			m.progressTick = 0

			m.transcript = append(m.transcript, chat.Message{
				Role:    chat.RolePlayer,
				Content: input,
			})
			m.writeChatContent()

			return m, tea.Batch(m.sendTurn(input), progressTick())
		}

	case turnResultMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.writeChatContent()
			currentContent := m.chatViewport.View()
			errorMsg := errorStyle.Render("Error: "+msg.err.Error()) + "\n\n"
			m.chatViewport.SetContent(currentContent + errorMsg)
		} else {
			m.lastReply = msg.result.Message
			m.transcript = append(m.transcript, chat.Message{
				Role:    chat.RoleCharacter,
				Content: msg.result.Message,
			})
			if msg.result.Effects.ItemGranted != "" {
				m.transcript = append(m.transcript, chat.Message{
					Role:    chat.RoleSystem,
					Content: "* You received: " + msg.result.Effects.ItemGranted + " *",
				})
			}
			if msg.result.Effects.MissionCompleted != "" {
				m.transcript = append(m.transcript, chat.Message{
					Role:    chat.RoleSystem,
					Content: "* Mission complete: " + msg.result.Effects.MissionCompleted + " *",
				})
			}
			if msg.result.GameComplete {
				m.transcript = append(m.transcript, chat.Message{
					Role:    chat.RoleSystem,
					Content: "* The village is saved. All missions complete! *",
				})
			}
			m.world = &WorldState{
				Inventory:    msg.result.Inventory,
				Missions:     msg.result.Missions,
				GameComplete: msg.result.GameComplete,
			}
			m.writeChatContent()
			m.metaViewport.SetContent(m.writeMetadata())
		}
		m.chatViewport.GotoBottom()
		return m, nil

	case worldStateMsg:
		if msg.err == nil && msg.world != nil {
			m.world = msg.world
			m.metaViewport.SetContent(m.writeMetadata())
		}

	case worldResetMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.world = msg.world
			m.transcript = nil
			m.lastReply = ""
			m.writeChatContent()
			m.metaViewport.SetContent(m.writeMetadata())
		}
		return m, nil

	case progressTickMsg:
		if m.loading {
			m.progressTick++
			m.writeChatContent()
			return m, progressTick()
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m *ConsoleUI) resizePanels() {
	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	m.chatViewport.Width = chatWidth - 2
	m.chatViewport.Height = m.height - 7
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.textarea.SetWidth(chatWidth - 4)
}

func (m ConsoleUI) handleCommand(input string) (tea.Model, tea.Cmd) {
	cmd := strings.ToLower(strings.TrimSpace(input))
	m.textarea.Reset()

	switch cmd {
	case "/help":
		helpText := `
Commands:
• /help - Show this help
• /npc - Talk to a different villager
• /reset - Start the game over
• Ctrl+Y - Copy last reply
• Ctrl+C - Quit

How to play:
• Talk to the villagers and help them out
• Earn items and complete all five missions
`
		currentContent := m.chatViewport.View()
		m.chatViewport.SetContent(currentContent + titleStyle.Render("Help:") + helpText + "\n")
		m.chatViewport.GotoBottom()
		return m, nil

	case "/npc":
		m.showNPCModal = true
		m.loadingNPCs = true
		return m, m.loadRoster()

	case "/reset":
		m.loading = true
		return m, m.resetGame()
	}

	return m, nil
}

func (m ConsoleUI) sendTurn(message string) tea.Cmd {
	return func() tea.Msg {
		result, err := sendChat(m.client, m.config.APIBaseURL, m.npcID, message)
		return turnResultMsg{result, err}
	}
}

func (m ConsoleUI) refreshWorldState() tea.Cmd {
	return func() tea.Msg {
		world, err := getWorldState(m.client, m.config.APIBaseURL)
		return worldStateMsg{world, err}
	}
}

func (m ConsoleUI) resetGame() tea.Cmd {
	return func() tea.Msg {
		world, err := resetWorld(m.client, m.config.APIBaseURL)
		return worldResetMsg{world, err}
	}
}

func (m ConsoleUI) loadRoster() tea.Cmd {
	return func() tea.Msg {
		npcs, npcMap, err := listNPCs(m.client, m.config.APIBaseURL)
		return rosterLoadedMsg{npcs, npcMap, err}
	}
}

func (m ConsoleUI) updateNPCModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case rosterLoadedMsg:
		m.loadingNPCs = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.npcs = msg.npcs
			m.npcMap = msg.npcMap
		}

	case tea.KeyMsg:
		if m.loadingNPCs {
			if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
				return m, tea.Quit
			}
			return m, nil
		}

		if m.err != nil {
			if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyUp:
			if m.selectedNPC > 0 {
				m.selectedNPC--
			}
		case tea.KeyDown:
			if m.selectedNPC < len(m.npcs)-1 {
				m.selectedNPC++
			}
		case tea.KeyEnter:
			if len(m.npcs) > 0 {
				name := m.npcs[m.selectedNPC]
				m.npcName = name
				m.npcID = m.npcMap[name]
				m.showNPCModal = false
				if m.width > 0 && m.height > 0 {
					m.resizePanels()
				}
				m.writeChatContent()
				m.metaViewport.SetContent(m.writeMetadata())
				m.textarea.Focus()
				m.ready = true
				return m, tea.Batch(textarea.Blink, m.refreshWorldState())
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				if m.showNPCModal {
					return m, nil
				}
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Leave the Village?"))
	content.WriteString("\n\n")
	content.WriteString("Are you sure you want to quit?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderNPCModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder

	if m.loadingNPCs {
		content.WriteString(modalTitleStyle.Render("Loading Villagers..."))
		content.WriteString("\n\n")
		content.WriteString(loadingStyle.Render("Fetching the village roster..."))
	} else if m.err != nil {
		content.WriteString(modalTitleStyle.Render("Error"))
		content.WriteString("\n\n")
		content.WriteString(errorStyle.Render(fmt.Sprintf("Failed to load roster: %v", m.err)))
		content.WriteString("\n\n")
		content.WriteString("Press Ctrl+C to exit")
	} else {
		content.WriteString(modalTitleStyle.Render("Who do you want to talk to?"))
		content.WriteString("\n\n")

		for i, name := range m.npcs {
			if i == m.selectedNPC {
				content.WriteString(modalSelectedItemStyle.Render(fmt.Sprintf("▶ %s", name)))
			} else {
				content.WriteString(modalItemStyle.Render(fmt.Sprintf("  %s", name)))
			}
			content.WriteString("\n")
		}

		content.WriteString("\n")
		content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to select, Ctrl+C to exit"))
	}

	modal := modalStyle.Width(60).Render(content.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showNPCModal {
		return m.renderNPCModal()
	}

	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", max(chatWidth-4, 1))),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}

// renderProgressBar creates an animated progress bar for loading states
func (m ConsoleUI) renderProgressBar() string {
	usable := m.chatViewport.Width - 6
	if usable <= 0 {
		usable = 30 // fallback before sizing
	}

	if usable > 80 {
		usable = 80
	} else if usable < 10 {
		usable = 10
	}

	const totalFrames = 40
	frame := m.progressTick % totalFrames
	filled := (frame * usable) / totalFrames

	var bar strings.Builder
	for i := 0; i < usable; i++ {
		if i < filled {
			bar.WriteString("█")
		} else if i == filled && frame%4 < 2 {
			bar.WriteString("▓")
		} else {
			bar.WriteString("░")
		}
	}
	return separatorStyle.Render(bar.String())
}

// progressTick creates a command that sends a progress tick message
func progressTick() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}
