package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/talegraph/talegraph/internal/server"
	"github.com/talegraph/talegraph/pkg/timeline"
)

// List styles
var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// newBrowseCmd creates the browse command, an interactive chapter list in
// the terminal.
func newBrowseCmd() *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse chapters interactively in the terminal",
		Long: `Browse loads the timeline model and shows the chapters and their
asides in an interactive list. Selecting an entry prints its events.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			src, cleanup, err := newSource(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			store, err := newStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			svc := server.NewService(src, store, cfg.DatabaseID, logger)
			if err := svc.Load(ctx, refresh); err != nil {
				return err
			}
			model, _, _ := svc.Model()

			listModel := newChapterListModel(model)
			prog := tea.NewProgram(listModel, tea.WithContext(ctx))
			final, err := prog.Run()
			if err != nil {
				return err
			}

			if m, ok := final.(chapterListModel); ok && m.Selected != "" {
				printChapter(model, m.Selected)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "fetch from the source instead of the snapshot")
	return cmd
}

// printChapter prints a chapter's events and linked asides after the TUI
// exits.
func printChapter(m *timeline.Model, label string) {
	node, ok := m.Node(label)
	if !ok {
		return
	}

	fmt.Println(StyleTitle.Render(label))
	for _, title := range node.Titles() {
		fmt.Println("  " + StyleValue.Render(title))
	}
	if !node.IsAside() {
		for _, aside := range m.LinkedAsides(label) {
			printDetail("linked: %s", aside)
		}
	}
}

// chapterRow is one entry in the browse list.
type chapterRow struct {
	Label   string
	Aside   bool
	Events  int
	Related string
}

// chapterListModel is the bubbletea model for interactive chapter browsing.
type chapterListModel struct {
	Rows     []chapterRow
	Cursor   int
	Selected string
	Height   int
	Offset   int
}

func newChapterListModel(m *timeline.Model) chapterListModel {
	var rows []chapterRow
	for _, label := range m.Chapters() {
		node, _ := m.Node(label)
		rows = append(rows, chapterRow{
			Label:   label,
			Events:  len(node.Titles()),
			Related: strings.Join(m.LinkedAsides(label), ", "),
		})
	}
	for _, label := range m.Asides() {
		node, _ := m.Node(label)
		rows = append(rows, chapterRow{
			Label:  label,
			Aside:  true,
			Events: len(node.Titles()),
		})
	}
	return chapterListModel{Rows: rows, Height: 15}
}

func (m chapterListModel) Init() tea.Cmd {
	return nil
}

func (m chapterListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Rows) == 0 {
				return m, tea.Quit
			}
			m.Selected = m.Rows[m.Cursor].Label
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m chapterListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Timeline Chapters"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Rows) {
		end = len(m.Rows)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		kind := "chapter"
		if r.Aside {
			kind = "aside"
		}

		related := r.Related
		if related == "" {
			related = "—"
		}

		rows = append(rows, []string{cursor, r.Label, kind, fmt.Sprint(r.Events), related})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Chapter", "Kind", "Events", "Linked Asides").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Rows) {
				return lipgloss.NewStyle()
			}
			r := m.Rows[actualIdx]
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			if isCurrent {
				return base.Foreground(colorCyan).Bold(true)
			}
			if r.Aside {
				return base.Foreground(colorDim)
			}
			return base.Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	return b.String()
}
