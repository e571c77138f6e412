package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/isomers/pkg/partition"
)

var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PartitionBrowser - Interactive partition browsing
// =============================================================================

// PartitionBrowser is the bubbletea model for scrolling through an
// enumeration. Partitions are pulled from the cursor only as the view
// reaches them, so large enumerations open instantly.
type PartitionBrowser struct {
	Source *partition.Partitioner
	Items  []*partition.Partition
	Done   bool // enumeration exhausted
	Cursor int
	Offset int
	Height int
	Chosen *partition.Partition

	next *partition.Cursor
}

// NewPartitionBrowser creates a browser over p.
func NewPartitionBrowser(p *partition.Partitioner) PartitionBrowser {
	m := PartitionBrowser{
		Source: p,
		Height: 15,
		next:   p.Cursor(),
	}
	m.load(m.Height)
	return m
}

// load pulls partitions until n are held or the enumeration ends.
func (m *PartitionBrowser) load(n int) {
	for !m.Done && len(m.Items) < n {
		if !m.next.Next() {
			m.Done = true
			return
		}
		m.Items = append(m.Items, m.next.Partition().Clone())
	}
}

func (m PartitionBrowser) Init() tea.Cmd {
	return nil
}

func (m PartitionBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup", "b":
			m.move(-m.Height)
		case "pgdown", " ", "f":
			m.move(m.Height)
		case "home", "g":
			m.move(-m.Cursor)
		case "enter":
			if len(m.Items) > 0 {
				m.Chosen = m.Items[m.Cursor]
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
		m.load(m.Offset + m.Height)
	}
	return m, nil
}

// move shifts the cursor by delta, loading ahead as needed and keeping the
// cursor inside the visible window.
func (m *PartitionBrowser) move(delta int) {
	m.load(m.Cursor + delta + 1)
	m.Cursor = min(max(m.Cursor+delta, 0), max(len(m.Items)-1, 0))
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	m.load(m.Offset + m.Height)
}

func (m PartitionBrowser) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Partitions"))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(m.Source.String()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space page  ⏎ select  q quit"))
	b.WriteString("\n\n")

	if len(m.Items) == 0 {
		b.WriteString(StyleWarning.Render("No partitions satisfy these bounds."))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Items))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		p := m.Items[i]
		marker := "  "
		if i == m.Cursor {
			marker = "▸ "
		}
		rows = append(rows, []string{marker, strconv.Itoa(i + 1), partition.FormatSum(p.Slice()), strconv.Itoa(p.Size()), strconv.Itoa(p.Len())})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Partition", "Parts", "Distinct").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			if col == 1 || col >= 3 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	total := strconv.Itoa(len(m.Items))
	if !m.Done {
		total += "+"
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%s]", m.Cursor+1, total)))

	return b.String()
}
