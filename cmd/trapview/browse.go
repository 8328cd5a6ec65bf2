package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/trapguard/fault"
	"github.com/wippyai/trapguard/stackwalk"
	"github.com/wippyai/trapguard/statemap"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	frameListStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	faultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	detailLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#E5C07B"))

	detailValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#56B6C2"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type browseModel struct {
	snap     *fault.Snapshot
	frames   []stackwalk.Frame
	viewport viewport.Model
	selected int
	ready    bool
}

func newBrowseModel() *browseModel {
	snap, frames := demoFault()
	return &browseModel{snap: snap, frames: frames}
}

// demoFault builds a small in-memory module image and walks a fault through
// it, so the browser has a realistic backtrace without needing a crashing
// guest on the host architecture.
func demoFault() (*fault.Snapshot, []stackwalk.Frame) {
	const (
		codeBase  = uintptr(0x7f4a_2000_0000)
		stackBase = uintptr(0x7ffe_e000_0000)
	)

	m := &statemap.ModuleStateMap{
		CodeSize: 0x400,
		Functions: []statemap.FunctionStateMap{
			{
				FunctionID: 2,
				Start:      0x0,
				End:        0x180,
				States: map[uintptr]statemap.FrameState{
					0x9c: {
						Locals: []statemap.ValueLoc{
							statemap.InRegister(fault.FrameRegister),
							statemap.OnStack(0),
							statemap.Missing(),
						},
						Stack:      []statemap.ValueLoc{statemap.OnStack(1), statemap.OnStack(2)},
						FrameWords: 3,
					},
				},
			},
			{
				FunctionID: 0,
				Start:      0x180,
				End:        0x400,
				States: map[uintptr]statemap.FrameState{
					0x210: {
						Locals:     []statemap.ValueLoc{statemap.OnStack(0), statemap.OnStack(1)},
						Stack:      nil,
						FrameWords: 2,
					},
				},
			},
		},
	}

	w := &stackwalk.Walker{
		Map:      m,
		CodeBase: codeBase,
		Mem: &stackwalk.SliceMemory{
			Base: stackBase,
			Words: []uint64{
				1024,                       // inner frame, slot 0
				7,                          // inner frame, slot 1
				0xdeadbeef,                 // inner frame, slot 2
				uint64(codeBase + 0x210),   // inner frame return address
				42,                         // outer frame, slot 0
				99,                         // outer frame, slot 1
				uint64(codeBase + 0x1_000), // outer return address, outside the module
			},
		},
	}

	snap := &fault.Snapshot{
		FaultAddr: 0x0,
		IP:        codeBase + 0x9c,
	}
	snap.Regs.Set(fault.StackRegister, uint64(stackBase))
	snap.Regs.Set(fault.FrameRegister, 3735928559)

	return snap, w.Walk(snap)
}

func (m *browseModel) Init() tea.Cmd {
	return nil
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit

		case "up", "k":
			if m.selected > 0 {
				m.selected--
				m.viewport.SetContent(m.frameDetail())
				m.viewport.GotoTop()
			}

		case "down", "j":
			if m.selected < len(m.frames)-1 {
				m.selected++
				m.viewport.SetContent(m.frameDetail())
				m.viewport.GotoTop()
			}
		}

	case tea.WindowSizeMsg:
		listHeight := len(m.frames) + 6
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-listHeight)
			m.viewport.SetContent(m.frameDetail())
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - listHeight
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *browseModel) frameDetail() string {
	f := m.frames[m.selected]

	var b strings.Builder
	b.WriteString(detailLabelStyle.Render(fmt.Sprintf("Frame %d @ Local function %d", m.selected, f.FunctionID)))
	b.WriteString("\n\n")

	b.WriteString(detailLabelStyle.Render("Locals:"))
	b.WriteString("\n")
	if len(f.Locals) == 0 {
		b.WriteString("  (empty)\n")
	}
	for i, v := range f.Locals {
		b.WriteString(fmt.Sprintf("  [%d] = %s\n", i, detailValueStyle.Render(v.String())))
	}

	b.WriteString("\n")
	b.WriteString(detailLabelStyle.Render("Operand stack:"))
	b.WriteString("\n")
	if len(f.Stack) == 0 {
		b.WriteString("  (empty)\n")
	}
	for i, v := range f.Stack {
		b.WriteString(fmt.Sprintf("  [%d] = %s\n", i, detailValueStyle.Render(v.String())))
	}

	return b.String()
}

func (m *browseModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Trap Browser"))
	b.WriteString(" ")
	b.WriteString(faultStyle.Render(fmt.Sprintf("fault at %#x, ip %#x", m.snap.FaultAddr, m.snap.IP)))
	b.WriteString("\n\n")

	if len(m.frames) == 0 {
		b.WriteString(faultStyle.Render("Unknown fault address, cannot read stack."))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("q quit"))
		return b.String()
	}

	for i, f := range m.frames {
		line := fmt.Sprintf("Frame %d @ Local function %d  locals=%d stack=%d",
			i, f.FunctionID, len(f.Locals), len(f.Stack))
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString(frameListStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.ready {
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("↑/↓ select frame • scroll detail • q quit"))
	return b.String()
}

func runBrowser() error {
	p := tea.NewProgram(newBrowseModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
