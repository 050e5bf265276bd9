package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// form is a vertical list of text inputs with one focused field.
type form struct {
	title  string
	inputs []textinput.Model
	index  int
	err    string
}

func newForm(title string, prompts, values []string) form {
	f := form{title: title, inputs: make([]textinput.Model, len(prompts))}
	for i, prompt := range prompts {
		input := textinput.New()
		input.Prompt = prompt
		input.CharLimit = 0
		input.Cursor.SetMode(cursor.CursorStatic)
		if i < len(values) {
			input.SetValue(values[i])
		}
		f.inputs[i] = input
	}
	return f
}

func (f *form) focus(idx int) tea.Cmd {
	count := len(f.inputs)
	if count == 0 {
		return nil
	}
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	f.index = idx
	var cmd tea.Cmd
	for i := range f.inputs {
		if i == f.index {
			cmd = f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	return cmd
}

// update handles field navigation and forwards everything else to the
// focused input.
func (f *form) update(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		return f.focus(f.index + 1)
	case tea.KeyShiftTab, tea.KeyUp:
		return f.focus(f.index - 1)
	}
	var cmd tea.Cmd
	f.inputs[f.index], cmd = f.inputs[f.index].Update(msg)
	return cmd
}

func (f *form) setWidth(width int) {
	for i := range f.inputs {
		f.inputs[i].Width = max(10, width-len(f.inputs[i].Prompt)-2)
	}
}

func (f form) values() []string {
	out := make([]string, len(f.inputs))
	for i, input := range f.inputs {
		out[i] = strings.TrimSpace(input.Value())
	}
	return out
}

func (f form) view() string {
	lines := []string{titleStyle.Render(f.title)}
	for _, input := range f.inputs {
		lines = append(lines, input.View())
	}
	if f.err != "" {
		lines = append(lines, "", errorStyle.Render(f.err))
	}
	return strings.Join(lines, "\n")
}
