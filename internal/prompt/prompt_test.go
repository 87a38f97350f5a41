package prompt

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(t *testing.T, m model, s string) model {
	t.Helper()
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(model)
	}
	return m
}

func press(t *testing.T, m model, k tea.KeyType) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	return next.(model), cmd
}

func TestModelAcceptsAnswer(t *testing.T) {
	m := newModel(Question{Prompt: "Contributor name"})
	m = typeText(t, m, "  ana ")

	m, cmd := press(t, m, tea.KeyEnter)

	require.NotNil(t, cmd)
	assert.True(t, m.done)
	assert.Equal(t, "ana", m.answer)
	assert.Contains(t, m.View(), "ana")
}

func TestModelRejectsInvalidAnswer(t *testing.T) {
	m := newModel(Question{
		Prompt: "Contributor seniority (1-5)",
		Validate: func(s string) error {
			if s != "3" {
				return errors.New("The value must be between 1 and 5")
			}
			return nil
		},
	})
	m = typeText(t, m, "9")

	m, cmd := press(t, m, tea.KeyEnter)

	assert.Nil(t, cmd)
	assert.False(t, m.done)
	assert.Equal(t, "", m.input.Value())
	assert.Contains(t, m.View(), "The value must be between 1 and 5")

	m = typeText(t, m, "3")
	m, _ = press(t, m, tea.KeyEnter)
	assert.True(t, m.done)
	assert.Equal(t, "3", m.answer)
}

func TestModelAbort(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		m := newModel(Question{Prompt: "Start date (YYYY-mm-dd)"})
		m, cmd := press(t, m, k)

		assert.NotNil(t, cmd)
		assert.True(t, m.aborted)
		assert.False(t, m.done)
	}
}
