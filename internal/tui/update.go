package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, m.quit()
		case "q":
			// q is text while typing the name, and a running submission
			// can only be interrupted with ctrl+c.
			switch m.Step {
			case StepName:
			case StepSubmitting:
				return m, nil
			default:
				return m, m.quit()
			}
		}
		return m, m.handleKey(msg)

	case subscriptionsLoadedMsg:
		if msg.err != nil {
			return m.Fail(msg.err)
		}
		if len(msg.subscriptions) == 0 {
			return m.Fail(errors.New("no subscriptions returned by Azure"))
		}
		m.Subscriptions = msg.subscriptions
		m.Cursor = 0
		m.SelectedSubscription = -1
		m.Step = StepSelectSubscription
		m.Status = "Use ↑/↓ to highlight a subscription and press Enter to continue."
		return m, nil

	case resourceGroupsLoadedMsg:
		if msg.err != nil {
			return m.Fail(msg.err)
		}
		if len(msg.resourceGroups) == 0 {
			sub := m.Target.Subscription
			return m.Fail(fmt.Errorf("no resource groups were returned for subscription %s", sub.ShortID()))
		}
		m.ResourceGroups = msg.resourceGroups
		m.SelectedResourceGroup = -1
		m.Cursor = 0
		m.Step = StepSelectResourceGroup
		m.Status = "Select the resource group for the scale set."
		return m, nil

	case scaleSetSubmittedMsg:
		if msg.err != nil {
			return m.Fail(msg.err)
		}
		m.SubmitOutput = msg.output
		m.Step = StepDone
		m.Status = "Scale set submitted successfully. Press q to exit."
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch m.Step {
	case StepSelectSubscription:
		switch msg.String() {
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Subscriptions)-1 {
				m.Cursor++
			}
		case "enter":
			if len(m.Subscriptions) == 0 {
				return nil
			}
			m.SelectedSubscription = m.Cursor
			m.Target.Subscription = m.Subscriptions[m.Cursor]
			return m.advance()
		}

	case StepSelectResourceGroup:
		switch msg.String() {
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.ResourceGroups)-1 {
				m.Cursor++
			}
		case "enter":
			if len(m.ResourceGroups) == 0 {
				return nil
			}
			m.SelectedResourceGroup = m.Cursor
			m.useResourceGroup(m.ResourceGroups[m.Cursor])
			return m.advance()
		}

	case StepName:
		var textCmd tea.Cmd
		m.NameInput, textCmd = m.NameInput.Update(msg)
		if msg.Type == tea.KeyEnter {
			value := strings.TrimSpace(m.NameInput.Value())
			if value == "" {
				m.Status = "A scale set name is required."
				return textCmd
			}
			m.Target.Name = value
			m.NameInput.Blur()
			return m.advance()
		}
		return textCmd

	case StepConfirm:
		if msg.Type == tea.KeyEnter {
			if err := m.Target.Validate(); err != nil {
				m.Status = "Missing information. Use q to abort."
				return nil
			}
			m.Step = StepSubmitting
			m.Status = fmt.Sprintf("Submitting scale set %s...", m.Target.Name)
			return submitScaleSetCmd(m.ctx, m.backend, m.Target, m.ScaleSet)
		}

	case StepError, StepDone, StepLoadingSubscriptions, StepLoadingResourceGroups, StepSubmitting:
		// No interactive keys beyond quit for these states.
	}

	return nil
}
