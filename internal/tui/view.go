// Package tui is the terminal UI for submitting a scale set.
package tui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	labelStyle    = lipgloss.NewStyle().Bold(true)
)

const maxVisibleItems = 15

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString("Azure Scale Set Configuration\n\n")

	switch m.Step {
	case StepLoadingSubscriptions:
		b.WriteString("Retrieving subscriptions...\n")

	case StepSelectSubscription:
		b.WriteString("Select the subscription for the scale set:\n\n")
		start, end := visibleRange(m.Cursor, len(m.Subscriptions), maxVisibleItems)
		for i := start; i < end; i++ {
			sub := m.Subscriptions[i]
			b.WriteString(m.listLine(i, m.SelectedSubscription, fmt.Sprintf("%s (%s)", sub.Name, sub.ShortID())))
		}
		fmt.Fprintf(&b, "\nShowing %d-%d of %d\n", start+1, end, len(m.Subscriptions))
		b.WriteString("↑/↓ to move, Enter to select.\n")

	case StepLoadingResourceGroups:
		b.WriteString("Loading resource groups...\n")

	case StepSelectResourceGroup:
		fmt.Fprintf(&b, "Resource groups in subscription %s:\n\n", m.Target.Subscription.ShortID())
		start, end := visibleRange(m.Cursor, len(m.ResourceGroups), maxVisibleItems)
		for i := start; i < end; i++ {
			rg := m.ResourceGroups[i]
			label := rg.Name
			if rg.Location != "" {
				label += " [" + rg.Location + "]"
			}
			b.WriteString(m.listLine(i, m.SelectedResourceGroup, label))
		}
		fmt.Fprintf(&b, "\nShowing %d-%d of %d\n", start+1, end, len(m.ResourceGroups))
		b.WriteString("↑/↓ to move, Enter to select.\n")

	case StepName:
		fmt.Fprintf(&b, "Resource group: %s\n\n", m.Target.ResourceGroup)
		b.WriteString("Name of the scale set:\n\n")
		b.WriteString(m.NameInput.View() + "\n")

	case StepConfirm:
		m.writeSummary(&b)
		b.WriteString("\nPress Enter to submit the scale set or q to abort.\n")

	case StepSubmitting:
		b.WriteString("Submitting scale set...\n")
		b.WriteString("\nPress ctrl+c to interrupt. Azure may still apply the request.\n")

	case StepDone:
		b.WriteString("Azure response:\n\n")
		if m.SubmitOutput == "" {
			b.WriteString("No output returned.\n")
		} else {
			b.WriteString(m.SubmitOutput + "\n")
		}
		b.WriteString("\nPress q to exit.\n")

	case StepError:
		fmt.Fprintf(&b, "Error: %v\n\nPress q to exit.\n", m.Err)
	}

	if m.Status != "" {
		b.WriteString("\n" + m.Status + "\n")
	}

	return b.String()
}

func (m *Model) listLine(i, selected int, label string) string {
	cursor := " "
	if i == m.Cursor {
		cursor = ">"
	}
	marker := " "
	if i == selected {
		marker = "x"
	}
	line := fmt.Sprintf("%s [%s] %s", cursor, marker, label)
	if i == m.Cursor {
		line = selectedStyle.Render(line)
	}
	return line + "\n"
}

func (m *Model) writeSummary(b *strings.Builder) {
	sub := m.Target.Subscription
	if sub.Name != "" {
		fmt.Fprintf(b, "%s %s (%s)\n", labelStyle.Render("Subscription:"), sub.Name, sub.ShortID())
	} else {
		fmt.Fprintf(b, "%s %s\n", labelStyle.Render("Subscription:"), sub.ShortID())
	}
	fmt.Fprintf(b, "%s %s\n", labelStyle.Render("Resource group:"), m.Target.ResourceGroup)
	fmt.Fprintf(b, "%s %s\n", labelStyle.Render("Name:"), m.Target.Name)

	body, err := maskedJSON(m.ScaleSet)
	if err != nil {
		fmt.Fprintf(b, "\nunable to render request: %v\n", err)
		return
	}
	fmt.Fprintf(b, "\n%s\n%s\n", labelStyle.Render("Request:"), body)
}

func visibleRange(cursor, total, limit int) (start, end int) {
	if limit <= 0 || total <= limit {
		return 0, total
	}
	start = cursor - limit/2
	if start < 0 {
		start = 0
	}
	end = start + limit
	if end > total {
		end = total
		start = end - limit
	}
	return start, end
}

// maskedJSON renders v as indented JSON with passwords replaced.
func maskedJSON(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, err
	}
	return json.MarshalIndent(mask(generic), "", "  ")
}

func mask(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			if strings.Contains(strings.ToLower(k), "password") {
				t[k] = "********"
				continue
			}
			t[k] = mask(child)
		}
	case []any:
		for i, child := range t {
			t[i] = mask(child)
		}
	}
	return v
}
