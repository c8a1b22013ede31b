package tui

import (
	"context"
	"errors"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v6"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Lukas-Klein/azure-config-cli/internal/azure"
)

// ErrAborted is returned by Result when the user quit before the scale set
// was submitted.
var ErrAborted = errors.New("aborted by user")

// ErrSubmitInterrupted is returned by Result when the user interrupted a
// running submission. Azure may still have accepted the request.
var ErrSubmitInterrupted = errors.New("interrupted while submitting; the scale set may still be created or updated in Azure")

type Step int

const (
	StepLoadingSubscriptions Step = iota
	StepSelectSubscription
	StepLoadingResourceGroups
	StepSelectResourceGroup
	StepName
	StepConfirm
	StepSubmitting
	StepDone
	StepError
)

type Model struct {
	ctx     context.Context
	cancel  context.CancelFunc
	backend azure.Backend

	Step   Step
	Status string
	Err    error

	// Target collects subscription, resource group and name. Values given
	// up front skip their selection step.
	Target   azure.ResourceTarget
	ScaleSet *armcompute.VirtualMachineScaleSet

	Subscriptions         []azure.Subscription
	ResourceGroups        []azure.ResourceGroup
	Cursor                int
	SelectedSubscription  int
	SelectedResourceGroup int

	NameInput textinput.Model

	SubmitOutput string
}

func NewModel(ctx context.Context, backend azure.Backend, scaleSet *armcompute.VirtualMachineScaleSet, target azure.ResourceTarget) *Model {
	nameInput := textinput.New()
	nameInput.Placeholder = "e.g. vmss-web"
	nameInput.Prompt = "Name> "
	nameInput.CharLimit = 64
	nameInput.Blur()

	ctx, cancel := context.WithCancel(ctx)
	return &Model{
		ctx:                   ctx,
		cancel:                cancel,
		backend:               backend,
		Target:                target,
		ScaleSet:              scaleSet,
		SelectedSubscription:  -1,
		SelectedResourceGroup: -1,
		NameInput:             nameInput,
	}
}

func (m *Model) Init() tea.Cmd {
	return m.advance()
}

// advance moves to the first step whose value is still missing.
func (m *Model) advance() tea.Cmd {
	switch {
	case m.Target.Subscription.ShortID() == "":
		m.Step = StepLoadingSubscriptions
		m.Status = ""
		return fetchSubscriptionsCmd(m.ctx, m.backend)
	case m.Target.ResourceGroup == "":
		m.Step = StepLoadingResourceGroups
		m.Status = "Loading resource groups..."
		return fetchResourceGroupsCmd(m.ctx, m.backend, m.Target.Subscription)
	case m.Target.Name == "":
		m.Step = StepName
		m.NameInput.SetValue("")
		m.NameInput.Focus()
		m.Status = "Enter the name of the scale set:"
		return textinput.Blink
	default:
		m.Step = StepConfirm
		m.Status = "Review the summary and press Enter to submit the scale set."
		return nil
	}
}

// Result returns the backend response once the scale set was submitted.
func (m *Model) Result() (string, error) {
	switch m.Step {
	case StepDone:
		return m.SubmitOutput, nil
	case StepError:
		return "", m.Err
	case StepSubmitting:
		return "", ErrSubmitInterrupted
	default:
		return "", ErrAborted
	}
}

func (m *Model) Fail(err error) (tea.Model, tea.Cmd) {
	m.Err = err
	m.Step = StepError
	m.Status = ""
	return m, nil
}

// useResourceGroup records rg as the target and fills in the scale set
// location from it when none was given.
func (m *Model) useResourceGroup(rg azure.ResourceGroup) {
	m.Target.ResourceGroup = rg.Name
	if m.ScaleSet.Location == nil && rg.Location != "" {
		m.ScaleSet.Location = to.Ptr(rg.Location)
	}
}

// quit stops the program and cancels any backend call still running.
func (m *Model) quit() tea.Cmd {
	m.cancel()
	return tea.Quit
}

// Run shows the model and returns its result.
func Run(ctx context.Context, backend azure.Backend, scaleSet *armcompute.VirtualMachineScaleSet, target azure.ResourceTarget) (string, error) {
	m := NewModel(ctx, backend, scaleSet, target)
	defer m.cancel()
	if _, err := tea.NewProgram(m, tea.WithContext(ctx)).Run(); err != nil {
		return "", err
	}
	return m.Result()
}
