package tui

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v6"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Lukas-Klein/azure-config-cli/internal/azure"
)

type subscriptionsLoadedMsg struct {
	subscriptions []azure.Subscription
	err           error
}

type resourceGroupsLoadedMsg struct {
	resourceGroups []azure.ResourceGroup
	err            error
}

type scaleSetSubmittedMsg struct {
	output string
	err    error
}

func fetchSubscriptionsCmd(ctx context.Context, backend azure.Backend) tea.Cmd {
	return func() tea.Msg {
		subs, err := backend.ListSubscriptions(ctx)
		return subscriptionsLoadedMsg{subscriptions: subs, err: err}
	}
}

func fetchResourceGroupsCmd(ctx context.Context, backend azure.Backend, sub azure.Subscription) tea.Cmd {
	return func() tea.Msg {
		rgs, err := backend.ListResourceGroups(ctx, sub.ShortID())
		return resourceGroupsLoadedMsg{resourceGroups: rgs, err: err}
	}
}

func submitScaleSetCmd(ctx context.Context, backend azure.Backend, target azure.ResourceTarget, scaleSet *armcompute.VirtualMachineScaleSet) tea.Cmd {
	return func() tea.Msg {
		output, err := backend.CreateOrUpdateScaleSet(ctx, target, scaleSet)
		return scaleSetSubmittedMsg{output: output, err: err}
	}
}
