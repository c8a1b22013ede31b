package azure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscriptionIDs(t *testing.T) {
	testCases := []struct {
		id        string
		wantScope string
		wantShort string
	}{
		{id: "0000-1111", wantScope: "/subscriptions/0000-1111", wantShort: "0000-1111"},
		{id: "/subscriptions/0000-1111", wantScope: "/subscriptions/0000-1111", wantShort: "0000-1111"},
	}
	for _, tc := range testCases {
		t.Run(tc.id, func(t *testing.T) {
			s := Subscription{ID: tc.id}
			assert.Equal(t, tc.wantScope, s.Scope())
			assert.Equal(t, tc.wantShort, s.ShortID())
		})
	}
}

func TestResourceTarget(t *testing.T) {
	target := ResourceTarget{Subscription: Subscription{ID: "s"}, ResourceGroup: "rg", Name: "n"}
	assert.NoError(t, target.Validate())
	assert.Equal(t, "/subscriptions/s/resourceGroups/rg/providers/Microsoft.Compute/virtualMachineScaleSets/n", target.ScaleSetID())

	assert.EqualError(t, ResourceTarget{}.Validate(), "incomplete resource target: missing subscription, resource group, name")
}
