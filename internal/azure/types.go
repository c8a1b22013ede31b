// Package azure is for interacting with Azure resources
package azure

import (
	"fmt"
	"strings"
)

type Subscription struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (s Subscription) Scope() string {
	if strings.HasPrefix(s.ID, "/") {
		return s.ID
	}
	return "/subscriptions/" + s.ID
}

func (s Subscription) ShortID() string {
	if !strings.HasPrefix(s.ID, "/subscriptions/") {
		return s.ID
	}
	parts := strings.Split(s.ID, "/")
	return parts[len(parts)-1]
}

type ResourceGroup struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// ResourceTarget names the resource a request is submitted to.
type ResourceTarget struct {
	Subscription  Subscription
	ResourceGroup string
	Name          string
}

func (t ResourceTarget) Validate() error {
	var missing []string
	if t.Subscription.ShortID() == "" {
		missing = append(missing, "subscription")
	}
	if t.ResourceGroup == "" {
		missing = append(missing, "resource group")
	}
	if t.Name == "" {
		missing = append(missing, "name")
	}
	if len(missing) > 0 {
		return fmt.Errorf("incomplete resource target: missing %s", strings.Join(missing, ", "))
	}
	return nil
}

// ScaleSetID returns the ARM resource ID of a scale set at t.
func (t ResourceTarget) ScaleSetID() string {
	return fmt.Sprintf("%s/resourceGroups/%s/providers/Microsoft.Compute/virtualMachineScaleSets/%s",
		t.Subscription.Scope(), t.ResourceGroup, t.Name)
}
