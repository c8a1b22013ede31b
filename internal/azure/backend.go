package azure

import (
	"context"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v6"

	"github.com/Lukas-Klein/azure-config-cli/internal/validate"
)

// Backend submits request records to Azure Resource Manager and answers
// the lookups the commands need. Implementations own transport,
// authentication and retries.
type Backend interface {
	EnsureLogin(ctx context.Context) error
	DefaultSubscription(ctx context.Context) (Subscription, error)
	ListSubscriptions(ctx context.Context) ([]Subscription, error)
	ListResourceGroups(ctx context.Context, subscriptionID string) ([]ResourceGroup, error)
	ListFqdnTags(ctx context.Context, subscriptionID string) ([]string, error)
	CreateOrUpdateScaleSet(ctx context.Context, target ResourceTarget, scaleSet *armcompute.VirtualMachineScaleSet) (string, error)
}

var (
	_ Backend = (*Client)(nil)
	_ Backend = (*SDKClient)(nil)
)

// FqdnTagLister is the part of a Backend TagCatalog needs.
type FqdnTagLister interface {
	ListFqdnTags(ctx context.Context, subscriptionID string) ([]string, error)
}

// TagCatalog maps user supplied FQDN tags onto the names Azure Firewall
// publishes for a subscription.
type TagCatalog struct {
	lister         FqdnTagLister
	subscriptionID string
}

func NewTagCatalog(lister FqdnTagLister, subscriptionID string) *TagCatalog {
	return &TagCatalog{lister: lister, subscriptionID: subscriptionID}
}

// CanonicalFqdnTags matches tags case insensitively. The first unknown tag
// is reported together with the available names.
func (c *TagCatalog) CanonicalFqdnTags(ctx context.Context, tags []string) ([]string, error) {
	known, err := c.lister.ListFqdnTags(ctx, c.subscriptionID)
	if err != nil {
		return nil, err
	}
	byLower := make(map[string]string, len(known))
	for _, k := range known {
		byLower[strings.ToLower(k)] = k
	}

	canonical := make([]string, 0, len(tags))
	for _, tag := range tags {
		name, ok := byLower[strings.ToLower(strings.TrimSpace(tag))]
		if !ok {
			return nil, &validate.InvalidValueError{Parameter: "FqdnTag", Value: tag, Allowed: known}
		}
		canonical = append(canonical, name)
	}
	return canonical, nil
}
