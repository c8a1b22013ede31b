package azure

import (
	"context"
	"encoding/json"
	"os"
	"sort"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v6"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/juju/errors"
	"github.com/sirupsen/logrus"
)

// EnvSubscriptionID names the subscription the SDK backend uses when none
// is configured.
const EnvSubscriptionID = "AZURE_SUBSCRIPTION_ID"

const managementScope = "https://management.azure.com/.default"

// SDKClient talks to Azure Resource Manager through the Azure SDK,
// authenticating with the default credential chain.
type SDKClient struct {
	cred azcore.TokenCredential
}

func NewSDKClient() *SDKClient {
	return &SDKClient{}
}

// NewSDKClientWithCredential returns an SDKClient that uses cred instead
// of the default credential chain.
func NewSDKClientWithCredential(cred azcore.TokenCredential) *SDKClient {
	return &SDKClient{cred: cred}
}

func (c *SDKClient) EnsureLogin(ctx context.Context) error {
	if c.cred == nil {
		cred, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return errors.Annotate(err, "creating Azure credential")
		}
		c.cred = cred
	}
	if _, err := c.cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{managementScope}}); err != nil {
		return errors.Annotate(err, "acquiring management token")
	}
	return nil
}

func (c *SDKClient) credential() (azcore.TokenCredential, error) {
	if c.cred == nil {
		return nil, errors.New("not logged in to Azure")
	}
	return c.cred, nil
}

func (c *SDKClient) DefaultSubscription(ctx context.Context) (Subscription, error) {
	subs, err := c.ListSubscriptions(ctx)
	if err != nil {
		return Subscription{}, errors.Trace(err)
	}
	if id := os.Getenv(EnvSubscriptionID); id != "" {
		for _, s := range subs {
			if strings.EqualFold(s.ShortID(), id) {
				return s, nil
			}
		}
		return Subscription{ID: id}, nil
	}
	if len(subs) == 0 {
		return Subscription{}, errors.NotFoundf("Azure subscription")
	}
	return subs[0], nil
}

func (c *SDKClient) ListSubscriptions(ctx context.Context) ([]Subscription, error) {
	cred, err := c.credential()
	if err != nil {
		return nil, errors.Trace(err)
	}
	client, err := armsubscriptions.NewClient(cred, nil)
	if err != nil {
		return nil, errors.Trace(err)
	}

	var subs []Subscription
	pager := client.NewListPager(nil)
	for pager.More() {
		next, err := pager.NextPage(ctx)
		if err != nil {
			return nil, errors.Annotate(err, "listing subscriptions")
		}
		for _, s := range next.Value {
			if s == nil {
				continue
			}
			subs = append(subs, Subscription{
				ID:   toValue(s.SubscriptionID),
				Name: toValue(s.DisplayName),
			})
		}
	}
	sort.Slice(subs, func(i, j int) bool {
		return strings.ToLower(subs[i].Name) < strings.ToLower(subs[j].Name)
	})
	return subs, nil
}

func (c *SDKClient) ListResourceGroups(ctx context.Context, subscriptionID string) ([]ResourceGroup, error) {
	cred, err := c.credential()
	if err != nil {
		return nil, errors.Trace(err)
	}
	client, err := armresources.NewResourceGroupsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, errors.Trace(err)
	}

	var rgs []ResourceGroup
	pager := client.NewListPager(nil)
	for pager.More() {
		next, err := pager.NextPage(ctx)
		if err != nil {
			return nil, errors.Annotatef(err, "listing resource groups in %s", subscriptionID)
		}
		for _, rg := range next.Value {
			if rg == nil {
				continue
			}
			rgs = append(rgs, ResourceGroup{
				ID:       toValue(rg.ID),
				Name:     toValue(rg.Name),
				Location: toValue(rg.Location),
			})
		}
	}
	sort.Slice(rgs, func(i, j int) bool {
		return strings.ToLower(rgs[i].Name) < strings.ToLower(rgs[j].Name)
	})
	return rgs, nil
}

func (c *SDKClient) ListFqdnTags(ctx context.Context, subscriptionID string) ([]string, error) {
	cred, err := c.credential()
	if err != nil {
		return nil, errors.Trace(err)
	}
	client, err := armnetwork.NewAzureFirewallFqdnTagsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, errors.Trace(err)
	}

	var tags []string
	pager := client.NewListAllPager(nil)
	for pager.More() {
		next, err := pager.NextPage(ctx)
		if err != nil {
			return nil, errors.Annotate(err, "listing FQDN tags")
		}
		for _, tag := range next.Value {
			if tag == nil {
				continue
			}
			name := toValue(tag.Name)
			if tag.Properties != nil && toValue(tag.Properties.FqdnTagName) != "" {
				name = toValue(tag.Properties.FqdnTagName)
			}
			if name != "" {
				tags = append(tags, name)
			}
		}
	}
	sort.Slice(tags, func(i, j int) bool {
		return strings.ToLower(tags[i]) < strings.ToLower(tags[j])
	})
	return tags, nil
}

func (c *SDKClient) CreateOrUpdateScaleSet(ctx context.Context, target ResourceTarget, scaleSet *armcompute.VirtualMachineScaleSet) (string, error) {
	if err := target.Validate(); err != nil {
		return "", errors.Trace(err)
	}
	cred, err := c.credential()
	if err != nil {
		return "", errors.Trace(err)
	}
	client, err := armcompute.NewVirtualMachineScaleSetsClient(target.Subscription.ShortID(), cred, nil)
	if err != nil {
		return "", errors.Trace(err)
	}

	logrus.WithField("id", target.ScaleSetID()).Debug("creating or updating scale set")
	poller, err := client.BeginCreateOrUpdate(ctx, target.ResourceGroup, target.Name, *scaleSet, nil)
	if err != nil {
		return "", errors.Annotatef(err, "creating or updating scale set %s", target.Name)
	}
	result, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return "", errors.Annotatef(err, "waiting for scale set %s", target.Name)
	}

	data, err := json.MarshalIndent(result.VirtualMachineScaleSet, "", "  ")
	if err != nil {
		return "", errors.Trace(err)
	}
	return string(data), nil
}

func toValue[T any](v *T) T {
	if v == nil {
		var zero T
		return zero
	}
	return *v
}
