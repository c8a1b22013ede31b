package firewall

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/juju/errors"
	"github.com/sirupsen/logrus"

	"github.com/Lukas-Klein/azure-config-cli/internal/request"
	"github.com/Lukas-Klein/azure-config-cli/internal/validate"
)

// Parameter names as reported in validation errors.
const (
	ParamName          = "Name"
	ParamTargetFqdn    = "TargetFqdn"
	ParamFqdnTag       = "FqdnTag"
	ParamSourceAddress = "SourceAddress"
	ParamSourceIPGroup = "SourceIpGroup"
)

// FqdnTagResolver translates user supplied FQDN tags into the canonical
// names Azure Firewall knows. Its errors are returned to the caller as is.
type FqdnTagResolver interface {
	CanonicalFqdnTags(ctx context.Context, tags []string) ([]string, error)
}

// ApplicationRuleInput holds the parameters of one application rule.
type ApplicationRuleInput struct {
	Name          request.Field[string]
	Description   request.Field[string]
	SourceAddress request.Field[[]string]
	SourceIPGroup request.Field[[]string]
	TargetFqdn    request.Field[[]string]
	FqdnTag       request.Field[[]string]
	Protocol      request.Field[[]string]
}

// ApplicationRule is a validated rule before conversion to the SDK type.
type ApplicationRule struct {
	Name            string
	Description     string
	SourceAddresses []string
	SourceIPGroups  []string
	TargetFqdns     []string
	FqdnTags        []string
	Protocols       []RuleProtocolSpec
}

// NewApplicationRule validates in and resolves its protocols. Either
// TargetFqdn or FqdnTag must be given, never both. FQDN tag rules always
// use http:80 and https:443 and do not accept --Protocol. Resolving FQDN
// tags needs a non-nil resolver.
func NewApplicationRule(ctx context.Context, in ApplicationRuleInput, resolver FqdnTagResolver) (*ApplicationRule, error) {
	rule := &ApplicationRule{
		Name:            in.Name.Value(),
		Description:     in.Description.Value(),
		SourceAddresses: in.SourceAddress.Value(),
		SourceIPGroups:  in.SourceIPGroup.Value(),
	}

	if request.NonEmpty(in.FqdnTag) {
		if request.NonEmpty(in.TargetFqdn) {
			return nil, validate.NewConflictingInputError(ParamFqdnTag, ParamTargetFqdn)
		}
		if request.NonEmpty(in.Protocol) {
			return nil, validate.NewUnsupportedCombinationError(ParamProtocol, ParamFqdnTag,
				"FQDN tag rules always use http and https")
		}
		if resolver == nil {
			return nil, errors.New("FQDN tag rules need a tag resolver")
		}
		tags, err := resolver.CanonicalFqdnTags(ctx, in.FqdnTag.Value())
		if err != nil {
			return nil, err
		}
		rule.FqdnTags = tags
		rule.Protocols = fqdnTagProtocols()
		logrus.WithFields(logrus.Fields{
			"rule": rule.Name,
			"tags": tags,
		}).Debug("application rule uses FQDN tags")
		return rule, nil
	}

	if !request.NonEmpty(in.TargetFqdn) {
		return nil, validate.NewMissingRequiredInputError(ParamTargetFqdn, ParamFqdnTag)
	}
	rule.TargetFqdns = in.TargetFqdn.Value()

	protocols, err := ParseProtocols(in.Protocol.Value())
	if err != nil {
		return nil, err
	}
	rule.Protocols = protocols
	return rule, nil
}

// ARM converts the rule to the Azure SDK model. Empty lists are left nil
// so they are omitted from the request body.
func (r *ApplicationRule) ARM() *armnetwork.AzureFirewallApplicationRule {
	out := &armnetwork.AzureFirewallApplicationRule{
		Name:            optionalString(r.Name),
		Description:     optionalString(r.Description),
		SourceAddresses: stringPtrs(r.SourceAddresses),
		SourceIPGroups:  stringPtrs(r.SourceIPGroups),
		TargetFqdns:     stringPtrs(r.TargetFqdns),
		FqdnTags:        stringPtrs(r.FqdnTags),
	}
	for _, p := range r.Protocols {
		out.Protocols = append(out.Protocols, p.ARM())
	}
	return out
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return to.Ptr(s)
}

func stringPtrs(values []string) []*string {
	if len(values) == 0 {
		return nil
	}
	return to.SliceOfPtrs(values...)
}
