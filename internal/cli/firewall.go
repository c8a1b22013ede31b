package cli

import (
	"context"

	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	"github.com/Lukas-Klein/azure-config-cli/internal/azure"
	"github.com/Lukas-Klein/azure-config-cli/internal/firewall"
	"github.com/Lukas-Klein/azure-config-cli/internal/validate"
)

type firewallAppRuleCommand struct {
	in firewall.ApplicationRuleInput
}

func (c *firewallAppRuleCommand) Info() *Info {
	return &Info{
		Name:    "firewall-app-rule",
		Args:    "--Name <name> (--TargetFqdn <fqdns> | --FqdnTag <tags>) [options]",
		Purpose: "print an Azure Firewall application rule",
		Doc: `
Protocols are given as protocol[:port], e.g. "http", "https:8443".
Without a port the protocol's default port is used. FQDN tag rules
always allow http:80 and https:443, so --Protocol cannot be combined
with --FqdnTag. FQDN tags are checked against the tags Azure Firewall
publishes for the subscription.
`,
	}
}

func (c *firewallAppRuleCommand) SetFlags(f *gnuflag.FlagSet) {
	stringVar(f, &c.in.Name, firewall.ParamName, "rule name")
	stringVar(f, &c.in.Description, "Description", "rule description")
	listVar(f, &c.in.SourceAddress, firewall.ParamSourceAddress, "source addresses or CIDR ranges")
	listVar(f, &c.in.SourceIPGroup, firewall.ParamSourceIPGroup, "source IP group resource IDs")
	listVar(f, &c.in.TargetFqdn, firewall.ParamTargetFqdn, "target FQDNs")
	listVar(f, &c.in.FqdnTag, firewall.ParamFqdnTag, "FQDN tags")
	listVar(f, &c.in.Protocol, firewall.ParamProtocol, "protocols as protocol[:port]")
}

func (c *firewallAppRuleCommand) Init(args []string) error {
	if name, ok := c.in.Name.Get(); !ok || name == "" {
		return validate.NewMissingRequiredInputError(firewall.ParamName)
	}
	return checkEmpty(args)
}

func (c *firewallAppRuleCommand) Run(ctx *Context) error {
	resolver := &lazyTagCatalog{ctx: ctx}
	rule, err := firewall.NewApplicationRule(ctx, c.in, resolver)
	if err != nil {
		return err
	}
	return ctx.Emit(rule.ARM())
}

// lazyTagCatalog only contacts Azure when the rule actually uses FQDN
// tags.
type lazyTagCatalog struct {
	ctx *Context
}

func (l *lazyTagCatalog) CanonicalFqdnTags(_ context.Context, tags []string) ([]string, error) {
	backend, err := l.ctx.Backend()
	if err != nil {
		return nil, errors.Trace(err)
	}
	sub, err := l.ctx.Subscription()
	if err != nil {
		return nil, errors.Trace(err)
	}
	return azure.NewTagCatalog(backend, sub.ShortID()).CanonicalFqdnTags(l.ctx, tags)
}

type fqdnTagsCommand struct{}

func (c *fqdnTagsCommand) Info() *Info {
	return &Info{
		Name:    "fqdn-tags",
		Purpose: "list the FQDN tags Azure Firewall offers",
	}
}

func (c *fqdnTagsCommand) SetFlags(*gnuflag.FlagSet) {}

func (c *fqdnTagsCommand) Init(args []string) error {
	return checkEmpty(args)
}

func (c *fqdnTagsCommand) Run(ctx *Context) error {
	backend, err := ctx.Backend()
	if err != nil {
		return errors.Trace(err)
	}
	sub, err := ctx.Subscription()
	if err != nil {
		return errors.Trace(err)
	}
	tags, err := backend.ListFqdnTags(ctx, sub.ShortID())
	if err != nil {
		return errors.Trace(err)
	}
	if tags == nil {
		tags = []string{}
	}
	return ctx.Emit(tags)
}
