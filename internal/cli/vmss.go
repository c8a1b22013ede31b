package cli

import (
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v6"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	"github.com/Lukas-Klein/azure-config-cli/internal/azure"
	"github.com/Lukas-Klein/azure-config-cli/internal/request"
	"github.com/Lukas-Klein/azure-config-cli/internal/tags"
	"github.com/Lukas-Klein/azure-config-cli/internal/vmss"
)

// scaleSetFlags binds the scale set options to flags. Enum and tag flags
// are collected raw and converted in options.
type scaleSetFlags struct {
	opts vmss.Options

	tag               request.Field[[]string]
	upgradePolicyMode request.Field[string]
	scaleInPolicy     request.Field[[]string]
	identityType      request.Field[string]
	priority          request.Field[string]
	evictionPolicy    request.Field[string]
}

func (s *scaleSetFlags) SetFlags(f *gnuflag.FlagSet) {
	o := &s.opts
	stringVar(f, &o.Location, "Location", "Azure region of the scale set")
	listVar(f, &s.tag, "Tag", "resource tags as key=value, comma separated or repeated")
	listVar(f, &o.Zones, "Zone", "availability zones")

	stringVar(f, &o.SkuName, "SkuName", "VM size, e.g. Standard_D2s_v5")
	stringVar(f, &o.SkuTier, "SkuTier", "SKU tier")
	int64Var(f, &o.SkuCapacity, "SkuCapacity", "number of instances")

	stringVar(f, &o.PlanName, "PlanName", "marketplace plan name")
	stringVar(f, &o.PlanPublisher, "PlanPublisher", "marketplace plan publisher")
	stringVar(f, &o.PlanProduct, "PlanProduct", "marketplace plan product")
	stringVar(f, &o.PlanPromotionCode, "PlanPromotionCode", "marketplace plan promotion code")

	stringVar(f, &s.upgradePolicyMode, "UpgradePolicyMode",
		enumUsage("upgrade mode", armcompute.PossibleUpgradeModeValues()))
	f.BoolVar(&o.AutoOSUpgrade, "AutoOSUpgrade", false, "enable automatic OS image upgrades")
	boolVar(f, &o.DisableAutoRollback, "DisableAutoRollback", "disable OS image rollback on failure")
	int32Var(f, &o.MaxBatchInstancePercent, "MaxBatchInstancePercent", "rolling upgrade: max percent of instances per batch")
	int32Var(f, &o.MaxUnhealthyInstancePercent, "MaxUnhealthyInstancePercent", "rolling upgrade: max percent of unhealthy instances")
	int32Var(f, &o.MaxUnhealthyUpgradedInstancePercent, "MaxUnhealthyUpgradedInstancePercent", "rolling upgrade: max percent of unhealthy upgraded instances")
	stringVar(f, &o.PauseTimeBetweenBatches, "PauseTimeBetweenBatches", "rolling upgrade: ISO 8601 pause between batches")

	boolVar(f, &o.Overprovision, "Overprovision", "overprovision instances")
	boolVar(f, &o.SinglePlacementGroup, "SinglePlacementGroup", "limit the scale set to one placement group")
	boolVar(f, &o.ZoneBalance, "ZoneBalance", "balance instances across zones")
	int32Var(f, &o.PlatformFaultDomainCount, "PlatformFaultDomainCount", "fault domain count per placement group")
	stringVar(f, &o.ProximityPlacementGroupID, "ProximityPlacementGroupId", "resource ID of a proximity placement group")
	listVar(f, &s.scaleInPolicy, "ScaleInPolicy",
		enumUsage("scale-in rules", armcompute.PossibleVirtualMachineScaleSetScaleInRulesValues()))

	stringVar(f, &s.identityType, "IdentityType",
		enumUsage("managed identity type", armcompute.PossibleResourceIdentityTypeValues()))
	listVar(f, &o.IdentityIDs, "IdentityId", "user assigned identity resource IDs")

	stringVar(f, &s.priority, "Priority",
		enumUsage("VM priority", armcompute.PossibleVirtualMachinePriorityTypesValues()))
	stringVar(f, &s.evictionPolicy, "EvictionPolicy",
		enumUsage("spot eviction policy", armcompute.PossibleVirtualMachineEvictionPolicyTypesValues()))
	float64Var(f, &o.MaxPrice, "MaxPrice", "spot max price, -1 for on-demand price")
	stringVar(f, &o.LicenseType, "LicenseType", "on-premises license type")

	stringVar(f, &o.ComputerNamePrefix, "ComputerNamePrefix", "computer name prefix of the instances")
	stringVar(f, &o.AdminUsername, "AdminUsername", "administrator user name")
	stringVar(f, &o.AdminPassword, "AdminPassword", "administrator password")
	stringVar(f, &o.CustomData, "CustomData", "custom data, base64 encoded into the request")

	boolVar(f, &o.BootDiagnosticsEnabled, "BootDiagnostic", "enable boot diagnostics")
	stringVar(f, &o.BootDiagnosticsStorageURI, "BootDiagnosticsStorageUri", "storage account URI for boot diagnostics")
}

// options returns the parsed options with enum and tag flags converted.
func (s *scaleSetFlags) options() (vmss.Options, error) {
	o := s.opts
	var err error

	if request.NonEmpty(s.tag) {
		t, err := tags.Parse("Tag", s.tag.Value())
		if err != nil {
			return vmss.Options{}, err
		}
		o.Tags = request.Some(t)
	}
	if o.UpgradePolicyMode, err = enumField("UpgradePolicyMode", s.upgradePolicyMode, armcompute.PossibleUpgradeModeValues()); err != nil {
		return vmss.Options{}, err
	}
	if o.ScaleInPolicy, err = enumListField("ScaleInPolicy", s.scaleInPolicy, armcompute.PossibleVirtualMachineScaleSetScaleInRulesValues()); err != nil {
		return vmss.Options{}, err
	}
	if o.IdentityType, err = enumField("IdentityType", s.identityType, armcompute.PossibleResourceIdentityTypeValues()); err != nil {
		return vmss.Options{}, err
	}
	if o.Priority, err = enumField("Priority", s.priority, armcompute.PossibleVirtualMachinePriorityTypesValues()); err != nil {
		return vmss.Options{}, err
	}
	if o.EvictionPolicy, err = enumField("EvictionPolicy", s.evictionPolicy, armcompute.PossibleVirtualMachineEvictionPolicyTypesValues()); err != nil {
		return vmss.Options{}, err
	}
	return o, nil
}

type vmssConfigCommand struct {
	flags    scaleSetFlags
	scaleSet *armcompute.VirtualMachineScaleSet
}

func (c *vmssConfigCommand) Info() *Info {
	return &Info{
		Name:    "vmss-config",
		Args:    "[options]",
		Purpose: "print a virtual machine scale set configuration",
		Doc: `
Builds the scale set request body from the given options and prints it.
Only sub-records with at least one supplied option appear in the output;
the automatic OS upgrade flag is always written.
`,
	}
}

func (c *vmssConfigCommand) SetFlags(f *gnuflag.FlagSet) {
	c.flags.SetFlags(f)
}

func (c *vmssConfigCommand) Init(args []string) error {
	opts, err := c.flags.options()
	if err != nil {
		return err
	}
	c.scaleSet = vmss.Build(opts)
	return checkEmpty(args)
}

func (c *vmssConfigCommand) Run(ctx *Context) error {
	return ctx.Emit(c.scaleSet)
}

type vmssCreateCommand struct {
	flags         scaleSetFlags
	resourceGroup string
	name          string
	interactive   bool

	scaleSet *armcompute.VirtualMachineScaleSet
	runTUI   TUIRunner
}

func (c *vmssCreateCommand) Info() *Info {
	return &Info{
		Name:    "vmss-create",
		Args:    "--ResourceGroup <group> --Name <name> [options]",
		Purpose: "create or update a virtual machine scale set",
		Doc: `
Builds the scale set request body like vmss-config and submits it to
Azure Resource Manager. With --interactive, missing subscription, resource
group and name are picked in a terminal UI that also asks for
confirmation before submitting.
`,
	}
}

func (c *vmssCreateCommand) SetFlags(f *gnuflag.FlagSet) {
	c.flags.SetFlags(f)
	f.StringVar(&c.resourceGroup, "ResourceGroup", "", "resource group of the scale set")
	f.StringVar(&c.name, "Name", "", "scale set name")
	f.BoolVar(&c.interactive, "interactive", false, "pick missing values in a terminal UI")
}

func (c *vmssCreateCommand) Init(args []string) error {
	opts, err := c.flags.options()
	if err != nil {
		return err
	}
	if !c.interactive {
		if c.resourceGroup == "" {
			return errors.New("--ResourceGroup must be specified")
		}
		if c.name == "" {
			return errors.New("--Name must be specified")
		}
	}
	c.scaleSet = vmss.Build(opts)
	return checkEmpty(args)
}

func (c *vmssCreateCommand) Run(ctx *Context) error {
	backend, err := ctx.Backend()
	if err != nil {
		return errors.Trace(err)
	}

	target := azure.ResourceTarget{ResourceGroup: c.resourceGroup, Name: c.name}
	if c.interactive {
		if c.runTUI == nil {
			return errors.NotSupportedf("interactive mode")
		}
		target.Subscription = azure.Subscription{ID: ctx.Config.Subscription}
		result, err := c.runTUI(ctx, backend, c.scaleSet, target)
		if err != nil {
			return errors.Trace(err)
		}
		_, err = ctx.Stdout.Write([]byte(result + "\n"))
		return err
	}

	if target.Subscription, err = ctx.Subscription(); err != nil {
		return errors.Trace(err)
	}
	result, err := backend.CreateOrUpdateScaleSet(ctx, target, c.scaleSet)
	if err != nil {
		return errors.Trace(err)
	}
	_, err = ctx.Stdout.Write([]byte(result + "\n"))
	return err
}
