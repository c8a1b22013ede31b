// Package vmss builds virtual machine scale set request records.
package vmss

import (
	"encoding/base64"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v6"

	"github.com/Lukas-Klein/azure-config-cli/internal/request"
	"github.com/Lukas-Klein/azure-config-cli/internal/tags"
)

// Options are the optional inputs of a scale set configuration. Only the
// fields that were supplied end up in the built record.
type Options struct {
	Location request.Field[string]
	Tags     request.Field[tags.Tags]
	Zones    request.Field[[]string]

	SkuName     request.Field[string]
	SkuTier     request.Field[string]
	SkuCapacity request.Field[int64]

	PlanName          request.Field[string]
	PlanPublisher     request.Field[string]
	PlanProduct       request.Field[string]
	PlanPromotionCode request.Field[string]

	UpgradePolicyMode request.Field[armcompute.UpgradeMode]
	// AutoOSUpgrade is a switch. Its value is written into every record.
	AutoOSUpgrade       bool
	DisableAutoRollback request.Field[bool]

	MaxBatchInstancePercent             request.Field[int32]
	MaxUnhealthyInstancePercent         request.Field[int32]
	MaxUnhealthyUpgradedInstancePercent request.Field[int32]
	PauseTimeBetweenBatches             request.Field[string]

	Overprovision             request.Field[bool]
	SinglePlacementGroup      request.Field[bool]
	ZoneBalance               request.Field[bool]
	PlatformFaultDomainCount  request.Field[int32]
	ProximityPlacementGroupID request.Field[string]
	ScaleInPolicy             request.Field[[]armcompute.VirtualMachineScaleSetScaleInRules]

	IdentityType request.Field[armcompute.ResourceIdentityType]
	IdentityIDs  request.Field[[]string]

	Priority       request.Field[armcompute.VirtualMachinePriorityTypes]
	EvictionPolicy request.Field[armcompute.VirtualMachineEvictionPolicyTypes]
	MaxPrice       request.Field[float64]
	LicenseType    request.Field[string]

	ComputerNamePrefix request.Field[string]
	AdminUsername      request.Field[string]
	AdminPassword      request.Field[string]
	CustomData         request.Field[string]

	BootDiagnosticsEnabled    request.Field[bool]
	BootDiagnosticsStorageURI request.Field[string]
}

type scaleSet = armcompute.VirtualMachineScaleSet

// Build returns the scale set record for opts.
func Build(opts Options) *armcompute.VirtualMachineScaleSet {
	return request.Build(&scaleSet{}, Groups(opts)...)
}

// Groups returns the sub-record groups of opts in the order they are
// applied.
func Groups(o Options) []request.Group[scaleSet] {
	return []request.Group[scaleSet]{
		request.NewGroup("ScaleSet",
			request.Bind("Location", o.Location, func(s *scaleSet, v string) { s.Location = to.Ptr(v) }),
			request.Bind("Tag", o.Tags, func(s *scaleSet, v tags.Tags) { s.Tags = v.ARM() }),
			request.BindList("Zone", o.Zones, func(s *scaleSet, v []string) { s.Zones = to.SliceOfPtrs(v...) }),
		),
		request.NewGroup("Sku",
			request.Bind("SkuName", o.SkuName, func(s *scaleSet, v string) { request.Ensure(&s.SKU).Name = to.Ptr(v) }),
			request.Bind("SkuTier", o.SkuTier, func(s *scaleSet, v string) { request.Ensure(&s.SKU).Tier = to.Ptr(v) }),
			request.Bind("SkuCapacity", o.SkuCapacity, func(s *scaleSet, v int64) { request.Ensure(&s.SKU).Capacity = to.Ptr(v) }),
		),
		request.NewGroup("Plan",
			request.Bind("PlanName", o.PlanName, func(s *scaleSet, v string) { request.Ensure(&s.Plan).Name = to.Ptr(v) }),
			request.Bind("PlanPublisher", o.PlanPublisher, func(s *scaleSet, v string) { request.Ensure(&s.Plan).Publisher = to.Ptr(v) }),
			request.Bind("PlanProduct", o.PlanProduct, func(s *scaleSet, v string) { request.Ensure(&s.Plan).Product = to.Ptr(v) }),
			request.Bind("PlanPromotionCode", o.PlanPromotionCode, func(s *scaleSet, v string) { request.Ensure(&s.Plan).PromotionCode = to.Ptr(v) }),
		),
		request.NewGroup("Identity",
			request.Bind("IdentityType", o.IdentityType, func(s *scaleSet, v armcompute.ResourceIdentityType) {
				request.Ensure(&s.Identity).Type = to.Ptr(v)
			}),
			request.BindList("IdentityId", o.IdentityIDs, func(s *scaleSet, ids []string) {
				identity := request.Ensure(&s.Identity)
				identity.UserAssignedIdentities = make(map[string]*armcompute.UserAssignedIdentitiesValue, len(ids))
				for _, id := range ids {
					identity.UserAssignedIdentities[id] = &armcompute.UserAssignedIdentitiesValue{}
				}
			}),
		),
		request.NewGroup("Properties",
			request.Bind("Overprovision", o.Overprovision, func(s *scaleSet, v bool) { properties(s).Overprovision = to.Ptr(v) }),
			request.Bind("SinglePlacementGroup", o.SinglePlacementGroup, func(s *scaleSet, v bool) { properties(s).SinglePlacementGroup = to.Ptr(v) }),
			request.Bind("ZoneBalance", o.ZoneBalance, func(s *scaleSet, v bool) { properties(s).ZoneBalance = to.Ptr(v) }),
			request.Bind("PlatformFaultDomainCount", o.PlatformFaultDomainCount, func(s *scaleSet, v int32) {
				properties(s).PlatformFaultDomainCount = to.Ptr(v)
			}),
			request.Bind("ProximityPlacementGroupId", o.ProximityPlacementGroupID, func(s *scaleSet, v string) {
				request.Ensure(&properties(s).ProximityPlacementGroup).ID = to.Ptr(v)
			}),
			request.BindList("ScaleInPolicy", o.ScaleInPolicy, func(s *scaleSet, rules []armcompute.VirtualMachineScaleSetScaleInRules) {
				request.Ensure(&properties(s).ScaleInPolicy).Rules = to.SliceOfPtrs(rules...)
			}),
		),
		request.NewGroup("UpgradePolicy",
			request.Bind("UpgradePolicyMode", o.UpgradePolicyMode, func(s *scaleSet, v armcompute.UpgradeMode) {
				upgradePolicy(s).Mode = to.Ptr(v)
			}),
			// Every record carries the automatic OS upgrade flag, so the
			// upgrade policy is always present.
			request.Force[scaleSet]("AutoOSUpgrade", func(s *scaleSet) {
				automaticOSUpgradePolicy(s).EnableAutomaticOSUpgrade = to.Ptr(o.AutoOSUpgrade)
			}),
			request.Bind("DisableAutoRollback", o.DisableAutoRollback, func(s *scaleSet, v bool) {
				automaticOSUpgradePolicy(s).DisableAutomaticRollback = to.Ptr(v)
			}),
		),
		request.NewGroup("RollingUpgradePolicy",
			request.Bind("MaxBatchInstancePercent", o.MaxBatchInstancePercent, func(s *scaleSet, v int32) {
				rollingUpgradePolicy(s).MaxBatchInstancePercent = to.Ptr(v)
			}),
			request.Bind("MaxUnhealthyInstancePercent", o.MaxUnhealthyInstancePercent, func(s *scaleSet, v int32) {
				rollingUpgradePolicy(s).MaxUnhealthyInstancePercent = to.Ptr(v)
			}),
			request.Bind("MaxUnhealthyUpgradedInstancePercent", o.MaxUnhealthyUpgradedInstancePercent, func(s *scaleSet, v int32) {
				rollingUpgradePolicy(s).MaxUnhealthyUpgradedInstancePercent = to.Ptr(v)
			}),
			request.Bind("PauseTimeBetweenBatches", o.PauseTimeBetweenBatches, func(s *scaleSet, v string) {
				rollingUpgradePolicy(s).PauseTimeBetweenBatches = to.Ptr(v)
			}),
		),
		request.NewGroup("VirtualMachineProfile",
			request.Bind("Priority", o.Priority, func(s *scaleSet, v armcompute.VirtualMachinePriorityTypes) {
				vmProfile(s).Priority = to.Ptr(v)
			}),
			request.Bind("EvictionPolicy", o.EvictionPolicy, func(s *scaleSet, v armcompute.VirtualMachineEvictionPolicyTypes) {
				vmProfile(s).EvictionPolicy = to.Ptr(v)
			}),
			request.Bind("MaxPrice", o.MaxPrice, func(s *scaleSet, v float64) {
				request.Ensure(&vmProfile(s).BillingProfile).MaxPrice = to.Ptr(v)
			}),
			request.Bind("LicenseType", o.LicenseType, func(s *scaleSet, v string) { vmProfile(s).LicenseType = to.Ptr(v) }),
		),
		request.NewGroup("OSProfile",
			request.Bind("ComputerNamePrefix", o.ComputerNamePrefix, func(s *scaleSet, v string) { osProfile(s).ComputerNamePrefix = to.Ptr(v) }),
			request.Bind("AdminUsername", o.AdminUsername, func(s *scaleSet, v string) { osProfile(s).AdminUsername = to.Ptr(v) }),
			request.Bind("AdminPassword", o.AdminPassword, func(s *scaleSet, v string) { osProfile(s).AdminPassword = to.Ptr(v) }),
			request.Bind("CustomData", o.CustomData, func(s *scaleSet, v string) {
				osProfile(s).CustomData = to.Ptr(base64.StdEncoding.EncodeToString([]byte(v)))
			}),
		),
		request.NewGroup("BootDiagnostics",
			request.Bind("BootDiagnosticsEnabled", o.BootDiagnosticsEnabled, func(s *scaleSet, v bool) { bootDiagnostics(s).Enabled = to.Ptr(v) }),
			request.Bind("BootDiagnosticsStorageUri", o.BootDiagnosticsStorageURI, func(s *scaleSet, v string) {
				bootDiagnostics(s).StorageURI = to.Ptr(v)
			}),
		),
	}
}

func properties(s *scaleSet) *armcompute.VirtualMachineScaleSetProperties {
	return request.Ensure(&s.Properties)
}

func upgradePolicy(s *scaleSet) *armcompute.UpgradePolicy {
	return request.Ensure(&properties(s).UpgradePolicy)
}

func automaticOSUpgradePolicy(s *scaleSet) *armcompute.AutomaticOSUpgradePolicy {
	return request.Ensure(&upgradePolicy(s).AutomaticOSUpgradePolicy)
}

func rollingUpgradePolicy(s *scaleSet) *armcompute.RollingUpgradePolicy {
	return request.Ensure(&upgradePolicy(s).RollingUpgradePolicy)
}

func vmProfile(s *scaleSet) *armcompute.VirtualMachineScaleSetVMProfile {
	return request.Ensure(&properties(s).VirtualMachineProfile)
}

func osProfile(s *scaleSet) *armcompute.VirtualMachineScaleSetOSProfile {
	return request.Ensure(&vmProfile(s).OSProfile)
}

func bootDiagnostics(s *scaleSet) *armcompute.BootDiagnostics {
	return request.Ensure(&request.Ensure(&vmProfile(s).DiagnosticsProfile).BootDiagnostics)
}
