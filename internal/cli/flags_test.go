package cli

import (
	"io"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v6"
	"github.com/juju/gnuflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lukas-Klein/azure-config-cli/internal/request"
)

func TestFlagPresence(t *testing.T) {
	var (
		name     request.Field[string]
		count    request.Field[int32]
		price    request.Field[float64]
		enabled  request.Field[bool]
		disabled request.Field[bool]
		unset    request.Field[bool]
		zones    request.Field[[]string]
		empty    request.Field[[]string]
	)
	f := gnuflag.NewFlagSet("test", gnuflag.ContinueOnError)
	stringVar(f, &name, "name", "")
	int32Var(f, &count, "count", "")
	float64Var(f, &price, "price", "")
	boolVar(f, &enabled, "enabled", "")
	boolVar(f, &disabled, "disabled", "")
	boolVar(f, &unset, "unset", "")
	listVar(f, &zones, "zone", "")
	listVar(f, &empty, "empty", "")

	require.NoError(t, f.Parse(true, []string{
		"--name=",
		"--count", "0",
		"--price=-1",
		"--enabled",
		"--disabled=false",
		"--zone", "1, 2", "--zone", "3",
		"--empty=",
	}))

	v, ok := name.Get()
	assert.True(t, ok)
	assert.Equal(t, "", v)

	n, ok := count.Get()
	assert.True(t, ok)
	assert.Equal(t, int32(0), n)

	assert.Equal(t, float64(-1), price.Value())
	assert.True(t, enabled.Present())
	assert.True(t, enabled.Value())
	assert.True(t, disabled.Present())
	assert.False(t, disabled.Value())
	assert.False(t, unset.Present())

	assert.Equal(t, []string{"1", "2", "3"}, zones.Value())
	assert.True(t, empty.Present())
	assert.False(t, request.NonEmpty(empty))
}

func TestFlagParseErrors(t *testing.T) {
	var count request.Field[int32]
	f := gnuflag.NewFlagSet("test", gnuflag.ContinueOnError)
	f.SetOutput(io.Discard)
	int32Var(f, &count, "count", "")

	assert.Error(t, f.Parse(true, []string{"--count", "many"}))
	assert.False(t, count.Present())
}

func TestEnumField(t *testing.T) {
	got, err := enumField("Priority", request.Some("regular"), armcompute.PossibleVirtualMachinePriorityTypesValues())
	require.NoError(t, err)
	assert.Equal(t, armcompute.VirtualMachinePriorityTypesRegular, got.Value())

	got, err = enumField("Priority", request.Field[string]{}, armcompute.PossibleVirtualMachinePriorityTypesValues())
	require.NoError(t, err)
	assert.False(t, got.Present())

	_, err = enumField("Priority", request.Some("cheap"), armcompute.PossibleVirtualMachinePriorityTypesValues())
	assert.ErrorContains(t, err, `invalid value "cheap" for --Priority`)
}

func TestEnumListField(t *testing.T) {
	got, err := enumListField("ScaleInPolicy", request.Some([]string{"oldestvm", "NewestVM"}),
		armcompute.PossibleVirtualMachineScaleSetScaleInRulesValues())
	require.NoError(t, err)
	assert.Equal(t, []armcompute.VirtualMachineScaleSetScaleInRules{
		armcompute.VirtualMachineScaleSetScaleInRulesOldestVM,
		armcompute.VirtualMachineScaleSetScaleInRulesNewestVM,
	}, got.Value())
}
