package output

import (
	"bytes"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleRule() *armnetwork.AzureFirewallApplicationRule {
	return &armnetwork.AzureFirewallApplicationRule{
		Name:        to.Ptr("allow"),
		TargetFqdns: []*string{to.Ptr("a.com")},
	}
}

func TestEmitJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewEmitter(&buf, FormatJSON).Emit(sampleRule()))

	out := buf.String()
	assert.Contains(t, out, `"name": "allow"`)
	assert.Contains(t, out, `"targetFqdns"`)
	assert.NotContains(t, out, "fqdnTags")
}

func TestEmitYAMLUsesWireNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewEmitter(&buf, FormatYAML).Emit(sampleRule()))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "allow", decoded["name"])
	assert.Equal(t, []any{"a.com"}, decoded["targetFqdns"])
}

func TestEmitUnknownFormat(t *testing.T) {
	err := NewEmitter(&bytes.Buffer{}, Format("xml")).Emit(sampleRule())
	assert.EqualError(t, err, `unsupported output format "xml"`)
}
