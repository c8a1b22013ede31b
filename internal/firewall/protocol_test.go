package firewall

import (
	"errors"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lukas-Klein/azure-config-cli/internal/validate"
)

func TestParseProtocol(t *testing.T) {
	testCases := []struct {
		name    string
		raw     string
		want    RuleProtocolSpec
		wantErr interface{}
	}{
		{name: "http default port", raw: "http", want: RuleProtocolSpec{ProtocolHTTP, 80}},
		{name: "https default port", raw: "https", want: RuleProtocolSpec{ProtocolHTTPS, 443}},
		{name: "mixed case explicit port", raw: "HtTpS:8443", want: RuleProtocolSpec{ProtocolHTTPS, 8443}},
		{name: "upper case", raw: "HTTP:8080", want: RuleProtocolSpec{ProtocolHTTP, 8080}},
		{name: "surrounding space", raw: " http ", want: RuleProtocolSpec{ProtocolHTTP, 80}},
		{name: "unsupported", raw: "ftp", wantErr: &validate.UnsupportedProtocolError{}},
		{name: "unsupported with port", raw: "mssql:1433", wantErr: &validate.UnsupportedProtocolError{}},
		{name: "non numeric port", raw: "http:abc", wantErr: &validate.InvalidPortError{}},
		{name: "negative port", raw: "http:-1", wantErr: &validate.InvalidPortError{}},
		{name: "port too large", raw: "https:70000", wantErr: &validate.InvalidPortError{}},
		{name: "empty", raw: "", wantErr: &validate.MalformedProtocolError{}},
		{name: "trailing colon", raw: "http:", wantErr: &validate.MalformedProtocolError{}},
		{name: "two ports", raw: "http:80:81", wantErr: &validate.MalformedProtocolError{}},
		{name: "digits only", raw: "8080", wantErr: &validate.MalformedProtocolError{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseProtocol(tc.raw)
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.IsType(t, tc.wantErr, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseProtocolUnsupportedListsAlternatives(t *testing.T) {
	_, err := ParseProtocol("ftp")
	var unsupported *validate.UnsupportedProtocolError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, []string{"http", "https"}, unsupported.Supported)
	assert.Contains(t, err.Error(), "http, https")
	assert.Contains(t, err.Error(), "ftp")
}

func TestParseProtocolMalformedNamesLiteral(t *testing.T) {
	_, err := ParseProtocol("http//x")
	var malformed *validate.MalformedProtocolError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "http//x", malformed.Value)
	assert.Contains(t, err.Error(), `"http//x"`)
}

func TestParseProtocolsKeepsOrderAndDuplicates(t *testing.T) {
	got, err := ParseProtocols([]string{"https", "http:8080", "https"})
	require.NoError(t, err)
	assert.Equal(t, []RuleProtocolSpec{
		{ProtocolHTTPS, 443},
		{ProtocolHTTP, 8080},
		{ProtocolHTTPS, 443},
	}, got)
}

func TestParseProtocolsStopsAtFirstError(t *testing.T) {
	got, err := ParseProtocols([]string{"http", "gopher", "http:x"})
	assert.Nil(t, got)
	assert.IsType(t, &validate.UnsupportedProtocolError{}, err)
}

func TestRuleProtocolSpecARM(t *testing.T) {
	p := RuleProtocolSpec{ProtocolHTTPS, 8443}.ARM()
	require.NotNil(t, p.ProtocolType)
	require.NotNil(t, p.Port)
	assert.Equal(t, armnetwork.AzureFirewallApplicationRuleProtocolTypeHTTPS, *p.ProtocolType)
	assert.Equal(t, int32(8443), *p.Port)
	assert.Equal(t, "https:8443", RuleProtocolSpec{ProtocolHTTPS, 8443}.String())
}

func TestDefaultPort(t *testing.T) {
	port, ok := DefaultPort(ProtocolHTTP)
	assert.True(t, ok)
	assert.Equal(t, uint16(80), port)

	_, ok = DefaultPort(Protocol("ftp"))
	assert.False(t, ok)
}
