// Package firewall builds Azure Firewall application rules.
package firewall

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"

	"github.com/Lukas-Klein/azure-config-cli/internal/validate"
)

// ParamProtocol is the parameter name reported in protocol errors.
const ParamProtocol = "Protocol"

// Protocol is an application rule protocol.
type Protocol string

const (
	ProtocolHTTP  Protocol = "http"
	ProtocolHTTPS Protocol = "https"
)

type protocolInfo struct {
	defaultPort uint16
	armType     armnetwork.AzureFirewallApplicationRuleProtocolType
}

var supportedProtocols = map[Protocol]protocolInfo{
	ProtocolHTTP:  {defaultPort: 80, armType: armnetwork.AzureFirewallApplicationRuleProtocolTypeHTTP},
	ProtocolHTTPS: {defaultPort: 443, armType: armnetwork.AzureFirewallApplicationRuleProtocolTypeHTTPS},
}

// supportedOrder fixes the order protocols are listed in messages.
var supportedOrder = []Protocol{ProtocolHTTP, ProtocolHTTPS}

// protocolRegexp splits "name[:port]". The port group accepts anything
// but a colon so that bad ports are reported as port errors.
var protocolRegexp = regexp.MustCompile(`(?i)^([a-z]+)(?::([^:]+))?$`)

// RuleProtocolSpec is a parsed protocol entry with its port resolved.
type RuleProtocolSpec struct {
	Protocol Protocol
	Port     uint16
}

// ARM converts p to its Azure SDK representation.
func (p RuleProtocolSpec) ARM() *armnetwork.AzureFirewallApplicationRuleProtocol {
	return &armnetwork.AzureFirewallApplicationRuleProtocol{
		ProtocolType: to.Ptr(supportedProtocols[p.Protocol].armType),
		Port:         to.Ptr(int32(p.Port)),
	}
}

func (p RuleProtocolSpec) String() string {
	return string(p.Protocol) + ":" + strconv.Itoa(int(p.Port))
}

// SupportedProtocols returns the supported protocol names in display order.
func SupportedProtocols() []string {
	names := make([]string, len(supportedOrder))
	for i, p := range supportedOrder {
		names[i] = string(p)
	}
	return names
}

// DefaultPort returns the port used for p when none is given.
func DefaultPort(p Protocol) (uint16, bool) {
	info, ok := supportedProtocols[p]
	return info.defaultPort, ok
}

// ParseProtocol parses one "protocol[:port]" entry. Matching is case
// insensitive and an omitted port falls back to the protocol default.
func ParseProtocol(raw string) (RuleProtocolSpec, error) {
	m := protocolRegexp.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return RuleProtocolSpec{}, &validate.MalformedProtocolError{Parameter: ParamProtocol, Value: raw}
	}

	proto := Protocol(strings.ToLower(m[1]))
	info, ok := supportedProtocols[proto]
	if !ok {
		return RuleProtocolSpec{}, &validate.UnsupportedProtocolError{
			Parameter: ParamProtocol,
			Value:     m[1],
			Supported: SupportedProtocols(),
		}
	}

	if m[2] == "" {
		return RuleProtocolSpec{Protocol: proto, Port: info.defaultPort}, nil
	}
	port, err := strconv.ParseUint(m[2], 10, 16)
	if err != nil {
		return RuleProtocolSpec{}, &validate.InvalidPortError{
			Parameter: ParamProtocol,
			Value:     raw,
			Port:      m[2],
			Err:       err,
		}
	}
	return RuleProtocolSpec{Protocol: proto, Port: uint16(port)}, nil
}

// ParseProtocols parses every entry in order. Duplicates are kept.
func ParseProtocols(raws []string) ([]RuleProtocolSpec, error) {
	specs := make([]RuleProtocolSpec, 0, len(raws))
	for _, raw := range raws {
		spec, err := ParseProtocol(raw)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// fqdnTagProtocols is the protocol set every FQDN tag rule uses.
func fqdnTagProtocols() []RuleProtocolSpec {
	specs := make([]RuleProtocolSpec, len(supportedOrder))
	for i, p := range supportedOrder {
		specs[i] = RuleProtocolSpec{Protocol: p, Port: supportedProtocols[p].defaultPort}
	}
	return specs
}
