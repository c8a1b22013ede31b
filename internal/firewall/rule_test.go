package firewall

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lukas-Klein/azure-config-cli/internal/request"
	"github.com/Lukas-Klein/azure-config-cli/internal/validate"
)

type fakeResolver struct {
	calls int
	err   error
}

func (f *fakeResolver) CanonicalFqdnTags(_ context.Context, tags []string) ([]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = strings.ToUpper(t)
	}
	return out, nil
}

func TestNewApplicationRuleTargetFqdn(t *testing.T) {
	resolver := &fakeResolver{}
	rule, err := NewApplicationRule(context.Background(), ApplicationRuleInput{
		Name:          request.Some("allow-a"),
		SourceAddress: request.Some([]string{"10.0.0.0/24"}),
		TargetFqdn:    request.Some([]string{"a.com"}),
		Protocol:      request.Some([]string{"http", "HtTpS:8443"}),
	}, resolver)
	require.NoError(t, err)

	assert.Equal(t, 0, resolver.calls)
	assert.Equal(t, []string{"a.com"}, rule.TargetFqdns)
	assert.Nil(t, rule.FqdnTags)
	assert.Equal(t, []RuleProtocolSpec{{ProtocolHTTP, 80}, {ProtocolHTTPS, 8443}}, rule.Protocols)

	arm := rule.ARM()
	assert.Nil(t, arm.FqdnTags)
	assert.Nil(t, arm.Description)
	require.Len(t, arm.TargetFqdns, 1)
	assert.Equal(t, "a.com", *arm.TargetFqdns[0])
	require.Len(t, arm.Protocols, 2)
	assert.Equal(t, int32(8443), *arm.Protocols[1].Port)
}

func TestNewApplicationRuleTargetFqdnWithoutProtocol(t *testing.T) {
	rule, err := NewApplicationRule(context.Background(), ApplicationRuleInput{
		Name:       request.Some("r"),
		TargetFqdn: request.Some([]string{"a.com"}),
	}, &fakeResolver{})
	require.NoError(t, err)
	assert.Empty(t, rule.Protocols)
	assert.Nil(t, rule.FqdnTags)
}

func TestNewApplicationRuleFqdnTag(t *testing.T) {
	resolver := &fakeResolver{}
	rule, err := NewApplicationRule(context.Background(), ApplicationRuleInput{
		Name:        request.Some("updates"),
		Description: request.Some("windows update"),
		FqdnTag:     request.Some([]string{"windowsupdate"}),
	}, resolver)
	require.NoError(t, err)

	assert.Equal(t, 1, resolver.calls)
	assert.Equal(t, []string{"WINDOWSUPDATE"}, rule.FqdnTags)
	assert.Nil(t, rule.TargetFqdns)
	assert.Equal(t, []RuleProtocolSpec{{ProtocolHTTP, 80}, {ProtocolHTTPS, 443}}, rule.Protocols)

	arm := rule.ARM()
	assert.Nil(t, arm.TargetFqdns)
	assert.Equal(t, "windows update", *arm.Description)
}

func TestNewApplicationRuleErrors(t *testing.T) {
	testCases := []struct {
		name    string
		in      ApplicationRuleInput
		wantErr interface{}
	}{
		{
			name: "tag and target",
			in: ApplicationRuleInput{
				FqdnTag:    request.Some([]string{"tag1"}),
				TargetFqdn: request.Some([]string{"a.com"}),
			},
			wantErr: &validate.ConflictingInputError{},
		},
		{
			name: "tag and protocol",
			in: ApplicationRuleInput{
				FqdnTag:  request.Some([]string{"tag1"}),
				Protocol: request.Some([]string{"http"}),
			},
			wantErr: &validate.UnsupportedCombinationError{},
		},
		{
			name:    "neither tag nor target",
			in:      ApplicationRuleInput{Protocol: request.Some([]string{"http"})},
			wantErr: &validate.MissingRequiredInputError{},
		},
		{
			name: "empty tag list counts as absent",
			in: ApplicationRuleInput{
				FqdnTag: request.Some([]string{}),
			},
			wantErr: &validate.MissingRequiredInputError{},
		},
		{
			name: "bad protocol",
			in: ApplicationRuleInput{
				TargetFqdn: request.Some([]string{"a.com"}),
				Protocol:   request.Some([]string{"ftp"}),
			},
			wantErr: &validate.UnsupportedProtocolError{},
		},
		{
			name: "bad port",
			in: ApplicationRuleInput{
				TargetFqdn: request.Some([]string{"a.com"}),
				Protocol:   request.Some([]string{"http:abc"}),
			},
			wantErr: &validate.InvalidPortError{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resolver := &fakeResolver{}
			rule, err := NewApplicationRule(context.Background(), tc.in, resolver)
			assert.Nil(t, rule)
			require.Error(t, err)
			assert.IsType(t, tc.wantErr, err)
			assert.Equal(t, 0, resolver.calls, "validation fails before the tag lookup")
		})
	}
}

func TestNewApplicationRuleResolverErrorPropagates(t *testing.T) {
	lookupErr := errors.New("unknown FQDN tag \"nope\"")
	_, err := NewApplicationRule(context.Background(), ApplicationRuleInput{
		FqdnTag: request.Some([]string{"nope"}),
	}, &fakeResolver{err: lookupErr})
	assert.Same(t, lookupErr, err)
}

func TestNewApplicationRuleFqdnTagWithoutResolver(t *testing.T) {
	var rule *ApplicationRule
	var err error
	require.NotPanics(t, func() {
		rule, err = NewApplicationRule(context.Background(), ApplicationRuleInput{
			Name:    request.Some("updates"),
			FqdnTag: request.Some([]string{"WindowsUpdate"}),
		}, nil)
	})
	assert.EqualError(t, err, "FQDN tag rules need a tag resolver")
	assert.Nil(t, rule)

	// Target FQDN rules never consult the resolver.
	rule, err = NewApplicationRule(context.Background(), ApplicationRuleInput{
		Name:       request.Some("web"),
		TargetFqdn: request.Some([]string{"www.example.com"}),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"www.example.com"}, rule.TargetFqdns)
}
