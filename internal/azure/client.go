package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v6"
	"github.com/sirupsen/logrus"
)

const (
	computeAPIVersion = "2024-07-01"
	networkAPIVersion = "2024-05-01"
)

// Runner executes one az invocation and returns its stdout.
type Runner func(ctx context.Context, args ...string) ([]byte, error)

// Client talks to Azure through the az CLI.
type Client struct {
	run   Runner
	login func(ctx context.Context) error
}

func NewClient() *Client {
	return &Client{run: runAzCommand, login: interactiveLogin}
}

// NewClientWithRunner returns a Client that sends every az invocation to
// run. Login is attempted through run as well.
func NewClientWithRunner(run Runner) *Client {
	return &Client{
		run: run,
		login: func(ctx context.Context) error {
			_, err := run(ctx, "login")
			return err
		},
	}
}

func (c *Client) EnsureLogin(ctx context.Context) error {
	if _, err := c.run(ctx, "account", "show"); err == nil {
		return nil
	}

	fmt.Fprintln(os.Stderr, "No active Azure CLI session detected. Launching 'az login'...")
	if err := c.login(ctx); err != nil {
		return fmt.Errorf("az login failed: %w", err)
	}
	return nil
}

func (c *Client) DefaultSubscription(ctx context.Context) (Subscription, error) {
	data, err := c.run(ctx, "account", "show", "--query", "{name:name,id:id}", "-o", "json")
	if err != nil {
		return Subscription{}, fmt.Errorf("failed to read the active subscription: %w", err)
	}
	var sub Subscription
	if err := json.Unmarshal(data, &sub); err != nil {
		return Subscription{}, fmt.Errorf("unable to parse subscription data: %w", err)
	}
	return sub, nil
}

func (c *Client) ListSubscriptions(ctx context.Context) ([]Subscription, error) {
	data, err := c.run(ctx, "account", "list", "--query", "[].{name:name,id:id}", "-o", "json")
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	var subs []Subscription
	if err := json.Unmarshal(data, &subs); err != nil {
		return nil, fmt.Errorf("unable to parse subscription data: %w", err)
	}
	sort.Slice(subs, func(i, j int) bool {
		return strings.ToLower(subs[i].Name) < strings.ToLower(subs[j].Name)
	})
	return subs, nil
}

func (c *Client) ListResourceGroups(ctx context.Context, subscriptionID string) ([]ResourceGroup, error) {
	data, err := c.run(ctx, "group", "list", "--subscription", subscriptionID, "--query", "[].{name:name,id:id,location:location}", "-o", "json")
	if err != nil {
		return nil, fmt.Errorf("failed to list resource groups: %w", err)
	}
	var rgs []ResourceGroup
	if err := json.Unmarshal(data, &rgs); err != nil {
		return nil, fmt.Errorf("unable to parse resource group data: %w", err)
	}
	sort.Slice(rgs, func(i, j int) bool {
		return strings.ToLower(rgs[i].Name) < strings.ToLower(rgs[j].Name)
	})
	return rgs, nil
}

// ListFqdnTags returns the FQDN tag names Azure Firewall offers in the
// subscription, following nextLink until every page is read.
func (c *Client) ListFqdnTags(ctx context.Context, subscriptionID string) ([]string, error) {
	var tags []string
	uri := fmt.Sprintf("/subscriptions/%s/providers/Microsoft.Network/azureFirewallFqdnTags?api-version=%s", subscriptionID, networkAPIVersion)

	for uri != "" {
		args := []string{
			"rest",
			"--method", "get",
			"--uri", uri,
			"--subscription", subscriptionID,
			"--query", "{value:value[].properties.fqdnTagName,nextLink:nextLink}",
			"-o", "json",
		}
		data, err := c.run(ctx, args...)
		if err != nil {
			return nil, fmt.Errorf("failed to list FQDN tags: %w", err)
		}

		var result struct {
			Value    []string `json:"value"`
			NextLink string   `json:"nextLink"`
		}
		if err := json.Unmarshal(data, &result); err != nil {
			return nil, fmt.Errorf("unable to parse FQDN tag data: %w", err)
		}

		tags = append(tags, result.Value...)
		uri = result.NextLink
	}

	sort.Slice(tags, func(i, j int) bool {
		return strings.ToLower(tags[i]) < strings.ToLower(tags[j])
	})
	return tags, nil
}

// CreateOrUpdateScaleSet PUTs the scale set and returns the response body.
func (c *Client) CreateOrUpdateScaleSet(ctx context.Context, target ResourceTarget, scaleSet *armcompute.VirtualMachineScaleSet) (string, error) {
	if err := target.Validate(); err != nil {
		return "", err
	}
	body, err := json.Marshal(scaleSet)
	if err != nil {
		return "", fmt.Errorf("unable to encode scale set: %w", err)
	}
	// The body may carry an admin password, so it goes through a private
	// file instead of the process arguments.
	bodyFile, err := writeBodyFile(body)
	if err != nil {
		return "", err
	}
	defer os.Remove(bodyFile)

	args := []string{
		"rest",
		"--method", "put",
		"--uri", fmt.Sprintf("%s?api-version=%s", target.ScaleSetID(), computeAPIVersion),
		"--subscription", target.Subscription.ShortID(),
		"--headers", "Content-Type=application/json",
		"--body", "@" + bodyFile,
		"-o", "json",
	}
	data, err := c.run(ctx, args...)
	if err != nil {
		return "", fmt.Errorf("failed to create or update scale set %s: %w", target.Name, err)
	}
	return string(data), nil
}

func interactiveLogin(ctx context.Context) error {
	if _, err := exec.LookPath("az"); err != nil {
		return fmt.Errorf("azure CLI (az) not found in PATH: %w", err)
	}
	cmd := exec.CommandContext(ctx, "az", "login")
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	return cmd.Run()
}

func runAzCommand(ctx context.Context, args ...string) ([]byte, error) {
	logrus.WithField("args", strings.Join(args, " ")).Debug("running az")
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "az", args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}

// writeBodyFile stores a request body in a temp file readable only by the
// current user and returns its path.
func writeBodyFile(body []byte) (string, error) {
	f, err := os.CreateTemp("", "azcfg-body-*.json")
	if err != nil {
		return "", fmt.Errorf("unable to create request body file: %w", err)
	}
	if err := f.Chmod(0o600); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("unable to restrict request body file: %w", err)
	}
	if _, err := f.Write(body); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("unable to write request body file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("unable to write request body file: %w", err)
	}
	return f.Name(), nil
}
