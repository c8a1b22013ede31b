package cli

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v6"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"
	"github.com/sirupsen/logrus"

	"github.com/Lukas-Klein/azure-config-cli/internal/azure"
	"github.com/Lukas-Klein/azure-config-cli/internal/config"
	"github.com/Lukas-Klein/azure-config-cli/internal/logging"
	"github.com/Lukas-Klein/azure-config-cli/internal/output"
	"github.com/Lukas-Klein/azure-config-cli/internal/validate"
)

// BackendFactory returns the backend selected by cfg.
type BackendFactory func(cfg *config.Config) azure.Backend

// TUIRunner lets the user complete target and confirm submission of
// scaleSet, returning the backend's response.
type TUIRunner func(ctx context.Context, backend azure.Backend, scaleSet *armcompute.VirtualMachineScaleSet, target azure.ResourceTarget) (string, error)

// DefaultBackend picks the az CLI or SDK backend from cfg.Backend.
func DefaultBackend(cfg *config.Config) azure.Backend {
	if cfg.Backend == config.BackendSDK {
		return azure.NewSDKClient()
	}
	return azure.NewClient()
}

// App is the azcfg entry point.
type App struct {
	Stdout     io.Writer
	Stderr     io.Writer
	NewBackend BackendFactory
	RunTUI     TUIRunner
	// ConfigPath is the default for --config.
	ConfigPath string
}

func (a *App) commands() map[string]Command {
	cmds := []Command{
		&vmssConfigCommand{},
		&vmssCreateCommand{runTUI: a.RunTUI},
		&firewallAppRuleCommand{},
		&fqdnTagsCommand{},
	}
	byName := make(map[string]Command, len(cmds))
	for _, c := range cmds {
		byName[c.Info().Name] = c
	}
	return byName
}

// Run parses args, which exclude the program name, and runs the selected
// command.
func (a *App) Run(ctx context.Context, args []string) error {
	top := gnuflag.NewFlagSet("azcfg", gnuflag.ContinueOnError)
	top.SetOutput(a.Stderr)
	configPath := top.String("config", a.ConfigPath, "configuration file")
	if err := top.Parse(false, args); err != nil {
		return err
	}
	args = top.Args()

	if len(args) == 0 {
		a.printHelp()
		return errors.New("no command specified")
	}
	name, args := args[0], args[1:]
	if name == "help" {
		return a.help(args)
	}
	cmd, ok := a.commands()[name]
	if !ok {
		return errors.Errorf("unrecognized command: azcfg %s", name)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return errors.Trace(err)
	}

	f := gnuflag.NewFlagSet(name, gnuflag.ContinueOnError)
	f.SetOutput(a.Stderr)
	f.Usage = func() { printUsage(a.Stderr, cmd) }
	f.StringVar(&cfg.Subscription, "subscription", cfg.Subscription, "subscription ID, defaults to the backend's active subscription")
	f.StringVar(&cfg.Output, "output", cfg.Output, "output format (json|yaml)")
	f.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level")
	cmd.SetFlags(f)
	if err := f.Parse(true, args); err != nil {
		return err
	}
	if _, err := validate.OneOf("output", cfg.Output, output.Formats()); err != nil {
		return err
	}

	if err := logging.Init(cfg, a.Stderr); err != nil {
		return errors.Annotate(err, "initializing logging")
	}
	if err := cmd.Init(f.Args()); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"command": name,
		"backend": cfg.Backend,
	}).Debug("running command")

	return cmd.Run(&Context{
		Context:    ctx,
		Stdout:     a.Stdout,
		Stderr:     a.Stderr,
		Config:     cfg,
		newBackend: a.NewBackend,
	})
}

func (a *App) help(args []string) error {
	if len(args) == 0 {
		a.printHelp()
		return nil
	}
	cmd, ok := a.commands()[args[0]]
	if !ok {
		return errors.Errorf("unknown command %q", args[0])
	}
	printUsage(a.Stdout, cmd)
	return nil
}

func (a *App) printHelp() {
	cmds := a.commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(a.Stdout, "usage: azcfg [--config <file>] <command> [options]")
	fmt.Fprintln(a.Stdout, "\ncommands:")
	for _, name := range names {
		fmt.Fprintf(a.Stdout, "    %-18s %s\n", name, cmds[name].Info().Purpose)
	}
	fmt.Fprintf(a.Stdout, "    %-18s %s\n", "help", "show help for a command")
}
