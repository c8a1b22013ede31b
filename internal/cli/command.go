// Package cli implements the azcfg commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	"github.com/Lukas-Klein/azure-config-cli/internal/azure"
	"github.com/Lukas-Klein/azure-config-cli/internal/config"
	"github.com/Lukas-Klein/azure-config-cli/internal/output"
)

// Info describes a command for help output.
type Info struct {
	Name    string
	Args    string
	Purpose string
	Doc     string
}

// Usage returns "name args".
func (i *Info) Usage() string {
	if i.Args == "" {
		return i.Name
	}
	return i.Name + " " + i.Args
}

// Command is one azcfg subcommand. SetFlags registers its flags, Init
// checks the parsed flags and positional arguments, and Run executes it.
type Command interface {
	Info() *Info
	SetFlags(f *gnuflag.FlagSet)
	Init(args []string) error
	Run(ctx *Context) error
}

// Context carries what a running command may use.
type Context struct {
	context.Context

	Stdout io.Writer
	Stderr io.Writer
	Config *config.Config

	newBackend BackendFactory
	backend    azure.Backend
}

// Backend returns the configured backend, logging in on first use.
func (c *Context) Backend() (azure.Backend, error) {
	if c.backend != nil {
		return c.backend, nil
	}
	backend := c.newBackend(c.Config)
	if err := backend.EnsureLogin(c); err != nil {
		return nil, errors.Trace(err)
	}
	c.backend = backend
	return backend, nil
}

// Subscription returns the configured subscription, asking the backend
// for its default when none is set.
func (c *Context) Subscription() (azure.Subscription, error) {
	if c.Config.Subscription != "" {
		return azure.Subscription{ID: c.Config.Subscription}, nil
	}
	backend, err := c.Backend()
	if err != nil {
		return azure.Subscription{}, errors.Trace(err)
	}
	sub, err := backend.DefaultSubscription(c)
	if err != nil {
		return azure.Subscription{}, errors.Trace(err)
	}
	return sub, nil
}

// Emit writes v to stdout in the configured output format.
func (c *Context) Emit(v any) error {
	return output.NewEmitter(c.Stdout, output.Format(c.Config.Output)).Emit(v)
}

func checkEmpty(args []string) error {
	if len(args) > 0 {
		return errors.Errorf("unrecognized args: %q", args)
	}
	return nil
}

// printUsage writes the usage of cmd and its flags to w.
func printUsage(w io.Writer, cmd Command) {
	i := cmd.Info()
	fmt.Fprintf(w, "usage: azcfg %s\n", i.Usage())
	fmt.Fprintf(w, "purpose: %s\n", i.Purpose)

	f := gnuflag.NewFlagSet(i.Name, gnuflag.ContinueOnError)
	f.SetOutput(w)
	cmd.SetFlags(f)
	fmt.Fprintf(w, "\noptions:\n")
	f.PrintDefaults()
	if i.Doc != "" {
		fmt.Fprintf(w, "\n%s\n", strings.TrimSpace(i.Doc))
	}
}
