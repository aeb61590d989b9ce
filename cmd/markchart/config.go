package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/example/markchart/internal/config"
)

type configCmd struct {
	*root
	fs     *flag.FlagSet
	output string
}

func (c *configCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	c := &configCmd{root: r.subcommand("config"), fs: fs}
	fs.StringVar(&c.output, "o", "", "file written by save (default the loaded config file)")
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *configCmd) Run() error {
	args := c.fs.Args()
	if len(args) < 1 {
		return &UsageError{of: c}
	}

	subCmd := args[0]
	switch subCmd {
	case "print":
		return c.runPrint()
	case "save":
		return c.runSave()
	default:
		return fmt.Errorf("unknown config command: %s", subCmd)
	}
}

func (c *configCmd) runPrint() error {
	fmt.Print(c.config.String())
	return nil
}

func (c *configCmd) runSave() error {
	path := c.output
	if path == "" {
		path = config.NewLoader(version, c.configPath).GetConfigPath()
	}
	if path == "" {
		path = config.DefaultPath()
	}
	if err := config.Save(c.config, path); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Configuration saved to %s\n", path)
	return nil
}
