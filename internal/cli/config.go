package cli

import "fmt"

type ConfigCmd struct {
	Write bool `help:"Save the effective configuration to the config file."`
}

func (c *ConfigCmd) Run(ctx *Context) error {
	cfg := ctx.Config
	if cfg == nil {
		return fmt.Errorf("no configuration loaded")
	}

	ctx.printf("Config file  %s\n", ctx.ConfigPath)
	ctx.printf("Database     %s\n", cfg.DBPath)
	ctx.printf("Logs         %s\n", cfg.LogDir)
	ctx.printf("Exports      %s\n", cfg.ExportDir)
	ctx.printf("Locale       %s\n", cfg.Locale)
	ctx.printf("Debug        %t\n", cfg.Debug)

	if !c.Write {
		return nil
	}
	if ctx.ConfigPath == "" {
		return fmt.Errorf("no config file path")
	}
	if err := cfg.Save(ctx.ConfigPath); err != nil {
		return err
	}
	ctx.printf("Wrote %s\n", ctx.ConfigPath)
	return nil
}
