package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/luanacfraga/tooldo/pkg/cli/config"
	"github.com/luanacfraga/tooldo/pkg/utils/logging"
)

func cmdValidate() *cli.Command {
	var workspaceCfg config.Workspace

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate configuration files",
		Flags:   workspaceCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := workspaceCfg.Configure(); err != nil {
				return goerr.Wrap(err, "configuration validation failed")
			}

			logger := logging.Default()
			logger.Info("Configuration validation passed",
				"name", workspaceCfg.Name,
				"team_count", len(workspaceCfg.Teams),
			)
			for _, team := range workspaceCfg.Teams {
				logger.Info("Team validated", "id", team.ID, "name", team.Name)
			}
			return nil
		},
	}
}
