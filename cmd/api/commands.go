package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zhouzirui/employees-api/internal/openapi"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "employees-api",
		Short: "CRUD HTTP API for employee records",
		Long: `Serve a REST API for employee records (id, name, salary) kept in memory.

Configuration is read from the environment and an optional .env file:
PORT, LOG_LEVEL, LOG_FORMAT, SEED_DATA, CORS_ALLOWED_ORIGINS, EVENTS_ENABLED.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}

	root.AddCommand(newServeCmd(), newOpenAPICmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func newOpenAPICmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI description of the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := openapi.Load(cmd.Context())
			if err != nil {
				return err
			}

			var out []byte
			switch format {
			case "json":
				out, err = openapi.JSON(doc)
				out = append(out, '\n')
			case "yaml":
				out, err = openapi.YAML(doc)
			default:
				return fmt.Errorf("unsupported format %q (use json or yaml)", format)
			}
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: json or yaml")
	return cmd
}
