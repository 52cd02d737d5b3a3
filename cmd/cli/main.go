package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	_ "github.com/keshon/swolebro/internal/command/core"
	_ "github.com/keshon/swolebro/internal/command/jcfdiscord"

	"github.com/keshon/swolebro/internal/command"
	"github.com/keshon/swolebro/internal/docs"
	v "github.com/keshon/swolebro/internal/version"
	"github.com/keshon/swolebro/pkg/cmd"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(cmd.DefaultRegistry).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(r *cmd.Registry) *cobra.Command {
	root := &cobra.Command{
		Use:          v.AppName + "-cli",
		Short:        "Run " + v.AppName + " commands without a Discord connection",
		Version:      v.Version,
		SilenceUsage: true,
	}
	root.AddCommand(newListCmd(r), newRunCmd(r), newReadmeCmd(r))
	return root
}

func newListCmd(r *cmd.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered commands",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			out := c.OutOrStdout()
			for _, sc := range docs.Sections(r) {
				for _, e := range sc.Commands {
					fmt.Fprintf(out, "/%-8s %-12s %s\n", e.Name, e.Group, e.Description)
				}
			}
			return nil
		},
	}
}

func newRunCmd(r *cmd.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "run <command> [args...]",
		Short: "Invoke a command and print its reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			name := strings.TrimPrefix(args[0], "/")
			reply := command.Dispatch(context.Background(), r, name, &cmd.Invocation{Args: args[1:]})
			fmt.Fprintln(c.OutOrStdout(), reply)
			return nil
		},
	}
}

func newReadmeCmd(r *cmd.Registry) *cobra.Command {
	var outPath string
	c := &cobra.Command{
		Use:   "readme",
		Short: "Render the command table as markdown",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			if outPath == "" {
				return docs.WriteReadme(c.OutOrStdout(), r)
			}
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", outPath, err)
			}
			if err := docs.WriteReadme(f, r); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}
	c.Flags().StringVarP(&outPath, "out", "o", "", "write to file instead of stdout")
	return c
}
