package cmds

import (
	"flag"

	"github.com/spf13/cobra"

	"go.searchlight.dev/corgi/pkg/inspector"
)

func NewRootCmd() *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:               "corgi [command]",
		Short:             `Logs every HTTP/1.1 request it receives`,
		SilenceUsage:      true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	// ref: https://github.com/kubernetes/kubernetes/issues/17162#issuecomment-225596212
	inspector.Must(flag.CommandLine.Parse([]string{}))
	rootCmd.AddCommand(NewCmdRun())
	rootCmd.AddCommand(NewCmdVersion())

	return rootCmd
}
