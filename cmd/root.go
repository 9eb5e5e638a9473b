package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/schemadock/schemadock/pkg/clients"
	"github.com/schemadock/schemadock/pkg/clients/getter"
	"github.com/schemadock/schemadock/pkg/clients/logger"
)

var rootCmd = &cobra.Command{
	Use:   "schemadock",
	Short: "Disposable Confluent Schema Registry clusters on Docker",
	Long:  `Schemadock creates disposable Confluent Schema Registry test clusters, every node runs ZooKeeper, Kafka and the Schema Registry on a shared Docker network`,
}

var l logger.Logger
var verbose bool

var version string // set by build process
var date string    // set by build process
var commit string  // set by build process

// clientsFunc creates the clients a command uses to talk to the container
// engine, connecting is deferred until the command runs so commands which
// never touch Docker work without a running daemon
type clientsFunc func() (*clients.Clients, error)

func init() {
	l = createLogger()

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output from the cluster operations")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if verbose {
			l = logger.NewLogger(os.Stdout, logger.LogLevelDebug)
		}
	}

	rootCmd.AddCommand(newStartCmd(connectClients))
	rootCmd.AddCommand(newDownCmd(connectClients))
	rootCmd.AddCommand(newStatusCmd(connectClients))
	rootCmd.AddCommand(newShellCmd(connectClients))
	rootCmd.AddCommand(newLogsCmd(connectClients))
	rootCmd.AddCommand(newPurgeCmd(connectClients))
	rootCmd.AddCommand(newTopologyCmd(getter.NewGetter(false)))
	rootCmd.AddCommand(versionCmd)
}

func connectClients() (*clients.Clients, error) {
	return clients.GenerateClients(l)
}

func createLogger() logger.Logger {
	// set the log level
	if lev := os.Getenv("LOG_LEVEL"); lev != "" {
		return logger.NewLogger(os.Stdout, lev)
	}

	return logger.NewLogger(os.Stdout, logger.LogLevelInfo)
}

// Execute the root command
func Execute(v, c, d string) error {
	version = v
	commit = c
	date = d

	rootCmd.SilenceErrors = true

	err := rootCmd.Execute()

	if err != nil {
		fmt.Println("")
		fmt.Println(err)
	}

	return err
}
