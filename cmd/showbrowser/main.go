package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Belphemur/ShowBrowser/internal/client"
	"github.com/Belphemur/ShowBrowser/internal/config"
	grpcserver "github.com/Belphemur/ShowBrowser/internal/grpc"
)

var (
	remoteAddr string
	timeout    time.Duration
)

// newClient builds the TVmaze client for a command. Tests replace it.
var newClient = func(cfg *config.Config) (client.Client, error) {
	if remoteAddr != "" {
		return grpcserver.NewRemoteClient(remoteAddr)
	}
	return client.NewClient(cfg), nil
}

var rootCmd = &cobra.Command{
	Use:   "showbrowser",
	Short: "Search TVmaze shows and list their episodes",
	Long: `showbrowser searches the TVmaze catalogue and lists a show's episodes.

Run "showbrowser serve" to start the web interface, or use the search and
episodes commands directly from a terminal.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&remoteAddr, "remote", "", "query a running showbrowser gRPC server at host:port instead of TVmaze")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "overall timeout for a lookup")

	rootCmd.AddCommand(serveCmd, searchCmd, episodesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
