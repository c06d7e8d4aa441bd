package main

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"eosiogo/internal/server"
	"eosiogo/pkg/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the demo signing-request HTTP server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = config.AppConfig.ServerAddr
	}

	srv := server.New(config.AppConfig.CallbackInflateCapBytes)
	logrus.Infof("eosioctl serve: listening on %s", addr)
	return http.ListenAndServe(addr, srv)
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (defaults to config's server_addr)")
	rootCmd.AddCommand(serveCmd)
}
