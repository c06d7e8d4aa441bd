// Command eosioctl is a small CLI over eosiogo's codec and crypto
// packages: generate keys, sign digests and transactions, encode/decode
// ABI values, and build/decode/resolve EEP-7 signing requests.
package main

import (
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"eosiogo/pkg/config"
	"eosiogo/pkg/logging"
)

var once sync.Once

// initMiddleware loads a .env file and eosioctl's config once per process,
// then applies the resolved log level, mirroring the teacher CLI's
// PersistentPreRunE middleware pattern (cmd/cli/wallet.go).
func initMiddleware(cmd *cobra.Command, _ []string) error {
	var err error
	once.Do(func() {
		_ = godotenv.Load()
		if _, loadErr := config.Load(); loadErr != nil {
			err = loadErr
			return
		}
		err = logging.SetLevelByName(config.AppConfig.LogLevel)
	})
	return err
}

var rootCmd = &cobra.Command{
	Use:               "eosioctl",
	Short:             "EOSIO-family key, ABI, and signing-request tooling",
	PersistentPreRunE: initMiddleware,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
