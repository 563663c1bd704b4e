package main

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"
)

var version string

type variables struct {
	Addr         string        `required:"false" envconfig:"addr" default:":8080"`
	APIBaseURL   string        `required:"false" envconfig:"api_base_url" default:"https://jsonplaceholder.typicode.com"`
	HTTPTimeout  time.Duration `required:"false" envconfig:"http_timeout" default:"30s"`
	MaxOpenConns int           `required:"false" envconfig:"max_open_conns" default:"15"`
	LogLevel     string        `required:"false" envconfig:"log_level" default:"info"`
	AppName      string        `required:"false" envconfig:"app_name" default:"albumviewer"`
}

var v variables

var rootCmd = &cobra.Command{
	Use:   "albumviewer",
	Short: "Browse jsonplaceholder users, albums and photos",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return envconfig.Process("albumviewer", &v)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(browseCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
