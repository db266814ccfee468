package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Viper keys shared by the commands. Environment variables use the FASTLY_
// prefix, e.g. FASTLY_SERVICE_ID and FASTLY_SERVICE_VERSION.
const (
	keyConfig         = "config"
	keyToken          = "token"
	keyProfile        = "profile"
	keyEndpoint       = "endpoint"
	keyOutput         = "output"
	keyQuery          = "query"
	keyVerbose        = "verbose"
	keyServiceID      = "service_id"
	keyServiceVersion = "service_version"
	keyCache          = "cache"
	keyCacheAddr      = "cache_addr"
	keyMetricsFile    = "metrics_file"
)

// AddGlobalFlags registers the persistent flags and binds them to viper.
func AddGlobalFlags(root *cobra.Command) {
	flags := root.PersistentFlags()

	flags.StringP("config", "c", "", "config file (default is $HOME/.fastly/config.yml)")
	flags.StringP("token", "t", "", "Fastly API token")
	flags.String("profile", "", "keyring profile holding the API token (default \"default\")")
	flags.String("endpoint", "", "API endpoint URL (default https://api.fastly.com)")
	flags.StringP("output", "o", "table", "output format (table, json, yaml)")
	flags.StringP("query", "q", "", "jq expression applied to the output")
	flags.BoolP("verbose", "v", false, "verbose output")
	flags.StringP("service", "s", "", "service ID or name")
	flags.Int("version", 0, "service version (default: the active version)")
	flags.String("cache", "none", "GET response cache (none, memory, redis, nats)")
	flags.String("cache-addr", "", "address of the redis or nats cache backend")
	flags.String("metrics-file", "", "write Prometheus metrics for this run to a textfile")

	_ = viper.BindPFlag(keyConfig, flags.Lookup("config"))
	_ = viper.BindPFlag(keyToken, flags.Lookup("token"))
	_ = viper.BindPFlag(keyProfile, flags.Lookup("profile"))
	_ = viper.BindPFlag(keyEndpoint, flags.Lookup("endpoint"))
	_ = viper.BindPFlag(keyOutput, flags.Lookup("output"))
	_ = viper.BindPFlag(keyQuery, flags.Lookup("query"))
	_ = viper.BindPFlag(keyVerbose, flags.Lookup("verbose"))
	_ = viper.BindPFlag(keyServiceID, flags.Lookup("service"))
	_ = viper.BindPFlag(keyServiceVersion, flags.Lookup("version"))
	_ = viper.BindPFlag(keyCache, flags.Lookup("cache"))
	_ = viper.BindPFlag(keyCacheAddr, flags.Lookup("cache-addr"))
	_ = viper.BindPFlag(keyMetricsFile, flags.Lookup("metrics-file"))
}
