package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config captures everything the server reads from its environment.
type Config struct {
	Addr              string        // listen address
	UpstreamBaseURL   string        // backend catalog/ticket/comment service
	UpstreamScope     string        // catalog scope: public or all
	UpstreamTimeout   time.Duration // per-request timeout on upstream calls
	BotToken          string        // chat-platform bot token for init data validation
	SkipInitDataCheck bool          // development escape hatch: accept unsigned identities
	AbsentMeansSold   bool          // reconciliation policy for names missing from a re-fetch
}

// FromEnv builds a Config from environment variables so main stays lean.
// Every knob has a default; only the upstream URL and bot token genuinely
// need setting in production.
func FromEnv() Config {
	v := viper.New()
	v.SetEnvPrefix("DOMAINSTORE")
	v.AutomaticEnv()

	v.SetDefault("addr", ":8080")
	v.SetDefault("upstream_url", "http://localhost:3001")
	v.SetDefault("upstream_scope", "public")
	v.SetDefault("upstream_timeout", "15s")
	v.SetDefault("bot_token", "")
	v.SetDefault("skip_init_data_check", false)
	v.SetDefault("absent_means_sold", true)

	return Config{
		Addr:              v.GetString("addr"),
		UpstreamBaseURL:   v.GetString("upstream_url"),
		UpstreamScope:     v.GetString("upstream_scope"),
		UpstreamTimeout:   v.GetDuration("upstream_timeout"),
		BotToken:          v.GetString("bot_token"),
		SkipInitDataCheck: v.GetBool("skip_init_data_check"),
		AbsentMeansSold:   v.GetBool("absent_means_sold"),
	}
}
