// Package config loads the jobpanel configuration file.
//
// Load reads ~/.config/jobpanel/config.toml unless another path is given. A
// path ending in .yaml or .yml is decoded as YAML with the same keys:
//
//	api_url         = "https://api.maap-project.org"
//	username        = "anonymous"
//	api_token       = ""            # sent as a bearer token when set
//	page_size       = 10
//	page_sizes      = [10, 25, 50, 100]
//	poll_interval   = "30s"
//	search_debounce = "200ms"
//	request_timeout = "5s"
//	log_file        = "~/.local/state/jobpanel/jobpanel.log"
//
// A missing file yields Default(). Blank values fall back to their default
// and string values are trimmed. Durations use time.ParseDuration syntax; a
// malformed value or non-positive page size is a "parse config" error.
// When page_sizes is set and page_size is not, the first option is used.
//
// Paths starting with "~" are expanded with ExpandPath.
package config
