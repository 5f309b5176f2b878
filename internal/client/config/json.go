package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/coursework/internal/flagx"
	"github.com/dmitrijs2005/coursework/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// The timeout may be given as a string like "15s" or as integer nanoseconds.
// Keys missing from the file leave the current values alone.
type JsonConfig struct {
	ServerBaseURL  *string         `json:"server_base_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	SaveDir        *string         `json:"save_dir"`
}

// parseJson overlays Config with values loaded from the file named by -c or
// -config. It panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != nil {
		cfg.ServerBaseURL = *jc.ServerBaseURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.SaveDir != nil {
		cfg.SaveDir = *jc.SaveDir
	}
}
