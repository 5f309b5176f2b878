package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/coursework/internal/flagx"
	"github.com/dmitrijs2005/coursework/internal/timex"
)

// JsonConfig is the on-disk shape of the optional config file. Durations use
// timex.Duration, so both "60m" and integer nanoseconds are accepted.
// Only the keys present in the file override the current values.
type JsonConfig struct {
	EndpointAddrHTTP            *string           `json:"endpoint_addr_http"`
	DatabaseDSN                 *string           `json:"database_dsn"`
	SecretKey                   *string           `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration   `json:"access_token_validity_duration"`
	Users                       *[]UserCredential `json:"users"`
}

// parseJson loads configuration values from the file named by -c or -config.
// If neither flag is set nothing is loaded. A file that cannot be read or
// decoded makes the function panic.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != nil {
		config.EndpointAddrHTTP = *c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.SecretKey != nil {
		config.SecretKey = *c.SecretKey
	}
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.Users != nil {
		config.Users = *c.Users
	}
}
