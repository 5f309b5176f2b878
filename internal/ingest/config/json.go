package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/coursework/internal/flagx"
)

// JsonConfig is the on-disk shape of the optional config file.
// Pointer fields tell "absent" from an explicit zero value.
type JsonConfig struct {
	SourcePath     *string `json:"source_path"`
	DatabaseDSN    *string `json:"database_dsn"`
	BatchSize      *int    `json:"batch_size"`
	MetricsFile    *string `json:"metrics_file"`
	S3Region       *string `json:"s3_region"`
	S3BaseEndpoint *string `json:"s3_base_endpoint"`
	S3AccessKey    *string `json:"s3_access_key"`
	S3SecretKey    *string `json:"s3_secret_key"`
}

// parseJson overlays values from the file given with -c / -config.
// It panics when the file cannot be read or decoded.
func parseJson(config *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.SourcePath, c.SourcePath)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	if c.BatchSize != nil {
		config.BatchSize = *c.BatchSize
	}
	setString(&config.MetricsFile, c.MetricsFile)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.S3AccessKey, c.S3AccessKey)
	setString(&config.S3SecretKey, c.S3SecretKey)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
