package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/coursework/internal/flagx"
)

// parseFlags overrides Config fields from command-line flags.
//
//	-f string   source path or s3://bucket/key
//	-d string   PostgreSQL DSN
//	-b int      batch size
//	-m string   metrics output file
//	-g string   S3 region
//	-e string   S3 base endpoint
//	-u string   S3 access key
//	-p string   S3 secret key
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-f", "-d", "-b", "-m", "-g", "-e", "-u", "-p"})

	fs := flag.NewFlagSet("ingest", flag.ContinueOnError)

	fs.StringVar(&config.SourcePath, "f", config.SourcePath, "source JSON file or s3://bucket/key")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.IntVar(&config.BatchSize, "b", config.BatchSize, "rows per batch")
	fs.StringVar(&config.MetricsFile, "m", config.MetricsFile, "write metrics to this file")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3AccessKey, "u", config.S3AccessKey, "S3 access key")
	fs.StringVar(&config.S3SecretKey, "p", config.S3SecretKey, "S3 secret key")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
