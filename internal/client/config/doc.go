// Package config loads runtime configuration for the racfadmin CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-s string     remote user service base URL
//	-t duration   health probe timeout (default 1.5s)
//	-r duration   timeout for other remote calls
//	-i duration   online status check interval
//	-d string     local SQLite database path
//	-l string     log level
//	-b string     S3 bucket for export
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:4000/api",
//	  "probe_timeout": "1500ms",
//	  "request_timeout": "10s",
//	  "status_interval": "5s",
//	  "database_path": "racfadmin.db",
//	  "s3_bucket": "racf-snapshots",
//	  "s3_region": "eu-west-1"
//	}
package config
