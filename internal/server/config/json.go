package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmorenoweb/portal/internal/flagx"
	"github.com/dmorenoweb/portal/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify durations either as strings like "168h"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config (which uses time.Duration).
type JsonConfig struct {
	Env                    string         `json:"env"`
	EndpointAddrHTTP       string         `json:"endpoint_addr_http"`
	DatabaseDSN            string         `json:"database_dsn"`
	SecretKey              string         `json:"secret_key"`
	AuthTokenTTL           timex.Duration `json:"auth_token_ttl"`
	LoginCookieSameSite    string         `json:"login_cookie_same_site"`
	RegisterCookieSameSite string         `json:"register_cookie_same_site"`
	LogoutCookieSameSite   string         `json:"logout_cookie_same_site"`
	ReadTimeout            timex.Duration `json:"read_timeout"`
	WriteTimeout           timex.Duration `json:"write_timeout"`
	IdleTimeout            timex.Duration `json:"idle_timeout"`
	S3RootUser             string         `json:"s3_root_user"`
	S3RootPassword         string         `json:"s3_root_password"`
	S3Bucket               string         `json:"s3_bucket"`
	S3Region               string         `json:"s3_region"`
	S3BaseEndpoint         string         `json:"s3_base_endpoint"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Only fields present in the file override the current values. Read or
// unmarshal errors panic; configuration is resolved before the server starts
// serving, so there is nothing sensible to degrade to.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.Env != "" {
		config.Env = c.Env
	}
	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AuthTokenTTL.Duration != 0 {
		config.AuthTokenTTL = time.Duration(c.AuthTokenTTL.Duration)
	}
	if c.LoginCookieSameSite != "" {
		config.LoginCookieSameSite = c.LoginCookieSameSite
	}
	if c.RegisterCookieSameSite != "" {
		config.RegisterCookieSameSite = c.RegisterCookieSameSite
	}
	if c.LogoutCookieSameSite != "" {
		config.LogoutCookieSameSite = c.LogoutCookieSameSite
	}
	if c.ReadTimeout.Duration != 0 {
		config.ReadTimeout = time.Duration(c.ReadTimeout.Duration)
	}
	if c.WriteTimeout.Duration != 0 {
		config.WriteTimeout = time.Duration(c.WriteTimeout.Duration)
	}
	if c.IdleTimeout.Duration != 0 {
		config.IdleTimeout = time.Duration(c.IdleTimeout.Duration)
	}
	if c.S3RootUser != "" {
		config.S3RootUser = c.S3RootUser
	}
	if c.S3RootPassword != "" {
		config.S3RootPassword = c.S3RootPassword
	}
	if c.S3Bucket != "" {
		config.S3Bucket = c.S3Bucket
	}
	if c.S3Region != "" {
		config.S3Region = c.S3Region
	}
	if c.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = c.S3BaseEndpoint
	}
}
