package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/legalvault/internal/flagx"
	"github.com/dmitrijs2005/legalvault/internal/timex"
)

// JsonConfig mirrors Config for JSON unmarshalling. Interval fields use
// timex.Duration so both "5m" strings and integer nanoseconds parse. Only
// keys present in the file overlay the running config.
type JsonConfig struct {
	EndpointAddrHTTP            *string         `json:"endpoint_addr_http"`
	DatabaseDSN                 *string         `json:"database_dsn"`
	SecretKey                   *string         `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`

	S3User         *string `json:"s3_user"`
	S3Password     *string `json:"s3_password"`
	S3Bucket       *string `json:"s3_bucket"`
	S3Region       *string `json:"s3_region"`
	S3BaseEndpoint *string `json:"s3_base_endpoint"`

	SMTPHost     *string `json:"smtp_host"`
	SMTPPort     *int    `json:"smtp_port"`
	SMTPUser     *string `json:"smtp_user"`
	SMTPPassword *string `json:"smtp_password"`
	SMTPFrom     *string `json:"smtp_from"`

	SchedulerInterval *timex.Duration `json:"scheduler_interval"`
	SchedulerWindow   *timex.Duration `json:"scheduler_window"`
	NotifyTimeout     *timex.Duration `json:"notify_timeout"`

	MaxAnalyzeBytes *int64 `json:"max_analyze_bytes"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags into the provided Config. Missing flag means no file is
// loaded; an unreadable or invalid file panics.
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

	overlayString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	overlayString(&config.DatabaseDSN, c.DatabaseDSN)
	overlayString(&config.SecretKey, c.SecretKey)
	overlayDuration(&config.AccessTokenValidityDuration, c.AccessTokenValidityDuration)

	overlayString(&config.S3User, c.S3User)
	overlayString(&config.S3Password, c.S3Password)
	overlayString(&config.S3Bucket, c.S3Bucket)
	overlayString(&config.S3Region, c.S3Region)
	overlayString(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	overlayString(&config.SMTPHost, c.SMTPHost)
	overlayString(&config.SMTPUser, c.SMTPUser)
	overlayString(&config.SMTPPassword, c.SMTPPassword)
	overlayString(&config.SMTPFrom, c.SMTPFrom)
	if c.SMTPPort != nil {
		config.SMTPPort = *c.SMTPPort
	}

	overlayDuration(&config.SchedulerInterval, c.SchedulerInterval)
	overlayDuration(&config.SchedulerWindow, c.SchedulerWindow)
	overlayDuration(&config.NotifyTimeout, c.NotifyTimeout)

	if c.MaxAnalyzeBytes != nil {
		config.MaxAnalyzeBytes = *c.MaxAnalyzeBytes
	}
}

func overlayString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func overlayDuration(dst *time.Duration, src *timex.Duration) {
	if src != nil {
		*dst = src.Duration
	}
}
