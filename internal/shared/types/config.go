package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	Seed       int64    `json:"seed" yaml:"seed" toml:"seed"`
	StartDate  string   `json:"start_date" yaml:"start_date" toml:"start_date"`
	Days       int      `json:"days" yaml:"days" toml:"days"`
	Products   []string `json:"products" yaml:"products" toml:"products"`
	ReportType []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir        string   `json:"dir" yaml:"dir" toml:"dir"`
	Addr       string   `json:"addr" yaml:"addr" toml:"addr"`
	S3Bucket   string   `json:"s3_bucket" yaml:"s3_bucket" toml:"s3_bucket"`
	S3Prefix   string   `json:"s3_prefix" yaml:"s3_prefix" toml:"s3_prefix"`
	AWSProfile string   `json:"aws_profile" yaml:"aws_profile" toml:"aws_profile"`
}
