package config

import "time"

type Config struct {
	IsDevelopment bool    `mapstructure:"development"`
	LogLevel      string  `mapstructure:"log_level"`
	Feed          Feed    `mapstructure:"feed"`
	Cipher        Cipher  `mapstructure:"cipher"`
	Vault         Vault   `mapstructure:"vault"`
	S3            S3      `mapstructure:"s3"`
	Archive       Archive `mapstructure:"archive"`
}

type Feed struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type Cipher struct {
	SaltHex   string `mapstructure:"salt_hex"`
	IVHex     string `mapstructure:"iv_hex"`
	PublicKey string `mapstructure:"public_key"`
}

type Vault struct {
	URL   string `mapstructure:"url"`
	Token string `mapstructure:"token"`
	Mount string `mapstructure:"mount"`
	Path  string `mapstructure:"path"`
}

type S3 struct {
	AccessKeyId     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	DefaultRegion   string `mapstructure:"default_region"`
	DefaultBucket   string `mapstructure:"default_bucket"`
	URL             string `mapstructure:"url"`
}

type Archive struct {
	Enabled bool   `mapstructure:"enabled"`
	Prefix  string `mapstructure:"prefix"`
	// base64 encoded 256-bit SSE-C key, see cmd/keygen
	SecretKey string `mapstructure:"secret_key"`
}

// UsesVault reports whether cipher constants should be read from Vault.
func (c Config) UsesVault() bool {
	return c.Vault.URL != "" && c.Vault.Path != ""
}
