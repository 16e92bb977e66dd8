package config

var defaults *Config

func init() {
	yaml := []byte(`version: v1

# Files treated as notebooks, relative to the project root.
notebooks:
  include:
    - "**.md"
  ignore:
    - "node_modules/**"
    - ".git/**"

server:
  address: localhost:7863
  # How long decoded notebooks are kept in the service cache.
  cache_ttl: 5m
  max_body_bytes: 4194304

log:
  enabled: false
  path: "/tmp/webnb.log"
  verbose: false
  max_size_mb: 10
  max_backups: 5

format:
  assign_ids: false
`)

	// ParseYAML starts from Default, which is empty at this point.
	defaults = &Config{}
	cfg, err := ParseYAML(yaml)
	if err != nil {
		panic(err)
	}
	defaults = cfg
}

// Default returns a copy of the built-in configuration.
func Default() *Config {
	return defaults.clone()
}
