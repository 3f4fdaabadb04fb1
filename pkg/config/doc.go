// Package config loads typed configuration from the environment and from
// YAML files.
//
// Load parses environment variables into a struct annotated with
// github.com/caarlos0/env/v11 tags, after loading a .env file (if present)
// with github.com/joho/godotenv. Each configuration type is parsed once and
// cached for the lifetime of the process.
//
//	type Config struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// LoadFile decodes a YAML document (gopkg.in/yaml.v3) on top of an already
// populated struct, so values missing from the file keep their env or default
// values. It is used for notification container definitions:
//
//	if cfg.ContainersFile != "" {
//		err = config.LoadFile(cfg.ContainersFile, &cfg)
//	}
package config
