package configs

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// environment variables overriding config files.
const (
	EnvStorageType = "HBNB_TYPE_STORAGE"
	EnvEnv         = "HBNB_ENV"
	EnvFile        = "HBNB_FILE_PATH"
	EnvDBUser      = "HBNB_DB_USER"
	EnvDBPassword  = "HBNB_DB_PWD"
	EnvDBHost      = "HBNB_DB_HOST"
	EnvDBPort      = "HBNB_DB_PORT"
	EnvDBName      = "HBNB_DB_NAME"
)

// load config from a file.
//
// args:
//   - filepath: filepath refers a config file. When it is empty, defaults are used.
//
// returns *Config, error:
//
//	Values not in the file are defaults.
//	Environment variables are NOT applied. To do so, use `Load`.
func LoadFile(filepath string) (*Config, error) {
	if filepath == "" {
		return Default(), nil
	}
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}
	return Unmarshal(content)
}

// Load reads config from a file, and overrides it with environment variables.
func Load(filepath string) (*Config, error) {
	conf, err := LoadFile(filepath)
	if err != nil {
		return nil, err
	}
	if err := ApplyEnv(conf, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func Unmarshal(conf []byte) (*Config, error) {
	out := Default()
	if err := yaml.Unmarshal(conf, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ApplyEnv overrides conf with environment variables found by lookup.
func ApplyEnv(conf *Config, lookup func(string) (string, bool)) error {
	set := func(name string, dest *string) {
		if v, ok := lookup(name); ok {
			*dest = v
		}
	}
	set(EnvStorageType, &conf.Storage.Type)
	set(EnvEnv, &conf.Storage.Env)
	set(EnvFile, &conf.Storage.File)
	set(EnvDBUser, &conf.Storage.Database.User)
	set(EnvDBPassword, &conf.Storage.Database.Password)
	set(EnvDBHost, &conf.Storage.Database.Host)
	set(EnvDBName, &conf.Storage.Database.Name)

	if v, ok := lookup(EnvDBPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.Join(
				fmt.Errorf("%w: %s is not a number: %q", ErrInvalidConfig, EnvDBPort, v),
				err,
			)
		}
		conf.Storage.Database.Port = port
	}
	return nil
}
