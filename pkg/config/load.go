package config

import (
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/veneer/pkg/errors"
	"github.com/arthur-debert/veneer/pkg/logging"
)

const (
	// FileName is the configuration file searched in the working
	// directory and the XDG config directory.
	FileName = "veneer.toml"

	// EnvPrefix is the environment namespace for overrides. A double
	// underscore separates sections: VENEER_TEMPLATES__DEV_RELOAD maps
	// to templates.dev_reload.
	EnvPrefix = "VENEER_"
)

// LoadOption adjusts the Load pipeline.
type LoadOption func(*loadConfig)

type loadConfig struct {
	file   string
	prefix string
}

// WithFile pins the configuration file instead of searching the
// default locations. The file must exist.
func WithFile(path string) LoadOption {
	return func(lc *loadConfig) {
		lc.file = path
	}
}

// WithEnvPrefix replaces the VENEER_ environment namespace, mainly so
// tests can isolate themselves from the caller's environment.
func WithEnvPrefix(prefix string) LoadOption {
	return func(lc *loadConfig) {
		lc.prefix = prefix
	}
}

// Load builds Settings from defaults, then the configuration file,
// then environment overrides.
func Load(opts ...LoadOption) (*Settings, error) {
	lc := loadConfig{prefix: EnvPrefix}
	for _, opt := range opts {
		opt(&lc)
	}
	log := logging.GetLogger("config")

	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultMap(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "loading configuration defaults")
	}

	path := lc.file
	if path == "" {
		path = findConfigFile()
	} else if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "configuration file %s", path)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "parsing %s", path)
		}
		log.Debug().Str("path", path).Msg("loaded configuration file")
	}

	if err := k.Load(env.Provider(lc.prefix, ".", envKey(lc.prefix)), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "loading environment overrides")
	}

	var s Settings
	conf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &s,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &s, conf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "unmarshalling configuration")
	}
	return &s, nil
}

// findConfigFile returns the first configuration file present among
// the default locations, or "".
func findConfigFile() string {
	candidates := []string{
		"." + FileName,
		FileName,
		ConfigFile(),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// envKey maps an environment variable name to a koanf key:
// PREFIX_SECTION__SOME_KEY becomes section.some_key.
func envKey(prefix string) func(string) string {
	return func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, prefix))
		return strings.ReplaceAll(key, "__", ".")
	}
}
