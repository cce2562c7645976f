package config

import (
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/v2"

	"github.com/smykla-skalski/mariabridge/pkg/logger"
	"github.com/smykla-skalski/mariabridge/pkg/plugin"
)

// CustomDecoderConfig returns a mapstructure decoder config with hooks for
// the manifest's enum strings and the encryption field.
func CustomDecoderConfig() *mapstructure.DecoderConfig {
	return &mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			cipherRefHookFunc(),
			stringToLevelHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
		ErrorUnused:      false,
		TagName:          "koanf",
		Result:           nil, // Set by caller
	}
}

// unmarshalConf decodes into out. koanf leaves Result to the caller when a
// decoder config is supplied.
func unmarshalConf(out any) koanf.UnmarshalConf {
	dc := CustomDecoderConfig()
	dc.Result = out

	return koanf.UnmarshalConf{
		Tag:           "koanf",
		FlatPaths:     false,
		DecoderConfig: dc,
	}
}

// cipherRefHookFunc converts the bool-or-type encryption value.
//
//nolint:ireturn // required by mapstructure.DecodeHookFunc interface
func cipherRefHookFunc() mapstructure.DecodeHookFunc {
	return func(_ reflect.Type, t reflect.Type, data any) (any, error) {
		switch t {
		case reflect.TypeFor[*plugin.CipherRef]():
			return plugin.ParseCipherRef(data)
		case reflect.TypeFor[plugin.CipherRef]():
			ref, err := plugin.ParseCipherRef(data)
			if err != nil {
				return nil, err
			}

			return *ref, nil
		default:
			return data, nil
		}
	}
}

// stringToLevelHookFunc accepts log levels in any case.
//
//nolint:ireturn // required by mapstructure.DecodeHookFunc interface
func stringToLevelHookFunc() mapstructure.DecodeHookFunc {
	return func(_ reflect.Type, t reflect.Type, data any) (any, error) {
		if t != reflect.TypeFor[logger.Level]() {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			return logger.LevelString(v)
		case int64:
			return logger.Level(v), nil
		default:
			return data, nil
		}
	}
}
