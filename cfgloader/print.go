package cfgloader

import (
	"log/slog"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

func printConfig(config any) {
	out, err := maskedYAML(config)
	if err != nil {
		slog.Error("[cfgloader]: failed to marshal config", "error", err.Error())
		return
	}
	slog.Info("[cfgloader]: loaded config:\n" + out)
}

// maskedYAML renders config as YAML with every `mask:"true"` field starred out.
func maskedYAML(config any) (string, error) {
	out, err := yaml.Marshal(maskValue(reflect.ValueOf(config)).Interface())
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func maskValue(val reflect.Value) reflect.Value {
	if !val.IsValid() {
		return val
	}

	switch val.Kind() { //nolint:exhaustive // only kinds that can hold masked fields
	case reflect.Ptr:
		if val.IsNil() {
			return val
		}
		ptr := reflect.New(val.Elem().Type())
		ptr.Elem().Set(maskValue(val.Elem()))
		return ptr

	case reflect.Struct:
		masked := reflect.New(val.Type()).Elem()
		for i := range val.NumField() {
			field := masked.Field(i)
			if !field.CanSet() {
				continue
			}
			if val.Type().Field(i).Tag.Get("mask") == "true" {
				field.Set(maskField(val.Field(i)))
			} else {
				field.Set(maskValue(val.Field(i)))
			}
		}
		return masked

	default:
		return val
	}
}

func maskField(val reflect.Value) reflect.Value {
	if val.Kind() == reflect.String {
		return reflect.ValueOf(strings.Repeat("*", len(val.String()))).Convert(val.Type())
	}
	return reflect.Zero(val.Type())
}
