/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package factory

import (
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// ReadConfig decodes the provider configuration found under key. Missing
// sections yield the default options.
func ReadConfig(v *viper.Viper, key string) (*FactoryOpts, error) {
	if !v.IsSet(key) {
		return GetDefaultOpts(), nil
	}

	raw := v.Get(key)
	m, ok := stringKeys(raw).(map[string]interface{})
	if !ok {
		return nil, errors.Errorf("configuration section %s is not a map but %T", key, raw)
	}

	opts, err := DecodeOpts(m)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed decoding configuration section %s", key)
	}
	return opts, nil
}

// DecodeOpts decodes a generic map, as produced by YAML or JSON parsers, into
// FactoryOpts. Key matching is case insensitive; unknown keys are rejected.
func DecodeOpts(m map[string]interface{}) (*FactoryOpts, error) {
	opts := &FactoryOpts{}
	config := &mapstructure.DecoderConfig{
		ErrorUnused:      true,
		Result:           opts,
		WeaklyTypedInput: true,
	}

	decoder, err := mapstructure.NewDecoder(config)
	if err != nil {
		return nil, errors.Wrap(err, "failed creating decoder")
	}

	if err := decoder.Decode(stringKeys(m)); err != nil {
		return nil, errors.Wrap(err, "failed decoding provider options")
	}

	if opts.Default == "" {
		opts.Default = SoftwareBasedFactoryName
	}
	if opts.SW == nil {
		opts.SW = GetDefaultOpts().SW
	}
	return opts, nil
}

// stringKeys converts the map[interface{}]interface{} values produced by
// yaml.v2 into map[string]interface{} so mapstructure can decode them.
func stringKeys(in interface{}) interface{} {
	switch v := in.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, val := range v {
			if ks, ok := k.(string); ok {
				out[ks] = stringKeys(val)
			}
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, val := range v {
			out[k] = stringKeys(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, val := range v {
			out[i] = stringKeys(val)
		}
		return out
	default:
		return in
	}
}
