/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package viperutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/hyperledger/tomcrypt/bccsp/factory"
	"github.com/hyperledger/tomcrypt/common/flogging"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

var logger = flogging.MustGetLogger("viperutil")

// CfgPathEnvVar names the environment variable holding an extra directory
// searched for configuration files.
const CfgPathEnvVar = "TOMCRYPT_CFG_PATH"

// ErrConfigFileNotFound is returned by ReadInConfig when no configuration
// file was set and none was found in the search paths.
var ErrConfigFileNotFound = errors.New("configuration file not found")

// ConfigPaths returns the directories searched for a configuration file:
// $TOMCRYPT_CFG_PATH when set, the working directory and
// /etc/hyperledger/tomcrypt.
func ConfigPaths() []string {
	var paths []string
	if p := os.Getenv(CfgPathEnvVar); p != "" {
		paths = append(paths, p)
	}
	return append(paths, ".", "/etc/hyperledger/tomcrypt")
}

var configExtensions = []string{"yaml", "yml"}

// ConfigParser reads a YAML configuration file and decodes it into a
// struct, applying environment overrides named after the config name.
type ConfigParser struct {
	configPaths []string
	configName  string
	configFile  string

	config map[string]interface{}
}

func New() *ConfigParser {
	return &ConfigParser{config: map[string]interface{}{}}
}

// AddConfigPaths appends directories to search. When none are added,
// ConfigPaths is used.
func (c *ConfigParser) AddConfigPaths(cfgPaths ...string) {
	c.configPaths = append(c.configPaths, cfgPaths...)
}

// SetConfigName sets the file name stem looked up in the search paths. Its
// upper-cased form prefixes environment overrides.
func (c *ConfigParser) SetConfigName(in string) {
	c.configName = in
}

// SetConfigFile names the configuration file explicitly, bypassing the
// search paths.
func (c *ConfigParser) SetConfigFile(in string) {
	c.configFile = in
}

// ConfigFileUsed returns the file read by ReadInConfig.
func (c *ConfigParser) ConfigFileUsed() string {
	return c.configFile
}

// locate returns the first <name>.<ext> present in the search paths.
func (c *ConfigParser) locate() string {
	paths := c.configPaths
	if len(paths) == 0 {
		paths = ConfigPaths()
	}
	for _, dir := range paths {
		for _, ext := range configExtensions {
			candidate := filepath.Join(dir, c.configName+"."+ext)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
	}
	return ""
}

// ReadInConfig reads the explicit configuration file or the first one found
// in the search paths. ErrConfigFileNotFound is returned when neither
// exists.
func (c *ConfigParser) ReadInConfig() error {
	if c.configFile == "" {
		c.configFile = c.locate()
	}
	if c.configFile == "" {
		return ErrConfigFileNotFound
	}

	logger.Debugf("Reading configuration from %s", c.configFile)
	file, err := os.Open(c.configFile)
	if err != nil {
		return err
	}
	defer file.Close()

	return c.ReadConfig(file)
}

// ReadConfig decodes YAML from in. Empty input is not an error.
func (c *ConfigParser) ReadConfig(in io.Reader) error {
	err := yaml.NewDecoder(in).Decode(c.config)
	if err == io.EOF {
		return nil
	}
	return err
}

// getFromEnv maps a dotted key such as BCCSP.SW.Password to
// <NAME>_BCCSP_SW_PASSWORD and returns that variable.
func (c *ConfigParser) getFromEnv(key string) string {
	if c.configName != "" {
		key = c.configName + "_" + key
	}
	return os.Getenv(strings.ToUpper(strings.ReplaceAll(key, ".", "_")))
}

type envGetter func(key string) string

func getKeysRecursively(base string, getenv envGetter, nodeKeys map[string]interface{}, oType reflect.Type) map[string]interface{} {
	subTypes := map[string]reflect.Type{}

	if st := structType(oType); st != nil {
	outer:
		for i := 0; i < st.NumField(); i++ {
			fieldName := fieldKey(st.Field(i))
			fieldType := st.Field(i).Type
			for key := range nodeKeys {
				if strings.EqualFold(fieldName, key) {
					subTypes[key] = fieldType
					continue outer
				}
			}

			subTypes[fieldName] = fieldType
			nodeKeys[fieldName] = nil
		}
	}

	result := make(map[string]interface{})
	for key, val := range nodeKeys {
		fqKey := base + key

		if override := getenv(fqKey); override != "" {
			val = override
		}

		switch val := val.(type) {
		case map[string]interface{}:
			result[key] = getKeysRecursively(fqKey+".", getenv, val, subTypes[key])

		case map[interface{}]interface{}:
			result[key] = getKeysRecursively(fqKey+".", getenv, toMapStringInterface(val), subTypes[key])

		case nil:
			if override := getenv(fqKey + ".File"); override != "" {
				result[key] = map[string]interface{}{"File": override}
				continue
			}
			// absent sections can still be populated from the environment
			if structType(subTypes[key]) != nil {
				if sub := getKeysRecursively(fqKey+".", getenv, map[string]interface{}{}, subTypes[key]); len(sub) > 0 {
					result[key] = sub
				}
			}

		default:
			result[key] = val
		}
	}
	return result
}

func structType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	return t
}

// fieldKey is the mapstructure name of a struct field.
func fieldKey(f reflect.StructField) string {
	if tag := f.Tag.Get("mapstructure"); tag != "" {
		if name := strings.Split(tag, ",")[0]; name != "" {
			return name
		}
	}
	return f.Name
}

// toMapStringInterface converts a YAML mapping. Mapping keys in a
// configuration file are always strings.
func toMapStringInterface(m map[interface{}]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(m))
	for k, v := range m {
		result[fmt.Sprint(k)] = v
	}
	return result
}

// stringSliceHook turns an environment value such as "[a, b]" into a
// string slice with trimmed elements.
func stringSliceHook(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
	if f.Kind() != reflect.String {
		return data, nil
	}

	raw := data.(string)
	if len(raw) < 2 || raw[0] != '[' || raw[len(raw)-1] != ']' {
		return data, nil
	}
	slice := strings.Split(raw[1:len(raw)-1], ",")
	for i, v := range slice {
		slice[i] = strings.TrimSpace(v)
	}
	return slice, nil
}

// stringFromFileDecodeHook replaces a {File: path} map with the contents of
// the file when the target is a string.
func stringFromFileDecodeHook(f reflect.Kind, t reflect.Kind, data interface{}) (interface{}, error) {
	if f != reflect.Map || t != reflect.String {
		return data, nil
	}
	d, ok := data.(map[string]interface{})
	if !ok {
		return data, nil
	}
	for key, fileName := range d {
		if !strings.EqualFold(key, "File") {
			continue
		}
		if fileName == nil {
			return nil, errors.New("value of File: was nil")
		}
		contents, err := os.ReadFile(fmt.Sprint(fileName))
		if err != nil {
			return nil, errors.Wrap(err, "could not read value from file")
		}
		return string(contents), nil
	}
	return data, nil
}

// bccspHook decodes a BCCSP section over the provider defaults so that a
// partial section keeps the remaining defaults.
func bccspHook(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
	if t != reflect.TypeOf(&factory.FactoryOpts{}) {
		return data, nil
	}

	config := factory.GetDefaultOpts()

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		Result:           config,
		WeaklyTypedInput: true,
		DecodeHook:       stringFromFileDecodeHook,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(data); err != nil {
		return nil, errors.Wrap(err, "could not decode bccsp type")
	}

	return config, nil
}

// EnhancedExactUnmarshal decodes the configuration into output, which must
// point to a struct. Keys without a matching field are an error. Environment
// overrides are applied first, durations are parsed and {File: path} values
// are replaced by the file contents.
func (c *ConfigParser) EnhancedExactUnmarshal(output interface{}) error {
	oType := reflect.TypeOf(output)
	if oType.Kind() != reflect.Ptr {
		return errors.Errorf("supplied output argument must be a pointer to a struct but is not pointer")
	}
	eType := oType.Elem()
	if eType.Kind() != reflect.Struct {
		return errors.Errorf("supplied output argument must be a pointer to a struct, but it is pointer to something else")
	}

	leafKeys := getKeysRecursively("", c.getFromEnv, c.config, eType)

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		Result:           output,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			bccspHook,
			mapstructure.StringToTimeDurationHookFunc(),
			stringSliceHook,
			stringFromFileDecodeHook,
		),
	})
	if err != nil {
		return err
	}
	return decoder.Decode(leafKeys)
}
