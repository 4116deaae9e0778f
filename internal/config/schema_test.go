package config

import (
	"encoding/json"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSchemaJSON(t *testing.T) {
	schema := GetSchemaJSON()
	assert.True(t, strings.HasPrefix(strings.TrimSpace(schema), "{"))
	assert.Contains(t, schema, `"commands"`)
}

func TestValidateWithSchema_ValidYAML(t *testing.T) {
	result, err := ValidateWithSchema("commands.yml", []byte(sampleYAML))
	require.NoError(t, err)
	assert.True(t, result.Valid, "%v", result.Errors)
	assert.Empty(t, result.Errors)
}

func TestValidateWithSchema_Empty(t *testing.T) {
	result, err := ValidateWithSchema("commands.yaml", []byte(""))
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestValidateWithSchema_InvalidCommandName(t *testing.T) {
	content := []byte(`
commands:
  9lives:
    parameters: []
`)
	result, err := ValidateWithSchema("commands.yml", content)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.Errors)
}

func TestValidateWithSchema_UnknownType(t *testing.T) {
	content := []byte(`
commands:
  give:
    parameters:
      - name: when
        type: date
`)
	result, err := ValidateWithSchema("commands.yml", content)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.Errors)
}

func TestValidateWithSchema_MissingName(t *testing.T) {
	content := []byte(`{"commands": {"give": {"parameters": [{"type": "int"}]}}}`)
	result, err := ValidateWithSchema("commands.json", content)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0].Message, "name")
}

func TestValidateWithSchema_UnknownTopLevelKey(t *testing.T) {
	result, err := ValidateWithSchema("commands.yml", []byte("aliases:\n  ll: ls\n"))
	require.NoError(t, err)
	assert.False(t, result.Valid)
}

func TestValidateWithSchema_TOML(t *testing.T) {
	content := []byte(`
[commands.ping]
description = "Ping a host"

[[commands.ping.parameters]]
name = "host"
type = "string"
`)
	result, err := ValidateWithSchema("commands.toml", content)
	require.NoError(t, err)
	assert.True(t, result.Valid, "%v", result.Errors)
}

func TestValidateWithSchema_SyntaxErrors(t *testing.T) {
	result, err := ValidateWithSchema("commands.json", []byte("{"))
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "syntax", result.Errors[0].Field)

	result, err = ValidateWithSchema("commands.yml", []byte("a: [b"))
	require.NoError(t, err)
	assert.False(t, result.Valid)

	result, err = ValidateWithSchema("commands.toml", []byte("[[["))
	require.NoError(t, err)
	assert.False(t, result.Valid)
}

func TestValidateWithSchema_UnsupportedFormat(t *testing.T) {
	_, err := ValidateWithSchema("commands.ini", []byte(""))
	assert.Error(t, err)
}

// koanfKeys lists the koanf tags of a struct type, sorted
func koanfKeys(t reflect.Type) []string {
	var keys []string
	for i := range t.NumField() {
		if tag := t.Field(i).Tag.Get("koanf"); tag != "" {
			keys = append(keys, tag)
		}
	}
	sort.Strings(keys)
	return keys
}

// propertyKeys lists the property names of a schema object, sorted
func propertyKeys(t *testing.T, node map[string]interface{}) []string {
	t.Helper()
	props, ok := node["properties"].(map[string]interface{})
	require.True(t, ok, "schema node has no properties")
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func TestSchemaMatchesDefinitions(t *testing.T) {
	var root map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(GetSchemaJSON()), &root))
	assert.Equal(t, koanfKeys(reflect.TypeFor[Definitions]()), propertyKeys(t, root))

	commands := root["properties"].(map[string]interface{})["commands"].(map[string]interface{})
	command := commands["additionalProperties"].(map[string]interface{})
	assert.Equal(t, koanfKeys(reflect.TypeFor[CommandDef]()), propertyKeys(t, command))

	params := propertyKeys(t, command)
	require.Contains(t, params, "parameters")
	parameter := command["properties"].(map[string]interface{})["parameters"].(map[string]interface{})["items"].(map[string]interface{})
	assert.Equal(t, koanfKeys(reflect.TypeFor[ParameterDef]()), propertyKeys(t, parameter))

	typeEnum := parameter["properties"].(map[string]interface{})["type"].(map[string]interface{})["enum"].([]interface{})
	var declared []string
	for _, v := range typeEnum {
		declared = append(declared, v.(string))
	}
	var known []string
	for name := range ParameterTypes {
		known = append(known, name)
	}
	assert.ElementsMatch(t, known, declared)
}
