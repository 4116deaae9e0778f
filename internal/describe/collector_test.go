package describe

import (
	"testing"

	"github.com/NikitaCOEUR/tabctx/internal/completion"
	"github.com/NikitaCOEUR/tabctx/internal/config"
	"github.com/NikitaCOEUR/tabctx/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const definitions = `
log_level: info
commands:
  give:
    description: Give items
    parameters:
      - name: sender
        type: issuer
      - name: amount
        type: int
        optional: true
        default: "1"
        completion: "@range:1-64"
      - name: color
        type: string
        completion: "@paint:red"
  ping:
    description: Check connectivity
templates:
  branches: "main"
values:
  colors: [red, green, blue]
exec:
  branches: [git, branch]
`

func TestCollect(t *testing.T) {
	defs, err := config.LoadBytes([]byte(definitions), ".yml")
	require.NoError(t, err)
	commands, err := defs.Build(nil)
	require.NoError(t, err)

	data := Collect(CollectParams{
		DefinitionsPath: "/test/commands.yml",
		Definitions:     defs,
		Commands:        commands,
		Engine:          completion.NewEngine(logger.Discard()),
	})

	assert.Equal(t, "/test/commands.yml", data.DefinitionsPath)
	assert.NotEmpty(t, data.Version)
	assert.Equal(t, "info", data.LogLevel)
	assert.Contains(t, data.Handlers, "@range")
	assert.Equal(t, []string{"branches"}, data.Templates)
	assert.Equal(t, map[string]int{"colors": 3}, data.ValueLists)
	assert.Equal(t, map[string]string{"branches": "git branch"}, data.Exec)

	require.Len(t, data.Commands, 2)
	assert.Equal(t, "give", data.Commands[0].Name)
	assert.Equal(t, "ping", data.Commands[1].Name)
	assert.Empty(t, data.Commands[1].Parameters)

	params := data.Commands[0].Parameters
	require.Len(t, params, 3)
	assert.Equal(t, "issuer", params[0].Type)
	assert.True(t, params[0].Known)
	assert.Equal(t, "int", params[1].Type)
	assert.True(t, params[1].Optional)
	assert.Equal(t, "1", params[1].Default)
	assert.True(t, params[1].Known)
	assert.False(t, params[2].Known)
}

func TestCollect_NoEngine(t *testing.T) {
	data := Collect(CollectParams{DefinitionsPath: "x.yml"})

	assert.Empty(t, data.Handlers)
	assert.Empty(t, data.Commands)
	assert.Empty(t, data.LogLevel)
}
