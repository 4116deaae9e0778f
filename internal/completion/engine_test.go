package completion

import (
	"bytes"
	"errors"
	"testing"

	"github.com/NikitaCOEUR/tabctx/internal/command"
	"github.com/NikitaCOEUR/tabctx/internal/derrors"
	"github.com/NikitaCOEUR/tabctx/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Filter(t *testing.T) {
	engine := &Engine{}

	suggestions := []Suggestion{
		{Value: "apply", Description: "Apply a configuration"},
		{Value: "Annotate", Description: "Update annotations"},
		{Value: "get", Description: "Get resources"},
	}

	assert.Len(t, engine.Filter(suggestions, ""), 3)

	filtered := engine.Filter(suggestions, "ap")
	require.Len(t, filtered, 1)
	assert.Equal(t, "apply", filtered[0].Value)

	assert.Len(t, engine.Filter(suggestions, "a"), 2)
	assert.Len(t, engine.Filter(suggestions, "AN"), 1)
	assert.Empty(t, engine.Filter(suggestions, "xyz"))
}

func TestNewEngine(t *testing.T) {
	engine := NewEngine(nil)

	require.NotNil(t, engine)
	assert.Equal(t, []string{"@above", "@boolean", "@nothing", "@range"}, engine.IDs())
	assert.True(t, engine.Has("@RANGE"))
	assert.False(t, engine.Has("@players"))
}

func TestEngine_Register(t *testing.T) {
	engine := NewEngine(nil)

	require.NoError(t, engine.Register("@Players", func(_ *Context) ([]Suggestion, error) {
		return suggestionsOf("alice", "bob"), nil
	}))
	assert.True(t, engine.Has("@players"))

	err := engine.Register("@players", NothingHandler)
	require.Error(t, err)
	var exists *derrors.AlreadyExistsError
	assert.True(t, errors.As(err, &exists))

	err = engine.Register("players", NothingHandler)
	require.Error(t, err)
	var invalid *derrors.ValidationError
	assert.True(t, errors.As(err, &invalid))
}

func TestParseSpec(t *testing.T) {
	tests := []struct {
		spec   string
		id     string
		config *string
	}{
		{spec: "@range:1-10", id: "@range", config: strPtr("1-10")},
		{spec: "@Range", id: "@range", config: nil},
		{spec: "@template:urls,scheme=https://", id: "@template", config: strPtr("urls,scheme=https://")},
		{spec: "@range:", id: "@range", config: strPtr("")},
		{spec: "red|green", id: "", config: nil},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			id, config := ParseSpec(tt.spec)
			assert.Equal(t, tt.id, id)
			assert.Equal(t, tt.config, config)
		})
	}
}

func TestEngine_Complete_Literal(t *testing.T) {
	engine := NewEngine(nil)

	result, err := engine.Complete(Request{Spec: "red|green|grey", Input: "gr"})
	require.NoError(t, err)
	assert.Equal(t, SourceLiteral, result.Source)
	assert.Equal(t, suggestionsOf("green", "grey"), result.Suggestions)
}

func TestEngine_Complete_EmptySpec(t *testing.T) {
	result, err := NewEngine(nil).Complete(Request{})
	require.NoError(t, err)
	assert.Equal(t, SourceNone, result.Source)
	assert.Empty(t, result.Suggestions)
}

func TestEngine_Complete_UnknownHandler(t *testing.T) {
	_, err := NewEngine(nil).Complete(Request{Spec: "@players"})
	require.Error(t, err)
	var nf *derrors.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "@players", nf.Resource)
}

func TestEngine_Complete_PassesConfigToContext(t *testing.T) {
	engine := NewEngine(nil)

	var seen *Context
	require.NoError(t, engine.Register("@spy", func(ctx *Context) ([]Suggestion, error) {
		seen = ctx
		return nil, nil
	}))

	_, err := engine.Complete(Request{
		Spec:  "@spy:Mode=fast,verbose",
		Input: "x",
		Args:  []string{"a", "b"},
	})
	require.NoError(t, err)
	require.NotNil(t, seen)

	mode, ok := seen.Config("mode")
	assert.True(t, ok)
	assert.Equal(t, "fast", mode)
	assert.True(t, seen.HasConfig("verbose"))
	primary, _ := seen.PrimaryConfig()
	assert.Equal(t, "Mode=fast", primary)
	assert.Equal(t, "x", seen.Input())
	assert.Equal(t, []string{"a", "b"}, seen.Args())

	_, err = engine.Complete(Request{Spec: "@spy"})
	require.NoError(t, err)
	_, ok = seen.PrimaryConfig()
	assert.False(t, ok)
}

func TestEngine_Complete_LookupFailureDegrades(t *testing.T) {
	buf := &bytes.Buffer{}
	engine := NewEngine(logger.New("warn", buf))

	cmd := newStubCommand(command.Param[int]("base"))
	cmd.err = errors.New("boom")

	result, err := engine.Complete(Request{Command: cmd, Spec: "@above"})
	require.NoError(t, err)
	assert.Equal(t, SourceDegraded, result.Source)
	assert.Empty(t, result.Suggestions)
	assert.Contains(t, buf.String(), "Completion degraded to empty result")
	assert.Contains(t, buf.String(), "Completion context lookup failed")
}

func TestEngine_Complete_ProgrammerErrorsAreReturned(t *testing.T) {
	engine := NewEngine(nil)
	cmd := newStubCommand(command.Param[string]("target"))

	_, err := engine.Complete(Request{Command: cmd, Spec: "@above"})
	require.Error(t, err)
	assert.True(t, derrors.IsInvalidState(err))

	_, err = engine.Complete(Request{Command: cmd, Spec: "@above:param=3"})
	require.Error(t, err)
	assert.True(t, derrors.IsPrecondition(err))

	_, err = engine.Complete(Request{Command: cmd, Spec: "@above:param=0"})
	require.Error(t, err)
	assert.True(t, derrors.IsPrecondition(err))
}

func TestParameterFor(t *testing.T) {
	cmd := command.NewRegistered("give", "", nil,
		command.Param[command.Issuer]("sender"),
		command.Param[string]("target"),
		command.Param[int]("amount"),
		command.Param[[]string]("note"),
	)

	tests := []struct {
		pos  int
		want string
	}{
		{0, "target"},
		{1, "amount"},
		{2, "note"},
		{5, "note"},
	}
	for _, tt := range tests {
		param, ok := ParameterFor(cmd, tt.pos)
		require.True(t, ok)
		assert.Equal(t, tt.want, param.Name)
	}

	short := command.NewRegistered("ping", "", nil, command.Param[string]("host"))
	_, ok := ParameterFor(short, 1)
	assert.False(t, ok)
}

func TestEngine_CompleteCommand(t *testing.T) {
	engine := NewEngine(nil)
	cmd := command.NewRegistered("give", "", nil,
		command.Param[command.Issuer]("sender"),
		command.Param[string]("target").WithCompletion("alice|bob|carol"),
		command.Param[int]("amount").WithCompletion("@range:1-3"),
		command.Param[int]("limit").WithCompletion("@above:count=2"),
	)
	issuer := &stubIssuer{name: "alice"}

	result, err := engine.CompleteCommand(cmd, issuer, nil)
	require.NoError(t, err)
	assert.Equal(t, suggestionsOf("alice", "bob", "carol"), result.Suggestions)

	result, err = engine.CompleteCommand(cmd, issuer, []string{"b"})
	require.NoError(t, err)
	assert.Equal(t, suggestionsOf("bob"), result.Suggestions)

	result, err = engine.CompleteCommand(cmd, issuer, []string{"bob", ""})
	require.NoError(t, err)
	assert.Equal(t, "@range", result.Source)
	assert.Equal(t, suggestionsOf("1", "2", "3"), result.Suggestions)

	result, err = engine.CompleteCommand(cmd, issuer, []string{"bob", "40", ""})
	require.NoError(t, err)
	assert.Equal(t, suggestionsOf("41", "42"), result.Suggestions)

	result, err = engine.CompleteCommand(cmd, issuer, []string{"bob", "40", "41", ""})
	require.NoError(t, err)
	assert.Equal(t, SourceNone, result.Source)
}
