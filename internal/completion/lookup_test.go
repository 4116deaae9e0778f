package completion

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/NikitaCOEUR/tabctx/internal/command"
	"github.com/NikitaCOEUR/tabctx/internal/derrors"
	"github.com/NikitaCOEUR/tabctx/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubIssuer struct {
	name string
}

func (i *stubIssuer) Name() string { return i.name }
func (i *stubIssuer) HasPermission(_ string) bool { return true }

type resolveCall struct {
	args  []string
	limit int
}

// stubCommand records every ResolveContexts call and answers with a fixed result.
type stubCommand struct {
	params   []command.Parameter
	resolved map[string]any
	err      error
	calls    []resolveCall
}

func newStubCommand(params ...command.Parameter) *stubCommand {
	return &stubCommand{params: params}
}

func (c *stubCommand) Name() string { return "stub" }
func (c *stubCommand) Parameters() []command.Parameter { return c.params }
func (c *stubCommand) ResolveContexts(_ command.Issuer, args []string, limit int) (map[string]any, error) {
	c.calls = append(c.calls, resolveCall{args: append([]string{}, args...), limit: limit})
	return c.resolved, c.err
}

type teamName string

type named interface {
	Name() string
}

func giveCommand() *stubCommand {
	cmd := newStubCommand(
		command.Param[command.Issuer]("sender"),
		command.Param[string]("target"),
		command.Param[int]("amount"),
		command.Param[teamName]("team"),
	)
	cmd.resolved = map[string]any{
		"sender": &stubIssuer{name: "alice"},
		"target": "bob",
		"amount": 12,
		"team":   teamName("red"),
	}
	return cmd
}

func TestValue_ByType(t *testing.T) {
	cmd := giveCommand()
	ctx := NewContext(ContextParams{Command: cmd, Args: []string{"bob", "12", "red"}})

	amount, err := Value[int](ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, amount)

	team, err := Value[teamName](ctx)
	require.NoError(t, err)
	assert.Equal(t, teamName("red"), team)

	target, err := Value[string](ctx)
	require.NoError(t, err)
	assert.Equal(t, "bob", target)
}

func TestValue_FirstAssignableInDeclarationOrder(t *testing.T) {
	cmd := giveCommand()
	ctx := NewContext(ContextParams{Command: cmd})

	// sender (an Issuer) is declared before anything else with a Name method
	who, err := Value[named](ctx)
	require.NoError(t, err)
	require.NotNil(t, who)
	assert.Equal(t, "alice", who.Name())

	// every type satisfies any, so the first parameter wins
	first, err := Value[any](ctx)
	require.NoError(t, err)
	assert.Equal(t, cmd.resolved["sender"], first)
}

func TestValue_NoSatisfyingParameter(t *testing.T) {
	cmd := giveCommand()
	ctx := NewContext(ContextParams{Command: cmd})

	_, err := Value[float64](ctx)
	require.Error(t, err)
	assert.True(t, derrors.IsInvalidState(err))
	assert.Contains(t, err.Error(), "float64")
	assert.Empty(t, cmd.calls, "resolution must not run when no parameter matches")
}

func TestValueAt_ExplicitIndex(t *testing.T) {
	cmd := giveCommand()
	ctx := NewContext(ContextParams{Command: cmd})

	amount, err := ValueAt[int](ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 12, amount)

	target, err := ValueAt[string](ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "bob", target)
}

func TestValueAt_IndexOutOfBounds(t *testing.T) {
	cmd := giveCommand()
	ctx := NewContext(ContextParams{Command: cmd})

	for _, idx := range []int{4, 5, -1} {
		t.Run(fmt.Sprint(idx), func(t *testing.T) {
			_, err := ValueAt[int](ctx, idx)
			require.Error(t, err)
			assert.True(t, derrors.IsPrecondition(err))

			var pre *derrors.PreconditionError
			require.True(t, errors.As(err, &pre))
			assert.Equal(t, idx, pre.Index)
		})
	}
	assert.Empty(t, cmd.calls)
}

func TestValueAt_IncompatibleType(t *testing.T) {
	cmd := giveCommand()
	ctx := NewContext(ContextParams{Command: cmd})

	_, err := ValueAt[int](ctx, 1)
	require.Error(t, err)
	assert.True(t, derrors.IsPrecondition(err))
	assert.Contains(t, err.Error(), "target:string can not satisfy int")

	// a named string type is not assignable to string
	_, err = ValueAt[string](ctx, 3)
	require.Error(t, err)
	assert.True(t, derrors.IsPrecondition(err))
	assert.Empty(t, cmd.calls)
}

func TestLookup_UsesCurrentArgs(t *testing.T) {
	cmd := giveCommand()
	ctx := NewContext(ContextParams{Command: cmd, Args: []string{"bob", "12", "red"}})

	_, err := Value[int](ctx)
	require.NoError(t, err)

	_, ok := ctx.ShiftArg()
	require.True(t, ok)
	_, err = Value[int](ctx)
	require.NoError(t, err)

	ctx.SetArgs([]string{"a", "b", "c", "d", "e"})
	_, err = Value[int](ctx)
	require.NoError(t, err)

	require.Len(t, cmd.calls, 3)
	assert.Equal(t, 3, cmd.calls[0].limit)
	assert.Equal(t, []string{"bob", "12", "red"}, cmd.calls[0].args)
	assert.Equal(t, 2, cmd.calls[1].limit)
	assert.Equal(t, []string{"12", "red"}, cmd.calls[1].args)
	assert.Equal(t, 5, cmd.calls[2].limit)
}

func TestLookup_FailureIsLoggedAndReturned(t *testing.T) {
	tests := []struct {
		name     string
		resolved map[string]any
		err      error
		idx      int
	}{
		{name: "nil result", resolved: nil, idx: 1},
		{name: "empty result", resolved: map[string]any{}, idx: 0},
		{name: "index beyond resolved size", resolved: map[string]any{"target": "bob"}, idx: 2},
		{name: "bridge error", resolved: map[string]any{"target": "bob"}, err: errors.New("bad token"), idx: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			cmd := newStubCommand(
				command.Param[string]("target"),
				command.Param[string]("note"),
				command.Param[int]("amount"),
			)
			cmd.resolved = tt.resolved
			cmd.err = tt.err
			ctx := NewContext(ContextParams{
				Command: cmd,
				Args:    []string{"bob"},
				Logger:  logger.New("error", buf),
			})

			_, err := ValueAt[any](ctx, tt.idx)
			require.Error(t, err)
			assert.True(t, derrors.IsLookup(err))
			assert.False(t, derrors.IsProgrammerError(err))

			var lookupErr *derrors.LookupError
			require.True(t, errors.As(err, &lookupErr))
			assert.Equal(t, tt.idx, lookupErr.Index)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			}

			out := buf.String()
			assert.Contains(t, out, "Completion context lookup failed")
			assert.Contains(t, out, fmt.Sprintf("param_idx=%d", tt.idx))
			assert.Contains(t, out, "resolved=")
			assert.Contains(t, out, "size=")
		})
	}
}

func TestLookup_IndexEqualToResolvedSizeSucceeds(t *testing.T) {
	// only an index strictly beyond the resolved size is a lookup failure
	cmd := newStubCommand(
		command.Param[string]("target"),
		command.Param[int]("amount"),
	)
	cmd.resolved = map[string]any{"target": "bob"}
	ctx := NewContext(ContextParams{Command: cmd})

	amount, err := ValueAt[int](ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, amount)
}

func TestLookup_NilValueYieldsZero(t *testing.T) {
	cmd := newStubCommand(command.Param[int]("page"))
	cmd.resolved = map[string]any{"page": nil}
	ctx := NewContext(ContextParams{Command: cmd})

	page, err := Value[int](ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, page)
}

func TestLookup_WrongResolvedTypeIsALookupError(t *testing.T) {
	var buf bytes.Buffer
	cmd := newStubCommand(command.Param[int]("page"))
	cmd.resolved = map[string]any{"page": "not-an-int"}
	ctx := NewContext(ContextParams{Command: cmd, Logger: logger.New("debug", &buf)})

	page, err := Value[int](ctx)
	require.Error(t, err)
	assert.Zero(t, page)
	assert.True(t, derrors.IsLookup(err))
	assert.Contains(t, err.Error(), "string")
	assert.Contains(t, buf.String(), "Resolved value has the wrong type")

	_, err = ValueAt[int](ctx, 0)
	assert.True(t, derrors.IsLookup(err))
}

func TestLookup_AgainstRegisteredCommand(t *testing.T) {
	issuer := &stubIssuer{name: "alice"}
	cmd := command.NewRegistered("give", "", nil,
		command.Param[command.Issuer]("sender"),
		command.Param[string]("target"),
		command.Param[int]("amount"),
	)

	ctx := NewContext(ContextParams{Command: cmd, Issuer: issuer, Args: []string{"bob", "7"}})

	amount, err := Value[int](ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, amount)

	sender, err := ValueAt[command.Issuer](ctx, 0)
	require.NoError(t, err)
	assert.Same(t, issuer, sender)

	ctx.SetArgs([]string{"bob", "many"})
	_, err = Value[int](ctx)
	require.Error(t, err)
	assert.True(t, derrors.IsLookup(err))
	assert.True(t, derrors.IsResolution(err))
}
