package pluginhost

import (
	"context"
	"net"
	"net/rpc"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synchro-systems/synchro/adapter"
	"github.com/synchro-systems/synchro/value"
)

type fakeImpl struct {
	polled  adapter.PollResult
	current value.Value
}

func (f *fakeImpl) Poll() (adapter.PollResult, error) {
	return f.polled, nil
}

func (f *fakeImpl) Write(newValue, guard value.Value) (value.Value, bool, error) {
	if guard != f.current {
		return f.current, false, nil
	}
	f.current = newValue
	return f.current, true, nil
}

// dialedPair wires an rpcServer and rpcClient together over an in-memory
// net.Pipe, exercising the exact wire calls Launch's real subprocess path
// would make, without spawning a process.
func dialedPair(t *testing.T, impl Implementation) *rpcClient {
	t.Helper()
	server := rpc.NewServer()
	require.NoError(t, server.RegisterName("Plugin", &rpcServer{impl: impl}))

	clientConn, serverConn := net.Pipe()
	go server.ServeConn(serverConn)
	t.Cleanup(func() { clientConn.Close() })

	return &rpcClient{client: rpc.NewClient(clientConn)}
}

func TestRPCClientPoll(t *testing.T) {
	impl := &fakeImpl{polled: adapter.PollResult{Value: value.Value(7)}}
	c := dialedPair(t, impl)

	result, err := c.Poll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, value.Value(7), result.Value)
}

func TestRPCClientWriteCommits(t *testing.T) {
	impl := &fakeImpl{current: value.Value(10)}
	c := dialedPair(t, impl)

	current, committed, err := c.Write(context.Background(), value.Value(20), value.Value(10))
	require.NoError(t, err)
	assert.True(t, committed)
	assert.Equal(t, value.Value(20), current)
}

func TestRPCClientWriteRejectsStaleGuard(t *testing.T) {
	impl := &fakeImpl{current: value.Value(99)}
	c := dialedPair(t, impl)

	current, committed, err := c.Write(context.Background(), value.Value(20), value.Value(10))
	require.NoError(t, err)
	assert.False(t, committed)
	assert.Equal(t, value.Value(99), current)
}
