// Package pluginhost loads platform adapters out-of-process via
// hashicorp/go-plugin, generalizing the teacher's use of go-plugin to host
// a whole ReportingPlugin binary into hosting individual adapter.Source /
// adapter.GuardedWriter implementations instead — useful for platform SDKs
// that can't be vendored directly into this process (a different license,
// a conflicting dependency graph, or simply operator preference to keep
// credentials in a separate, restartable process).
package pluginhost

import (
	"context"
	"net/rpc"
	"os/exec"

	goplugin "github.com/hashicorp/go-plugin"

	"github.com/synchro-systems/synchro/adapter"
	"github.com/synchro-systems/synchro/value"
)

// Handshake is the shared handshake both host and plugin binary must
// agree on. ProtocolVersion bumps whenever the RPC surface below changes
// incompatibly.
var Handshake = goplugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "SYNCHRO_ADAPTER_PLUGIN",
	MagicCookieValue: "synchro",
}

// PluginMap is the set of plugins this host understands; adapter binaries
// register themselves under the "adapter" key.
var PluginMap = map[string]goplugin.Plugin{
	"adapter": &AdapterPlugin{},
}

// AdapterPlugin is the go-plugin glue type: Server wraps a concrete
// adapter implementation for the plugin-side binary, Client builds an
// RPC-backed stub for the host side.
type AdapterPlugin struct {
	goplugin.NetRPCUnsupportedPlugin
	Impl Implementation
}

// Implementation is what an out-of-process adapter binary provides: the
// same Poll/Write surface as adapter.Source/adapter.GuardedWriter, shaped
// for net/rpc (no context, since net/rpc args must be gob-encodable).
type Implementation interface {
	Poll() (adapter.PollResult, error)
	Write(newValue, guard value.Value) (current value.Value, committed bool, err error)
}

func (p *AdapterPlugin) Server(*goplugin.MuxBroker) (interface{}, error) {
	return &rpcServer{impl: p.Impl}, nil
}

func (p *AdapterPlugin) Client(b *goplugin.MuxBroker, c *rpc.Client) (interface{}, error) {
	return &rpcClient{client: c}, nil
}

// PollArgs, WriteArgs and WriteReply are exported because net/rpc only
// registers methods whose argument and reply types are exported.
type PollArgs struct{}

type WriteArgs struct {
	NewValue value.Value
	Guard    value.Value
}

type WriteReply struct {
	Current   value.Value
	Committed bool
}

type rpcServer struct {
	impl Implementation
}

func (s *rpcServer) Poll(_ PollArgs, reply *adapter.PollResult) error {
	r, err := s.impl.Poll()
	if err != nil {
		return err
	}
	*reply = r
	return nil
}

func (s *rpcServer) Write(args WriteArgs, reply *WriteReply) error {
	current, committed, err := s.impl.Write(args.NewValue, args.Guard)
	if err != nil {
		return err
	}
	*reply = WriteReply{Current: current, Committed: committed}
	return nil
}

// rpcClient implements adapter.Source and adapter.GuardedWriter over the
// net/rpc connection go-plugin established to the adapter subprocess.
type rpcClient struct {
	client *rpc.Client
}

var _ adapter.Source = (*rpcClient)(nil)
var _ adapter.GuardedWriter = (*rpcClient)(nil)

func (c *rpcClient) Poll(ctx context.Context) (adapter.PollResult, error) {
	var reply adapter.PollResult
	if err := c.client.Call("Plugin.Poll", PollArgs{}, &reply); err != nil {
		return adapter.PollResult{}, err
	}
	return reply, nil
}

func (c *rpcClient) Write(ctx context.Context, newValue, guard value.Value) (value.Value, bool, error) {
	var reply WriteReply
	args := WriteArgs{NewValue: newValue, Guard: guard}
	if err := c.client.Call("Plugin.Write", args, &reply); err != nil {
		return value.Zero, false, err
	}
	return reply.Current, reply.Committed, nil
}

// Launch starts the adapter plugin binary at path and returns a client
// wired up as adapter.Source/adapter.GuardedWriter, plus the underlying
// *goplugin.Client so the caller can Kill it on shutdown.
func Launch(path string) (adapter.Source, adapter.GuardedWriter, *goplugin.Client, error) {
	client := goplugin.NewClient(&goplugin.ClientConfig{
		HandshakeConfig: Handshake,
		Plugins:         PluginMap,
		Cmd:             exec.Command(path),
		AllowedProtocols: []goplugin.Protocol{goplugin.ProtocolNetRPC},
	})

	rpcClientProto, err := client.Client()
	if err != nil {
		client.Kill()
		return nil, nil, nil, err
	}

	raw, err := rpcClientProto.Dispense("adapter")
	if err != nil {
		client.Kill()
		return nil, nil, nil, err
	}

	impl := raw.(*rpcClient)
	return impl, impl, client, nil
}

// Serve runs an adapter binary's plugin-server loop. Call this from an
// adapter binary's main(), never from the host process.
func Serve(impl Implementation) {
	goplugin.Serve(&goplugin.ServeConfig{
		HandshakeConfig: Handshake,
		Plugins: map[string]goplugin.Plugin{
			"adapter": &AdapterPlugin{Impl: impl},
		},
	})
}
