package options

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
	"github.com/vesna-dev/vesna-go/pkg/config"
	"go.uber.org/zap/zapcore"
)

func testContext(t *testing.T, args ...string) *cli.Context {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range RPC {
		f.Apply(set)
	}
	Wallet.Apply(set)
	Config.Apply(set)
	require.NoError(t, set.Parse(args))
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestGetConfigFromContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("WasmDir: /srv/wasm\n"), 0o644))

	ctx := testContext(t,
		"--config-file", path,
		"--rpc-endpoint", "ws://192.168.0.1:26657/websocket",
		"--wallet", "other.json")
	cfg, err := GetConfigFromContext(ctx)
	require.NoError(t, err)
	require.Equal(t, "/srv/wasm", cfg.WasmDir)
	require.Equal(t, "ws://192.168.0.1:26657/websocket", cfg.LedgerAddress)
	require.Equal(t, "other.json", cfg.WalletPath)
	require.Equal(t, config.DefaultGossipAddress, cfg.GossipAddress)
}

func TestGetTimeoutContext(t *testing.T) {
	t.Run("explicit timeout", func(t *testing.T) {
		gctx, cancel := GetTimeoutContext(testContext(t, "--timeout", "5s"))
		defer cancel()
		deadline, ok := gctx.Deadline()
		require.True(t, ok)
		require.WithinDuration(t, time.Now().Add(5*time.Second), deadline, time.Second)
	})
	t.Run("unbounded by default", func(t *testing.T) {
		gctx, cancel := GetTimeoutContext(testContext(t))
		defer cancel()
		_, ok := gctx.Deadline()
		require.False(t, ok)
	})
}

func TestHTTPEndpoint(t *testing.T) {
	for input, expected := range map[string]string{
		"ws://127.0.0.1:26657/websocket":  "http://127.0.0.1:26657",
		"wss://node.example:443/websocket": "https://node.example:443",
		"http://127.0.0.1:26657":          "http://127.0.0.1:26657",
	} {
		actual, err := HTTPEndpoint(input)
		require.NoError(t, err)
		require.Equal(t, expected, actual)
	}
	_, err := HTTPEndpoint("ftp://127.0.0.1")
	require.Error(t, err)
}

func TestHandleLoggingParams(t *testing.T) {
	t.Run("default is info", func(t *testing.T) {
		log, err := HandleLoggingParams(false, config.Config{})
		require.NoError(t, err)
		require.True(t, log.Core().Enabled(zapcore.InfoLevel))
		require.False(t, log.Core().Enabled(zapcore.DebugLevel))
	})
	t.Run("configured level", func(t *testing.T) {
		log, err := HandleLoggingParams(false, config.Config{LogLevel: "warn"})
		require.NoError(t, err)
		require.False(t, log.Core().Enabled(zapcore.InfoLevel))
	})
	t.Run("debug flag wins", func(t *testing.T) {
		log, err := HandleLoggingParams(true, config.Config{LogLevel: "warn"})
		require.NoError(t, err)
		require.True(t, log.Core().Enabled(zapcore.DebugLevel))
	})
	t.Run("bad level", func(t *testing.T) {
		_, err := HandleLoggingParams(false, config.Config{LogLevel: "verbose"})
		require.Error(t, err)
	})
}
