package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/njchilds90/polyrat"
	"github.com/njchilds90/polyrat/logger"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	require := require.New(t)

	custom, err := Initialize("./config.example.toml")
	require.Nil(err)

	require.Equal("auto", custom.Engine.MultiplyMode)
	require.Equal(64, custom.Engine.FFTThreshold)
	require.Equal(0.0001, custom.Engine.FFTTolerance)
	require.Equal(int64(1000), custom.Engine.ApproxBound)
	require.Equal(7239, custom.Server.Port)
	require.Equal(1048576, custom.Server.MaxBodyBytes)
	require.Equal("verbose", custom.Log.Level)
	require.Equal(100, custom.Log.Limiter)

	opts := custom.Options()
	require.Equal(polyrat.MulAuto, opts.Multiply)
	require.Equal(64, opts.FFTThreshold)

	defer logger.SetLevel(logger.ERROR)
	defer logger.SetLimiter(0)
	defer logger.SetFilter("")
	require.Nil(custom.ApplyLog())
	require.Equal(logger.VERBOSE, logger.Level())
}

func TestDefaults(t *testing.T) {
	require := require.New(t)

	custom, err := Initialize("")
	require.Nil(err)
	require.Equal(polyrat.DefaultOptions(), custom.Options())
	require.Equal(DefaultPort, custom.Server.Port)
	require.Equal(15, custom.Server.ReadTimeout)
	require.Equal("info", custom.Log.Level)

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.toml")
	require.Nil(os.WriteFile(bad, []byte("[engine]\nmultiply-mode = \"karatsuba\"\n"), 0o644))
	_, err = Initialize(bad)
	require.ErrorIs(err, polyrat.ErrTypeMismatch)

	_, err = Initialize(filepath.Join(dir, "missing.toml"))
	require.NotNil(err)
}
