package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvartia/plexwatch/internal/config"
)

func TestTestEnv_Path(t *testing.T) {
	env := NewTestEnv(t)

	path := env.Path("subdir", "file.txt")
	assert.True(t, filepath.IsAbs(path))
	assert.Contains(t, path, "subdir")
	assert.Contains(t, path, "file.txt")
}

func TestTestEnv_PathStaysInSandbox(t *testing.T) {
	env := NewTestEnv(t)

	assert.True(t, env.isWithinSandbox(env.Path("subdir", "nested")))
	assert.False(t, env.isWithinSandbox(filepath.Join(env.RootDir(), "..", "escape")))
}

func TestTestEnv_WriteReadFile(t *testing.T) {
	env := NewTestEnv(t)

	content := []byte("device:\n  profile: tv\n")
	env.WriteFile("config/profiles.yaml", content)

	assert.Equal(t, content, env.ReadFile("config/profiles.yaml"))
}

func TestTestEnv_WriteReadFileString(t *testing.T) {
	env := NewTestEnv(t)

	env.WriteFileString("token.txt", "test-plex-token")
	assert.Equal(t, "test-plex-token", env.ReadFileString("token.txt"))
}

func TestTestEnv_MkdirAll(t *testing.T) {
	env := NewTestEnv(t)

	env.MkdirAll("cache/thumbs")

	info, err := os.Stat(env.Path("cache/thumbs"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestTestEnv_FileExists(t *testing.T) {
	env := NewTestEnv(t)

	assert.False(t, env.FileExists("nonexistent.txt"))

	env.WriteFileString("exists.txt", "content")
	assert.True(t, env.FileExists("exists.txt"))
	env.RequireFileExists("exists.txt")
}

func TestTestEnv_SetEnv(t *testing.T) {
	env := NewTestEnv(t)

	env.SetEnv("PLEX_TOKEN", "env-token")
	assert.Equal(t, "env-token", os.Getenv("PLEX_TOKEN"))
}

func TestTestEnv_String(t *testing.T) {
	env := NewTestEnv(t)

	str := env.String()
	assert.Contains(t, str, "TestEnv")
	assert.Contains(t, str, env.RootDir())
}

// GoldenHelper tests

func TestGoldenHelper_AssertGolden(t *testing.T) {
	env := NewTestEnv(t)
	env.WriteFileString("golden/urls.golden", "direct-play: http://plex.test:32400/part")

	golden := NewGoldenHelper(t, env.Path("golden"))
	golden.AssertGolden("urls.golden", []byte("direct-play: http://plex.test:32400/part"))
	golden.AssertGoldenString("urls.golden", "direct-play: http://plex.test:32400/part")
}

func TestGoldenHelper_UpdateMode(t *testing.T) {
	t.Setenv("UPDATE_GOLDEN", "true")

	env := NewTestEnv(t)
	golden := NewGoldenHelper(t, env.Path("golden"))
	require.True(t, golden.IsUpdateMode())

	golden.AssertGoldenString("new.golden", "freshly written")

	assert.Equal(t, "freshly written", env.ReadFileString("golden/new.golden"))
}

func TestGoldenHelper_GoldenPath(t *testing.T) {
	golden := NewGoldenHelper(t, "/some/golden/dir")
	assert.Equal(t, "/some/golden/dir/test.golden", golden.GoldenPath("test.golden"))
}

func TestGoldenHelper_IsUpdateMode(t *testing.T) {
	golden := NewGoldenHelper(t, "testdata")
	assert.False(t, golden.IsUpdateMode())
}

func TestGoldenHelper_MustReadGolden(t *testing.T) {
	env := NewTestEnv(t)
	env.WriteFileString("golden/test.golden", "golden content")

	golden := NewGoldenHelper(t, env.Path("golden"))
	assert.Equal(t, []byte("golden content"), golden.MustReadGolden("test.golden"))
}

func TestGoldenHelper_Exists(t *testing.T) {
	env := NewTestEnv(t)

	golden := NewGoldenHelper(t, env.Path("golden"))
	assert.False(t, golden.Exists("nonexistent.golden"))

	env.WriteFileString("golden/exists.golden", "content")
	assert.True(t, golden.Exists("exists.golden"))
}

// Config management tests

func TestResetConfig(t *testing.T) {
	origServer := config.ServerURL
	origToken := config.Token

	t.Run("inner", func(t *testing.T) {
		ResetConfig(t)

		config.ServerURL = "http://modified:32400"
		config.Token = "modified-token"

		assert.NotEqual(t, origServer, config.ServerURL)
		assert.NotEqual(t, origToken, config.Token)
	})

	assert.Equal(t, origServer, config.ServerURL)
	assert.Equal(t, origToken, config.Token)
}

func TestSetTestConfig(t *testing.T) {
	origServer := config.ServerURL
	origToken := config.Token
	origProfile := config.DeviceProfile

	t.Run("inner", func(t *testing.T) {
		SetTestConfig(t)

		assert.Equal(t, "http://plex.test:32400", config.ServerURL)
		assert.Equal(t, "test-plex-token", config.Token)
		assert.Equal(t, "desktop", config.DeviceProfile)
		assert.Equal(t, 10, config.SeekStepSeconds)
	})

	assert.Equal(t, origServer, config.ServerURL)
	assert.Equal(t, origToken, config.Token)
	assert.Equal(t, origProfile, config.DeviceProfile)
}

func TestSetTestConfigWithOptions(t *testing.T) {
	origServer := config.ServerURL

	t.Run("inner", func(t *testing.T) {
		SetTestConfigWithOptions(t,
			WithServerURL("http://custom:32400"),
			WithToken("custom-token"),
			WithDeviceProfile("tv"),
		)

		assert.Equal(t, "http://custom:32400", config.ServerURL)
		assert.Equal(t, "custom-token", config.Token)
		assert.Equal(t, "tv", config.DeviceProfile)
	})

	assert.Equal(t, origServer, config.ServerURL)
}

func TestSetViperValue(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	t.Run("inner", func(t *testing.T) {
		SetViperValue(t, "test.key", "test-value")
		assert.Equal(t, "test-value", viper.GetString("test.key"))
	})
}

func TestSetupTestCache(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	env := NewTestEnv(t)
	cacheDir := SetupTestCache(t, env)

	assert.DirExists(t, cacheDir)
	assert.Contains(t, viper.GetString("cache.dbfile"), "test-cache.db")
	assert.Equal(t, "24h", viper.GetString("cache.ttl"))
}

func TestSaveRestoreConfigState(t *testing.T) {
	config.ServerURL = "http://saved:32400"
	config.Token = "saved-token"
	config.DeviceProfile = "tv"
	config.SeekStepSeconds = 30

	state := SaveConfigState()

	config.ServerURL = "http://modified:32400"
	config.Token = "modified"
	config.DeviceProfile = "desktop"
	config.SeekStepSeconds = 10

	RestoreConfigState(state)

	assert.Equal(t, "http://saved:32400", config.ServerURL)
	assert.Equal(t, "saved-token", config.Token)
	assert.Equal(t, "tv", config.DeviceProfile)
	assert.Equal(t, 30, config.SeekStepSeconds)
}
