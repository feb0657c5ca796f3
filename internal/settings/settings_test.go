package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithHelpers(t *testing.T) {
	base := Settings{ShakeHome: "/opt/shake", VS30File: "/data/vs30.grd", GMPE: "active_crustal_nshmp2014"}

	updated, old := base.WithShakeHome("/tmp/shake")
	assert.Equal(t, "/opt/shake", old)
	assert.Equal(t, "/tmp/shake", updated.ShakeHome)
	assert.Equal(t, "/opt/shake", base.ShakeHome, "original must be unchanged")

	updated, old = updated.WithVS30File("/tmp/vs30.grd")
	assert.Equal(t, "/data/vs30.grd", old)
	assert.Equal(t, "/tmp/vs30.grd", updated.VS30File)

	updated, old = updated.WithGMPE("stable_continental_nshmp2014_rlme")
	assert.Equal(t, "active_crustal_nshmp2014", old)
	assert.Equal(t, "stable_continental_nshmp2014_rlme", updated.GMPE)

	// Restoring the returned values gets back to the start.
	restored, _ := updated.WithShakeHome(base.ShakeHome)
	restored, _ = restored.WithVS30File(base.VS30File)
	restored, _ = restored.WithGMPE(base.GMPE)
	assert.Equal(t, base, restored)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "scenarios.toml")
	want := Settings{
		ShakeHome:  "/opt/shake",
		VS30File:   "/data/vs30.grd",
		GMPE:       "active_crustal_nshmp2014",
		PDLBin:     "/opt/pdl/ProductClient.jar",
		PrivateKey: "/home/ops/.ssh/pdl",
		PDLConf:    "/opt/pdl/config.ini",
		Catalog:    "us",
	}

	require.NoError(t, Save(path, want))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[system]")
	assert.Contains(t, string(raw), "[data]")
	assert.Contains(t, string(raw), "[modeling]")
}

func TestLoad_Missing(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Settings{}, got)
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[system\nshakehome = "), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}
