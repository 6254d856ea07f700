package feeconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "flash.conf")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadFileBasic(t *testing.T) {
	path := writeTempConfig(t, `
# flash geometry
page_size 256
page_count 8
base_address 0x1000
density_bytes 1024
write_log_bytes 1024
`)

	geo, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	want := Geometry{
		PageSize:      256,
		PageCount:     8,
		BaseAddress:   0x1000,
		DensityBytes:  1024,
		WriteLogBytes: 1024,
	}
	if geo != want {
		t.Errorf("LoadFile = %+v, want %+v", geo, want)
	}
	if err := geo.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadFileUnknownKey(t *testing.T) {
	path := writeTempConfig(t, "bogus_key 1\n")
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoadFileBadValue(t *testing.T) {
	path := writeTempConfig(t, "page_size notanumber\n")
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected error for unparseable value")
	}
}

func TestValidateRejectsOversizedGeometry(t *testing.T) {
	geo := Geometry{PageSize: 256, PageCount: 4, DensityBytes: 2000, WriteLogBytes: 100}
	if err := geo.Validate(); err == nil {
		t.Fatal("expected error when density+log exceeds flash size")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("FEE_DENSITY_BYTES", "2048")
	geo := Geometry{DensityBytes: 1024}
	ApplyEnv(&geo)
	if geo.DensityBytes != 2048 {
		t.Errorf("DensityBytes after ApplyEnv = %d, want 2048", geo.DensityBytes)
	}
}
