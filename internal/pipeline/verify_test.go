package pipeline

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sized struct {
	path string
	n    int
}

func verifyFixture(t *testing.T, files []sized) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/in", 0o755))
	require.NoError(t, fsys.MkdirAll("/out", 0o755))
	for _, f := range files {
		touch(t, fsys, f.path, f.n)
	}
	return fsys
}

func TestVerify_Consistent(t *testing.T) {
	fsys := verifyFixture(t, []sized{
		{"/in/a.jpg", 100}, {"/out/a_S.jpg", 50},
		{"/in/sub/b.txt", 10}, {"/out/sub/b.txt", 10},
		{"/in/sub/c.MOV", 80}, {"/out/sub/c_S.mp4", 60},
		{"/in/empty.png", 0}, {"/out/empty.png", 0},
	})
	inputs, err := Discover(fsys, "/in")
	require.NoError(t, err)

	v, err := Verify(fsys, testConfig(), inputs)
	require.NoError(t, err)
	assert.Equal(t, 4, v.Pairs)
	assert.Equal(t, int64(190), v.InputBytes)
	assert.Equal(t, int64(120), v.OutputBytes)
	assert.InDelta(t, 0.5, v.MaxRate, 1e-9)
}

func TestVerify_Failures(t *testing.T) {
	tests := []struct {
		name    string
		files   []sized
		inputs  []string
		wantErr error
	}{
		{
			name:    "missing output",
			files:   []sized{{"/in/a.jpg", 10}, {"/in/b.jpg", 10}, {"/out/a.jpg", 10}},
			inputs:  []string{"a.jpg", "b.jpg"},
			wantErr: ErrCountMismatch,
		},
		{
			name:    "renamed output",
			files:   []sized{{"/in/a.jpg", 10}, {"/out/z.jpg", 10}},
			inputs:  []string{"a.jpg"},
			wantErr: ErrNameMismatch,
		},
		{
			name:    "colliding inputs",
			files:   []sized{{"/in/d.jpg", 10}, {"/in/d.png", 10}, {"/out/d.jpg", 10}, {"/out/d_S.png", 5}},
			inputs:  []string{"d.jpg", "d.png"},
			wantErr: ErrOrdering,
		},
		{
			name:    "implausible compression",
			files:   []sized{{"/in/a.mp4", 1000}, {"/out/a_S.mp4", 5}},
			inputs:  []string{"a.mp4"},
			wantErr: ErrCompressionCeiling,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := verifyFixture(t, tt.files)
			_, err := Verify(fsys, testConfig(), tt.inputs)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestVerify_NameMismatchShowsCanonicalNames(t *testing.T) {
	fsys := verifyFixture(t, []sized{{"/in/sub/a.jpg", 10}, {"/out/sub/z_S.jpg", 5}})

	_, err := Verify(fsys, testConfig(), []string{"sub/a.jpg"})
	require.ErrorIs(t, err, ErrNameMismatch)
	assert.Contains(t, err.Error(), `"sub/a.jpg" (canonical "sub/a")`)
	assert.Contains(t, err.Error(), `"sub/z_S.jpg" (canonical "sub/z")`)
}

func TestVerify_CeilingIsPercent(t *testing.T) {
	fsys := verifyFixture(t, []sized{{"/in/a.mp4", 1000}, {"/out/a_S.mp4", 20}})
	cfg := testConfig()

	_, err := Verify(fsys, cfg, []string{"a.mp4"})
	require.NoError(t, err, "98% is under the default 99% ceiling")

	cfg.MaxExpectedCompression = 90
	_, err = Verify(fsys, cfg, []string{"a.mp4"})
	assert.ErrorIs(t, err, ErrCompressionCeiling)
}

func TestCompressionRate(t *testing.T) {
	assert.Equal(t, 0.0, CompressionRate(0, 0))
	assert.Equal(t, 0.0, CompressionRate(100, 100))
	assert.InDelta(t, 0.75, CompressionRate(400, 100), 1e-9)
	assert.InDelta(t, -0.5, CompressionRate(100, 150), 1e-9)
}

// --- Reclaim tests ---

func TestReclaim_RemovesEmptyTree(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/tmp_S/a/b", 0o755))

	require.NoError(t, Reclaim(fsys, "/tmp_S"))
	ok, _ := afero.Exists(fsys, "/tmp_S")
	assert.False(t, ok)
}

func TestReclaim_RefusesLeftovers(t *testing.T) {
	fsys := afero.NewMemMapFs()
	touch(t, fsys, "/tmp_S/a/IMG_1.jpg", 3)

	err := Reclaim(fsys, "/tmp_S")
	assert.ErrorIs(t, err, ErrTempNotEmpty)
	assert.Contains(t, err.Error(), "a/IMG_1.jpg")
	ok, _ := afero.Exists(fsys, "/tmp_S/a/IMG_1.jpg")
	assert.True(t, ok)
}
