package paths

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ParsePath(t *testing.T) {
	pathString := "/mnt/workspace/jobs/abc123/input.mp4"

	path, err := Parse(pathString)

	assert.Nil(t, err)

	assert.Equal(t, WorkspaceDrive, path.Drive)
	assert.Equal(t, "jobs/abc123/input.mp4", path.Path)
	assert.Equal(t, "/mnt/workspace/jobs/abc123/input.mp4", path.Local())
}

func Test_ParsePathInvalid(t *testing.T) {
	_, err := Parse("/somewhere/else/file.mp4")
	assert.ErrorIs(t, err, ErrPathNotValid)
}

func Test_SetExt(t *testing.T) {
	path := New(TempDrive, "out/video.mp4")

	assert.Equal(t, "out/video.m4a", path.SetExt(".m4a").Path)
	assert.Equal(t, ".mp4", path.Ext())
	assert.Equal(t, "video.mp4", path.Base())
}

func Test_Append(t *testing.T) {
	path := New(FontsDrive, "user")

	assert.Equal(t, "user/custom.ttf", path.Append("custom.ttf").Path)
	assert.Equal(t, "user", path.Append("custom.ttf").Dir().Path)
}
