package paths

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/ansel1/merry/v2"
	"github.com/orsinium-labs/enum"
	"github.com/subtide/subtitle-flows/environment"
)

type Drive enum.Member[string]

//goland:noinspection GoMixedReceiverTypes
func (d Drive) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Value)
}

//goland:noinspection GoMixedReceiverTypes
func (d *Drive) UnmarshalJSON(value []byte) error {
	var stringValue string
	err := json.Unmarshal(value, &stringValue)
	if err != nil {
		return err
	}
	drive := Drives.Parse(stringValue)
	if drive == nil {
		return ErrDriveNotFound
	}
	*d = *drive
	return nil
}

var (
	WorkspaceDrive = Drive{Value: "workspace"}
	TempDrive      = Drive{Value: "temp"}
	FontsDrive     = Drive{Value: "fonts"}
	Drives         = enum.New(WorkspaceDrive, TempDrive, FontsDrive)

	ErrDriveNotFound = merry.Sentinel("drive not found")
	ErrPathNotValid  = merry.Sentinel("path not valid")
)

type Path struct {
	Drive Drive
	Path  string
}

func (p Path) Dir() Path {
	return Path{
		Drive: p.Drive,
		Path:  filepath.Dir(p.Path),
	}
}

// Local returns the path in a local unix style path.
func (p Path) Local() string {
	return filepath.Join(drivePrefixes[p.Drive], p.Path)
}

// Ext returns the file extension
func (p Path) Ext() string {
	return filepath.Ext(p.Path)
}

func (p Path) Base() string {
	return filepath.Base(p.Path)
}

func (p Path) Append(path string) Path {
	return Path{
		Drive: p.Drive,
		Path:  filepath.Clean(filepath.Join(p.Path, path)),
	}
}

// SetExt returns a sibling path with the extension replaced.
func (p Path) SetExt(ext string) Path {
	base := p.Path[:len(p.Path)-len(p.Ext())]
	return Path{
		Drive: p.Drive,
		Path:  base + ext,
	}
}

var drivePrefixes = map[Drive]string{
	WorkspaceDrive: environment.GetWorkspacePrefix(),
	TempDrive:      environment.GetTempMountPrefix(),
	FontsDrive:     environment.GetFontsPrefix(),
}

func Parse(path string) (Path, error) {
	for drive, prefix := range drivePrefixes {
		if strings.HasPrefix(path, prefix) {
			return Path{
				Drive: drive,
				Path:  strings.TrimPrefix(strings.TrimPrefix(path, prefix), "/"),
			}, nil
		}
	}
	return Path{}, ErrPathNotValid
}

func New(drive Drive, path string) Path {
	return Path{
		Drive: drive,
		Path:  path,
	}
}

func FixFilename(path string) string {
	filename := filepath.Base(path)
	newFilename := strings.Replace(filepath.Clean(filename), " ", "_", -1)
	newPath := filepath.Join(filepath.Dir(path), newFilename)
	return newPath
}
