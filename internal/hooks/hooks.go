// Package hooks manages the lifecycle scripts stored in each environment's
// bin directory: their fixed set of names, the default templates written
// into a new environment, and the runner that sources them.
package hooks

import (
	"path/filepath"
)

// Point is a named lifecycle point.
type Point string

const (
	PreActivate      Point = "preactivate"
	Activate         Point = "activate"
	PostActivate     Point = "postactivate"
	PreDeactivate    Point = "predeactivate"
	PostDeactivate   Point = "postdeactivate"
	PreMkVirtualenv  Point = "premkvirtualenv"
	PostMkVirtualenv Point = "postmkvirtualenv"
	PreRmVirtualenv  Point = "prermvirtualenv"
	PostRmVirtualenv Point = "postrmvirtualenv"
	PreCpVirtualenv  Point = "precpvirtualenv"
	PostCpVirtualenv Point = "postcpvirtualenv"
	GetEnvDetails    Point = "get_env_details"
)

// Points lists every lifecycle point in materialization order.
var Points = []Point{
	PreActivate, Activate, PostActivate,
	PreDeactivate, PostDeactivate,
	PreMkVirtualenv, PostMkVirtualenv,
	PreRmVirtualenv, PostRmVirtualenv,
	PreCpVirtualenv, PostCpVirtualenv,
	GetEnvDetails,
}

// Layout maps lifecycle points to script paths.
type Layout struct {
	// Ext is the script file extension without the leading dot.
	Ext string
}

// ScriptPath returns <envDir>/bin/<point>.<ext>.
func (l Layout) ScriptPath(envDir string, p Point) string {
	return filepath.Join(BinDir(envDir), string(p)+"."+l.Ext)
}

// BinDir returns the environment's executable directory.
func BinDir(envDir string) string {
	return filepath.Join(envDir, "bin")
}
