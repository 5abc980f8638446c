// pkg/xdg/types.go

package xdg

const (
	// Permission modes (in octal)
	DirPermStandard        = 0755
	DirPermOwnerOnly       = 0700
	FilePermExecutable     = 0755
	FilePermStandard       = 0644
	FilePermOwnerReadWrite = 0600
)
