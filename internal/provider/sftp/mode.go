package sftp

import "os"

// sftpFileMode converts the opaque permission bits carried by
// entry.Entry/provider.Provider into an os.FileMode suitable for
// pkg/sftp's Chmod, which (unlike the local provider) never needs to
// round-trip Go's extra mode bits since SFTP only transports the
// permission bits over the wire.
func sftpFileMode(bits uint32) os.FileMode {
	return os.FileMode(bits).Perm()
}
