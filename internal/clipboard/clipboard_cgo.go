//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && cgo

package clipboard

import (
	"golang.design/x/clipboard"
)

func publish(data []byte) error {
	if err := ensureInit(); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtImage, data)
	return nil
}

func initBackend() error {
	return clipboard.Init()
}
