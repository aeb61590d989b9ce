//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import "testing"

func TestFitsRequest(t *testing.T) {
	// 65535 words is the limit without BIG-REQUESTS
	const maxWords = 0xffff
	limit := maxWords*4 - changePropertyHeader
	if err := fitsRequest(limit, maxWords); err != nil {
		t.Errorf("payload at the limit refused: %v", err)
	}
	if err := fitsRequest(limit+1, maxWords); err == nil {
		t.Error("payload past the limit accepted")
	}
	if err := fitsRequest(1<<20, maxWords); err == nil {
		t.Error("1 MiB image accepted")
	}
	if err := fitsRequest(0, 6); err != nil {
		t.Errorf("empty payload refused: %v", err)
	}
}
