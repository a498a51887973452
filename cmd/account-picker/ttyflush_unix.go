//go:build !windows

package main

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// tcflsh is the Linux ioctl request behind tcflush(3).
const tcflsh = 0x540B

// flushTTYInput discards unread input queued on the controlling terminal, such
// as OSC or focus replies that would otherwise reach the picker as keystrokes.
// It is best effort and a no-op without /dev/tty.
func flushTTYInput() {
	tty, err := os.OpenFile("/dev/tty", os.O_RDONLY, 0)
	if err != nil {
		return
	}
	defer func() { _ = tty.Close() }()
	drainInput(int(tty.Fd()), 150*time.Millisecond)
}

func drainInput(fd int, window time.Duration) {
	if fd < 0 {
		return
	}
	_, _, _ = unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(tcflsh), uintptr(unix.TCIFLUSH))

	// Replies can land right after the flush; read them off for a short window.
	if err := unix.SetNonblock(fd, true); err != nil {
		return
	}
	defer func() { _ = unix.SetNonblock(fd, false) }()

	deadline := time.Now().Add(window)
	buf := make([]byte, 512)
	for time.Now().Before(deadline) {
		// EAGAIN means the queue is empty.
		n, _ := unix.Read(fd, buf)
		if n <= 0 {
			return
		}
		deadline = time.Now().Add(window / 2)
	}
}
