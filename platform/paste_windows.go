//go:build windows

package platform

import (
	"fmt"
	"time"
	"unsafe"
)

var (
	sendInput      = user32.NewProc("SendInput")
	mapVirtualKeyW = user32.NewProc("MapVirtualKeyW")
)

const (
	inputKeyboard  = 1
	keyeventfKeyup = 0x0002
	mapvkVkToVsc   = 0
	vkControl      = 0x11
	vkV            = 0x56
)

type keyboardInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

type input struct {
	inputType uint32
	ki        keyboardInput
	padding   [8]byte // Padding to match C struct size
}

// WindowsPaster implements the Paster interface for Windows
type WindowsPaster struct{}

// NewPaster creates a new Windows paster instance
func NewPaster() Paster {
	return &WindowsPaster{}
}

// Paste simulates a Ctrl+V keypress. Scan codes are included for better
// compatibility with elevated applications.
func (p *WindowsPaster) Paste() error {
	ctrlScan, _, _ := mapVirtualKeyW.Call(vkControl, mapvkVkToVsc)
	vScan, _, _ := mapVirtualKeyW.Call(vkV, mapvkVkToVsc)

	press := func(vk uint16, scan uintptr, flags uint32) input {
		return input{
			inputType: inputKeyboard,
			ki: keyboardInput{
				wVk:     vk,
				wScan:   uint16(scan),
				dwFlags: flags,
			},
		}
	}

	inputs := []input{
		press(vkControl, ctrlScan, 0),
		press(vkV, vScan, 0),
		press(vkV, vScan, keyeventfKeyup),
		press(vkControl, ctrlScan, keyeventfKeyup),
	}

	// Send all inputs at once for better atomicity
	ret, _, err := sendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)

	if ret == 0 {
		return fmt.Errorf("SendInput failed: %w", err)
	}

	// Small delay to ensure input is processed
	time.Sleep(20 * time.Millisecond)

	return nil
}
