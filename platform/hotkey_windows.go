//go:build windows

package platform

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	setWindowsHookEx    = user32.NewProc("SetWindowsHookExW")
	callNextHookEx      = user32.NewProc("CallNextHookEx")
	unhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	peekMessage         = user32.NewProc("PeekMessageW")
	getAsyncKeyState    = user32.NewProc("GetAsyncKeyState")
)

const (
	whKeyboardLL = 13
	wmKeydown    = 0x0100
	wmKeyup      = 0x0101
	wmSyskeydown = 0x0104
	wmSyskeyup   = 0x0105
	pmRemove     = 0x0001
)

const (
	vkShift = 0x10
	vkCtrl  = 0x11
	vkAlt   = 0x12
	vkLwin  = 0x5B // Left Windows key
	vkRwin  = 0x5C // Right Windows key
)

type kbdllhookstruct struct {
	vkCode      uint32
	scanCode    uint32
	flags       uint32
	time        uint32
	dwExtraInfo uintptr
}

type msg struct {
	hwnd    uintptr
	message uint32
	wParam  uintptr
	lParam  uintptr
	time    uint32
	pt      struct{ x, y int32 }
}

// WindowsHotkey implements the Hotkey interface for Windows using a
// low-level keyboard hook. All registered bindings share the one hook.
type WindowsHotkey struct {
	mu       sync.Mutex
	bindings []Binding
	held     map[uint32]bool // keys we already fired for, until key-up
	events   chan Event
	hook     uintptr
	done     chan struct{}
}

// NewHotkey creates a new Windows hotkey listener
func NewHotkey() Hotkey {
	return &WindowsHotkey{}
}

// Listen starts listening for the given bindings. One event is emitted per
// key-down whose key and modifier state match a binding; auto-repeat while
// the key is held is suppressed.
func (h *WindowsHotkey) Listen(ctx context.Context, bindings []Binding) (<-chan Event, error) {
	if len(bindings) == 0 {
		return nil, fmt.Errorf("no hotkey bindings registered")
	}

	h.mu.Lock()
	h.bindings = bindings
	h.held = make(map[uint32]bool)
	h.events = make(chan Event, 10)
	h.done = make(chan struct{})
	h.mu.Unlock()

	// Start hook in a goroutine
	errCh := make(chan error, 1)
	go h.runHook(errCh)

	// Wait for hook to be installed or error
	select {
	case err := <-errCh:
		if err != nil {
			return nil, err
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	// Monitor context cancellation
	go func() {
		<-ctx.Done()
		close(h.done)
		if h.hook != 0 {
			unhookWindowsHookEx.Call(h.hook)
		}
	}()

	return h.events, nil
}

func (h *WindowsHotkey) runHook(errCh chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	hookProc := func(nCode int32, wParam uintptr, lParam uintptr) uintptr {
		if nCode >= 0 {
			kbInfo := (*kbdllhookstruct)(unsafe.Pointer(lParam))
			h.handleKeyEvent(wParam, kbInfo)
		}
		r, _, _ := callNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
		return r
	}

	hook, _, err := setWindowsHookEx.Call(
		whKeyboardLL,
		windows.NewCallback(hookProc),
		0,
		0,
	)

	if hook == 0 {
		errCh <- fmt.Errorf("SetWindowsHookEx failed: %w", err)
		return
	}

	h.mu.Lock()
	h.hook = hook
	h.mu.Unlock()

	errCh <- nil

	// Message loop
	var m msg
	for {
		select {
		case <-h.done:
			return
		default:
			// Non-blocking peek
			r, _, _ := peekMessage.Call(
				uintptr(unsafe.Pointer(&m)),
				0,
				0,
				0,
				pmRemove,
			)
			if r != 0 {
				continue
			}
			runtime.Gosched()
		}
	}
}

func (h *WindowsHotkey) handleKeyEvent(wParam uintptr, kbInfo *kbdllhookstruct) {
	isKeyDown := wParam == wmKeydown || wParam == wmSyskeydown

	if !isKeyDown {
		h.mu.Lock()
		delete(h.held, kbInfo.vkCode)
		h.mu.Unlock()
		return
	}

	h.mu.Lock()
	if h.held[kbInfo.vkCode] {
		// Auto-repeat while held
		h.mu.Unlock()
		return
	}

	var matched *Binding
	for i := range h.bindings {
		b := &h.bindings[i]
		if kbInfo.vkCode == uint32(b.Combo.Key) && modifiersMatch(b.Combo) {
			matched = b
			break
		}
	}

	if matched == nil {
		h.mu.Unlock()
		return
	}

	h.held[kbInfo.vkCode] = true
	action := matched.Action
	h.mu.Unlock()

	select {
	case h.events <- Event{Action: action}:
	default:
	}
}

// modifiersMatch checks the current modifier state against a combo
func modifiersMatch(combo KeyCombo) bool {
	ctrl := isKeyPressed(vkCtrl)
	shift := isKeyPressed(vkShift)
	alt := isKeyPressed(vkAlt)
	win := isKeyPressed(vkLwin) || isKeyPressed(vkRwin)

	return ctrl == combo.Ctrl &&
		shift == combo.Shift &&
		alt == combo.Alt &&
		win == combo.Win
}

func isKeyPressed(vk int) bool {
	r, _, _ := getAsyncKeyState.Call(uintptr(vk))
	return r&0x8000 != 0
}

// VKCode returns the Windows virtual key code for a key name
func VKCode(key string) (int, error) {
	codes := map[string]int{
		"a": 0x41, "b": 0x42, "c": 0x43, "d": 0x44, "e": 0x45,
		"f": 0x46, "g": 0x47, "h": 0x48, "i": 0x49, "j": 0x4A,
		"k": 0x4B, "l": 0x4C, "m": 0x4D, "n": 0x4E, "o": 0x4F,
		"p": 0x50, "q": 0x51, "r": 0x52, "s": 0x53, "t": 0x54,
		"u": 0x55, "v": 0x56, "w": 0x57, "x": 0x58, "y": 0x59,
		"z": 0x5A,
		"0": 0x30, "1": 0x31, "2": 0x32, "3": 0x33, "4": 0x34,
		"5": 0x35, "6": 0x36, "7": 0x37, "8": 0x38, "9": 0x39,
		"f1": 0x70, "f2": 0x71, "f3": 0x72, "f4": 0x73,
		"f5": 0x74, "f6": 0x75, "f7": 0x76, "f8": 0x77,
		"f9": 0x78, "f10": 0x79, "f11": 0x7A, "f12": 0x7B,
		"space": 0x20, "enter": 0x0D, "esc": 0x1B,
		"tab": 0x09, "backspace": 0x08,
		"[": 0xDB, "]": 0xDD, ";": 0xBA, "'": 0xDE,
		",": 0xBC, ".": 0xBE, "/": 0xBF, "\\": 0xDC,
		"-": 0xBD, "=": 0xBB, "`": 0xC0,
	}

	if code, ok := codes[key]; ok {
		return code, nil
	}

	return 0, fmt.Errorf("unknown key: %s", key)
}
