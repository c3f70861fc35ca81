//go:build windows

package platform

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/rook-computer/clockoverlay/internal/host"
)

// Window styles and messages from winuser.h.
const (
	_WS_POPUP uint32 = 0x80000000

	_GWL_EXSTYLE       int32 = -20
	_WS_EX_TOPMOST     int32 = 0x00000008
	_WS_EX_TRANSPARENT int32 = 0x00000020
	_WS_EX_TOOLWINDOW  int32 = 0x00000080
	_WS_EX_LAYERED     int32 = 0x00080000
	_WS_EX_NOACTIVATE  int32 = 0x08000000

	_SWP_NOSIZE        = 0x0001
	_SWP_NOMOVE        = 0x0002
	_SWP_NOACTIVATE    = 0x0010
	_SW_SHOWNOACTIVATE = 4

	_WM_DESTROY = 0x0002
	_WM_SIZE    = 0x0005
	_WM_CLOSE   = 0x0010

	_HWND_TOPMOST = ^uintptr(0)

	overlayExStyle = _WS_EX_LAYERED | _WS_EX_TRANSPARENT | _WS_EX_TOOLWINDOW | _WS_EX_TOPMOST | _WS_EX_NOACTIVATE
	className      = "ClockOverlayWindow"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procRegisterClassExW = user32.NewProc("RegisterClassExW")
	procCreateWindowExW  = user32.NewProc("CreateWindowExW")
	procDefWindowProcW   = user32.NewProc("DefWindowProcW")
	procDestroyWindow    = user32.NewProc("DestroyWindow")
	procShowWindow       = user32.NewProc("ShowWindow")
	procGetMessageW      = user32.NewProc("GetMessageW")
	procTranslateMessage = user32.NewProc("TranslateMessage")
	procDispatchMessageW = user32.NewProc("DispatchMessageW")
	procPostMessageW     = user32.NewProc("PostMessageW")
	procPostQuitMessage  = user32.NewProc("PostQuitMessage")
	procGetWindowLongW   = user32.NewProc("GetWindowLongW")
	procSetWindowLongW   = user32.NewProc("SetWindowLongW")
	procSetWindowPos     = user32.NewProc("SetWindowPos")
	procGetModuleHandleW = kernel32.NewProc("GetModuleHandleW")
)

type wndClassEx struct {
	Size       uint32
	Style      uint32
	WndProc    uintptr
	ClsExtra   int32
	WndExtra   int32
	Instance   uintptr
	Icon       uintptr
	Cursor     uintptr
	Background uintptr
	MenuName   *uint16
	ClassName  *uint16
	IconSm     uintptr
}

type point struct{ X, Y int32 }

type msg struct {
	Hwnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      point
	Private uint32
}

var (
	registerOnce sync.Once
	registerErr  error

	// Live windows by handle, for the shared window procedure.
	windowsByHandle sync.Map
)

// Window is the native overlay window. Its messages are pumped on a
// dedicated, locked OS thread; size changes and close requests come out of
// Events as host events.
type Window struct {
	opts Options
	hwnd uintptr
	ch   chan host.Event
	done chan struct{}
}

// CreateOverlayWindow creates and shows the overlay and returns once the
// window exists.
func CreateOverlayWindow(opts Options) (*Window, error) {
	w := &Window{opts: opts.withDefaults(), ch: make(chan host.Event, 8), done: make(chan struct{})}
	ready := make(chan error, 1)
	go w.run(ready)
	if err := <-ready; err != nil {
		return nil, err
	}
	return w, nil
}

// Handle returns the native HWND.
func (w *Window) Handle() uintptr { return w.hwnd }

func (w *Window) Start(ctx context.Context) error {
	go func() {
		select {
		case <-ctx.Done():
			w.Close()
		case <-w.done:
		}
	}()
	return nil
}

func (w *Window) Stop() error {
	w.Close()
	<-w.done
	return nil
}

func (w *Window) Events() <-chan host.Event { return w.ch }

// Close asks the window to close. It is safe to call more than once.
func (w *Window) Close() {
	select {
	case <-w.done:
	default:
		procPostMessageW.Call(w.hwnd, _WM_CLOSE, 0, 0)
	}
}

func (w *Window) emit(ev host.Event) {
	select {
	case w.ch <- ev:
	default:
	}
}

func (w *Window) run(ready chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(w.done)

	hwnd, err := createWindow(w.opts)
	if err != nil {
		ready <- err
		return
	}
	w.hwnd = hwnd
	windowsByHandle.Store(hwnd, w)
	if err := ApplyOverlayStyles(hwnd); err != nil {
		procDestroyWindow.Call(hwnd)
		windowsByHandle.Delete(hwnd)
		ready <- err
		return
	}
	procShowWindow.Call(hwnd, _SW_SHOWNOACTIVATE)
	ready <- nil

	var m msg
	for {
		r, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		if int32(r) <= 0 {
			return
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		procDispatchMessageW.Call(uintptr(unsafe.Pointer(&m)))
	}
}

// ApplyOverlayStyles makes hwnd layered, click-through, hidden from the
// taskbar and Alt-Tab, non-activating and topmost.
func ApplyOverlayStyles(hwnd uintptr) error {
	idx := _GWL_EXSTYLE
	exStyle, _, _ := procGetWindowLongW.Call(hwnd, uintptr(idx))
	newStyle := int32(exStyle) | overlayExStyle
	procSetWindowLongW.Call(hwnd, uintptr(idx), uintptr(newStyle))

	r, _, err := procSetWindowPos.Call(hwnd, _HWND_TOPMOST, 0, 0, 0, 0, _SWP_NOMOVE|_SWP_NOSIZE|_SWP_NOACTIVATE)
	if r == 0 {
		return fmt.Errorf("SetWindowPos topmost: %w", err)
	}
	return nil
}

func createWindow(opts Options) (uintptr, error) {
	instance, _, _ := procGetModuleHandleW.Call(0)
	if err := registerClass(instance); err != nil {
		return 0, err
	}
	class, err := windows.UTF16PtrFromString(className)
	if err != nil {
		return 0, err
	}
	title, err := windows.UTF16PtrFromString(opts.Title)
	if err != nil {
		return 0, err
	}
	exStyle := overlayExStyle
	x, y, width, height := int32(opts.X), int32(opts.Y), int32(opts.Width), int32(opts.Height)
	hwnd, _, callErr := procCreateWindowExW.Call(
		uintptr(exStyle),
		uintptr(unsafe.Pointer(class)),
		uintptr(unsafe.Pointer(title)),
		uintptr(_WS_POPUP),
		uintptr(x), uintptr(y), uintptr(width), uintptr(height),
		0, 0, instance, 0,
	)
	if hwnd == 0 {
		return 0, fmt.Errorf("CreateWindowExW: %w", callErr)
	}
	return hwnd, nil
}

func registerClass(instance uintptr) error {
	registerOnce.Do(func() {
		class, err := windows.UTF16PtrFromString(className)
		if err != nil {
			registerErr = err
			return
		}
		wc := wndClassEx{
			WndProc:   windows.NewCallback(wndProc),
			Instance:  instance,
			ClassName: class,
		}
		wc.Size = uint32(unsafe.Sizeof(wc))
		atom, _, err := procRegisterClassExW.Call(uintptr(unsafe.Pointer(&wc)))
		if atom == 0 && !errors.Is(err, windows.ERROR_CLASS_ALREADY_EXISTS) {
			registerErr = fmt.Errorf("RegisterClassExW: %w", err)
		}
	})
	return registerErr
}

func wndProc(hwnd, message, wparam, lparam uintptr) uintptr {
	if v, ok := windowsByHandle.Load(hwnd); ok {
		w := v.(*Window)
		switch message {
		case _WM_SIZE:
			w.emit(host.Event{Kind: host.Resize, Width: int(lparam & 0xFFFF), Height: int((lparam >> 16) & 0xFFFF)})
			return 0
		case _WM_CLOSE:
			w.emit(host.Event{Kind: host.Close})
			procDestroyWindow.Call(hwnd)
			return 0
		case _WM_DESTROY:
			windowsByHandle.Delete(hwnd)
			procPostQuitMessage.Call(0)
			return 0
		}
	}
	r, _, _ := procDefWindowProcW.Call(hwnd, message, wparam, lparam)
	return r
}
