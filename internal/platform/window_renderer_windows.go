//go:build windows

package platform

import (
	"context"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/rook-computer/clockoverlay/internal/render"
)

const (
	_ULW_ALPHA    = 0x00000002
	_AC_SRC_OVER  = 0x00
	_AC_SRC_ALPHA = 0x01
	_BI_RGB       = 0
	_DIB_RGB      = 0
)

var (
	gdi32 = windows.NewLazySystemDLL("gdi32.dll")

	procUpdateLayeredWindow = user32.NewProc("UpdateLayeredWindow")
	procGetDC               = user32.NewProc("GetDC")
	procReleaseDC           = user32.NewProc("ReleaseDC")
	procCreateCompatibleDC  = gdi32.NewProc("CreateCompatibleDC")
	procDeleteDC            = gdi32.NewProc("DeleteDC")
	procCreateDIBSection    = gdi32.NewProc("CreateDIBSection")
	procSelectObject        = gdi32.NewProc("SelectObject")
	procDeleteObject        = gdi32.NewProc("DeleteObject")
)

type size struct{ CX, CY int32 }

type blendFunction struct {
	BlendOp             byte
	BlendFlags          byte
	SourceConstantAlpha byte
	AlphaFormat         byte
}

type bitmapInfoHeader struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

type bitmapInfo struct {
	Header bitmapInfoHeader
	Colors [1]uint32
}

// WindowRenderer rasterises into an offscreen canvas and publishes each frame
// to the overlay window with per-pixel alpha.
type WindowRenderer struct {
	Window *Window
	Logger render.Logger

	canvas  *render.Canvas
	started bool
	memDC   uintptr
	bitmap  uintptr
	old     uintptr
	bits    []byte
}

func NewWindowRenderer(w *Window) *WindowRenderer {
	return &WindowRenderer{Window: w, canvas: render.NewCanvas(w.opts.Width, w.opts.Height)}
}

func (r *WindowRenderer) Start(ctx context.Context) error {
	r.canvas.Logger = r.Logger
	if err := r.canvas.Start(ctx); err != nil {
		return err
	}
	w, h := r.canvas.Size()
	if err := r.allocate(w, h); err != nil {
		return err
	}
	r.started = true
	return nil
}

func (r *WindowRenderer) Stop() error {
	r.release()
	r.started = false
	return r.canvas.Stop()
}

func (r *WindowRenderer) Resize(width, height int) error {
	if err := r.canvas.Resize(width, height); err != nil {
		return err
	}
	r.release()
	return r.allocate(width, height)
}

func (r *WindowRenderer) Draw(list render.List) error {
	if !r.started {
		return render.ErrNotStarted
	}
	if err := r.canvas.Draw(list); err != nil {
		return err
	}
	img := r.canvas.Image()
	b := img.Bounds()
	if b.Empty() || r.memDC == 0 {
		return nil
	}
	toBGRA(r.bits, img)

	screenDC, _, _ := procGetDC.Call(0)
	defer procReleaseDC.Call(0, screenDC)

	sz := size{CX: int32(b.Dx()), CY: int32(b.Dy())}
	src := point{}
	blend := blendFunction{BlendOp: _AC_SRC_OVER, SourceConstantAlpha: 255, AlphaFormat: _AC_SRC_ALPHA}
	ok, _, err := procUpdateLayeredWindow.Call(
		r.Window.Handle(),
		screenDC,
		0,
		uintptr(unsafe.Pointer(&sz)),
		r.memDC,
		uintptr(unsafe.Pointer(&src)),
		0,
		uintptr(unsafe.Pointer(&blend)),
		_ULW_ALPHA,
	)
	if ok == 0 {
		return fmt.Errorf("UpdateLayeredWindow: %w", err)
	}
	return nil
}

func (r *WindowRenderer) allocate(width, height int) error {
	if width == 0 || height == 0 {
		return nil
	}
	screenDC, _, _ := procGetDC.Call(0)
	defer procReleaseDC.Call(0, screenDC)

	memDC, _, err := procCreateCompatibleDC.Call(screenDC)
	if memDC == 0 {
		return fmt.Errorf("CreateCompatibleDC: %w", err)
	}
	bi := bitmapInfo{Header: bitmapInfoHeader{
		Width:       int32(width),
		Height:      -int32(height),
		Planes:      1,
		BitCount:    32,
		Compression: _BI_RGB,
	}}
	bi.Header.Size = uint32(unsafe.Sizeof(bi.Header))
	var bits unsafe.Pointer
	bitmap, _, err := procCreateDIBSection.Call(screenDC, uintptr(unsafe.Pointer(&bi)), _DIB_RGB, uintptr(unsafe.Pointer(&bits)), 0, 0)
	if bitmap == 0 || bits == nil {
		procDeleteDC.Call(memDC)
		return fmt.Errorf("CreateDIBSection: %w", err)
	}
	r.old, _, _ = procSelectObject.Call(memDC, bitmap)
	r.memDC = memDC
	r.bitmap = bitmap
	r.bits = unsafe.Slice((*byte)(bits), 4*width*height)
	return nil
}

func (r *WindowRenderer) release() {
	if r.memDC == 0 {
		return
	}
	procSelectObject.Call(r.memDC, r.old)
	procDeleteObject.Call(r.bitmap)
	procDeleteDC.Call(r.memDC)
	r.memDC, r.bitmap, r.old, r.bits = 0, 0, 0, nil
}
