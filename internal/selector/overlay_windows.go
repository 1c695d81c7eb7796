//go:build windows

package selector

import (
	"fmt"
	"image"
	"image/draw"
	"runtime"
	"sync"
	"syscall"
	"time"
	"unsafe"

	"github.com/lxn/win"
	"github.com/rs/zerolog"

	"github.com/dokzlo13/glowd/internal/region"
)

// ~70% opacity, so the desktop shines through the frozen screenshot.
const overlayAlpha = 178

const lwaAlpha = 0x00000002

var (
	user32                         = syscall.NewLazyDLL("user32.dll")
	procSetLayeredWindowAttributes = user32.NewProc("SetLayeredWindowAttributes")
	procPeekMessage                = user32.NewProc("PeekMessageW")

	gdi32         = syscall.NewLazyDLL("gdi32.dll")
	procCreatePen = gdi32.NewProc("CreatePen")
	procRectangle = gdi32.NewProc("Rectangle")
)

// The window callback cannot carry a closure, so the running overlay is
// published here. overlayMu keeps Select modal per process.
var (
	overlayMu sync.Mutex
	active    *overlay
)

type overlay struct {
	log        zerolog.Logger
	hwnd       win.HWND
	tracker    Tracker
	background *image.RGBA
	offsetX    int32
	offsetY    int32
	result     chan region.Region
}

// Select opens a modal, topmost, semi-transparent overlay across the whole
// virtual screen, showing img frozen underneath the cursor. It blocks until
// the user commits a drag (ok=true) or presses Escape (ok=false). The
// returned region is in virtual-screen coordinates.
func Select(img *image.RGBA, log zerolog.Logger) (region.Region, bool, error) {
	overlayMu.Lock()
	defer overlayMu.Unlock()

	// The message loop is thread-affine.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	vx := win.GetSystemMetrics(win.SM_XVIRTUALSCREEN)
	vy := win.GetSystemMetrics(win.SM_YVIRTUALSCREEN)
	vw := win.GetSystemMetrics(win.SM_CXVIRTUALSCREEN)
	vh := win.GetSystemMetrics(win.SM_CYVIRTUALSCREEN)

	o := &overlay{
		log:        log,
		background: fitBackground(img, int(vw), int(vh)),
		offsetX:    vx,
		offsetY:    vy,
		result:     make(chan region.Region, 1),
	}
	active = o
	defer func() { active = nil }()

	// Unique class name per invocation avoids collisions with a previous
	// not-yet-unregistered class.
	className := syscall.StringToUTF16Ptr(fmt.Sprintf("glowdSelector_%d", time.Now().UnixNano()))
	wndClass := win.WNDCLASSEX{
		CbSize:        uint32(unsafe.Sizeof(win.WNDCLASSEX{})),
		Style:         win.CS_HREDRAW | win.CS_VREDRAW,
		LpfnWndProc:   syscall.NewCallback(overlayWndProc),
		HInstance:     win.GetModuleHandle(nil),
		HCursor:       win.LoadCursor(0, win.MAKEINTRESOURCE(win.IDC_CROSS)),
		LpszClassName: className,
	}
	if win.RegisterClassEx(&wndClass) == 0 {
		return region.Region{}, false, fmt.Errorf("selector: failed to register overlay window class")
	}
	defer win.UnregisterClass(className)

	// A WM_QUIT from a previous overlay's teardown may still sit in the
	// thread queue; consuming it now would cancel this pick instantly.
	var stale win.MSG
	for {
		ret, _, _ := procPeekMessage.Call(
			uintptr(unsafe.Pointer(&stale)),
			0, 0, 0,
			1, // PM_REMOVE
		)
		if ret == 0 {
			break
		}
	}

	o.hwnd = win.CreateWindowEx(
		win.WS_EX_TOPMOST|win.WS_EX_LAYERED,
		className,
		syscall.StringToUTF16Ptr("glowd region selector"),
		win.WS_POPUP|win.WS_VISIBLE,
		vx, vy, vw, vh,
		0, 0, win.GetModuleHandle(nil), nil,
	)
	if o.hwnd == 0 {
		return region.Region{}, false, fmt.Errorf("selector: failed to create overlay window")
	}
	defer win.DestroyWindow(o.hwnd)

	procSetLayeredWindowAttributes.Call(uintptr(o.hwnd), 0, overlayAlpha, lwaAlpha)

	win.ShowWindow(o.hwnd, win.SW_SHOW)
	win.SetForegroundWindow(o.hwnd)
	win.SetFocus(o.hwnd)
	win.UpdateWindow(o.hwnd)

	log.Debug().
		Int32("x", vx).Int32("y", vy).
		Int32("width", vw).Int32("height", vh).
		Msg("Region selector opened")

	var msg win.MSG
	for {
		switch win.GetMessage(&msg, 0, 0, 0) {
		case 0:
			log.Info().Msg("Region selection cancelled")
			return region.Region{}, false, nil
		case -1:
			return region.Region{}, false, fmt.Errorf("selector: overlay message loop failed")
		}
		win.TranslateMessage(&msg)
		win.DispatchMessage(&msg)

		select {
		case r := <-o.result:
			log.Info().Str("region", r.String()).Msg("Region selected")
			return r, true, nil
		default:
		}
	}
}

// fitBackground returns img sized exactly width x height, padding or cropping
// when the capture does not match the virtual screen.
func fitBackground(img *image.RGBA, width, height int) *image.RGBA {
	if img != nil && img.Bounds().Dx() == width && img.Bounds().Dy() == height {
		return img
	}
	fitted := image.NewRGBA(image.Rect(0, 0, width, height))
	if img != nil {
		draw.Draw(fitted, fitted.Bounds(), img, img.Bounds().Min, draw.Src)
	}
	return fitted
}

func overlayWndProc(hwnd win.HWND, msg uint32, wParam, lParam uintptr) uintptr {
	o := active
	if o == nil {
		return win.DefWindowProc(hwnd, msg, wParam, lParam)
	}

	switch msg {
	case win.WM_LBUTTONDOWN:
		x := int(int32(win.LOWORD(uint32(lParam))))
		y := int(int32(win.HIWORD(uint32(lParam))))
		win.SetCapture(hwnd)
		o.tracker.Press(x, y)
		win.InvalidateRect(hwnd, nil, false)
		win.UpdateWindow(hwnd)
		return 0

	case win.WM_MOUSEMOVE:
		if o.tracker.Phase() == PhaseDragging {
			x := int(int32(win.LOWORD(uint32(lParam))))
			y := int(int32(win.HIWORD(uint32(lParam))))
			o.tracker.Move(x, y)
			win.InvalidateRect(hwnd, nil, false)
			win.UpdateWindow(hwnd)
		}
		return 0

	case win.WM_LBUTTONUP:
		if o.tracker.Phase() == PhaseDragging {
			win.ReleaseCapture()
			x := int(int32(win.LOWORD(uint32(lParam))))
			y := int(int32(win.HIWORD(uint32(lParam))))
			o.tracker.Release(x, y)
			if r, ok := o.tracker.Result(); ok {
				o.result <- region.FromPoints(
					r.X1+int(o.offsetX), r.Y1+int(o.offsetY),
					r.X2+int(o.offsetX), r.Y2+int(o.offsetY),
				)
			}
		}
		return 0

	case win.WM_PAINT:
		var ps win.PAINTSTRUCT
		hdc := win.BeginPaint(hwnd, &ps)
		o.paint(hdc)
		win.EndPaint(hwnd, &ps)
		return 0

	case win.WM_KEYDOWN:
		if wParam == win.VK_ESCAPE {
			o.tracker.Cancel()
			win.PostQuitMessage(0)
		}
		return 0

	case win.WM_NCHITTEST:
		// Everything is client area so mouse events always reach us.
		return uintptr(win.HTCLIENT)

	case win.WM_DESTROY:
		win.PostQuitMessage(0)
		return 0
	}

	return win.DefWindowProc(hwnd, msg, wParam, lParam)
}

func (o *overlay) paint(hdc win.HDC) {
	o.drawBackground(hdc)

	win.SetBkMode(hdc, win.TRANSPARENT)
	win.SetTextColor(hdc, win.COLORREF(0x00FFFFFF))
	hint := "Drag to select a region, Esc cancels"
	win.TextOut(hdc, 16, 16, syscall.StringToUTF16Ptr(hint), int32(len(hint)))

	if outline, ok := o.tracker.Outline(); ok {
		drawOutline(hdc, outline)
	}
}

// drawBackground blits the frozen screenshot into the window, converting RGBA
// rows to the BGRA layout DIB sections use.
func (o *overlay) drawBackground(hdc win.HDC) {
	bounds := o.background.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	memDC := win.CreateCompatibleDC(hdc)
	defer win.DeleteDC(memDC)

	bitmapInfo := win.BITMAPINFO{
		BmiHeader: win.BITMAPINFOHEADER{
			BiSize:        uint32(unsafe.Sizeof(win.BITMAPINFOHEADER{})),
			BiWidth:       int32(width),
			BiHeight:      -int32(height), // top-down
			BiPlanes:      1,
			BiBitCount:    32,
			BiCompression: win.BI_RGB,
		},
	}

	var pBits unsafe.Pointer
	hBitmap := win.CreateDIBSection(memDC, &bitmapInfo.BmiHeader, win.DIB_RGB_COLORS, &pBits, 0, 0)
	if hBitmap == 0 {
		return
	}
	defer win.DeleteObject(win.HGDIOBJ(hBitmap))

	oldBitmap := win.SelectObject(memDC, win.HGDIOBJ(hBitmap))
	defer win.SelectObject(memDC, oldBitmap)

	// 32bpp rows are already DWORD aligned.
	stride := width * 4
	dst := unsafe.Slice((*byte)(pBits), stride*height)
	for y := 0; y < height; y++ {
		src := o.background.Pix[y*o.background.Stride : y*o.background.Stride+stride]
		row := dst[y*stride : (y+1)*stride]
		for x := 0; x < stride; x += 4 {
			row[x] = src[x+2]
			row[x+1] = src[x+1]
			row[x+2] = src[x]
			row[x+3] = src[x+3]
		}
	}

	win.BitBlt(hdc, 0, 0, int32(width), int32(height), memDC, 0, 0, win.SRCCOPY)
}

func drawOutline(hdc win.HDC, r region.Region) {
	// COLORREF is BGR; 0x0000FF is red.
	pen, _, _ := procCreatePen.Call(0, 2, 0x0000FF)
	oldPen := win.SelectObject(hdc, win.HGDIOBJ(pen))
	oldBrush := win.SelectObject(hdc, win.GetStockObject(win.NULL_BRUSH))

	procRectangle.Call(uintptr(hdc), uintptr(r.X1), uintptr(r.Y1), uintptr(r.X2), uintptr(r.Y2))

	win.SelectObject(hdc, oldPen)
	win.SelectObject(hdc, oldBrush)
	win.DeleteObject(win.HGDIOBJ(pen))
}
