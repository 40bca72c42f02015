package printer

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"log/slog"
	"os"

	"golang.org/x/image/draw"

	"github.com/sevigo/print-relay/internal/config"
	"github.com/sevigo/print-relay/internal/core"
	"github.com/sevigo/print-relay/internal/escpos"
)

// MaxImagePixels bounds the declared size of an image before it is decoded.
const MaxImagePixels = 64 << 20

// Executor renders images as centered ESC/POS bit images followed by a cut.
type Executor struct {
	mode      escpos.ImageMode
	cut       escpos.CutMode
	feedLines int
	maxWidth  int
	logger    *slog.Logger
}

// NewExecutor builds an Executor from the printer configuration.
func NewExecutor(cfg *config.PrinterConfig, logger *slog.Logger) (*Executor, error) {
	mode, err := escpos.ParseImageMode(cfg.ImageMode)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		mode:      mode,
		cut:       escpos.CutMode(cfg.CutMode),
		feedLines: cfg.FeedLines,
		maxWidth:  cfg.MaxWidth,
		logger:    logger,
	}, nil
}

// Render prints img on dev and always closes dev before returning. Failures are
// print-kind JobErrors.
func (e *Executor) Render(ctx context.Context, dev core.Device, img *core.LocalImage) error {
	defer func() {
		if err := dev.Close(); err != nil {
			e.logger.WarnContext(ctx, "failed to close printer session", "error", err)
		}
	}()

	bm, err := e.loadBitmap(img.Path)
	if err != nil {
		return core.PrintError("decode image", err)
	}

	data, err := escpos.Image(bm, e.mode)
	if err != nil {
		return core.PrintError("encode image", err)
	}

	header := append(escpos.Initialize(), escpos.Align(escpos.AlignCenter)...)
	if err := dev.Write(ctx, header); err != nil {
		return core.PrintError("set alignment", err)
	}
	if err := dev.Write(ctx, data); err != nil {
		return core.PrintError("transfer image", err)
	}
	trailer := append(escpos.Feed(e.feedLines), escpos.Cut(e.cut)...)
	if err := dev.Write(ctx, trailer); err != nil {
		return core.PrintError("cut", err)
	}

	e.logger.DebugContext(ctx, "image rendered", "path", img.Path, "width", bm.Width, "height", bm.Height, "mode", e.mode)
	return nil
}

// loadBitmap decodes the file, scales it down to maxWidth keeping the aspect
// ratio, and thresholds it to monochrome.
func (e *Executor) loadBitmap(path string) (*escpos.Bitmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%s image has no pixels", format)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxImagePixels {
		return nil, fmt.Errorf("%s image of %dx%d exceeds %d pixels", format, cfg.Width, cfg.Height, MaxImagePixels)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	src, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("%s image has no pixels", format)
	}
	if e.maxWidth > 0 && b.Dx() > e.maxWidth {
		height := b.Dy() * e.maxWidth / b.Dx()
		if height < 1 {
			height = 1
		}
		dst := image.NewNRGBA(image.Rect(0, 0, e.maxWidth, height))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
		src = dst
	}
	return escpos.Threshold(src), nil
}
