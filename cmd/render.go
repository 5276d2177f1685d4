package cmd

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/bnema/wlrwrap/backend"
	"github.com/bnema/wlrwrap/geom"
	"github.com/bnema/wlrwrap/internal/config"
	"github.com/bnema/wlrwrap/internal/logger"
	"github.com/bnema/wlrwrap/internal/ui"
	"github.com/bnema/wlrwrap/native"
	"github.com/bnema/wlrwrap/render"
	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
)

type renderOptions struct {
	width       int
	height      int
	clear       string
	rects       []string
	scissor     string
	texture     string
	texturePos  string
	textureSize string
	alpha       float32
	format      string
	out         string
}

func newRenderCmd() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a scene with the headless renderer and save it as an image",
		Long: `Render clears the target, draws the given rectangles and texture and
reads the result back through ReadPixels. Unset options come from the
[renderer] section of the config file.`,
		Example: `  wlrwrap render --width 320 --height 200 --clear '#202020' \
    --rect '10,10,100,50,#ff0000' --texture logo.png --texture-pos 150,20 --out scene.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			if opts.width == 0 {
				opts.width = cfg.Renderer.Width
			}
			if opts.height == 0 {
				opts.height = cfg.Renderer.Height
			}
			if opts.clear == "" {
				opts.clear = cfg.Renderer.Background
			}
			if opts.format == "" {
				opts.format = cfg.Renderer.Format
			}

			img, err := renderScene(opts)
			if err != nil {
				return err
			}
			if err := imaging.Save(img, opts.out); err != nil {
				return fmt.Errorf("failed to write %s: %w", opts.out, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.FormatStatus(true,
				fmt.Sprintf("Rendered %dx%d to %s", opts.width, opts.height, opts.out)))
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.width, "width", 0, "target width (default renderer.width)")
	f.IntVar(&opts.height, "height", 0, "target height (default renderer.height)")
	f.StringVar(&opts.clear, "clear", "", "clear color #rrggbb[aa] (default renderer.background)")
	f.StringArrayVar(&opts.rects, "rect", nil, "rectangle x,y,w,h,#color (repeatable)")
	f.StringVar(&opts.scissor, "scissor", "", "clip drawing after the clear to x,y,w,h")
	f.StringVar(&opts.texture, "texture", "", "image file drawn as a texture")
	f.StringVar(&opts.texturePos, "texture-pos", "0,0", "texture position x,y")
	f.StringVar(&opts.textureSize, "texture-size", "", "resize the texture to WIDTHxHEIGHT before upload")
	f.Float32Var(&opts.alpha, "alpha", 1, "texture opacity")
	f.StringVar(&opts.format, "format", "", "readback format, e.g. AR24 (default renderer.format)")
	f.StringVarP(&opts.out, "out", "o", "out.png", "output image file")

	return cmd
}

// renderScene draws opts into a fresh target and returns the pixels read
// back from it.
func renderScene(opts *renderOptions) (*image.RGBA, error) {
	if opts.width <= 0 || opts.height <= 0 {
		return nil, fmt.Errorf("invalid size %dx%d", opts.width, opts.height)
	}
	bg, err := parseColor(opts.clear)
	if err != nil {
		return nil, err
	}
	format, err := parseFormat(opts.format)
	if err != nil {
		return nil, err
	}
	rects := make([]coloredRect, 0, len(opts.rects))
	for _, s := range opts.rects {
		rc, err := parseRect(s)
		if err != nil {
			return nil, err
		}
		rects = append(rects, rc)
	}
	var scissor *geom.Box
	if opts.scissor != "" {
		box, err := parseBox(opts.scissor)
		if err != nil {
			return nil, err
		}
		scissor = &box
	}
	pos, err := parsePoint(opts.texturePos)
	if err != nil {
		return nil, err
	}

	b := backend.New(newLibrary().NewBackend())
	defer b.Destroy()

	r := render.AutoCreate(b)
	if r == nil {
		return nil, ErrNoRenderer
	}

	var tex *render.Texture
	if opts.texture != "" {
		tex, err = loadTexture(r, opts.texture, opts.textureSize)
		if err != nil {
			return nil, err
		}
	}

	w, h := uint32(opts.width), uint32(opts.height)
	projection := geom.Identity()

	r.Begin(w, h)
	r.Clear(bg)
	r.Scissor(scissor)
	for _, rc := range rects {
		r.RenderRect(rc.box, rc.color, projection)
	}
	if tex != nil && !r.RenderTexture(tex, projection, pos.X, pos.Y, opts.alpha) {
		r.End()
		return nil, fmt.Errorf("failed to render texture %s", opts.texture)
	}
	r.Scissor(nil)
	r.End()

	data := make([]byte, int(w)*int(h)*4)
	if !r.ReadPixels(format, w*4, w, h, 0, 0, 0, 0, data) {
		return nil, ErrReadPixels
	}
	logger.Debugf("read back %dx%d as %s", w, h, native.FormatName(format))
	return decodeFormat(format, opts.width, opts.height, data), nil
}

// loadTexture decodes path, optionally resizes it, and uploads it as
// ABGR8888, which is R, G, B, A in memory like image.RGBA.
func loadTexture(r *render.Renderer, path, size string) (*render.Texture, error) {
	src, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture: %w", err)
	}
	if size != "" {
		w, h, err := parseSize(size)
		if err != nil {
			return nil, err
		}
		src = imaging.Resize(src, w, h, imaging.Lanczos)
	}

	rgba := toRGBA(src)
	bounds := rgba.Bounds()
	tex := render.TextureFromPixels(r, native.FormatABGR8888, uint32(rgba.Stride),
		uint32(bounds.Dx()), uint32(bounds.Dy()), rgba.Pix)
	if tex == nil {
		return nil, fmt.Errorf("failed to upload texture %s (%dx%d)", path, bounds.Dx(), bounds.Dy())
	}
	return tex, nil
}

// toRGBA returns img as a zero-based premultiplied image.
func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return rgba
	}
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// decodeFormat turns ReadPixels output into an RGBA image.
func decodeFormat(format uint32, width, height int, data []byte) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	swap := format == native.FormatARGB8888 || format == native.FormatXRGB8888
	opaque := format == native.FormatXRGB8888 || format == native.FormatXBGR8888
	for i := 0; i+3 < len(data) && i+3 < len(img.Pix); i += 4 {
		if swap {
			img.Pix[i], img.Pix[i+1], img.Pix[i+2] = data[i+2], data[i+1], data[i]
		} else {
			img.Pix[i], img.Pix[i+1], img.Pix[i+2] = data[i], data[i+1], data[i+2]
		}
		if opaque {
			img.Pix[i+3] = 0xff
		} else {
			img.Pix[i+3] = data[i+3]
		}
	}
	return img
}
