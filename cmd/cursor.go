package cmd

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/bnema/wlrwrap/backend"
	"github.com/bnema/wlrwrap/cursor"
	"github.com/bnema/wlrwrap/geom"
	"github.com/bnema/wlrwrap/internal/config"
	"github.com/bnema/wlrwrap/internal/replay"
	"github.com/bnema/wlrwrap/internal/ui"
	"github.com/bnema/wlrwrap/layout"
	"github.com/bnema/wlrwrap/native"
	"github.com/bnema/wlrwrap/native/headless"
	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
)

func newCursorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cursor",
		Short: "Drive a cursor over the configured output layout",
	}
	cmd.AddCommand(newCursorReplayCmd())
	cmd.AddCommand(newCursorImageCmd())
	return cmd
}

func newCursorReplayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Replay a scripted event sequence through a cursor",
		Long: `Replay creates the devices declared in the script, attaches them to a
cursor laid out over the [[outputs]] of the config file and emits the
events. Every notification the cursor re-emits is printed. Pointer motion
moves the cursor the way a compositor would.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := replay.Load(args[0])
			if err != nil {
				return err
			}
			return runReplay(cmd.OutOrStdout(), script, config.Get().Outputs)
		},
	}
}

// scene is a backend with an output layout and a cursor attached to it.
type scene struct {
	lib     *headless.Library
	native  *headless.Backend
	backend *backend.Backend
	layout  *layout.OutputLayout
	cursor  *cursor.Cursor
}

func newScene(outputs []config.OutputConfig) (*scene, error) {
	lib := newLibrary()
	s := &scene{lib: lib, native: lib.NewBackend()}
	s.backend = backend.New(s.native)

	s.layout = layout.Create(lib)
	if s.layout == nil {
		s.destroy()
		return nil, errors.New("failed to create output layout")
	}
	for _, o := range outputs {
		out := s.native.NewOutput(o.Name, o.Width, o.Height, o.Scale)
		if o.Auto {
			s.layout.AddAuto(out)
		} else {
			s.layout.Add(out, o.X, o.Y)
		}
	}

	s.cursor = cursor.Create(lib)
	if s.cursor == nil {
		s.destroy()
		return nil, ErrCursorAlloc
	}
	s.cursor.AttachOutputLayout(s.layout)
	return s, nil
}

func (s *scene) destroy() {
	if s.cursor != nil {
		s.cursor.Destroy()
	}
	if s.layout != nil {
		s.layout.Destroy()
	}
	s.backend.Destroy()
}

func runReplay(out io.Writer, script *replay.Script, outputs []config.OutputConfig) error {
	s, err := newScene(outputs)
	if err != nil {
		return err
	}
	defer s.destroy()

	sess, err := replay.NewSession(s.lib, s.native, script)
	if err != nil {
		return err
	}
	for _, dev := range sess.Devices {
		s.cursor.AttachInputDevice(dev)
	}

	p := &printer{out: out, cursor: s.cursor}
	p.connect()
	defer p.conns.Invalidate()

	fmt.Fprintln(out, ui.FormatAppHeader("CURSOR REPLAY", fmt.Sprintf("%d events", len(script.Events))))
	if err := sess.Play(script.Events); err != nil {
		return err
	}
	fmt.Fprintln(out, ui.CreateSeparator(50, "─"))
	fmt.Fprintln(out, ui.FormatKeyValue("Notifications", fmt.Sprint(p.count)))
	fmt.Fprintln(out, ui.FormatKeyValue("Position", formatPoint(s.cursor.Position())))
	return nil
}

func formatPoint(p geom.Point) string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}

func newCursorImageCmd() *cobra.Command {
	var (
		hotspot string
		scale   float64
	)

	cmd := &cobra.Command{
		Use:   "image [image.png]",
		Short: "Set a cursor image and report what the native cursor stored",
		Long: `Image loads the file (default cursor.image), scales it by the cursor scale
so it stays the same logical size on scaled outputs, and sets it on a cursor.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			path := cfg.Cursor.Image
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return errors.New("no cursor image given and cursor.image is not set")
			}
			hs := image.Pt(cfg.Cursor.HotspotX, cfg.Cursor.HotspotY)
			if hotspot != "" {
				p, err := parsePoint(hotspot)
				if err != nil {
					return err
				}
				hs = p
			}
			if !cmd.Flags().Changed("scale") {
				scale = cfg.Cursor.Scale
			}
			if scale <= 0 {
				return fmt.Errorf("invalid scale %v", scale)
			}

			src, err := imaging.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open cursor image: %w", err)
			}
			return runCursorImage(cmd.OutOrStdout(), src, hs, scale, cfg.Outputs)
		},
	}

	cmd.Flags().StringVar(&hotspot, "hotspot", "", "hotspot x,y in unscaled image pixels (default cursor.hotspot_x/y)")
	cmd.Flags().Float64Var(&scale, "scale", 1, "cursor scale (default cursor.scale)")
	return cmd
}

func runCursorImage(out io.Writer, src image.Image, hotspot image.Point, scale float64, outputs []config.OutputConfig) error {
	s, err := newScene(outputs)
	if err != nil {
		return err
	}
	defer s.destroy()

	img := src
	if scale != 1 {
		b := src.Bounds()
		w := int(math.Round(float64(b.Dx()) * scale))
		h := int(math.Round(float64(b.Dy()) * scale))
		img = imaging.Resize(src, w, h, imaging.Lanczos)
		hotspot = image.Pt(int(math.Round(float64(hotspot.X)*scale)), int(math.Round(float64(hotspot.Y)*scale)))
	}
	s.cursor.SetImage(img, hotspot, float32(scale))

	fmt.Fprintln(out, ui.FormatAppHeader("CURSOR IMAGE", ""))
	nc, ok := s.cursor.Handle().(*headless.Cursor)
	if !ok {
		fmt.Fprintln(out, ui.FormatStatus(true, "image set"))
		return nil
	}
	stored := nc.Image()
	fmt.Fprintln(out, ui.FormatKeyValue("Size", fmt.Sprintf("%dx%d", stored.Width, stored.Height)))
	fmt.Fprintln(out, ui.FormatKeyValue("Stride", fmt.Sprint(stored.Stride)))
	fmt.Fprintln(out, ui.FormatKeyValue("Hotspot", fmt.Sprintf("%d,%d", stored.HotspotX, stored.HotspotY)))
	fmt.Fprintln(out, ui.FormatKeyValue("Scale", fmt.Sprint(stored.Scale)))
	fmt.Fprintln(out, ui.FormatKeyValue("Format", native.FormatName(native.FormatARGB8888)))
	if len(stored.Pixels) >= 4 {
		px := stored.Pixels
		argb := uint32(px[3])<<24 | uint32(px[2])<<16 | uint32(px[1])<<8 | uint32(px[0])
		fmt.Fprintln(out, ui.FormatKeyValue("First pixel", fmt.Sprintf("0x%08x", argb)))
	}
	return nil
}
