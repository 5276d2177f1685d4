package cmd

import (
	"fmt"
	"strings"

	"github.com/bnema/wlrwrap/backend"
	"github.com/bnema/wlrwrap/internal/ui"
	"github.com/bnema/wlrwrap/native"
	"github.com/bnema/wlrwrap/render"
	"github.com/spf13/cobra"
)

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the texture formats the renderer supports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b := backend.New(newLibrary().NewBackend())
			defer b.Destroy()

			r := render.AutoCreate(b)
			if r == nil {
				return ErrNoRenderer
			}

			var output strings.Builder
			output.WriteString(ui.FormatAppHeader("TEXTURE FORMATS", "headless renderer"))
			output.WriteString("\n\n")
			output.WriteString(formatsReport(r))
			fmt.Fprintln(cmd.OutOrStdout(), output.String())
			return nil
		},
	}
}

// formatsReport renders the SHM and DMA-BUF format tables of r.
func formatsReport(r *render.Renderer) string {
	var output strings.Builder

	output.WriteString(ui.HeaderStyle.Render("SHM"))
	output.WriteString("\n")
	shm := r.ShmTextureFormats()
	rows := make([][]string, 0, len(shm))
	for _, f := range shm {
		rows = append(rows, []string{native.FormatName(f), fmt.Sprintf("0x%08x", f)})
	}
	output.WriteString(ui.Table([]string{"FORMAT", "FOURCC"}, rows).String())
	output.WriteString("\n\n")

	output.WriteString(ui.HeaderStyle.Render("DMA-BUF"))
	output.WriteString("\n")
	dmabuf := r.DMABufTextureFormats()
	if dmabuf.Len() == 0 {
		output.WriteString(ui.SubtleStyle.Render("none"))
	} else {
		rows = rows[:0]
		for _, f := range dmabuf.Formats() {
			mods := make([]string, 0, len(f.Modifiers))
			for _, m := range f.Modifiers {
				mods = append(mods, modifierName(m))
			}
			rows = append(rows, []string{native.FormatName(f.Format), strings.Join(mods, ", ")})
		}
		output.WriteString(ui.Table([]string{"FORMAT", "MODIFIERS"}, rows).String())
	}
	output.WriteString("\n\n")

	fd := r.DRMFd()
	if fd < 0 {
		output.WriteString(ui.FormatKeyValue("DRM fd", "none"))
	} else {
		output.WriteString(ui.FormatKeyValue("DRM fd", fmt.Sprint(fd)))
	}
	return output.String()
}

func modifierName(m uint64) string {
	switch m {
	case native.ModifierLinear:
		return "LINEAR"
	case native.ModifierInvalid:
		return "INVALID"
	default:
		return fmt.Sprintf("0x%016x", m)
	}
}
