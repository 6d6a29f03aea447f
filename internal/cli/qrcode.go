package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/pixkit/pkg/pix"
	"github.com/dmitrymomot/pixkit/pkg/qrcode"
)

func newQRCodeCommand() *cobra.Command {
	var (
		flags   paymentFlags
		output  string
		dataURI bool
		size    int
	)
	cmd := &cobra.Command{
		Use:   "qrcode",
		Short: "Render the QR code for a payment",
		Long: `Render the payment as a PNG QR code.

Without --output the PNG is written to stdout. With --data-uri a base64 data
URI is printed instead, ready for an <img src> attribute.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			renderer := qrcode.NewRenderer(qrcode.WithSize(size))
			g, err := flags.generator(cmd, pix.WithRenderer(renderer))
			if err != nil {
				return err
			}
			img, err := g.Render(dataURI)
			if err != nil {
				return err
			}

			if output != "" {
				if err := os.WriteFile(output, img, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", output, err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d bytes)\n", output, len(img))
				return nil
			}
			if dataURI {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(img))
				return err
			}
			_, err = cmd.OutOrStdout().Write(img)
			return err
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the image to this file")
	cmd.Flags().BoolVar(&dataURI, "data-uri", false, "emit a base64 data URI instead of raw PNG")
	cmd.Flags().IntVar(&size, "size", qrcode.DefaultSize, "image size in pixels")
	return cmd
}
