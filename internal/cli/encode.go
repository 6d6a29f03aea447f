package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newEncodeCommand() *cobra.Command {
	var flags paymentFlags
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Print the BR Code payload for a payment",
		Example: `  pix encode --kind random --key 4b5e9b53-bded-4f60-8ba3-e1b2cc3088c5 \
    --name "Mateus Antônio Tavares" --city "João Pessoa" --amount 10.50
  pix encode -f payment.yaml --single-use`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := flags.generator(cmd)
			if err != nil {
				return err
			}
			payload, err := g.Encode()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), payload)
			return err
		},
	}
	flags.register(cmd)
	return cmd
}
