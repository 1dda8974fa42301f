package cmd

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Prints the resolved configuration",
	Long: `Prints the configuration after applying grumm.toml, GRUMM_* environment variables
and the passed flags. Nothing is installed or built.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		encoder := yaml.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent(2)
		err = encoder.Encode(cfg)
		if err != nil {
			return eris.Wrap(err, "Failed to encode configuration")
		}

		return encoder.Close()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
