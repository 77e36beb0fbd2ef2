package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var configJSON bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and change settings",
	Long: `Settings tune the matcher weights and thresholds, text extraction, scan
concurrency and rate, and the quick-flip window. They are stored as TOML in
the configuration directory.`,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every setting with its default",
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Long: `Changes one setting after validating it against the others.
List values such as extract.known_institutions are comma-separated.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configListCmd.Flags().BoolVar(&configJSON, "json", false, "output settings as JSON")
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	svc, err := settingsService()
	if err != nil {
		return err
	}

	values := svc.Values()
	if configJSON {
		return outputJSON(cmd, values)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tVALUE\tDEFAULT")
	for _, v := range values {
		marker := ""
		if !v.IsDefault {
			marker = " *"
		}
		fmt.Fprintf(w, "%s\t%s%s\t%s\n", v.Key, v.Value, marker, v.Default)
	}
	return w.Flush()
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	svc, err := settingsService()
	if err != nil {
		return err
	}

	for _, v := range svc.Values() {
		if v.Key == args[0] {
			fmt.Fprintln(cmd.OutOrStdout(), v.Value)
			return nil
		}
	}
	return fmt.Errorf("unknown setting %q", args[0])
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	svc, err := settingsService()
	if err != nil {
		return err
	}

	if err := svc.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
	return nil
}
