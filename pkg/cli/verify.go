package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/insanefusion/fusionenv/pkg/python"
	"github.com/insanefusion/fusionenv/pkg/verify"
)

func newVerifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check that every expected package imports in the Python interpreter",
		RunE:  runVerify,
		Args:  cobra.NoArgs,
	}
}

func runVerify(cmd *cobra.Command, args []string) error {
	py, err := python.Find()
	if err != nil {
		return err
	}

	results := verify.Run(py, verify.DefaultChecks)
	if n := verify.FailureCount(results); n > 0 {
		return fmt.Errorf("%d of %d packages failed to import", n, len(results))
	}
	return nil
}
