package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/pars/calc"
)

func newEvalCmd() *cobra.Command {
	var file string
	var verbosity int

	cmd := &cobra.Command{
		Use:           "eval [expression]",
		Short:         "Parse and evaluate an arithmetic expression",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			commonlog.Configure(verbosity, nil)

			var result int64
			switch {
			case file != "":
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("open expression file: %w", err)
				}
				defer f.Close()
				result, err = calc.EvalReader(f)
				if err != nil {
					return err
				}
			case len(args) == 1:
				var err error
				result, err = calc.Eval(args[0])
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("expected an expression argument or --file")
			}

			fmt.Println(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read the expression from a file")
	cmd.Flags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity")

	return cmd
}
