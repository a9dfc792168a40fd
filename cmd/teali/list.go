package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hashprotocol/AlgoTeal-interpreter/protocol/vm"
)

var fieldGroups = []vm.FieldGroup{
	vm.TxnFields,
	vm.GlobalFields,
	vm.AssetHoldingFields,
	vm.AssetParamsFields,
	vm.AppParamsFields,
}

func newFieldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fields [group]",
		Short: "list the fields opcodes can read",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, g := range fieldGroups {
				if len(args) == 1 && args[0] != g.String() {
					continue
				}
				fmt.Fprintf(w, "%s:\n", g)
				for _, f := range vm.Fields(g) {
					typ := f.Type.String()
					if f.Array {
						typ += " array"
					}
					fmt.Fprintf(w, "  %-28s v%d  %s\n", f.Name, f.Version, typ)
				}
				if len(args) == 1 {
					return nil
				}
			}
			if len(args) == 1 {
				return fmt.Errorf("unknown field group %q", args[0])
			}
			return nil
		},
	}
}

func newOpcodesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "opcodes",
		Short: "list every opcode with its version and arguments",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			for _, op := range vm.Opcodes() {
				args := make([]string, len(op.Args))
				for i, a := range op.Args {
					args[i] = a.String()
				}
				fmt.Fprintf(w, "v%d  %-20s %s\n", op.Version, op.Name, strings.Join(args, ", "))
			}
		},
	}
}
