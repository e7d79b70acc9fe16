package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spiceai/specs/pkg/api"
	"github.com/spiceai/specs/pkg/specdata"
)

var deriveCmd = &cobra.Command{
	Use:   "derive <key>",
	Short: "Describes the spec a transformation of a spec produces",
	Args:  cobra.ExactArgs(1),
	Example: `
specs derive revenue --method moving --how average --period 3
specs derive age --method consolidate --how cumulate --direction upper
specs derive revenue --method wtreduction --how average --axis Region
`,
	Run: func(cmd *cobra.Command, args []string) {
		request, err := deriveRequestFromFlags(cmd.Flags())
		if err != nil {
			cmd.Printf("%s: %s\n", aurora.Red("error"), err.Error())
			return
		}

		ctx := context.Background()
		backend, err := newBackend(ctx)
		if err != nil {
			cmd.Println(err.Error())
			return
		}

		derived, err := backend.Derive(ctx, args[0], request)
		if err != nil {
			cmd.Printf("%s: %s\n", aurora.Red("error"), err.Error())
			return
		}

		printSpec(cmd, derived)
	},
}

var combineCmd = &cobra.Command{
	Use:   "combine <key> <operation> <other-key>",
	Short: "Describes the spec a binary operation on two specs produces",
	Args:  cobra.ExactArgs(3),
	Example: `
specs combine revenue divide cost
specs combine region couple region
`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		backend, err := newBackend(ctx)
		if err != nil {
			cmd.Println(err.Error())
			return
		}

		combined, err := backend.Combine(ctx, args[0], &api.CombineRequest{Method: args[1], Other: args[2]})
		if err != nil {
			cmd.Printf("%s: %s\n", aurora.Red("error"), err.Error())
			return
		}

		printSpec(cmd, combined)
	},
}

func bindDeriveFlags(flags *pflag.FlagSet) {
	methods := specdata.Methods()
	hows := make([]string, len(methods))
	for i, method := range methods {
		hows[i] = fmt.Sprintf("%s: %s", method, strings.Join(specdata.Hows(method), "|"))
	}

	flags.String("method", "", fmt.Sprintf("Transformation method, one of %s", strings.Join(methods, ", ")))
	flags.String("how", "", fmt.Sprintf("Variant of the method (%s)", strings.Join(hows, "; ")))
	flags.String("axis", "", "Field the transformation groups or scales along")
	flags.Int("period", 0, "Window length of a moving transformation")
	flags.String("weight", "", "Field weighting a consolidation")
	flags.String("direction", "", "Direction of a cumulation, 'lower' or 'upper'")
	flags.Float64("factor", 0, "Constant of a factor transformation")
}

// Builds a derive request from the flags, checking that every parameter the
// chosen transformation needs was given. Axis and weight may be left empty.
func deriveRequestFromFlags(flags *pflag.FlagSet) (*api.DeriveRequest, error) {
	request := &api.DeriveRequest{}
	request.Method, _ = flags.GetString("method")
	request.How, _ = flags.GetString("how")
	request.Axis, _ = flags.GetString("axis")
	request.Weight, _ = flags.GetString("weight")
	request.Direction, _ = flags.GetString("direction")

	if flags.Changed("period") {
		period, err := flags.GetInt("period")
		if err != nil {
			return nil, err
		}
		request.Period = &period
	}
	if flags.Changed("factor") {
		factor, err := flags.GetFloat64("factor")
		if err != nil {
			return nil, err
		}
		request.Factor = &factor
	}

	placeholders, err := specdata.Placeholders(request.Method, request.How)
	if err != nil {
		if hows := specdata.Hows(request.Method); len(hows) > 0 {
			return nil, fmt.Errorf("%w, expected one of %s", err, strings.Join(hows, ", "))
		}
		return nil, fmt.Errorf("%w, expected one of %s", err, strings.Join(specdata.Methods(), ", "))
	}

	for _, placeholder := range placeholders {
		var given bool
		switch placeholder {
		case "period":
			given = request.Period != nil
		case "factor":
			given = request.Factor != nil
		case "direction":
			given = request.Direction != ""
		default:
			given = true
		}
		if !given {
			return nil, fmt.Errorf("--%s is required by %s %s", placeholder, request.Method, request.How)
		}
	}

	return request, nil
}

func init() {
	bindDeriveFlags(deriveCmd.Flags())
	_ = deriveCmd.MarkFlagRequired("method")
	_ = deriveCmd.MarkFlagRequired("how")
	RootCmd.AddCommand(deriveCmd)
	RootCmd.AddCommand(combineCmd)
}
