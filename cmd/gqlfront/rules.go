package main

import (
	"github.com/spf13/cobra"

	"github.com/hanpama/gqlfront/internal/report"
	"github.com/hanpama/gqlfront/internal/validator/rules"
)

func newRulesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the validation rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			disabled := map[string]bool{}
			for _, name := range a.cfg.Rules.Disabled {
				disabled[name] = true
			}
			if a.cfg.Output != "text" {
				type entry struct {
					Name    string `json:"name" yaml:"name"`
					Enabled bool   `json:"enabled" yaml:"enabled"`
				}
				var out []entry
				for _, r := range rules.Specified() {
					out = append(out, entry{r.Name(), !disabled[r.Name()]})
				}
				return report.Encode(a.stdout, a.cfg.Output, out)
			}
			report.Names(a.stdout, rules.Names(), disabled)
			return nil
		},
	}
}
