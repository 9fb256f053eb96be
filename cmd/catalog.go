package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"stackaudit/internal/audit"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the declared checksets and their probes",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := audit.BuildCatalog(audit.Params{
			ProjectRoot:  auditCfg.ProjectRoot,
			FrontendURL:  auditCfg.FrontendURL,
			BackendURL:   auditCfg.BackendURL,
			APIURL:       auditCfg.APIURL,
			DatabasePath: auditCfg.DatabasePath,
			RealtimeAddr: auditCfg.RealtimeAddr,
			ProbeTimeout: auditCfg.ProbeTimeout(),
		})

		for _, cs := range catalog {
			fmt.Printf("%s %s (%d probes)\n", colorInfo(fmt.Sprintf("[%d]", cs.Index)), cs.Name, len(cs.Definitions))
			for _, def := range cs.Definitions {
				fmt.Printf("    %-10s %s\n", def.Kind, def.Name)
			}
		}
		return nil
	},
}
