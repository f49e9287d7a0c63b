package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/handler"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/repository"
	"github.com/4GeeksAcademy/Elroro23-StarWars-REST-API/internal/server"
	"github.com/spf13/cobra"
)

var jsonOutput bool

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print every route the server registers",
	Long: `Print every route the server registers, the same list GET / returns.

No database connection is opened.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, loggerService, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer loggerService.Shutdown()

		srv := &server.Server{Config: cfg, Logger: log, LoggerService: loggerService}

		// Repositories are never called while listing routes.
		r, err := newRouter(srv, repository.New(nil))
		if err != nil {
			return err
		}

		routes := handler.Routes(r)

		if jsonOutput {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(routes)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH")
		for _, route := range routes {
			fmt.Fprintf(w, "%s\t%s\n", route.Method, route.Path)
		}
		return w.Flush()
	},
}

func init() {
	routesCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
}
