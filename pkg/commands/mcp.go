package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/symptoms/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	r := mcp.Runner{Name: "symptoms"}
	var transport string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "start the Model Context Protocol server",
		Long: `Launch an MCP server that lets an assistant log entries, edit them and search
the history through the Model Context Protocol.`,
		Example: `
symptoms mcp --transport stdio
symptoms mcp --addr 127.0.0.1:0
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeService(cmd.Context(), svc)

			r.Service = svc
			r.Version = version
			r.Transport = mcp.Transport(transport)
			r.Out = cmd.OutOrStdout()
			return r.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&transport, "transport", string(mcp.TransportHTTP), "transport to use: http or stdio")
	cmd.Flags().StringVar(&r.HTTPListenAddr, "addr", mcp.DefaultAddr, "host:port for the HTTP transport, port 0 picks one")
	cmd.Flags().StringVar(&r.HTTPEndpointPath, "path", mcp.DefaultPath, "HTTP endpoint path")
	cmd.Flags().StringVar(&r.HTTPServerCert, "tls-cert", "", "TLS certificate file for HTTPS")
	cmd.Flags().StringVar(&r.HTTPServerKey, "tls-key", "", "TLS private key file for HTTPS")

	topLevel.AddCommand(cmd)
}
