// SPDX-License-Identifier: EPL-2.0

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ik5/peaks/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr, dir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve .dat and .json waveform files over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			if dir == "" {
				dir = a.cfg.Server.Dir
			}

			return server.Run(cmd.Context(), addr, server.New(os.DirFS(dir), a.logger), a.logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: server.addr)")
	cmd.Flags().StringVar(&dir, "dir", "", "directory to serve (default: server.dir)")

	return cmd
}
