package commands

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/nursery-shifts/pkg/handlers"
)

// DefaultPort is used when neither --port, the config nor PORT set one
const DefaultPort = 8080

// servePort picks the listen port: flag, then config, then PORT, then the default
func servePort(flagPort, configPort int, envPort string) string {
	switch {
	case flagPort > 0:
		return fmt.Sprint(flagPort)
	case configPort > 0:
		return fmt.Sprint(configPort)
	case envPort != "":
		return envPort
	default:
		return fmt.Sprint(DefaultPort)
	}
}

// ServeCmd creates the serve command
func ServeCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scheduling API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flagPort, _ := cmd.Flags().GetInt("port")
			port := servePort(flagPort, app.Cfg.Server.Port, os.Getenv("PORT"))

			if os.Getenv("GIN_MODE") == "" {
				gin.SetMode(gin.ReleaseMode)
			}

			r := handlers.NewRouter(&handlers.Handler{Logger: app.Logger})

			app.Logger.Info("Server starting", zap.String("port", port))
			if err := r.Run(":" + port); err != nil {
				return fmt.Errorf("could not run server: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().IntP("port", "p", 0, "Port to listen on")

	return cmd
}
