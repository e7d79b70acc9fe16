package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"
	"github.com/spiceai/specs/pkg/config"
	specs_http "github.com/spiceai/specs/pkg/http"
	"github.com/spiceai/specs/pkg/loggers"
	"github.com/spiceai/specs/pkg/specfile"
	"go.uber.org/zap"
)

var (
	portFlag   uint
	watchFlag  bool
	logFlag    bool
	logDirFlag string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the loaded specs over HTTP",
	Example: `
specs serve
specs serve --port 8080 --watch
`,
	Run: func(cmd *cobra.Command, args []string) {
		specsConfig, err := loadConfiguration()
		if err != nil {
			cmd.Println(err.Error())
			return
		}

		logDir := logDirFlag
		if logDir == "" {
			logDir = specsConfig.LogDir
		}
		if logDir == "" && logFlag {
			logDir = config.SpecsLogPath(config.AppPath())
		}
		if logDir != "" {
			logPath, err := loggers.UseFileLogger("specs", logDir)
			if err != nil {
				cmd.Println(err.Error())
				return
			}
			cmd.Printf("logging to %s\n", aurora.Blue(logPath))
		}
		defer loggers.ZapLoggerSync()
		zaplog := loggers.ZapLogger()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		set, err := loadSpecs(ctx, specsConfig)
		if err != nil {
			cmd.Println(err.Error())
			return
		}

		port := specsConfig.HttpPort
		if cmd.Flags().Changed("port") {
			port = portFlag
		}

		server := specs_http.NewServer(port, set)
		if err := server.Start(); err != nil {
			cmd.Println(err.Error())
			return
		}

		if watchFlag {
			paths := specPaths(specsConfig)
			go func() {
				err := specfile.WatchAll(ctx, paths, specsConfig.ListSeparator, func(set *specfile.SpecSet) {
					server.SetSpecs(set)
					zaplog.Info("reloaded specs", zap.Int("specs", set.Len()))
				})
				if err != nil && !errors.Is(err, context.Canceled) {
					zaplog.Error("spec file watcher stopped", zap.Error(err))
				}
			}()
		}

		cmd.Printf("%s %d specs on port %d\n", aurora.Green("Serving"), set.Len(), port)

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGTERM, os.Interrupt)
		<-stop

		if err := server.Shutdown(); err != nil {
			zaplog.Warn("failed to shut down server", zap.Error(err))
		}
	},
}

func init() {
	serveCmd.Flags().UintVarP(&portFlag, "port", "p", 0, "Port to listen on, defaults to http_port of the configuration")
	serveCmd.Flags().BoolVar(&watchFlag, "watch", false, "Reloads the specs when a spec file changes")
	serveCmd.Flags().BoolVar(&logFlag, "log", false, "Also writes logs under .specs/log")
	serveCmd.Flags().StringVar(&logDirFlag, "log-dir", "", "Directory to also write logs to, defaults to log_dir of the configuration")
	RootCmd.AddCommand(serveCmd)
}

