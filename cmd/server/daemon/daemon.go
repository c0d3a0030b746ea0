// Package daemon provides the EC0301 document generator service.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/go-viper/mapstructure/v2"
	"github.com/soaringjerry/ec0301/internal/server"
	"github.com/soaringjerry/ec0301/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// CmdName is the command name, also used as config file name and env prefix.
const CmdName = "ec0301"

// App represents the application.
type App struct {
	cmd    *cobra.Command
	viper  *viper.Viper
	config appConfig
	log    *zap.Logger

	daemon *server.Server

	ready     chan struct{}
	readyOnce sync.Once
}

// appConfig holds the configuration for the application.
type appConfig struct {
	Verbosity int  `mapstructure:"verbose"`
	DevLogs   bool `mapstructure:"dev-logs"`

	Server server.StaticConfig `mapstructure:",squash"`
}

// New creates a new App instance with default values.
func New() (*App, error) {
	a := App{ready: make(chan struct{}), log: zap.NewNop()}

	a.cmd = &cobra.Command{
		Use:           CmdName,
		Short:         "EC0301 course evaluation document generator",
		Long:          "HTTP service generating the EC0301 evaluation, attendance, contract and checklist documents for course instructors.",
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Command parsing has been successful. Returns to not print usage anymore.
			a.cmd.SilenceUsage = true
			if err := a.initConfig(); err != nil {
				return err
			}
			log, err := newLogger(a.config.Verbosity, a.config.DevLogs)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.log = log
			a.log.Debug("got app config", zap.Any("config", a.config))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a.cmd.SilenceUsage = true

			return a.run()
		},
	}
	a.viper = viper.New()
	a.cmd.CompletionOptions.HiddenDefaultCmd = true

	installRootCmd(&a)
	a.cmd.PersistentFlags().String("config", "", "use a specific configuration file")
	if err := a.cmd.MarkPersistentFlagFilename("config"); err != nil {
		return nil, err
	}

	if err := a.viper.BindPFlags(a.cmd.PersistentFlags()); err != nil {
		return nil, err
	}
	if err := a.viper.BindPFlags(a.cmd.Flags()); err != nil {
		return nil, err
	}
	// PORT is the conventional variable of container platforms.
	if err := a.viper.BindEnv("listen-port", strings.ToUpper(CmdName)+"_LISTEN_PORT", "PORT"); err != nil {
		return nil, err
	}

	a.installVersion()

	return &a, nil
}

func installRootCmd(app *App) {
	cmd := app.cmd
	defaultConf := server.DefaultConfig()

	cmd.PersistentFlags().CountVarP(&app.config.Verbosity, "verbose", "v", "issue DEBUG logs (-v)")
	cmd.PersistentFlags().BoolVar(&app.config.DevLogs, "dev-logs", false, "human readable console logs instead of JSON")

	cmd.Flags().StringVar(&app.config.Server.ListenHost, "listen-host", defaultConf.ListenHost, "host to listen on")
	cmd.Flags().IntVar(&app.config.Server.ListenPort, "listen-port", defaultConf.ListenPort, "port to listen on")

	cmd.Flags().DurationVar(&app.config.Server.ReadTimeout, "read-timeout", defaultConf.ReadTimeout, "read timeout for HTTP server")
	cmd.Flags().DurationVar(&app.config.Server.WriteTimeout, "write-timeout", defaultConf.WriteTimeout, "write timeout for HTTP server")
	cmd.Flags().DurationVar(&app.config.Server.RequestTimeout, "request-timeout", defaultConf.RequestTimeout, "request timeout for HTTP server")
	cmd.Flags().IntVar(&app.config.Server.MaxHeaderBytes, "max-header-bytes", defaultConf.MaxHeaderBytes, "maximum header bytes for HTTP server")
	cmd.Flags().Int64Var(&app.config.Server.MaxBodyBytes, "max-body-bytes", defaultConf.MaxBodyBytes, "maximum request body bytes")

	cmd.Flags().DurationVar(&app.config.Server.PaymentDelay, "payment-delay", defaultConf.PaymentDelay, "simulated payment gateway latency")
	cmd.Flags().StringVar(&app.config.Server.StaticDir, "static-dir", defaultConf.StaticDir, "directory with the built frontend to serve")
	cmd.Flags().StringVar(&app.config.Server.DevFrontend, "dev-frontend-url", defaultConf.DevFrontend, "proxy non-API requests to this frontend dev server")
	cmd.Flags().StringSliceVar(&app.config.Server.CORSOrigins, "cors-origins", defaultConf.CORSOrigins, "allowed CORS origins, * for any")
	cmd.Flags().BoolVar(&app.config.Server.Metrics, "metrics", defaultConf.Metrics, "expose Prometheus metrics on /metrics")

	if err := cmd.MarkFlagDirname("static-dir"); err != nil {
		// This should never happen.
		panic(fmt.Sprintf("failed to mark static-dir flag as dirname: %v", err))
	}
}

// initConfig loads the optional config file and environment, then decodes
// everything into a.config.
func (a *App) initConfig() error {
	vip := a.viper
	if v, err := a.cmd.Flags().GetString("config"); err == nil && v != "" {
		vip.SetConfigFile(v)
	} else {
		vip.SetConfigName(CmdName)
		vip.AddConfigPath(".")
		if runtime.GOOS != "windows" {
			vip.AddConfigPath("/etc/" + CmdName)
		}
	}
	if err := vip.ReadInConfig(); err != nil {
		var e viper.ConfigFileNotFoundError
		if !errors.As(err, &e) {
			return fmt.Errorf("invalid configuration file: %w", err)
		}
	}

	vip.SetEnvPrefix(CmdName)
	vip.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	vip.AutomaticEnv()

	hooks := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := vip.Unmarshal(&a.config, hooks); err != nil {
		return fmt.Errorf("unable to decode configuration into struct: %w", err)
	}
	a.config.Server.Version = Version
	a.config.Server.Commit = utils.SafeEnv(strings.ToUpper(CmdName)+"_COMMIT", "unknown")
	return nil
}

// Run executes the command and associated process, returning an error if any.
func (a *App) Run() error {
	// Commands that never start the daemon must still release Quit.
	defer a.markReady()
	return a.cmd.Execute()
}

// UsageError returns if the error is a command parsing or runtime one.
func (a *App) UsageError() bool {
	return !a.cmd.SilenceUsage
}

// Hup prints all goroutine stack traces and return false to signal you shouldn't quit.
func (a *App) Hup() (shouldQuit bool) {
	buf := make([]byte, 1<<16)
	n := runtime.Stack(buf, true)
	fmt.Fprintf(os.Stderr, "%s", buf[:n])
	return false
}

// Quit gracefully shuts down the daemon.
func (a *App) Quit() {
	a.WaitReady()
	if a.daemon != nil {
		a.daemon.Quit(false)
	}
}

// WaitReady waits for the daemon to be listening, or to have failed.
func (a *App) WaitReady() {
	<-a.ready
	if a.daemon != nil {
		<-a.daemon.Ready()
	}
}

func (a *App) markReady() {
	a.readyOnce.Do(func() { close(a.ready) })
}

// RootCmd returns the root command.
func (a *App) RootCmd() *cobra.Command {
	return a.cmd
}

// Config returns the decoded configuration.
func (a *App) Config() server.StaticConfig {
	return a.config.Server
}

func (a *App) run() (err error) {
	a.daemon, err = server.New(context.Background(), a.log, a.config.Server)
	a.markReady()
	if err != nil {
		return fmt.Errorf("failed to create server: %v", err)
	}

	return a.daemon.Run()
}
