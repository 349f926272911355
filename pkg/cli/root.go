package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/synaptica-ai/heartrisk/pkg/common/logger"
)

// settings resolves options from flags, HEARTCTL_* variables and the config file.
type settings struct {
	v       *viper.Viper
	cfgFile string
}

func (s *settings) artifactDir() string {
	return s.v.GetString("artifacts")
}

func (s *settings) load() error {
	if s.cfgFile != "" {
		s.v.SetConfigFile(s.cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		s.v.AddConfigPath(filepath.Join(home, ".heartctl"))
		s.v.SetConfigType("yaml")
		s.v.SetConfigName("config")
	}

	s.v.SetEnvPrefix("HEARTCTL")
	s.v.AutomaticEnv()

	if err := s.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if s.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// NewRootCommand builds the heartctl command tree.
func NewRootCommand() *cobra.Command {
	s := &settings{v: viper.New()}

	root := &cobra.Command{
		Use:   "heartctl",
		Short: "Score cardiac risk observations against local model artifacts",
		Long: `heartctl loads the model, scaler and column artifacts from a directory
and runs the same assessment the web service performs.

Options may also come from $HOME/.heartctl/config.yaml or HEARTCTL_*
environment variables.

It is an educational tool and not a medical device.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.Log.SetOutput(cmd.ErrOrStderr())
			logger.Log.SetLevel(logrus.WarnLevel)
			if err := s.load(); err != nil {
				return err
			}
			if s.v.GetBool("verbose") {
				logger.Log.SetLevel(logrus.DebugLevel)
				if used := s.v.ConfigFileUsed(); used != "" {
					logger.Log.WithField("file", used).Debug("using config file")
				}
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&s.cfgFile, "config", "", "config file (default: $HOME/.heartctl/config.yaml)")
	flags.String("artifacts", ".", "directory holding model.json, scaler.json and columns.json|yaml")
	flags.BoolP("verbose", "v", false, "verbose output")
	_ = s.v.BindPFlag("artifacts", flags.Lookup("artifacts"))
	_ = s.v.BindPFlag("verbose", flags.Lookup("verbose"))

	root.AddCommand(newScoreCommand(s))
	root.AddCommand(newSchemaCommand(s))
	return root
}
