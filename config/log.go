package config

import (
	"os"

	"github.com/sirupsen/logrus"

	"campus-chat/config/common"
)

func NewLogger(cfg *common.Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05.000"})

	levelName, _ := cfg.GetLogConfig()
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		level = logrus.InfoLevel
		log.WithError(err).Warnf("unknown LOG_LEVEL %q, using info", levelName)
	}
	log.SetLevel(level)
	return log
}
