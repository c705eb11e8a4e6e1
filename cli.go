package main

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"hemtjan.st/solarmax/config"
	"hemtjan.st/solarmax/maxcomm"
)

func setupLogger(cfg config.LogConfig) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if strings.ToLower(cfg.Format) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log
}

// selectFields resolves identifiers against reg. Unknown identifiers are
// skipped. A list without any identifiers, blank entries aside, selects every
// data field.
func selectFields(reg *maxcomm.Registry, ids []string, log logrus.FieldLogger) []*maxcomm.Field {
	var out []*maxcomm.Field
	unknown := false
	seen := map[string]bool{}
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		f, ok := reg.Lookup(id)
		if !ok {
			log.Warnf("Ignoring unknown field %s", id)
			unknown = true
			continue
		}
		seen[id] = true
		out = append(out, f)
	}
	if len(out) == 0 && !unknown {
		log.Info("Requesting all known data fields")
		return reg.DataFields()
	}
	return out
}

func logValues(log logrus.FieldLogger, reply *maxcomm.Packet) {
	for _, it := range reply.Payload {
		entry := log.WithField("field", it.Field.ID)
		if !it.HasValue {
			entry.Infof("%s: no value", it.Field.Name)
			continue
		}
		s, err := it.Field.Display(it.Value)
		if err != nil {
			entry.WithError(err).Warnf("%s: %q", it.Field.Name, it.Value)
			continue
		}
		entry.Infof("%s: %s", it.Field.Name, s)
	}
}
