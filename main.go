package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tarm/serial"
	"lib.hemtjan.st/client"
	"lib.hemtjan.st/device"
	"lib.hemtjan.st/transport/mqtt"

	"hemtjan.st/solarmax/config"
	"hemtjan.st/solarmax/maxcomm"
	"hemtjan.st/solarmax/monitor"
	"hemtjan.st/solarmax/publish"
)

func main() {
	configFile := flag.String("config", "", "YAML configuration file")
	serialDevice := flag.String("device", "/dev/ttyUSB0", "Serial device")
	baudFlag := flag.Int("speed", 19200, "Baud rate of serial port")
	address := flag.Int("address", 0, "Inverter address (0 for broadcast)")
	interval := flag.Duration("interval", 0, "Poll repeatedly with this interval until interrupted")
	hemtjanst := flag.Bool("hemtjanst", false, "Publish readings as a hemtjanst device")
	topicName := flag.String("topic", "", "Topic of hemtjanst device (default solarmax/<address>)")
	name := flag.String("name", "SolarMax Inverter", "Name of hemtjanst device")
	metricsAddr := flag.String("metrics", "", "Serve Prometheus metrics on this address")
	verbose := flag.Bool("v", false, "Verbose output")

	mqFlags := mqtt.MustFlags(flag.String, flag.Bool)
	flag.Parse()

	cfg := config.Default()
	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); err != nil {
			logrus.Fatalf("%v", err)
		}
	}

	// Explicit flags win over the configuration file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "device":
			cfg.Serial.Device = *serialDevice
		case "speed":
			cfg.Serial.Baud = *baudFlag
		case "address":
			cfg.Inverter.Address = *address
		case "interval":
			cfg.Inverter.Interval = *interval
		case "hemtjanst":
			cfg.Hemtjanst.Enabled = *hemtjanst
		case "topic":
			cfg.Hemtjanst.Topic = *topicName
		case "name":
			cfg.Hemtjanst.Name = *name
		case "metrics":
			cfg.Monitor.Enabled = *metricsAddr != ""
			cfg.Monitor.Addr = *metricsAddr
		case "v":
			if *verbose {
				cfg.Log.Level = "debug"
			}
		}
	})
	if flag.NArg() > 0 {
		cfg.Inverter.Fields = strings.Split(flag.Arg(0), ",")
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	log := setupLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := maxcomm.DefaultRegistry()
	fields := selectFields(reg, cfg.Inverter.Fields, log)
	if len(fields) == 0 {
		log.Fatal("No valid fields to request")
	}

	metrics := monitor.New()
	if cfg.Monitor.Enabled {
		go metrics.Serve(cfg.Monitor.Addr, log)
	}

	var pub *publish.Publisher
	if cfg.Hemtjanst.Enabled {
		mq, err := mqtt.New(ctx, mqFlags())
		if err != nil {
			log.Fatalf("connecting to mqtt: %v", err)
		}

		// Spawn a goroutine to detect MQTT errors and handle reconnect
		go func() {
			for {
				ok, err := mq.Start()
				if err != nil {
					log.Printf("MQTT Error: %s", err)
				}
				if !ok {
					os.Exit(1)
				}
				time.Sleep(3 * time.Second)
				log.Printf("MQTT: Reconnecting")
			}
		}()

		pub = publish.New(cfg.Topic(), cfg.Hemtjanst.Name, fields, func(info *device.Info) (publish.Updater, error) {
			d, err := client.NewDevice(info, mq)
			if err != nil {
				return nil, err
			}
			return publish.FromClient(d), nil
		}, log)
	}

	s, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Serial.Device,
		Baud:        cfg.Serial.Baud,
		ReadTimeout: cfg.Serial.ReadTimeout,
		Size:        8,
		Parity:      serial.ParityNone,
		StopBits:    serial.Stop1,
	})
	if err != nil {
		log.Fatalf("error opening %s: %v", cfg.Serial.Device, err)
	}
	defer s.Close()

	c := maxcomm.NewClient(s, reg, log)
	c.Source = cfg.Inverter.Source
	c.BatchSize = cfg.Inverter.FieldsPerRequest
	c.Observer = metrics

	dest := cfg.Inverter.Address
	for {
		log.WithField("fields", len(fields)).Info("Requesting fields")
		reply, err := c.Request(ctx, dest, fields)
		switch {
		case err == nil:
			metrics.SetOnline(dest, true)
			metrics.Record(dest, reply)
			logValues(log, reply)
			if pub != nil {
				if err := pub.Publish(reply); err != nil {
					log.WithError(err).Error("Publishing to hemtjanst failed")
				}
			}
		case ctx.Err() != nil:
		default:
			log.WithError(err).Warn("No usable reply received")
			metrics.SetOnline(dest, false)
			if pub != nil {
				pub.Offline()
			}
		}

		if cfg.Inverter.Interval == 0 {
			return
		}
		select {
		case <-ctx.Done():
			log.Info("Closing serial interface")
			return
		case <-time.After(cfg.Inverter.Interval):
		}
	}
}
