// Command lg69t-flash flashes firmware onto an LG69T device over a serial
// port. It can flash a full .p1fw release package or individual application
// and GNSS images.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"go.bug.st/serial"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/moffa90/go-lg69t/bootloader"
	"github.com/moffa90/go-lg69t/p1fw"
	"github.com/moffa90/go-lg69t/protocol"
)

// BaudRate is the fixed rate the LG69T bootloader speaks.
const BaudRate = 460800

var (
	p1fwPath = kingpin.Flag("p1fw", "Path to a .p1fw release package (zip archive or unpacked directory).").
			PlaceHolder("FILE").String()
	p1fwModes = kingpin.Flag("p1fw-mode", "Which images from the package to flash: gnss, app. May be repeated; defaults to both.").
			PlaceHolder("MODE").Enums("gnss", "app")
	gnssPath = kingpin.Flag("gnss", "Path to a GNSS (Teseo) firmware image.").PlaceHolder("FILE").String()
	appPath  = kingpin.Flag("app", "Path to an application firmware image.").PlaceHolder("FILE").String()
	portName = kingpin.Flag("port", "Serial port of the device.").Default("/dev/ttyUSB0").String()
	manual   = kingpin.Flag("manual-reboot", "Don't send a software reboot; the board must be reset by hand.").
			Short('m').Bool()
	verbose = kingpin.Flag("verbose", "Enable debug logging.").Short('v').Bool()
)

// job is one subsystem upgrade to perform.
type job struct {
	target protocol.Target
	image  []byte
}

func main() {
	kingpin.Parse()

	log := logrus.New()
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	jobs, err := resolveImages(log)
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}

	log.WithField("port", *portName).Info("starting upgrade")

	port, err := serial.Open(*portName, &serial.Mode{BaudRate: BaudRate})
	if err != nil {
		log.WithError(err).Error("failed to open serial port")
		os.Exit(1)
	}
	defer port.Close()

	failed := false
	for _, j := range jobs {
		log.WithField("target", j.target.String()).Info("upgrading firmware")
		if err := upgrade(log, port, j); err != nil {
			log.WithField("target", j.target.String()).WithError(err).Error("upgrade failed")
			failed = true
			continue
		}
		log.WithField("target", j.target.String()).Info("upgrade succeeded")
	}

	if failed {
		os.Exit(2)
	}
}

// resolveImages maps the command line onto the ordered list of upgrades to
// run. GNSS always comes first so the application session's reboot-and-wait
// follows it.
func resolveImages(log *logrus.Logger) ([]job, error) {
	if *p1fwPath == "" && *gnssPath == "" && *appPath == "" {
		return nil, fmt.Errorf("you must specify a p1fw package, a gnss image, or an app image to flash")
	}

	var gnssImage, appImage []byte

	if *p1fwPath != "" {
		pkg, err := p1fw.Open(*p1fwPath)
		if err != nil {
			return nil, err
		}

		modes := *p1fwModes
		if len(modes) == 0 {
			modes = []string{"gnss", "app"}
		}
		for _, mode := range modes {
			switch mode {
			case "gnss":
				gnssImage = pkg.GNSS
			case "app":
				appImage = pkg.App
			}
		}

		if *gnssPath != "" {
			log.Warn("ignoring --gnss path, p1fw package was provided")
		}
		if *appPath != "" {
			log.Warn("ignoring --app path, p1fw package was provided")
		}
	} else {
		var err error
		if *gnssPath != "" {
			if gnssImage, err = os.ReadFile(*gnssPath); err != nil {
				return nil, err
			}
		}
		if *appPath != "" {
			if appImage, err = os.ReadFile(*appPath); err != nil {
				return nil, err
			}
		}
	}

	var jobs []job
	if gnssImage != nil {
		jobs = append(jobs, job{target: protocol.TargetGNSS, image: gnssImage})
	}
	if appImage != nil {
		jobs = append(jobs, job{target: protocol.TargetApp, image: appImage})
	}
	return jobs, nil
}

// upgrade runs one upgrade session with console progress reporting.
func upgrade(log *logrus.Logger, port serial.Port, j job) error {
	var bar *progressbar.ProgressBar
	progress := func(p bootloader.Progress) {
		switch p.Phase {
		case bootloader.PhaseRebooting:
			log.Info("rebooting the device...")
		case bootloader.PhaseSynchronizing:
			log.Info("synchronizing with bootloader...")
		case bootloader.PhaseErasing:
			log.Info("erasing flash (takes around 30 seconds)...")
		case bootloader.PhaseTransferring:
			if bar == nil {
				bar = progressbar.DefaultBytes(int64(p.TotalBytes), "transferring")
			}
			_ = bar.Set(p.BytesSent)
		case bootloader.PhaseComplete:
			if bar != nil {
				_ = bar.Finish()
				fmt.Println()
			}
		}
	}

	upg := bootloader.New(port,
		bootloader.WithLogger(&logrusAdapter{log: log}),
		bootloader.WithProgressCallback(progress),
	)

	return upg.Upgrade(context.Background(), j.target, j.image, !*manual)
}

// logrusAdapter adapts a logrus logger to the bootloader.Logger interface.
type logrusAdapter struct {
	log *logrus.Logger
}

func (l *logrusAdapter) entry(keysAndValues []interface{}) *logrus.Entry {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if k, ok := keysAndValues[i].(string); ok {
			fields[k] = keysAndValues[i+1]
		}
	}
	return l.log.WithFields(fields)
}

func (l *logrusAdapter) Debug(msg string, keysAndValues ...interface{}) {
	l.entry(keysAndValues).Debug(msg)
}

func (l *logrusAdapter) Info(msg string, keysAndValues ...interface{}) {
	l.entry(keysAndValues).Info(msg)
}

func (l *logrusAdapter) Error(msg string, keysAndValues ...interface{}) {
	l.entry(keysAndValues).Error(msg)
}
