package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"faultproducer/cmd/fire"
	"faultproducer/cmd/serve"
	"faultproducer/src/database"
	"faultproducer/src/fault"
	"faultproducer/src/logging"
	"faultproducer/src/security"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

var Version string

func main() {
	logging.SetupLogger(logging.GetConfig())

	app := cli.NewApp()
	app.Name = "Fault Producer CMD"
	app.Usage = "The fault producer command line interface"
	app.Version = Version

	app.Commands = []cli.Command{
		serveCMD,
		fireCMD,
		catalogCMD,
		migrateCMD,
		hashPasswordCMD,
	}

	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	serveCMD = cli.Command{
		Name:        "serve",
		Usage:       "run the fault producer HTTP server",
		Action:      serveAction,
		ArgsUsage:   "",
		Flags:       []cli.Flag{},
		Description: `Run the trigger endpoint and publish fault records to Kafka`,
	}
	fireCMD = cli.Command{
		Name:        "fire",
		Usage:       "call the trigger endpoint",
		Action:      fireAction,
		ArgsUsage:   "",
		Flags:       []cli.Flag{},
		Description: `Call FIRE_TARGET_URL FIRE_COUNT times, FIRE_INTERVAL apart, and report the status counts`,
	}
	catalogCMD = cli.Command{
		Name:        "catalog",
		Usage:       "print the effective fault catalog",
		Action:      catalogAction,
		ArgsUsage:   "",
		Flags:       []cli.Flag{},
		Description: `Print the fault names the builder draws from, one per line`,
	}
	migrateCMD = cli.Command{
		Name:        "migrate",
		Usage:       "create the delivery failure journal",
		Action:      migrateAction,
		ArgsUsage:   "",
		Flags:       []cli.Flag{},
		Description: `Run the journal migrations against DATABASE_URL_MAIN`,
	}
	hashPasswordCMD = cli.Command{
		Name:        "hash-password",
		Usage:       "print a bcrypt hash for OPS_PASSWORD_HASH",
		Action:      hashPasswordAction,
		ArgsUsage:   "<password>",
		Flags:       []cli.Flag{},
		Description: `Hash a password for the ops routes basic auth`,
	}
)

func serveAction(_ *cli.Context) error {

	logrus.Info("Starting serve CMD")

	s := &serve.Serve{}
	err := s.Start()
	if err != nil {
		logrus.WithError(err).Error("Starting cmd")
		return err
	}

	return nil
}

func fireAction(_ *cli.Context) error {

	logrus.Info("Starting fire CMD")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	f := &fire.Fire{}
	if err := f.Start(ctx); err != nil {
		logrus.WithError(err).Error("Starting cmd")
		return err
	}

	return nil
}

// catalogAction prints the catalog resolved from FAULT_CATALOG.
func catalogAction(_ *cli.Context) error {
	catalog, err := fault.GetConfig().ResolveCatalog()
	if err != nil {
		return err
	}
	fmt.Println(strings.Join(catalog, "\n"))
	return nil
}

func migrateAction(_ *cli.Context) error {

	logrus.Info("Starting migrate CMD")

	config := database.GetConfig()
	db, err := database.InitMainDB(config)
	if err != nil {
		logrus.WithError(err).Error("Failed to migrate main database")
		return err
	}

	return database.Close(db)
}

func hashPasswordAction(c *cli.Context) error {
	password := c.Args().First()
	if password == "" {
		return errors.New("usage: hash-password <password>")
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}
