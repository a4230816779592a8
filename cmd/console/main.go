// Command console is the interactive operator menu for the coworking
// reservation engine.  It works against the same database as the API
// server; SQLite is the default so it runs with no other services.
package main

import (
    "context"
    "database/sql"
    "fmt"
    "os"
    "os/signal"
    "time"

    "github.com/spf13/pflag"

    "github.com/iliyamo/coworking-reservation/internal/console"
    "github.com/iliyamo/coworking-reservation/internal/database"
    "github.com/iliyamo/coworking-reservation/internal/logging"
    "github.com/iliyamo/coworking-reservation/internal/repository"
    "github.com/iliyamo/coworking-reservation/internal/service"
)

func main() {
    if err := run(); err != nil {
        fmt.Fprintf(os.Stderr, "error: %v\n", err)
        os.Exit(1)
    }
}

type options struct {
    driver     string
    sqlitePath string
    dbUser     string
    dbPass     string
    dbHost     string
    dbPort     string
    dbName     string
    leadDays   int
    blackout   string
    timezone   string
    exportDir  string
    logLevel   string
}

func run() error {
    var opts options
    flagSet := pflag.NewFlagSet("console", pflag.ContinueOnError)
    flagSet.StringVar(&opts.driver, "driver", database.DriverSQLite, "storage driver: sqlite or mysql")
    flagSet.StringVar(&opts.sqlitePath, "sqlite-path", "coworking.db", "SQLite database file")
    flagSet.StringVar(&opts.dbUser, "db-user", os.Getenv("DB_USER"), "MySQL user")
    flagSet.StringVar(&opts.dbPass, "db-pass", os.Getenv("DB_PASS"), "MySQL password")
    flagSet.StringVar(&opts.dbHost, "db-host", "localhost", "MySQL host")
    flagSet.StringVar(&opts.dbPort, "db-port", "3306", "MySQL port")
    flagSet.StringVar(&opts.dbName, "db-name", "coworking", "MySQL database")
    flagSet.IntVar(&opts.leadDays, "lead-days", 2, "minimum days between today and a reservation")
    flagSet.StringVar(&opts.blackout, "blackout", "sunday", "comma separated weekdays closed for reservations")
    flagSet.StringVar(&opts.timezone, "timezone", "", "time zone that defines today (default: local)")
    flagSet.StringVar(&opts.exportDir, "export-dir", "exports", "directory for exported reports")
    flagSet.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
    flagSet.BoolP("help", "h", false, "show help")

    if err := flagSet.Parse(os.Args[1:]); err != nil {
        if err == pflag.ErrHelp {
            return nil
        }
        return err
    }
    if help, _ := flagSet.GetBool("help"); help {
        fmt.Fprintf(os.Stderr, "Usage: console [flags]\n\n%s", flagSet.FlagUsages())
        return nil
    }
    if args := flagSet.Args(); len(args) > 0 {
        return fmt.Errorf("unexpected argument: %s", args[0])
    }

    loc := time.Local
    if opts.timezone != "" {
        var err error
        if loc, err = time.LoadLocation(opts.timezone); err != nil {
            return fmt.Errorf("--timezone: %w", err)
        }
    }
    policy, err := service.NewPolicy(opts.leadDays, opts.blackout, loc)
    if err != nil {
        return err
    }

    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
    defer stop()

    db, err := openDB(opts)
    if err != nil {
        return fmt.Errorf("open database: %w", err)
    }
    defer db.Close()
    if err := database.Migrate(ctx, db, opts.driver); err != nil {
        return err
    }

    logger := logging.NewWithWriter(os.Stderr, false, logging.ParseLevel(opts.logLevel))
    clients := repository.NewClientRepo(db)
    rooms := repository.NewRoomRepo(db)
    svc := service.NewReservationService(clients, rooms, repository.NewReservationRepo(db),
        service.WithPolicy(policy),
        service.WithLogger(logger),
        service.WithMinEventNameLen(console.MinEventNameLen),
    )
    return console.New(svc, clients, rooms, os.Stdin, os.Stdout, opts.exportDir).Run(ctx)
}

func openDB(opts options) (*sql.DB, error) {
    switch opts.driver {
    case database.DriverSQLite:
        return database.OpenSQLite(opts.sqlitePath)
    case database.DriverMySQL:
        return database.Open(opts.dbUser, opts.dbPass, opts.dbHost, opts.dbPort, opts.dbName)
    }
    return nil, fmt.Errorf("unsupported --driver %q", opts.driver)
}
