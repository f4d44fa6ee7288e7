package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cli "github.com/urfave/cli/v3"

	"cursos/internal/app"
	"cursos/internal/content"
)

func main() {
	cmd := &cli.Command{
		Name:  "cursos",
		Usage: "Serve and build the course catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "content", Usage: "Content directory (overrides CONTENT_DIR)"},
		},
		Commands: []*cli.Command{
			serveCmd(),
			buildCmd(),
			listCmd(),
			syncCmd(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatalf("cursos: %v", err)
	}
}

// loadConfig reads the environment and applies global flag overrides.
func loadConfig(cmd *cli.Command) (app.Config, error) {
	cfg, err := app.LoadConfig()
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if cmd.IsSet("content") {
		cfg.ContentDir = cmd.String("content")
	}
	return cfg, nil
}

func openServer(cmd *cli.Command) (*app.Server, app.Config, func() error, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, cfg, nil, err
	}

	src, closeSource, err := app.OpenSource(cfg)
	if err != nil {
		return nil, cfg, nil, fmt.Errorf("open content source: %w", err)
	}

	srv, err := app.NewServer(src, cfg)
	if err != nil {
		closeSource()
		return nil, cfg, nil, fmt.Errorf("init server: %w", err)
	}
	return srv, cfg, closeSource, nil
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the course pages over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "Listen address (defaults to :$PORT)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			handler, cfg, closeSource, err := openServer(cmd)
			if err != nil {
				return err
			}
			defer closeSource()

			addr := ":" + cfg.Port
			if cmd.IsSet("addr") {
				addr = cmd.String("addr")
			}

			srv := &http.Server{
				Addr:         addr,
				Handler:      handler,
				ReadTimeout:  5 * time.Second,
				WriteTimeout: 15 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			shutdownCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Printf("cursos listening on %s", srv.Addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return fmt.Errorf("listen: %w", err)
			case <-shutdownCtx.Done():
			}

			timeoutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(timeoutCtx); err != nil {
				log.Printf("graceful shutdown failed: %v", err)
			}
			return nil
		},
	}
}

func buildCmd() *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "Write the course pages as static HTML",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Usage: "Output directory", Required: true},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			srv, _, closeSource, err := openServer(cmd)
			if err != nil {
				return err
			}
			defer closeSource()

			out := cmd.String("out")
			manifest, err := srv.Export(ctx, out)
			if err != nil {
				return fmt.Errorf("build: %w", err)
			}

			log.Printf("wrote %d courses to %s (build %s)", len(manifest.Courses), out, manifest.BuildID)
			return nil
		},
	}
}

func listCmd() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "Print the course listing in page order",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			src, closeSource, err := app.OpenSource(cfg)
			if err != nil {
				return fmt.Errorf("open content source: %w", err)
			}
			defer closeSource()

			page, err := app.LoadListing(ctx, src)
			if err != nil {
				return err
			}
			for _, link := range page.Links {
				fmt.Printf("%s\t%s\n", link.Title, link.Href)
			}
			return nil
		},
	}
}

func syncCmd() *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Copy course files into the MySQL courses table",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.DSN == "" {
				return fmt.Errorf("sync needs MYSQL_DSN or DATABASE_URL")
			}

			docs, err := content.NewFileSource(cfg.ContentDir).AllDocuments(ctx, app.CoursesCategory)
			if err != nil {
				return err
			}

			db, err := app.NewDB(cfg)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			store := content.NewSQLSource(db)
			if err := store.EnsureSchema(ctx); err != nil {
				return err
			}
			if err := store.Replace(ctx, app.CoursesCategory, docs); err != nil {
				return fmt.Errorf("sync courses: %w", err)
			}

			log.Printf("synced %d courses from %s", len(docs), cfg.ContentDir)
			return nil
		},
	}
}
