package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/labstack/echo/v4"
	"github.com/opst/hbnb/cmd/hbnb_web/handlers"
	"github.com/opst/hbnb/pkg/buildtime"
	"github.com/opst/hbnb/pkg/configs"
	"github.com/opst/hbnb/pkg/echoutil"
	"github.com/opst/hbnb/pkg/storage"
	"github.com/opst/hbnb/pkg/storage/engine"
	"github.com/opst/hbnb/pkg/utils/filewatch"
)

func main() {
	configPath := flag.String("config-path", "", "config file path. HBNB_* environment variables override it.")
	loglevel := flag.String("loglevel", "info", "log level. debug|info|warn|error|off")
	flag.Parse()
	log.Printf("hbnb_web %s", buildtime.VersionString())

	conf, err := configs.Load(*configPath)
	if err != nil {
		log.Fatalf("can not read configration: %s", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := engine.Open(ctx, conf.Storage)
	if err != nil {
		log.Fatalf("can not open storage: %s", err)
	}
	defer st.Close()

	e, err := newServer(st, *loglevel, conf.Server.Static)
	if err != nil {
		log.Fatalf("can not set up routes: %s", err)
	}
	log.Println("registred routes:")
	for _, r := range e.Routes() {
		log.Println(r.Method, r.Path)
	}

	if conf.Storage.Type == configs.StorageFile {
		go watchStorage(ctx, e, st, conf.Storage.File)
	}

	go func() {
		<-ctx.Done()
		graceful, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := e.Shutdown(graceful); err != nil {
			e.Logger.Errorf("error on shutdown: %s", err)
		}
	}()

	if err := e.Start(conf.Server.Address()); err != nil && ctx.Err() == nil {
		e.Logger.Fatal(err)
	}
}

// newServer builds the echo server with routes over st.
//
// Errors from handlers are logged once, by echoutil.LogHandlerFunc.
func newServer(st storage.Storage, loglevel string, static string) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	echoutil.SetLevel(e, loglevel)
	e.Use(echoutil.LogHandlerFunc)

	if err := handlers.Install(e, st); err != nil {
		return nil, err
	}
	if static != "" {
		e.Static("/static", static)
	}
	return e, nil
}

// watchStorage reloads the file store whenever its file is modified.
func watchStorage(ctx context.Context, e *echo.Echo, st storage.Storage, path string) {
	err := filewatch.OnModify(ctx, path, func(ev fsnotify.Event) {
		e.Logger.Infof("%s is updated (%s). reloading.", ev.Name, ev.Op)
		if err := st.Reload(ctx); err != nil {
			e.Logger.Errorf("failed to reload %s: %s", path, err)
		}
	})
	if err != nil {
		e.Logger.Errorf("stop watching %s: %s", path, err)
	}
}
