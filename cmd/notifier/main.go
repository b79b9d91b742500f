package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/qwertyexchange/cryptopawn/internal/config"
	"github.com/qwertyexchange/cryptopawn/internal/dispatch"
	"github.com/qwertyexchange/cryptopawn/internal/services/notifi"
	"github.com/qwertyexchange/cryptopawn/internal/services/webhook"
	"github.com/qwertyexchange/cryptopawn/pkg/pawn"
	"github.com/qwertyexchange/cryptopawn/pkg/queue"
	"github.com/qwertyexchange/cryptopawn/pkg/router"
	"github.com/qwertyexchange/cryptopawn/pkg/watcher"
)

func main() {
	log.Default().Println("launching notifier...")

	env := flag.String("env", "", "path to .env file")

	port := flag.Int("port", 3000, "port to listen on")

	qsize := flag.Int("qsize", 64, "notification queue capacity")

	flag.Parse()

	ctx := context.Background()

	conf, err := config.New(ctx, *env)
	if err != nil {
		log.Fatal(err)
	}

	if conf.SentryURL != "" && conf.SentryURL != "x" {
		err = sentry.Init(sentry.ClientOptions{
			Dsn: conf.SentryURL,
			// Set TracesSampleRate to 1.0 to capture 100%
			// of transactions for performance monitoring.
			// We recommend adjusting this value in production,
			TracesSampleRate: 1.0,
		})
		if err != nil {
			log.Fatalf("sentry.Init: %s", err)
		}
		// Flush buffered events before the program terminates.
		defer sentry.Flush(2 * time.Second)
	}

	log.Default().Println("starting notification dispatcher...")

	nc := notifi.NewClient(conf.NotifiEnv, conf.NotifiSID, conf.NotifiSecret)

	d := dispatch.New(ctx, nc)

	wm := webhook.NewMessager(conf.DiscordURL, conf.DiscordURL != "")

	q := queue.NewService(*qsize, ctx, wm)

	quitAck := make(chan error)

	go func() {
		quitAck <- q.Start(d)
	}()

	log.Default().Println("subscribing to contract events: ", conf.ContractAddress)

	wm.Notify(ctx, fmt.Sprintf("notifier up, watching %s", conf.ContractAddress))

	w, err := watcher.New(conf.TmWSURL, conf.ContractAddress)
	if err != nil {
		log.Fatal(err)
	}
	defer w.Close()

	go func() {
		err := w.Run(q)

		// let buffered sends drain before the process dies
		q.Close()

		quitAck <- err
	}()

	log.Default().Println("starting ops api...")

	api := router.NewServer(d)

	go func() {
		quitAck <- api.Start(*port)
	}()

	log.Default().Println("listening on port: ", *port)

	for err := range quitAck {
		if err != nil {
			if errors.Is(err, pawn.ErrTransportClosed) {
				// the watcher does not reconnect, the operator restarts the process
				wm.NotifyError(ctx, err)
			}
			log.Fatal(err)
		}
	}
}
