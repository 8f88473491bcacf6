package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/marcelsud/alert-relay/auditlog"
	auditlogredis "github.com/marcelsud/alert-relay/auditlog/redis"
	"github.com/marcelsud/alert-relay/config"
	counterredis "github.com/marcelsud/alert-relay/counter/redis"
	"github.com/marcelsud/alert-relay/endpoints"
	"github.com/marcelsud/alert-relay/fields"
	fieldsredis "github.com/marcelsud/alert-relay/fields/redis"
	"github.com/marcelsud/alert-relay/internal/http/chi"
	"github.com/marcelsud/alert-relay/internal/sealed"
	"github.com/marcelsud/alert-relay/metrics"
	"github.com/marcelsud/alert-relay/queue"
	queueredis "github.com/marcelsud/alert-relay/queue/redis"
	"github.com/marcelsud/alert-relay/relay"
)

const TIMEOUT = 30 * time.Second

/* “a porta de entrada e saída da minha aplicação”
* Porque a porta de entrada? É no arquivo main.go, que vai ser compilado para gerar o executável da aplicação,
* onde é feita toda a “amarração” dos demais pacotes.
* É nele onde iniciamos as dependências, fazemos as configurações e a invocação dos pacotes que desempenham a lógica de negócio.

* E porque ele é a porta de saída da aplicação?
* https://eltonminetto.dev/post/2022-07-06-error-handling-cli-applications-golang/
 */

/*
 * As importações devem ser feitas apenas em uma direção: para baixo. O aplicativo (api, cli) importa camadas de negócios,
 * que importam a camada de armazenamento
 */

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		return
	}
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	repo, err := queueredis.NewRepositoryFromAddr(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer repo.Close(ctx)
	client := repo.GetClient()

	key := cfg.LogEncryptionKey
	if key == "" {
		// without a configured key, logs from previous runs become unreadable
		key, err = sealed.GenerateKey()
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Println("LOG_ENCRYPTION_KEY not set, using an ephemeral key")
	}
	box, err := sealed.NewBoxFromBase64(key)
	if err != nil {
		fmt.Println(err)
		return
	}

	logs := auditlog.NewService(auditlogredis.NewStore(client, box, cfg.AuditLogCap))

	dispatcher := queue.NewHTTPDispatcher(cfg.DispatchTimeoutDuration())
	queueService := queue.NewService(repo, dispatcher)
	queueService.Outcomes = logs
	queueService.CompletedTTL = cfg.CompletedTTL()
	if !cfg.ProcessingEnabled {
		queueService.Pause()
	}

	loader := endpoints.NewLoader()
	if err := loader.Load(cfg.EndpointsFile); err != nil {
		fmt.Println(err)
		return
	}

	filters := fields.NewService(fieldsredis.NewRepository(client))
	relayService := relay.NewService(loader, filters, queueService, logs)

	services := chi.Services{
		Relay:     relayService,
		Queue:     queueService,
		Logs:      logs,
		Filters:   filters,
		Endpoints: loader,
		Inbound:   counterredis.NewCounter(client),
	}
	if cfg.MetricsEnabled {
		exporter, err := metrics.NewOTelExporter(metrics.NewRedisCollector(client))
		if err != nil {
			fmt.Println(err)
			return
		}
		defer exporter.Shutdown(context.Background())
		services.Metrics = exporter.ServeHTTP()
	}

	go processQueue(ctx, queueService, cfg.QueueBatchSize, cfg.PollInterval())

	r := chi.Handlers(ctx, services)
	http.Handle("/", r)
	srv := &http.Server{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Addr:         ":" + cfg.Port,
		Handler:      http.DefaultServeMux,
	}

	errShutdown := make(chan error, 1)
	go shutdown(srv, ctx, errShutdown)
	fmt.Printf("Listening on port %s\n", cfg.Port)
	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		fmt.Println(err)
		return
	}
	err = <-errShutdown
	if err != nil {
		fmt.Println(err)
		return
	}
}

// processQueue drains pending deliveries until the context is cancelled
func processQueue(ctx context.Context, queueService queue.UseCase, batchSize int, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			result, err := queueService.ProcessBatch(ctx, batchSize)
			if err != nil {
				fmt.Printf("processing batch: %v\n", err)
				continue
			}
			if result.Claimed > 0 {
				fmt.Printf("processed %d deliveries: %d completed, %d retried, %d failed\n",
					result.Claimed, result.Completed, result.Retried, result.Failed)
			}
		}
	}
}

func shutdown(server *http.Server, ctxShutdown context.Context, errShutdown chan error) {
	<-ctxShutdown.Done()

	ctxTimeout, stop := context.WithTimeout(context.Background(), TIMEOUT)
	defer stop()

	err := server.Shutdown(ctxTimeout)
	switch err {
	case nil:
		fmt.Printf("\nShutting down server...\n")
		errShutdown <- nil
	case context.DeadlineExceeded:
		errShutdown <- fmt.Errorf("Forcing closing the server")
	default:
		errShutdown <- fmt.Errorf("Forcing closing the server")
	}
}
