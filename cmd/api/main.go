package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/omniconnect-api/infrastructure/credentials"
	"github.com/vfg2006/omniconnect-api/infrastructure/integrator/gemini"
	"github.com/vfg2006/omniconnect-api/infrastructure/integrator/google"
	"github.com/vfg2006/omniconnect-api/infrastructure/integrator/google/gaclient"
	"github.com/vfg2006/omniconnect-api/infrastructure/integrator/meta"
	"github.com/vfg2006/omniconnect-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/omniconnect-api/infrastructure/integrator/whatsapp"
	"github.com/vfg2006/omniconnect-api/infrastructure/integrator/whatsapp/waclient"
	"github.com/vfg2006/omniconnect-api/infrastructure/storage"
	"github.com/vfg2006/omniconnect-api/internal/api"
	"github.com/vfg2006/omniconnect-api/internal/config"
	"github.com/vfg2006/omniconnect-api/internal/usecases/authenticating"
	"github.com/vfg2006/omniconnect-api/internal/usecases/connecting"
	"github.com/vfg2006/omniconnect-api/internal/usecases/insighting"
	"github.com/vfg2006/omniconnect-api/internal/usecases/messaging"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	kv := kvstore(ctx, cfg.Storage)
	defer kv.Close()

	credStore := credentials.NewStore(kv)

	metaClient := metaclient.NewClient(cfg)
	metaIntegrator := meta.New(credStore, metaClient)

	googleClient := gaclient.NewClient(cfg)
	googleIntegrator := google.New(credStore, googleClient)

	conversations := whatsapp.NewConversationStore(kv)
	waClient := waclient.NewClient(cfg)
	whatsappIntegrator := whatsapp.New(credStore, waClient, conversations)

	summarizer := gemini.New(cfg)

	authenticator, err := authenticating.NewService(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao inicializar o serviço de autenticação")
	}

	connectionService := connecting.NewService(credStore, googleIntegrator)
	insightService := insighting.NewService(metaIntegrator, googleIntegrator, summarizer)
	crmService := messaging.NewService(whatsappIntegrator, conversations)

	server, err := api.New(
		cfg,
		authenticator,
		connectionService,
		insightService,
		crmService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// kvstore abre o armazenamento chave-valor configurado
func kvstore(ctx context.Context, storageConfig config.Storage) storage.Store {
	kv, err := storage.New(ctx, storageConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao abrir o armazenamento local")
	}

	logrus.WithField("driver", storageConfig.Driver).Info("Armazenamento local inicializado com sucesso")
	return kv
}
