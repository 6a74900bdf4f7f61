package bootstrap

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	accountinadapter "eduvantage/internal/modules/account/adapter/in"
	accountoutadapter "eduvantage/internal/modules/account/adapter/out"
	accountservice "eduvantage/internal/modules/account/service"
	accountusecase "eduvantage/internal/modules/account/usecase"
	cataloginadapter "eduvantage/internal/modules/catalog/adapter/in"
	catalogoutadapter "eduvantage/internal/modules/catalog/adapter/out"
	catalogservice "eduvantage/internal/modules/catalog/service"
	catalogusecase "eduvantage/internal/modules/catalog/usecase"
	quizinadapter "eduvantage/internal/modules/quiz/adapter/in"
	quizoutadapter "eduvantage/internal/modules/quiz/adapter/out"
	quizservice "eduvantage/internal/modules/quiz/service"
	quizusecase "eduvantage/internal/modules/quiz/usecase"
	recordsinadapter "eduvantage/internal/modules/records/adapter/in"
	recordsoutadapter "eduvantage/internal/modules/records/adapter/out"
	recordsservice "eduvantage/internal/modules/records/service"
	recordsusecase "eduvantage/internal/modules/records/usecase"
	sessioninadapter "eduvantage/internal/modules/session/adapter/in"
	sessionoutadapter "eduvantage/internal/modules/session/adapter/out"
	sessionservice "eduvantage/internal/modules/session/service"
	sessionusecase "eduvantage/internal/modules/session/usecase"
	"eduvantage/internal/platform/clock"
	"eduvantage/internal/platform/config"
	"eduvantage/internal/platform/id"
	"eduvantage/internal/platform/kvstore"
	uiapp "eduvantage/internal/ui/app"
)

type App struct {
	RecordsCLI recordsinadapter.CLIHandler
	AccountCLI accountinadapter.CLIHandler
	SessionCLI sessioninadapter.CLIHandler
	CatalogCLI cataloginadapter.CLIHandler
	QuizCLI    quizinadapter.CLIHandler
}

// New wires every module. The records and session services load their
// persisted state here so handlers see it from the first call.
func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.UUID{}
	kv := kvstore.New(cfg.StatePath)
	ctx := context.Background()

	recordsProjector, err := recordsoutadapter.NewSQLiteProgressProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new progress projector: %w", err)
	}
	recordsSvc := recordsservice.NewRecordsService(clk, ids, recordsoutadapter.NewFileAggregateStore(kv), recordsProjector)
	recordsSvc.LoadAll(ctx)
	recordsSvc.LoadUser(ctx)
	recordsUC := recordsusecase.NewInteractor(recordsSvc)

	sessionSvc := sessionservice.NewSessionService(sessionoutadapter.NewFileStateStore(kv))
	sessionSvc.Load(ctx)
	sessionUC := sessionusecase.NewInteractor(sessionSvc)

	accountUC := accountusecase.NewInteractor(
		accountservice.NewAccountService(accountoutadapter.NewFileCredentialStore(kv)),
		recordsUC,
		sessionUC,
		clk,
	)

	catalogProjector, err := catalogoutadapter.NewSQLiteCourseProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new course projector: %w", err)
	}
	catalogUC := catalogusecase.NewInteractor(catalogservice.NewCatalogService(
		catalogoutadapter.NewCatalogDocStore(cfg.CatalogPath),
		catalogProjector,
	))

	quizUC := quizusecase.NewInteractor(
		quizservice.NewQuizService(clk, ids),
		catalogUC,
		quizoutadapter.NewFileAttemptStore(kv),
	)

	return &App{
		RecordsCLI: recordsinadapter.NewCLIHandler(recordsUC),
		AccountCLI: accountinadapter.NewCLIHandler(accountUC),
		SessionCLI: sessioninadapter.NewCLIHandler(sessionUC),
		CatalogCLI: cataloginadapter.NewCLIHandler(catalogUC),
		QuizCLI:    quizinadapter.NewCLIHandler(quizUC),
	}, nil
}

func RunTUI(rootPath string, app *App) error {
	model := uiapp.NewModel(rootPath, app.AccountCLI, app.SessionCLI, app.CatalogCLI, app.RecordsCLI, app.QuizCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
