package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/aws/aws-sdk-go/service/sqs/sqsiface"
	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"kwmerge/config"
	"kwmerge/internal/envHelper"
	"kwmerge/internal/logging"
	"kwmerge/internal/notify"
	"kwmerge/internal/pipeline"
	"kwmerge/internal/storage"
	"kwmerge/internal/store"
)

func main() {
	logger, err := logging.New(envHelper.GetEnvVariable("LOG_LEVEL", "info"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error building logger:", err)
		os.Exit(1)
	}
	log := logger.Sugar()

	if err := run(context.Background(), log); err != nil {
		log.Errorw("keyword merge failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func run(ctx context.Context, log *zap.SugaredLogger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log.Infow("config loaded", "input", cfg.InputPath, "output", cfg.OutputPath, "normalize", cfg.Normalize)

	var (
		s3Client  s3iface.S3API
		sqsClient sqsiface.SQSAPI
	)
	if cfg.NeedsAWS() {
		sess, err := session.NewSession(&aws.Config{
			Region: aws.String(cfg.AWS.Region),
		})
		if err != nil {
			return fmt.Errorf("create AWS session: %w", err)
		}
		s3Client = s3.New(sess)
		sqsClient = sqs.New(sess)
	}

	result, err := pipeline.New(cfg, storage.New(s3Client), log).Run(ctx)
	if err != nil {
		return err
	}
	if err := result.Summary.WriteReport(os.Stdout); err != nil {
		log.Warnw("printing summary", "error", err)
	}

	// the workbook is written at this point; side channels only report
	var errs []error
	if cfg.AWS.ResultsQueueURL != "" {
		if _, err := notify.New(sqsClient, cfg.AWS.ResultsQueueURL).Publish(ctx, result.Summary); err != nil {
			log.Warnw("publishing run summary", "error", err)
			errs = append(errs, err)
		}
	}
	if cfg.Database.DSN != "" {
		if err := recordRun(ctx, cfg, result, log); err != nil {
			log.Warnw("recording run", "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func recordRun(ctx context.Context, cfg *config.AppConfig, result *pipeline.Result, log *zap.SugaredLogger) error {
	db, err := sql.Open("mysql", cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	s := store.New(db)
	if err := s.GetDB().PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	sum := result.Summary
	stored, err := s.CreateRun(ctx, store.Run{
		Slug:             sum.RunID,
		InputLocation:    sum.Input,
		OutputLocation:   sum.Output,
		KeywordRows:      sum.KeywordRows,
		UniqueKeywords:   sum.UniqueKeywords,
		ResidualArticles: sum.ResidualArticles,
		ResidualPct:      sum.ResidualPct,
		CreatedAt:        sum.FinishedAt,
	})
	if err != nil {
		return err
	}
	if err := s.SaveFrequencies(ctx, stored.ID, result.Frequencies); err != nil {
		return err
	}
	log.Infow("run recorded", "run_id", stored.ID, "slug", stored.Slug, "keywords", len(result.Frequencies))
	return nil
}
