package postgres

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/suxatcode/gravity-particles/db"
	"github.com/suxatcode/gravity-particles/gravity"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Run struct {
	gorm.Model
	Name      string                   `gorm:"not null"`
	Particles int                      `gorm:"not null"`
	Config    gravity.SimulationConfig `gorm:"type:jsonb;serializer:json;not null"`
	Steps     []StepRecord             `gorm:"constraint:OnDelete:CASCADE"`
}

type StepRecord struct {
	gorm.Model
	RunID         uint `gorm:"index:uniqueRunStep,unique;not null"`
	Step          int  `gorm:"index:uniqueRunStep,unique;not null"`
	Particles     int
	Inserted      int
	Excluded      int
	Nodes         int
	TreeTime      int64
	ForceTime     int64
	IntegrateTime int64
	MinNorm       float64
	MaxNorm       float64
}

func DSN(conf db.Config) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=5432 sslmode=disable", conf.PGHost, conf.PGUser, conf.PGPassword, conf.PGDBName)
}

func NewPostgresDB(conf db.Config) (db.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: DSN(conf),
	}), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	pg := &PostgresDB{
		db: db,
	}
	return pg.init()
}

type PostgresDB struct {
	db *gorm.DB
}

func (pg *PostgresDB) init() (db.DB, error) {
	return pg, pg.db.AutoMigrate(&Run{}, &StepRecord{})
}

func (pg *PostgresDB) CreateRun(ctx context.Context, run db.Run) (string, error) {
	r := NewRun(run)
	if err := pg.db.WithContext(ctx).Create(&r).Error; err != nil {
		return "", errors.Wrap(err, "failed to create run")
	}
	return formatRunID(r.ID), nil
}

func (pg *PostgresDB) findRun(tx *gorm.DB, runID string) (*Run, error) {
	id, err := parseRunID(runID)
	if err != nil {
		return nil, err
	}
	run := Run{}
	err = tx.First(&run, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrapf(db.ErrRunNotFound, "run '%s'", runID)
	}
	return &run, err
}

func (pg *PostgresDB) AddStepRecords(ctx context.Context, runID string, records []db.StepRecord) error {
	if len(records) == 0 {
		return nil
	}
	return pg.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		run, err := pg.findRun(tx, runID)
		if err != nil {
			return err
		}
		rows := make([]StepRecord, 0, len(records))
		for _, record := range records {
			rows = append(rows, NewStepRecord(run.ID, record))
		}
		if err := tx.Create(&rows).Error; err != nil {
			return errors.Wrapf(err, "failed to add %d records to run '%s'", len(rows), runID)
		}
		return nil
	})
}

func (pg *PostgresDB) Runs(ctx context.Context) ([]db.Run, error) {
	runs := []Run{}
	if err := pg.db.WithContext(ctx).Order("id").Find(&runs).Error; err != nil {
		return nil, err
	}
	res := make([]db.Run, 0, len(runs))
	for _, run := range runs {
		res = append(res, run.Convert())
	}
	return res, nil
}

func (pg *PostgresDB) StepRecords(ctx context.Context, runID string) ([]db.StepRecord, error) {
	tx := pg.db.WithContext(ctx)
	run, err := pg.findRun(tx, runID)
	if err != nil {
		return nil, err
	}
	rows := []StepRecord{}
	if err := tx.Where(&StepRecord{RunID: run.ID}).Order("step").Find(&rows).Error; err != nil {
		return nil, err
	}
	res := make([]db.StepRecord, 0, len(rows))
	for _, row := range rows {
		res = append(res, row.Convert())
	}
	return res, nil
}
