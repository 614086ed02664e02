package store

import (
	"time"

	"github.com/pkg/errors"
	"github.com/studiolab/labkeeper/core/lab"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type labRow struct {
	CourseID      string `gorm:"primaryKey"`
	LabID         string
	Status        string
	AccessURL     string
	LastAccessURL string
	LastSyncedAt  time.Time
}

func (labRow) TableName() string {
	return "lab_records"
}

// SnapshotStore persists the last known registry state to a local SQLite
// file so status queries have an answer before the first health-check sweep
// after a restart. Losing the file is harmless; the server remains
// authoritative.
type SnapshotStore struct {
	db *gorm.DB
}

func Open(path string) (*SnapshotStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "opening snapshot store at %s", path)
	}
	if err := db.AutoMigrate(&labRow{}); err != nil {
		return nil, errors.Wrap(err, "migrating snapshot store")
	}
	return &SnapshotStore{db: db}, nil
}

// Save upserts one record by course ID.
func (s *SnapshotStore) Save(rec lab.Record) error {
	row := labRow{
		CourseID:      rec.CourseID,
		LabID:         rec.LabID,
		Status:        string(rec.Status),
		AccessURL:     rec.AccessURL,
		LastAccessURL: rec.LastAccessURL,
		LastSyncedAt:  rec.LastSyncedAt,
	}
	result := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row)
	return errors.Wrapf(result.Error, "saving snapshot for course %s", rec.CourseID)
}

// Load returns every cached record.
func (s *SnapshotStore) Load() ([]lab.Record, error) {
	var rows []labRow
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "loading lab snapshots")
	}

	recs := make([]lab.Record, 0, len(rows))
	for _, row := range rows {
		recs = append(recs, lab.Record{
			CourseID:      row.CourseID,
			LabID:         row.LabID,
			Status:        lab.Status(row.Status),
			AccessURL:     row.AccessURL,
			LastAccessURL: row.LastAccessURL,
			LastSyncedAt:  row.LastSyncedAt,
		})
	}
	return recs, nil
}

// Clear drops every cached record. Called on session cleanup.
func (s *SnapshotStore) Clear() error {
	err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&labRow{}).Error
	return errors.Wrap(err, "clearing lab snapshots")
}
