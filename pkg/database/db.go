package database

import (
	"fmt"
	"time"

	"github.com/arnavshah/roster-scheduler-go/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// APIKey represents the api_keys table
type APIKey struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Key        string     `gorm:"unique;not null" json:"-"`
	KeyPreview string     `json:"key_preview"`
	Name       string     `gorm:"not null" json:"name"`
	RateLimit  int        `gorm:"default:10000" json:"rate_limit"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsed   *time.Time `json:"last_used"`
}

// APIUsage represents the api_usage table, one row per key per day
type APIUsage struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	KeyID          uint   `gorm:"uniqueIndex:idx_key_date;not null" json:"key_id"`
	Date           string `gorm:"uniqueIndex:idx_key_date;not null" json:"date"`
	RequestCount   int    `gorm:"default:0" json:"request_count"`
	TotalSlots     int    `gorm:"default:0" json:"total_slots"`
	TotalEmployees int    `gorm:"default:0" json:"total_employees"`
	UnmetSlots     int    `gorm:"default:0" json:"unmet_slots"`
}

// MasterUser represents the master_users table
type MasterUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Open connects to Postgres when DatabaseURL is set, otherwise to the
// SQLite file at DataPath, and migrates the schema.
func Open(cfg *config.Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}

	var dialector gorm.Dialector
	if cfg.DatabaseURL != "" {
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.DatabaseURL,
			PreferSimpleProtocol: true,
		})
		gcfg.PrepareStmt = false
	} else {
		dialector = sqlite.Open(cfg.DataPath)
	}

	db, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, fmt.Errorf("database: connect: %w", err)
	}
	if err := db.AutoMigrate(&APIKey{}, &APIUsage{}, &MasterUser{}); err != nil {
		return nil, fmt.Errorf("database: migrate: %w", err)
	}
	return db, nil
}

// UsageDelta is what one request adds to a key's daily usage. Every
// authenticated request carries Requests: 1; schedule runs add their slot
// counts separately with Requests left at zero.
type UsageDelta struct {
	Requests  int
	Slots     int
	Employees int
	Unmet     int
}

// RecordUsage adds d to the usage row for keyID on day using a single
// upsert (supported by both Postgres and SQLite).
func RecordUsage(db *gorm.DB, keyID uint, day time.Time, d UsageDelta) error {
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"request_count":   gorm.Expr("request_count + ?", d.Requests),
			"total_slots":     gorm.Expr("total_slots + ?", d.Slots),
			"total_employees": gorm.Expr("total_employees + ?", d.Employees),
			"unmet_slots":     gorm.Expr("unmet_slots + ?", d.Unmet),
		}),
	}).Create(&APIUsage{
		KeyID:          keyID,
		Date:           day.Format("2006-01-02"),
		RequestCount:   d.Requests,
		TotalSlots:     d.Slots,
		TotalEmployees: d.Employees,
		UnmetSlots:     d.Unmet,
	}).Error
}

// RecentUsage returns up to the last 30 usage rows for keyID, newest first.
func RecentUsage(db *gorm.DB, keyID uint) ([]APIUsage, error) {
	var usage []APIUsage
	err := db.Where("key_id = ?", keyID).Order("date desc").Limit(30).Find(&usage).Error
	return usage, err
}

// UsageTotals sums a set of usage rows
type UsageTotals struct {
	Requests int64 `json:"requests"`
	Slots    int64 `json:"slots"`
	Unmet    int64 `json:"unmet"`
}

// SumUsage adds up rows as returned by RecentUsage
func SumUsage(rows []APIUsage) UsageTotals {
	var t UsageTotals
	for _, u := range rows {
		t.Requests += int64(u.RequestCount)
		t.Slots += int64(u.TotalSlots)
		t.Unmet += int64(u.UnmetSlots)
	}
	return t
}
