package inventory

import (
	"context"

	"gorm.io/gorm"
)

// GormLedger is a Ledger backed by a SQL database.
type GormLedger struct {
	db        *gorm.DB
	table     string
	batchSize int
}

// NewGormLedger creates a database ledger writing to the given staging table.
func NewGormLedger(db *gorm.DB, table string, batchSize int) *GormLedger {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &GormLedger{db: db, table: table, batchSize: batchSize}
}

// LookupCards maps card codes to ids.
func (l *GormLedger) LookupCards(ctx context.Context, codes []string) (map[string]int64, error) {
	out := make(map[string]int64, len(codes))
	if len(codes) == 0 {
		return out, nil
	}

	var cards []Card
	if err := l.db.WithContext(ctx).Where("card_code IN ?", codes).Find(&cards).Error; err != nil {
		return nil, dbError("lookup cards", err)
	}
	for _, c := range cards {
		out[c.CardCode] = c.ID
	}
	return out, nil
}

// LookupPrints returns the print variants of the given cards.
func (l *GormLedger) LookupPrints(ctx context.Context, cardIDs []int64) (map[int64][]CardPrint, error) {
	out := make(map[int64][]CardPrint, len(cardIDs))
	if len(cardIDs) == 0 {
		return out, nil
	}

	var prints []CardPrint
	err := l.db.WithContext(ctx).
		Where("card_id IN ?", cardIDs).
		Order("card_id, id").
		Find(&prints).Error
	if err != nil {
		return nil, dbError("lookup prints", err)
	}
	for _, p := range prints {
		out[p.CardID] = append(out[p.CardID], p)
	}
	return out, nil
}

// ClearStaging deletes every row of the staging table.
func (l *GormLedger) ClearStaging(ctx context.Context) (int64, error) {
	return clearTable(l.db.WithContext(ctx), l.table)
}

// InsertStaging writes lots in batches of the configured size.
func (l *GormLedger) InsertStaging(ctx context.Context, lots []StagedLot) error {
	return insertLots(l.db.WithContext(ctx), l.table, lots, l.batchSize)
}

// ReplaceStaging clears and inserts inside one transaction.
func (l *GormLedger) ReplaceStaging(ctx context.Context, lots []StagedLot) (int64, error) {
	var cleared int64
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := clearTable(tx, l.table)
		if err != nil {
			return err
		}
		cleared = n
		if len(lots) == 0 {
			return nil
		}
		return insertLots(tx, l.table, lots, l.batchSize)
	})
	return cleared, err
}

func clearTable(db *gorm.DB, table string) (int64, error) {
	res := db.Table(table).Where("id IS NOT NULL").Delete(&StagedLot{})
	if res.Error != nil {
		return 0, dbError("clear staging", res.Error)
	}
	return res.RowsAffected, nil
}

func insertLots(db *gorm.DB, table string, lots []StagedLot, batchSize int) error {
	if len(lots) == 0 {
		return nil
	}
	if err := db.Table(table).CreateInBatches(lots, batchSize).Error; err != nil {
		return dbError("insert staging", err)
	}
	return nil
}
