package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

// Card is a row of the ledger's card table.
type Card struct {
	ID        int64  `gorm:"column:id;primaryKey" json:"id"`
	CardCode  string `gorm:"column:card_code" json:"card_code"`
	Expansion string `gorm:"column:expansion" json:"expansion"`
}

func (Card) TableName() string { return "cards" }

// CardPrint is one print variant of a card.
type CardPrint struct {
	ID         int64  `gorm:"column:id;primaryKey" json:"id"`
	CardID     int64  `gorm:"column:card_id" json:"card_id"`
	RarityCode string `gorm:"column:rarity_code" json:"rarity_code"`
	PrintHint  string `gorm:"column:print_hint" json:"print_hint"`
}

func (CardPrint) TableName() string { return "card_prints" }

// StagedLot is one acquisition event written to the staging table.
type StagedLot struct {
	ID              int64           `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	Expansion       string          `gorm:"column:expansion" json:"expansion"`
	CardCode        string          `gorm:"column:card_code" json:"card_code"`
	Rarity          string          `gorm:"column:rarity" json:"rarity"`
	PrintHint       string          `gorm:"column:print_hint" json:"print_hint"`
	CardID          int64           `gorm:"column:card_id" json:"card_id"`
	CardPrintID     *int64          `gorm:"column:card_print_id" json:"card_print_id"`
	AcquisitionType string          `gorm:"column:acquisition_type" json:"acquisition_type"`
	SourceName      string          `gorm:"column:source_name" json:"source_name"`
	AcquiredQty     int             `gorm:"column:acquired_qty" json:"acquired_qty"`
	UnitCost        decimal.Decimal `gorm:"column:unit_cost;type:numeric(12,2)" json:"unit_cost"`
	Currency        string          `gorm:"column:currency;size:1" json:"currency"`
	AcquiredAt      time.Time       `gorm:"column:acquired_at" json:"acquired_at"`
	Note            string          `gorm:"column:note" json:"note"`
}

// StagingColumns are the columns the sync writes.
var StagingColumns = []string{
	"expansion", "card_code", "rarity", "print_hint", "card_id", "card_print_id",
	"acquisition_type", "source_name", "acquired_qty", "unit_cost", "currency",
	"acquired_at", "note",
}

// LotInput is a validated CSV row before identifier resolution.
type LotInput struct {
	Line            int
	Expansion       string
	CardCode        string
	Rarity          string
	PrintHint       string
	AcquisitionType string
	SourceName      string
	AcquiredQty     int
	UnitCost        decimal.Decimal
	Currency        string
	AcquiredAt      time.Time
	Note            string
}

// Rejection stages.
const (
	StageValidation  = "validation"
	StageUnknownCard = "unknown_card"
	StageUnresolved  = "unresolved_print"
)

// Rejection is a row left out of the staging write.
type Rejection struct {
	Line     int    `json:"line"`
	CardCode string `json:"card_code"`
	Stage    string `json:"stage"`
	Field    string `json:"field,omitempty"`
	Reason   string `json:"reason"`
}

// Unresolved is a row whose print variant needs a manual decision.
type Unresolved struct {
	Input      LotInput
	Reason     string
	Candidates []CardPrint
}
