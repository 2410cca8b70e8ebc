package snapshot

import (
	"context"
	"errors"
	"regexp"

	"card-ledger/core/logger"
	"card-ledger/core/normalize"
	"card-ledger/feature/inventory"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var expansionPattern = regexp.MustCompile(`^h[0-9A-Z]+$`)

// PortfolioReader reads current ledger positions.
type PortfolioReader interface {
	Portfolio(ctx context.Context) ([]inventory.Position, error)
}

// RunLister lists archived run dates of an expansion.
type RunLister interface {
	Runs(ctx context.Context, expansion string) ([]string, error)
}

// Handler serves snapshots over HTTP.
type Handler struct {
	store     *Store
	portfolio PortfolioReader
	runs      RunLister
	logger    *zap.Logger
}

// NewHandler creates a handler. portfolio and runs may be nil; their routes
// are then not mounted.
func NewHandler(store *Store, portfolio PortfolioReader, runs RunLister, logger *zap.Logger) *Handler {
	return &Handler{store: store, portfolio: portfolio, runs: runs, logger: logger}
}

// RegisterRoutes mounts the snapshot routes under /api.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api")
	group.Get("/cards/:expansion", h.HandleCards)
	group.Get("/prices/:expansion", h.HandlePrices)
	if h.portfolio != nil {
		group.Get("/portfolio", h.HandlePortfolio)
	}
	if h.runs != nil {
		group.Get("/runs/:expansion", h.HandleRuns)
	}
}

// HandleCards returns the cards output of an expansion.
// @Summary Get Cards
// @Description Rows of the latest <expansion>_cards_v2.csv.
// @Tags snapshot
// @Produce json
// @Security ApiKeyAuth
// @Param expansion path string true "Expansion code (e.g. 'hBP01')"
// @Success 200 {object} snapshot.RowsResponse "Cards"
// @Failure 400 {object} snapshot.ErrorResponse "Invalid expansion"
// @Failure 404 {object} snapshot.ErrorResponse "No output"
// @Failure 500 {object} snapshot.ErrorResponse "Internal Server Error"
// @Router /api/cards/{expansion} [get]
func (h *Handler) HandleCards(c *fiber.Ctx) error {
	exp, ok := expansionParam(c)
	if !ok {
		return badExpansion(c)
	}
	snap, err := h.store.Cards(exp)
	if err != nil {
		return h.fail(c, exp, err)
	}
	return c.JSON(RowsResponse{Expansion: exp, Count: len(snap.Rows), ModTime: snap.ModTime, Rows: snap.Rows})
}

// HandlePrices returns the prices output of an expansion.
// @Summary Get Prices
// @Description Rows of the latest <expansion>_yuyutei_prices.csv. With suspicious=1 only rows flagged for review.
// @Tags snapshot
// @Produce json
// @Security ApiKeyAuth
// @Param expansion path string true "Expansion code (e.g. 'hBP01')"
// @Param suspicious query bool false "Only rows whose buy price exceeds the sell price"
// @Success 200 {object} snapshot.RowsResponse "Prices"
// @Failure 400 {object} snapshot.ErrorResponse "Invalid expansion"
// @Failure 404 {object} snapshot.ErrorResponse "No output"
// @Failure 500 {object} snapshot.ErrorResponse "Internal Server Error"
// @Router /api/prices/{expansion} [get]
func (h *Handler) HandlePrices(c *fiber.Ctx) error {
	exp, ok := expansionParam(c)
	if !ok {
		return badExpansion(c)
	}
	snap, err := h.store.Prices(exp)
	if err != nil {
		return h.fail(c, exp, err)
	}

	rows := snap.Rows
	if c.QueryBool("suspicious") {
		rows = make([]map[string]string, 0)
		for _, r := range snap.Rows {
			if r["is_suspicious"] == "1" {
				rows = append(rows, r)
			}
		}
	}
	return c.JSON(RowsResponse{Expansion: exp, Count: len(rows), ModTime: snap.ModTime, Rows: rows})
}

// HandlePortfolio returns the ledger's current positions.
// @Summary Get Portfolio
// @Description Current positions from the ledger portfolio view. Mounted only with a REST ledger.
// @Tags ledger
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} snapshot.PortfolioResponse "Positions"
// @Failure 502 {object} snapshot.ErrorResponse "Ledger unavailable"
// @Router /api/portfolio [get]
func (h *Handler) HandlePortfolio(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	rows, err := h.portfolio.Portfolio(c.UserContext())
	if err != nil {
		l.Error("Portfolio read failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Error: err.Error()})
	}
	return c.JSON(PortfolioResponse{Count: len(rows), Rows: rows})
}

// HandleRuns lists the archived runs of an expansion.
// @Summary List Runs
// @Description Run dates archived in object storage for an expansion, newest first. Mounted only with storage enabled.
// @Tags snapshot
// @Produce json
// @Security ApiKeyAuth
// @Param expansion path string true "Expansion code (e.g. 'hBP01')"
// @Success 200 {object} snapshot.RunsResponse "Runs"
// @Failure 400 {object} snapshot.ErrorResponse "Invalid expansion"
// @Failure 502 {object} snapshot.ErrorResponse "Storage unavailable"
// @Router /api/runs/{expansion} [get]
func (h *Handler) HandleRuns(c *fiber.Ctx) error {
	exp, ok := expansionParam(c)
	if !ok {
		return badExpansion(c)
	}
	runs, err := h.runs.Runs(c.UserContext(), exp)
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Run listing failed", zap.String("expansion", exp), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Error: err.Error()})
	}
	if runs == nil {
		runs = []string{}
	}
	return c.JSON(RunsResponse{Expansion: exp, Runs: runs})
}

// expansionParam normalizes the route parameter and rejects anything that is
// not a plain expansion code.
func expansionParam(c *fiber.Ctx) (string, bool) {
	exp, ok := normalize.Expansion(c.Params("expansion"))
	if !ok || !expansionPattern.MatchString(exp) {
		return "", false
	}
	return exp, true
}

func badExpansion(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid expansion"})
}

func (h *Handler) fail(c *fiber.Ctx, exp string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "no output for " + exp})
	}
	logger.WithRayID(h.logger, c).Error("Snapshot load failed", zap.String("expansion", exp), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: err.Error()})
}
