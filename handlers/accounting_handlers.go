package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"app/consolidator"
	"app/database"
	"app/exporter"
	"app/utils"
)

// parsePeriodOptions reads the shared consolidation query parameters.
func parsePeriodOptions(c *fiber.Ctx) (consolidator.Options, error) {
	var opts consolidator.Options

	if s := c.Query("startDate"); s != "" {
		t, err := utils.ParseDate(s)
		if err != nil {
			return opts, fmt.Errorf("invalid startDate format")
		}
		opts.StartDate = t
	}
	if s := c.Query("endDate"); s != "" {
		t, err := utils.ParseDate(s)
		if err != nil {
			return opts, fmt.Errorf("invalid endDate format")
		}
		opts.EndDate = utils.DayEnd(t)
	}
	if s := c.Query("sources"); s != "" {
		for _, name := range strings.Split(s, ",") {
			if name = strings.TrimSpace(name); name != "" {
				opts.Sources = append(opts.Sources, name)
			}
		}
	}
	opts.ForceRefresh = c.QueryBool("forceRefresh", false)
	return opts, nil
}

// HandleGetConsolidated runs a consolidation for the requested period.
// GET /api/v1/accounting/consolidated
func HandleGetConsolidated(c *fiber.Ctx) error {
	opts, err := parsePeriodOptions(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	log.Printf("📊 [CONSOLIDATE] Request - startDate=%s endDate=%s sources=%v forceRefresh=%v",
		c.Query("startDate"), c.Query("endDate"), opts.Sources, opts.ForceRefresh)

	result, err := dataConsolidator.Consolidate(c.Context(), opts)
	if err != nil {
		if errors.Is(err, consolidator.ErrInvalidPeriod) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		}
		log.Printf("Error consolidating data: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to consolidate financial data",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    result,
	})
}

// HandleGetFinancialKPIs returns today's summary plus MTD/YTD projections.
// GET /api/v1/accounting/kpis
func HandleGetFinancialKPIs(c *fiber.Ctx) error {
	kpis, err := dataConsolidator.GetCurrentFinancialKPIs(c.Context())
	if err != nil {
		log.Printf("Error computing financial KPIs: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to compute financial KPIs",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    kpis,
	})
}

// HandleExportReport consolidates the period and streams an Excel report.
// GET /api/v1/accounting/report/export
func HandleExportReport(c *fiber.Ctx) error {
	opts, err := parsePeriodOptions(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	result, err := dataConsolidator.Consolidate(c.Context(), opts)
	if err != nil {
		if errors.Is(err, consolidator.ErrInvalidPeriod) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		}
		log.Printf("Error consolidating data for export: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to consolidate financial data",
		})
	}

	workbook, err := exporter.BuildWorkbook(result)
	if err != nil {
		log.Printf("Error building report workbook: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to build report",
		})
	}

	var buf bytes.Buffer
	if _, err := workbook.WriteTo(&buf); err != nil {
		log.Printf("Error writing report workbook: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to write report",
		})
	}

	filename := fmt.Sprintf("financial-report-%s.xlsx", result.Period.StartDate.Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(buf.Bytes())
}

// HandleListSnapshots returns recent persisted consolidation snapshots.
// GET /api/v1/accounting/snapshots
func HandleListSnapshots(c *fiber.Ctx) error {
	if snapshotStore == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"success": false,
			"message": "Snapshot persistence is not configured",
		})
	}

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 20)

	total, err := snapshotStore.Count(c.Context())
	if err != nil {
		log.Printf("Error counting snapshots: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to list snapshots",
		})
	}
	pagination := utils.CreatePagination(total, page, pageSize)

	snapshots, err := snapshotStore.ListRecent(c.Context(), pagination.PageSize, pagination.Offset())
	if err != nil {
		log.Printf("Error listing snapshots: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to list snapshots",
		})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       snapshots,
		"pagination": pagination,
	})
}

// HandleHealth reports liveness and database connectivity.
// GET /health
func HandleHealth(c *fiber.Ctx) error {
	status := fiber.Map{
		"status": "ok",
		"time":   time.Now().UTC(),
	}
	if db := database.GetDB(); db != nil {
		if err := db.Ping(c.Context()); err != nil {
			status["status"] = "degraded"
			status["database"] = "unreachable"
			return c.Status(fiber.StatusServiceUnavailable).JSON(status)
		}
		status["database"] = "ok"
	}
	return c.JSON(status)
}
