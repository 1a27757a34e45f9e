package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"app/config"
	"app/consolidator"
	"app/models"
	"app/utils"
)

// HandleGetInsights consolidates a period and asks Gemini for a short
// management narrative over the summary and quality findings.
// POST /api/v1/accounting/insights
func HandleGetInsights(c *fiber.Ctx) error {
	if config.AppConfig.GeminiAPIKey == "" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"success": false,
			"message": "AI insights are not configured",
		})
	}

	var body struct {
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	var opts consolidator.Options
	if body.StartDate != "" {
		t, err := utils.ParseDate(body.StartDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Invalid startDate format",
			})
		}
		opts.StartDate = t
	}
	if body.EndDate != "" {
		t, err := utils.ParseDate(body.EndDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Invalid endDate format",
			})
		}
		opts.EndDate = utils.DayEnd(t)
	}

	result, err := dataConsolidator.Consolidate(c.Context(), opts)
	if err != nil {
		log.Printf("Error consolidating data for insights: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to consolidate financial data",
		})
	}

	insight, err := generateInsight(c.Context(), result)
	if err != nil {
		log.Printf("Error generating insight: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to generate insights",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"period":   result.Period,
			"summary":  result.Summary,
			"analysis": insight,
		},
	})
}

func generateInsight(ctx context.Context, result *models.ConsolidatedResult) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(config.AppConfig.GeminiAPIKey))
	if err != nil {
		return "", fmt.Errorf("create Gemini client: %w", err)
	}
	defer client.Close()

	summaryJSON, err := json.MarshalIndent(fiber.Map{
		"period":      result.Period,
		"summary":     result.Summary,
		"dataQuality": result.Metadata.DataQuality,
	}, "", "  ")
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`You are a financial analyst for a restaurant.
Given the consolidated financials below, write a short management summary:
key results, anomalies worth attention, and one concrete recommendation.
Keep it under 150 words.

%s`, summaryJSON)

	model := client.GenerativeModel("gemini-1.5-pro-latest")
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var analysis string
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				analysis += string(text)
			}
		}
	}
	return analysis, nil
}
