package utils

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/luckywheel/spin-backend/internal/models"
	"github.com/luckywheel/spin-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CSVImporter imports participants from operator-supplied CSV exports
type CSVImporter struct {
	participantRepo repositories.ParticipantRepository
}

// NewCSVImporter creates a new CSVImporter
func NewCSVImporter(participantRepo repositories.ParticipantRepository) *CSVImporter {
	return &CSVImporter{
		participantRepo: participantRepo,
	}
}

// ImportParticipants imports participants for an event from a CSV file.
// Existing participants (matched by phone) get their allowance and status
// refreshed; new ones are created with the row's allowance.
func (i *CSVImporter) ImportParticipants(ctx context.Context, eventID, locationID primitive.ObjectID, filePath string) (map[string]interface{}, error) {
	// Open the CSV file
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// Create a new CSV reader
	reader := csv.NewReader(file)

	// Read the header row
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Map column indices
	phoneIdx := findColumnIndex(header, []string{"Phone", "Phone Number", "MSISDN", "Mobile"})
	nameIdx := findColumnIndex(header, []string{"Name", "Full Name", "Participant Name"})
	spinsIdx := findColumnIndex(header, []string{"Spins", "Remaining Spins", "Spin Allowance"})
	dailyIdx := findColumnIndex(header, []string{"Daily Limit", "Daily Spin Limit", "Spins Per Day"})

	if phoneIdx == -1 {
		return nil, fmt.Errorf("phone column not found in CSV")
	}

	// Initialize result counters
	results := map[string]interface{}{
		"totalRows":           0,
		"participantsCreated": 0,
		"participantsUpdated": 0,
		"errors":              []string{},
	}

	// Process each row
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			results["errors"] = append(results["errors"].([]string), fmt.Sprintf("Error reading row: %v", err))
			continue
		}

		results["totalRows"] = results["totalRows"].(int) + 1

		// Extract phone
		phone := cleanPhone(row[phoneIdx])
		if phone == "" {
			results["errors"] = append(results["errors"].([]string), fmt.Sprintf("Row %d: No phone found", results["totalRows"]))
			continue
		}

		// Extract name
		var name string
		if nameIdx != -1 {
			name = strings.TrimSpace(row[nameIdx])
		}

		// Extract spin allowance
		var spins int64 = 1
		if spinsIdx != -1 && row[spinsIdx] != "" {
			spins, err = strconv.ParseInt(strings.TrimSpace(row[spinsIdx]), 10, 64)
			if err != nil {
				results["errors"] = append(results["errors"].([]string), fmt.Sprintf("Row %d: Invalid spin allowance: %s", results["totalRows"], row[spinsIdx]))
				spins = 1
			}
		}

		// Extract daily limit (0 means unlimited per day)
		var dailyLimit int64
		if dailyIdx != -1 && row[dailyIdx] != "" {
			dailyLimit, err = strconv.ParseInt(strings.TrimSpace(row[dailyIdx]), 10, 64)
			if err != nil {
				results["errors"] = append(results["errors"].([]string), fmt.Sprintf("Row %d: Invalid daily limit: %s", results["totalRows"], row[dailyIdx]))
				dailyLimit = 0
			}
		}

		// Create or update participant
		existing, err := i.participantRepo.FindByPhone(ctx, eventID, phone)
		if err == nil && existing != nil {
			existing.Status = models.StatusActive
			existing.RemainingSpins = spins
			existing.DailySpinLimit = dailyLimit
			if name != "" {
				existing.Name = name
			}

			if err := i.participantRepo.Update(ctx, existing); err != nil {
				results["errors"] = append(results["errors"].([]string), fmt.Sprintf("Row %d: Failed to update participant: %v", results["totalRows"], err))
				continue
			}
			results["participantsUpdated"] = results["participantsUpdated"].(int) + 1
		} else {
			participant := &models.Participant{
				EventID:        eventID,
				LocationID:     locationID,
				Name:           name,
				Phone:          phone,
				Status:         models.StatusActive,
				RemainingSpins: spins,
				DailySpinLimit: dailyLimit,
			}

			if err := i.participantRepo.Create(ctx, participant); err != nil {
				results["errors"] = append(results["errors"].([]string), fmt.Sprintf("Row %d: Failed to create participant: %v", results["totalRows"], err))
				continue
			}
			results["participantsCreated"] = results["participantsCreated"].(int) + 1
		}
	}

	return results, nil
}

// findColumnIndex finds the index of a column by possible names
func findColumnIndex(header []string, possibleNames []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, name := range possibleNames {
			if strings.ToLower(name) == h {
				return i
			}
		}
	}
	return -1
}

// cleanPhone strips everything but digits from a phone number
func cleanPhone(phone string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
}
