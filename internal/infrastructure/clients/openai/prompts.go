package openai

import (
	"encoding/json"
	"fmt"

	"github.com/lifeline-health/bedfinder/internal/domain/entities"
)

const triageSystemPrompt = `You are a medical dispatcher for an emergency bed availability network. Given a patient's emergency query and the current hospital bed availability, briefly analyze the situation and recommend the best hospital based on availability and urgency. Keep the response short (under 60 words). Always end with exactly this sentence: "I am an AI assistant, not a doctor. In critical life-threatening emergencies, call 911 immediately." Do not provide a diagnosis.`

func buildTriageUserPrompt(query string, snapshot []entities.TriageFacilitySnapshot) (string, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("failed to marshal availability snapshot: %w", err)
	}

	return fmt.Sprintf(
		"User Emergency Query: %q\nCurrent Hospital Availability: %s\n",
		query, data,
	), nil
}
