package agent

import (
	"context"
	"encoding/json"
	"fmt"
)

// Data tools: pure functions that fetch facts for the model to feed back
// through render_card. Placeholder data; a real deployment would call live
// services here.

func companyDataTool() Tool {
	schema := Schema{
		Type: "object",
		Properties: map[string]Property{
			"info_types": {
				Type:        "array",
				Description: "Which information to fetch",
				Items:       &Property{Type: "string", Enum: []string{"services", "location"}},
			},
		},
		Required: []string{"info_types"},
	}
	return NewFuncTool("get_company_data", "Fetches raw data about the company as structured JSON.", schema,
		func(ctx context.Context, input json.RawMessage) (string, error) {
			var in struct {
				InfoTypes []string `json:"info_types"`
			}
			if err := json.Unmarshal(input, &in); err != nil {
				return "", fmt.Errorf("get_company_data: %w", err)
			}
			var data []map[string]string
			for _, t := range in.InfoTypes {
				switch t {
				case "services":
					data = append(data, map[string]string{
						"id":          "services",
						"title":       "Our Services",
						"description": "We specialize in AI Consulting, Custom Software Development, and Cloud Architecture, helping businesses transform through modern technology.",
					})
				case "location":
					data = append(data, map[string]string{
						"id":          "location",
						"title":       "Our Offices",
						"description": "Headquartered in San Francisco, CA, with strategic global hubs in London and Bangalore to serve our international clients.",
					})
				}
			}
			return marshalResult(data)
		})
}

func weatherDataTool() Tool {
	schema := Schema{
		Type: "object",
		Properties: map[string]Property{
			"location": {Type: "string", Description: "City name or location to get weather for"},
		},
		Required: []string{"location"},
	}
	return NewFuncTool("get_weather_data", "Fetches weather data for a location as structured JSON.", schema,
		func(ctx context.Context, input json.RawMessage) (string, error) {
			var in struct {
				Location string `json:"location"`
			}
			if err := json.Unmarshal(input, &in); err != nil {
				return "", fmt.Errorf("get_weather_data: %w", err)
			}
			return marshalResult(map[string]string{
				"location":    in.Location,
				"temperature": "72°F",
				"condition":   "Sunny",
				"humidity":    "45%",
				"wind":        "8 mph",
			})
		})
}

func proverbsTool() Tool {
	schema := Schema{Type: "object", Properties: map[string]Property{}}
	return NewFuncTool("get_proverbs", "Fetches a list of proverbs or wisdom quotes.", schema,
		func(ctx context.Context, input json.RawMessage) (string, error) {
			return marshalResult([]string{
				"A journey of a thousand miles begins with a single step.",
				"The best time to plant a tree was 20 years ago. The second best time is now.",
				"Fall seven times, stand up eight.",
			})
		})
}

func marshalResult(v any) (string, error) {
	out, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
